package taxonomy

import (
	"context"
	"sort"

	"motoshop-be/internal/logger"

	"go.uber.org/zap"
)

// QueryService answers navigation and filter questions. It never writes.
type QueryService struct {
	reader Reader
}

func NewQueryService(reader Reader) *QueryService {
	return &QueryService{reader: reader}
}

// ResolveSection looks a section up by its exact slug.
func (q *QueryService) ResolveSection(ctx context.Context, slug string) (*Section, error) {
	section, err := q.reader.GetSectionBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	categories, err := q.categoriesIn(ctx, section.Slug)
	if err != nil {
		return nil, err
	}
	section.Categories = categories
	return section, nil
}

// CategoriesFor lists the categories of one section with their types. An
// unknown section is NotFound rather than an empty list.
func (q *QueryService) CategoriesFor(ctx context.Context, sectionSlug string) ([]*Category, error) {
	if _, err := q.reader.GetSectionBySlug(ctx, sectionSlug); err != nil {
		return nil, err
	}
	return q.categoriesIn(ctx, sectionSlug)
}

func (q *QueryService) categoriesIn(ctx context.Context, sectionSlug string) ([]*Category, error) {
	categories, err := q.reader.ListCategories(ctx, &sectionSlug)
	if err != nil {
		return nil, err
	}
	if err := loadTypes(ctx, q.reader, categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// TypesFor lists the types owned by a category.
func (q *QueryService) TypesFor(ctx context.Context, categoryID string) ([]*TypeRef, error) {
	if _, err := q.reader.GetCategory(ctx, categoryID); err != nil {
		return nil, err
	}

	byCategory, err := q.reader.ListTypesByCategoryIDs(ctx, []string{categoryID})
	if err != nil {
		return nil, err
	}
	if types := byCategory[categoryID]; types != nil {
		return types, nil
	}
	return []*TypeRef{}, nil
}

// FilterOptionsFor collects the distinct brand, category and type names
// reachable from a section, or from the whole catalog when sectionSlug is nil.
// Brands are not tied to the hierarchy: they are reachable from any scope that
// reaches at least one category, and from nowhere otherwise.
func (q *QueryService) FilterOptionsFor(ctx context.Context, sectionSlug *string) (*FilterOptions, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "query"),
		zap.String("method", "FilterOptionsFor"),
	)

	if sectionSlug != nil {
		if _, err := q.reader.GetSectionBySlug(ctx, *sectionSlug); err != nil {
			return nil, err
		}
	}

	categories, err := q.reader.ListCategories(ctx, sectionSlug)
	if err != nil {
		log.Error("failed to list categories", zap.Error(err))
		return nil, err
	}
	if len(categories) == 0 {
		return &FilterOptions{Brands: []string{}, Categories: []string{}, Types: []string{}}, nil
	}
	if err := loadTypes(ctx, q.reader, categories); err != nil {
		return nil, err
	}

	brands, err := q.reader.ListBrands(ctx)
	if err != nil {
		log.Error("failed to list brands", zap.Error(err))
		return nil, err
	}

	brandNames := make([]string, 0, len(brands))
	for _, b := range brands {
		brandNames = append(brandNames, b.Name)
	}

	categoryNames := make([]string, 0, len(categories))
	typeNames := []string{}
	for _, c := range categories {
		categoryNames = append(categoryNames, c.Name)
		for _, t := range c.ApplicableTypes {
			typeNames = append(typeNames, t.Name)
		}
	}

	opts := &FilterOptions{
		Brands:     distinctSorted(brandNames),
		Categories: distinctSorted(categoryNames),
		Types:      distinctSorted(typeNames),
	}

	log.Debug("FilterOptionsFor success",
		zap.Int("brands", len(opts.Brands)),
		zap.Int("categories", len(opts.Categories)),
		zap.Int("types", len(opts.Types)),
	)
	return opts, nil
}

func distinctSorted(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

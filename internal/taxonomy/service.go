package taxonomy

import (
	"context"
	"errors"
	"strings"

	"motoshop-be/internal/logger"

	"go.uber.org/zap"
)

// IconUploader is the asset storage collaborator that turns a staged icon into a
// persisted reference.
type IconUploader interface {
	UploadIcon(ctx context.Context, asset *IconAsset) (*IconRef, error)
	DestroyIcon(ctx context.Context, publicID string) error
}

// Service enforces the taxonomy invariants on top of the Repository.
type Service interface {
	CreateSection(ctx context.Context, in SectionInput) (*Section, error)
	CreateCategory(ctx context.Context, in CategoryInput) (*Category, error)
	UpdateCategory(ctx context.Context, id string, in UpdateCategoryInput) (*Category, error)
	AttachIcon(ctx context.Context, categoryID string, asset *IconAsset) (*Category, error)
	AddType(ctx context.Context, categoryID string, in TypeInput) (*Type, error)
	RemoveType(ctx context.Context, typeID string) error
	DeleteCategory(ctx context.Context, categoryID string) error
	ListSections(ctx context.Context) ([]*Section, error)
	CreateBrand(ctx context.Context, in BrandInput) (*Brand, error)
	ListBrands(ctx context.Context) ([]*Brand, error)
}

type service struct {
	repo     Repository
	uploader IconUploader
}

func NewService(repo Repository, uploader IconUploader) Service {
	return &service{repo: repo, uploader: uploader}
}

func (s *service) CreateSection(ctx context.Context, in SectionInput) (*Section, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateSection"),
	)

	in.Name = strings.TrimSpace(in.Name)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	slug, err := normalizeSlug(in.Slug, in.Name)
	if err != nil {
		return nil, err
	}

	section, err := s.repo.InsertSection(ctx, in.Name, slug)
	if err != nil {
		log.Error("failed to create section", zap.Error(err))
		return nil, err
	}

	log.Info("CreateSection success", zap.String("section_id", section.ID), zap.String("slug", slug))
	return section, nil
}

// CreateCategory persists a category with its icon unset; uniqueness of the slug
// is decided by the database constraint so concurrent creates race fairly.
func (s *service) CreateCategory(ctx context.Context, in CategoryInput) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateCategory"),
		zap.String("name", in.Name),
	)
	log.Info("CreateCategory started")

	in.Name = strings.TrimSpace(in.Name)
	in.Section = strings.TrimSpace(in.Section)
	if err := validateInput(in); err != nil {
		log.Warn("CreateCategory validation failed", zap.Error(err))
		return nil, err
	}
	slug, err := normalizeSlug(in.Slug, in.Name)
	if err != nil {
		log.Warn("CreateCategory validation failed", zap.Error(err))
		return nil, err
	}

	category, err := s.repo.InsertCategory(ctx, in.Name, slug, in.Section)
	if err != nil {
		log.Error("failed to create category", zap.Error(err))
		return nil, err
	}

	log.Info("CreateCategory success", zap.String("category_id", category.ID))
	return category, nil
}

func (s *service) UpdateCategory(ctx context.Context, id string, in UpdateCategoryInput) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateCategory"),
		zap.String("category_id", id),
	)

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, invalid("name", "is required")
		}
		in.Name = &name
	}
	if in.Slug != nil {
		slug, err := normalizeSlug(*in.Slug, "")
		if err != nil {
			return nil, err
		}
		in.Slug = &slug
	}
	if in.Section != nil {
		section := strings.TrimSpace(*in.Section)
		if section == "" {
			return nil, invalid("section", "is required")
		}
		in.Section = &section
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}

	category, err := s.repo.UpdateCategory(ctx, id, in)
	if err != nil {
		log.Error("failed to update category", zap.Error(err))
		return nil, err
	}

	if err := s.attachTypes(ctx, []*Category{category}); err != nil {
		return nil, err
	}

	log.Info("UpdateCategory success")
	return category, nil
}

// AttachIcon uploads the asset and records its reference. The record write is a
// single statement, so either both reference fields change or neither does; an
// upload whose record write failed is destroyed again.
func (s *service) AttachIcon(ctx context.Context, categoryID string, asset *IconAsset) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AttachIcon"),
		zap.String("category_id", categoryID),
	)

	if asset == nil || len(asset.Data) == 0 {
		return nil, invalid("icon", "is required")
	}

	category, err := s.repo.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	ref, err := s.uploader.UploadIcon(ctx, asset)
	if err != nil {
		log.Error("icon upload failed", zap.Error(err))
		return nil, err
	}

	prev, err := s.repo.SetCategoryIcon(ctx, categoryID, ref)
	if err != nil {
		log.Error("failed to record icon, discarding upload", zap.String("public_id", ref.PublicID), zap.Error(err))
		if derr := s.uploader.DestroyIcon(ctx, ref.PublicID); derr != nil {
			log.Warn("failed to discard orphaned upload", zap.String("public_id", ref.PublicID), zap.Error(derr))
		}
		return nil, err
	}

	if prev != nil && prev.PublicID != ref.PublicID {
		s.destroyQuietly(ctx, prev.PublicID)
	}

	category.Icon = Icon{Ref: ref}
	if err := s.attachTypes(ctx, []*Category{category}); err != nil {
		return nil, err
	}

	log.Info("AttachIcon success", zap.String("public_id", ref.PublicID))
	return category, nil
}

func (s *service) AddType(ctx context.Context, categoryID string, in TypeInput) (*Type, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddType"),
		zap.String("category_id", categoryID),
		zap.String("name", in.Name),
	)
	log.Info("AddType started")

	in.Name = strings.TrimSpace(in.Name)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	slug, err := normalizeSlug(in.Slug, in.Name)
	if err != nil {
		return nil, err
	}

	t, err := s.repo.InsertType(ctx, categoryID, in.Name, slug)
	if err != nil {
		log.Error("failed to add type", zap.Error(err))
		return nil, err
	}

	log.Info("AddType success", zap.String("type_id", t.ID))
	return t, nil
}

func (s *service) RemoveType(ctx context.Context, typeID string) error {
	if err := s.repo.DeleteType(ctx, typeID); err != nil {
		logger.FromCtx(ctx).Error("failed to remove type", zap.String("type_id", typeID), zap.Error(err))
		return err
	}
	return nil
}

// DeleteCategory cascades over the owned types. A failed call leaves nothing
// half-deleted and may simply be retried.
func (s *service) DeleteCategory(ctx context.Context, categoryID string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DeleteCategory"),
		zap.String("category_id", categoryID),
	)
	log.Info("DeleteCategory started")

	icon, err := s.repo.DeleteCategory(ctx, categoryID)
	if err != nil {
		log.Error("failed to delete category", zap.Error(err))
		return err
	}

	if icon != nil {
		s.destroyQuietly(ctx, icon.PublicID)
	}

	log.Info("DeleteCategory success")
	return nil
}

func (s *service) ListSections(ctx context.Context) ([]*Section, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ListSections"),
	)

	sections, err := s.repo.ListSections(ctx)
	if err != nil {
		log.Error("failed to list sections", zap.Error(err))
		return nil, err
	}
	if len(sections) == 0 {
		return []*Section{}, nil
	}

	categories, err := s.repo.ListCategories(ctx, nil)
	if err != nil {
		log.Error("failed to list categories", zap.Error(err))
		return nil, err
	}
	if err := s.attachTypes(ctx, categories); err != nil {
		return nil, err
	}

	bySlug := make(map[string]*Section, len(sections))
	for _, sec := range sections {
		bySlug[sec.Slug] = sec
	}
	for _, c := range categories {
		if sec, ok := bySlug[c.Section]; ok {
			sec.Categories = append(sec.Categories, c)
		}
	}

	log.Info("ListSections success", zap.Int("sections", len(sections)), zap.Int("categories", len(categories)))
	return sections, nil
}

func (s *service) CreateBrand(ctx context.Context, in BrandInput) (*Brand, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Description != nil {
		desc := strings.TrimSpace(*in.Description)
		in.Description = &desc
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}

	b, err := s.repo.InsertBrand(ctx, in)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to create brand", zap.String("name", in.Name), zap.Error(err))
		return nil, err
	}
	return b, nil
}

func (s *service) ListBrands(ctx context.Context) ([]*Brand, error) {
	return s.repo.ListBrands(ctx)
}

// attachTypes fills ApplicableTypes for every category with one query.
func (s *service) attachTypes(ctx context.Context, categories []*Category) error {
	return loadTypes(ctx, s.repo, categories)
}

func (s *service) destroyQuietly(ctx context.Context, publicID string) {
	if err := s.uploader.DestroyIcon(ctx, publicID); err != nil {
		logger.FromCtx(ctx).Warn("failed to destroy replaced icon",
			zap.String("public_id", publicID),
			zap.Error(err),
		)
	}
}

func loadTypes(ctx context.Context, r Reader, categories []*Category) error {
	if len(categories) == 0 {
		return nil
	}

	ids := make([]string, 0, len(categories))
	for _, c := range categories {
		ids = append(ids, c.ID)
	}

	typesByCategory, err := r.ListTypesByCategoryIDs(ctx, ids)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to get types by category ids", zap.Error(err))
		return err
	}

	for _, c := range categories {
		if types, ok := typesByCategory[c.ID]; ok {
			c.ApplicableTypes = types
		} else {
			c.ApplicableTypes = []*TypeRef{}
		}
	}
	return nil
}

// IsClientError reports whether err is one of the recoverable taxonomy errors.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrConflict) || errors.Is(err, ErrNotFound)
}

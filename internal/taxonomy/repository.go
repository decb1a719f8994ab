package taxonomy

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"motoshop-be/internal/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// Reader is the read-only half of the store, all the query service needs.
type Reader interface {
	ListSections(ctx context.Context) ([]*Section, error)
	GetSectionBySlug(ctx context.Context, slug string) (*Section, error)
	GetCategory(ctx context.Context, id string) (*Category, error)
	ListCategories(ctx context.Context, sectionSlug *string) ([]*Category, error)
	ListTypesByCategoryIDs(ctx context.Context, categoryIDs []string) (map[string][]*TypeRef, error)
	ListBrands(ctx context.Context) ([]*Brand, error)
}

type Repository interface {
	Reader
	InsertSection(ctx context.Context, name, slug string) (*Section, error)
	InsertCategory(ctx context.Context, name, slug, section string) (*Category, error)
	UpdateCategory(ctx context.Context, id string, in UpdateCategoryInput) (*Category, error)
	SetCategoryIcon(ctx context.Context, id string, ref *IconRef) (*IconRef, error)
	InsertType(ctx context.Context, categoryID, name, slug string) (*Type, error)
	DeleteType(ctx context.Context, id string) error
	DeleteCategory(ctx context.Context, id string) (*IconRef, error)
	InsertBrand(ctx context.Context, in BrandInput) (*Brand, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const categoryColumns = `c.id, c.name, c.slug, c.section_slug, c.icon_secure_url, c.icon_public_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row rowScanner) (*Category, error) {
	var (
		c                Category
		secureURL, pubID sql.NullString
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.Section, &secureURL, &pubID); err != nil {
		return nil, err
	}
	c.Icon.Ref = iconRef(secureURL, pubID)
	c.ApplicableTypes = []*TypeRef{}
	return &c, nil
}

func iconRef(secureURL, publicID sql.NullString) *IconRef {
	if !secureURL.Valid || !publicID.Valid {
		return nil
	}
	return &IconRef{SecureURL: secureURL.String, PublicID: publicID.String}
}

func pgCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// validID rejects identifiers the uuid columns could never hold.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (r *repository) ListSections(ctx context.Context) ([]*Section, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListSections"),
	)

	rows, err := r.db.QueryContext(ctx, `SELECT s.id, s.name, s.slug FROM sections s ORDER BY s.position ASC`)
	if err != nil {
		log.Error("DB query failed ListSections", zap.Error(err))
		return nil, fmt.Errorf("list sections failed: %w", err)
	}
	defer rows.Close()

	sections := []*Section{}
	for rows.Next() {
		s := &Section{Categories: []*Category{}}
		if err := rows.Scan(&s.ID, &s.Name, &s.Slug); err != nil {
			log.Error("Row scan failed", zap.Error(err))
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		sections = append(sections, s)
	}

	if err := rows.Err(); err != nil {
		log.Error("Rows iteration failed", zap.Error(err))
		return nil, err
	}

	return sections, nil
}

func (r *repository) GetSectionBySlug(ctx context.Context, slug string) (*Section, error) {
	s := &Section{Categories: []*Category{}}

	err := r.db.QueryRowContext(ctx,
		`SELECT s.id, s.name, s.slug FROM sections s WHERE s.slug = $1`, slug,
	).Scan(&s.ID, &s.Name, &s.Slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("section", slug)
	}
	if err != nil {
		logger.FromCtx(ctx).Error("GetSectionBySlug DB query failed", zap.String("slug", slug), zap.Error(err))
		return nil, fmt.Errorf("get section failed: %w", err)
	}

	return s, nil
}

func (r *repository) GetCategory(ctx context.Context, id string) (*Category, error) {
	if !validID(id) {
		return nil, notFound("category", id)
	}

	c, err := scanCategory(r.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories c WHERE c.id = $1`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("category", id)
	}
	if err != nil {
		logger.FromCtx(ctx).Error("GetCategory DB query failed", zap.String("category_id", id), zap.Error(err))
		return nil, fmt.Errorf("get category failed: %w", err)
	}

	return c, nil
}

func (r *repository) ListCategories(ctx context.Context, sectionSlug *string) ([]*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListCategories"),
	)

	query := `SELECT ` + categoryColumns + ` FROM categories c`
	args := []interface{}{}

	if sectionSlug != nil {
		query += " WHERE c.section_slug = $1"
		args = append(args, *sectionSlug)
	}
	query += " ORDER BY c.position ASC"

	log.Debug("Executing ListCategories query", zap.String("query", query), zap.Any("args", args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("DB query failed ListCategories", zap.Error(err))
		return nil, fmt.Errorf("list categories failed: %w", err)
	}
	defer rows.Close()

	categories := []*Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			log.Error("Row scan failed", zap.Error(err))
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		log.Error("Rows iteration failed", zap.Error(err))
		return nil, err
	}

	return categories, nil
}

func (r *repository) ListTypesByCategoryIDs(ctx context.Context, categoryIDs []string) (map[string][]*TypeRef, error) {
	result := make(map[string][]*TypeRef, len(categoryIDs))
	if len(categoryIDs) == 0 {
		return result, nil
	}

	placeholders := make([]string, len(categoryIDs))
	args := make([]interface{}, len(categoryIDs))
	for i, id := range categoryIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	query := fmt.Sprintf(
		"SELECT id, category_id, name, slug FROM types WHERE category_id IN (%s) ORDER BY position ASC",
		strings.Join(placeholders, ","),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromCtx(ctx).Error("ListTypesByCategoryIDs DB query failed", zap.Error(err))
		return nil, fmt.Errorf("list types failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			t          TypeRef
			categoryID string
		)
		if err := rows.Scan(&t.ID, &categoryID, &t.Name, &t.Slug); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		result[categoryID] = append(result[categoryID], &t)
	}

	return result, rows.Err()
}

func (r *repository) InsertSection(ctx context.Context, name, slug string) (*Section, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "InsertSection"),
		zap.String("slug", slug),
	)

	s := &Section{ID: uuid.New().String(), Name: name, Slug: slug, Categories: []*Category{}}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sections (id, name, slug) VALUES ($1, $2, $3)`,
		s.ID, s.Name, s.Slug,
	)
	if err != nil {
		if pgCode(err) == PgUniqueViolation {
			log.Warn("section slug already taken")
			return nil, &ConflictError{Entity: "section", Field: "slug", Value: slug}
		}
		log.Error("InsertSection DB query failed", zap.Error(err))
		return nil, fmt.Errorf("add section failed: %w", err)
	}

	return s, nil
}

func (r *repository) InsertCategory(ctx context.Context, name, slug, section string) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "InsertCategory"),
		zap.String("slug", slug),
		zap.String("section", section),
	)
	log.Info("InsertCategory started")

	query := `
		INSERT INTO categories (id, name, slug, section_slug)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, slug, section_slug
	`

	c := Category{ApplicableTypes: []*TypeRef{}}
	err := r.db.QueryRowContext(ctx, query, uuid.New().String(), name, slug, section).
		Scan(&c.ID, &c.Name, &c.Slug, &c.Section)
	if err != nil {
		switch pgCode(err) {
		case PgUniqueViolation:
			log.Warn("category slug already taken")
			return nil, &ConflictError{Entity: "category", Field: "slug", Value: slug}
		case PgForeignKeyViolation:
			log.Warn("category references unknown section")
			return nil, notFound("section", section)
		}
		log.Error("InsertCategory DB query failed", zap.Error(err))
		return nil, fmt.Errorf("add category failed: %w", err)
	}

	log.Info("InsertCategory success", zap.String("category_id", c.ID))
	return &c, nil
}

func (r *repository) UpdateCategory(ctx context.Context, id string, in UpdateCategoryInput) (*Category, error) {
	if !validID(id) {
		return nil, notFound("category", id)
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdateCategory"),
		zap.String("category_id", id),
	)

	sets := []string{}
	args := []interface{}{}

	if in.Name != nil {
		args = append(args, *in.Name)
		sets = append(sets, fmt.Sprintf("name = $%d", len(args)))
	}
	if in.Slug != nil {
		args = append(args, *in.Slug)
		sets = append(sets, fmt.Sprintf("slug = $%d", len(args)))
	}
	if in.Section != nil {
		args = append(args, *in.Section)
		sets = append(sets, fmt.Sprintf("section_slug = $%d", len(args)))
	}
	if len(sets) == 0 {
		return r.GetCategory(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE categories c SET %s WHERE c.id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), categoryColumns,
	)

	log.Debug("Executing UpdateCategory query", zap.String("query", query))

	c, err := scanCategory(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, notFound("category", id)
		case pgCode(err) == PgUniqueViolation && in.Slug != nil:
			return nil, &ConflictError{Entity: "category", Field: "slug", Value: *in.Slug}
		case pgCode(err) == PgForeignKeyViolation && in.Section != nil:
			return nil, notFound("section", *in.Section)
		}
		log.Error("UpdateCategory DB query failed", zap.Error(err))
		return nil, fmt.Errorf("update category failed: %w", err)
	}

	return c, nil
}

// SetCategoryIcon writes both icon columns in one statement under a row lock and
// returns the reference it replaced.
func (r *repository) SetCategoryIcon(ctx context.Context, id string, ref *IconRef) (*IconRef, error) {
	if !validID(id) {
		return nil, notFound("category", id)
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "SetCategoryIcon"),
		zap.String("category_id", id),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	var secureURL, publicID sql.NullString
	err = tx.QueryRowContext(ctx,
		`SELECT icon_secure_url, icon_public_id FROM categories WHERE id = $1 FOR UPDATE`, id,
	).Scan(&secureURL, &publicID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("category", id)
	}
	if err != nil {
		log.Error("failed to lock category", zap.Error(err))
		return nil, fmt.Errorf("lock category failed: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE categories SET icon_secure_url = $1, icon_public_id = $2 WHERE id = $3`,
		ref.SecureURL, ref.PublicID, id,
	); err != nil {
		log.Error("failed to write icon reference", zap.Error(err))
		return nil, fmt.Errorf("set icon failed: %w", err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction", zap.Error(err))
		return nil, err
	}

	return iconRef(secureURL, publicID), nil
}

func (r *repository) InsertType(ctx context.Context, categoryID, name, slug string) (*Type, error) {
	if !validID(categoryID) {
		return nil, notFound("category", categoryID)
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "InsertType"),
		zap.String("category_id", categoryID),
		zap.String("slug", slug),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	var locked string
	err = tx.QueryRowContext(ctx, `SELECT id FROM categories WHERE id = $1 FOR UPDATE`, categoryID).Scan(&locked)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("category", categoryID)
	}
	if err != nil {
		log.Error("failed to lock category", zap.Error(err))
		return nil, fmt.Errorf("lock category failed: %w", err)
	}

	t := &Type{ID: uuid.New().String(), Name: name, Slug: slug, CategoryID: categoryID}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO types (id, category_id, name, slug) VALUES ($1, $2, $3, $4)`,
		t.ID, t.CategoryID, t.Name, t.Slug,
	); err != nil {
		if pgCode(err) == PgUniqueViolation {
			log.Warn("type slug already taken")
			return nil, &ConflictError{Entity: "type", Field: "slug", Value: slug}
		}
		log.Error("failed to insert type", zap.Error(err))
		return nil, fmt.Errorf("add type failed: %w", err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction", zap.Error(err))
		return nil, err
	}

	log.Info("InsertType success", zap.String("type_id", t.ID))
	return t, nil
}

func (r *repository) DeleteType(ctx context.Context, id string) error {
	if !validID(id) {
		return notFound("type", id)
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM types WHERE id = $1`, id)
	if err != nil {
		logger.FromCtx(ctx).Error("DeleteType DB query failed", zap.String("type_id", id), zap.Error(err))
		return fmt.Errorf("delete type failed: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound("type", id)
	}
	return nil
}

// DeleteCategory removes the owned types and then the category in one
// transaction, returning the icon reference the category held.
func (r *repository) DeleteCategory(ctx context.Context, id string) (*IconRef, error) {
	if !validID(id) {
		return nil, notFound("category", id)
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "DeleteCategory"),
		zap.String("category_id", id),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM types WHERE category_id = $1`, id)
	if err != nil {
		log.Error("failed to delete owned types", zap.Error(err))
		return nil, fmt.Errorf("delete types failed: %w", err)
	}
	removed, _ := res.RowsAffected()

	var secureURL, publicID sql.NullString
	err = tx.QueryRowContext(ctx,
		`DELETE FROM categories WHERE id = $1 RETURNING icon_secure_url, icon_public_id`, id,
	).Scan(&secureURL, &publicID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("category", id)
	}
	if err != nil {
		log.Error("failed to delete category", zap.Error(err))
		return nil, fmt.Errorf("delete category failed: %w", err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction", zap.Error(err))
		return nil, err
	}

	log.Info("DeleteCategory success", zap.Int64("types_removed", removed))
	return iconRef(secureURL, publicID), nil
}

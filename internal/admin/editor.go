package admin

import (
	"context"
	"errors"

	"motoshop-be/internal/logger"
	"motoshop-be/internal/taxonomy"

	"go.uber.org/zap"
)

// FieldErrors maps an input field to the message shown next to it.
type FieldErrors map[string]string

// Rejection is store feedback on a form submission. Cause is the store error
// it was derived from.
type Rejection struct {
	Fields FieldErrors
	Cause  error
}

func (r *Rejection) Conflict() bool {
	return errors.Is(r.Cause, taxonomy.ErrConflict)
}

// Result is the outcome of a category form submission. Category is set when
// the category exists, even if a staged icon was then rejected.
type Result struct {
	Category *taxonomy.Category
	Rejected *Rejection
}

func (r *Result) OK() bool {
	return r.Rejected == nil
}

// CategoryForm is a create submission with an optional staged icon.
type CategoryForm struct {
	Name    string
	Slug    string
	Section string
	Icon    *taxonomy.IconAsset
}

// CategoryPatch is an update submission; nil fields are left untouched.
type CategoryPatch struct {
	Name    *string
	Slug    *string
	Section *string
	Icon    *taxonomy.IconAsset
}

// Editor turns admin form submissions into store calls and store rejections
// into per-field feedback.
type Editor struct {
	store taxonomy.Service
}

func NewEditor(store taxonomy.Service) *Editor {
	return &Editor{store: store}
}

func (e *Editor) CreateSection(ctx context.Context, in taxonomy.SectionInput) (*taxonomy.Section, *Rejection, error) {
	log := auditLog(ctx, "CreateSection")

	section, err := e.store.CreateSection(ctx, in)
	if rej, err := reject(err); err != nil || rej != nil {
		return nil, rej, err
	}

	log.Info("section created", zap.String("section_id", section.ID))
	return section, nil, nil
}

// CreateCategory creates the category and, when an icon is staged, attaches it.
func (e *Editor) CreateCategory(ctx context.Context, form CategoryForm) (*Result, error) {
	log := auditLog(ctx, "CreateCategory")

	category, err := e.store.CreateCategory(ctx, taxonomy.CategoryInput{
		Name:    form.Name,
		Slug:    form.Slug,
		Section: form.Section,
	})
	if rej, err := reject(err); err != nil || rej != nil {
		return &Result{Rejected: rej}, err
	}

	if form.Icon != nil {
		withIcon, err := e.store.AttachIcon(ctx, category.ID, form.Icon)
		if err != nil {
			log.Warn("category created without icon", zap.String("category_id", category.ID), zap.Error(err))
			rej, err := rejectIcon(err)
			return &Result{Category: category, Rejected: rej}, err
		}
		category = withIcon
	}

	log.Info("category created", zap.String("category_id", category.ID), zap.Bool("published", category.Published()))
	return &Result{Category: category}, nil
}

func (e *Editor) UpdateCategory(ctx context.Context, id string, patch CategoryPatch) (*Result, error) {
	log := auditLog(ctx, "UpdateCategory").With(zap.String("category_id", id))

	in := taxonomy.UpdateCategoryInput{Name: patch.Name, Slug: patch.Slug, Section: patch.Section}
	if in.Empty() && patch.Icon == nil {
		return &Result{Rejected: &Rejection{
			Fields: FieldErrors{"form": "nothing to update"},
			Cause:  &taxonomy.ValidationError{Field: "form", Message: "nothing to update"},
		}}, nil
	}

	var category *taxonomy.Category
	if !in.Empty() {
		updated, err := e.store.UpdateCategory(ctx, id, in)
		if rej, err := reject(err); err != nil || rej != nil {
			return &Result{Rejected: rej}, err
		}
		category = updated
	}

	if patch.Icon != nil {
		withIcon, err := e.store.AttachIcon(ctx, id, patch.Icon)
		if err != nil {
			rej, err := rejectIcon(err)
			return &Result{Category: category, Rejected: rej}, err
		}
		category = withIcon
	}

	log.Info("category updated")
	return &Result{Category: category}, nil
}

// DeleteCategory removes the category and its types. A missing category is
// returned as is so the caller can answer 404.
func (e *Editor) DeleteCategory(ctx context.Context, id string) error {
	log := auditLog(ctx, "DeleteCategory").With(zap.String("category_id", id))

	if err := e.store.DeleteCategory(ctx, id); err != nil {
		log.Warn("delete failed", zap.Error(err))
		return err
	}

	log.Info("category deleted")
	return nil
}

func (e *Editor) AddType(ctx context.Context, categoryID string, in taxonomy.TypeInput) (*taxonomy.Type, *Rejection, error) {
	log := auditLog(ctx, "AddType").With(zap.String("category_id", categoryID))

	t, err := e.store.AddType(ctx, categoryID, in)
	if errors.Is(err, taxonomy.ErrNotFound) {
		return nil, nil, err
	}
	if rej, err := reject(err); err != nil || rej != nil {
		return nil, rej, err
	}

	log.Info("type added", zap.String("type_id", t.ID))
	return t, nil, nil
}

func (e *Editor) RemoveType(ctx context.Context, typeID string) error {
	log := auditLog(ctx, "RemoveType").With(zap.String("type_id", typeID))

	if err := e.store.RemoveType(ctx, typeID); err != nil {
		return err
	}

	log.Info("type removed")
	return nil
}

func (e *Editor) CreateBrand(ctx context.Context, in taxonomy.BrandInput) (*taxonomy.Brand, *Rejection, error) {
	log := auditLog(ctx, "CreateBrand")

	brand, err := e.store.CreateBrand(ctx, in)
	if rej, err := reject(err); err != nil || rej != nil {
		return nil, rej, err
	}

	log.Info("brand created", zap.String("brand_id", brand.ID))
	return brand, nil, nil
}

func auditLog(ctx context.Context, method string) *zap.Logger {
	return logger.FromCtx(ctx).With(
		zap.String("layer", "admin"),
		zap.String("method", method),
	)
}

// reject splits a store error into form feedback or a generic failure. It
// returns (nil, nil) for a nil error.
func reject(err error) (*Rejection, error) {
	if err == nil {
		return nil, nil
	}

	var ve *taxonomy.ValidationError
	if errors.As(err, &ve) {
		return &Rejection{Fields: FieldErrors{ve.Field: ve.Message}, Cause: err}, nil
	}

	var ce *taxonomy.ConflictError
	if errors.As(err, &ce) {
		field := ce.Field
		if field == "" {
			field = "slug"
		}
		return &Rejection{Fields: FieldErrors{field: "is already taken"}, Cause: err}, nil
	}

	var nf *taxonomy.NotFoundError
	if errors.As(err, &nf) && nf.Entity == "section" {
		return &Rejection{Fields: FieldErrors{"section": "does not exist"}, Cause: err}, nil
	}

	return nil, err
}

// rejectIcon reports a refused icon against the icon field; upload outages
// stay generic.
func rejectIcon(err error) (*Rejection, error) {
	var ve *taxonomy.ValidationError
	if errors.As(err, &ve) {
		return &Rejection{Fields: FieldErrors{"icon": ve.Message}, Cause: err}, nil
	}
	return nil, err
}

package taxonomy

import "encoding/json"

// Section is the top-level catalog grouping, e.g. "Apparel" or "Parts".
type Section struct {
	ID         string      `json:"id,omitempty"`
	Name       string      `json:"name"`
	Slug       string      `json:"slug"`
	Categories []*Category `json:"categories"`
}

// Category belongs to exactly one Section, referenced by the section slug.
type Category struct {
	ID              string     `json:"_id"`
	Name            string     `json:"name"`
	Slug            string     `json:"slug"`
	Section         string     `json:"section"`
	Icon            Icon       `json:"icon"`
	ApplicableTypes []*TypeRef `json:"types"`
}

// Published reports whether the category icon resolves to a stored asset.
func (c *Category) Published() bool {
	return c.Icon.Ref != nil && c.Icon.Asset == nil
}

// Type is the leaf grouping, owned by one Category.
type Type struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	CategoryID string `json:"category"`
}

// TypeRef is the lightweight projection a Category lists.
type TypeRef struct {
	ID   string `json:"_id,omitempty"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (t *Type) Ref() *TypeRef {
	return &TypeRef{ID: t.ID, Name: t.Name, Slug: t.Slug}
}

// Icon is either a staged upload or a persisted reference, never both.
type Icon struct {
	Asset *IconAsset `json:"-"`
	Ref   *IconRef   `json:"-"`
}

// MarshalJSON renders only the persisted reference; a staged asset is never exposed.
func (i Icon) MarshalJSON() ([]byte, error) {
	if i.Ref == nil {
		return []byte("null"), nil
	}
	return json.Marshal(i.Ref)
}

// IconAsset is an unsaved binary waiting to be uploaded.
type IconAsset struct {
	Filename    string
	ContentType string
	Data        []byte
}

// IconRef is the result contract of the asset storage service.
type IconRef struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
}

// Brand is a flat product facet, independent of the section hierarchy.
type Brand struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Logo        *string `json:"logo,omitempty"`
	Description *string `json:"description,omitempty"`
}

// FilterOptions is the flattened facet set used by the product filter UI.
type FilterOptions struct {
	Brands     []string `json:"brands"`
	Categories []string `json:"categories"`
	Types      []string `json:"types"`
}

type SectionInput struct {
	Name string `json:"name" validate:"required,max=120"`
	Slug string `json:"slug" validate:"omitempty,max=140"`
}

type CategoryInput struct {
	Name    string     `json:"name" validate:"required,max=120"`
	Slug    string     `json:"slug" validate:"omitempty,max=140"`
	Section string     `json:"section" validate:"required"`
	Icon    *IconAsset `json:"-"`
}

// UpdateCategoryInput carries a partial update; nil fields are left untouched.
type UpdateCategoryInput struct {
	Name    *string `json:"name" validate:"omitempty,max=120"`
	Slug    *string `json:"slug" validate:"omitempty,max=140"`
	Section *string `json:"section"`
}

func (in UpdateCategoryInput) Empty() bool {
	return in.Name == nil && in.Slug == nil && in.Section == nil
}

type TypeInput struct {
	Name string `json:"name" validate:"required,max=120"`
	Slug string `json:"slug" validate:"omitempty,max=140"`
}

type BrandInput struct {
	Name        string  `json:"name" validate:"required,max=120"`
	Logo        *string `json:"logo" validate:"omitempty,url"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

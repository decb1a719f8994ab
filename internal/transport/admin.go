package transport

import (
	"errors"
	"net/http"
	"strings"

	"motoshop-be/internal/admin"
	"motoshop-be/internal/taxonomy"

	"github.com/gin-gonic/gin"
)

// maxAdminBody leaves room for form fields next to the largest icon.
const maxAdminBody = admin.MaxIconSize + 1<<20

type categoryRequest struct {
	Name    string `json:"name" form:"name"`
	Slug    string `json:"slug" form:"slug"`
	Section string `json:"section" form:"section"`
}

type categoryPatchRequest struct {
	Name    *string `json:"name" form:"name"`
	Slug    *string `json:"slug" form:"slug"`
	Section *string `json:"section" form:"section"`
}

func (h *Handler) CreateSection(c *gin.Context) {
	var in taxonomy.SectionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	section, rej, err := h.editor.CreateSection(c.Request.Context(), in)
	switch {
	case err != nil:
		fail(c, err)
	case rej != nil:
		rejected(c, rej)
	default:
		respond(c, http.StatusCreated, "section created", section)
	}
}

// CreateCategory accepts JSON, or a multipart form carrying an optional icon.
func (h *Handler) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	icon, err := stagedIcon(c)
	if err != nil {
		fail(c, err)
		return
	}

	res, err := h.editor.CreateCategory(c.Request.Context(), admin.CategoryForm{
		Name:    req.Name,
		Slug:    req.Slug,
		Section: req.Section,
		Icon:    icon,
	})
	h.categoryResult(c, res, err, http.StatusCreated, "category created")
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	var req categoryPatchRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	icon, err := stagedIcon(c)
	if err != nil {
		fail(c, err)
		return
	}

	res, err := h.editor.UpdateCategory(c.Request.Context(), c.Param("id"), admin.CategoryPatch{
		Name:    req.Name,
		Slug:    req.Slug,
		Section: req.Section,
		Icon:    icon,
	})
	h.categoryResult(c, res, err, http.StatusOK, "category updated")
}

// ReplaceIcon uploads a new icon for an existing category.
func (h *Handler) ReplaceIcon(c *gin.Context) {
	icon, err := stagedIcon(c)
	if err != nil {
		fail(c, err)
		return
	}
	if icon == nil {
		fail(c, &taxonomy.ValidationError{Field: "icon", Message: "is required"})
		return
	}

	res, err := h.editor.UpdateCategory(c.Request.Context(), c.Param("id"), admin.CategoryPatch{Icon: icon})
	h.categoryResult(c, res, err, http.StatusOK, "icon replaced")
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	if err := h.editor.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "category deleted", nil)
}

func (h *Handler) AddType(c *gin.Context) {
	var in taxonomy.TypeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	t, rej, err := h.editor.AddType(c.Request.Context(), c.Param("id"), in)
	switch {
	case err != nil:
		fail(c, err)
	case rej != nil:
		rejected(c, rej)
	default:
		respond(c, http.StatusCreated, "type added", t)
	}
}

func (h *Handler) RemoveType(c *gin.Context) {
	if err := h.editor.RemoveType(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "type removed", nil)
}

func (h *Handler) CreateBrand(c *gin.Context) {
	var in taxonomy.BrandInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	brand, rej, err := h.editor.CreateBrand(c.Request.Context(), in)
	switch {
	case err != nil:
		fail(c, err)
	case rej != nil:
		rejected(c, rej)
	default:
		respond(c, http.StatusCreated, "brand created", brand)
	}
}

func (h *Handler) ListBrands(c *gin.Context) {
	brands, err := h.store.ListBrands(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "brands", brands)
}

func (h *Handler) categoryResult(c *gin.Context, res *admin.Result, err error, status int, message string) {
	switch {
	case err != nil:
		fail(c, err)
	case !res.OK():
		rejected(c, res.Rejected)
	default:
		respond(c, status, message, res.Category)
	}
}

// stagedIcon returns the "icon" file of a multipart request, or nil when the
// request carries none.
func stagedIcon(c *gin.Context) (*taxonomy.IconAsset, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		return nil, nil
	}

	file, err := c.FormFile("icon")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, &taxonomy.ValidationError{Field: "icon", Message: "could not be read"}
	}
	return admin.StageIcon(file)
}

// limitBody caps admin request bodies.
func limitBody(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxAdminBody)
	c.Next()
}

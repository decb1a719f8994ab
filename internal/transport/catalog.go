package transport

import (
	"context"
	"net/http"
	"strings"
	"time"

	"motoshop-be/internal/search"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status, code := "ok", http.StatusOK
	if h.db != nil {
		if err := h.db.PingContext(ctx); err != nil {
			status, code = "degraded", http.StatusServiceUnavailable
		}
	}

	c.JSON(code, gin.H{
		"status":  status,
		"metrics": h.metrics.Snapshot(),
	})
}

func (h *Handler) ListSections(c *gin.Context) {
	sections, err := h.store.ListSections(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "sections", sections)
}

func (h *Handler) ResolveSection(c *gin.Context) {
	section, err := h.queries.ResolveSection(c.Request.Context(), c.Param("slug"))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "section", section)
}

func (h *Handler) SectionCategories(c *gin.Context) {
	categories, err := h.queries.CategoriesFor(c.Request.Context(), c.Param("slug"))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "categories", categories)
}

func (h *Handler) CategoryTypes(c *gin.Context) {
	types, err := h.queries.TypesFor(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "types", types)
}

// FilterOptions lists the facets for ?section=, or for the whole catalog.
func (h *Handler) FilterOptions(c *gin.Context) {
	var section *string
	if s := strings.TrimSpace(c.Query("section")); s != "" {
		section = &s
	}

	opts, err := h.queries.FilterOptionsFor(c.Request.Context(), section)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "filter options", opts)
}

// SearchProducts normalises the listing query. The product listing itself
// lives in another service; this returns the filter it should run and the
// canonical query string for shareable links.
func (h *Handler) SearchProducts(c *gin.Context) {
	f := search.Decode(c.Request.URL.RawQuery)

	respond(c, http.StatusOK, "search filter", gin.H{
		"filter": f,
		"query":  search.Encode(f),
		"offset": f.Offset(),
	})
}

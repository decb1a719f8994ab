package transport

import (
	"net/http"

	"motoshop-be/internal/wishlist"

	"github.com/gin-gonic/gin"
)

type quantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func (h *Handler) GetWishlist(c *gin.Context) {
	respond(c, http.StatusOK, "wishlist", wishlistView(h.wishlist.Load(c.Request)))
}

func (h *Handler) AddToWishlist(c *gin.Context) {
	var item wishlist.Item
	if err := c.ShouldBindJSON(&item); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	h.mutateWishlist(c, func(l *wishlist.List) error { return l.Add(item) })
}

func (h *Handler) SetWishlistQuantity(c *gin.Context) {
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "quantity is required")
		return
	}

	id := c.Param("id")
	h.mutateWishlist(c, func(l *wishlist.List) error { return l.SetQuantity(id, *req.Quantity) })
}

func (h *Handler) RemoveFromWishlist(c *gin.Context) {
	id := c.Param("id")
	h.mutateWishlist(c, func(l *wishlist.List) error { return l.Remove(id) })
}

func (h *Handler) mutateWishlist(c *gin.Context, change func(*wishlist.List) error) {
	l := h.wishlist.Load(c.Request)
	if err := change(l); err != nil {
		fail(c, err)
		return
	}
	if err := h.wishlist.Save(c.Request, c.Writer, l); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "wishlist updated", wishlistView(l))
}

func wishlistView(l *wishlist.List) gin.H {
	return gin.H{"items": l.Items(), "count": l.Count()}
}

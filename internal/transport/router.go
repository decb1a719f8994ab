package transport

import (
	"time"

	"motoshop-be/internal/logger"
	"motoshop-be/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	CORSOrigins []string
	JWTSecret   []byte
	Limiter     *middleware.RateLimiter
}

// NewRouter mounts the public catalog, the wishlist and the admin API.
func NewRouter(h *Handler, cfg RouterConfig) *gin.Engine {
	r := gin.New()

	r.Use(
		middleware.Recovery(),
		logger.RequestIDMiddleware(),
		logger.LoggingMiddleware(),
		h.metrics.Middleware(),
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID", "X-Device-ID"},
			ExposeHeaders:    []string{logger.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)

	limiter := cfg.Limiter
	if limiter == nil {
		limiter = middleware.NewRateLimiter(3 * time.Minute)
	}

	r.GET("/health", h.Health)

	api := r.Group("/api")
	catalog := api.Group("", limiter.Limit(middleware.TierFrontend))
	{
		catalog.GET("/sections", h.ListSections)
		catalog.GET("/sections/:slug", h.ResolveSection)
		catalog.GET("/sections/:slug/categories", h.SectionCategories)
		catalog.GET("/categories/:id/types", h.CategoryTypes)
		catalog.GET("/filters", h.FilterOptions)
		catalog.GET("/products/search", h.SearchProducts)
	}

	wl := api.Group("/wishlist", limiter.Limit(middleware.TierGeneral))
	{
		wl.GET("", h.GetWishlist)
		wl.POST("", h.AddToWishlist)
		wl.PATCH("/:id", h.SetWishlistQuantity)
		wl.DELETE("/:id", h.RemoveFromWishlist)
	}

	adm := api.Group("/admin", middleware.RequireAdmin(cfg.JWTSecret), limitBody)
	{
		reads := adm.Group("", limiter.Limit(middleware.TierGeneral))
		reads.GET("/brands", h.ListBrands)

		writes := adm.Group("", limiter.Limit(middleware.TierStrict))
		writes.POST("/sections", h.CreateSection)
		writes.POST("/categories", h.CreateCategory)
		writes.PATCH("/categories/:id", h.UpdateCategory)
		writes.DELETE("/categories/:id", h.DeleteCategory)
		writes.PUT("/categories/:id/icon", h.ReplaceIcon)
		writes.POST("/categories/:id/types", h.AddType)
		writes.DELETE("/types/:id", h.RemoveType)
		writes.POST("/brands", h.CreateBrand)
	}

	return r
}

package transport

import (
	"context"

	"motoshop-be/internal/admin"
	"motoshop-be/internal/metrics"
	"motoshop-be/internal/taxonomy"
	"motoshop-be/internal/wishlist"
)

// Queries is the read side the public catalog endpoints need.
type Queries interface {
	ResolveSection(ctx context.Context, slug string) (*taxonomy.Section, error)
	CategoriesFor(ctx context.Context, sectionSlug string) ([]*taxonomy.Category, error)
	TypesFor(ctx context.Context, categoryID string) ([]*taxonomy.TypeRef, error)
	FilterOptionsFor(ctx context.Context, sectionSlug *string) (*taxonomy.FilterOptions, error)
}

// Pinger reports database reachability for /health.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	store    taxonomy.Service
	queries  Queries
	editor   *admin.Editor
	wishlist *wishlist.SessionStore
	metrics  *metrics.Registry
	db       Pinger
}

func NewHandler(
	store taxonomy.Service,
	queries Queries,
	editor *admin.Editor,
	wl *wishlist.SessionStore,
	reg *metrics.Registry,
	db Pinger,
) *Handler {
	return &Handler{
		store:    store,
		queries:  queries,
		editor:   editor,
		wishlist: wl,
		metrics:  reg,
		db:       db,
	}
}

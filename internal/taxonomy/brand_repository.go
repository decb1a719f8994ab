package taxonomy

import (
	"context"
	"fmt"

	"motoshop-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (r *repository) InsertBrand(ctx context.Context, in BrandInput) (*Brand, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "InsertBrand"),
		zap.String("name", in.Name),
	)

	b := &Brand{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Logo:        in.Logo,
		Description: in.Description,
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO brands (id, name, logo, description) VALUES ($1, $2, $3, $4)`,
		b.ID, b.Name, b.Logo, b.Description,
	)
	if err != nil {
		if pgCode(err) == PgUniqueViolation {
			return nil, &ConflictError{Entity: "brand", Field: "name", Value: in.Name}
		}
		log.Error("InsertBrand DB query failed", zap.Error(err))
		return nil, fmt.Errorf("add brand failed: %w", err)
	}

	return b, nil
}

func (r *repository) ListBrands(ctx context.Context) ([]*Brand, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, logo, description FROM brands ORDER BY position ASC`)
	if err != nil {
		logger.FromCtx(ctx).Error("ListBrands DB query failed", zap.Error(err))
		return nil, fmt.Errorf("list brands failed: %w", err)
	}
	defer rows.Close()

	brands := []*Brand{}
	for rows.Next() {
		var b Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.Logo, &b.Description); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		brands = append(brands, &b)
	}

	return brands, rows.Err()
}

package repositories

import (
	"context"

	"inventory/internal/models"
)

// ProductRepository defines the storage engine primitives behind the products
// table. Values handed to it are already validated and normalized.
type ProductRepository interface {
	Query(ctx context.Context, columns []string, selection *models.Selection, sortOrder string) ([]models.Product, error)
	Insert(ctx context.Context, values models.Values) (int64, error)
	Update(ctx context.Context, values models.Values, selection *models.Selection) (int64, error)
	Delete(ctx context.Context, selection *models.Selection) (int64, error)
}

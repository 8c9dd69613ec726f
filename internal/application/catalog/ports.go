package catalog

import (
	"context"

	"github.com/jhoicas/autoparts-storefront/internal/domain/entity"
)

// Gateway lecturas de catálogo contra el backend.
type Gateway interface {
	ListProducts(ctx context.Context, onlyAvailable bool) ([]*entity.Product, error)
	GetProduct(ctx context.Context, id string) (*entity.Product, error)
	ListCategories(ctx context.Context) ([]*entity.Category, error)
	ListBranches(ctx context.Context) ([]*entity.Branch, error)
}

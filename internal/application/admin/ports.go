package admin

import (
	"context"

	"github.com/jhoicas/autoparts-storefront/internal/domain/entity"
)

// Gateway operaciones de back-office contra el backend. Las actualizaciones llevan el ID
// dentro de la entidad.
type Gateway interface {
	ListUsers(ctx context.Context, token string) ([]*entity.User, error)
	UpdateUser(ctx context.Context, token string, u *entity.User) (*entity.User, error)
	DeleteUser(ctx context.Context, token, id string) error

	ListProducts(ctx context.Context, onlyAvailable bool) ([]*entity.Product, error)
	CreateProduct(ctx context.Context, token string, p *entity.Product) (*entity.Product, error)
	UpdateProduct(ctx context.Context, token string, p *entity.Product) (*entity.Product, error)
	DeleteProduct(ctx context.Context, token, id string) error

	ListCategories(ctx context.Context) ([]*entity.Category, error)
	CreateCategory(ctx context.Context, token string, c *entity.Category) (*entity.Category, error)
	UpdateCategory(ctx context.Context, token string, c *entity.Category) (*entity.Category, error)
	DeleteCategory(ctx context.Context, token, id string) error

	ListSubcategories(ctx context.Context) ([]*entity.Subcategory, error)
	CreateSubcategory(ctx context.Context, token string, s *entity.Subcategory) (*entity.Subcategory, error)
	UpdateSubcategory(ctx context.Context, token string, s *entity.Subcategory) (*entity.Subcategory, error)
	DeleteSubcategory(ctx context.Context, token, id string) error

	ListBranches(ctx context.Context) ([]*entity.Branch, error)
	CreateBranch(ctx context.Context, token string, b *entity.Branch) (*entity.Branch, error)
	UpdateBranch(ctx context.Context, token string, b *entity.Branch) (*entity.Branch, error)
	DeleteBranch(ctx context.Context, token, id string) error

	ListInventory(ctx context.Context, token string) ([]*entity.InventoryRow, error)
	AddStock(ctx context.Context, token, productID, branchID string, qty int) error
	RemoveStock(ctx context.Context, token, productID, branchID string, qty int) error
	DeleteInventory(ctx context.Context, token, productID, branchID string) error

	ListOrders(ctx context.Context, token string) ([]*entity.Order, error)
	DeleteOrder(ctx context.Context, token, id string) error

	ListPayments(ctx context.Context, token string) ([]*entity.Payment, error)
	UpdatePayment(ctx context.Context, token string, p *entity.Payment) (*entity.Payment, error)
	DeletePayment(ctx context.Context, token, id string) error

	ListAudit(ctx context.Context, token string) ([]*entity.AuditEntry, error)
}

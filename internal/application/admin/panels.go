package admin

import (
	"context"
	"fmt"

	"github.com/jhoicas/autoparts-storefront/internal/domain"
	"github.com/jhoicas/autoparts-storefront/internal/domain/entity"
)

// Nombres de paneles, usados también como nombres de lookup.
const (
	PanelUsers         = "usuarios"
	PanelProducts      = "productos"
	PanelCategories    = "categorias"
	PanelSubcategories = "subcategorias"
	PanelBranches      = "sucursales"
	PanelInventory     = "inventario"
	PanelOrders        = "pedidos"
	PanelPayments      = "pagos"
	PanelAudit         = "bitacora"
)

// Service fábrica de paneles ligados al token del administrador.
type Service struct {
	gw Gateway
}

// NewService construye el servicio.
func NewService(gw Gateway) *Service {
	return &Service{gw: gw}
}

func noToken[T any](f func(ctx context.Context) ([]T, error)) func(context.Context, string) ([]T, error) {
	return func(ctx context.Context, _ string) ([]T, error) { return f(ctx) }
}

// Users panel de usuarios. El alta de usuarios va por el registro público.
func (s *Service) Users(token string) *Panel[*entity.User] {
	return NewPanel(Resource[*entity.User]{
		Name: PanelUsers,
		List: s.gw.ListUsers,
		Update: func(ctx context.Context, token, id string, u *entity.User) (*entity.User, error) {
			if !entity.IsValidRole(u.Role) {
				return nil, &domain.ValidationError{Fields: []string{"rol"}}
			}
			u.ID = id
			return s.gw.UpdateUser(ctx, token, u)
		},
		Delete: s.gw.DeleteUser,
		ID:     func(u *entity.User) string { return u.ID },
		Required: func(u *entity.User) []string {
			return required("rut", u.RUT, "nombre", u.Name, "email", u.Email, "rol", u.Role)
		},
	}, token)
}

// Products panel de productos con categorías como referencia.
func (s *Service) Products(token string) *Panel[*entity.Product] {
	return NewPanel(Resource[*entity.Product]{
		Name: PanelProducts,
		List: func(ctx context.Context, _ string) ([]*entity.Product, error) {
			return s.gw.ListProducts(ctx, false)
		},
		Create: s.gw.CreateProduct,
		Update: func(ctx context.Context, token, id string, p *entity.Product) (*entity.Product, error) {
			p.ID = id
			return s.gw.UpdateProduct(ctx, token, p)
		},
		Delete: s.gw.DeleteProduct,
		ID:     func(p *entity.Product) string { return p.ID },
		Required: func(p *entity.Product) []string {
			missing := required("nombre", p.Name, "marca", p.Brand, "codigo_interno", p.InternalCode, "categoria_id", p.CategoryID)
			if !p.Price.IsPositive() {
				missing = append(missing, "precio")
			}
			if p.MinStock < 0 {
				missing = append(missing, "stock_minimo")
			}
			return missing
		},
	}, token, s.categoryLookup())
}

// Categories panel de categorías.
func (s *Service) Categories(token string) *Panel[*entity.Category] {
	return NewPanel(Resource[*entity.Category]{
		Name:   PanelCategories,
		List:   noToken(s.gw.ListCategories),
		Create: s.gw.CreateCategory,
		Update: func(ctx context.Context, token, id string, c *entity.Category) (*entity.Category, error) {
			c.ID = id
			return s.gw.UpdateCategory(ctx, token, c)
		},
		Delete:   s.gw.DeleteCategory,
		ID:       func(c *entity.Category) string { return c.ID },
		Required: func(c *entity.Category) []string { return required("nombre", c.Name) },
	}, token)
}

// Subcategories panel de subcategorías con sus categorías padre.
func (s *Service) Subcategories(token string) *Panel[*entity.Subcategory] {
	return NewPanel(Resource[*entity.Subcategory]{
		Name:   PanelSubcategories,
		List:   noToken(s.gw.ListSubcategories),
		Create: s.gw.CreateSubcategory,
		Update: func(ctx context.Context, token, id string, sc *entity.Subcategory) (*entity.Subcategory, error) {
			sc.ID = id
			return s.gw.UpdateSubcategory(ctx, token, sc)
		},
		Delete: s.gw.DeleteSubcategory,
		ID:     func(sc *entity.Subcategory) string { return sc.ID },
		Required: func(sc *entity.Subcategory) []string {
			return required("nombre", sc.Name, "categoria_id", sc.CategoryID)
		},
	}, token, s.categoryLookup())
}

// Branches panel de sucursales.
func (s *Service) Branches(token string) *Panel[*entity.Branch] {
	return NewPanel(Resource[*entity.Branch]{
		Name:   PanelBranches,
		List:   noToken(s.gw.ListBranches),
		Create: s.gw.CreateBranch,
		Update: func(ctx context.Context, token, id string, b *entity.Branch) (*entity.Branch, error) {
			b.ID = id
			return s.gw.UpdateBranch(ctx, token, b)
		},
		Delete: s.gw.DeleteBranch,
		ID:     func(b *entity.Branch) string { return b.ID },
		Required: func(b *entity.Branch) []string {
			return required("nombre", b.Name, "direccion", b.Address, "comuna", b.Comuna, "region", b.Region)
		},
	}, token)
}

// Orders panel de pedidos; resuelve el nombre del usuario de cada pedido.
// Los cambios de estado pasan por orders.Service para validar la progresión.
func (s *Service) Orders(token string) *Panel[*entity.Order] {
	return NewPanel(Resource[*entity.Order]{
		Name:   PanelOrders,
		List:   s.gw.ListOrders,
		Delete: s.gw.DeleteOrder,
		ID:     func(o *entity.Order) string { return o.ID },
	}, token, s.userLookup())
}

// Payments panel de pagos; sólo se edita el estado.
func (s *Service) Payments(token string) *Panel[*entity.Payment] {
	return NewPanel(Resource[*entity.Payment]{
		Name: PanelPayments,
		List: s.gw.ListPayments,
		Update: func(ctx context.Context, token, id string, p *entity.Payment) (*entity.Payment, error) {
			p.ID = id
			return s.gw.UpdatePayment(ctx, token, p)
		},
		Delete: s.gw.DeletePayment,
		ID:     func(p *entity.Payment) string { return p.ID },
		Required: func(p *entity.Payment) []string {
			missing := required("pedido_id", p.OrderID, "metodo", p.Method, "estado", p.Status)
			if p.Method != "" && !entity.IsValidPaymentMethod(p.Method) {
				missing = append(missing, "metodo")
			}
			switch p.Status {
			case "", entity.PaymentPending, entity.PaymentPaid, entity.PaymentFailed:
			default:
				missing = append(missing, "estado")
			}
			return missing
		},
	}, token, s.orderLookup())
}

// Audit bitácora, sólo lectura.
func (s *Service) Audit(token string) *Panel[*entity.AuditEntry] {
	return NewPanel(Resource[*entity.AuditEntry]{
		Name: PanelAudit,
		List: s.gw.ListAudit,
		ID:   func(a *entity.AuditEntry) string { return a.ID },
	}, token, s.userLookup())
}

func (s *Service) categoryLookup() Lookup {
	return Lookup{Name: PanelCategories, Load: func(ctx context.Context, _ string) (map[string]string, error) {
		list, err := s.gw.ListCategories(ctx)
		if err != nil {
			return nil, err
		}
		m := make(map[string]string, len(list))
		for _, c := range list {
			m[c.ID] = c.Name
		}
		return m, nil
	}}
}

func (s *Service) userLookup() Lookup {
	return Lookup{Name: PanelUsers, Load: func(ctx context.Context, token string) (map[string]string, error) {
		list, err := s.gw.ListUsers(ctx, token)
		if err != nil {
			return nil, err
		}
		m := make(map[string]string, len(list))
		for _, u := range list {
			m[u.ID] = u.Name
		}
		return m, nil
	}}
}

func (s *Service) orderLookup() Lookup {
	return Lookup{Name: PanelOrders, Load: func(ctx context.Context, token string) (map[string]string, error) {
		list, err := s.gw.ListOrders(ctx, token)
		if err != nil {
			return nil, err
		}
		m := make(map[string]string, len(list))
		for _, o := range list {
			m[o.ID] = fmt.Sprintf("Pedido #%s (%s)", o.ID, o.Status)
		}
		return m, nil
	}}
}

func (s *Service) productLookup() Lookup {
	return Lookup{Name: PanelProducts, Load: func(ctx context.Context, _ string) (map[string]string, error) {
		list, err := s.gw.ListProducts(ctx, false)
		if err != nil {
			return nil, err
		}
		m := make(map[string]string, len(list))
		for _, p := range list {
			m[p.ID] = p.Name
		}
		return m, nil
	}}
}

func (s *Service) branchLookup() Lookup {
	return Lookup{Name: PanelBranches, Load: func(ctx context.Context, _ string) (map[string]string, error) {
		list, err := s.gw.ListBranches(ctx)
		if err != nil {
			return nil, err
		}
		m := make(map[string]string, len(list))
		for _, b := range list {
			m[b.ID] = b.Name
		}
		return m, nil
	}}
}

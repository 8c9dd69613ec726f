package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/autoparts-storefront/internal/domain/entity"
)

// PanelResponse colección de un panel con los nombres de las colecciones que referencia.
type PanelResponse struct {
	Panel   string                       `json:"panel"`
	Items   any                          `json:"items"`
	Lookups map[string]map[string]string `json:"referencias"`
}

// UserRequest edición de un usuario desde el panel.
type UserRequest struct {
	RUT   string `json:"rut"`
	Name  string `json:"nombre"`
	Email string `json:"email"`
	Role  string `json:"rol"`
}

// ToEntity convierte la petición.
func (r UserRequest) ToEntity() *entity.User {
	return &entity.User{RUT: r.RUT, Name: r.Name, Email: r.Email, Role: r.Role}
}

// ProductRequest alta o edición de un producto.
type ProductRequest struct {
	ManufacturerCode string          `json:"codigo_fabricante"`
	Brand            string          `json:"marca"`
	InternalCode     string          `json:"codigo_interno"`
	Name             string          `json:"nombre"`
	Description      string          `json:"descripcion"`
	Price            decimal.Decimal `json:"precio"`
	MinStock         int             `json:"stock_minimo"`
	CategoryID       string          `json:"categoria_id"`
	Image            string          `json:"imagen"`
}

// ToEntity convierte la petición.
func (r ProductRequest) ToEntity() *entity.Product {
	return &entity.Product{
		ManufacturerCode: r.ManufacturerCode,
		Brand:            r.Brand,
		InternalCode:     r.InternalCode,
		Name:             r.Name,
		Description:      r.Description,
		Price:            r.Price,
		MinStock:         r.MinStock,
		CategoryID:       r.CategoryID,
		Image:            r.Image,
	}
}

// CategoryRequest alta o edición de una categoría.
type CategoryRequest struct {
	Name string `json:"nombre"`
}

// SubcategoryRequest alta o edición de una subcategoría.
type SubcategoryRequest struct {
	Name       string `json:"nombre"`
	CategoryID string `json:"categoria_id"`
}

// BranchRequest alta o edición de una sucursal.
type BranchRequest struct {
	Name    string `json:"nombre"`
	Address string `json:"direccion"`
	Comuna  string `json:"comuna"`
	Region  string `json:"region"`
}

// ToEntity convierte la petición.
func (r BranchRequest) ToEntity() *entity.Branch {
	return &entity.Branch{Name: r.Name, Address: r.Address, Comuna: r.Comuna, Region: r.Region}
}

// PaymentRequest edición de un pago.
type PaymentRequest struct {
	OrderID string          `json:"pedido_id"`
	Amount  decimal.Decimal `json:"monto"`
	Method  string          `json:"metodo"`
	Status  string          `json:"estado"`
}

// ToEntity convierte la petición.
func (r PaymentRequest) ToEntity() *entity.Payment {
	return &entity.Payment{OrderID: r.OrderID, Amount: r.Amount, Method: r.Method, Status: r.Status}
}

// StockMovementRequest ingreso o rebaja de stock.
type StockMovementRequest struct {
	ProductID string `json:"producto_id"`
	BranchID  string `json:"sucursal_id"`
	Quantity  int    `json:"cantidad"`
}

// InventoryRowResponse fila de inventario.
type InventoryRowResponse struct {
	ProductID string `json:"producto_id"`
	BranchID  string `json:"sucursal_id"`
	Stock     int    `json:"stock"`
}

// InventoryResponse panel de inventario con las filas bajo el mínimo.
type InventoryResponse struct {
	Items    []InventoryRowResponse       `json:"items"`
	LowStock []InventoryRowResponse       `json:"bajo_minimo"`
	Lookups  map[string]map[string]string `json:"referencias"`
}

// AuditResponse fila de bitácora.
type AuditResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"usuario_id"`
	Action    string    `json:"accion"`
	Timestamp time.Time `json:"fecha"`
}

// FromInventoryRows mapea filas de inventario; nunca devuelve nil.
func FromInventoryRows(rows []*entity.InventoryRow) []InventoryRowResponse {
	out := make([]InventoryRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, InventoryRowResponse{ProductID: r.ProductID, BranchID: r.BranchID, Stock: r.Stock})
	}
	return out
}

// FromAudit mapea una fila de bitácora.
func FromAudit(a *entity.AuditEntry) AuditResponse {
	return AuditResponse{ID: a.ID, UserID: a.UserID, Action: a.Action, Timestamp: a.Timestamp}
}

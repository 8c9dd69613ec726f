package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/autoparts-storefront/internal/domain/entity"
)

// ID acepta identificadores numéricos o string y siempre se emite como string.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: se esperaba número o string: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Time acepta RFC 3339 y los formatos sin zona que usa el backend.
type Time struct {
	time.Time
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (t *Time) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
			return nil
		}
		return fmt.Errorf("fecha: %w", err)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("fecha: formato no reconocido %q", s)
}

func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339))
}

// ── Tipos de transporte ───────────────────────────────────────────────────────

type userWire struct {
	ID               ID     `json:"id" validate:"required"`
	RUT              string `json:"rut"`
	Name             string `json:"nombre" validate:"required"`
	Email            string `json:"email" validate:"required"`
	Role             string `json:"rol" validate:"required"`
	RegistrationDate Time   `json:"fecha_registro"`
}

func (w userWire) entity() *entity.User {
	return &entity.User{
		ID:               string(w.ID),
		RUT:              w.RUT,
		Name:             w.Name,
		Email:            w.Email,
		Role:             w.Role,
		RegistrationDate: w.RegistrationDate.Time,
	}
}

type userBody struct {
	RUT      string `json:"rut"`
	Name     string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Role     string `json:"rol"`
}

type loginResponse struct {
	Token string   `json:"token" validate:"required"`
	User  userWire `json:"user"`
}

type productWire struct {
	ID               ID              `json:"id" validate:"required"`
	ManufacturerCode string          `json:"codigo_fabricante"`
	Brand            string          `json:"marca"`
	InternalCode     string          `json:"codigo_interno"`
	Name             string          `json:"nombre" validate:"required"`
	Description      string          `json:"descripcion"`
	Price            decimal.Decimal `json:"precio"`
	MinStock         int             `json:"stock_minimo"`
	CategoryID       ID              `json:"categoria_id"`
	Image            string          `json:"imagen"`
}

func (w productWire) entity() *entity.Product {
	return &entity.Product{
		ID:               string(w.ID),
		ManufacturerCode: w.ManufacturerCode,
		Brand:            w.Brand,
		InternalCode:     w.InternalCode,
		Name:             w.Name,
		Description:      w.Description,
		Price:            w.Price,
		MinStock:         w.MinStock,
		CategoryID:       string(w.CategoryID),
		Image:            w.Image,
	}
}

type productBody struct {
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

func newProductBody(p *entity.Product) productBody {
	return productBody{
		ManufacturerCode: p.ManufacturerCode,
		Brand:            p.Brand,
		InternalCode:     p.InternalCode,
		Name:             p.Name,
		Description:      p.Description,
		Price:            p.Price,
		MinStock:         p.MinStock,
		CategoryID:       p.CategoryID,
		Image:            p.Image,
	}
}

type categoryWire struct {
	ID   ID     `json:"id" validate:"required"`
	Name string `json:"nombre" validate:"required"`
}

type subcategoryWire struct {
	ID         ID     `json:"id" validate:"required"`
	Name       string `json:"nombre" validate:"required"`
	CategoryID ID     `json:"categoria_id"`
}

type branchWire struct {
	ID      ID     `json:"id" validate:"required"`
	Name    string `json:"nombre" validate:"required"`
	Address string `json:"direccion"`
	Comuna  string `json:"comuna"`
	Region  string `json:"region"`
}

func (w branchWire) entity() *entity.Branch {
	return &entity.Branch{ID: string(w.ID), Name: w.Name, Address: w.Address, Comuna: w.Comuna, Region: w.Region}
}

type inventoryWire struct {
	ProductID ID  `json:"producto_id" validate:"required"`
	BranchID  ID  `json:"sucursal_id" validate:"required"`
	Stock     int `json:"stock"`
}

type stockBody struct {
	ProductID string `json:"producto_id"`
	BranchID  string `json:"sucursal_id"`
	Quantity  int    `json:"cantidad"`
}

type cartItemWire struct {
	ProductID ID              `json:"producto_id" validate:"required"`
	BranchID  ID              `json:"sucursal_id"`
	Name      string          `json:"nombre,omitempty"`
	Quantity  int             `json:"cantidad" validate:"gte=1"`
	UnitValue decimal.Decimal `json:"valor_unitario"`
	Total     decimal.Decimal `json:"total"`
}

type cartWire struct {
	ID    ID             `json:"id" validate:"required"`
	Items []cartItemWire `json:"items" validate:"dive"`
}

func (w cartWire) entity() *entity.Cart {
	c := &entity.Cart{ID: string(w.ID)}
	for _, it := range w.Items {
		c.Items = append(c.Items, entity.CartItem{
			ProductID: string(it.ProductID),
			BranchID:  string(it.BranchID),
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitValue: it.UnitValue,
			Total:     it.Total,
		})
	}
	return c
}

type orderWire struct {
	ID              ID              `json:"id" validate:"required"`
	UserID          ID              `json:"usuario_id"`
	CartID          ID              `json:"carrito_id"`
	DeliveryAddress string          `json:"direccion_entrega"`
	Status          string          `json:"estado" validate:"required,oneof=pendiente confirmado enviado entregado cancelado"`
	Total           decimal.Decimal `json:"total"`
	CreatedAt       Time            `json:"fecha"`
}

func (w orderWire) entity() *entity.Order {
	return &entity.Order{
		ID:              string(w.ID),
		UserID:          string(w.UserID),
		CartID:          string(w.CartID),
		DeliveryAddress: w.DeliveryAddress,
		Status:          w.Status,
		Total:           w.Total,
		CreatedAt:       w.CreatedAt.Time,
	}
}

type orderBody struct {
	UserID          string          `json:"usuario_id"`
	CartID          string          `json:"carrito_id"`
	DeliveryAddress string          `json:"direccion_entrega"`
	Total           decimal.Decimal `json:"total"`
	PaymentMethod   string          `json:"metodo_pago"`
}

type paymentWire struct {
	ID        ID              `json:"id" validate:"required"`
	OrderID   ID              `json:"pedido_id" validate:"required"`
	Amount    decimal.Decimal `json:"monto"`
	Method    string          `json:"metodo"`
	Status    string          `json:"estado" validate:"required,oneof=pendiente pagado fallido"`
	Timestamp Time            `json:"fecha"`
}

func (w paymentWire) entity() *entity.Payment {
	return &entity.Payment{
		ID:        string(w.ID),
		OrderID:   string(w.OrderID),
		Amount:    w.Amount,
		Method:    w.Method,
		Status:    w.Status,
		Timestamp: w.Timestamp.Time,
	}
}

type paymentBody struct {
	OrderID string          `json:"pedido_id"`
	Amount  decimal.Decimal `json:"monto"`
	Method  string          `json:"metodo"`
	Status  string          `json:"estado"`
}

type auditWire struct {
	ID        ID     `json:"id" validate:"required"`
	UserID    ID     `json:"usuario_id"`
	Action    string `json:"accion" validate:"required"`
	Timestamp Time   `json:"fecha"`
}

type transactionWire struct {
	Token   string          `json:"token" validate:"required"`
	OrderID ID              `json:"pedido_id"`
	Amount  decimal.Decimal `json:"monto"`
	URL     string          `json:"url"`
}

type statsWire struct {
	Total      int             `json:"total"`
	Approved   int             `json:"aprobadas"`
	Rejected   int             `json:"rechazadas"`
	Pending    int             `json:"pendientes"`
	AmountPaid decimal.Decimal `json:"monto_total"`
}

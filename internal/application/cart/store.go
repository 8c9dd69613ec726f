// Package cart mantiene el carrito de cada sesión con actualización local optimista
// y sincronización best-effort contra el carrito remoto del backend.
//
// Las fallas remotas se registran y se avisan con un toast; el estado local nunca se revierte,
// por lo que local y remoto pueden divergir hasta un Refresh manual.
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/autoparts-storefront/internal/application/notify"
	"github.com/jhoicas/autoparts-storefront/internal/domain"
	"github.com/jhoicas/autoparts-storefront/internal/domain/entity"
	"github.com/jhoicas/autoparts-storefront/internal/domain/repository"
)

const msgSyncFailed = "No se pudo sincronizar el carrito con el servidor"

// Owner identifica la sesión dueña del carrito y sus credenciales contra el backend.
type Owner struct {
	SessionID string
	UserID    string
	Token     string
}

// storedItem formato persistido bajo la clave "cart".
type storedItem struct {
	ProductID string          `json:"producto_id"`
	BranchID  string          `json:"sucursal_id"`
	Name      string          `json:"nombre,omitempty"`
	Quantity  int             `json:"cantidad"`
	UnitValue decimal.Decimal `json:"valor_unitario"`
	Total     decimal.Decimal `json:"total"`
}

// Store carrito de una sesión.
type Store struct {
	owner    Owner
	state    repository.StateStore
	gw       Gateway
	notifier notify.Notifier
	cart     entity.Cart
}

// Open construye el store e hidrata las líneas y el ID remoto persistidos.
func Open(ctx context.Context, state repository.StateStore, gw Gateway, owner Owner, notifier notify.Notifier) (*Store, error) {
	s := &Store{owner: owner, state: state, gw: gw, notifier: notifier}
	if err := s.hydrate(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) hydrate(ctx context.Context) error {
	id, ok, err := s.state.Get(ctx, s.owner.SessionID, repository.KeyCartID)
	if err != nil {
		return fmt.Errorf("cart: leer cartId: %w", err)
	}
	if ok {
		s.cart.ID = id
	}
	raw, ok, err := s.state.Get(ctx, s.owner.SessionID, repository.KeyCart)
	if err != nil {
		return fmt.Errorf("cart: leer líneas: %w", err)
	}
	if !ok || raw == "" {
		return nil
	}
	var items []storedItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.Warn().Err(err).Str("session_id", s.owner.SessionID).Msg("carrito persistido inválido, se descarta")
		return nil
	}
	for _, it := range items {
		line := entity.CartItem{
			ProductID: it.ProductID,
			BranchID:  it.BranchID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitValue: it.UnitValue,
		}
		line.Recalculate()
		s.cart.Items = append(s.cart.Items, line)
	}
	return nil
}

// AddToCart agrega o fusiona la línea por producto. Si aún no existe carrito remoto lo crea primero.
func (s *Store) AddToCart(ctx context.Context, item entity.CartItem) error {
	item.ProductID = strings.TrimSpace(item.ProductID)
	if item.ProductID == "" || item.Quantity < 1 || item.UnitValue.IsNegative() {
		return domain.ErrInvalidInput
	}

	if s.cart.ID == "" {
		id, err := s.gw.CreateCart(ctx, s.owner.Token, s.owner.UserID)
		if err != nil {
			s.syncFailed("crear", err)
		} else {
			s.cart.ID = id
			if err := s.state.Set(ctx, s.owner.SessionID, repository.KeyCartID, id); err != nil {
				return fmt.Errorf("cart: guardar cartId: %w", err)
			}
		}
	}

	s.cart.Add(item)
	if err := s.persist(ctx); err != nil {
		return err
	}

	if s.cart.ID != "" {
		remote := item
		remote.Recalculate()
		if err := s.gw.AddItem(ctx, s.owner.Token, s.cart.ID, remote); err != nil {
			s.syncFailed("agregar", err)
		}
	}
	notify.Success(s.notifier, "Producto agregado al carrito")
	return nil
}

// RemoveFromCart quita la línea localmente y pide el borrado remoto.
func (s *Store) RemoveFromCart(ctx context.Context, productID string) error {
	if !s.cart.Remove(productID) {
		return nil
	}
	if err := s.persist(ctx); err != nil {
		return err
	}
	if s.cart.ID != "" {
		if err := s.gw.RemoveItem(ctx, s.owner.Token, s.cart.ID, productID); err != nil {
			s.syncFailed("quitar", err)
		}
	}
	notify.Info(s.notifier, "Producto eliminado del carrito")
	return nil
}

// UpdateQuantity fija la cantidad de una línea. Cantidades menores a 1 se ignoran en silencio.
// Local y remoto se actualizan por separado, sin transacción.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, qty int) error {
	if qty < 1 {
		return nil
	}
	if !s.cart.SetQuantity(productID, qty) {
		return nil
	}
	if err := s.persist(ctx); err != nil {
		return err
	}
	if s.cart.ID != "" {
		if err := s.gw.UpdateItem(ctx, s.owner.Token, s.cart.ID, productID, qty); err != nil {
			s.syncFailed("actualizar", err)
		}
	}
	return nil
}

// ClearCart vacía el carrito local sin importar el resultado remoto y olvida el ID remoto.
func (s *Store) ClearCart(ctx context.Context) error {
	id := s.cart.ID
	s.cart.Clear()
	s.cart.ID = ""
	if err := s.state.Delete(ctx, s.owner.SessionID, repository.KeyCart, repository.KeyCartID); err != nil {
		return fmt.Errorf("cart: limpiar: %w", err)
	}
	if id != "" {
		if err := s.gw.ClearCart(ctx, s.owner.Token, id); err != nil {
			s.syncFailed("vaciar", err)
		}
	}
	return nil
}

// Detach vacía el carrito local y olvida el ID remoto sin tocar el backend.
// Se usa después de crear un pedido: el carrito remoto queda ligado a ese pedido.
func (s *Store) Detach(ctx context.Context) error {
	s.cart.Clear()
	s.cart.ID = ""
	if err := s.state.Delete(ctx, s.owner.SessionID, repository.KeyCart, repository.KeyCartID); err != nil {
		return fmt.Errorf("cart: desligar: %w", err)
	}
	return nil
}

// Refresh reemplaza las líneas locales por las del carrito remoto.
func (s *Store) Refresh(ctx context.Context) error {
	if s.cart.ID == "" {
		return nil
	}
	remote, err := s.gw.GetCart(ctx, s.owner.Token, s.cart.ID)
	if err != nil {
		s.syncFailed("refrescar", err)
		return err
	}
	if remote == nil {
		return fmt.Errorf("cart: carrito remoto %s: %w", s.cart.ID, domain.ErrNotFound)
	}
	s.cart.Items = nil
	for _, it := range remote.Items {
		it.Recalculate()
		s.cart.Items = append(s.cart.Items, it)
	}
	return s.persist(ctx)
}

// Items devuelve una copia de las líneas.
func (s *Store) Items() []entity.CartItem {
	out := make([]entity.CartItem, len(s.cart.Items))
	copy(out, s.cart.Items)
	return out
}

// Total suma local de los subtotales.
func (s *Store) Total() decimal.Decimal { return s.cart.Total() }

// Count unidades en el carrito.
func (s *Store) Count() int { return s.cart.Count() }

// RemoteID ID del carrito remoto ("" si aún no se sincronizó).
func (s *Store) RemoteID() string { return s.cart.ID }

// IsEmpty indica si el carrito no tiene líneas.
func (s *Store) IsEmpty() bool { return len(s.cart.Items) == 0 }

func (s *Store) persist(ctx context.Context) error {
	if len(s.cart.Items) == 0 {
		if err := s.state.Delete(ctx, s.owner.SessionID, repository.KeyCart); err != nil {
			return fmt.Errorf("cart: guardar: %w", err)
		}
		return nil
	}
	items := make([]storedItem, 0, len(s.cart.Items))
	for _, it := range s.cart.Items {
		items = append(items, storedItem{
			ProductID: it.ProductID,
			BranchID:  it.BranchID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitValue: it.UnitValue,
			Total:     it.Total,
		})
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("cart: serializar: %w", err)
	}
	if err := s.state.Set(ctx, s.owner.SessionID, repository.KeyCart, string(raw)); err != nil {
		return fmt.Errorf("cart: guardar: %w", err)
	}
	return nil
}

func (s *Store) syncFailed(op string, err error) {
	log.Error().Err(err).
		Str("op", op).
		Str("session_id", s.owner.SessionID).
		Str("cart_id", s.cart.ID).
		Msg("sincronización de carrito fallida")
	notify.Error(s.notifier, notify.Message(err, msgSyncFailed))
}

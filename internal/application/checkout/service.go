// Package checkout implementa el envío del formulario de compra:
// idle → submitting → success (redirección) | error (→ idle, con toast). No hay reintentos.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/autoparts-storefront/internal/application/notify"
	"github.com/jhoicas/autoparts-storefront/internal/domain"
	"github.com/jhoicas/autoparts-storefront/internal/domain/entity"
	"github.com/jhoicas/autoparts-storefront/pkg/validate"
)

// State estado del formulario de checkout de una sesión.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
	StateError      State = "error"
)

// DefaultConfirmDelay espera fija antes de confirmar el pago simulado.
const DefaultConfirmDelay = 2 * time.Second

const confirmTimeout = 15 * time.Second

// Form datos de envío y pago.
type Form struct {
	Name          string `json:"nombre" validate:"required"`
	Email         string `json:"email" validate:"required"`
	Phone         string `json:"telefono" validate:"required"`
	Address       string `json:"direccion" validate:"required"`
	Comuna        string `json:"comuna" validate:"required"`
	Region        string `json:"region" validate:"required"`
	PaymentMethod string `json:"metodo_pago" validate:"required,oneof=transbank transferencia efectivo"`
	Notes         string `json:"notas"`
}

// DeliveryAddress dirección de entrega tal como se envía al backend.
func (f Form) DeliveryAddress() string {
	return strings.Join([]string{f.Address, f.Comuna, f.Region}, ", ")
}

// Input datos de una sesión que envía el checkout.
type Input struct {
	SessionID string
	UserID    string
	Token     string
	Form      Form
	Cart      Cart
	Notifier  notify.Notifier
}

// Result resultado de un checkout exitoso.
type Result struct {
	State       State
	Order       *entity.Order
	Transaction *entity.Transaction
	Redirect    string
}

// Service casos de uso del checkout.
type Service struct {
	gw           Gateway
	scheduler    Scheduler
	confirmDelay time.Duration

	mu     sync.Mutex
	states map[string]State
}

// Option configura el servicio.
type Option func(*Service)

// WithScheduler reemplaza el temporizador (tests).
func WithScheduler(s Scheduler) Option {
	return func(svc *Service) { svc.scheduler = s }
}

// WithConfirmDelay cambia la espera antes de confirmar el pago.
func WithConfirmDelay(d time.Duration) Option {
	return func(svc *Service) {
		if d >= 0 {
			svc.confirmDelay = d
		}
	}
}

// NewService construye el servicio.
func NewService(gw Gateway, opts ...Option) *Service {
	s := &Service{
		gw:           gw,
		scheduler:    timeScheduler{},
		confirmDelay: DefaultConfirmDelay,
		states:       make(map[string]State),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// State estado actual del checkout de la sesión.
func (s *Service) State(sessionID string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.states[sessionID]; ok {
		return st
	}
	return StateIdle
}

func (s *Service) begin(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.states[sessionID] == StateSubmitting {
		return false
	}
	s.states[sessionID] = StateSubmitting
	return true
}

// end deja la sesión en idle. Un error pasa por StateError sólo para el log.
func (s *Service) end(sessionID string, st State) {
	log.Debug().Str("session_id", sessionID).Str("state", string(st)).Msg("checkout terminado")
	s.mu.Lock()
	delete(s.states, sessionID)
	s.mu.Unlock()
}

// Submit valida el formulario, crea el pedido y, para Transbank, crea la transacción
// simulada y agenda su confirmación. Con campos vacíos no hace ninguna llamada de red.
func (s *Service) Submit(ctx context.Context, in Input) (*Result, error) {
	form := in.Form
	validate.TrimStrings(&form)
	if err := validate.Struct(&form); err != nil {
		notify.Error(in.Notifier, "Completa todos los campos obligatorios")
		return nil, err
	}
	if in.UserID == "" {
		notify.Error(in.Notifier, "Debes iniciar sesión para finalizar la compra")
		return nil, domain.ErrUnauthorized
	}
	if in.Cart == nil || in.Cart.IsEmpty() {
		notify.Error(in.Notifier, "Tu carrito está vacío")
		return nil, domain.ErrEmptyCart
	}
	if in.Cart.RemoteID() == "" {
		notify.Error(in.Notifier, "El carrito no está sincronizado, actualízalo e intenta de nuevo")
		return nil, fmt.Errorf("checkout: carrito sin id remoto: %w", domain.ErrConflict)
	}

	if !s.begin(in.SessionID) {
		return nil, fmt.Errorf("checkout: envío en curso: %w", domain.ErrConflict)
	}
	res, err := s.submit(ctx, in, form)
	if err != nil {
		s.end(in.SessionID, StateError)
		log.Error().Err(err).Str("session_id", in.SessionID).Msg("checkout fallido")
		notify.Error(in.Notifier, notify.Message(err, "No se pudo procesar tu pedido"))
		return nil, err
	}
	s.end(in.SessionID, StateSuccess)
	return res, nil
}

func (s *Service) submit(ctx context.Context, in Input, form Form) (*Result, error) {
	total := in.Cart.Total()
	order, err := s.gw.CreateOrder(ctx, in.Token, entity.NewOrder{
		UserID:          in.UserID,
		CartID:          in.Cart.RemoteID(),
		DeliveryAddress: form.DeliveryAddress(),
		Total:           total,
		PaymentMethod:   form.PaymentMethod,
	})
	if err != nil {
		return nil, fmt.Errorf("checkout: crear pedido: %w", err)
	}
	if order.Total.IsZero() {
		order.Total = total
	}
	res := &Result{State: StateSuccess, Order: order}

	if form.PaymentMethod == entity.PaymentTransbank {
		tx, err := s.gw.CreateTransaction(ctx, in.Token, order.ID, order.Total)
		if err != nil {
			return nil, fmt.Errorf("checkout: crear transacción: %w", err)
		}
		res.Transaction = tx
		s.scheduleConfirm(in.Token, tx.Token, order.ID)
		res.Redirect = "/pago?" + url.Values{"orden": {order.ID}, "monto": {order.Total.String()}}.Encode()
	} else {
		res.Redirect = "/pedido-exitoso?" + url.Values{"orden": {order.ID}}.Encode()
	}

	if err := in.Cart.Detach(ctx); err != nil {
		log.Warn().Err(err).Str("session_id", in.SessionID).Msg("no se pudo limpiar el carrito tras el pedido")
	}
	notify.Success(in.Notifier, "Pedido creado correctamente")
	return res, nil
}

// scheduleConfirm confirma el pago simulado tras la espera fija, sin importar el resultado
// de la simulación. Corre desligado del contexto de la petición.
func (s *Service) scheduleConfirm(token, txToken, orderID string) {
	s.scheduler.AfterFunc(s.confirmDelay, func() {
		ctx, cancel := context.WithTimeout(context.Background(), confirmTimeout)
		defer cancel()
		if err := s.gw.ConfirmPayment(ctx, token, txToken, orderID); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				log.Warn().Str("order_id", orderID).Msg("confirmación de pago agotó el tiempo")
				return
			}
			log.Error().Err(err).Str("order_id", orderID).Msg("confirmación de pago fallida")
			return
		}
		log.Info().Str("order_id", orderID).Msg("pago simulado confirmado")
	})
}

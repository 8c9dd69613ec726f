// Package payment simula la pasarela Transbank del lado de la tienda.
//
// Tras una espera fija se sortea un número: > 0.8 falla, entre 0.6 y 0.8 queda pendiente
// y < 0.6 se aprueba y se confirma en el backend. Fallido y pendiente son estados finales
// válidos, no errores.
package payment

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/autoparts-storefront/internal/application/notify"
	"github.com/jhoicas/autoparts-storefront/internal/domain"
)

// State estado de la simulación.
type State string

const (
	StateInit       State = "init"
	StateProcessing State = "processing"
	StateSuccess    State = "success"
	StatePending    State = "pending"
	StateFailed     State = "failed"
)

// DefaultDelay latencia simulada, antes del sorteo y antes de redirigir tras el éxito.
const DefaultDelay = 2 * time.Second

const (
	failAbove    = 0.8
	pendingAbove = 0.6
)

// Rutas de navegación.
const (
	PathCart    = "/carrito"
	PathSuccess = "/pago-exitoso"
)

// Deps colaboradores de la simulación. Los nil toman valores por defecto.
type Deps struct {
	Random        RandomSource
	Sleeper       Sleeper
	Confirmer     Confirmer
	Navigator     Navigator
	Notifier      notify.Notifier
	NewToken      func() string
	Delay         time.Duration
	RedirectDelay time.Duration
}

// Simulator una simulación de pago para un pedido.
type Simulator struct {
	orderID   string
	amount    decimal.Decimal
	authToken string
	deps      Deps
	state     State
}

// NewSimulator construye la simulación en estado init.
func NewSimulator(orderID string, amount decimal.Decimal, authToken string, deps Deps) (*Simulator, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" || !amount.IsPositive() {
		return nil, &domain.ValidationError{Fields: []string{"orden", "monto"}}
	}
	if deps.Confirmer == nil {
		return nil, fmt.Errorf("payment: confirmer requerido")
	}
	if deps.Random == nil {
		deps.Random = globalRand{}
	}
	if deps.Sleeper == nil {
		deps.Sleeper = timerSleeper{}
	}
	if deps.Navigator == nil {
		deps.Navigator = &RedirectRecorder{}
	}
	if deps.NewToken == nil {
		deps.NewToken = uuid.NewString
	}
	if deps.Delay <= 0 {
		deps.Delay = DefaultDelay
	}
	if deps.RedirectDelay <= 0 {
		deps.RedirectDelay = DefaultDelay
	}
	return &Simulator{orderID: orderID, amount: amount, authToken: authToken, deps: deps, state: StateInit}, nil
}

// State estado actual.
func (s *Simulator) State() State { return s.state }

// OrderID pedido simulado.
func (s *Simulator) OrderID() string { return s.orderID }

// Amount monto simulado.
func (s *Simulator) Amount() decimal.Decimal { return s.amount }

// Submit ejecuta la simulación completa. Sólo válido desde init.
func (s *Simulator) Submit(ctx context.Context) (State, error) {
	if s.state != StateInit {
		return s.state, domain.ErrInvalidTransition
	}
	s.state = StateProcessing
	logger := log.With().Str("order_id", s.orderID).Str("monto", s.amount.String()).Logger()

	if err := s.deps.Sleeper.Sleep(ctx, s.deps.Delay); err != nil {
		s.state = StateInit
		return s.state, err
	}

	r := s.deps.Random.Float64()
	switch {
	case r > failAbove:
		s.state = StateFailed
		logger.Info().Float64("r", r).Msg("pago simulado rechazado")
		notify.Error(s.deps.Notifier, "El pago fue rechazado")
		return s.state, nil
	case r >= pendingAbove:
		s.state = StatePending
		logger.Info().Float64("r", r).Msg("pago simulado pendiente")
		notify.Info(s.deps.Notifier, "El pago quedó pendiente de confirmación")
		return s.state, nil
	}

	if err := s.deps.Confirmer.ConfirmPayment(ctx, s.authToken, s.deps.NewToken(), s.orderID); err != nil {
		s.state = StateFailed
		logger.Error().Err(err).Msg("confirmación de pago fallida")
		notify.Error(s.deps.Notifier, notify.Message(err, "No se pudo confirmar el pago"))
		return s.state, nil
	}
	s.state = StateSuccess
	logger.Info().Float64("r", r).Msg("pago simulado aprobado")
	notify.Success(s.deps.Notifier, "¡Pago realizado con éxito!")

	if err := s.deps.Sleeper.Sleep(ctx, s.deps.RedirectDelay); err != nil {
		return s.state, err
	}
	s.deps.Navigator.Navigate(SuccessPath(s.orderID))
	return s.state, nil
}

// Retry vuelve a init desde failed.
func (s *Simulator) Retry() error {
	if s.state != StateFailed {
		return domain.ErrInvalidTransition
	}
	s.state = StateInit
	return nil
}

// Cancel abandona el pago y vuelve al carrito.
func (s *Simulator) Cancel() {
	s.deps.Navigator.Navigate(PathCart)
}

// BackToCart única salida del estado pending.
func (s *Simulator) BackToCart() error {
	if s.state != StatePending {
		return domain.ErrInvalidTransition
	}
	s.deps.Navigator.Navigate(PathCart)
	return nil
}

// SuccessPath ruta de pago exitoso con el pedido en la query.
func SuccessPath(orderID string) string {
	return PathSuccess + "?" + url.Values{"orden": {orderID}}.Encode()
}

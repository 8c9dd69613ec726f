package http

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/autoparts-storefront/internal/application/dto"
	"github.com/jhoicas/autoparts-storefront/internal/application/notify"
	"github.com/jhoicas/autoparts-storefront/internal/application/payment"
	"github.com/jhoicas/autoparts-storefront/internal/application/session"
	"github.com/jhoicas/autoparts-storefront/internal/domain"
)

// PaymentOptions esperas y fuentes de la simulación. Random y Sleeper nil usan los valores reales.
// IdleTTL y MaxPerSession acotan las simulaciones abandonadas; en cero toman los valores por defecto.
type PaymentOptions struct {
	Delay         time.Duration
	RedirectDelay time.Duration
	Random        payment.RandomSource
	Sleeper       payment.Sleeper
	IdleTTL       time.Duration
	MaxPerSession int
}

const (
	defaultSimIdleTTL    = 30 * time.Minute
	defaultSimPerSession = 5
)

type simEntry struct {
	sessionID string
	sim       *payment.Simulator
	nav       *payment.RedirectRecorder
	relay     *relay
	touched   time.Time
}

// relay reenvía los avisos de la simulación al collector de la petición en curso.
type relay struct {
	mu     sync.Mutex
	target notify.Notifier
}

func (r *relay) set(n notify.Notifier) {
	r.mu.Lock()
	r.target = n
	r.mu.Unlock()
}

func (r *relay) Notify(level notify.Level, message string) {
	r.mu.Lock()
	t := r.target
	r.mu.Unlock()
	if t != nil {
		t.Notify(level, message)
	}
}

// PaymentHandler pantalla de pago simulado y panel Transbank.
// Cada sesión conserva su simulación en curso para poder reintentar o volver al carrito.
type PaymentHandler struct {
	confirmer payment.Confirmer
	dashboard *payment.Dashboard
	locker    *session.Locker
	opts      PaymentOptions

	mu   sync.Mutex
	sims map[string]*simEntry
	now  func() time.Time
}

// NewPaymentHandler construye el handler de pagos.
func NewPaymentHandler(confirmer payment.Confirmer, dashboard *payment.Dashboard, locker *session.Locker, opts PaymentOptions) *PaymentHandler {
	if opts.IdleTTL <= 0 {
		opts.IdleTTL = defaultSimIdleTTL
	}
	if opts.MaxPerSession <= 0 {
		opts.MaxPerSession = defaultSimPerSession
	}
	return &PaymentHandler{
		confirmer: confirmer,
		dashboard: dashboard,
		locker:    locker,
		opts:      opts,
		sims:      make(map[string]*simEntry),
		now:       time.Now,
	}
}

func simKey(sessionID, orderID string) string { return sessionID + "|" + orderID }

func (h *PaymentHandler) entry(key string) (*simEntry, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	e, ok := h.sims[key]
	if ok {
		e.touched = h.now()
	}
	return e, ok
}

// put registra la simulación. Antes descarta las inactivas y, si la sesión ya tiene
// MaxPerSession simulaciones, la menos usada de esa sesión.
func (h *PaymentHandler) put(key string, e *simEntry) {
	h.mu.Lock()
	defer h.mu.Unlock()
	now := h.now()
	e.touched = now
	h.sweepLocked(now)

	var (
		count     int
		oldestKey string
		oldest    time.Time
	)
	for k, other := range h.sims {
		if other.sessionID != e.sessionID || k == key {
			continue
		}
		count++
		if oldestKey == "" || other.touched.Before(oldest) {
			oldestKey, oldest = k, other.touched
		}
	}
	if count >= h.opts.MaxPerSession {
		delete(h.sims, oldestKey)
	}
	h.sims[key] = e
}

// Sweep elimina las simulaciones sin uso durante más de IdleTTL.
func (h *PaymentHandler) Sweep() {
	h.mu.Lock()
	h.sweepLocked(h.now())
	h.mu.Unlock()
}

func (h *PaymentHandler) sweepLocked(now time.Time) {
	for k, e := range h.sims {
		if now.Sub(e.touched) > h.opts.IdleTTL {
			delete(h.sims, k)
		}
	}
}

func (h *PaymentHandler) drop(key string) {
	h.mu.Lock()
	delete(h.sims, key)
	h.mu.Unlock()
}

func (h *PaymentHandler) simResponse(e *simEntry) dto.SimulatePaymentResponse {
	st := e.sim.State()
	out := dto.SimulatePaymentResponse{
		State:    string(st),
		OrderID:  e.sim.OrderID(),
		Amount:   e.sim.Amount(),
		CanRetry: st == payment.StateFailed,
	}
	if st == payment.StateSuccess {
		out.Redirect = e.nav.Path
	}
	return out
}

// Simulate godoc
// @Summary      Simular pago Transbank
// @Description  Espera, sortea el resultado y, si se aprueba, confirma el pago en el backend.
// @Description  Rechazado y pendiente son resultados válidos (HTTP 200), no errores.
// @Tags         pagos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.SimulatePaymentRequest  true  "orden y monto"
// @Success      200   {object}  dto.Envelope{data=dto.SimulatePaymentResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/pagos/simulador [post]
func (h *PaymentHandler) Simulate(c *fiber.Ctx) error {
	var in dto.SimulatePaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	s := GetSession(c)
	unlock := h.locker.Lock(s.ID)
	defer unlock()

	key := simKey(s.ID, strings.TrimSpace(in.OrderID))
	e, ok := h.entry(key)
	if !ok || !e.sim.Amount().Equal(in.Amount) {
		nav, rl := &payment.RedirectRecorder{}, &relay{}
		sim, err := payment.NewSimulator(in.OrderID, in.Amount, s.Token, payment.Deps{
			Random:        h.opts.Random,
			Sleeper:       h.opts.Sleeper,
			Confirmer:     h.confirmer,
			Navigator:     nav,
			Notifier:      rl,
			Delay:         h.opts.Delay,
			RedirectDelay: h.opts.RedirectDelay,
		})
		if err != nil {
			return writeError(c, err)
		}
		e = &simEntry{sessionID: s.ID, sim: sim, nav: nav, relay: rl}
		h.put(key, e)
	}
	e.relay.set(notifierFor(c))

	if _, err := e.sim.Submit(c.UserContext()); err != nil {
		return writeError(c, err)
	}
	out := h.simResponse(e)
	if e.sim.State() == payment.StateSuccess {
		h.drop(key)
	}
	return respond(c, fiber.StatusOK, out)
}

// Retry godoc
// @Summary      Reintentar pago rechazado
// @Tags         pagos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.SimulatePaymentRequest  true  "orden"
// @Success      200   {object}  dto.Envelope{data=dto.SimulatePaymentResponse}
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/pagos/simulador/reintentar [post]
func (h *PaymentHandler) Retry(c *fiber.Ctx) error {
	unlock := h.locker.Lock(GetSessionID(c))
	defer unlock()
	e, _, err := h.lookup(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := e.sim.Retry(); err != nil {
		return writeError(c, err)
	}
	return respond(c, fiber.StatusOK, h.simResponse(e))
}

// BackToCart godoc
// @Summary      Volver al carrito desde un pago pendiente
// @Tags         pagos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.SimulatePaymentRequest  true  "orden"
// @Success      200   {object}  dto.Envelope{data=dto.RedirectResponse}
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/pagos/simulador/volver [post]
func (h *PaymentHandler) BackToCart(c *fiber.Ctx) error {
	unlock := h.locker.Lock(GetSessionID(c))
	defer unlock()
	e, key, err := h.lookup(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := e.sim.BackToCart(); err != nil {
		return writeError(c, err)
	}
	h.drop(key)
	return respond(c, fiber.StatusOK, dto.RedirectResponse{Redirect: e.nav.Path})
}

// Cancel godoc
// @Summary      Cancelar pago
// @Description  Abandona la simulación (si existe) y vuelve al carrito.
// @Tags         pagos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.SimulatePaymentRequest  false  "orden"
// @Success      200   {object}  dto.Envelope{data=dto.RedirectResponse}
// @Router       /api/pagos/simulador/cancelar [post]
func (h *PaymentHandler) Cancel(c *fiber.Ctx) error {
	unlock := h.locker.Lock(GetSessionID(c))
	defer unlock()
	e, key, err := h.lookup(c)
	if err != nil {
		return respond(c, fiber.StatusOK, dto.RedirectResponse{Redirect: payment.PathCart})
	}
	e.sim.Cancel()
	h.drop(key)
	return respond(c, fiber.StatusOK, dto.RedirectResponse{Redirect: e.nav.Path})
}

// lookup simulación en curso de la sesión para la orden del cuerpo.
func (h *PaymentHandler) lookup(c *fiber.Ctx) (*simEntry, string, error) {
	var in dto.SimulatePaymentRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return nil, "", &domain.ValidationError{Fields: []string{"orden"}}
		}
	}
	orderID := strings.TrimSpace(in.OrderID)
	if orderID == "" {
		return nil, "", &domain.ValidationError{Fields: []string{"orden"}}
	}
	key := simKey(GetSessionID(c), orderID)
	e, ok := h.entry(key)
	if !ok {
		return nil, "", domain.ErrNotFound
	}
	return e, key, nil
}

// Stats godoc
// @Summary      Estadísticas de transacciones simuladas
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.Envelope{data=dto.TransbankStatsResponse}
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/transbank/estadisticas [get]
func (h *PaymentHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.dashboard.Stats(c.UserContext(), GetSession(c).Token)
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, fiber.StatusOK, dto.FromStats(stats))
}

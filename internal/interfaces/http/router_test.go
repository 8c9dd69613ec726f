package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/autoparts-storefront/internal/application/admin"
	"github.com/jhoicas/autoparts-storefront/internal/application/catalog"
	"github.com/jhoicas/autoparts-storefront/internal/application/checkout"
	"github.com/jhoicas/autoparts-storefront/internal/application/orders"
	"github.com/jhoicas/autoparts-storefront/internal/application/payment"
	"github.com/jhoicas/autoparts-storefront/internal/application/session"
	"github.com/jhoicas/autoparts-storefront/internal/infrastructure/backend"
	"github.com/jhoicas/autoparts-storefront/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/autoparts-storefront/internal/interfaces/http"
)

// ── backend falso ───────────────────────────────────────────────────────────

type fakeBackend struct {
	mu          sync.Mutex
	items       []map[string]any
	orderStatus string
	failCarts   bool
	calls       map[string]int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{orderStatus: "pendiente", calls: make(map[string]int)}
}

func (f *fakeBackend) setFailCarts(v bool) {
	f.mu.Lock()
	f.failCarts = v
	f.mu.Unlock()
}

func (f *fakeBackend) count(pattern string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[pattern]
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	handle := func(pattern string, h func(w http.ResponseWriter, r *http.Request)) {
		mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
			f.mu.Lock()
			f.calls[pattern]++
			f.mu.Unlock()
			h(w, r)
		})
	}

	handle("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var in struct{ Email, Password string }
		_ = json.NewDecoder(r.Body).Decode(&in)
		switch {
		case in.Email == "ana@autoparts.cl" && in.Password == "secreta":
			writeJSON(w, http.StatusOK, map[string]any{
				"token": "backend-cliente",
				"user":  map[string]any{"id": 7, "nombre": "Ana", "email": in.Email, "rol": "cliente"},
			})
		case in.Email == "admin@autoparts.cl" && in.Password == "secreta":
			writeJSON(w, http.StatusOK, map[string]any{
				"token": "backend-admin",
				"user":  map[string]any{"id": 1, "nombre": "Admin", "email": in.Email, "rol": "admin"},
			})
		default:
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Credenciales inválidas"})
		}
	})

	handle("GET /api/productos", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{
			{"id": 10, "nombre": "Pastillas de freno", "marca": "Bosch", "precio": 4500, "categoria_id": 1},
			{"id": 11, "nombre": "Filtro de aceite", "marca": "Mann", "precio": 3200, "categoria_id": 2},
			{"id": 12, "nombre": "Disco de freno", "marca": "Bosch", "precio": 18990, "categoria_id": 1},
		})
	})
	handle("GET /api/productos/disponibles", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{
			{"id": 10, "nombre": "Pastillas de freno", "marca": "Bosch", "precio": 4500, "categoria_id": 1},
		})
	})
	handle("GET /api/categorias", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{{"id": 1, "nombre": "Frenos"}, {"id": 2, "nombre": "Filtros"}})
	})
	handle("DELETE /api/categorias/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handle("GET /api/sucursales", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{{"id": 3, "nombre": "Santiago Centro"}})
	})
	handle("GET /api/inventario", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{{"producto_id": 10, "sucursal_id": 3, "stock": 2}})
	})

	handle("POST /api/carrito", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		fail := f.failCarts
		f.mu.Unlock()
		if fail {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"message": "mantención"})
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"id": 55, "items": []any{}})
	})
	handle("POST /api/carrito/{id}/item", func(w http.ResponseWriter, r *http.Request) {
		var item map[string]any
		_ = json.NewDecoder(r.Body).Decode(&item)
		f.mu.Lock()
		f.items = append(f.items, item)
		f.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
	})
	handle("DELETE /api/carrito/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	order := func() map[string]any {
		f.mu.Lock()
		defer f.mu.Unlock()
		return map[string]any{
			"id":                900,
			"usuario_id":        7,
			"carrito_id":        55,
			"direccion_entrega": "Av. Matta 123, Santiago, RM",
			"estado":            f.orderStatus,
			"total":             "9000",
		}
	}
	handle("POST /api/pedidos", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, order())
	})
	handle("GET /api/pedidos/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, order())
	})
	handle("GET /api/pedidos/usuario/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{order()})
	})
	handle("PUT /api/pedidos/{id}/estado", func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Estado string `json:"estado"`
		}
		_ = json.NewDecoder(r.Body).Decode(&in)
		f.mu.Lock()
		f.orderStatus = in.Estado
		f.mu.Unlock()
		writeJSON(w, http.StatusOK, order())
	})

	handle("POST /api/transbank/crear-transaccion", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]any{"token": "tx-900", "pedido_id": 900, "monto": "9000"})
	})
	handle("POST /api/transbank/confirmar-pago", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return mux
}

// ── dobles ──────────────────────────────────────────────────────────────────

type manualScheduler struct {
	mu    sync.Mutex
	funcs []func()
}

func (s *manualScheduler) AfterFunc(_ time.Duration, f func()) {
	s.mu.Lock()
	s.funcs = append(s.funcs, f)
	s.mu.Unlock()
}

func (s *manualScheduler) runAll() int {
	s.mu.Lock()
	pending := s.funcs
	s.funcs = nil
	s.mu.Unlock()
	for _, f := range pending {
		f()
	}
	return len(pending)
}

// scriptedRandom entrega los valores en orden y luego repite el último.
type scriptedRandom struct {
	mu     sync.Mutex
	values []float64
}

func (r *scriptedRandom) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	v := r.values[0]
	if len(r.values) > 1 {
		r.values = r.values[1:]
	}
	return v
}

type noSleep struct{}

func (noSleep) Sleep(context.Context, time.Duration) error { return nil }

// ── entorno ─────────────────────────────────────────────────────────────────

type testEnv struct {
	app     *fiber.App
	backend *fakeBackend
	sched   *manualScheduler
	random  *scriptedRandom
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	fb := newFakeBackend()
	srv := httptest.NewServer(fb.handler())
	t.Cleanup(srv.Close)

	client, err := backend.New(srv.URL, 2*time.Second)
	require.NoError(t, err)

	state := memory.NewStateStore(time.Hour)
	t.Cleanup(state.Close)

	sched := &manualScheduler{}
	random := &scriptedRandom{values: []float64{0.1}}

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(app, apphttp.RouterDeps{
		Sessions:  session.NewManager(state, client),
		State:     state,
		CartGW:    client,
		Catalog:   catalog.NewService(client),
		Checkout:  checkout.NewService(client, checkout.WithScheduler(sched)),
		Confirmer: client,
		Dashboard: payment.NewDashboard(client),
		Orders:    orders.NewService(client, nil, nil, "https://tienda.test"),
		Admin:     admin.NewService(client),
		Payment:   apphttp.PaymentOptions{Random: random, Sleeper: noSleep{}},
		Tokens:    apphttp.TokenConfig{Secret: testJWTSecret, Issuer: testIssuer, ExpMinutes: testExpMin},
		Limiter:   apphttp.NewLoginLimiter(2, time.Minute),
	})
	return &testEnv{app: app, backend: fb, sched: sched, random: random}
}

type toast struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Toasts  []toast         `json:"toasts"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
}

func (e *testEnv) call(t *testing.T, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, 5000)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out), string(env.Data))
	return out
}

type sessionData struct {
	Token     string `json:"token"`
	SessionID string `json:"session_id"`
	Role      string `json:"rol"`
}

type cartData struct {
	ID    *string `json:"id"`
	Total string  `json:"total"`
	Count int     `json:"cantidad"`
}

func (e *testEnv) guest(t *testing.T) sessionData {
	t.Helper()
	status, env := e.call(t, http.MethodPost, "/api/auth/guest", "", nil)
	require.Equal(t, http.StatusCreated, status)
	return decode[sessionData](t, env)
}

func (e *testEnv) login(t *testing.T, token, email string) sessionData {
	t.Helper()
	status, env := e.call(t, http.MethodPost, "/api/auth/login", token, map[string]string{"email": email, "password": "secreta"})
	require.Equal(t, http.StatusOK, status, env.Message)
	return decode[sessionData](t, env)
}

var pastillas = map[string]any{
	"producto_id": "10", "sucursal_id": "3", "nombre": "Pastillas de freno", "cantidad": 2, "valor_unitario": 4500,
}

var formTransbank = map[string]string{
	"nombre": "Ana", "email": "ana@autoparts.cl", "telefono": "+56911111111",
	"direccion": "Av. Matta 123", "comuna": "Santiago", "region": "RM", "metodo_pago": "transbank",
}

// ── tests ───────────────────────────────────────────────────────────────────

func TestCarrito_InvitadoAgregaYLoginConservaCarrito(t *testing.T) {
	env := newTestEnv(t)
	g := env.guest(t)
	assert.Equal(t, "invitado", g.Role)

	status, res := env.call(t, http.MethodPost, "/api/carrito/items", g.Token, pastillas)
	require.Equal(t, http.StatusOK, status)
	c := decode[cartData](t, res)
	require.NotNil(t, c.ID)
	assert.Equal(t, "55", *c.ID)
	assert.Equal(t, 2, c.Count)
	assert.Equal(t, "9000", c.Total)
	require.Len(t, res.Toasts, 1)
	assert.Equal(t, "success", res.Toasts[0].Type)

	s := env.login(t, g.Token, "ana@autoparts.cl")
	assert.Equal(t, g.SessionID, s.SessionID)
	assert.Equal(t, "cliente", s.Role)

	status, res = env.call(t, http.MethodGet, "/api/carrito", s.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2, decode[cartData](t, res).Count)
	assert.Equal(t, 1, env.backend.count("POST /api/carrito"))
}

func TestCarrito_BackendCaidoGuardaLocalYAvisa(t *testing.T) {
	env := newTestEnv(t)
	env.backend.setFailCarts(true)
	g := env.guest(t)

	status, res := env.call(t, http.MethodPost, "/api/carrito/items", g.Token, pastillas)
	require.Equal(t, http.StatusOK, status)
	c := decode[cartData](t, res)
	assert.Nil(t, c.ID)
	assert.Equal(t, 2, c.Count)

	var types []string
	for _, ts := range res.Toasts {
		types = append(types, ts.Type)
	}
	assert.Contains(t, types, "error")
	assert.Equal(t, 0, env.backend.count("POST /api/carrito/{id}/item"))
}

func TestCarrito_SinTokenRetorna401(t *testing.T) {
	env := newTestEnv(t)
	status, res := env.call(t, http.MethodGet, "/api/carrito", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_TOKEN", res.Code)
}

func TestCatalogo_FiltraPorMarcaYOrdenaPorPrecio(t *testing.T) {
	env := newTestEnv(t)
	status, res := env.call(t, http.MethodGet, "/api/catalogo?marca=bosch&orden=precio_desc", "", nil)
	require.Equal(t, http.StatusOK, status)

	page := decode[struct {
		Products []struct {
			ID string `json:"id"`
		} `json:"productos"`
		Brands []string `json:"marcas"`
		Total  int      `json:"total"`
	}](t, res)
	require.Len(t, page.Products, 2)
	assert.Equal(t, "12", page.Products[0].ID)
	assert.Equal(t, "10", page.Products[1].ID)
	assert.Equal(t, []string{"Bosch", "Mann"}, page.Brands)
	assert.Equal(t, 3, page.Total)
}

func TestCatalogo_OrdenInvalidoRetorna400(t *testing.T) {
	env := newTestEnv(t)
	status, _ := env.call(t, http.MethodGet, "/api/catalogo?orden=azar", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestLogin_CredencialesInvalidasYBloqueo(t *testing.T) {
	env := newTestEnv(t)
	bad := map[string]string{"email": "ana@autoparts.cl", "password": "mala"}

	for i := 0; i < 2; i++ {
		status, res := env.call(t, http.MethodPost, "/api/auth/login", "", bad)
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "Credenciales inválidas", res.Message)
	}
	status, res := env.call(t, http.MethodPost, "/api/auth/login", "", bad)
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, "TOO_MANY_ATTEMPTS", res.Code)
}

func TestCheckout_TransbankRedirigeYConfirmaTrasEspera(t *testing.T) {
	env := newTestEnv(t)
	s := env.login(t, "", "ana@autoparts.cl")
	status, _ := env.call(t, http.MethodPost, "/api/carrito/items", s.Token, pastillas)
	require.Equal(t, http.StatusOK, status)

	status, res := env.call(t, http.MethodPost, "/api/checkout", s.Token, formTransbank)
	require.Equal(t, http.StatusCreated, status, res.Message)
	out := decode[struct {
		State    string `json:"estado"`
		Redirect string `json:"redirect"`
		Order    struct {
			ID string `json:"id"`
		} `json:"pedido"`
		Transaction *struct {
			Token string `json:"token"`
		} `json:"transaccion"`
	}](t, res)
	assert.Equal(t, "success", out.State)
	assert.Equal(t, "900", out.Order.ID)
	assert.Equal(t, "/pago?monto=9000&orden=900", out.Redirect)
	require.NotNil(t, out.Transaction)
	assert.Equal(t, "tx-900", out.Transaction.Token)

	assert.Equal(t, 0, env.backend.count("POST /api/transbank/confirmar-pago"))
	assert.Equal(t, 1, env.sched.runAll())
	assert.Equal(t, 1, env.backend.count("POST /api/transbank/confirmar-pago"))

	status, res = env.call(t, http.MethodGet, "/api/carrito", s.Token, nil)
	require.Equal(t, http.StatusOK, status)
	c := decode[cartData](t, res)
	assert.Equal(t, 0, c.Count)
	assert.Nil(t, c.ID)
}

func TestCheckout_CamposVaciosNoLlamaAlBackend(t *testing.T) {
	env := newTestEnv(t)
	s := env.login(t, "", "ana@autoparts.cl")
	env.call(t, http.MethodPost, "/api/carrito/items", s.Token, pastillas)

	status, res := env.call(t, http.MethodPost, "/api/checkout", s.Token, map[string]string{"nombre": "Ana"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", res.Code)
	assert.Equal(t, 0, env.backend.count("POST /api/pedidos"))
}

func TestCheckout_CarritoVacioRetorna422(t *testing.T) {
	env := newTestEnv(t)
	s := env.login(t, "", "ana@autoparts.cl")
	status, res := env.call(t, http.MethodPost, "/api/checkout", s.Token, formTransbank)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "EMPTY_CART", res.Code)
}

type simData struct {
	State    string `json:"estado"`
	Redirect string `json:"redirect"`
	CanRetry bool   `json:"puede_reintentar"`
}

func TestSimulador_RechazadoReintentoYAprobado(t *testing.T) {
	env := newTestEnv(t)
	env.random.values = []float64{0.95, 0.1}
	s := env.login(t, "", "ana@autoparts.cl")
	body := map[string]any{"orden": "900", "monto": 9000}

	status, res := env.call(t, http.MethodPost, "/api/pagos/simulador", s.Token, body)
	require.Equal(t, http.StatusOK, status, res.Message)
	sim := decode[simData](t, res)
	assert.Equal(t, "failed", sim.State)
	assert.True(t, sim.CanRetry)
	require.NotEmpty(t, res.Toasts)
	assert.Equal(t, "error", res.Toasts[0].Type)

	status, res = env.call(t, http.MethodPost, "/api/pagos/simulador/reintentar", s.Token, body)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "init", decode[simData](t, res).State)

	status, res = env.call(t, http.MethodPost, "/api/pagos/simulador", s.Token, body)
	require.Equal(t, http.StatusOK, status)
	sim = decode[simData](t, res)
	assert.Equal(t, "success", sim.State)
	assert.Equal(t, "/pago-exitoso?orden=900", sim.Redirect)
	assert.Equal(t, 1, env.backend.count("POST /api/transbank/confirmar-pago"))
}

func TestSimulador_PendienteSoloVuelveAlCarrito(t *testing.T) {
	env := newTestEnv(t)
	env.random.values = []float64{0.7}
	s := env.login(t, "", "ana@autoparts.cl")
	body := map[string]any{"orden": "900", "monto": 9000}

	status, res := env.call(t, http.MethodPost, "/api/pagos/simulador", s.Token, body)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "pending", decode[simData](t, res).State)

	status, res = env.call(t, http.MethodPost, "/api/pagos/simulador/reintentar", s.Token, body)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INVALID_TRANSITION", res.Code)

	status, res = env.call(t, http.MethodPost, "/api/pagos/simulador/volver", s.Token, body)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "/carrito", decode[struct {
		Redirect string `json:"redirect"`
	}](t, res).Redirect)
	assert.Equal(t, 0, env.backend.count("POST /api/transbank/confirmar-pago"))
}

func TestSimulador_InvitadoNoPuedePagar(t *testing.T) {
	env := newTestEnv(t)
	g := env.guest(t)
	status, _ := env.call(t, http.MethodPost, "/api/pagos/simulador", g.Token, map[string]any{"orden": "900", "monto": 9000})
	assert.Equal(t, http.StatusForbidden, status)
}

func TestPedidos_MisPedidosYTransicionInvalida(t *testing.T) {
	env := newTestEnv(t)
	cliente := env.login(t, "", "ana@autoparts.cl")

	status, res := env.call(t, http.MethodGet, "/api/pedidos", cliente.Token, nil)
	require.Equal(t, http.StatusOK, status)
	list := decode[[]struct {
		ID          string `json:"id"`
		TrackingURL string `json:"seguimiento_url"`
	}](t, res)
	require.Len(t, list, 1)
	assert.Equal(t, "https://tienda.test/pedidos/900", list[0].TrackingURL)

	adm := env.login(t, "", "admin@autoparts.cl")
	status, res = env.call(t, http.MethodPut, "/api/admin/pedidos/900/estado", adm.Token, map[string]string{"estado": "entregado"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INVALID_TRANSITION", res.Code)
	assert.Equal(t, 0, env.backend.count("PUT /api/pedidos/{id}/estado"))

	status, _ = env.call(t, http.MethodPut, "/api/admin/pedidos/900/estado", adm.Token, map[string]string{"estado": "confirmado"})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, env.backend.count("PUT /api/pedidos/{id}/estado"))

	status, _ = env.call(t, http.MethodPut, "/api/admin/pedidos/900/estado", cliente.Token, map[string]string{"estado": "enviado"})
	assert.Equal(t, http.StatusForbidden, status)
}

func TestAdmin_EliminarRequiereConfirmacion(t *testing.T) {
	env := newTestEnv(t)
	adm := env.login(t, "", "admin@autoparts.cl")

	status, res := env.call(t, http.MethodDelete, "/api/admin/categorias/2", adm.Token, nil)
	assert.Equal(t, http.StatusPreconditionRequired, status)
	assert.Equal(t, "CONFIRMATION_REQUIRED", res.Code)
	assert.Equal(t, 0, env.backend.count("DELETE /api/categorias/{id}"))

	status, _ = env.call(t, http.MethodDelete, "/api/admin/categorias/2?confirmar=true", adm.Token, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, env.backend.count("DELETE /api/categorias/{id}"))
}

func TestAdmin_PanelDesconocidoRetorna404(t *testing.T) {
	env := newTestEnv(t)
	adm := env.login(t, "", "admin@autoparts.cl")
	status, res := env.call(t, http.MethodGet, "/api/admin/facturas", adm.Token, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "PANEL_NOT_FOUND", res.Code)
}

func TestInventario_SoloPersonal(t *testing.T) {
	env := newTestEnv(t)
	cliente := env.login(t, "", "ana@autoparts.cl")
	status, _ := env.call(t, http.MethodGet, "/api/admin/inventario", cliente.Token, nil)
	assert.Equal(t, http.StatusForbidden, status)

	adm := env.login(t, "", "admin@autoparts.cl")
	status, res := env.call(t, http.MethodGet, "/api/admin/inventario", adm.Token, nil)
	require.Equal(t, http.StatusOK, status, res.Message)
}

func TestLogout_LimpiaCarritoYDevuelveInvitado(t *testing.T) {
	env := newTestEnv(t)
	s := env.login(t, "", "ana@autoparts.cl")
	env.call(t, http.MethodPost, "/api/carrito/items", s.Token, pastillas)

	status, res := env.call(t, http.MethodPost, "/api/auth/logout", s.Token, nil)
	require.Equal(t, http.StatusOK, status)
	g := decode[sessionData](t, res)
	assert.Equal(t, "invitado", g.Role)
	assert.Equal(t, s.SessionID, g.SessionID)

	status, res = env.call(t, http.MethodGet, "/api/carrito", g.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0, decode[cartData](t, res).Count)

	// el token anterior sigue firmado, pero la sesión ya no tiene usuario
	status, _ = env.call(t, http.MethodGet, "/api/pedidos", s.Token, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

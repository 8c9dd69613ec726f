package payment_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/autoparts-storefront/internal/application/notify"
	"github.com/jhoicas/autoparts-storefront/internal/application/payment"
	"github.com/jhoicas/autoparts-storefront/internal/domain"
	"github.com/jhoicas/autoparts-storefront/internal/domain/entity"
)

type confirmCall struct {
	txToken string
	orderID string
}

type fakeConfirmer struct {
	calls []confirmCall
	err   error
}

func (f *fakeConfirmer) ConfirmPayment(_ context.Context, _, txToken, orderID string) error {
	f.calls = append(f.calls, confirmCall{txToken: txToken, orderID: orderID})
	return f.err
}

type recordSleeper struct {
	slept []time.Duration
}

func (r *recordSleeper) Sleep(_ context.Context, d time.Duration) error {
	r.slept = append(r.slept, d)
	return nil
}

type fixture struct {
	confirmer *fakeConfirmer
	sleeper   *recordSleeper
	nav       *payment.RedirectRecorder
	toasts    *notify.Collector
	sim       *payment.Simulator
}

func newFixture(t *testing.T, r float64) *fixture {
	t.Helper()
	f := &fixture{
		confirmer: &fakeConfirmer{},
		sleeper:   &recordSleeper{},
		nav:       &payment.RedirectRecorder{},
		toasts:    notify.NewCollector(),
	}
	sim, err := payment.NewSimulator("42", decimal.NewFromInt(2500), "tok", payment.Deps{
		Random:        payment.FixedRandom(r),
		Sleeper:       f.sleeper,
		Confirmer:     f.confirmer,
		Navigator:     f.nav,
		Notifier:      f.toasts,
		NewToken:      func() string { return "tx-fresh" },
		Delay:         payment.DefaultDelay,
		RedirectDelay: payment.DefaultDelay,
	})
	require.NoError(t, err)
	f.sim = sim
	return f
}

func TestSimulator_095Falla(t *testing.T) {
	f := newFixture(t, 0.95)

	st, err := f.sim.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, payment.StateFailed, st)
	assert.Empty(t, f.confirmer.calls)
	assert.Empty(t, f.nav.Path)
	assert.Equal(t, []time.Duration{payment.DefaultDelay}, f.sleeper.slept)
}

func TestSimulator_070Pendiente(t *testing.T) {
	f := newFixture(t, 0.70)

	st, err := f.sim.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, payment.StatePending, st)
	assert.Empty(t, f.confirmer.calls)

	require.NoError(t, f.sim.BackToCart())
	assert.Equal(t, payment.PathCart, f.nav.Path)
}

func TestSimulator_010ConfirmaYRedirige(t *testing.T) {
	f := newFixture(t, 0.10)

	st, err := f.sim.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, payment.StateSuccess, st)
	require.Len(t, f.confirmer.calls, 1)
	assert.Equal(t, "42", f.confirmer.calls[0].orderID)
	assert.Equal(t, "tx-fresh", f.confirmer.calls[0].txToken)
	assert.Equal(t, "/pago-exitoso?orden=42", f.nav.Path)
	assert.Len(t, f.sleeper.slept, 2)
	assert.True(t, f.toasts.Has(notify.LevelSuccess))
}

func TestSimulator_Limites(t *testing.T) {
	cases := map[float64]payment.State{
		0.8:  payment.StatePending,
		0.6:  payment.StatePending,
		0.59: payment.StateSuccess,
		0.81: payment.StateFailed,
	}
	for r, want := range cases {
		f := newFixture(t, r)
		st, err := f.sim.Submit(context.Background())
		require.NoError(t, err)
		assert.Equal(t, want, st, "r=%v", r)
	}
}

func TestSimulator_ReintentarDesdeFallido(t *testing.T) {
	f := newFixture(t, 0.95)
	_, _ = f.sim.Submit(context.Background())

	require.NoError(t, f.sim.Retry())
	assert.Equal(t, payment.StateInit, f.sim.State())

	f.sim.Cancel()
	assert.Equal(t, payment.PathCart, f.nav.Path)
}

func TestSimulator_TransicionesInvalidas(t *testing.T) {
	f := newFixture(t, 0.10)
	assert.ErrorIs(t, f.sim.Retry(), domain.ErrInvalidTransition)
	assert.ErrorIs(t, f.sim.BackToCart(), domain.ErrInvalidTransition)

	_, _ = f.sim.Submit(context.Background())
	_, err := f.sim.Submit(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Len(t, f.confirmer.calls, 1)
}

func TestSimulator_ConfirmacionFallidaQuedaFallido(t *testing.T) {
	f := newFixture(t, 0.10)
	f.confirmer.err = errors.New("503")

	st, err := f.sim.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, payment.StateFailed, st)
	assert.Empty(t, f.nav.Path)
	assert.True(t, f.toasts.Has(notify.LevelError))
}

func TestNewSimulator_DatosInvalidos(t *testing.T) {
	_, err := payment.NewSimulator("", decimal.NewFromInt(10), "", payment.Deps{Confirmer: &fakeConfirmer{}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = payment.NewSimulator("1", decimal.Zero, "", payment.Deps{Confirmer: &fakeConfirmer{}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewSimulator_EsperasEnCeroUsanLasPorDefecto(t *testing.T) {
	sleeper := &recordSleeper{}
	sim, err := payment.NewSimulator("42", decimal.NewFromInt(2500), "tok", payment.Deps{
		Random:    payment.FixedRandom(0.10),
		Sleeper:   sleeper,
		Confirmer: &fakeConfirmer{},
	})
	require.NoError(t, err)

	st, err := sim.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, payment.StateSuccess, st)
	assert.Equal(t, []time.Duration{payment.DefaultDelay, payment.DefaultDelay}, sleeper.slept)
}

type fakeStats struct{}

func (fakeStats) TransbankStats(context.Context, string) (*entity.TransbankStats, error) {
	return &entity.TransbankStats{Total: 10, Approved: 6, Rejected: 2, Pending: 2, AmountPaid: decimal.NewFromInt(60000)}, nil
}

func TestDashboard_Stats(t *testing.T) {
	st, err := payment.NewDashboard(fakeStats{}).Stats(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, 6, st.Approved)
}

package payment

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/jhoicas/autoparts-storefront/internal/domain/entity"
)

// RandomSource entrega un número uniforme en [0, 1).
type RandomSource interface {
	Float64() float64
}

// Sleeper espera d o hasta que ctx se cancele.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// Confirmer confirma un pago simulado en el backend.
type Confirmer interface {
	ConfirmPayment(ctx context.Context, token, txToken, orderID string) error
}

// Navigator recibe la ruta a la que debe ir el usuario.
type Navigator interface {
	Navigate(path string)
}

// StatsGateway lectura del panel Transbank.
type StatsGateway interface {
	TransbankStats(ctx context.Context, token string) (*entity.TransbankStats, error)
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

type timerSleeper struct{}

func (timerSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// FixedRandom devuelve siempre el mismo valor. Sirve para forzar un resultado.
type FixedRandom float64

func (f FixedRandom) Float64() float64 { return float64(f) }

// RedirectRecorder guarda la última ruta navegada; la capa HTTP la devuelve al navegador.
type RedirectRecorder struct {
	Path string
}

func (r *RedirectRecorder) Navigate(path string) { r.Path = path }

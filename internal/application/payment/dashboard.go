package payment

import (
	"context"
	"fmt"

	"github.com/jhoicas/autoparts-storefront/internal/domain/entity"
)

// Dashboard panel de transacciones simuladas.
type Dashboard struct {
	gw StatsGateway
}

// NewDashboard construye el panel.
func NewDashboard(gw StatsGateway) *Dashboard {
	return &Dashboard{gw: gw}
}

// Stats devuelve el resumen de transacciones.
func (d *Dashboard) Stats(ctx context.Context, token string) (*entity.TransbankStats, error) {
	st, err := d.gw.TransbankStats(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("payment: estadisticas: %w", err)
	}
	return st, nil
}

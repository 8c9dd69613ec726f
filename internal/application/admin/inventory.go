package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/autoparts-storefront/internal/domain"
	"github.com/jhoicas/autoparts-storefront/internal/domain/entity"
)

// InventoryPanel stock por (producto, sucursal): ingresar, rebajar y eliminar filas.
type InventoryPanel struct {
	*Panel[*entity.InventoryRow]
	gw       Gateway
	products map[string]*entity.Product
}

// Inventory panel de inventario con productos y sucursales como referencia.
func (s *Service) Inventory(token string) *InventoryPanel {
	p := NewPanel(Resource[*entity.InventoryRow]{
		Name: PanelInventory,
		List: s.gw.ListInventory,
		ID:   func(r *entity.InventoryRow) string { return r.Key() },
	}, token, s.productLookup(), s.branchLookup())
	return &InventoryPanel{Panel: p, gw: s.gw}
}

// Row fila cargada para el par producto/sucursal.
func (p *InventoryPanel) Row(productID, branchID string) (*entity.InventoryRow, bool) {
	return p.Find(entity.InventoryRow{ProductID: productID, BranchID: branchID}.Key())
}

func checkMovement(productID, branchID string, qty int) error {
	missing := required("producto_id", productID, "sucursal_id", branchID)
	if qty < 1 {
		missing = append(missing, "cantidad")
	}
	if len(missing) > 0 {
		return &domain.ValidationError{Fields: missing}
	}
	return nil
}

// AddStock ingresa qty unidades y recarga.
func (p *InventoryPanel) AddStock(ctx context.Context, productID, branchID string, qty int) error {
	productID, branchID = strings.TrimSpace(productID), strings.TrimSpace(branchID)
	if err := checkMovement(productID, branchID, qty); err != nil {
		return err
	}
	if err := p.gw.AddStock(ctx, p.token, productID, branchID, qty); err != nil {
		return fmt.Errorf("admin: ingresar stock: %w", err)
	}
	log.Info().Str("producto_id", productID).Str("sucursal_id", branchID).Int("cantidad", qty).Msg("stock ingresado")
	return p.Load(ctx)
}

// RemoveStock rebaja qty unidades. Si la fila está cargada no se permite dejar stock negativo.
func (p *InventoryPanel) RemoveStock(ctx context.Context, productID, branchID string, qty int) error {
	productID, branchID = strings.TrimSpace(productID), strings.TrimSpace(branchID)
	if err := checkMovement(productID, branchID, qty); err != nil {
		return err
	}
	if row, ok := p.Row(productID, branchID); ok && qty > row.Stock {
		return &domain.ValidationError{Fields: []string{"cantidad"}}
	}
	if err := p.gw.RemoveStock(ctx, p.token, productID, branchID, qty); err != nil {
		return fmt.Errorf("admin: rebajar stock: %w", err)
	}
	log.Info().Str("producto_id", productID).Str("sucursal_id", branchID).Int("cantidad", qty).Msg("stock rebajado")
	return p.Load(ctx)
}

// DeleteRow elimina la fila con confirmación explícita.
func (p *InventoryPanel) DeleteRow(ctx context.Context, productID, branchID string, confirmed bool) error {
	if missing := required("producto_id", productID, "sucursal_id", branchID); len(missing) > 0 {
		return &domain.ValidationError{Fields: missing}
	}
	if !confirmed {
		return domain.ErrConfirmationRequired
	}
	if err := p.gw.DeleteInventory(ctx, p.token, productID, branchID); err != nil {
		return fmt.Errorf("admin: eliminar inventario: %w", err)
	}
	log.Info().Str("producto_id", productID).Str("sucursal_id", branchID).Msg("fila de inventario eliminada")
	return p.Load(ctx)
}

// LowStock filas bajo el stock mínimo de su producto. Requiere Load previo.
func (p *InventoryPanel) LowStock(ctx context.Context) ([]*entity.InventoryRow, error) {
	if p.products == nil {
		list, err := p.gw.ListProducts(ctx, false)
		if err != nil {
			return nil, fmt.Errorf("admin: productos: %w", err)
		}
		p.products = make(map[string]*entity.Product, len(list))
		for _, pr := range list {
			p.products[pr.ID] = pr
		}
	}
	var out []*entity.InventoryRow
	for _, r := range p.Items() {
		if r.BelowMinimum(p.products[r.ProductID]) {
			out = append(out, r)
		}
	}
	return out, nil
}

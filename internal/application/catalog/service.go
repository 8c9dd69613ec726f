// Package catalog arma las vistas de navegación: trae productos, categorías y sucursales
// en paralelo y filtra/ordena localmente.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/autoparts-storefront/internal/domain"
	"github.com/jhoicas/autoparts-storefront/internal/domain/entity"
)

// Page resultado de una navegación del catálogo.
type Page struct {
	Products   []*entity.Product
	Categories []*entity.Category
	Branches   []*entity.Branch
	Brands     []string
	Total      int // productos antes de filtrar
}

// Service casos de uso de catálogo.
type Service struct {
	gw Gateway
}

// NewService construye el servicio.
func NewService(gw Gateway) *Service {
	return &Service{gw: gw}
}

// Browse trae las tres colecciones en paralelo, espera a que terminen todas y aplica el filtro.
func (s *Service) Browse(ctx context.Context, onlyAvailable bool, f Filter) (*Page, error) {
	var (
		products   []*entity.Product
		categories []*entity.Category
		branches   []*entity.Branch
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.gw.ListProducts(gctx, onlyAvailable)
		if err != nil {
			return fmt.Errorf("productos: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		categories, err = s.gw.ListCategories(gctx)
		if err != nil {
			return fmt.Errorf("categorias: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		branches, err = s.gw.ListBranches(gctx)
		if err != nil {
			return fmt.Errorf("sucursales: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	return &Page{
		Products:   Apply(products, f),
		Categories: categories,
		Branches:   branches,
		Brands:     Brands(products),
		Total:      len(products),
	}, nil
}

// Product detalle de un producto.
func (s *Service) Product(ctx context.Context, id string) (*entity.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	p, err := s.gw.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

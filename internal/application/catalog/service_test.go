package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/autoparts-storefront/internal/application/catalog"
	"github.com/jhoicas/autoparts-storefront/internal/domain"
	"github.com/jhoicas/autoparts-storefront/internal/domain/entity"
)

type fakeGateway struct {
	products      []*entity.Product
	onlyAvailable bool
	branchesErr   error
}

func (f *fakeGateway) ListProducts(_ context.Context, onlyAvailable bool) ([]*entity.Product, error) {
	f.onlyAvailable = onlyAvailable
	return f.products, nil
}

func (f *fakeGateway) GetProduct(_ context.Context, id string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeGateway) ListCategories(_ context.Context) ([]*entity.Category, error) {
	return []*entity.Category{{ID: "c1", Name: "Frenos"}}, nil
}

func (f *fakeGateway) ListBranches(_ context.Context) ([]*entity.Branch, error) {
	if f.branchesErr != nil {
		return nil, f.branchesErr
	}
	return []*entity.Branch{{ID: "b1", Name: "Santiago Centro"}}, nil
}

func products() []*entity.Product {
	return []*entity.Product{
		{ID: "1", Name: "Pastilla de freno", Brand: "Bosch", InternalCode: "FR-01", CategoryID: "c1", Price: decimal.NewFromInt(15990)},
		{ID: "2", Name: "Filtro de aceite", Brand: "Mann", CategoryID: "c2", Price: decimal.NewFromInt(4990)},
		{ID: "3", Name: "Disco de freno ventilado", Brand: "Brembo", CategoryID: "c1", Price: decimal.NewFromInt(42990)},
		{ID: "4", Name: "Bujía iridio", Brand: "bosch", CategoryID: "c3", Price: decimal.NewFromInt(8990)},
	}
}

func ids(ps []*entity.Product) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func TestApply_BusquedaSinTildes(t *testing.T) {
	got := catalog.Apply(products(), catalog.Filter{Query: "BUJIA"})
	assert.Equal(t, []string{"4"}, ids(got))

	got = catalog.Apply(products(), catalog.Filter{Query: "fr-01"})
	assert.Equal(t, []string{"1"}, ids(got))
}

func TestApply_CategoriaMarcaYRangoDePrecio(t *testing.T) {
	min := decimal.NewFromInt(5000)
	max := decimal.NewFromInt(20000)

	got := catalog.Apply(products(), catalog.Filter{CategoryID: "c1"})
	assert.Equal(t, []string{"1", "3"}, ids(got))

	got = catalog.Apply(products(), catalog.Filter{Brand: "BOSCH"})
	assert.Equal(t, []string{"1", "4"}, ids(got))

	got = catalog.Apply(products(), catalog.Filter{MinPrice: &min, MaxPrice: &max})
	assert.Equal(t, []string{"1", "4"}, ids(got))
}

func TestApply_Orden(t *testing.T) {
	got := catalog.Apply(products(), catalog.Filter{Sort: catalog.SortPriceAsc})
	assert.Equal(t, []string{"2", "4", "1", "3"}, ids(got))

	got = catalog.Apply(products(), catalog.Filter{Sort: catalog.SortPriceDesc})
	assert.Equal(t, []string{"3", "1", "4", "2"}, ids(got))

	got = catalog.Apply(products(), catalog.Filter{Sort: catalog.SortName})
	assert.Equal(t, []string{"4", "3", "2", "1"}, ids(got))
}

func TestService_BrowseParalelo(t *testing.T) {
	gw := &fakeGateway{products: products()}
	svc := catalog.NewService(gw)

	page, err := svc.Browse(context.Background(), true, catalog.Filter{Query: "freno"})
	require.NoError(t, err)
	assert.True(t, gw.onlyAvailable)
	assert.Equal(t, 4, page.Total)
	assert.Len(t, page.Products, 2)
	assert.Len(t, page.Categories, 1)
	assert.Len(t, page.Branches, 1)
	assert.Equal(t, []string{"Bosch", "Brembo", "Mann", "bosch"}, page.Brands)
}

func TestService_BrowseFallaSiUnaColeccionFalla(t *testing.T) {
	gw := &fakeGateway{products: products(), branchesErr: errors.New("timeout")}
	_, err := catalog.NewService(gw).Browse(context.Background(), false, catalog.Filter{})
	require.Error(t, err)
}

func TestService_ProductoNoEncontrado(t *testing.T) {
	svc := catalog.NewService(&fakeGateway{products: products()})
	_, err := svc.Product(context.Background(), "99")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	p, err := svc.Product(context.Background(), "3")
	require.NoError(t, err)
	assert.Equal(t, "Brembo", p.Brand)
}

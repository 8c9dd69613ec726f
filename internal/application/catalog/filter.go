package catalog

import (
	"sort"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/autoparts-storefront/internal/domain/entity"
)

// Criterios de orden.
const (
	SortName      = "nombre"
	SortPriceAsc  = "precio_asc"
	SortPriceDesc = "precio_desc"
	SortBrand     = "marca"
)

// Filter criterios locales sobre la lista de productos.
type Filter struct {
	Query      string
	CategoryID string
	Brand      string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Sort       string
}

// fold pasa a minúsculas y quita tildes: "Frenos Delanteros Ñandú" → "frenos delanteros nandu".
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// Apply filtra y ordena sin modificar la lista original.
func Apply(products []*entity.Product, f Filter) []*entity.Product {
	q := fold(f.Query)
	brand := fold(f.Brand)

	out := make([]*entity.Product, 0, len(products))
	for _, p := range products {
		if p == nil {
			continue
		}
		if f.CategoryID != "" && p.CategoryID != f.CategoryID {
			continue
		}
		if brand != "" && fold(p.Brand) != brand {
			continue
		}
		if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
			continue
		}
		if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
			continue
		}
		if q != "" && !matches(p, q) {
			continue
		}
		out = append(out, p)
	}

	switch f.Sort {
	case SortName:
		sort.SliceStable(out, func(i, j int) bool { return fold(out[i].Name) < fold(out[j].Name) })
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.LessThan(out[j].Price) })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.GreaterThan(out[j].Price) })
	case SortBrand:
		sort.SliceStable(out, func(i, j int) bool { return fold(out[i].Brand) < fold(out[j].Brand) })
	}
	return out
}

func matches(p *entity.Product, q string) bool {
	for _, field := range []string{p.Name, p.Brand, p.ManufacturerCode, p.InternalCode, p.Description} {
		if strings.Contains(fold(field), q) {
			return true
		}
	}
	return false
}

// Brands devuelve las marcas distintas, ordenadas, para poblar el filtro.
func Brands(products []*entity.Product) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range products {
		if p == nil || p.Brand == "" {
			continue
		}
		if _, ok := seen[p.Brand]; ok {
			continue
		}
		seen[p.Brand] = struct{}{}
		out = append(out, p.Brand)
	}
	sort.Strings(out)
	return out
}

// Package admin implementa los paneles CRUD del back-office.
//
// Cada panel carga su colección y las colecciones que referencia en paralelo, mantiene
// la fila en edición y su borrador, y tras cada escritura vuelve a cargar todo.
// Sólo se validan campos obligatorios; la última escritura gana.
package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/autoparts-storefront/internal/domain"
)

// Resource operaciones remotas de una colección. Una función nil marca la operación como no soportada.
type Resource[T any] struct {
	Name     string
	List     func(ctx context.Context, token string) ([]T, error)
	Create   func(ctx context.Context, token string, item T) (T, error)
	Update   func(ctx context.Context, token string, id string, item T) (T, error)
	Delete   func(ctx context.Context, token string, id string) error
	ID       func(item T) string
	Required func(item T) []string
}

// Lookup colección referenciada que se resuelve a id → nombre.
type Lookup struct {
	Name string
	Load func(ctx context.Context, token string) (map[string]string, error)
}

// Panel estado de un panel de administración.
type Panel[T any] struct {
	res     Resource[T]
	token   string
	lookups []Lookup

	items []T
	names map[string]map[string]string

	editID  string
	draft   T
	editing bool
}

// NewPanel construye un panel vacío; Load lo llena.
func NewPanel[T any](res Resource[T], token string, lookups ...Lookup) *Panel[T] {
	return &Panel[T]{res: res, token: token, lookups: lookups}
}

// Name nombre de la colección.
func (p *Panel[T]) Name() string { return p.res.Name }

// Load trae la colección y los lookups en paralelo y espera a todos.
func (p *Panel[T]) Load(ctx context.Context) error {
	if p.res.List == nil {
		return domain.ErrUnsupported
	}
	var items []T
	names := make([]map[string]string, len(p.lookups))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = p.res.List(gctx, p.token)
		return err
	})
	for i, l := range p.lookups {
		g.Go(func() error {
			m, err := l.Load(gctx, p.token)
			if err != nil {
				return fmt.Errorf("%s: %w", l.Name, err)
			}
			names[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("admin: cargar %s: %w", p.res.Name, err)
	}

	p.items = items
	p.names = make(map[string]map[string]string, len(p.lookups))
	for i, l := range p.lookups {
		p.names[l.Name] = names[i]
	}
	return nil
}

// Items colección cargada.
func (p *Panel[T]) Items() []T { return p.items }

// Names mapa id → nombre del lookup indicado.
func (p *Panel[T]) Names(lookup string) map[string]string { return p.names[lookup] }

// Lookups todos los mapas de nombres cargados.
func (p *Panel[T]) Lookups() map[string]map[string]string { return p.names }

// Find busca un ítem cargado por id.
func (p *Panel[T]) Find(id string) (T, bool) {
	for _, it := range p.items {
		if p.res.ID(it) == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// StartEdit marca la fila id como en edición y usa el ítem actual como borrador.
func (p *Panel[T]) StartEdit(id string) error {
	if p.res.Update == nil {
		return domain.ErrUnsupported
	}
	it, ok := p.Find(id)
	if !ok {
		return domain.ErrNotFound
	}
	p.editID, p.draft, p.editing = id, it, true
	return nil
}

// SetDraft reemplaza el borrador de la fila en edición.
func (p *Panel[T]) SetDraft(draft T) { p.draft = draft }

// Editing devuelve la fila en edición, si hay una.
func (p *Panel[T]) Editing() (string, bool) { return p.editID, p.editing }

// CancelEdit descarta el borrador.
func (p *Panel[T]) CancelEdit() {
	var zero T
	p.editID, p.draft, p.editing = "", zero, false
}

// Save envía el borrador y recarga la colección.
func (p *Panel[T]) Save(ctx context.Context) error {
	if !p.editing {
		return fmt.Errorf("admin: %s sin fila en edición: %w", p.res.Name, domain.ErrInvalidInput)
	}
	if err := p.check(p.draft); err != nil {
		return err
	}
	if _, err := p.res.Update(ctx, p.token, p.editID, p.draft); err != nil {
		return fmt.Errorf("admin: actualizar %s %s: %w", p.res.Name, p.editID, err)
	}
	log.Info().Str("panel", p.res.Name).Str("id", p.editID).Msg("registro actualizado")
	p.CancelEdit()
	return p.Load(ctx)
}

// Create crea un ítem y recarga la colección.
func (p *Panel[T]) Create(ctx context.Context, item T) (T, error) {
	var zero T
	if p.res.Create == nil {
		return zero, domain.ErrUnsupported
	}
	if err := p.check(item); err != nil {
		return zero, err
	}
	created, err := p.res.Create(ctx, p.token, item)
	if err != nil {
		return zero, fmt.Errorf("admin: crear %s: %w", p.res.Name, err)
	}
	log.Info().Str("panel", p.res.Name).Str("id", p.res.ID(created)).Msg("registro creado")
	return created, p.Load(ctx)
}

// Delete elimina sólo con confirmación explícita y recarga la colección.
func (p *Panel[T]) Delete(ctx context.Context, id string, confirmed bool) error {
	if p.res.Delete == nil {
		return domain.ErrUnsupported
	}
	if strings.TrimSpace(id) == "" {
		return domain.ErrInvalidInput
	}
	if !confirmed {
		return domain.ErrConfirmationRequired
	}
	if err := p.res.Delete(ctx, p.token, id); err != nil {
		return fmt.Errorf("admin: eliminar %s %s: %w", p.res.Name, id, err)
	}
	log.Info().Str("panel", p.res.Name).Str("id", id).Msg("registro eliminado")
	if p.editing && p.editID == id {
		p.CancelEdit()
	}
	return p.Load(ctx)
}

func (p *Panel[T]) check(item T) error {
	if p.res.Required == nil {
		return nil
	}
	if missing := p.res.Required(item); len(missing) > 0 {
		return &domain.ValidationError{Fields: missing}
	}
	return nil
}

// required devuelve los nombres cuyos valores están en blanco. Recibe pares nombre, valor.
func required(pairs ...string) []string {
	var missing []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			missing = append(missing, pairs[i])
		}
	}
	return missing
}

package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/autoparts-storefront/internal/domain/repository"
)

var _ repository.StateStore = (*StateStore)(nil)

const stateSchema = `
	CREATE TABLE IF NOT EXISTS storefront_state (
		session_id TEXT        NOT NULL,
		key        TEXT        NOT NULL,
		value      TEXT        NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (session_id, key)
	);
	ALTER TABLE storefront_state ADD COLUMN IF NOT EXISTS cart_total NUMERIC(14,2);
	CREATE INDEX IF NOT EXISTS idx_storefront_state_updated_at ON storefront_state (updated_at)`

// sessionsIdleSince sesiones cuya última escritura es anterior a $1.
const sessionsIdleSince = `
	SELECT session_id FROM storefront_state
	GROUP BY session_id
	HAVING max(updated_at) < $1`

// CartValue carritos de sesiones inactivas y la suma de sus totales.
type CartValue struct {
	Carts int64
	Total decimal.Decimal
}

// StateStore implementación de StateStore sobre PostgreSQL (usable con pool o tx).
type StateStore struct {
	q Querier
}

// NewStateStore construye el adaptador. Pasar pool o tx (Querier).
func NewStateStore(q Querier) *StateStore {
	return &StateStore{q: q}
}

// EnsureSchema crea la tabla de estado si no existe.
func (s *StateStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.q.Exec(ctx, stateSchema); err != nil {
		return fmt.Errorf("crear tabla storefront_state: %w", err)
	}
	return nil
}

// Get obtiene el valor de una clave de la sesión.
func (s *StateStore) Get(ctx context.Context, sessionID, key string) (string, bool, error) {
	var value string
	err := s.q.QueryRow(ctx,
		`SELECT value FROM storefront_state WHERE session_id = $1 AND key = $2`,
		sessionID, key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get state: %w", err)
	}
	return value, true, nil
}

// Set inserta o reemplaza el valor de una clave. Para el carrito guarda además su total en cart_total.
func (s *StateStore) Set(ctx context.Context, sessionID, key, value string) error {
	query := `
		INSERT INTO storefront_state (session_id, key, value, cart_total, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (session_id, key)
		DO UPDATE SET value = EXCLUDED.value, cart_total = EXCLUDED.cart_total, updated_at = now()`
	if _, err := s.q.Exec(ctx, query, sessionID, key, value, cartTotal(key, value)); err != nil {
		return fmt.Errorf("upsert state: %w", err)
	}
	return nil
}

// cartTotal suma el campo "total" de las líneas del carrito serializado. nil si no aplica.
func cartTotal(key, value string) any {
	if key != repository.KeyCart {
		return nil
	}
	var lines []struct {
		Total decimal.Decimal `json:"total"`
	}
	if err := json.Unmarshal([]byte(value), &lines); err != nil {
		return nil
	}
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Total)
	}
	return total
}

// Delete elimina las claves indicadas de la sesión.
func (s *StateStore) Delete(ctx context.Context, sessionID string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := s.q.Exec(ctx,
		`DELETE FROM storefront_state WHERE session_id = $1 AND key = ANY($2)`,
		sessionID, keys,
	)
	if err != nil {
		return fmt.Errorf("delete state: %w", err)
	}
	return nil
}

// Clear elimina todas las claves de la sesión.
func (s *StateStore) Clear(ctx context.Context, sessionID string) error {
	if _, err := s.q.Exec(ctx, `DELETE FROM storefront_state WHERE session_id = $1`, sessionID); err != nil {
		return fmt.Errorf("clear state: %w", err)
	}
	return nil
}

// PurgeExpired borra las sesiones sin actividad desde hace más de ttl. Devuelve las filas borradas.
func (s *StateStore) PurgeExpired(ctx context.Context, ttl time.Duration) (int64, error) {
	query := `DELETE FROM storefront_state WHERE session_id IN (` + sessionsIdleSince + `)`
	cmd, err := s.q.Exec(ctx, query, time.Now().Add(-ttl))
	if err != nil {
		return 0, fmt.Errorf("purge state: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// AbandonedCarts cuenta los carritos de las sesiones inactivas desde hace más de ttl y suma su valor.
func (s *StateStore) AbandonedCarts(ctx context.Context, ttl time.Duration) (CartValue, error) {
	query := `
		SELECT count(*), COALESCE(sum(cart_total), 0)
		FROM storefront_state
		WHERE key = $2 AND cart_total IS NOT NULL
		  AND session_id IN (` + sessionsIdleSince + `)`
	var out CartValue
	if err := s.q.QueryRow(ctx, query, time.Now().Add(-ttl), repository.KeyCart).Scan(&out.Carts, &out.Total); err != nil {
		return CartValue{}, fmt.Errorf("abandoned carts: %w", err)
	}
	return out, nil
}

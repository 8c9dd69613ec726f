// Package backend es el cliente REST del backend de AutoParts.
//
// Todas las rutas cuelgan de una única URL base normalizada (".../api"). Las respuestas
// se decodifican a tipos de transporte y se validan antes de mapearse a entidades: una
// respuesta que no cumple el esquema falla con *domain.DecodeError en vez de propagar
// campos vacíos.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/autoparts-storefront/internal/domain"
	"github.com/jhoicas/autoparts-storefront/pkg/validate"
)

const (
	defaultTimeout = 15 * time.Second
	maxBodyBytes   = 4 << 20
)

// Client cliente HTTP del backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New construye el cliente. baseURL acepta "http://host:5000", "http://host:5000/" o
// "http://host:5000/api"; todas quedan como "http://host:5000/api".
func New(baseURL string, timeout time.Duration) (*Client, error) {
	base, err := NormalizeBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// NormalizeBaseURL valida la URL y la deja terminada en "/api" sin barra final.
func NormalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("backend: URL base inválida %q", raw)
	}
	p := strings.TrimRight(u.Path, "/")
	if !strings.HasSuffix(p, "/api") {
		p += "/api"
	}
	u.Path = p
	u.RawQuery, u.Fragment = "", ""
	return u.String(), nil
}

// BaseURL URL base normalizada.
func (c *Client) BaseURL() string { return c.baseURL }

// errorBody formatos de error que devuelve el backend.
type errorBody struct {
	Message string `json:"message"`
	Mensaje string `json:"mensaje"`
	Error   string `json:"error"`
}

func (e errorBody) text() string {
	for _, s := range []string{e.Message, e.Mensaje, e.Error} {
		if s != "" {
			return s
		}
	}
	return ""
}

// do ejecuta la petición. Con out != nil decodifica y valida la respuesta bajo el nombre resource.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any, resource string) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("backend: serializar %s: %w", resource, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("backend: crear request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("backend: %s %s cancelado: %w", method, path, ctx.Err())
		}
		return fmt.Errorf("backend: %s %s: %v: %w", method, path, err, domain.ErrBackendUnavailable)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("backend: leer respuesta: %w", err)
	}
	log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("backend")

	if resp.StatusCode >= http.StatusBadRequest {
		var eb errorBody
		_ = json.Unmarshal(raw, &eb)
		return &domain.BackendError{Status: resp.StatusCode, Message: eb.text()}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(raw)) == 0 {
		if out != nil {
			return &domain.DecodeError{Resource: resource, Err: errors.New("respuesta vacía")}
		}
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &domain.DecodeError{Resource: resource, Err: err}
	}
	if err := check(out); err != nil {
		return &domain.DecodeError{Resource: resource, Err: err}
	}
	return nil
}

// check valida structs y slices de structs con los tags validate de los tipos de transporte.
func check(v any) error {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return errors.New("valor nulo")
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Struct:
		return validate.Struct(rv.Addr().Interface())
	case reflect.Slice:
		for i := 0; i < rv.Len(); i++ {
			el := rv.Index(i)
			if el.Kind() == reflect.Pointer && el.IsNil() {
				return fmt.Errorf("[%d]: valor nulo", i)
			}
			if err := check(el.Addr().Interface()); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
	}
	return nil
}

func seg(s string) string { return url.PathEscape(s) }

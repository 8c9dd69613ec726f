package dto

import "github.com/jhoicas/autoparts-storefront/internal/application/notify"

// Envelope cuerpo de toda respuesta exitosa: datos más los avisos emitidos durante la petición.
type Envelope struct {
	Data   any            `json:"data"`
	Toasts []notify.Toast `json:"toasts"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Fields  []string       `json:"fields,omitempty"`
	Toasts  []notify.Toast `json:"toasts,omitempty"`
}

// DeleteResponse confirma una eliminación.
type DeleteResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// Package notify transporta avisos breves ("toasts") desde los casos de uso hasta la respuesta HTTP.
package notify

import (
	"errors"
	"sync"

	"github.com/jhoicas/autoparts-storefront/internal/domain"
)

// Level tipo de aviso.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Toast aviso transitorio mostrado al usuario.
type Toast struct {
	Type    Level  `json:"type"`
	Message string `json:"message"`
}

// Notifier recibe avisos. Puede ser nil: los helpers de este paquete lo toleran.
type Notifier interface {
	Notify(level Level, message string)
}

// Success emite un aviso de éxito si hay notifier.
func Success(n Notifier, message string) {
	if n != nil {
		n.Notify(LevelSuccess, message)
	}
}

// Error emite un aviso de error si hay notifier.
func Error(n Notifier, message string) {
	if n != nil {
		n.Notify(LevelError, message)
	}
}

// Info emite un aviso informativo si hay notifier.
func Info(n Notifier, message string) {
	if n != nil {
		n.Notify(LevelInfo, message)
	}
}

// Collector acumula los avisos de una petición.
type Collector struct {
	mu     sync.Mutex
	toasts []Toast
}

// NewCollector construye un collector vacío.
func NewCollector() *Collector {
	return &Collector{}
}

// Notify implementa Notifier.
func (c *Collector) Notify(level Level, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.toasts = append(c.toasts, Toast{Type: level, Message: message})
}

// Toasts devuelve una copia de los avisos acumulados.
func (c *Collector) Toasts() []Toast {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Toast, len(c.toasts))
	copy(out, c.toasts)
	return out
}

// Has indica si se emitió algún aviso del nivel indicado.
func (c *Collector) Has(level Level) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range c.toasts {
		if t.Type == level {
			return true
		}
	}
	return false
}

// Message devuelve el mensaje informado por el backend o, si no hay, el mensaje genérico.
func Message(err error, fallback string) string {
	var bErr *domain.BackendError
	if errors.As(err, &bErr) && bErr.Message != "" {
		return bErr.Message
	}
	return fallback
}

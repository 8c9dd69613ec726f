package http

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/autoparts-storefront/internal/application/dto"
)

// LoginLimiter limita los intentos de login FALLIDOS por IP dentro de una ventana.
// Los intentos exitosos no cuentan.
type LoginLimiter struct {
	mu       sync.Mutex
	attempts map[string]*attemptInfo
	max      int
	window   time.Duration
	now      func() time.Time
}

type attemptInfo struct {
	count   int
	firstAt time.Time
}

// NewLoginLimiter limite de max intentos fallidos por ventana.
func NewLoginLimiter(max int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{
		attempts: make(map[string]*attemptInfo),
		max:      max,
		window:   window,
		now:      time.Now,
	}
}

// Allow indica si la IP puede intentar de nuevo.
func (l *LoginLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	info, ok := l.attempts[ip]
	if !ok {
		return true
	}
	if l.now().Sub(info.firstAt) > l.window {
		delete(l.attempts, ip)
		return true
	}
	return info.count < l.max
}

// Fail registra un intento fallido.
func (l *LoginLimiter) Fail(ip string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	info, ok := l.attempts[ip]
	if !ok || now.Sub(info.firstAt) > l.window {
		l.attempts[ip] = &attemptInfo{count: 1, firstAt: now}
		return
	}
	info.count++
}

// Reset olvida los intentos de la IP tras un login exitoso.
func (l *LoginLimiter) Reset(ip string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.attempts, ip)
}

// Sweep elimina las ventanas vencidas.
func (l *LoginLimiter) Sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	for ip, info := range l.attempts {
		if now.Sub(info.firstAt) > l.window {
			delete(l.attempts, ip)
		}
	}
}

func (l *LoginLimiter) reject(c *fiber.Ctx) error {
	return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
		Code:    "TOO_MANY_ATTEMPTS",
		Message: "demasiados intentos fallidos, espera un minuto",
	})
}

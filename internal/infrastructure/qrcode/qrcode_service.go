// Package qrcode genera códigos QR en PNG con go-qrcode.
package qrcode

import (
	"fmt"

	"github.com/skip2/go-qrcode"

	"github.com/jhoicas/autoparts-storefront/internal/application/orders"
)

// Service implementa orders.QRGenerator.
type Service struct {
	size  int
	level qrcode.RecoveryLevel
}

var _ orders.QRGenerator = (*Service)(nil)

// NewService size en píxeles; level uno de L, M, Q, H (por defecto M).
func NewService(size int, level string) *Service {
	var l qrcode.RecoveryLevel
	switch level {
	case "L":
		l = qrcode.Low
	case "Q":
		l = qrcode.High
	case "H":
		l = qrcode.Highest
	default:
		l = qrcode.Medium
	}
	if size <= 0 {
		size = 256
	}
	return &Service{size: size, level: l}
}

// PNG codifica content como imagen PNG.
func (s *Service) PNG(content string) ([]byte, error) {
	if content == "" {
		return nil, fmt.Errorf("qrcode: contenido vacío")
	}
	q, err := qrcode.New(content, s.level)
	if err != nil {
		return nil, fmt.Errorf("qrcode: crear: %w", err)
	}
	png, err := q.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("qrcode: generar png: %w", err)
	}
	return png, nil
}

package qrcode_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/autoparts-storefront/internal/infrastructure/qrcode"
)

func TestPNG_Cabecera(t *testing.T) {
	png, err := qrcode.NewService(128, "H").PNG("https://tienda.cl/pedidos/42")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}

func TestPNG_ContenidoVacio(t *testing.T) {
	_, err := qrcode.NewService(0, "").PNG("")
	assert.Error(t, err)
}

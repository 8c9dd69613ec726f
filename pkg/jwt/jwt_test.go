package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/autoparts-storefront/pkg/jwt"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	tok, err := jwt.Generate("secreto", "s1", "u1", "admin", "autoparts", 10)
	require.NoError(t, err)

	c, err := jwt.Parse("secreto", tok)
	require.NoError(t, err)
	assert.Equal(t, "s1", c.SessionID)
	assert.Equal(t, "u1", c.UserID)
	assert.Equal(t, "admin", c.Role)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := jwt.Generate("secreto", "s1", "", "invitado", "autoparts", 10)
	require.NoError(t, err)
	_, err = jwt.Parse("otro", tok)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := jwt.Generate("secreto", "s1", "u1", "cliente", "autoparts", -1)
	require.NoError(t, err)
	_, err = jwt.Parse("secreto", tok)
	assert.Error(t, err)
}

func TestGenerate_SinSesion(t *testing.T) {
	_, err := jwt.Generate("secreto", "", "u1", "cliente", "autoparts", 10)
	assert.Error(t, err)
}

package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash_NoGuardaTextoPlano(t *testing.T) {
	h, err := Hash("password123")
	require.NoError(t, err)

	assert.NotEqual(t, "password123", h)
	assert.True(t, Verify(h, "password123"))
	assert.False(t, Verify(h, "password124"))
}

func TestHash_SaltDistintoPorLlamada(t *testing.T) {
	a, err := Hash("same")
	require.NoError(t, err)
	b, err := Hash("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestVerify_HashVacio(t *testing.T) {
	assert.False(t, Verify("", "anything"))
}

func TestHash_RechazaMasDe72Bytes(t *testing.T) {
	_, err := Hash(strings.Repeat("a", MaxBytes+1))
	assert.ErrorIs(t, err, ErrTooLong)

	// 36 runas de 2 bytes = 72 bytes, justo en el límite.
	h, err := Hash(strings.Repeat("ñ", 36))
	require.NoError(t, err)
	assert.True(t, Verify(h, strings.Repeat("ñ", 36)))
	assert.False(t, FitsBcrypt(strings.Repeat("ñ", 37)))
}

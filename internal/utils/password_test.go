package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SegurosAndinos/api-corretaje/internal/utils"
)

func TestHashYVerificarClave(t *testing.T) {
	hash, err := utils.HashClave("secreta123")
	require.NoError(t, err)
	assert.NotEqual(t, "secreta123", hash)

	assert.True(t, utils.VerificarClave(hash, "secreta123"))
	assert.False(t, utils.VerificarClave(hash, "otra"))
}

func TestGenerarClaveTemporal(t *testing.T) {
	a, err := utils.GenerarClaveTemporal()
	require.NoError(t, err)
	b, err := utils.GenerarClaveTemporal()
	require.NoError(t, err)

	assert.Len(t, a, 12)
	assert.NotEqual(t, a, b)
}

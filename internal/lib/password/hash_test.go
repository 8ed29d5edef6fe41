package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHashAndCompareHash(t *testing.T) {
	hash, err := GetHash("correct-horse-battery-staple")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "correct-horse-battery-staple", hash)

	assert.NoError(t, CompareHash(hash, "correct-horse-battery-staple"))
	assert.Error(t, CompareHash(hash, "wrong-password"))
}

func TestGetHash_DifferentSalts(t *testing.T) {
	first, err := GetHash("same-password")
	require.NoError(t, err)
	second, err := GetHash("same-password")
	require.NoError(t, err)

	// bcrypt солит каждый хэш, значения не должны совпадать
	assert.NotEqual(t, first, second)
	assert.NoError(t, CompareHash(first, "same-password"))
	assert.NoError(t, CompareHash(second, "same-password"))
}

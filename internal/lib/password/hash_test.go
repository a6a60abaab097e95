package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSalt(t *testing.T) {
	first, err := NewSalt()
	require.NoError(t, err)
	second, err := NewSalt()
	require.NoError(t, err)

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
	// 64 байта в base64 без набивки — 86 символов
	assert.Len(t, first, 86)
}

func TestGetHash(t *testing.T) {
	salt, err := NewSalt()
	require.NoError(t, err)

	hash := GetHash("correct horse battery staple", salt)
	assert.Len(t, hash, 64) // hex от 32 байт

	// тот же пароль и соль дают тот же хэш
	assert.Equal(t, hash, GetHash("correct horse battery staple", salt))

	// другая соль меняет хэш
	otherSalt, err := NewSalt()
	require.NoError(t, err)
	assert.NotEqual(t, hash, GetHash("correct horse battery staple", otherSalt))
}

func TestCompareHash(t *testing.T) {
	salt, err := NewSalt()
	require.NoError(t, err)
	hash := GetHash("secret-password", salt)

	assert.True(t, CompareHash(hash, "secret-password", salt))
	assert.False(t, CompareHash(hash, "wrong-password", salt))
	assert.False(t, CompareHash(hash, "secret-password", "other-salt"))
}

package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Length(t *testing.T) {
	shortID, err := Generate(12)
	require.NoError(t, err)
	assert.Len(t, shortID, 12)
}

func TestGenerate_DefaultsOnNonPositiveLength(t *testing.T) {
	shortID, err := Generate(0)
	require.NoError(t, err)
	assert.Len(t, shortID, DefaultLength)

	shortID, err = Generate(-5)
	require.NoError(t, err)
	assert.Len(t, shortID, DefaultLength)
}

func TestGenerate_AlphabetOnly(t *testing.T) {
	shortID, err := Generate(64)
	require.NoError(t, err)

	for _, r := range shortID {
		assert.True(t, strings.ContainsRune(alphabet, r), "unexpected character %q", r)
	}
}

func TestGenerate_Uniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		shortID, err := Generate(DefaultLength)
		require.NoError(t, err)
		assert.False(t, seen[shortID], "duplicate ID generated: %s", shortID)
		seen[shortID] = true
	}
}

func TestGenerateWithPrefix(t *testing.T) {
	fullID, err := GenerateWithPrefix(PrefixSubscription, DefaultLength)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(fullID, "sub_"))
	assert.Len(t, fullID, len("sub_")+DefaultLength)
	assert.True(t, HasPrefix(fullID, PrefixSubscription))
	assert.False(t, HasPrefix(fullID, "plan"))
}

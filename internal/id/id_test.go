package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Uniqueness(t *testing.T) {
	ids := make(map[string]bool)
	for range 1000 {
		id, err := Generate("test")
		require.NoError(t, err)
		assert.False(t, ids[id], "duplicate id %s", id)
		ids[id] = true
	}
	assert.Len(t, ids, 1000)
}

func TestGenerate_Format(t *testing.T) {
	id, err := Generate("city")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(id, "city-"))
	assert.Len(t, id, len("city-")+21)
}

func TestRequestID(t *testing.T) {
	a := RequestID()
	b := RequestID()

	assert.True(t, strings.HasPrefix(a, PrefixRequest+"-"))
	assert.Len(t, a, len(PrefixRequest)+1+requestIDSize)
	assert.NotEqual(t, a, b)
	assert.NotContains(t, a, " ")
}

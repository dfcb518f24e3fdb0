package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsUnique(t *testing.T) {
	a, b := New(), New()
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 36)
}

func TestParse(t *testing.T) {
	raw := New()
	got, err := Parse(strings.ToUpper(raw))
	require.NoError(t, err)
	assert.Equal(t, raw, got)

	_, err = Parse("2025-01-001")
	assert.Error(t, err)
}

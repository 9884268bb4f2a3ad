package mapsafe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	m := map[string]any{
		"rotated":   true,
		"epoch":     float64(47), // as decoded from YAML/JSON
		"backbone":  "mobilenetv3",
		"threshold": 0.3,
	}

	assert.True(t, Get(m, "rotated", false))
	assert.Equal(t, 47, Get(m, "epoch", 0))
	assert.Equal(t, "mobilenetv3", Get(m, "backbone", ""))
	assert.Equal(t, 0.3, Get(m, "threshold", 0.0))
}

func TestGetDefaults(t *testing.T) {
	m := map[string]any{"epoch": "not a number"}

	assert.Equal(t, 59, Get(m, "epoch", 59))
	assert.Equal(t, "fallback", Get(m, "missing", "fallback"))
	assert.False(t, Get(m, "missing", false))
	assert.False(t, Get(nil, "anything", false))
}

package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeededRandomIsReproducible(t *testing.T) {
	a := NewSeeded(42)
	b := NewSeeded(42)

	for range 20 {
		assert.Equal(t, a.Intn(9), b.Intn(9))
	}
	assert.Equal(t, a.String(8, "abcdef"), b.String(8, "abcdef"))
}

func TestIntnBounds(t *testing.T) {
	sources := map[string]Random{
		"crypto": New(),
		"seeded": NewSeeded(7),
	}
	for name, r := range sources {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, 0, r.Intn(0))
			assert.Equal(t, 0, r.Intn(-3))
			for range 100 {
				v := r.Intn(4)
				assert.GreaterOrEqual(t, v, 0)
				assert.Less(t, v, 4)
			}
		})
	}
}

func TestStringUsesAlphabet(t *testing.T) {
	s := NewSeeded(1).String(16, "xy")
	assert.Len(t, s, 16)
	for _, c := range s {
		assert.Contains(t, "xy", string(c))
	}
	assert.Empty(t, New().String(0, "xy"))
	assert.Empty(t, New().String(4, ""))
}

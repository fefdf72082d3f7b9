package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp01(t *testing.T) {
	cases := map[string]struct {
		in   float64
		want float64
	}{
		"inside":       {0.25, 0.25},
		"negative":     {-3, 0},
		"above":        {7.5, 1},
		"lower bound":  {0, 0},
		"upper bound":  {1, 1},
		"nan":          {math.NaN(), 0},
		"positive inf": {math.Inf(1), 1},
		"negative inf": {math.Inf(-1), 0},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, Clamp01(tc.in))
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, 0.5, Normalize(400, 800))
	assert.Equal(t, 1.0, Normalize(1200, 800))
	assert.Equal(t, 0.0, Normalize(-10, 800))
	assert.Equal(t, 0.0, Normalize(400, 0), "zero extent must not divide by zero")
}

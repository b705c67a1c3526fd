package conquest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mitchelldurbincs/conquestreplay/internal/game/core"
)

func TestPriority(t *testing.T) {
	tests := []struct {
		name     string
		base     int
		owned    int
		terrain  core.Terrain
		expected float64
	}{
		{"isolated plains", 10, 0, core.Plains, 15},
		{"isolated highland", 10, 0, core.Highland, 17.5},
		{"isolated mountain", 10, 0, core.Mountain, 20},
		{"one attacker neighbor", 12, 1, core.Plains, 12},
		{"two attacker neighbors", 14, 2, core.Highland, 10.5},
		{"three neighbors on plains is zero", 17, 3, core.Plains, 0},
		{"four neighbors on plains goes negative", 10, 4, core.Plains, -5},
		{"four neighbors on mountain is zero", 16, 4, core.Mountain, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Priority(tt.base, tt.owned, tt.terrain))
		})
	}
}

func TestPriorityRangeOnPlains(t *testing.T) {
	for base := BaseDrawMin + BaseOffset; base <= BaseDrawMax+BaseOffset; base++ {
		p := Priority(base, 1, core.Plains)
		assert.Equal(t, float64(base), p)
	}
}

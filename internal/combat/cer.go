// Package combat implements spec.md C7: the Space->Orbital->Blockade->
// Planetary theater orchestrator, CER dice resolution, planetary
// shields, damage propagation, and retreat.
package combat

import (
	"math"
	"math/rand"

	"github.com/greenm01/ec4x/internal/config"
)

// RollCER draws one CER die and returns the matching table row. The die
// size is fixed at d10 per spec.md §4.6 "Each side rolls 1d10".
func RollCER(r *rand.Rand, table []config.CERRow) config.CERRow {
	roll := r.Intn(10) + 1
	for _, row := range table {
		if roll >= row.Min && roll <= row.Max {
			return row
		}
	}
	// Defensive fallback: an incomplete table maps the unmatched roll
	// to a neutral 1.0 multiplier rather than panicking mid-combat.
	return config.CERRow{Min: roll, Max: roll, Multiplier: 1.0}
}

// Hits computes ceil(attackStrength * multiplier), the CER hit formula
// of spec.md §4.6.
func Hits(attackStrength float64, multiplier float64) int {
	return int(math.Ceil(attackStrength * multiplier))
}

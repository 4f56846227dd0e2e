package combat

import (
	"math/rand"

	"github.com/greenm01/ec4x/internal/config"
	"github.com/greenm01/ec4x/internal/model"
)

// ShieldOutcome is the result of a single planetary-shield resolution
// during the Planetary theater (spec.md §4.6, SPEC_FULL.md Open
// Question 3: the shield roll is a genuine d20 draw, not derived from
// the d10 CER roll).
type ShieldOutcome struct {
	Activated      bool
	BlockPercent   float64
	BypassedByPB   int // not set by ResolveShield; ApplyShield takes Planet-Breaker hits as a separate argument
}

// ResolveShield draws a d20 against the colony's active shield
// threshold and, if the shield holds, returns the block percentage to
// apply to incoming hits. A colony with no ShieldLevel never rolls.
func ResolveShield(r *rand.Rand, reg *config.Registry, col *model.Colony) ShieldOutcome {
	if col.ShieldLevel == "" {
		return ShieldOutcome{}
	}

	threshold, ok := reg.ShieldActivationThreshold[col.ShieldLevel]
	if !ok {
		return ShieldOutcome{}
	}

	roll := r.Intn(20) + 1
	if roll < threshold {
		return ShieldOutcome{}
	}

	return ShieldOutcome{
		Activated:    true,
		BlockPercent: reg.ShieldBlockPercent[col.ShieldLevel],
	}
}

// ApplyShield splits incoming hits into a shielded portion and a
// Planet-Breaker portion: Planet-Breaker squadrons bypass planetary
// shields entirely (spec.md §4.6 "Planet-Breakers ignore shields"), so
// their attack strength is resolved against the colony unshielded while
// every other attacker's hits are reduced by the shield's block
// percentage.
func ApplyShield(outcome ShieldOutcome, shieldableHits, planetBreakerHits int) int {
	remaining := planetBreakerHits
	if !outcome.Activated {
		return remaining + shieldableHits
	}

	blocked := int(float64(shieldableHits) * outcome.BlockPercent)
	return remaining + (shieldableHits - blocked)
}

// SplitAttackStrength partitions a side's attacking squadrons into
// Planet-Breaker and non-Planet-Breaker attack strength totals, since
// the two resolve against a shielded colony differently.
func SplitAttackStrength(squadrons []*model.Squadron) (planetBreaker, other float64) {
	for _, sq := range squadrons {
		as := sq.EffectiveAttackStrength()
		if sq.Flagship == model.ClassPlanetBreaker {
			planetBreaker += as
			continue
		}
		other += as
	}
	return planetBreaker, other
}

// Package economy implements spec.md C8: the fixed twelve-step Income
// Phase, GCO/NCV production formulae, tax policy, espionage budget
// purchases, maintenance and salvage, capacity enforcement, research
// allocation, prestige application, and elimination/victory checks.
//
// All house-ledger arithmetic (GCO, NCV, maintenance, treasury deltas)
// uses github.com/shopspring/decimal rather than float64: these values
// compound turn over turn for the life of a game, and repeated
// float64 rounding would let two runs of the same seed drift apart —
// violating R2 (spec.md §8). Combat's CER math (internal/combat) has no
// such compounding and stays on float64; see DESIGN.md C7/C8.
package economy

import (
	"github.com/shopspring/decimal"

	"github.com/greenm01/ec4x/internal/config"
	"github.com/greenm01/ec4x/internal/model"
)

// GCO computes Gross Colony Output: f(PU, IU, planet_class, raw_quality, EL)
// as a pure function of reg's tables (spec.md §4.7 step 3).
func GCO(reg *config.Registry, col *model.Colony, sys *model.System, elLevel int) decimal.Decimal {
	base, ok := reg.GCOBaseByPlanetClass[sys.Class]
	if !ok {
		base = 0
	}
	resMult, ok := reg.GCOResourceMultiplier[sys.Resource]
	if !ok {
		resMult = 1
	}

	pu := decimal.NewFromInt(int64(col.PopulationUnits))
	baseD := decimal.NewFromFloat(base)
	resMultD := decimal.NewFromFloat(resMult)
	elBonus := decimal.NewFromFloat(1 + reg.ELProductionBonusPerLevel*float64(elLevel))

	output := pu.Mul(baseD).Mul(resMultD).Mul(elBonus)

	if col.Blockaded {
		reduction := decimal.NewFromFloat(1 - reg.BlockadeGCOReduction)
		output = output.Mul(reduction)
	}

	return output.Round(2)
}

// NCV computes Net Colony Value: GCO x tax_rate / 100 (spec.md §4.7 step 3).
func NCV(gco decimal.Decimal, taxRatePercent int) decimal.Decimal {
	rate := decimal.NewFromInt(int64(taxRatePercent)).Div(decimal.NewFromInt(100))
	return gco.Mul(rate).Round(2)
}

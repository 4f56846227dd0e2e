package economy

import (
	"math"
	"math/rand"

	"github.com/greenm01/ec4x/internal/config"
	"github.com/greenm01/ec4x/internal/event"
	"github.com/greenm01/ec4x/internal/model"
)

// ResearchCost returns the accumulated RP threshold to advance field
// from its current level to the next, an exponential curve off a
// configured base and baseline (spec.md §4.7 "Research allocation").
func ResearchCost(reg *config.Registry, currentLevel int) float64 {
	return float64(reg.ResearchCostBaseline) * math.Pow(reg.ResearchCostExponentBase, float64(currentLevel))
}

// ScaleAllocations proportionally shrinks a house's requested PP
// allocations to fit its treasury when the sum exceeds it (spec.md
// §4.7 "If total allocation exceeds current treasury, allocations are
// scaled proportionally").
func ScaleAllocations(requested map[config.TechField]int, treasury int) map[config.TechField]int {
	total := 0
	for _, pp := range requested {
		total += pp
	}
	if total <= treasury || total == 0 {
		return requested
	}

	scale := float64(treasury) / float64(total)
	out := make(map[config.TechField]int, len(requested))
	for field, pp := range requested {
		out[field] = int(float64(pp) * scale)
	}
	return out
}

// ApplyResearch converts each field's PP allocation to RP, advances
// tech levels that cross their cost threshold, and deducts the spent
// PP from treasury. PP->RP conversion scales with house SL: every SL
// level reduces the PP cost per RP by the configured baseline's
// inverse relationship — a house with higher Shipyard/Logistics tech
// converts research funding more efficiently.
func ApplyResearch(reg *config.Registry, h *model.House, log *event.Log, turn int, allocations map[config.TechField]int) {
	allocations = ScaleAllocations(allocations, h.Treasury)

	slBonus := 1 + 0.05*float64(h.TechLevel(config.TechSL))

	for _, field := range config.AllTechFields {
		pp, ok := allocations[field]
		if !ok || pp <= 0 {
			continue
		}

		rp := float64(pp) * reg.PPtoRPConversionBaseline * slBonus
		h.ResearchRP[field] += int(rp)
		h.Treasury -= pp

		level := h.TechLevels[field]
		if level >= 20 {
			continue
		}
		cost := ResearchCost(reg, level)
		if float64(h.ResearchRP[field]) >= cost {
			h.ResearchRP[field] -= int(cost)
			h.TechLevels[field] = level + 1
		}
	}
}

// RollBreakthrough implements the every-5-turn breakthrough roll
// (spec.md §4.7): on success, grants bonus RP to a deterministically
// chosen field (the field with the lowest current level, ties going to
// the field listed first in config.AllTechFields) rather than a random one, so results stay auditable
// without sacrificing the dice-driven trigger.
func RollBreakthrough(reg *config.Registry, h *model.House, r *rand.Rand, turn int, log *event.Log) {
	if reg.ResearchBreakthroughEveryNTurns <= 0 || turn%reg.ResearchBreakthroughEveryNTurns != 0 {
		return
	}

	roll := r.Intn(100)
	if roll >= 20 { // 20% breakthrough chance per eligible turn.
		return
	}

	field := lowestLevelField(h)
	h.ResearchRP[field] += int(reg.ResearchCostBaseline / 2)
	log.Emit(turn, event.KindResearchBreakthrough, map[string]any{
		"house": string(h.ID), "field": string(field),
	})
}

func lowestLevelField(h *model.House) config.TechField {
	best := config.AllTechFields[0]
	for _, f := range config.AllTechFields {
		if h.TechLevels[f] < h.TechLevels[best] {
			best = f
		}
	}
	return best
}

package economy

import (
	"sort"

	"github.com/greenm01/ec4x/internal/config"
	"github.com/greenm01/ec4x/internal/event"
	"github.com/greenm01/ec4x/internal/model"
	"github.com/greenm01/ec4x/internal/state"
)

// HouseCapacityMax returns the configured ceiling for a house-wide
// capacity kind at its current CST tech level (spec.md §3 invariant 5).
func HouseCapacityMax(reg *config.Registry, h *model.House, kind config.CapacityKind) int {
	base := reg.CapacityBaseByKind[kind]
	perCST := reg.CapacityPerCSTByKind[kind]
	return base + int(perCST*float64(h.TechLevel(config.TechCST)))
}

// CountSquadrons tallies a house's live squadrons by capacity kind,
// across every fleet and every colony's unassigned roster.
func CountSquadrons(c *state.Container, house model.HouseId) (capital, total, planetBreakers int) {
	for _, fid := range c.FleetsOwnedBy(house) {
		f, ok := c.GetFleet(fid)
		if !ok {
			continue
		}
		for _, sqid := range f.Squadrons {
			tallySquadron(c, sqid, &capital, &total, &planetBreakers)
		}
	}
	for _, cid := range c.ColoniesOwnedBy(house) {
		col, ok := c.GetColony(cid)
		if !ok {
			continue
		}
		for _, sqid := range col.UnassignedSquadrons {
			tallySquadron(c, sqid, &capital, &total, &planetBreakers)
		}
	}
	return capital, total, planetBreakers
}

func tallySquadron(c *state.Container, sqid model.SquadronId, capital, total, planetBreakers *int) {
	sq, ok := c.GetSquadron(sqid)
	if !ok || sq.State == model.Destroyed {
		return
	}
	*total++
	if sq.Flagship.IsCapital() {
		*capital++
	}
	if sq.Flagship == model.ClassPlanetBreaker {
		*planetBreakers++
	}
}

// EnforceHouseCapacity implements spec.md §4.7 step 7 for the three
// house-wide capacity kinds. Capital squadrons and planet-breakers
// enforce immediately (config.CapacityPolicy.GraceTurns == 0); total
// squadrons carries a configured grace period, ticked down on the
// house's own CapacityViolations tracker, keyed by capacity kind.
func EnforceHouseCapacity(c *state.Container, reg *config.Registry, log *event.Log, turn int, house *model.House) {
	capital, total, pb := CountSquadrons(c, house.ID)

	enforceKind(c, reg, log, turn, house, config.CapacityCapitalSquadrons, capital, HouseCapacityMax(reg, house, config.CapacityCapitalSquadrons))
	enforceKind(c, reg, log, turn, house, config.CapacityTotalSquadrons, total, HouseCapacityMax(reg, house, config.CapacityTotalSquadrons))
	enforceKind(c, reg, log, turn, house, config.CapacityPlanetBreakers, pb, HouseCapacityMax(reg, house, config.CapacityPlanetBreakers))
}

func enforceKind(c *state.Container, reg *config.Registry, log *event.Log, turn int, house *model.House, kind config.CapacityKind, count, max int) {
	if count <= max {
		return
	}

	policy := reg.CapacityPolicies[kind]
	v, active := house.CapacityViolations[string(kind)]
	if !active {
		v = &model.CapacityViolation{Active: true, TurnsRemaining: policy.GraceTurns, ViolationTurn: turn}
		house.CapacityViolations[string(kind)] = v
	}

	if v.TurnsRemaining > 0 {
		v.TurnsRemaining--
		log.Emit(turn, event.KindCapacityViolation, map[string]any{
			"house": string(house.ID), "kind": string(kind), "count": count, "max": max, "grace_remaining": v.TurnsRemaining,
		})
		return
	}

	disbandExcess(c, log, turn, house, kind, count-max)
	delete(house.CapacityViolations, string(kind))
}

func disbandExcess(c *state.Container, log *event.Log, turn int, house *model.House, kind config.CapacityKind, excess int) {
	candidates := squadronsOfKind(c, house.ID, kind)
	sort.Slice(candidates, func(i, j int) bool { return candidates[i] < candidates[j] })

	for i := 0; i < excess && i < len(candidates); i++ {
		id := candidates[i]
		c.RemoveSquadron(id)
		log.Emit(turn, event.KindSquadronDisbanded, map[string]any{
			"house": string(house.ID), "squadron": string(id), "kind": string(kind),
		})
	}
}

func squadronsOfKind(c *state.Container, house model.HouseId, kind config.CapacityKind) []model.SquadronId {
	var out []model.SquadronId
	collect := func(sqid model.SquadronId) {
		sq, ok := c.GetSquadron(sqid)
		if !ok || sq.State == model.Destroyed {
			return
		}
		switch kind {
		case config.CapacityCapitalSquadrons:
			if sq.Flagship.IsCapital() {
				out = append(out, sqid)
			}
		case config.CapacityPlanetBreakers:
			if sq.Flagship == model.ClassPlanetBreaker {
				out = append(out, sqid)
			}
		default:
			out = append(out, sqid)
		}
	}

	for _, fid := range c.FleetsOwnedBy(house) {
		f, ok := c.GetFleet(fid)
		if !ok {
			continue
		}
		for _, sqid := range f.Squadrons {
			collect(sqid)
		}
	}
	for _, cid := range c.ColoniesOwnedBy(house) {
		col, ok := c.GetColony(cid)
		if !ok {
			continue
		}
		for _, sqid := range col.UnassignedSquadrons {
			collect(sqid)
		}
	}
	return out
}

// EnforceFighterCapacity implements the fighter half of spec.md §4.7
// step 7 and invariant 4: a 2-turn grace period per colony, then
// oldest-first auto-disband, the oldest being the earliest entries of
// the colony's FighterSquadrons roster (squadron IDs are random, so ID
// order says nothing about age).
func EnforceFighterCapacity(c *state.Container, reg *config.Registry, log *event.Log, turn int, house *model.House, col *model.Colony) {
	fdMultiplier := 1 + reg.FDCapacityMultiplierPerLevel*float64(house.TechLevel(config.TechFD))
	max := col.FighterCapacity(reg.FighterCapacityIUDivisor, fdMultiplier)
	count := len(col.FighterSquadrons)
	if count <= max {
		delete(col.CapacityViolations, string(config.CapacityFighters))
		return
	}

	policy := reg.CapacityPolicies[config.CapacityFighters]
	v, active := col.CapacityViolations[string(config.CapacityFighters)]
	if !active {
		v = &model.CapacityViolation{Active: true, TurnsRemaining: policy.GraceTurns, ViolationTurn: turn}
		col.CapacityViolations[string(config.CapacityFighters)] = v
	}

	if v.TurnsRemaining > 0 {
		v.TurnsRemaining--
		log.Emit(turn, event.KindCapacityViolation, map[string]any{
			"colony": string(col.ID), "kind": "fighters", "count": count, "max": max, "grace_remaining": v.TurnsRemaining,
		})
		return
	}

	ordered := append([]model.SquadronId(nil), col.FighterSquadrons...)

	excess := count - max
	disbanded := make(map[model.SquadronId]bool, excess)
	for i := 0; i < excess && i < len(ordered); i++ {
		id := ordered[i]
		disbanded[id] = true
		c.RemoveSquadron(id)
		log.Emit(turn, event.KindSquadronDisbanded, map[string]any{
			"colony": string(col.ID), "squadron": string(id), "kind": "fighters",
		})
	}

	remaining := col.FighterSquadrons[:0:0]
	for _, id := range col.FighterSquadrons {
		if !disbanded[id] {
			remaining = append(remaining, id)
		}
	}
	col.FighterSquadrons = remaining
	delete(col.CapacityViolations, string(config.CapacityFighters))
}

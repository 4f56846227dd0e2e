package combat

import (
	"sort"

	"github.com/greenm01/ec4x/internal/model"
	"github.com/greenm01/ec4x/internal/starmap"
	"github.com/greenm01/ec4x/internal/state"
)

// retreatLosers evaluates every active house's fleets at sys once the
// round's combat-round limit has reached the retreat-eligible round
// (spec.md §4.6 "Retreat"), and pulls the weaker side's survivors out
// to the nearest friendly system. Fighter squadrons never retreat —
// they are tied to their carrier or colony hangar — and a spacelift
// squadron (Transport) is destroyed outright if every escort in its
// fleet has already been lost, since it cannot survive alone in a
// contested system.
func retreatLosers(c *state.Container, sys model.SystemId, active []model.HouseId, rep *Report) []model.HouseId {
	var retreated []model.HouseId

	strengthByHouse := make(map[model.HouseId]float64, len(active))
	for _, house := range active {
		strengthByHouse[house] = totalAttackStrength(liveSquadronsAt(c, sys, house))
	}

	var strongest float64
	for _, s := range strengthByHouse {
		if s > strongest {
			strongest = s
		}
	}

	for _, house := range active {
		if strengthByHouse[house] >= strongest {
			continue // the strongest side (or a tie) holds the field.
		}
		if retreatHouseFleets(c, sys, house) {
			retreated = append(retreated, house)
		}
	}

	sort.Slice(retreated, func(i, j int) bool { return retreated[i] < retreated[j] })
	return retreated
}

func retreatHouseFleets(c *state.Container, sys model.SystemId, house model.HouseId) bool {
	candidates := friendlySystemsFor(c, house, sys)
	dest, ok := starmap.NearestFriendly(c, sys, candidates)
	retreatedAny := false

	for _, fid := range c.FleetsInSystem(sys) {
		f, fok := c.GetFleet(fid)
		if !fok || f.Owner != house {
			continue
		}

		escorted := hasEscort(c, f)
		for _, sqid := range f.Squadrons {
			sq, sok := c.GetSquadron(sqid)
			if !sok || sq.State == model.Destroyed {
				continue
			}
			if sq.Flagship == model.ClassTransport && !escorted {
				sq.State = model.Destroyed
			}
		}

		if !ok {
			continue
		}
		c.MoveFleet(fid, dest)
		f.Mission = model.MissionIdle
		f.CurrentCommand = nil
		f.Path = nil
		f.PathIndex = 0
		retreatedAny = true
	}

	return retreatedAny
}

func hasEscort(c *state.Container, f *model.Fleet) bool {
	for _, sqid := range f.Squadrons {
		sq, ok := c.GetSquadron(sqid)
		if !ok || sq.State == model.Destroyed {
			continue
		}
		if sq.Flagship != model.ClassTransport {
			return true
		}
	}
	return false
}

// friendlySystemsFor lists every system the house holds a colony in,
// the only valid retreat destinations.
func friendlySystemsFor(c *state.Container, house model.HouseId, exclude model.SystemId) []model.SystemId {
	var out []model.SystemId
	for _, id := range c.ColoniesOwnedBy(house) {
		if model.SystemId(id) == exclude {
			continue
		}
		out = append(out, model.SystemId(id))
	}
	return out
}

package economy

import (
	"github.com/greenm01/ec4x/internal/config"
	"github.com/greenm01/ec4x/internal/model"
	"github.com/greenm01/ec4x/internal/state"
)

// Maintenance sums the per-turn upkeep of every surviving squadron a
// house owns, across fleets and colony-unassigned rosters (spec.md
// §4.7 step 5).
func Maintenance(reg *config.Registry, c *state.Container, house model.HouseId) int {
	total := 0
	add := func(sqid model.SquadronId) {
		sq, ok := c.GetSquadron(sqid)
		if !ok || sq.State == model.Destroyed {
			return
		}
		total += reg.MaintenancePerShipClass[string(sq.Flagship)]
	}

	for _, fid := range c.FleetsOwnedBy(house) {
		f, ok := c.GetFleet(fid)
		if !ok {
			continue
		}
		for _, sqid := range f.Squadrons {
			add(sqid)
		}
	}
	for _, cid := range c.ColoniesOwnedBy(house) {
		col, ok := c.GetColony(cid)
		if !ok {
			continue
		}
		for _, sqid := range col.UnassignedSquadrons {
			add(sqid)
		}
		for _, sqid := range col.FighterSquadrons {
			add(sqid)
		}
		for range col.Starbases {
			total += 1
		}
	}
	return total
}

// Salvage converts a completed salvage mission's recovered wreckage
// into PP, credited straight to treasury (spec.md §4.7 step 6 — "also
// handled in Income, not Command").
func Salvage(tonnage int, ppPerTon int) int {
	return tonnage * ppPerTon
}

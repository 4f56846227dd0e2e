package intel

import (
	"sort"

	"github.com/greenm01/ec4x/internal/model"
	"github.com/greenm01/ec4x/internal/state"
)

// FleetSighting is what a viewing house is entitled to know about a
// fleet it does not own: never the exact composition unless it owns
// that fleet or holds a fresh CombatEncounterReport on it.
type FleetSighting struct {
	ID       model.FleetId
	Owner    model.HouseId
	Location model.SystemId
	// SquadronCount is populated only when the viewer owns the fleet or
	// holds a Perfect-quality report naming it; otherwise left at 0 to
	// signal "presence known, composition unknown".
	SquadronCount int
}

// ColonySighting mirrors FleetSighting for colonies: ownership and
// location are always visible once the system itself is visible, but
// population/industrial figures are withheld absent an intel report.
type ColonySighting struct {
	ID    model.ColonyId
	Owner model.HouseId
	Known bool // true once an IntelReport has revealed internal figures.
}

// FilteredGameState is the per-house projection spec.md §4.8 requires:
// `project(ground_truth, viewing_house) -> FilteredGameState`. Blind
// systems are simply absent from the maps below.
type FilteredGameState struct {
	Viewer  model.HouseId
	Turn    int
	Fleets  map[model.FleetId]FleetSighting
	Colonies map[model.ColonyId]ColonySighting
}

// Project builds the filtered view for one house: every fleet/colony
// in a system the house can currently see, with composition/figures
// degraded to what that house is entitled to know (spec.md §4.8).
func Project(c *state.Container, v *Visibility, viewer model.HouseId) *FilteredGameState {
	out := &FilteredGameState{
		Viewer:   viewer,
		Turn:     c.Turn,
		Fleets:   make(map[model.FleetId]FleetSighting),
		Colonies: make(map[model.ColonyId]ColonySighting),
	}

	viewerHouse, _ := c.GetHouse(viewer)

	for _, sys := range v.VisibleSystems(viewer) {
		for _, fid := range c.FleetsInSystem(sys) {
			f, ok := c.GetFleet(fid)
			if !ok {
				continue
			}
			sighting := FleetSighting{ID: f.ID, Owner: f.Owner, Location: f.Location}
			if f.Owner == viewer {
				sighting.SquadronCount = len(f.Squadrons)
			} else if viewerHouse != nil {
				if rep, ok := viewerHouse.Intel.Latest(model.ReportCombatEncounter, sys); ok && rep.Quality == model.QualityPerfect {
					if n, ok := rep.Payload["squadron_count"].(int); ok {
						sighting.SquadronCount = n
					}
				}
			}
			out.Fleets[fid] = sighting
		}

		if col, ok := c.GetColony(sys); ok {
			known := col.Owner == viewer
			if !known && viewerHouse != nil {
				_, known = viewerHouse.Intel.Latest(model.ReportColony, sys)
			}
			out.Colonies[col.ID] = ColonySighting{ID: col.ID, Owner: col.Owner, Known: known}
		}
	}

	return out
}

// SortedFleetIDs is a convenience for deterministic client serialization.
func (f *FilteredGameState) SortedFleetIDs() []model.FleetId {
	ids := make([]model.FleetId, 0, len(f.Fleets))
	for id := range f.Fleets {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Package state implements the authoritative in-memory GameState
// container (spec.md C3): keyed entity stores plus the secondary
// indices the rest of the engine queries in O(1) — fleets by system,
// colonies by owner, fleets by owner. The container is the single
// mutable object the engine touches; every other package reaches
// entities only by ID, through this container (spec.md §9 "Cyclic-graph
// avoidance").
package state

import (
	"sort"

	"github.com/greenm01/ec4x/internal/model"
)

// Container owns every entity for one running game.
type Container struct {
	Turn  int
	Phase string

	Houses    map[model.HouseId]*model.House
	Systems   map[model.SystemId]*model.System
	Colonies  map[model.ColonyId]*model.Colony
	Fleets    map[model.FleetId]*model.Fleet
	Squadrons map[model.SquadronId]*model.Squadron
	Scouts    map[model.SpyScoutId]*model.SpyScout

	// secondary indices
	fleetsBySystem  map[model.SystemId]map[model.FleetId]struct{}
	coloniesByOwner map[model.HouseId]map[model.ColonyId]struct{}
	fleetsByOwner   map[model.HouseId]map[model.FleetId]struct{}
}

// New builds an empty Container with all indices initialized.
func New() *Container {
	return &Container{
		Houses:    make(map[model.HouseId]*model.House),
		Systems:   make(map[model.SystemId]*model.System),
		Colonies:  make(map[model.ColonyId]*model.Colony),
		Fleets:    make(map[model.FleetId]*model.Fleet),
		Squadrons: make(map[model.SquadronId]*model.Squadron),
		Scouts:    make(map[model.SpyScoutId]*model.SpyScout),

		fleetsBySystem:  make(map[model.SystemId]map[model.FleetId]struct{}),
		coloniesByOwner: make(map[model.HouseId]map[model.ColonyId]struct{}),
		fleetsByOwner:   make(map[model.HouseId]map[model.FleetId]struct{}),
	}
}

// --- Houses -----------------------------------------------------------

func (c *Container) AddHouse(h *model.House) { c.Houses[h.ID] = h }
func (c *Container) GetHouse(id model.HouseId) (*model.House, bool) {
	h, ok := c.Houses[id]
	return h, ok
}

// AllHouseIDsSorted returns every house ID in ascending order, the
// deterministic iteration order spec.md §5 requires for any sub-step
// that iterates over houses.
func (c *Container) AllHouseIDsSorted() []model.HouseId {
	ids := make([]model.HouseId, 0, len(c.Houses))
	for id := range c.Houses {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ActiveHouseIDsSorted is AllHouseIDsSorted filtered to non-eliminated
// houses.
func (c *Container) ActiveHouseIDsSorted() []model.HouseId {
	all := c.AllHouseIDsSorted()
	out := all[:0:0]
	for _, id := range all {
		if h := c.Houses[id]; h != nil && !h.Eliminated {
			out = append(out, id)
		}
	}
	return out
}

// --- Systems ------------------------------------------------------------

func (c *Container) AddSystem(s *model.System) { c.Systems[s.ID] = s }
func (c *Container) GetSystem(id model.SystemId) (*model.System, bool) {
	s, ok := c.Systems[id]
	return s, ok
}

func (c *Container) AllSystemIDsSorted() []model.SystemId {
	ids := make([]model.SystemId, 0, len(c.Systems))
	for id := range c.Systems {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// --- Colonies -----------------------------------------------------------

func (c *Container) AddColony(col *model.Colony) {
	c.Colonies[col.ID] = col
	c.indexColonyOwner(col.ID, col.Owner)
}

func (c *Container) RemoveColony(id model.ColonyId) {
	if col, ok := c.Colonies[id]; ok {
		c.deindexColonyOwner(id, col.Owner)
		delete(c.Colonies, id)
	}
}

func (c *Container) GetColony(id model.ColonyId) (*model.Colony, bool) {
	col, ok := c.Colonies[id]
	return col, ok
}

// TransferColonyOwner reassigns a colony's owner and keeps the
// owner index consistent — used when a colony is seized (spec.md §3
// event "ColonySeized").
func (c *Container) TransferColonyOwner(id model.ColonyId, newOwner model.HouseId) {
	col, ok := c.Colonies[id]
	if !ok {
		return
	}
	c.deindexColonyOwner(id, col.Owner)
	col.Owner = newOwner
	c.indexColonyOwner(id, newOwner)
}

func (c *Container) ColoniesOwnedBy(owner model.HouseId) []model.ColonyId {
	set := c.coloniesByOwner[owner]
	ids := make([]model.ColonyId, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (c *Container) indexColonyOwner(id model.ColonyId, owner model.HouseId) {
	set, ok := c.coloniesByOwner[owner]
	if !ok {
		set = make(map[model.ColonyId]struct{})
		c.coloniesByOwner[owner] = set
	}
	set[id] = struct{}{}
}

func (c *Container) deindexColonyOwner(id model.ColonyId, owner model.HouseId) {
	if set, ok := c.coloniesByOwner[owner]; ok {
		delete(set, id)
		if len(set) == 0 {
			delete(c.coloniesByOwner, owner)
		}
	}
}

// --- Fleets ---------------------------------------------------------------

func (c *Container) AddFleet(f *model.Fleet) {
	c.Fleets[f.ID] = f
	c.indexFleet(f.ID, f.Location, f.Owner)
}

func (c *Container) RemoveFleet(id model.FleetId) {
	if f, ok := c.Fleets[id]; ok {
		c.deindexFleet(id, f.Location, f.Owner)
		delete(c.Fleets, id)
	}
}

func (c *Container) GetFleet(id model.FleetId) (*model.Fleet, bool) {
	f, ok := c.Fleets[id]
	return f, ok
}

// MoveFleet relocates a fleet and keeps the system index consistent.
func (c *Container) MoveFleet(id model.FleetId, newLocation model.SystemId) {
	f, ok := c.Fleets[id]
	if !ok {
		return
	}
	c.deindexFleetSystem(id, f.Location)
	f.Location = newLocation
	c.indexFleetSystem(id, newLocation)
}

func (c *Container) FleetsInSystem(sys model.SystemId) []model.FleetId {
	set := c.fleetsBySystem[sys]
	ids := make([]model.FleetId, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (c *Container) FleetsOwnedBy(owner model.HouseId) []model.FleetId {
	set := c.fleetsByOwner[owner]
	ids := make([]model.FleetId, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (c *Container) indexFleet(id model.FleetId, sys model.SystemId, owner model.HouseId) {
	c.indexFleetSystem(id, sys)
	set, ok := c.fleetsByOwner[owner]
	if !ok {
		set = make(map[model.FleetId]struct{})
		c.fleetsByOwner[owner] = set
	}
	set[id] = struct{}{}
}

func (c *Container) deindexFleet(id model.FleetId, sys model.SystemId, owner model.HouseId) {
	c.deindexFleetSystem(id, sys)
	if set, ok := c.fleetsByOwner[owner]; ok {
		delete(set, id)
		if len(set) == 0 {
			delete(c.fleetsByOwner, owner)
		}
	}
}

func (c *Container) indexFleetSystem(id model.FleetId, sys model.SystemId) {
	set, ok := c.fleetsBySystem[sys]
	if !ok {
		set = make(map[model.FleetId]struct{})
		c.fleetsBySystem[sys] = set
	}
	set[id] = struct{}{}
}

func (c *Container) deindexFleetSystem(id model.FleetId, sys model.SystemId) {
	if set, ok := c.fleetsBySystem[sys]; ok {
		delete(set, id)
		if len(set) == 0 {
			delete(c.fleetsBySystem, sys)
		}
	}
}

// --- Squadrons & scouts (no secondary index: looked up only by ID or
// via their owning Fleet/Colony container) -------------------------------

func (c *Container) AddSquadron(s *model.Squadron) { c.Squadrons[s.ID] = s }
func (c *Container) RemoveSquadron(id model.SquadronId) { delete(c.Squadrons, id) }
func (c *Container) GetSquadron(id model.SquadronId) (*model.Squadron, bool) {
	s, ok := c.Squadrons[id]
	return s, ok
}

func (c *Container) AddScout(s *model.SpyScout) { c.Scouts[s.ID] = s }
func (c *Container) RemoveScout(id model.SpyScoutId) { delete(c.Scouts, id) }
func (c *Container) GetScout(id model.SpyScoutId) (*model.SpyScout, bool) {
	s, ok := c.Scouts[id]
	return s, ok
}

// EntitiesInSystem returns every fleet present plus the colony, if any,
// at the given system — the representative C3 query named in spec.md.
func (c *Container) EntitiesInSystem(sys model.SystemId) (fleets []model.FleetId, colony *model.Colony) {
	fleets = c.FleetsInSystem(sys)
	col, ok := c.Colonies[sys]
	if ok {
		colony = col
	}
	return
}

// Rebuild reconstructs every secondary index from the primary stores.
// Used both by persistence load (R1) and by tests asserting I6.
func (c *Container) Rebuild() {
	c.fleetsBySystem = make(map[model.SystemId]map[model.FleetId]struct{})
	c.coloniesByOwner = make(map[model.HouseId]map[model.ColonyId]struct{})
	c.fleetsByOwner = make(map[model.HouseId]map[model.FleetId]struct{})

	for id, col := range c.Colonies {
		c.indexColonyOwner(id, col.Owner)
	}
	for id, f := range c.Fleets {
		c.indexFleet(id, f.Location, f.Owner)
	}
}

// Package intel implements spec.md C9: the ground-truth-to-per-house
// projection, scout mission lifecycle, intel report kinds, and
// counter-intelligence corruption.
package intel

import (
	"sort"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/greenm01/ec4x/internal/model"
	"github.com/greenm01/ec4x/internal/state"
)

// Visibility tracks, per house, which systems that house currently has
// eyes on — a fleet present, a colony present, or an active scout
// mission there. Backed by a roaring bitmap over a dense system index
// rather than a map[SystemId]bool: visibility recomputes every turn for
// every house, and the set-algebra (own colonies ∪ own fleets ∪ scout
// positions) is exactly roaring's sweet spot.
type Visibility struct {
	indexOf map[model.SystemId]uint32
	idOf    []model.SystemId
	seen    map[model.HouseId]*roaring.Bitmap
}

// NewVisibility assigns a stable dense index to every system in the
// container, in ascending SystemId order so index assignment is
// deterministic across runs.
func NewVisibility(c *state.Container) *Visibility {
	ids := c.AllSystemIDsSorted()
	v := &Visibility{
		indexOf: make(map[model.SystemId]uint32, len(ids)),
		idOf:    make([]model.SystemId, len(ids)),
		seen:    make(map[model.HouseId]*roaring.Bitmap),
	}
	for i, id := range ids {
		v.indexOf[id] = uint32(i)
		v.idOf[i] = id
	}
	return v
}

// Recompute rebuilds every house's visible-system set from current
// fleet/colony/scout positions (spec.md §4.8 "ground truth vs. filtered
// view").
func (v *Visibility) Recompute(c *state.Container) {
	v.seen = make(map[model.HouseId]*roaring.Bitmap)

	for _, hid := range c.AllHouseIDsSorted() {
		v.seen[hid] = roaring.New()
	}

	for _, fid := range allFleetIDs(c) {
		f, ok := c.GetFleet(fid)
		if !ok {
			continue
		}
		v.mark(f.Owner, f.Location)
	}
	for _, hid := range c.AllHouseIDsSorted() {
		for _, cid := range c.ColoniesOwnedBy(hid) {
			col, ok := c.GetColony(cid)
			if ok {
				v.mark(hid, col.ID)
			}
		}
	}
	for _, sid := range allScoutIDs(c) {
		s, ok := c.GetScout(sid)
		if ok && s.State != model.ScoutDetected {
			v.mark(s.Owner, s.Location)
		}
	}
}

func (v *Visibility) mark(house model.HouseId, sys model.SystemId) {
	idx, ok := v.indexOf[sys]
	if !ok {
		return
	}
	bm, ok := v.seen[house]
	if !ok {
		bm = roaring.New()
		v.seen[house] = bm
	}
	bm.Add(idx)
}

// Visible reports whether house currently has eyes on sys.
func (v *Visibility) Visible(house model.HouseId, sys model.SystemId) bool {
	idx, ok := v.indexOf[sys]
	if !ok {
		return false
	}
	bm, ok := v.seen[house]
	if !ok {
		return false
	}
	return bm.Contains(idx)
}

// VisibleSystems returns every system a house currently has eyes on, in
// ascending SystemId order.
func (v *Visibility) VisibleSystems(house model.HouseId) []model.SystemId {
	bm, ok := v.seen[house]
	if !ok {
		return nil
	}
	out := make([]model.SystemId, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		out = append(out, v.idOf[it.Next()])
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func allFleetIDs(c *state.Container) []model.FleetId {
	var out []model.FleetId
	for _, hid := range c.AllHouseIDsSorted() {
		out = append(out, c.FleetsOwnedBy(hid)...)
	}
	return out
}

func allScoutIDs(c *state.Container) []model.SpyScoutId {
	ids := make([]model.SpyScoutId, 0, len(c.Scouts))
	for id := range c.Scouts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

package persistence

import (
	"sort"

	"github.com/greenm01/ec4x/internal/intel"
	"github.com/greenm01/ec4x/internal/model"
)

// Delta is the per-house wire payload spec.md §4.10 calls a "player
// delta": the difference between one house's fog-of-war projection on
// two consecutive turns, diffed against the previous turn's projection
// for that same house. Applying a Delta to the previous projection must
// reproduce the current one exactly (spec.md §8 R3).
type Delta struct {
	Viewer model.HouseId
	Turn   int

	AddedFleets   map[model.FleetId]intel.FleetSighting
	UpdatedFleets map[model.FleetId]intel.FleetSighting
	RemovedFleets []model.FleetId

	AddedColonies   map[model.ColonyId]intel.ColonySighting
	UpdatedColonies map[model.ColonyId]intel.ColonySighting
	RemovedColonies []model.ColonyId
}

// DiffProjection computes the Delta that carries a house from prev to
// curr. prev may be nil, in which case every entry in curr is reported
// as added — the shape a house's very first turn's delta takes.
func DiffProjection(prev, curr *intel.FilteredGameState) *Delta {
	d := &Delta{
		Viewer:          curr.Viewer,
		Turn:            curr.Turn,
		AddedFleets:     make(map[model.FleetId]intel.FleetSighting),
		UpdatedFleets:   make(map[model.FleetId]intel.FleetSighting),
		AddedColonies:   make(map[model.ColonyId]intel.ColonySighting),
		UpdatedColonies: make(map[model.ColonyId]intel.ColonySighting),
	}

	var prevFleets map[model.FleetId]intel.FleetSighting
	var prevColonies map[model.ColonyId]intel.ColonySighting
	if prev != nil {
		prevFleets = prev.Fleets
		prevColonies = prev.Colonies
	}

	for id, sighting := range curr.Fleets {
		old, existed := prevFleets[id]
		if !existed {
			d.AddedFleets[id] = sighting
		} else if old != sighting {
			d.UpdatedFleets[id] = sighting
		}
	}
	for id := range prevFleets {
		if _, stillPresent := curr.Fleets[id]; !stillPresent {
			d.RemovedFleets = append(d.RemovedFleets, id)
		}
	}
	sort.Slice(d.RemovedFleets, func(i, j int) bool { return d.RemovedFleets[i] < d.RemovedFleets[j] })

	for id, sighting := range curr.Colonies {
		old, existed := prevColonies[id]
		if !existed {
			d.AddedColonies[id] = sighting
		} else if old != sighting {
			d.UpdatedColonies[id] = sighting
		}
	}
	for id := range prevColonies {
		if _, stillPresent := curr.Colonies[id]; !stillPresent {
			d.RemovedColonies = append(d.RemovedColonies, id)
		}
	}
	sort.Slice(d.RemovedColonies, func(i, j int) bool { return d.RemovedColonies[i] < d.RemovedColonies[j] })

	return d
}

// ApplyDelta reproduces curr from prev and a Delta previously computed
// by DiffProjection(prev, curr). prev may be nil for a house's first
// turn. The receiver never mutates prev.
func ApplyDelta(prev *intel.FilteredGameState, d *Delta) *intel.FilteredGameState {
	out := &intel.FilteredGameState{
		Viewer:   d.Viewer,
		Turn:     d.Turn,
		Fleets:   make(map[model.FleetId]intel.FleetSighting),
		Colonies: make(map[model.ColonyId]intel.ColonySighting),
	}

	if prev != nil {
		for id, s := range prev.Fleets {
			out.Fleets[id] = s
		}
		for id, s := range prev.Colonies {
			out.Colonies[id] = s
		}
	}

	for _, id := range d.RemovedFleets {
		delete(out.Fleets, id)
	}
	for id, s := range d.AddedFleets {
		out.Fleets[id] = s
	}
	for id, s := range d.UpdatedFleets {
		out.Fleets[id] = s
	}

	for _, id := range d.RemovedColonies {
		delete(out.Colonies, id)
	}
	for id, s := range d.AddedColonies {
		out.Colonies[id] = s
	}
	for id, s := range d.UpdatedColonies {
		out.Colonies[id] = s
	}

	return out
}

// EncodeDelta serializes a Delta to the same deterministic binary
// format EncodeSnapshot uses, sorting every map-derived collection
// before writing it.
func EncodeDelta(d *Delta) []byte {
	w := newWriter()
	w.u8(SnapshotVersion)
	w.str(string(d.Viewer))
	w.i32(int32(d.Turn))

	writeFleetSightings(w, d.AddedFleets)
	writeFleetSightings(w, d.UpdatedFleets)
	w.strSlice(idSliceAsStrings(d.RemovedFleets))

	writeColonySightings(w, d.AddedColonies)
	writeColonySightings(w, d.UpdatedColonies)
	w.strSlice(idSliceAsStrings(d.RemovedColonies))

	return w.Bytes()
}

// DecodeDelta reverses EncodeDelta.
func DecodeDelta(raw []byte) (*Delta, error) {
	r := newReader(raw)
	if _, err := r.u8(); err != nil {
		return nil, err
	}
	viewer, err := r.str()
	if err != nil {
		return nil, err
	}
	turn, err := r.i32()
	if err != nil {
		return nil, err
	}

	d := &Delta{
		Viewer:          model.HouseId(viewer),
		Turn:            int(turn),
		AddedFleets:     make(map[model.FleetId]intel.FleetSighting),
		UpdatedFleets:   make(map[model.FleetId]intel.FleetSighting),
		AddedColonies:   make(map[model.ColonyId]intel.ColonySighting),
		UpdatedColonies: make(map[model.ColonyId]intel.ColonySighting),
	}

	if d.AddedFleets, err = readFleetSightings(r); err != nil {
		return nil, err
	}
	if d.UpdatedFleets, err = readFleetSightings(r); err != nil {
		return nil, err
	}
	removedFleets, err := r.strSlice()
	if err != nil {
		return nil, err
	}
	d.RemovedFleets = fleetIDsFromStrings(removedFleets)

	if d.AddedColonies, err = readColonySightings(r); err != nil {
		return nil, err
	}
	if d.UpdatedColonies, err = readColonySightings(r); err != nil {
		return nil, err
	}
	removedColonies, err := r.strSlice()
	if err != nil {
		return nil, err
	}
	d.RemovedColonies = colonyIDsFromStrings(removedColonies)

	return d, nil
}

func writeFleetSightings(w *writer, m map[model.FleetId]intel.FleetSighting) {
	ids := make([]model.FleetId, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	w.i32(int32(len(ids)))
	for _, id := range ids {
		s := m[id]
		w.str(string(s.ID))
		w.str(string(s.Owner))
		w.str(string(s.Location))
		w.i32(int32(s.SquadronCount))
	}
}

func readFleetSightings(r *reader) (map[model.FleetId]intel.FleetSighting, error) {
	n, err := r.i32()
	if err != nil {
		return nil, err
	}
	out := make(map[model.FleetId]intel.FleetSighting, n)
	for i := int32(0); i < n; i++ {
		id, err := r.str()
		if err != nil {
			return nil, err
		}
		owner, err := r.str()
		if err != nil {
			return nil, err
		}
		loc, err := r.str()
		if err != nil {
			return nil, err
		}
		count, err := readInt(r)
		if err != nil {
			return nil, err
		}
		out[model.FleetId(id)] = intel.FleetSighting{
			ID: model.FleetId(id), Owner: model.HouseId(owner), Location: model.SystemId(loc), SquadronCount: count,
		}
	}
	return out, nil
}

func writeColonySightings(w *writer, m map[model.ColonyId]intel.ColonySighting) {
	ids := make([]model.ColonyId, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	w.i32(int32(len(ids)))
	for _, id := range ids {
		s := m[id]
		w.str(string(s.ID))
		w.str(string(s.Owner))
		w.bool(s.Known)
	}
}

func readColonySightings(r *reader) (map[model.ColonyId]intel.ColonySighting, error) {
	n, err := r.i32()
	if err != nil {
		return nil, err
	}
	out := make(map[model.ColonyId]intel.ColonySighting, n)
	for i := int32(0); i < n; i++ {
		id, err := r.str()
		if err != nil {
			return nil, err
		}
		owner, err := r.str()
		if err != nil {
			return nil, err
		}
		known, err := r.bool()
		if err != nil {
			return nil, err
		}
		out[model.ColonyId(id)] = intel.ColonySighting{ID: model.ColonyId(id), Owner: model.HouseId(owner), Known: known}
	}
	return out, nil
}

func fleetIDsFromStrings(ss []string) []model.FleetId {
	out := make([]model.FleetId, len(ss))
	for i, s := range ss {
		out[i] = model.FleetId(s)
	}
	return out
}

func colonyIDsFromStrings(ss []string) []model.ColonyId {
	out := make([]model.ColonyId, len(ss))
	for i, s := range ss {
		out[i] = model.ColonyId(s)
	}
	return out
}

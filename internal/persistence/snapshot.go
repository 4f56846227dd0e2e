// Package persistence implements spec.md C11: the deterministic binary
// Snapshot format (R1 bitwise round-trip), per-house delta diffing
// against a prior projection (R3), and the storage/compression/signing
// pipeline those two payloads travel through before they reach a game's
// keyed store.
package persistence

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/greenm01/ec4x/internal/config"
	"github.com/greenm01/ec4x/internal/model"
	"github.com/greenm01/ec4x/internal/state"
)

// SnapshotVersion is the format tag written as the first byte of every
// snapshot; bump it whenever a field is added, removed, or reordered so
// an old snapshot is never silently misparsed (spec.md §4.10
// "deterministic, versioned binary format").
const SnapshotVersion uint8 = 1

// EncodeSnapshot serializes the full authoritative state to the
// versioned binary format. Every collection is written in ascending-ID
// order (the same determinism discipline internal/state's iteration
// helpers use) so two encodes of an unchanged container always produce
// identical bytes.
func EncodeSnapshot(c *state.Container) []byte {
	w := newWriter()
	w.u8(SnapshotVersion)
	w.i32(int32(c.Turn))
	w.str(c.Phase)

	houses := c.AllHouseIDsSorted()
	w.i32(int32(len(houses)))
	for _, id := range houses {
		h, _ := c.GetHouse(id)
		writeHouse(w, h)
	}

	systems := c.AllSystemIDsSorted()
	w.i32(int32(len(systems)))
	for _, id := range systems {
		s, _ := c.GetSystem(id)
		writeSystem(w, s)
	}

	w.i32(int32(len(systems)))
	for _, id := range systems {
		if col, ok := c.GetColony(id); ok {
			w.bool(true)
			writeColony(w, col)
		} else {
			w.bool(false)
		}
	}

	var fleetIDs []model.FleetId
	for id := range c.Fleets {
		fleetIDs = append(fleetIDs, id)
	}
	sort.Slice(fleetIDs, func(i, j int) bool { return fleetIDs[i] < fleetIDs[j] })
	w.i32(int32(len(fleetIDs)))
	for _, id := range fleetIDs {
		f, _ := c.GetFleet(id)
		writeFleet(w, f)
	}

	var squadronIDs []model.SquadronId
	for id := range c.Squadrons {
		squadronIDs = append(squadronIDs, id)
	}
	sort.Slice(squadronIDs, func(i, j int) bool { return squadronIDs[i] < squadronIDs[j] })
	w.i32(int32(len(squadronIDs)))
	for _, id := range squadronIDs {
		sq, _ := c.GetSquadron(id)
		writeSquadron(w, sq)
	}

	var scoutIDs []model.SpyScoutId
	for id := range c.Scouts {
		scoutIDs = append(scoutIDs, id)
	}
	sort.Slice(scoutIDs, func(i, j int) bool { return scoutIDs[i] < scoutIDs[j] })
	w.i32(int32(len(scoutIDs)))
	for _, id := range scoutIDs {
		s, _ := c.GetScout(id)
		writeScout(w, s)
	}

	return w.Bytes()
}

// DecodeSnapshot reverses EncodeSnapshot into a freshly built Container
// with all secondary indices rebuilt.
func DecodeSnapshot(raw []byte) (*state.Container, error) {
	r := newReader(raw)
	version, err := r.u8()
	if err != nil {
		return nil, fmt.Errorf("persistence: reading version: %w", err)
	}
	if version != SnapshotVersion {
		return nil, fmt.Errorf("persistence: unsupported snapshot version %d (want %d)", version, SnapshotVersion)
	}

	c := state.New()

	turn, err := r.i32()
	if err != nil {
		return nil, err
	}
	c.Turn = int(turn)

	phase, err := r.str()
	if err != nil {
		return nil, err
	}
	c.Phase = phase

	nHouses, err := r.i32()
	if err != nil {
		return nil, err
	}
	for i := int32(0); i < nHouses; i++ {
		h, err := readHouse(r)
		if err != nil {
			return nil, fmt.Errorf("persistence: house %d: %w", i, err)
		}
		c.AddHouse(h)
	}

	nSystems, err := r.i32()
	if err != nil {
		return nil, err
	}
	for i := int32(0); i < nSystems; i++ {
		s, err := readSystem(r)
		if err != nil {
			return nil, fmt.Errorf("persistence: system %d: %w", i, err)
		}
		c.AddSystem(s)
	}

	nColonySlots, err := r.i32()
	if err != nil {
		return nil, err
	}
	for i := int32(0); i < nColonySlots; i++ {
		present, err := r.bool()
		if err != nil {
			return nil, err
		}
		if !present {
			continue
		}
		col, err := readColony(r)
		if err != nil {
			return nil, fmt.Errorf("persistence: colony %d: %w", i, err)
		}
		c.AddColony(col)
	}

	nFleets, err := r.i32()
	if err != nil {
		return nil, err
	}
	for i := int32(0); i < nFleets; i++ {
		f, err := readFleet(r)
		if err != nil {
			return nil, fmt.Errorf("persistence: fleet %d: %w", i, err)
		}
		c.AddFleet(f)
	}

	nSquadrons, err := r.i32()
	if err != nil {
		return nil, err
	}
	for i := int32(0); i < nSquadrons; i++ {
		sq, err := readSquadron(r)
		if err != nil {
			return nil, fmt.Errorf("persistence: squadron %d: %w", i, err)
		}
		c.AddSquadron(sq)
	}

	nScouts, err := r.i32()
	if err != nil {
		return nil, err
	}
	for i := int32(0); i < nScouts; i++ {
		s, err := readScout(r)
		if err != nil {
			return nil, fmt.Errorf("persistence: scout %d: %w", i, err)
		}
		c.AddScout(s)
	}

	c.Rebuild()
	return c, nil
}

func writeHouse(w *writer, h *model.House) {
	w.str(string(h.ID))
	w.str(h.Name)
	w.str(h.Color)
	w.i32(int32(h.Treasury))
	w.i32(int32(h.Prestige))
	w.i32(int32(h.ConsecutiveNegativePrestigeTurns))
	w.i32(int32(h.TaxRate))
	w.i32(int32(h.TaxHistory.Cap()))
	w.strSlice(taxHistoryRatesAsStrings(h.TaxHistory))

	fields := sortedTechFields(h.TechLevels)
	w.i32(int32(len(fields)))
	for _, f := range fields {
		w.str(string(f))
		w.i32(int32(h.TechLevels[f]))
		w.i32(int32(h.ResearchRP[f]))
	}

	w.i32(int32(h.Espionage.EBP))
	w.i32(int32(h.Espionage.CIP))

	var targets []model.HouseId
	for t := range h.Diplomacy {
		targets = append(targets, t)
	}
	sort.Slice(targets, func(i, j int) bool { return targets[i] < targets[j] })
	w.i32(int32(len(targets)))
	for _, t := range targets {
		rel := h.Diplomacy[t]
		w.str(string(t))
		w.i32(int32(rel.State))
		w.i32(int32(rel.DishonorCountdown))
		w.i32(int32(rel.IsolationCountdown))
		w.i32(int32(rel.PactViolations))
		if rel.PendingProposal != nil {
			w.bool(true)
			w.i32(int32(rel.PendingProposal.Kind))
			w.i32(int32(rel.PendingProposal.ProposedTurn))
			w.i32(int32(rel.PendingProposal.ExpiresTurn))
		} else {
			w.bool(false)
		}
	}

	w.i32(int32(len(h.Intel.Reports)))
	for _, rep := range h.Intel.Reports {
		payload, _ := json.Marshal(rep.Payload)
		w.i32(int32(rep.Kind))
		w.str(string(rep.Subject))
		w.i32(int32(rep.GatheredTurn))
		w.i32(int32(rep.Quality))
		w.str(string(payload))
	}

	w.bool(h.Eliminated)
	w.i32(int32(h.Status))

	kinds := sortedStringKeys(h.CapacityViolations)
	w.i32(int32(len(kinds)))
	for _, k := range kinds {
		v := h.CapacityViolations[k]
		w.str(k)
		w.bool(v.Active)
		w.i32(int32(v.TurnsRemaining))
		w.i32(int32(v.ViolationTurn))
	}

	w.i32(int32(len(h.OngoingEffects)))
	for _, e := range h.OngoingEffects {
		w.str(e.Kind)
		w.f64(e.Magnitude)
		w.i32(int32(e.TurnsRemaining))
	}
}

func readHouse(r *reader) (*model.House, error) {
	h := &model.House{
		TechLevels:         make(map[config.TechField]int),
		ResearchRP:         make(map[config.TechField]int),
		Diplomacy:          make(map[model.HouseId]*model.DiplomaticRelation),
		CapacityViolations: make(map[string]*model.CapacityViolation),
	}

	id, err := r.str()
	if err != nil {
		return nil, err
	}
	h.ID = model.HouseId(id)

	if h.Name, err = r.str(); err != nil {
		return nil, err
	}
	if h.Color, err = r.str(); err != nil {
		return nil, err
	}
	if h.Treasury, err = readInt(r); err != nil {
		return nil, err
	}
	if h.Prestige, err = readInt(r); err != nil {
		return nil, err
	}
	if h.ConsecutiveNegativePrestigeTurns, err = readInt(r); err != nil {
		return nil, err
	}
	if h.TaxRate, err = readInt(r); err != nil {
		return nil, err
	}

	taxHistoryCap, err := readInt(r)
	if err != nil {
		return nil, err
	}
	rates, err := r.strSlice()
	if err != nil {
		return nil, err
	}
	h.TaxHistory = model.NewTaxHistory(taxHistoryCap)
	for _, rs := range rates {
		var rate int
		fmt.Sscanf(rs, "%d", &rate)
		h.TaxHistory.Push(rate)
	}

	nFields, err := r.i32()
	if err != nil {
		return nil, err
	}
	for i := int32(0); i < nFields; i++ {
		name, err := r.str()
		if err != nil {
			return nil, err
		}
		level, err := readInt(r)
		if err != nil {
			return nil, err
		}
		rp, err := readInt(r)
		if err != nil {
			return nil, err
		}
		h.TechLevels[config.TechField(name)] = level
		h.ResearchRP[config.TechField(name)] = rp
	}

	if h.Espionage.EBP, err = readInt(r); err != nil {
		return nil, err
	}
	if h.Espionage.CIP, err = readInt(r); err != nil {
		return nil, err
	}

	nRel, err := r.i32()
	if err != nil {
		return nil, err
	}
	for i := int32(0); i < nRel; i++ {
		target, err := r.str()
		if err != nil {
			return nil, err
		}
		rel := &model.DiplomaticRelation{From: h.ID, To: model.HouseId(target)}
		state32, err := r.i32()
		if err != nil {
			return nil, err
		}
		rel.State = model.DiplomaticState(state32)
		if rel.DishonorCountdown, err = readInt(r); err != nil {
			return nil, err
		}
		if rel.IsolationCountdown, err = readInt(r); err != nil {
			return nil, err
		}
		if rel.PactViolations, err = readInt(r); err != nil {
			return nil, err
		}
		hasProposal, err := r.bool()
		if err != nil {
			return nil, err
		}
		if hasProposal {
			kind, err := r.i32()
			if err != nil {
				return nil, err
			}
			proposed, err := readInt(r)
			if err != nil {
				return nil, err
			}
			expires, err := readInt(r)
			if err != nil {
				return nil, err
			}
			rel.PendingProposal = &model.DiplomaticProposal{
				Kind: model.DiplomaticProposalKind(kind), ProposedTurn: proposed, ExpiresTurn: expires,
			}
		}
		h.Diplomacy[model.HouseId(target)] = rel
	}

	nReports, err := r.i32()
	if err != nil {
		return nil, err
	}
	for i := int32(0); i < nReports; i++ {
		kind, err := r.i32()
		if err != nil {
			return nil, err
		}
		subject, err := r.str()
		if err != nil {
			return nil, err
		}
		gathered, err := readInt(r)
		if err != nil {
			return nil, err
		}
		quality, err := r.i32()
		if err != nil {
			return nil, err
		}
		rawPayload, err := r.str()
		if err != nil {
			return nil, err
		}
		var payload map[string]any
		if len(rawPayload) > 0 {
			if err := json.Unmarshal([]byte(rawPayload), &payload); err != nil {
				return nil, err
			}
		}
		h.Intel.Add(model.IntelReport{
			Kind: model.ReportKind(kind), Subject: model.SystemId(subject),
			GatheredTurn: gathered, Quality: model.IntelQuality(quality), Payload: payload,
		})
	}

	if h.Eliminated, err = r.bool(); err != nil {
		return nil, err
	}
	status, err := r.i32()
	if err != nil {
		return nil, err
	}
	h.Status = model.HouseStatus(status)

	nCaps, err := r.i32()
	if err != nil {
		return nil, err
	}
	for i := int32(0); i < nCaps; i++ {
		k, err := r.str()
		if err != nil {
			return nil, err
		}
		active, err := r.bool()
		if err != nil {
			return nil, err
		}
		remaining, err := readInt(r)
		if err != nil {
			return nil, err
		}
		violationTurn, err := readInt(r)
		if err != nil {
			return nil, err
		}
		h.CapacityViolations[k] = &model.CapacityViolation{Active: active, TurnsRemaining: remaining, ViolationTurn: violationTurn}
	}

	nEffects, err := r.i32()
	if err != nil {
		return nil, err
	}
	for i := int32(0); i < nEffects; i++ {
		kind, err := r.str()
		if err != nil {
			return nil, err
		}
		mag, err := r.f64()
		if err != nil {
			return nil, err
		}
		remaining, err := readInt(r)
		if err != nil {
			return nil, err
		}
		h.OngoingEffects = append(h.OngoingEffects, model.OngoingEffect{Kind: kind, Magnitude: mag, TurnsRemaining: remaining})
	}

	return h, nil
}

func writeSystem(w *writer, s *model.System) {
	w.str(string(s.ID))
	w.i32(int32(s.Coord.Q))
	w.i32(int32(s.Coord.R))
	w.str(string(s.Class))
	w.str(string(s.Resource))
	w.i32(int32(len(s.Lanes)))
	for _, l := range s.Lanes {
		w.str(string(l.To))
		w.i32(int32(l.Type))
	}
}

func readSystem(r *reader) (*model.System, error) {
	id, err := r.str()
	if err != nil {
		return nil, err
	}
	q, err := readInt(r)
	if err != nil {
		return nil, err
	}
	rr, err := readInt(r)
	if err != nil {
		return nil, err
	}
	class, err := r.str()
	if err != nil {
		return nil, err
	}
	resource, err := r.str()
	if err != nil {
		return nil, err
	}
	nLanes, err := r.i32()
	if err != nil {
		return nil, err
	}
	lanes := make([]model.JumpLane, 0, nLanes)
	for i := int32(0); i < nLanes; i++ {
		to, err := r.str()
		if err != nil {
			return nil, err
		}
		laneType, err := r.i32()
		if err != nil {
			return nil, err
		}
		lanes = append(lanes, model.JumpLane{To: model.SystemId(to), Type: model.JumpLaneType(laneType)})
	}
	return &model.System{
		ID: model.SystemId(id), Coord: model.HexCoord{Q: q, R: rr},
		Class: config.PlanetClass(class), Resource: config.RawResourceRating(resource), Lanes: lanes,
	}, nil
}

func writeColony(w *writer, col *model.Colony) {
	w.str(string(col.ID))
	w.str(string(col.Owner))
	w.i32(int32(col.PopulationUnits))
	w.f64(col.Souls)
	w.i32(int32(col.Infrastructure))
	w.i32(int32(col.IndustrialUnits))
	w.i32(int32(col.GroundForces))
	w.str(col.ShieldLevel)
	if col.TaxRateOverride != nil {
		w.bool(true)
		w.i32(int32(*col.TaxRateOverride))
	} else {
		w.bool(false)
	}
	w.bool(col.Blockaded)
	w.strSlice(idSliceAsStrings(col.FighterSquadrons))
	w.strSlice(idSliceAsStrings(col.UnassignedSquadrons))

	w.i32(int32(len(col.Starbases)))
	for _, sb := range col.Starbases {
		w.str(string(sb.ID))
		w.i32(int32(sb.TechLevel))
		w.bool(sb.Crippled)
	}
	w.strSlice(idSliceAsStrings(col.Spaceports))
	w.strSlice(idSliceAsStrings(col.Shipyards))

	if col.ActiveConstruction != nil {
		w.bool(true)
		writeConstruction(w, col.ActiveConstruction)
	} else {
		w.bool(false)
	}
	w.i32(int32(len(col.PendingQueue)))
	for _, p := range col.PendingQueue {
		writeConstruction(w, p)
	}

	if col.ActiveTerraform != nil {
		w.bool(true)
		w.str(col.ActiveTerraform.TargetClass)
		w.i32(int32(col.ActiveTerraform.TurnsRemaining))
	} else {
		w.bool(false)
	}

	kinds := sortedStringKeys(col.CapacityViolations)
	w.i32(int32(len(kinds)))
	for _, k := range kinds {
		v := col.CapacityViolations[k]
		w.str(k)
		w.bool(v.Active)
		w.i32(int32(v.TurnsRemaining))
		w.i32(int32(v.ViolationTurn))
	}
}

func writeConstruction(w *writer, p *model.ConstructionProject) {
	w.str(string(p.ID))
	w.i32(int32(p.Kind))
	w.str(p.Item)
	w.i32(int32(p.TotalPP))
	w.i32(int32(p.InvestedPP))
	w.i32(int32(p.TurnsRemaining))
}

func readConstruction(r *reader) (*model.ConstructionProject, error) {
	id, err := r.str()
	if err != nil {
		return nil, err
	}
	kind, err := r.i32()
	if err != nil {
		return nil, err
	}
	item, err := r.str()
	if err != nil {
		return nil, err
	}
	total, err := readInt(r)
	if err != nil {
		return nil, err
	}
	invested, err := readInt(r)
	if err != nil {
		return nil, err
	}
	remaining, err := readInt(r)
	if err != nil {
		return nil, err
	}
	return &model.ConstructionProject{
		ID: model.ConstructionProjectId(id), Kind: model.ConstructionKind(kind), Item: item,
		TotalPP: total, InvestedPP: invested, TurnsRemaining: remaining,
	}, nil
}

func readColony(r *reader) (*model.Colony, error) {
	id, err := r.str()
	if err != nil {
		return nil, err
	}
	owner, err := r.str()
	if err != nil {
		return nil, err
	}
	pu, err := readInt(r)
	if err != nil {
		return nil, err
	}
	souls, err := r.f64()
	if err != nil {
		return nil, err
	}
	infra, err := readInt(r)
	if err != nil {
		return nil, err
	}
	iu, err := readInt(r)
	if err != nil {
		return nil, err
	}
	gf, err := readInt(r)
	if err != nil {
		return nil, err
	}
	shield, err := r.str()
	if err != nil {
		return nil, err
	}

	col := &model.Colony{
		ID: model.ColonyId(id), Owner: model.HouseId(owner), PopulationUnits: pu, Souls: souls,
		Infrastructure: infra, IndustrialUnits: iu, GroundForces: gf, ShieldLevel: shield,
		CapacityViolations: make(map[string]*model.CapacityViolation),
	}

	hasOverride, err := r.bool()
	if err != nil {
		return nil, err
	}
	if hasOverride {
		v, err := readInt(r)
		if err != nil {
			return nil, err
		}
		col.TaxRateOverride = &v
	}

	if col.Blockaded, err = r.bool(); err != nil {
		return nil, err
	}

	fighters, err := r.strSlice()
	if err != nil {
		return nil, err
	}
	col.FighterSquadrons = squadronIDsFromStrings(fighters)

	unassigned, err := r.strSlice()
	if err != nil {
		return nil, err
	}
	col.UnassignedSquadrons = squadronIDsFromStrings(unassigned)

	nSB, err := r.i32()
	if err != nil {
		return nil, err
	}
	for i := int32(0); i < nSB; i++ {
		sbID, err := r.str()
		if err != nil {
			return nil, err
		}
		tl, err := readInt(r)
		if err != nil {
			return nil, err
		}
		crippled, err := r.bool()
		if err != nil {
			return nil, err
		}
		col.Starbases = append(col.Starbases, model.Starbase{ID: model.FacilityId(sbID), TechLevel: tl, Crippled: crippled})
	}

	spaceports, err := r.strSlice()
	if err != nil {
		return nil, err
	}
	col.Spaceports = facilityIDsFromStrings(spaceports)

	shipyards, err := r.strSlice()
	if err != nil {
		return nil, err
	}
	col.Shipyards = facilityIDsFromStrings(shipyards)

	hasActive, err := r.bool()
	if err != nil {
		return nil, err
	}
	if hasActive {
		col.ActiveConstruction, err = readConstruction(r)
		if err != nil {
			return nil, err
		}
	}

	nPending, err := r.i32()
	if err != nil {
		return nil, err
	}
	for i := int32(0); i < nPending; i++ {
		p, err := readConstruction(r)
		if err != nil {
			return nil, err
		}
		col.PendingQueue = append(col.PendingQueue, p)
	}

	hasTerraform, err := r.bool()
	if err != nil {
		return nil, err
	}
	if hasTerraform {
		target, err := r.str()
		if err != nil {
			return nil, err
		}
		remaining, err := readInt(r)
		if err != nil {
			return nil, err
		}
		col.ActiveTerraform = &model.TerraformProject{TargetClass: target, TurnsRemaining: remaining}
	}

	nCaps, err := r.i32()
	if err != nil {
		return nil, err
	}
	for i := int32(0); i < nCaps; i++ {
		k, err := r.str()
		if err != nil {
			return nil, err
		}
		active, err := r.bool()
		if err != nil {
			return nil, err
		}
		remaining, err := readInt(r)
		if err != nil {
			return nil, err
		}
		violationTurn, err := readInt(r)
		if err != nil {
			return nil, err
		}
		col.CapacityViolations[k] = &model.CapacityViolation{Active: active, TurnsRemaining: remaining, ViolationTurn: violationTurn}
	}

	return col, nil
}

func writeFleet(w *writer, f *model.Fleet) {
	w.str(string(f.ID))
	w.str(string(f.Owner))
	w.str(string(f.Location))
	w.strSlice(idSliceAsStrings(f.Squadrons))
	w.i32(int32(f.Mission))

	if f.CurrentCommand != nil {
		w.bool(true)
		cmd := f.CurrentCommand
		w.i32(int32(cmd.Kind))
		w.str(string(cmd.TargetSystem))
		w.str(string(cmd.TargetFleet))
		w.i32(int32(cmd.Priority))
		w.i32(int32(cmd.IssuedTurn))
		w.i32(int32(cmd.Threat))
	} else {
		w.bool(false)
	}

	if f.StandingOrder != nil {
		w.bool(true)
		so := f.StandingOrder
		w.i32(int32(so.Kind))
		w.strSlice(idSliceAsStrings(so.Route))
		w.str(string(so.Target))
		w.i32(int32(so.Cursor))
	} else {
		w.bool(false)
	}

	w.strSlice(idSliceAsStrings(f.Path))
	w.i32(int32(f.PathIndex))
}

func readFleet(r *reader) (*model.Fleet, error) {
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
	squadrons, err := r.strSlice()
	if err != nil {
		return nil, err
	}
	mission, err := r.i32()
	if err != nil {
		return nil, err
	}

	f := &model.Fleet{
		ID: model.FleetId(id), Owner: model.HouseId(owner), Location: model.SystemId(loc),
		Squadrons: squadronIDsFromStrings(squadrons), Mission: model.MissionState(mission),
	}

	hasCmd, err := r.bool()
	if err != nil {
		return nil, err
	}
	if hasCmd {
		kind, err := r.i32()
		if err != nil {
			return nil, err
		}
		target, err := r.str()
		if err != nil {
			return nil, err
		}
		targetFleet, err := r.str()
		if err != nil {
			return nil, err
		}
		priority, err := readInt(r)
		if err != nil {
			return nil, err
		}
		issued, err := readInt(r)
		if err != nil {
			return nil, err
		}
		threat, err := r.i32()
		if err != nil {
			return nil, err
		}
		f.CurrentCommand = &model.FleetCommand{
			Kind: model.FleetCommandKind(kind), TargetSystem: model.SystemId(target),
			TargetFleet: model.FleetId(targetFleet), Priority: priority, IssuedTurn: issued,
			Threat: model.ThreatLevel(threat),
		}
	}

	hasStanding, err := r.bool()
	if err != nil {
		return nil, err
	}
	if hasStanding {
		kind, err := r.i32()
		if err != nil {
			return nil, err
		}
		route, err := r.strSlice()
		if err != nil {
			return nil, err
		}
		target, err := r.str()
		if err != nil {
			return nil, err
		}
		cursor, err := readInt(r)
		if err != nil {
			return nil, err
		}
		f.StandingOrder = &model.StandingOrder{
			Kind: model.StandingOrderKind(kind), Route: systemIDsFromStrings(route),
			Target: model.SystemId(target), Cursor: cursor,
		}
	}

	path, err := r.strSlice()
	if err != nil {
		return nil, err
	}
	f.Path = systemIDsFromStrings(path)

	if f.PathIndex, err = readInt(r); err != nil {
		return nil, err
	}

	return f, nil
}

func writeSquadron(w *writer, sq *model.Squadron) {
	w.str(string(sq.ID))
	w.str(string(sq.Flagship))
	w.i32(int32(sq.TechLevel))
	w.str(string(sq.Owner))
	w.str(string(sq.Location))
	w.i32(int32(sq.State))
	w.strSlice(idSliceAsStrings(sq.EmbarkedFighters))
	w.i32(int32(sq.Cargo.Marines))
	w.i32(int32(sq.Cargo.Colonists))
	w.i32(int32(sq.Cargo.PTU))
	w.i32(int32(sq.BaseAttackStrength))
	w.i32(int32(sq.BaseDefenseStrength))
}

func readSquadron(r *reader) (*model.Squadron, error) {
	id, err := r.str()
	if err != nil {
		return nil, err
	}
	flagship, err := r.str()
	if err != nil {
		return nil, err
	}
	tech, err := readInt(r)
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
	combatState, err := r.i32()
	if err != nil {
		return nil, err
	}
	embarked, err := r.strSlice()
	if err != nil {
		return nil, err
	}
	marines, err := readInt(r)
	if err != nil {
		return nil, err
	}
	colonists, err := readInt(r)
	if err != nil {
		return nil, err
	}
	ptu, err := readInt(r)
	if err != nil {
		return nil, err
	}
	as, err := readInt(r)
	if err != nil {
		return nil, err
	}
	ds, err := readInt(r)
	if err != nil {
		return nil, err
	}

	return &model.Squadron{
		ID: model.SquadronId(id), Flagship: model.ShipClass(flagship), TechLevel: tech,
		Owner: model.HouseId(owner), Location: model.SystemId(loc), State: model.CombatState(combatState),
		EmbarkedFighters: squadronIDsFromStrings(embarked), Cargo: model.Cargo{Marines: marines, Colonists: colonists, PTU: ptu},
		BaseAttackStrength: as, BaseDefenseStrength: ds,
	}, nil
}

func writeScout(w *writer, s *model.SpyScout) {
	w.str(string(s.ID))
	w.str(string(s.Owner))
	w.i32(int32(s.Mission))
	w.str(string(s.Location))
	w.strSlice(idSliceAsStrings(s.Path))
	w.i32(int32(s.PathIndex))
	w.i32(int32(s.MeshCount))
	w.i32(int32(s.TechLevel))
	w.i32(int32(s.State))
}

func readScout(r *reader) (*model.SpyScout, error) {
	id, err := r.str()
	if err != nil {
		return nil, err
	}
	owner, err := r.str()
	if err != nil {
		return nil, err
	}
	mission, err := r.i32()
	if err != nil {
		return nil, err
	}
	loc, err := r.str()
	if err != nil {
		return nil, err
	}
	path, err := r.strSlice()
	if err != nil {
		return nil, err
	}
	pathIndex, err := readInt(r)
	if err != nil {
		return nil, err
	}
	mesh, err := readInt(r)
	if err != nil {
		return nil, err
	}
	tech, err := readInt(r)
	if err != nil {
		return nil, err
	}
	scoutState, err := r.i32()
	if err != nil {
		return nil, err
	}

	return &model.SpyScout{
		ID: model.SpyScoutId(id), Owner: model.HouseId(owner), Mission: model.ScoutMissionKind(mission),
		Location: model.SystemId(loc), Path: systemIDsFromStrings(path), PathIndex: pathIndex,
		MeshCount: mesh, TechLevel: tech, State: model.ScoutState(scoutState),
	}, nil
}

// --- small conversion helpers, kept here rather than in binary.go since
// they know about model's typed-string IDs -----------------------------

func readInt(r *reader) (int, error) {
	v, err := r.i32()
	return int(v), err
}

func idSliceAsStrings[T ~string](ids []T) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

func squadronIDsFromStrings(ss []string) []model.SquadronId {
	out := make([]model.SquadronId, len(ss))
	for i, s := range ss {
		out[i] = model.SquadronId(s)
	}
	return out
}

func systemIDsFromStrings(ss []string) []model.SystemId {
	out := make([]model.SystemId, len(ss))
	for i, s := range ss {
		out[i] = model.SystemId(s)
	}
	return out
}

func facilityIDsFromStrings(ss []string) []model.FacilityId {
	out := make([]model.FacilityId, len(ss))
	for i, s := range ss {
		out[i] = model.FacilityId(s)
	}
	return out
}

func sortedTechFields(m map[config.TechField]int) []config.TechField {
	out := make([]config.TechField, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sortedStringKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func taxHistoryRatesAsStrings(h model.TaxHistory) []string {
	rates := h.Rates()
	out := make([]string, len(rates))
	for i, r := range rates {
		out[i] = fmt.Sprintf("%d", r)
	}
	return out
}

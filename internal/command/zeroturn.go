package command

import (
	"github.com/greenm01/ec4x/internal/ec4xerr"
	"github.com/greenm01/ec4x/internal/model"
	"github.com/greenm01/ec4x/internal/state"
)

// ZeroTurnKind enumerates the administrative actions of spec.md §4.4
// that execute immediately on submission and never consume a turn.
type ZeroTurnKind int

const (
	ZTReorganizeFleet ZeroTurnKind = iota
	ZTLoadCargo
	ZTUnloadCargo
	ZTFormSquadron
	ZTSplitFleet
	ZTMergeFleet
	ZTTransferFleet
	ZTColonySettings
)

// ZeroTurnCommand is the input to SubmitZeroTurn (spec.md §6
// "submit_zero_turn").
type ZeroTurnCommand struct {
	House    model.HouseId
	Kind     ZeroTurnKind
	FleetID  model.FleetId
	OtherFleetID model.FleetId
	Colony   model.ColonyId
	Squadron model.SquadronId
	Squadrons []model.SquadronId
	Cargo    model.Cargo
	TaxRateOverride *int
}

// ZeroTurnResult carries the immediate outcome back to the caller
// (spec.md §6): success/failure plus any newly minted IDs.
type ZeroTurnResult struct {
	OK      bool
	Reason  string
	NewIDs  []string
}

// SubmitZeroTurn validates and, on success, synchronously applies an
// administrative command. It never advances the turn counter.
//
// Per SPEC_FULL.md Open Question 2, zero-turn commands remain available
// at a blockaded colony: blockade only degrades GCO/prestige in the
// Income Phase, it does not revoke a house's administrative control.
func SubmitZeroTurn(c *state.Container, cmd ZeroTurnCommand) (ZeroTurnResult, error) {
	switch cmd.Kind {
	case ZTLoadCargo:
		return submitLoadCargo(c, cmd)
	case ZTUnloadCargo:
		return submitUnloadCargo(c, cmd)
	case ZTFormSquadron:
		return submitFormSquadron(c, cmd)
	case ZTSplitFleet:
		return submitSplitFleet(c, cmd)
	case ZTMergeFleet:
		return submitMergeFleet(c, cmd)
	case ZTTransferFleet:
		return submitTransferFleet(c, cmd)
	case ZTColonySettings:
		return submitColonySettings(c, cmd)
	default:
		return ZeroTurnResult{}, ec4xerr.Validation("command.SubmitZeroTurn", "unknown zero-turn kind %d", cmd.Kind)
	}
}

// fleetAtFriendlyColony is the shared precondition of spec.md §4.4:
// "fleet/squadron at a friendly colony".
func fleetAtFriendlyColony(c *state.Container, house model.HouseId, fleetID model.FleetId) (*model.Fleet, error) {
	f, ok := c.GetFleet(fleetID)
	if !ok {
		return nil, ec4xerr.Validation("command.zeroturn", "fleet %s does not exist", fleetID)
	}
	if f.Owner != house {
		return nil, ec4xerr.Validation("command.zeroturn", "fleet %s is not owned by house %s", fleetID, house)
	}
	col, ok := c.GetColony(f.Location)
	if !ok || col.Owner != house {
		return nil, ec4xerr.Validation("command.zeroturn", "fleet %s is not at a friendly colony", fleetID)
	}
	return f, nil
}

func submitLoadCargo(c *state.Container, cmd ZeroTurnCommand) (ZeroTurnResult, error) {
	f, err := fleetAtFriendlyColony(c, cmd.House, cmd.FleetID)
	if err != nil {
		return ZeroTurnResult{OK: false, Reason: err.Error()}, nil
	}
	if len(f.Squadrons) == 0 {
		return ZeroTurnResult{OK: false, Reason: "fleet has no squadrons to carry cargo"}, nil
	}
	carrier, _ := c.GetSquadron(f.Squadrons[0])
	carrier.Cargo.Marines += cmd.Cargo.Marines
	carrier.Cargo.Colonists += cmd.Cargo.Colonists
	carrier.Cargo.PTU += cmd.Cargo.PTU
	return ZeroTurnResult{OK: true}, nil
}

func submitUnloadCargo(c *state.Container, cmd ZeroTurnCommand) (ZeroTurnResult, error) {
	f, err := fleetAtFriendlyColony(c, cmd.House, cmd.FleetID)
	if err != nil {
		return ZeroTurnResult{OK: false, Reason: err.Error()}, nil
	}
	for _, sid := range f.Squadrons {
		sq, _ := c.GetSquadron(sid)
		if sq != nil {
			sq.Cargo = model.Cargo{}
		}
	}
	return ZeroTurnResult{OK: true}, nil
}

func submitFormSquadron(c *state.Container, cmd ZeroTurnCommand) (ZeroTurnResult, error) {
	col, ok := c.GetColony(cmd.Colony)
	if !ok || col.Owner != cmd.House {
		return ZeroTurnResult{OK: false, Reason: "colony is not friendly"}, nil
	}
	f := &model.Fleet{
		ID:        model.NewFleetId(),
		Owner:     cmd.House,
		Location:  cmd.Colony,
		Squadrons: append([]model.SquadronId(nil), cmd.Squadrons...),
		Mission:   model.MissionIdle,
	}
	col.UnassignedSquadrons = removeSquadronIDs(col.UnassignedSquadrons, cmd.Squadrons)
	c.AddFleet(f)
	return ZeroTurnResult{OK: true, NewIDs: []string{string(f.ID)}}, nil
}

func submitSplitFleet(c *state.Container, cmd ZeroTurnCommand) (ZeroTurnResult, error) {
	f, err := fleetAtFriendlyColony(c, cmd.House, cmd.FleetID)
	if err != nil {
		return ZeroTurnResult{OK: false, Reason: err.Error()}, nil
	}
	newFleet := &model.Fleet{
		ID:        model.NewFleetId(),
		Owner:     f.Owner,
		Location:  f.Location,
		Squadrons: append([]model.SquadronId(nil), cmd.Squadrons...),
		Mission:   model.MissionIdle,
	}
	f.Squadrons = removeSquadronIDs(f.Squadrons, cmd.Squadrons)
	c.AddFleet(newFleet)
	return ZeroTurnResult{OK: true, NewIDs: []string{string(newFleet.ID)}}, nil
}

func submitMergeFleet(c *state.Container, cmd ZeroTurnCommand) (ZeroTurnResult, error) {
	f, err := fleetAtFriendlyColony(c, cmd.House, cmd.FleetID)
	if err != nil {
		return ZeroTurnResult{OK: false, Reason: err.Error()}, nil
	}
	other, ok := c.GetFleet(cmd.OtherFleetID)
	if !ok || other.Owner != cmd.House || other.Location != f.Location {
		return ZeroTurnResult{OK: false, Reason: "other fleet is not a friendly fleet at the same location"}, nil
	}
	f.Squadrons = append(f.Squadrons, other.Squadrons...)
	c.RemoveFleet(other.ID)
	return ZeroTurnResult{OK: true}, nil
}

func submitTransferFleet(c *state.Container, cmd ZeroTurnCommand) (ZeroTurnResult, error) {
	f, ok := c.GetFleet(cmd.FleetID)
	if !ok || f.Owner != cmd.House {
		return ZeroTurnResult{OK: false, Reason: "fleet is not owned by house"}, nil
	}
	for _, sid := range cmd.Squadrons {
		sq, ok := c.GetSquadron(sid)
		if ok {
			sq.Owner = cmd.House
		}
	}
	return ZeroTurnResult{OK: true}, nil
}

func submitColonySettings(c *state.Container, cmd ZeroTurnCommand) (ZeroTurnResult, error) {
	col, ok := c.GetColony(cmd.Colony)
	if !ok || col.Owner != cmd.House {
		return ZeroTurnResult{OK: false, Reason: "colony is not friendly"}, nil
	}
	col.TaxRateOverride = cmd.TaxRateOverride
	return ZeroTurnResult{OK: true}, nil
}

func removeSquadronIDs(from []model.SquadronId, remove []model.SquadronId) []model.SquadronId {
	toRemove := make(map[model.SquadronId]struct{}, len(remove))
	for _, id := range remove {
		toRemove[id] = struct{}{}
	}
	out := from[:0:0]
	for _, id := range from {
		if _, drop := toRemove[id]; !drop {
			out = append(out, id)
		}
	}
	return out
}

package command

import (
	"fmt"

	"github.com/greenm01/ec4x/internal/model"
	"github.com/greenm01/ec4x/internal/starmap"
	"github.com/greenm01/ec4x/internal/state"
)

// Rejection records why a single command line item was dropped. Turn
// resolution never aborts because of one: the operation is dropped and
// an event recorded, per spec.md §7 "Propagation policy".
type Rejection struct {
	House   model.HouseId
	Kind    string
	Reason  string
}

// ValidateFleetCommand checks ownership, location, and the target of a
// single queued fleet command. A nil return plus no Rejection means the
// command is accepted as-is; the caller is responsible for committing
// it into the fleet's CurrentCommand (internal/turn Command Phase).
func ValidateFleetCommand(c *state.Container, house model.HouseId, req FleetCommandRequest) (*Rejection, error) {
	f, ok := c.GetFleet(req.FleetID)
	if !ok {
		return &Rejection{House: house, Kind: req.Kind.String(), Reason: "fleet does not exist"}, nil
	}
	if f.Owner != house {
		return &Rejection{House: house, Kind: req.Kind.String(), Reason: "fleet is not owned by this house"}, nil
	}

	if req.Kind == model.CmdMove {
		// SPEC_FULL.md Open Question 1: a self-targeted Move is
		// rejected outright rather than treated as a silent no-op.
		if req.TargetSystem == f.Location {
			return &Rejection{House: house, Kind: "Move", Reason: "target system equals current location"}, nil
		}
	}

	if req.TargetSystem != "" {
		if _, ok := c.GetSystem(req.TargetSystem); !ok {
			return &Rejection{House: house, Kind: req.Kind.String(), Reason: fmt.Sprintf("target system %s does not exist", req.TargetSystem)}, nil
		}
		if _, reachable := starmap.ShortestPath(c, f.Location, req.TargetSystem); !reachable {
			return &Rejection{House: house, Kind: req.Kind.String(), Reason: "target system is unreachable"}, nil
		}
	}

	if req.Kind.IsSpyMission() {
		classOf := func(id model.SquadronId) model.ShipClass {
			sq, ok := c.GetSquadron(id)
			if !ok {
				return ""
			}
			return sq.Flagship
		}
		if !f.IsScoutOnly(classOf) {
			return &Rejection{House: house, Kind: req.Kind.String(), Reason: "fleet is not scout-only"}, nil
		}
	}

	return nil, nil
}

// ThreatLevelFor resolves the threat level a command carries: Blockade
// always carries Contest, and every other kind uses its per-kind
// default (spec.md §4.4). There is no per-house override.
func ThreatLevelFor(kind model.FleetCommandKind) model.ThreatLevel {
	if kind == model.CmdBlockade {
		return model.Contest
	}
	return kind.DefaultThreatLevel()
}

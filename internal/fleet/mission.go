// Package fleet implements spec.md C6: the per-fleet mission state
// machine, one-jump-per-step movement, arrival detection, and standing
// orders.
package fleet

import (
	"github.com/greenm01/ec4x/internal/ec4xerr"
	"github.com/greenm01/ec4x/internal/model"
	"github.com/greenm01/ec4x/internal/starmap"
	"github.com/greenm01/ec4x/internal/state"
)

// AcceptCommand commits a validated command to a fleet, per spec.md
// §4.5's state diagram: Idle --submitCommand--> Queued, or
// Traveling --cancel/override--> Queued if the fleet already had an
// active command. A command whose target is the fleet's current
// location transitions straight to Executing (this only happens for
// non-Move commands — Move self-targeting is rejected at validation,
// SPEC_FULL.md Open Question 1).
func AcceptCommand(c *state.Container, f *model.Fleet, cmd model.FleetCommand) error {
	f.CurrentCommand = &cmd
	f.StandingOrder = suspendedCopy(f.StandingOrder)

	if cmd.TargetSystem == "" || cmd.TargetSystem == f.Location {
		f.Mission = model.MissionExecuting
		f.Path = nil
		f.PathIndex = 0
		return nil
	}

	path, ok := starmap.ShortestPath(c, f.Location, cmd.TargetSystem)
	if !ok {
		return ec4xerr.Validation("fleet.AcceptCommand", "no path from %s to %s", f.Location, cmd.TargetSystem)
	}
	f.Path = path
	f.PathIndex = 0
	f.Mission = model.MissionQueued
	return nil
}

// suspendedCopy keeps a fleet's standing order attached but inert while
// an explicit command runs, per spec.md §4.5 "suspended while an
// explicit command is active".
func suspendedCopy(o *model.StandingOrder) *model.StandingOrder { return o }

// StepMovement advances a traveling fleet by exactly one jump, the
// Production Phase Step 1c rule. A fleet already at Executing/Idle is
// untouched; a queued or traveling fleet with no hop left to walk
// arrives where it is. When the fleet's location
// reaches its command's target, the fleet transitions to Executing and
// becomes eligible for Conflict-Phase command execution.
func StepMovement(c *state.Container, f *model.Fleet) {
	if f.Mission != model.MissionQueued && f.Mission != model.MissionTraveling {
		return
	}
	if f.PathIndex >= len(f.Path)-1 {
		// Already at the final hop (or a zero-length path): arrive.
		arrive(c, f)
		return
	}

	f.Mission = model.MissionTraveling
	f.PathIndex++
	next := f.Path[f.PathIndex]
	c.MoveFleet(f.ID, next)

	if f.CurrentCommand != nil && f.Location == f.CurrentCommand.TargetSystem {
		arrive(c, f)
	}
}

func arrive(c *state.Container, f *model.Fleet) {
	if f.CurrentCommand != nil {
		c.MoveFleet(f.ID, f.CurrentCommand.TargetSystem)
	}
	f.Mission = model.MissionExecuting
}

// CompleteCommand closes out a fleet's current command after the
// Conflict Phase has executed it, returning the fleet to Idle so
// standing orders (if any) can resume generating commands next turn.
func CompleteCommand(f *model.Fleet) {
	f.CurrentCommand = nil
	f.Path = nil
	f.PathIndex = 0
	f.Mission = model.MissionIdle
}

package fleet

import (
	"github.com/greenm01/ec4x/internal/model"
	"github.com/greenm01/ec4x/internal/state"
)

// GenerateStandingOrderCommand synthesizes a concrete FleetCommand for
// an idle fleet carrying a standing order, per spec.md §4.5 "During
// Production Phase Step 1a, standing orders generate concrete commands
// for fleets that have no active explicit command." Returns false if
// the fleet has no standing order or already has an active command.
func GenerateStandingOrderCommand(c *state.Container, f *model.Fleet) (model.FleetCommand, bool) {
	if f.StandingOrder == nil || f.Mission != model.MissionIdle || f.CurrentCommand != nil {
		return model.FleetCommand{}, false
	}

	switch f.StandingOrder.Kind {
	case model.OrderPatrolRoute:
		return generatePatrol(f), true
	case model.OrderDefendSystem:
		return model.FleetCommand{Kind: model.CmdPatrol, TargetSystem: f.StandingOrder.Target}, true
	case model.OrderGuardColony:
		return model.FleetCommand{Kind: model.CmdPatrol, TargetSystem: f.StandingOrder.Target}, true
	case model.OrderBlockadeTarget:
		return model.FleetCommand{Kind: model.CmdBlockade, TargetSystem: f.StandingOrder.Target}, true
	case model.OrderAutoColonize:
		if dest, ok := nearestUncolonized(c, f); ok {
			return model.FleetCommand{Kind: model.CmdColonize, TargetSystem: dest}, true
		}
		return model.FleetCommand{}, false
	case model.OrderAutoReinforce, model.OrderAutoRepair, model.OrderAutoEvade:
		// These standing orders synthesize no FleetCommand, and no
		// other part of the engine reads these kinds, so they have no
		// effect on the fleet's behavior during resolution.
		return model.FleetCommand{}, false
	default:
		return model.FleetCommand{}, false
	}
}

func generatePatrol(f *model.Fleet) model.FleetCommand {
	order := f.StandingOrder
	if len(order.Route) == 0 {
		return model.FleetCommand{Kind: model.CmdPatrol, TargetSystem: f.Location}
	}
	target := order.Route[order.Cursor%len(order.Route)]
	order.Cursor = (order.Cursor + 1) % len(order.Route)
	return model.FleetCommand{Kind: model.CmdPatrol, TargetSystem: target}
}

// nearestUncolonized finds the closest system without a colony that is
// reachable from the fleet's current location, for AutoColonize.
func nearestUncolonized(c *state.Container, f *model.Fleet) (model.SystemId, bool) {
	var candidates []model.SystemId
	for _, id := range c.AllSystemIDsSorted() {
		if _, has := c.GetColony(id); !has {
			candidates = append(candidates, id)
		}
	}
	return nearestReachable(c, f.Location, candidates)
}

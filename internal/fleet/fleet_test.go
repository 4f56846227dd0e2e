package fleet_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/greenm01/ec4x/internal/fleet"
	"github.com/greenm01/ec4x/internal/model"
	"github.com/greenm01/ec4x/internal/starmap"
	"github.com/greenm01/ec4x/internal/state"
)

func setupMap(t *testing.T) (*state.Container, []model.SystemId) {
	t.Helper()
	c := state.New()
	hw, err := starmap.Generate(c, 2, 1)
	require.NoError(t, err)
	return c, hw
}

func TestAcceptCommandQueuesAndMovesOneJumpPerStep(t *testing.T) {
	c, hw := setupMap(t)
	owner := model.NewHouseId()
	f := &model.Fleet{ID: model.NewFleetId(), Owner: owner, Location: hw[0], Mission: model.MissionIdle}
	c.AddFleet(f)

	dist := starmap.Distance(c, hw[0], hw[1])
	require.Greater(t, dist, 0)

	err := fleet.AcceptCommand(c, f, model.FleetCommand{Kind: model.CmdMove, TargetSystem: hw[1]})
	require.NoError(t, err)
	require.Equal(t, model.MissionQueued, f.Mission)

	for i := 0; i < dist; i++ {
		fleet.StepMovement(c, f)
	}

	require.Equal(t, model.MissionExecuting, f.Mission)
	require.Equal(t, hw[1], f.Location)
}

func TestCompleteCommandReturnsToIdle(t *testing.T) {
	c, hw := setupMap(t)
	owner := model.NewHouseId()
	f := &model.Fleet{ID: model.NewFleetId(), Owner: owner, Location: hw[0], Mission: model.MissionExecuting,
		CurrentCommand: &model.FleetCommand{Kind: model.CmdPatrol, TargetSystem: hw[0]}}
	c.AddFleet(f)

	fleet.CompleteCommand(f)

	require.Equal(t, model.MissionIdle, f.Mission)
	require.Nil(t, f.CurrentCommand)
}

func TestStandingOrderGeneratesPatrolForIdleFleet(t *testing.T) {
	c, hw := setupMap(t)
	owner := model.NewHouseId()
	f := &model.Fleet{
		ID: model.NewFleetId(), Owner: owner, Location: hw[0], Mission: model.MissionIdle,
		StandingOrder: &model.StandingOrder{Kind: model.OrderPatrolRoute, Route: []model.SystemId{hw[0], hw[1]}},
	}
	c.AddFleet(f)

	cmd, ok := fleet.GenerateStandingOrderCommand(c, f)
	require.True(t, ok)
	require.Equal(t, model.CmdPatrol, cmd.Kind)
	require.Equal(t, hw[0], cmd.TargetSystem)
}

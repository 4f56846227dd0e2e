package turn_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/greenm01/ec4x/internal/command"
	"github.com/greenm01/ec4x/internal/config"
	"github.com/greenm01/ec4x/internal/model"
	"github.com/greenm01/ec4x/internal/starmap"
	"github.com/greenm01/ec4x/internal/state"
	"github.com/greenm01/ec4x/internal/turn"
)

func twoHouseGame(t *testing.T) (*state.Container, model.HouseId, model.HouseId) {
	t.Helper()
	c := state.New()
	hw, err := starmap.Generate(c, 2, 11)
	require.NoError(t, err)

	houseA := model.NewHouse("Atreides", "blue", 6)
	houseB := model.NewHouse("Harkonnen", "red", 6)
	c.AddHouse(houseA)
	c.AddHouse(houseB)

	colA := model.NewColony(hw[0], houseA.ID, 10)
	colB := model.NewColony(hw[1], houseB.ID, 10)
	c.AddColony(colA)
	c.AddColony(colB)

	return c, houseA.ID, houseB.ID
}

func TestResolveTurnEmptyPacketsAdvancesTurnWithNoViolations(t *testing.T) {
	c, houseA, houseB := twoHouseGame(t)
	reg := config.Default()

	cmds := map[model.HouseId]*command.Packet{
		houseA: command.NewPacket(houseA, c.Turn, 0),
		houseB: command.NewPacket(houseB, c.Turn, 0),
	}

	startTurn := c.Turn
	res, err := turn.ResolveTurn("game-1", c, reg, 0, 42, cmds)
	require.NoError(t, err)
	require.NotNil(t, res)
	require.Equal(t, startTurn+1, c.Turn)
}

func TestResolveTurnRejectsCommandForFleetNotOwned(t *testing.T) {
	c, houseA, houseB := twoHouseGame(t)
	reg := config.Default()

	colIDs := c.AllSystemIDsSorted()
	require.NotEmpty(t, colIDs)
	f := &model.Fleet{ID: model.NewFleetId(), Owner: houseA, Location: colIDs[0], Mission: model.MissionIdle}
	c.AddFleet(f)

	pktB := command.NewPacket(houseB, c.Turn, 0)
	pktB.FleetCommands = append(pktB.FleetCommands, command.FleetCommandRequest{
		FleetID: f.ID, Kind: model.CmdMove, TargetSystem: colIDs[len(colIDs)-1],
	})

	cmds := map[model.HouseId]*command.Packet{
		houseA: command.NewPacket(houseA, c.Turn, 0),
		houseB: pktB,
	}

	res, err := turn.ResolveTurn("game-2", c, reg, 0, 7, cmds)
	require.NoError(t, err)
	require.Len(t, res.Rejections, 1)
	require.Equal(t, "fleet is not owned by this house", res.Rejections[0].Reason)
}

package state_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/greenm01/ec4x/internal/model"
	"github.com/greenm01/ec4x/internal/state"
)

func TestFleetIndexTracksMovement(t *testing.T) {
	c := state.New()

	owner := model.NewHouseId()
	f := &model.Fleet{ID: model.NewFleetId(), Owner: owner, Location: "sys-1"}
	c.AddFleet(f)

	require.Equal(t, []model.FleetId{f.ID}, c.FleetsInSystem("sys-1"))
	require.Empty(t, c.FleetsInSystem("sys-2"))

	c.MoveFleet(f.ID, "sys-2")

	require.Empty(t, c.FleetsInSystem("sys-1"))
	require.Equal(t, []model.FleetId{f.ID}, c.FleetsInSystem("sys-2"))
	require.Equal(t, []model.FleetId{f.ID}, c.FleetsOwnedBy(owner))
}

func TestColonyOwnerTransferKeepsIndexConsistent(t *testing.T) {
	c := state.New()

	a := model.NewHouseId()
	b := model.NewHouseId()
	col := model.NewColony("sys-1", a, 1)
	c.AddColony(col)

	require.Equal(t, []model.ColonyId{"sys-1"}, c.ColoniesOwnedBy(a))

	c.TransferColonyOwner("sys-1", b)

	require.Empty(t, c.ColoniesOwnedBy(a))
	require.Equal(t, []model.ColonyId{"sys-1"}, c.ColoniesOwnedBy(b))
	require.NoError(t, state.CheckAll(c))
}

func TestCheckAllCatchesSquadronInTwoContainers(t *testing.T) {
	c := state.New()

	owner := model.NewHouseId()
	sq := &model.Squadron{ID: model.NewSquadronId(), Owner: owner, Flagship: model.ClassFrigate}
	c.AddSquadron(sq)

	f := &model.Fleet{ID: model.NewFleetId(), Owner: owner, Location: "sys-1", Squadrons: []model.SquadronId{sq.ID}}
	c.AddFleet(f)

	col := model.NewColony("sys-1", owner, 1)
	col.UnassignedSquadrons = []model.SquadronId{sq.ID}
	c.AddColony(col)

	err := state.CheckAll(c)
	require.Error(t, err)
}

func TestRebuildProducesSameIndices(t *testing.T) {
	c := state.New()
	owner := model.NewHouseId()
	f := &model.Fleet{ID: model.NewFleetId(), Owner: owner, Location: "sys-1"}
	c.AddFleet(f)
	col := model.NewColony("sys-2", owner, 1)
	c.AddColony(col)

	require.NoError(t, state.CheckAll(c))
	c.Rebuild()
	require.NoError(t, state.CheckAll(c))
}

package persistence_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/greenm01/ec4x/internal/intel"
	"github.com/greenm01/ec4x/internal/model"
	"github.com/greenm01/ec4x/internal/persistence"
)

func TestApplyDeltaReproducesCurrentProjectionExactly(t *testing.T) {
	viewer := model.NewHouseId()

	prev := &intel.FilteredGameState{
		Viewer: viewer,
		Turn:   10,
		Fleets: map[model.FleetId]intel.FleetSighting{
			"fleet-1": {ID: "fleet-1", Owner: viewer, Location: "sys-1", SquadronCount: 3},
			"fleet-2": {ID: "fleet-2", Owner: "enemy", Location: "sys-2"},
		},
		Colonies: map[model.ColonyId]intel.ColonySighting{
			"sys-1": {ID: "sys-1", Owner: viewer, Known: true},
		},
	}

	curr := &intel.FilteredGameState{
		Viewer: viewer,
		Turn:   11,
		Fleets: map[model.FleetId]intel.FleetSighting{
			"fleet-1": {ID: "fleet-1", Owner: viewer, Location: "sys-2", SquadronCount: 4}, // moved and grew
			"fleet-3": {ID: "fleet-3", Owner: "enemy", Location: "sys-3"},                  // newly sighted
			// fleet-2 has left visibility entirely
		},
		Colonies: map[model.ColonyId]intel.ColonySighting{
			"sys-1": {ID: "sys-1", Owner: viewer, Known: true}, // unchanged
			"sys-2": {ID: "sys-2", Owner: "enemy", Known: false},
		},
	}

	delta := persistence.DiffProjection(prev, curr)
	require.Len(t, delta.UpdatedFleets, 1)
	require.Len(t, delta.AddedFleets, 1)
	require.Equal(t, []model.FleetId{"fleet-2"}, delta.RemovedFleets)
	require.Len(t, delta.AddedColonies, 1)
	require.Empty(t, delta.UpdatedColonies)

	rebuilt := persistence.ApplyDelta(prev, delta)
	require.Equal(t, curr, rebuilt)
}

func TestApplyDeltaWithNilPreviousTreatsEverythingAsAdded(t *testing.T) {
	viewer := model.NewHouseId()
	curr := &intel.FilteredGameState{
		Viewer: viewer,
		Turn:   1,
		Fleets: map[model.FleetId]intel.FleetSighting{
			"fleet-1": {ID: "fleet-1", Owner: viewer, Location: "sys-1", SquadronCount: 2},
		},
		Colonies: map[model.ColonyId]intel.ColonySighting{
			"sys-1": {ID: "sys-1", Owner: viewer, Known: true},
		},
	}

	delta := persistence.DiffProjection(nil, curr)
	require.Len(t, delta.AddedFleets, 1)
	require.Empty(t, delta.UpdatedFleets)
	require.Empty(t, delta.RemovedFleets)

	rebuilt := persistence.ApplyDelta(nil, delta)
	require.Equal(t, curr, rebuilt)
}

func TestEncodeDecodeDeltaRoundTrip(t *testing.T) {
	viewer := model.NewHouseId()
	d := &persistence.Delta{
		Viewer: viewer,
		Turn:   3,
		AddedFleets: map[model.FleetId]intel.FleetSighting{
			"fleet-1": {ID: "fleet-1", Owner: viewer, Location: "sys-1", SquadronCount: 2},
		},
		UpdatedFleets: map[model.FleetId]intel.FleetSighting{},
		RemovedFleets: []model.FleetId{"fleet-9"},
		AddedColonies: map[model.ColonyId]intel.ColonySighting{
			"sys-1": {ID: "sys-1", Owner: viewer, Known: true},
		},
		UpdatedColonies: map[model.ColonyId]intel.ColonySighting{},
		RemovedColonies: nil,
	}

	raw := persistence.EncodeDelta(d)
	decoded, err := persistence.DecodeDelta(raw)
	require.NoError(t, err)
	require.Equal(t, d.Viewer, decoded.Viewer)
	require.Equal(t, d.Turn, decoded.Turn)
	require.Equal(t, d.AddedFleets, decoded.AddedFleets)
	require.Equal(t, d.RemovedFleets, decoded.RemovedFleets)
	require.Equal(t, d.AddedColonies, decoded.AddedColonies)
}

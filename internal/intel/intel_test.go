package intel_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/greenm01/ec4x/internal/config"
	"github.com/greenm01/ec4x/internal/detrand"
	"github.com/greenm01/ec4x/internal/event"
	"github.com/greenm01/ec4x/internal/intel"
	"github.com/greenm01/ec4x/internal/model"
	"github.com/greenm01/ec4x/internal/starmap"
	"github.com/greenm01/ec4x/internal/state"
)

func TestVisibilityMarksOwnFleetsAndColonies(t *testing.T) {
	c := state.New()
	hw, err := starmap.Generate(c, 2, 5)
	require.NoError(t, err)

	h := model.NewHouse("A", "red", 6)
	c.AddHouse(h)
	house := h.ID
	f := &model.Fleet{ID: model.NewFleetId(), Owner: house, Location: hw[0]}
	c.AddFleet(f)
	core := c.AllSystemIDsSorted()[0]
	c.AddColony(model.NewColony(core, house, 1))

	v := intel.NewVisibility(c)
	v.Recompute(c)

	require.True(t, v.Visible(house, hw[0]))
	require.True(t, v.Visible(house, core))
	require.False(t, v.Visible(house, hw[1]))
}

func TestProjectHidesEnemyFleetComposition(t *testing.T) {
	c := state.New()
	hw, err := starmap.Generate(c, 2, 5)
	require.NoError(t, err)

	houseA := model.NewHouse("A", "red", 6)
	houseB := model.NewHouse("B", "blue", 6)
	c.AddHouse(houseA)
	c.AddHouse(houseB)

	sqB := &model.Squadron{ID: model.NewSquadronId(), Owner: houseB.ID, Flagship: model.ClassCruiser}
	c.AddSquadron(sqB)
	fb := &model.Fleet{ID: model.NewFleetId(), Owner: houseB.ID, Location: hw[0], Squadrons: []model.SquadronId{sqB.ID}}
	c.AddFleet(fb)

	fa := &model.Fleet{ID: model.NewFleetId(), Owner: houseA.ID, Location: hw[0]}
	c.AddFleet(fa)

	v := intel.NewVisibility(c)
	v.Recompute(c)

	view := intel.Project(c, v, houseA.ID)
	sighting := view.Fleets[fb.ID]
	require.Equal(t, houseB.ID, sighting.Owner)
	require.Equal(t, 0, sighting.SquadronCount) // composition withheld.
}

func TestDetectionRollIsDeterministicForFixedSeed(t *testing.T) {
	reg := config.Default()
	r1 := detrand.Source(7, "scout-test")
	r2 := detrand.Source(7, "scout-test")

	d1 := intel.DetectionRoll(reg, r1, 5.0, 3)
	d2 := intel.DetectionRoll(reg, r2, 5.0, 3)
	require.Equal(t, d1, d2)
}

func TestAdvanceScoutGathersAtPathEnd(t *testing.T) {
	c := state.New()
	reg := config.Default()
	log := event.NewLog()
	hw, err := starmap.Generate(c, 2, 5)
	require.NoError(t, err)

	owner := model.NewHouseId()
	s := model.NewSpyScout(owner, model.ScoutOnSystem, hw[0], []model.SystemId{hw[0]}, 1, 3)
	c.AddScout(s)

	r := detrand.Source(1, "never-detect")
	// A defender CIC of -100 keeps the detection threshold far below
	// zero for any roll, so this call never detects.
	detected := intel.AdvanceScout(c, reg, log, 1, r, s, -100)
	require.False(t, detected)
	require.Equal(t, model.ScoutOnMission, s.State)
}

package combat_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/greenm01/ec4x/internal/combat"
	"github.com/greenm01/ec4x/internal/config"
	"github.com/greenm01/ec4x/internal/detrand"
	"github.com/greenm01/ec4x/internal/event"
	"github.com/greenm01/ec4x/internal/model"
	"github.com/greenm01/ec4x/internal/starmap"
	"github.com/greenm01/ec4x/internal/state"
)

func TestRollCERMatchesTableRow(t *testing.T) {
	reg := config.Default()
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		row := combat.RollCER(r, reg.SpaceCER)
		require.GreaterOrEqual(t, row.Multiplier, 0.0)
	}
}

func TestHitsRoundsUp(t *testing.T) {
	require.Equal(t, 3, combat.Hits(5, 0.5))
	require.Equal(t, 0, combat.Hits(0, 2.0))
}

func newSquadron(owner model.HouseId, as, ds int) *model.Squadron {
	return &model.Squadron{
		ID: model.NewSquadronId(), Owner: owner, Flagship: model.ClassCruiser,
		State: model.Undamaged, BaseAttackStrength: as, BaseDefenseStrength: ds,
	}
}

func TestApplySquadronDamageCripplesBeforeDestroying(t *testing.T) {
	owner := model.NewHouseId()
	sq := newSquadron(owner, 10, 10)

	remaining, crippled, destroyed := combat.ApplySquadronDamage([]*model.Squadron{sq}, 10, false)
	require.Equal(t, 0, remaining)
	require.Equal(t, model.Crippled, sq.State)
	require.Len(t, crippled, 1)
	require.Empty(t, destroyed)
}

func TestApplySquadronDamageDestructionProtection(t *testing.T) {
	owner := model.NewHouseId()
	a := newSquadron(owner, 10, 10)
	b := newSquadron(owner, 10, 10)
	a.State = model.Crippled
	b.State = model.Undamaged

	// b is still Undamaged, so a cannot be destroyed yet even with
	// plenty of hits left over — the destruction-protection rule.
	_, _, destroyed := combat.ApplySquadronDamage([]*model.Squadron{a, b}, 5, false)
	require.Empty(t, destroyed)

	// Once every squadron on the side is crippled, further hits can
	// destroy.
	b.State = model.Crippled
	_, _, destroyed = combat.ApplySquadronDamage([]*model.Squadron{a, b}, 100, false)
	require.Contains(t, destroyed, a.ID)
}

func TestApplySquadronDamageCriticalBypassesProtection(t *testing.T) {
	owner := model.NewHouseId()
	a := newSquadron(owner, 10, 10)
	b := newSquadron(owner, 10, 10)
	a.State = model.Crippled
	b.State = model.Undamaged

	_, _, destroyed := combat.ApplySquadronDamage([]*model.Squadron{a, b}, 100, true)
	require.Contains(t, destroyed, a.ID)
}

func TestPlanetaryPropagationOrder(t *testing.T) {
	owner := model.NewHouseId()
	col := model.NewColony(model.SystemId("S-0001"), owner, 10)
	col.IndustrialUnits = 5
	col.GroundForces = 5
	col.PopulationUnits = 20

	_, _ = combat.PlanetaryPropagation(col, nil, 8, false)

	require.Equal(t, 0, col.GroundForces)
	require.Equal(t, 2, col.IndustrialUnits)
	require.Equal(t, 20, col.PopulationUnits)
}

func TestResolveShieldDeterministicForFixedSeed(t *testing.T) {
	reg := config.Default()
	col := &model.Colony{ShieldLevel: "SLD6"}
	r := detrand.Source(42, "test-shield")
	outcome := combat.ResolveShield(r, reg, col)
	require.GreaterOrEqual(t, outcome.BlockPercent, 0.0)

	again := combat.ResolveShield(detrand.Source(42, "test-shield"), reg, col)
	require.Equal(t, outcome, again)
}

func TestResolveShieldNoShieldNeverActivates(t *testing.T) {
	reg := config.Default()
	col := &model.Colony{}
	r := detrand.Source(1, "x")
	outcome := combat.ResolveShield(r, reg, col)
	require.False(t, outcome.Activated)
}

func TestDetectionRequiresTwoHouses(t *testing.T) {
	c := state.New()
	hw, err := starmap.Generate(c, 2, 7)
	require.NoError(t, err)

	houseA := model.NewHouse("A", "red", 4)
	c.AddHouse(houseA)

	fa := &model.Fleet{ID: model.NewFleetId(), Owner: houseA.ID, Location: hw[0],
		CurrentCommand: &model.FleetCommand{Kind: model.CmdBombard, Threat: model.Attack}}
	c.AddFleet(fa)
	require.False(t, combat.Detection(c, hw[0]), "a single house present cannot trigger combat")

	houseB := model.NewHouse("B", "blue", 4)
	c.AddHouse(houseB)
	fb := &model.Fleet{ID: model.NewFleetId(), Owner: houseB.ID, Location: hw[0]}
	c.AddFleet(fb)
	require.False(t, combat.Detection(c, hw[0]),
		"two Neutral houses with no colony at stake do not trigger combat merely from an Attack-tier command")
}

func TestDetectionEnemyRelationIsUnconditional(t *testing.T) {
	c := state.New()
	hw, err := starmap.Generate(c, 2, 7)
	require.NoError(t, err)

	houseA := model.NewHouse("A", "red", 4)
	houseB := model.NewHouse("B", "blue", 4)
	houseA.Diplomacy[houseB.ID] = &model.DiplomaticRelation{From: houseA.ID, To: houseB.ID, State: model.Enemy}
	c.AddHouse(houseA)
	c.AddHouse(houseB)

	fa := &model.Fleet{ID: model.NewFleetId(), Owner: houseA.ID, Location: hw[0]}
	fb := &model.Fleet{ID: model.NewFleetId(), Owner: houseB.ID, Location: hw[0]}
	c.AddFleet(fa)
	c.AddFleet(fb)

	require.True(t, combat.Detection(c, hw[0]))
}

func TestDetectionHostileRequiresContestingCommand(t *testing.T) {
	c := state.New()
	hw, err := starmap.Generate(c, 2, 7)
	require.NoError(t, err)

	houseA := model.NewHouse("A", "red", 4)
	houseB := model.NewHouse("B", "blue", 4)
	houseA.Diplomacy[houseB.ID] = &model.DiplomaticRelation{From: houseA.ID, To: houseB.ID, State: model.Hostile}
	c.AddHouse(houseA)
	c.AddHouse(houseB)

	fa := &model.Fleet{ID: model.NewFleetId(), Owner: houseA.ID, Location: hw[0]}
	fb := &model.Fleet{ID: model.NewFleetId(), Owner: houseB.ID, Location: hw[0]}
	c.AddFleet(fa)
	c.AddFleet(fb)
	require.False(t, combat.Detection(c, hw[0]), "Hostile alone, with no contesting command, does not trigger combat")

	fa.CurrentCommand = &model.FleetCommand{Kind: model.CmdPatrol, Threat: model.Contest}
	require.True(t, combat.Detection(c, hw[0]))
}

func TestDetectionNeutralAttackOnColonyTriggersCombat(t *testing.T) {
	c := state.New()
	hw, err := starmap.Generate(c, 2, 7)
	require.NoError(t, err)

	houseA := model.NewHouse("A", "red", 4)
	houseB := model.NewHouse("B", "blue", 4)
	c.AddHouse(houseA)
	c.AddHouse(houseB)

	col := model.NewColony(hw[0], houseB.ID, 10)
	c.AddColony(col)

	fa := &model.Fleet{ID: model.NewFleetId(), Owner: houseA.ID, Location: hw[0],
		CurrentCommand: &model.FleetCommand{Kind: model.CmdBombard, Threat: model.Attack}}
	c.AddFleet(fa)

	require.True(t, combat.Detection(c, hw[0]))
}

func TestResolveSeizesUndefendedColony(t *testing.T) {
	c := state.New()
	hw, err := starmap.Generate(c, 2, 3)
	require.NoError(t, err)
	reg := config.Default()
	log := event.NewLog()

	attacker := model.NewHouse("A", "red", 4)
	defender := model.NewHouse("B", "blue", 4)
	c.AddHouse(attacker)
	c.AddHouse(defender)

	col := model.NewColony(hw[0], defender.ID, 10)
	col.GroundForces = 0
	c.AddColony(col)

	sq := newSquadron(attacker.ID, 20, 10)
	c.AddSquadron(sq)
	fa := &model.Fleet{ID: model.NewFleetId(), Owner: attacker.ID, Location: hw[0], Squadrons: []model.SquadronId{sq.ID},
		CurrentCommand: &model.FleetCommand{Kind: model.CmdInvade, Threat: model.Attack}}
	c.AddFleet(fa)

	rep := combat.Resolve(c, reg, log, 1, hw[0], 7)
	require.NotNil(t, rep)
	require.Equal(t, combat.TheaterPlanetary, rep.FinalTheater)
	require.True(t, rep.ColonySeized)
	require.Equal(t, attacker.ID, rep.SeizedBy)

	seized, ok := c.GetColony(hw[0])
	require.True(t, ok)
	require.Equal(t, attacker.ID, seized.Owner)
}

func TestResolveProducesReportWhenFleetsContest(t *testing.T) {
	c := state.New()
	hw, err := starmap.Generate(c, 2, 3)
	require.NoError(t, err)
	reg := config.Default()
	log := event.NewLog()

	houseAModel := model.NewHouse("A", "red", 4)
	houseBModel := model.NewHouse("B", "blue", 4)
	houseAModel.Diplomacy[houseBModel.ID] = &model.DiplomaticRelation{From: houseAModel.ID, To: houseBModel.ID, State: model.Hostile}
	c.AddHouse(houseAModel)
	c.AddHouse(houseBModel)
	houseA, houseB := houseAModel.ID, houseBModel.ID

	sqA := newSquadron(houseA, 8, 6)
	sqB := newSquadron(houseB, 8, 6)
	c.AddSquadron(sqA)
	c.AddSquadron(sqB)

	fa := &model.Fleet{ID: model.NewFleetId(), Owner: houseA, Location: hw[0], Squadrons: []model.SquadronId{sqA.ID},
		CurrentCommand: &model.FleetCommand{Kind: model.CmdBombard, Threat: model.Attack}}
	fb := &model.Fleet{ID: model.NewFleetId(), Owner: houseB, Location: hw[0], Squadrons: []model.SquadronId{sqB.ID}}
	c.AddFleet(fa)
	c.AddFleet(fb)

	rep := combat.Resolve(c, reg, log, 1, hw[0], 99)
	require.NotNil(t, rep)
	require.Equal(t, hw[0], rep.System)
	require.Equal(t, 1, log.Len())
}

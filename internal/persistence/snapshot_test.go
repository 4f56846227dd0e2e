package persistence_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/greenm01/ec4x/internal/config"
	"github.com/greenm01/ec4x/internal/model"
	"github.com/greenm01/ec4x/internal/persistence"
	"github.com/greenm01/ec4x/internal/state"
)

func richContainer(t *testing.T) *state.Container {
	t.Helper()
	c := state.New()
	c.Turn = 7
	c.Phase = "Command"

	houseA := model.NewHouse("Harkonnen", "#ff0000", 6)
	houseB := model.NewHouse("Atreides", "#00ff00", 6)
	houseA.Treasury = 1200
	houseA.Prestige = -50
	houseA.TaxRate = 35
	houseA.TaxHistory.Push(30)
	houseA.TaxHistory.Push(35)
	houseA.TechLevels[config.AllTechFields[0]] = 4
	houseA.ResearchRP[config.AllTechFields[0]] = 120
	houseA.Espionage = model.EspionageBudget{EBP: 10, CIP: 3}
	houseA.CapacityViolations["CapitalSquadrons"] = &model.CapacityViolation{Active: true, TurnsRemaining: 2, ViolationTurn: 5}
	houseA.OngoingEffects = append(houseA.OngoingEffects, model.OngoingEffect{Kind: "SRP", Magnitude: 0.5, TurnsRemaining: 3})
	rel := model.NewDiplomaticRelation(houseA.ID, houseB.ID)
	rel.Escalate(model.Hostile)
	rel.PendingProposal = &model.DiplomaticProposal{Kind: model.ProposeNonAggression, ProposedTurn: 6, ExpiresTurn: 9}
	houseA.Diplomacy[houseB.ID] = rel
	houseA.Intel.Add(model.IntelReport{
		Kind: model.ReportColony, Subject: "sys-1", GatheredTurn: 6, Quality: model.QualityPartial,
		Payload: map[string]any{"industrial_units": float64(40), "owner": "Atreides"},
	})
	c.AddHouse(houseA)
	c.AddHouse(houseB)

	sysA := &model.System{ID: "sys-1", Coord: model.HexCoord{Q: 1, R: -1}, Class: config.PlanetClass("Terran"), Resource: config.RawResourceRating("Rich")}
	sysB := &model.System{ID: "sys-2", Coord: model.HexCoord{Q: 2, R: -1}, Class: config.PlanetClass("Barren"), Resource: config.RawResourceRating("Poor")}
	sysA.Lanes = append(sysA.Lanes, model.JumpLane{To: sysB.ID, Type: model.LaneMajor})
	c.AddSystem(sysA)
	c.AddSystem(sysB)

	col := model.NewColony(sysA.ID, houseA.ID, 10)
	col.Souls = 3.5
	col.Infrastructure = 4
	col.IndustrialUnits = 400
	col.GroundForces = 12
	col.ShieldLevel = "SLD2"
	override := 20
	col.TaxRateOverride = &override
	col.Blockaded = true
	col.Starbases = append(col.Starbases, model.Starbase{ID: model.NewFacilityId(), TechLevel: 3, Crippled: false})
	col.Spaceports = append(col.Spaceports, model.NewFacilityId())
	col.ActiveConstruction = &model.ConstructionProject{ID: model.NewConstructionProjectId(), Kind: model.ConstructIndustrial, Item: "IU", TotalPP: 100, InvestedPP: 40, TurnsRemaining: 3}
	col.PendingQueue = append(col.PendingQueue, &model.ConstructionProject{ID: model.NewConstructionProjectId(), Kind: model.ConstructShip, Item: "Frigate", TotalPP: 60, TurnsRemaining: 6})
	col.ActiveTerraform = &model.TerraformProject{TargetClass: "Terran", TurnsRemaining: 4}
	col.CapacityViolations["FighterSquadrons"] = &model.CapacityViolation{Active: true, TurnsRemaining: 1, ViolationTurn: 7}
	c.AddColony(col)

	sq := &model.Squadron{
		ID: model.NewSquadronId(), Flagship: model.ClassCruiser, TechLevel: 5, Owner: houseA.ID, Location: sysA.ID,
		State: model.Crippled, Cargo: model.Cargo{Marines: 2}, BaseAttackStrength: 8, BaseDefenseStrength: 6,
	}
	c.AddSquadron(sq)

	f := &model.Fleet{
		ID: model.NewFleetId(), Owner: houseA.ID, Location: sysA.ID, Squadrons: []model.SquadronId{sq.ID},
		Mission: model.MissionTraveling,
		CurrentCommand: &model.FleetCommand{
			Kind: model.CmdMove, TargetSystem: sysB.ID, Priority: 1, IssuedTurn: 7, Threat: model.Contest,
		},
		StandingOrder: &model.StandingOrder{Kind: model.OrderPatrolRoute, Route: []model.SystemId{sysA.ID, sysB.ID}, Cursor: 1},
		Path:          []model.SystemId{sysA.ID, sysB.ID},
		PathIndex:     0,
	}
	c.AddFleet(f)

	scout := model.NewSpyScout(houseA.ID, model.ScoutOnColony, sysA.ID, []model.SystemId{sysA.ID, sysB.ID}, 2, 3)
	c.AddScout(scout)

	c.Rebuild()
	return c
}

func TestSnapshotEncodeDecodeRoundTripIsBitwiseIdentical(t *testing.T) {
	c := richContainer(t)

	first := persistence.EncodeSnapshot(c)
	decoded, err := persistence.DecodeSnapshot(first)
	require.NoError(t, err)

	second := persistence.EncodeSnapshot(decoded)
	require.Equal(t, first, second, "re-encoding a decoded snapshot must be bitwise identical to the original")
}

func TestSnapshotDecodeRejectsUnknownVersion(t *testing.T) {
	c := richContainer(t)
	raw := persistence.EncodeSnapshot(c)
	tampered := append([]byte{}, raw...)
	tampered[0] = persistence.SnapshotVersion + 1

	_, err := persistence.DecodeSnapshot(tampered)
	require.Error(t, err)
}

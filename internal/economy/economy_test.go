package economy_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/greenm01/ec4x/internal/config"
	"github.com/greenm01/ec4x/internal/economy"
	"github.com/greenm01/ec4x/internal/event"
	"github.com/greenm01/ec4x/internal/model"
	"github.com/greenm01/ec4x/internal/state"
)

func TestGCOZeroPUDegradesGracefully(t *testing.T) {
	reg := config.Default()
	sys := &model.System{Class: config.PlanetEden, Resource: config.ResourceAverage}
	col := model.NewColony(model.SystemId("S-0001"), model.NewHouseId(), 0)

	gco := economy.GCO(reg, col, sys, 0)
	require.True(t, gco.IsZero())
}

func TestGCOBlockadeReducesOutput(t *testing.T) {
	reg := config.Default()
	sys := &model.System{Class: config.PlanetEden, Resource: config.ResourceAverage}
	col := model.NewColony(model.SystemId("S-0001"), model.NewHouseId(), 10)

	unblocked := economy.GCO(reg, col, sys, 0)
	col.Blockaded = true
	blocked := economy.GCO(reg, col, sys, 0)

	require.True(t, blocked.LessThan(unblocked))
}

func TestTaxTierDeltaMatchesConfiguredTiers(t *testing.T) {
	reg := config.Default()
	require.Equal(t, 1, economy.TaxTierDelta(reg, 5))
	require.Equal(t, -6, economy.TaxTierDelta(reg, 80))
}

func TestApplyPrestigeDeltaClampsToBounds(t *testing.T) {
	h := model.NewHouse("Atreides", "blue", 6)
	economy.ApplyPrestigeDelta(h, 50000)
	require.Equal(t, 10000, h.Prestige)

	economy.ApplyPrestigeDelta(h, -50000)
	require.Equal(t, -10000, h.Prestige)
	require.Greater(t, h.ConsecutiveNegativePrestigeTurns, 0)
}

func TestZeroSumPrestigeTransferSumsToZero(t *testing.T) {
	c := state.New()
	log := event.NewLog()
	a := model.NewHouse("A", "red", 6)
	b := model.NewHouse("B", "green", 6)
	c.AddHouse(a)
	c.AddHouse(b)

	economy.ZeroSumPrestigeTransfer(c, log, 1, a.ID, b.ID, 25)

	require.Equal(t, 25, a.Prestige)
	require.Equal(t, -25, b.Prestige)
}

func TestCheckEliminationNoColoniesNoTransports(t *testing.T) {
	c := state.New()
	log := event.NewLog()
	reg := config.Default()
	h := model.NewHouse("Harkonnen", "black", 6)
	c.AddHouse(h)

	economy.CheckElimination(reg, c, log, 1, h)
	require.True(t, h.Eliminated)
}

func TestEnforceFighterCapacityDisbandsOldestAfterGrace(t *testing.T) {
	c := state.New()
	log := event.NewLog()
	reg := config.Default()
	h := model.NewHouse("Corrino", "gold", 6)
	c.AddHouse(h)

	col := model.NewColony(model.SystemId("S-0002"), h.ID, 10)
	col.IndustrialUnits = 100 // capacity 1 fighter at base FD.
	for i := 0; i < 3; i++ {
		sq := &model.Squadron{ID: model.NewSquadronId(), Owner: h.ID, Flagship: model.ClassFighter}
		c.AddSquadron(sq)
		col.FighterSquadrons = append(col.FighterSquadrons, sq.ID)
	}
	c.AddColony(col)

	economy.EnforceFighterCapacity(c, reg, log, 1, h, col) // turn 1: violation flagged, grace=2.
	require.Len(t, col.FighterSquadrons, 3)

	economy.EnforceFighterCapacity(c, reg, log, 2, h, col) // turn 2: grace=1.
	require.Len(t, col.FighterSquadrons, 3)

	economy.EnforceFighterCapacity(c, reg, log, 3, h, col) // turn 3: grace exhausted, disband.
	require.Len(t, col.FighterSquadrons, 1)
}

func TestRunIncomePhasePurchasesEspionageAndPenalizesOverInvestment(t *testing.T) {
	c := state.New()
	log := event.NewLog()
	reg := config.Default()
	h := model.NewHouse("Ordos", "green", 6)
	h.Treasury = 1000
	c.AddHouse(h)

	startPrestige := h.Prestige
	research := economy.ResearchAllocations{}
	espionage := economy.EspionageInvestments{
		string(h.ID): {EBP: 10, CIP: 0, TurnBudget: 100}, // 10*40=400 PP, well past 5% of 100.
	}

	economy.RunIncomePhase(c, reg, log, 1, 1, research, espionage, nil, nil, 0)

	require.Equal(t, 10, h.Espionage.EBP)
	require.Equal(t, 600, h.Treasury) // 1000 - 400, production/maintenance otherwise zero.
	require.Less(t, h.Prestige, startPrestige)
}

func TestRunIncomePhaseRunsSalvageForCompletedOrders(t *testing.T) {
	c := state.New()
	log := event.NewLog()
	reg := config.Default()
	h := model.NewHouse("Fremen", "tan", 6)
	h.Treasury = 0
	c.AddHouse(h)

	sys := model.SystemId("S-0009")
	orders := []economy.SalvageOrder{{House: h.ID, System: sys}}
	wreckage := map[model.SystemId]int{sys: 50}

	economy.RunIncomePhase(c, reg, log, 1, 1, nil, nil, orders, wreckage, 0)

	require.Equal(t, 50, h.Treasury) // SalvagePPPerTon default is 1.
	require.Equal(t, 0, wreckage[sys])
}

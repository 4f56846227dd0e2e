package config

// Default builds the built-in gameplay constants table. These values are
// deliberately concrete rather than zero — the engine must be runnable
// with no configuration file at all, which is what every unit test and
// the deterministic-100-turn scenario (spec.md §8 scenario 1) relies on.
func Default() *Registry {
	return &Registry{
		GCOBaseByPlanetClass: map[PlanetClass]float64{
			PlanetEden:     12,
			PlanetLush:     10,
			PlanetBenign:   8,
			PlanetHarsh:    6,
			PlanetHostile:  4,
			PlanetDesolate: 2,
			PlanetExtreme:  1,
		},
		GCOResourceMultiplier: map[RawResourceRating]float64{
			ResourceVeryPoor: 0.6,
			ResourcePoor:     0.8,
			ResourceAverage:  1.0,
			ResourceRich:     1.25,
			ResourceVeryRich: 1.5,
		},
		MaintenancePerShipClass: map[string]int{
			"Scout":        1,
			"Frigate":      2,
			"Cruiser":      4,
			"Carrier":      6,
			"Battleship":   8,
			"Dreadnought":  12,
			"PlanetBreaker": 20,
			"Transport":    2,
			"Fighter":      0, // embarked fighters draw no separate maintenance
		},
		ELProductionBonusPerLevel: 0.02,
		TaxTiers: []TaxTier{
			{MinRate: 0, MaxRate: 10, PrestigeDelta: 1},
			{MinRate: 11, MaxRate: 25, PrestigeDelta: 0},
			{MinRate: 26, MaxRate: 40, PrestigeDelta: -1},
			{MinRate: 41, MaxRate: 60, PrestigeDelta: -3},
			{MinRate: 61, MaxRate: 100, PrestigeDelta: -6},
		},
		TaxHistoryTurns:                   6,
		BlockadeGCOReduction:               0.5,
		BlockadePrestigePenalty:            2,
		EBPCIPCostPerPoint:                 40,
		EBPCIPOverInvestPenaltyPerPercent:  1,
		EBPCIPOverInvestThresholdPct:       0.05,
		SalvagePPPerTon:                    1,
		SalvageTonnagePerDestroyedSquadron: 10,
		EspionageActionEBPCost:             20,

		ResearchCostExponentBase:        1.35,
		ResearchCostBaseline:            100,
		ResearchBreakthroughEveryNTurns: 5,
		PPtoRPConversionBaseline:        1.0,

		CapacityPolicies: map[CapacityKind]CapacityPolicy{
			CapacityCapitalSquadrons: {GraceTurns: 0},
			CapacityTotalSquadrons:   {GraceTurns: 2},
			CapacityFighters:         {GraceTurns: 2},
			CapacityPlanetBreakers:   {GraceTurns: 0},
		},
		FighterCapacityIUDivisor: 100,
		FDCapacityMultiplierPerLevel: 0.1,
		CapacityBaseByKind: map[CapacityKind]int{
			CapacityCapitalSquadrons: 2,
			CapacityTotalSquadrons:   10,
			CapacityPlanetBreakers:   0,
		},
		CapacityPerCSTByKind: map[CapacityKind]float64{
			CapacityCapitalSquadrons: 0.5,
			CapacityTotalSquadrons:   2.0,
			CapacityPlanetBreakers:   0.2,
		},

		SpaceCER: []CERRow{
			{Min: 1, Max: 1, Multiplier: 0.25},
			{Min: 2, Max: 3, Multiplier: 0.5},
			{Min: 4, Max: 7, Multiplier: 1.0},
			{Min: 8, Max: 9, Multiplier: 1.5},
			{Min: 10, Max: 10, Multiplier: 2.0, Critical: true},
		},
		BombardmentCER: []CERRow{
			{Min: 1, Max: 2, Multiplier: 0.25},
			{Min: 3, Max: 4, Multiplier: 0.5},
			{Min: 5, Max: 8, Multiplier: 1.0},
			{Min: 9, Max: 9, Multiplier: 1.5},
			{Min: 10, Max: 10, Multiplier: 2.0, Critical: true},
		},
		GroundCER: []CERRow{
			{Min: 1, Max: 3, Multiplier: 0.5},
			{Min: 4, Max: 7, Multiplier: 1.0},
			{Min: 8, Max: 9, Multiplier: 1.5},
			{Min: 10, Max: 10, Multiplier: 2.0, Critical: true},
		},
		ShieldBlockPercent: map[string]float64{
			"SLD1": 0.15, "SLD2": 0.30, "SLD3": 0.50,
			"SLD4": 0.65, "SLD5": 0.80, "SLD6": 0.90,
		},
		ShieldActivationThreshold: map[string]int{
			"SLD1": 16, "SLD2": 14, "SLD3": 10,
			"SLD4": 8, "SLD5": 6, "SLD6": 4,
		},
		CombatRoundLimit:     6,
		RetreatEligibleRound: 3,

		PrestigeColonySeized:      25,
		PrestigeHouseEliminatedBy: 50,
		PrestigeTaxTierScale:      1,
		PrestigeCollapseThreshold: -2000,
		PrestigeCollapseTurns:     3,
		VictoryPrestigeThreshold:  5000,

		DishonorCountdownTurns:  10,
		IsolationCountdownTurns: 20,

		MeshELIBonus: map[int]float64{
			1: 0, 2: 0.5, 3: 1, 4: 1.5, 5: 2, 6: 2.5,
		},
		DetectionBaseChance: 0.5,

		DefaultJumpLaneWeight: map[string]int{
			"Major":      1,
			"Minor":      1,
			"Restricted": 2,
		},
	}
}

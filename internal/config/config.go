// Package config is the typed, load-once registry of every gameplay
// constant the engine consults: CER dice tables, costs, thresholds,
// shield block probabilities, prestige source values, capacity formulae
// and tax tiers. No engine package outside this one defines a magic
// number; every tuneable value is looked up here.
//
// A Registry is built once at process start (cmd/ec4xd) and handed down
// by reference. It is immutable after Load returns: nothing in the
// engine mutates a *Registry, and hot-reload is deliberately not
// supported (spec.md §1 "Non-goals: ... live-reload of game rules
// mid-game").
package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/greenm01/ec4x/internal/ec4xerr"
)

// PlanetClass enumerates the raw terrain a System's world belongs to.
type PlanetClass string

const (
	PlanetEden     PlanetClass = "Eden"
	PlanetLush     PlanetClass = "Lush"
	PlanetBenign   PlanetClass = "Benign"
	PlanetHarsh    PlanetClass = "Harsh"
	PlanetHostile  PlanetClass = "Hostile"
	PlanetDesolate PlanetClass = "Desolate"
	PlanetExtreme  PlanetClass = "Extreme"
)

// RawResourceRating enumerates a System's raw-material richness.
type RawResourceRating string

const (
	ResourceVeryPoor RawResourceRating = "VeryPoor"
	ResourcePoor     RawResourceRating = "Poor"
	ResourceAverage  RawResourceRating = "Average"
	ResourceRich     RawResourceRating = "Rich"
	ResourceVeryRich RawResourceRating = "VeryRich"
)

// CERRow is one row of a Combat Effectiveness Rating table: a roll falls
// into [Min,Max] and maps to a Multiplier, optionally a Critical flag.
type CERRow struct {
	Min, Max   int
	Multiplier float64
	Critical   bool
}

// CapacityKind names one of the four enforced capacity ceilings (§3
// invariant 5, §4.7 step 7). Exactly one grace policy is attached to
// each kind so the two policies in the source material ("no grace" and
// "2-turn grace") can never cross-apply (SPEC_FULL.md Open Question 4).
type CapacityKind string

const (
	CapacityCapitalSquadrons CapacityKind = "capital_squadrons"
	CapacityTotalSquadrons   CapacityKind = "total_squadrons"
	CapacityFighters         CapacityKind = "fighters"
	CapacityPlanetBreakers   CapacityKind = "planet_breakers"
)

// CapacityPolicy describes how a single capacity kind is enforced.
type CapacityPolicy struct {
	GraceTurns int // 0 means immediate enforcement, no grace period.
}

// TaxTier is one row of the tiered prestige penalty/incentive table
// keyed by tax rate (§4.7 "Tax policy").
type TaxTier struct {
	MinRate, MaxRate int
	PrestigeDelta    int
}

// TechField enumerates the 11 tech level fields on a House (§3).
type TechField string

const (
	TechCST TechField = "CST"
	TechWEP TechField = "WEP"
	TechEL  TechField = "EL"
	TechSL  TechField = "SL"
	TechTER TechField = "TER"
	TechELI TechField = "ELI"
	TechCLK TechField = "CLK"
	TechSLD TechField = "SLD"
	TechCIC TechField = "CIC"
	TechFD  TechField = "FD"
	TechACO TechField = "ACO"
)

// AllTechFields lists the 11 tech fields in a fixed, deterministic order.
var AllTechFields = []TechField{
	TechCST, TechWEP, TechEL, TechSL, TechTER,
	TechELI, TechCLK, TechSLD, TechCIC, TechFD, TechACO,
}

// Registry is the immutable set of gameplay constants for one running
// game process.
type Registry struct {
	// Economy
	GCOBaseByPlanetClass map[PlanetClass]float64
	GCOResourceMultiplier map[RawResourceRating]float64
	MaintenancePerShipClass map[string]int
	ELProductionBonusPerLevel float64
	TaxTiers                 []TaxTier
	TaxHistoryTurns           int
	BlockadeGCOReduction      float64 // fraction, e.g. 0.5
	BlockadePrestigePenalty   int
	EBPCIPCostPerPoint        int
	EBPCIPOverInvestPenaltyPerPercent int
	EBPCIPOverInvestThresholdPct      float64
	SalvagePPPerTon                   int
	SalvageTonnagePerDestroyedSquadron int
	EspionageActionEBPCost            int

	// Research
	ResearchCostExponentBase float64
	ResearchCostBaseline     int
	ResearchBreakthroughEveryNTurns int
	PPtoRPConversionBaseline         float64

	// Capacity
	CapacityPolicies map[CapacityKind]CapacityPolicy
	FighterCapacityIUDivisor int // fighters per this many IU, scaled by FD multiplier
	FDCapacityMultiplierPerLevel float64 // FD tech level's additive bonus to fighter capacity

	// CapacityBase/CapacityPerCST give each house's ceiling for the three
	// house-wide capacity kinds (fighters are colony-scoped and use
	// FighterCapacityIUDivisor instead): cap = base + perCST*CST_level.
	CapacityBaseByKind   map[CapacityKind]int
	CapacityPerCSTByKind map[CapacityKind]float64

	// Combat
	SpaceCER       []CERRow
	BombardmentCER []CERRow
	GroundCER      []CERRow
	ShieldBlockPercent map[string]float64 // keyed by "SLD1".."SLD6"
	ShieldActivationThreshold map[string]int // d20 roll >= threshold activates
	CombatRoundLimit          int
	RetreatEligibleRound      int

	// Prestige
	PrestigeColonySeized      int
	PrestigeHouseEliminatedBy int
	PrestigeTaxTierScale      int
	PrestigeCollapseThreshold int
	PrestigeCollapseTurns     int
	VictoryPrestigeThreshold  int

	// Diplomacy
	DishonorCountdownTurns  int
	IsolationCountdownTurns int

	// Intelligence
	MeshELIBonus map[int]float64 // mesh_count -> additive ELI bonus
	DetectionBaseChance float64

	// Map
	DefaultJumpLaneWeight map[string]int
}

// Load reads an optional configuration file plus EC4X_-prefixed
// environment overrides, layers them on top of built-in defaults, and
// returns an immutable Registry. An empty path skips the file lookup
// and returns pure defaults plus environment overrides — this is the
// normal path for tests.
func Load(path string) (*Registry, error) {
	v := viper.New()
	v.SetEnvPrefix("EC4X")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	r := Default()
	applyOverridable(v, r)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, ec4xerr.Config("config.Load", "failed to read %q: %v", path, err)
		}
		applyOverridable(v, r)
	}

	return r, nil
}

// applyOverridable copies the handful of scalar knobs that make sense
// as file/env overrides on top of whatever Default() produced. The
// dice tables and per-kind maps are intentionally not file-overridable:
// they are data, not tuning knobs, and changing their shape at runtime
// would violate the "no hot-reload" non-goal.
func applyOverridable(v *viper.Viper, r *Registry) {
	if v.IsSet("Economy.TaxHistoryTurns") {
		r.TaxHistoryTurns = v.GetInt("Economy.TaxHistoryTurns")
	}
	if v.IsSet("Victory.PrestigeThreshold") {
		r.VictoryPrestigeThreshold = v.GetInt("Victory.PrestigeThreshold")
	}
	if v.IsSet("Combat.RoundLimit") {
		r.CombatRoundLimit = v.GetInt("Combat.RoundLimit")
	}
}

package model

// Starbase is a defensive facility a Colony may field; it can be
// crippled by combat without being destroyed outright.
type Starbase struct {
	ID       FacilityId
	TechLevel int
	Crippled bool
}

// CapacityViolation tracks an in-progress capacity breach for a single
// capacity kind at a colony (spec.md §3 "capacity-violation tracker").
// A colony can have at most one active tracker per kind; the turn
// resolver keys these by config.CapacityKind rather than nesting one
// struct per kind here.
type CapacityViolation struct {
	Active         bool
	TurnsRemaining int
	ViolationTurn  int
}

// Colony is located 1:1 at a SystemId for as long as it exists.
type Colony struct {
	ID    ColonyId // == SystemId
	Owner HouseId

	PopulationUnits int // PU >= 0
	Souls           float64 // millions
	Infrastructure  int     // 0-10
	IndustrialUnits int     // IU >= 0

	// GroundForces is the colony's garrison strength, consumed after
	// planetary batteries and before Industrial Units in the damage
	// propagation order of spec.md §4.6.
	GroundForces int

	// ShieldLevel is "" for no shield, or "SLD1".."SLD6" — indexes
	// config.Registry's ShieldBlockPercent/ShieldActivationThreshold.
	ShieldLevel string

	TaxRateOverride *int // optional per-colony override of house tax rate

	Blockaded bool

	FighterSquadrons   []SquadronId
	UnassignedSquadrons []SquadronId // squadrons present but not in any fleet

	Starbases  []Starbase
	Spaceports []FacilityId
	Shipyards  []FacilityId

	ActiveConstruction *ConstructionProject
	PendingQueue       []*ConstructionProject

	ActiveTerraform *TerraformProject

	CapacityViolations map[string]*CapacityViolation // keyed by config.CapacityKind
}

// TerraformProject tracks an in-progress world-class upgrade (spec.md
// §3 "active-terraform project").
type TerraformProject struct {
	TargetClass    string
	TurnsRemaining int
}

// NewColony creates a freshly founded colony at the given system, owned
// by house, with the minimal population a colonization mission seeds.
func NewColony(system SystemId, owner HouseId, seedPU int) *Colony {
	return &Colony{
		ID:                 system,
		Owner:              owner,
		PopulationUnits:    seedPU,
		Infrastructure:     0,
		IndustrialUnits:    0,
		CapacityViolations: make(map[string]*CapacityViolation),
	}
}

// FighterCapacity returns the maximum number of fighter squadrons this
// colony may host, per spec.md §3 invariant 4:
// floor(IU/100) * FD-multiplier.
func (c *Colony) FighterCapacity(iuDivisor int, fdMultiplier float64) int {
	base := c.IndustrialUnits / iuDivisor
	return int(float64(base) * fdMultiplier)
}

// SquadronContainer enumerates the three, and only three, places a
// Squadron may live (spec.md §3 invariant 3).
type SquadronContainer int

const (
	ContainerNone SquadronContainer = iota
	ContainerFleet
	ContainerColonyUnassigned
	ContainerColonyFighter
)

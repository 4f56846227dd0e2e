package model

// ShipClass enumerates the flagship classes a Squadron can be built
// around. Modeled as a tagged variant with a common stats block rather
// than an inheritance hierarchy, per spec.md §9 "Polymorphism".
type ShipClass string

const (
	ClassScout         ShipClass = "Scout"
	ClassFrigate       ShipClass = "Frigate"
	ClassCruiser       ShipClass = "Cruiser"
	ClassCarrier       ShipClass = "Carrier"
	ClassBattleship    ShipClass = "Battleship"
	ClassDreadnought   ShipClass = "Dreadnought"
	ClassPlanetBreaker ShipClass = "PlanetBreaker"
	ClassTransport     ShipClass = "Transport"
	ClassFighter       ShipClass = "Fighter"
)

// IsCarrier reports whether this class can embark fighter squadrons in
// a hangar.
func (c ShipClass) IsCarrier() bool { return c == ClassCarrier }

// IsCapital reports whether this class counts against a house's
// capital-squadron cap (spec.md §3 invariant 5).
func (c ShipClass) IsCapital() bool {
	switch c {
	case ClassBattleship, ClassDreadnought, ClassPlanetBreaker:
		return true
	default:
		return false
	}
}

// IsSpacelift reports whether this class is destroyed outright if its
// escorts are lost (spec.md §4.6 "Retreat").
func (c ShipClass) IsSpacelift() bool {
	return c == ClassTransport
}

// CombatState tracks a Squadron's damage status through a battle.
// Undamaged -> Crippled on first sufficient hit; Crippled -> Destroyed
// only under the destruction-protection rule (spec.md §4.6).
type CombatState int

const (
	Undamaged CombatState = iota
	Crippled
	Destroyed
)

// Cargo is the optional payload a Squadron's flagship carries — marines
// for invasion, colonists/PTU for colonization.
type Cargo struct {
	Marines   int
	Colonists int
	PTU       int
}

func (c Cargo) Empty() bool { return c.Marines == 0 && c.Colonists == 0 && c.PTU == 0 }

// Squadron is the basic combat unit: one flagship class, a tech level,
// an owner, a location, and (if the flagship is a carrier) an embarked
// fighter roster.
type Squadron struct {
	ID        SquadronId
	Flagship  ShipClass
	TechLevel int
	Owner     HouseId
	Location  SystemId
	State     CombatState

	// EmbarkedFighters counts exactly once, against this squadron's own
	// hangar capacity — never against the colony's fighter cap (spec.md
	// §3 invariant 6).
	EmbarkedFighters []SquadronId

	Cargo Cargo

	// BaseAttackStrength / BaseDefenseStrength are this squadron's
	// stored base stats; internal/combat reads them directly (see
	// EffectiveAttackStrength) rather than deriving them from config.
	BaseAttackStrength  int
	BaseDefenseStrength int
}

// EffectiveAttackStrength halves AS for a crippled squadron and zeroes
// it for a destroyed one (spec.md §4.6 "CER resolution").
func (s *Squadron) EffectiveAttackStrength() float64 {
	switch s.State {
	case Destroyed:
		return 0
	case Crippled:
		return float64(s.BaseAttackStrength) / 2
	default:
		return float64(s.BaseAttackStrength)
	}
}

package model

import "github.com/greenm01/ec4x/internal/config"

// HouseStatus :
// Tracks a House's standing in the game. A house degrades from Active
// through DefensiveCollapse (sustained negative prestige, spec.md §4.7
// step 10) before being marked Eliminated, at which point invariant 9
// (zero colonies, zero marine-carrying transports) must hold.
type HouseStatus int

const (
	HouseActive HouseStatus = iota
	HouseDefensiveCollapse
	HouseEliminated
)

// TaxHistory is a fixed-size ring buffer of the last N turns' tax rate,
// used to compute the 6-turn rolling average that drives an additional
// prestige penalty tier (spec.md §4.7 "Tax policy").
type TaxHistory struct {
	rates []int // most recent at index len-1
	cap   int
}

func NewTaxHistory(capacity int) TaxHistory {
	return TaxHistory{rates: make([]int, 0, capacity), cap: capacity}
}

func (h *TaxHistory) Push(rate int) {
	if len(h.rates) == h.cap {
		copy(h.rates, h.rates[1:])
		h.rates[len(h.rates)-1] = rate
		return
	}
	h.rates = append(h.rates, rate)
}

// Rates returns the recorded rates, oldest first, for serialization.
func (h TaxHistory) Rates() []int { return h.rates }

// Cap returns the ring buffer's configured capacity.
func (h TaxHistory) Cap() int { return h.cap }

func (h TaxHistory) Average() float64 {
	if len(h.rates) == 0 {
		return 0
	}
	sum := 0
	for _, r := range h.rates {
		sum += r
	}
	return float64(sum) / float64(len(h.rates))
}

// EspionageBudget tracks a House's accumulated espionage investment
// (§3 "espionage budget (EBP + CIP)").
type EspionageBudget struct {
	EBP int // Espionage Budget Points, offensive.
	CIP int // Counter-Intelligence Points, defensive.
}

// OngoingEffect is a timed espionage or combat aftereffect applied to a
// house (SRP/NCV/tax reduction, starbase crippled, intel corruption —
// spec.md §4.7 step 1). It decrements once per Income Phase and is
// removed on expiry.
type OngoingEffect struct {
	Kind           string
	Magnitude      float64
	TurnsRemaining int
}

// House is a player's persistent standing in the game.
type House struct {
	ID    HouseId
	Name  string
	Color string

	Treasury int // signed, PP. Invariant: > -10000 except transient.
	Prestige int // signed. Invariant: in [-10000, 10000].

	ConsecutiveNegativePrestigeTurns int

	TaxRate     int
	TaxHistory  TaxHistory

	TechLevels map[config.TechField]int // each in [0,20]
	ResearchRP map[config.TechField]int // accumulated research points per field

	Espionage EspionageBudget

	// Diplomacy maps this house's view of its relation to every other
	// house it has met. Relations are directed: A's view of B can
	// differ momentarily from B's view of A within the same turn until
	// the Conflict Phase reconciles escalation (spec.md §4.4/§4.6).
	Diplomacy map[HouseId]*DiplomaticRelation

	// Intel is this house's private intelligence database (§4.8).
	Intel IntelDatabase

	Eliminated bool
	Status     HouseStatus

	// CapacityViolations tracks house-wide capacity breaches (capital
	// squadrons, total squadrons, planet-breakers) keyed by
	// config.CapacityKind — the house-scoped counterpart to Colony's
	// fighter tracker of the same shape (spec.md §4.7 step 7).
	CapacityViolations map[string]*CapacityViolation

	// OngoingEffects are timed espionage/combat aftereffects ticked down
	// once per Income Phase step 1.
	OngoingEffects []OngoingEffect
}

// NewHouse creates a House with every tech field at 0 and an empty
// research/diplomacy/intel state, ready to be placed on the map.
func NewHouse(name, color string, taxHistoryTurns int) *House {
	levels := make(map[config.TechField]int, len(config.AllTechFields))
	rp := make(map[config.TechField]int, len(config.AllTechFields))
	for _, f := range config.AllTechFields {
		levels[f] = 0
		rp[f] = 0
	}

	return &House{
		ID:                 NewHouseId(),
		Name:                name,
		Color:               color,
		TaxHistory:          NewTaxHistory(taxHistoryTurns),
		TechLevels:          levels,
		ResearchRP:          rp,
		Diplomacy:           make(map[HouseId]*DiplomaticRelation),
		Intel:               NewIntelDatabase(),
		Status:              HouseActive,
		CapacityViolations:  make(map[string]*CapacityViolation),
	}
}

// TechLevel returns the current level for a field, defaulting to 0 for
// an unknown field rather than panicking — a house that has never
// invested in a field is simply at level 0.
func (h *House) TechLevel(field config.TechField) int {
	return h.TechLevels[field]
}

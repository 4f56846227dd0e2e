// Package command implements spec.md C5: the command packet schema,
// the zero-turn/queued split, and command validation. Zero-turn
// commands execute synchronously against the live state the moment
// they are submitted; queued commands are collected into a
// CommandPacket per house and only take effect once internal/turn
// resolves the turn they were submitted for.
package command

import "github.com/greenm01/ec4x/internal/model"

// FleetCommandRequest is one fleet-command line item inside a packet
// (spec.md §6 "Command packet").
type FleetCommandRequest struct {
	FleetID      model.FleetId
	Kind         model.FleetCommandKind
	TargetSystem model.SystemId
	TargetFleet  model.FleetId
	Priority     int
}

// BuildCommandKind enumerates what a build command can target.
type BuildCommandKind int

const (
	BuildShip BuildCommandKind = iota
	BuildFacility
	BuildIndustrial
	BuildInfrastructure
)

// BuildCommandRequest queues a ConstructionProject at a colony.
type BuildCommandRequest struct {
	Colony model.ColonyId
	Kind   BuildCommandKind
	Item   string
	PP     int
}

// DiplomaticCommandKind enumerates the proposal/response actions a
// house can take towards another house in a turn.
type DiplomaticCommandKind int

const (
	DiplomaticPropose DiplomaticCommandKind = iota
	DiplomaticAccept
	DiplomaticReject
)

// DiplomaticCommandRequest is one diplomatic action line item.
type DiplomaticCommandRequest struct {
	Target model.HouseId
	Kind   DiplomaticCommandKind
	Offer  model.DiplomaticProposalKind
}

// PopulationTransferRequest moves PU between two colonies owned by the
// submitting house.
type PopulationTransferRequest struct {
	From, To model.ColonyId
	Amount   int
}

// TerraformCommandRequest begins or continues a terraform project at a
// colony.
type TerraformCommandRequest struct {
	Colony      model.ColonyId
	TargetClass string
}

// ColonyManagementRequest bundles the per-colony settings a house can
// adjust without consuming a turn-resolved command slot on its own —
// e.g. a tax-rate override — but that are still collected per-turn for
// audit in the packet (spec.md §6).
type ColonyManagementRequest struct {
	Colony         model.ColonyId
	TaxRateOverride *int
}

// StandingCommandRequest installs or clears a standing order on a
// fleet.
type StandingCommandRequest struct {
	FleetID model.FleetId
	Order   *model.StandingOrder // nil clears any existing standing order.
}

// EspionageActionRequest spends EBP/CIP investment this turn; a
// dedicated field from the packet schema in spec.md §6 distinct from
// bare "research allocation".
type EspionageActionRequest struct {
	EBPInvestment int
	CIPInvestment int
}

// Packet is the per-house, per-turn CommandPacket of spec.md §6.
type Packet struct {
	House            model.HouseId
	Turn             int
	TreasurySnapshot int

	FleetCommands       []FleetCommandRequest
	BuildCommands       []BuildCommandRequest
	ResearchAllocation  map[string]int // TechField name -> PP
	DiplomaticCommands  []DiplomaticCommandRequest
	PopulationTransfers []PopulationTransferRequest
	TerraformCommands   []TerraformCommandRequest
	ColonyManagement    []ColonyManagementRequest
	StandingCommands    []StandingCommandRequest
	Espionage           *EspionageActionRequest
}

// NewPacket builds an empty packet for the given house/turn — the shape
// every "empty packet" no-op scenario (spec.md §8 scenario 1) submits.
func NewPacket(house model.HouseId, turn int, treasury int) *Packet {
	return &Packet{
		House:              house,
		Turn:               turn,
		TreasurySnapshot:   treasury,
		ResearchAllocation: make(map[string]int),
	}
}

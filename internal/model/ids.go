package model

import "github.com/google/uuid"

// Every entity in the engine is addressed by a typed opaque identifier.
// IDs are process-wide unique and are never reused across deletions
// within a single game (spec.md §3 "Identifier discipline"). The
// underlying representation is a UUID string, minted with
// github.com/google/uuid the way the teacher mints every primary key.

type HouseId string
type SystemId string
type ColonyId = SystemId // a Colony is 1:1 with the System it occupies.
type FleetId string
type SquadronId string
type ShipId string
type FacilityId string
type SpyScoutId string
type ConstructionProjectId string

func NewHouseId() HouseId                         { return HouseId(uuid.NewString()) }
func NewFleetId() FleetId                         { return FleetId(uuid.NewString()) }
func NewSquadronId() SquadronId                   { return SquadronId(uuid.NewString()) }
func NewShipId() ShipId                           { return ShipId(uuid.NewString()) }
func NewFacilityId() FacilityId                   { return FacilityId(uuid.NewString()) }
func NewSpyScoutId() SpyScoutId                   { return SpyScoutId(uuid.NewString()) }
func NewConstructionProjectId() ConstructionProjectId { return ConstructionProjectId(uuid.NewString()) }

// SystemId values are minted by the star map generator (internal/starmap)
// from the procedural layout, not randomly, so there is no NewSystemId
// here: system identity is derived from map position, not UUID.

package model

// ScoutMissionKind mirrors the Spy* FleetCommandKinds that spawn a
// SpyScout (spec.md §4.8).
type ScoutMissionKind int

const (
	ScoutOnSystem ScoutMissionKind = iota
	ScoutOnColony
	ScoutOnStarbase
)

// ScoutState is the lifecycle of a detached scout mission (spec.md §3).
type ScoutState int

const (
	ScoutTraveling ScoutState = iota
	ScoutOnMission
	ScoutReturning
	ScoutDetected
)

// SpyScout is an owning-house-detached scout mission: once a Spy*
// command is accepted, the issuing fleet's scout squadrons are removed
// from the fleet (spec.md §8 I7) and folded into one SpyScout entity.
type SpyScout struct {
	ID       SpyScoutId
	Owner    HouseId
	Mission  ScoutMissionKind
	Location SystemId

	Path      []SystemId
	PathIndex int

	// MeshCount is how many scout squadrons were merged into this
	// mission; it scales the ELI detection-avoidance bonus (spec.md §4.8,
	// §8 scenario 6).
	MeshCount int
	TechLevel int

	State ScoutState
}

// NewSpyScout merges meshCount scout squadrons into one detached
// mission. A zero mesh count is rejected by the caller before this
// constructor runs (spec.md §8 boundary "Zero scouts merging into a
// fleet is rejected").
func NewSpyScout(owner HouseId, mission ScoutMissionKind, start SystemId, path []SystemId, meshCount, techLevel int) *SpyScout {
	return &SpyScout{
		ID:        NewSpyScoutId(),
		Owner:     owner,
		Mission:   mission,
		Location:  start,
		Path:      path,
		MeshCount: meshCount,
		TechLevel: techLevel,
		State:     ScoutTraveling,
	}
}

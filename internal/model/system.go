package model

import "github.com/greenm01/ec4x/internal/config"

// HexCoord is an axial hex-grid coordinate, as used by internal/starmap
// for ring-based procedural generation and distance queries.
type HexCoord struct {
	Q, R int
}

// JumpLaneType enumerates the three lane classes a System can be
// connected to a neighbor by (spec.md §3 "System").
type JumpLaneType int

const (
	LaneMajor JumpLaneType = iota
	LaneMinor
	LaneRestricted
)

func (l JumpLaneType) String() string {
	switch l {
	case LaneMajor:
		return "Major"
	case LaneMinor:
		return "Minor"
	case LaneRestricted:
		return "Restricted"
	default:
		return "Unknown"
	}
}

// JumpLane is one edge of the star-map graph.
type JumpLane struct {
	To   SystemId
	Type JumpLaneType
}

// System is a node of the star map: a hex position, a planet class and
// raw-resource rating feeding the economy engine's GCO formula, and a
// set of outbound jump lanes.
type System struct {
	ID       SystemId
	Coord    HexCoord
	Class    config.PlanetClass
	Resource config.RawResourceRating
	Lanes    []JumpLane
}

// NeighborIDs returns the destination system of every outbound lane, in
// the deterministic order they were added (ascending lane-creation
// order, which internal/starmap assigns lexicographically on
// destination ID to satisfy the shortest-path tie-break rule).
func (s *System) NeighborIDs() []SystemId {
	ids := make([]SystemId, len(s.Lanes))
	for i, l := range s.Lanes {
		ids[i] = l.To
	}
	return ids
}

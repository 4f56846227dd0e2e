package starmap

import (
	"fmt"
	"sort"

	"github.com/greenm01/ec4x/internal/config"
	"github.com/greenm01/ec4x/internal/detrand"
	"github.com/greenm01/ec4x/internal/ec4xerr"
	"github.com/greenm01/ec4x/internal/model"
	"github.com/greenm01/ec4x/internal/state"
)

// classCycle and resourceCycle give every ring a deterministic,
// varied-but-reproducible planet class / resource rating without
// drawing extra random numbers that would shift downstream rolls —
// picking by (ring, index) keeps generation stable if later code adds
// rolls elsewhere in the same seeded stream.
var classCycle = []config.PlanetClass{
	config.PlanetEden, config.PlanetLush, config.PlanetBenign, config.PlanetHarsh,
	config.PlanetHostile, config.PlanetDesolate, config.PlanetExtreme,
}

var resourceCycle = []config.RawResourceRating{
	config.ResourceAverage, config.ResourceRich, config.ResourcePoor,
	config.ResourceVeryRich, config.ResourceVeryPoor,
}

// Generate builds a procedural star map for playerCount houses from a
// seed, in a concentric-ring layout: one homeworld ring position per
// player at a fixed radius, with rings of neutral systems in between
// and beyond. The result is deterministic for the same
// (playerCount, seed) pair (spec.md C4).
//
// Homeworlds are placed at equally spaced angular positions on the
// homeworld ring so every player starts with an equal count of adjacent
// lanes (spec.md C4 "homeworld placement yields equal lane counts per
// player").
func Generate(c *state.Container, playerCount int, seed int64) ([]model.SystemId, error) {
	if playerCount < 2 || playerCount > 12 {
		return nil, ec4xerr.Config("starmap.Generate", "player count %d out of [2,12]", playerCount)
	}

	const homeworldRing = 3
	const outerRings = 5

	rng := detrand.Source(seed, "starmap", fmt.Sprintf("%d", playerCount))

	type built struct {
		id    model.SystemId
		coord model.HexCoord
	}
	var all []built
	nextIdx := 0

	addRing := func(radius int) []built {
		coords := ring(model.HexCoord{}, radius)
		out := make([]built, 0, len(coords))
		for _, coord := range coords {
			id := model.SystemId(fmt.Sprintf("S-%04d", nextIdx))
			nextIdx++
			cls := classCycle[rng.Intn(len(classCycle))]
			res := resourceCycle[rng.Intn(len(resourceCycle))]
			sys := &model.System{ID: id, Coord: coord, Class: cls, Resource: res}
			c.AddSystem(sys)
			out = append(out, built{id: id, coord: coord})
		}
		all = append(all, out...)
		return out
	}

	// Core system at the origin (a neutral hub, never a homeworld).
	addRing(0)
	for radius := 1; radius < homeworldRing; radius++ {
		addRing(radius)
	}
	homeworldCoords := addRing(homeworldRing)
	for radius := homeworldRing + 1; radius <= homeworldRing+outerRings; radius++ {
		addRing(radius)
	}

	// Connect every system to its graph-adjacent hex neighbors that
	// exist on the map; lane type depends on the source system's ring
	// radius (Major inside the homeworld ring, Minor on it, Restricted
	// beyond it), with
	// lanes added in lexicographic destination order so ShortestPath's
	// tie-break and this generator agree on "first" discovered edge.
	coordIndex := make(map[model.HexCoord]model.SystemId, len(all))
	for _, b := range all {
		coordIndex[b.coord] = b.id
	}
	neighborDirs := [6]model.HexCoord{
		{Q: 1, R: 0}, {Q: 1, R: -1}, {Q: 0, R: -1},
		{Q: -1, R: 0}, {Q: -1, R: 1}, {Q: 0, R: 1},
	}
	for _, b := range all {
		var destIDs []model.SystemId
		for _, d := range neighborDirs {
			nc := model.HexCoord{Q: b.coord.Q + d.Q, R: b.coord.R + d.R}
			if nid, ok := coordIndex[nc]; ok {
				destIDs = append(destIDs, nid)
			}
		}
		sort.Slice(destIDs, func(i, j int) bool { return destIDs[i] < destIDs[j] })

		sys, _ := c.GetSystem(b.id)
		for _, nid := range destIDs {
			laneType := model.LaneMajor
			switch {
			case hexDistance(b.coord, model.HexCoord{}) == homeworldRing:
				laneType = model.LaneMinor
			case hexDistance(b.coord, model.HexCoord{}) > homeworldRing:
				laneType = model.LaneRestricted
			}
			sys.Lanes = append(sys.Lanes, model.JumpLane{To: nid, Type: laneType})
		}
	}

	// Evenly spaced homeworld assignment: pick playerCount positions
	// from the homeworld ring at equal angular strides so each house
	// gets a symmetric, equal-lane-count start.
	if playerCount > len(homeworldCoords) {
		return nil, ec4xerr.Config("starmap.Generate", "homeworld ring has %d slots, need %d", len(homeworldCoords), playerCount)
	}
	stride := len(homeworldCoords) / playerCount
	homeworlds := make([]model.SystemId, playerCount)
	for i := 0; i < playerCount; i++ {
		homeworlds[i] = homeworldCoords[(i*stride)%len(homeworldCoords)].id
	}

	return homeworlds, nil
}

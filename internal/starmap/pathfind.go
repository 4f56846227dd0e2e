package starmap

import (
	"sort"

	"github.com/greenm01/ec4x/internal/model"
	"github.com/greenm01/ec4x/internal/state"
)

// ShortestPath returns a minimum-jump route from `from` to `to`
// inclusive of both endpoints, or (nil, false) if no route exists. Ties
// between equally short routes are broken lexicographically on system
// ID at every expansion step, so the result is deterministic across
// runs regardless of map iteration order (spec.md C4).
func ShortestPath(c *state.Container, from, to model.SystemId) ([]model.SystemId, bool) {
	if from == to {
		return []model.SystemId{from}, true
	}

	prev := map[model.SystemId]model.SystemId{from: ""}
	frontier := []model.SystemId{from}

	for len(frontier) > 0 {
		var next []model.SystemId
		for _, cur := range frontier {
			sys, ok := c.GetSystem(cur)
			if !ok {
				continue
			}
			neighbors := sys.NeighborIDs()
			sort.Slice(neighbors, func(i, j int) bool { return neighbors[i] < neighbors[j] })
			for _, n := range neighbors {
				if _, seen := prev[n]; seen {
					continue
				}
				prev[n] = cur
				if n == to {
					return reconstruct(prev, from, to), true
				}
				next = append(next, n)
			}
		}
		sort.Slice(next, func(i, j int) bool { return next[i] < next[j] })
		frontier = next
	}
	return nil, false
}

func reconstruct(prev map[model.SystemId]model.SystemId, from, to model.SystemId) []model.SystemId {
	var rev []model.SystemId
	for cur := to; ; {
		rev = append(rev, cur)
		if cur == from {
			break
		}
		cur = prev[cur]
	}
	path := make([]model.SystemId, len(rev))
	for i, id := range rev {
		path[len(rev)-1-i] = id
	}
	return path
}

// Distance returns the jump count between two systems, or -1 if
// unreachable (the engine's stand-in for infinity, since SystemId-keyed
// integer math elsewhere treats -1 as "no route" explicitly rather than
// relying on a sentinel large int).
func Distance(c *state.Container, from, to model.SystemId) int {
	path, ok := ShortestPath(c, from, to)
	if !ok {
		return -1
	}
	return len(path) - 1
}

// NearestFriendly returns the closest system (by jump count) among
// candidates that is reachable from `from`, breaking ties on ascending
// SystemId. Used by the retreat rule (spec.md §4.6).
func NearestFriendly(c *state.Container, from model.SystemId, candidates []model.SystemId) (model.SystemId, bool) {
	best := model.SystemId("")
	bestDist := -1
	found := false

	ids := append([]model.SystemId(nil), candidates...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, cand := range ids {
		d := Distance(c, from, cand)
		if d < 0 {
			continue
		}
		if !found || d < bestDist {
			best, bestDist, found = cand, d, true
		}
	}
	return best, found
}

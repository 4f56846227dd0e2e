// Package starmap builds and queries the hex-coordinate jump-lane graph
// of spec.md C4: generation, shortest-path, and distance queries.
package starmap

import "github.com/greenm01/ec4x/internal/model"

// hexDistance returns the number of hex steps between two axial
// coordinates (standard axial-hex distance formula).
func hexDistance(a, b model.HexCoord) int {
	dq := a.Q - b.Q
	dr := a.R - b.R
	ds := (-a.Q - a.R) - (-b.Q - b.R)
	return maxInt(absInt(dq), absInt(dr), absInt(ds)) / 1
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func maxInt(xs ...int) int {
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

// ring returns every axial coordinate on the ring of the given radius
// around the origin, in a fixed angular order — used by Generate for a
// deterministic concentric-ring layout.
func ring(center model.HexCoord, radius int) []model.HexCoord {
	if radius == 0 {
		return []model.HexCoord{center}
	}

	// The six axial direction vectors, in the fixed order used to walk
	// each ring's edges.
	dirs := [6]model.HexCoord{
		{Q: 1, R: 0}, {Q: 1, R: -1}, {Q: 0, R: -1},
		{Q: -1, R: 0}, {Q: -1, R: 1}, {Q: 0, R: 1},
	}

	coords := make([]model.HexCoord, 0, 6*radius)
	cur := model.HexCoord{Q: center.Q + dirs[4].Q*radius, R: center.R + dirs[4].R*radius}

	for side := 0; side < 6; side++ {
		for step := 0; step < radius; step++ {
			coords = append(coords, cur)
			cur = model.HexCoord{Q: cur.Q + dirs[side].Q, R: cur.R + dirs[side].R}
		}
	}
	return coords
}

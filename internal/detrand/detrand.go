// Package detrand derives seeded math/rand sources from structural keys
// so that every dice roll in the engine is reproducible: replaying the
// same (turn, subsystem tag, structural keys) always draws the same
// sequence (spec.md §5). No package outside this one calls math/rand
// directly against a process-global source.
package detrand

import (
	"hash/fnv"
	"math/rand"
	"strconv"
	"strings"
)

// Source derives a *rand.Rand from a root seed plus a sequence of
// structural key parts (e.g. turn, system id, round index, side). The
// same parts in the same order always yield the same generator,
// independent of map/slice iteration order elsewhere in the engine.
func Source(rootSeed int64, parts ...string) *rand.Rand {
	h := fnv.New64a()
	_, _ = h.Write([]byte(strconv.FormatInt(rootSeed, 10)))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(strings.Join(parts, "\x1f")))
	seed := int64(h.Sum64())
	return rand.New(rand.NewSource(seed))
}

// RollD rolls a single die with `sides` faces (1..sides inclusive).
func RollD(r *rand.Rand, sides int) int {
	return r.Intn(sides) + 1
}

package fleet

import (
	"github.com/greenm01/ec4x/internal/model"
	"github.com/greenm01/ec4x/internal/starmap"
	"github.com/greenm01/ec4x/internal/state"
)

// nearestReachable is a thin wrapper over starmap.NearestFriendly,
// named for readability at each standing-order call site.
func nearestReachable(c *state.Container, from model.SystemId, candidates []model.SystemId) (model.SystemId, bool) {
	return starmap.NearestFriendly(c, from, candidates)
}

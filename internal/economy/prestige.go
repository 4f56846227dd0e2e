package economy

import (
	"github.com/greenm01/ec4x/internal/config"
	"github.com/greenm01/ec4x/internal/event"
	"github.com/greenm01/ec4x/internal/model"
	"github.com/greenm01/ec4x/internal/state"
)

// ApplyPrestigeDelta adjusts a house's prestige, clamped to the
// [-10000, 10000] bound of invariant I5, and tracks consecutive
// negative-prestige turns for the DefensiveCollapse transition (spec.md
// §4.7 step 10).
func ApplyPrestigeDelta(h *model.House, delta int) {
	h.Prestige += delta
	if h.Prestige > 10000 {
		h.Prestige = 10000
	}
	if h.Prestige < -10000 {
		h.Prestige = -10000
	}

	if h.Prestige < 0 {
		h.ConsecutiveNegativePrestigeTurns++
	} else {
		h.ConsecutiveNegativePrestigeTurns = 0
	}
}

// ZeroSumPrestigeTransfer emits the attacker/defender pair for a
// zero-sum combat outcome (spec.md §4.6 "colony seized: attacker +X,
// defender -X"; invariant I8), applying both deltas and logging one
// event whose two deltas sum to zero.
func ZeroSumPrestigeTransfer(c *state.Container, log *event.Log, turn int, gainer, loser model.HouseId, amount int) {
	gh, gok := c.GetHouse(gainer)
	lh, lok := c.GetHouse(loser)
	if gok {
		ApplyPrestigeDelta(gh, amount)
	}
	if lok {
		ApplyPrestigeDelta(lh, -amount)
	}
	log.Emit(turn, event.KindPrestigeChanged, map[string]any{
		"gainer": string(gainer), "loser": string(loser), "amount": amount,
	})
}

// CheckElimination applies spec.md §4.7 step 10: a house with zero
// colonies and no marine-carrying transport is eliminated outright; a
// house whose prestige is at or below the configured collapse threshold
// enters DefensiveCollapse and is eliminated once that status has
// persisted for the configured number of turns.
func CheckElimination(reg *config.Registry, c *state.Container, log *event.Log, turn int, h *model.House) {
	if h.Eliminated {
		return
	}

	if len(c.ColoniesOwnedBy(h.ID)) == 0 && !hasMarineTransport(c, h.ID) {
		eliminate(log, turn, h)
		return
	}

	if h.Prestige <= reg.PrestigeCollapseThreshold {
		if h.Status != model.HouseDefensiveCollapse {
			h.Status = model.HouseDefensiveCollapse
			h.ConsecutiveNegativePrestigeTurns = 0
		} else {
			h.ConsecutiveNegativePrestigeTurns++
			if h.ConsecutiveNegativePrestigeTurns >= reg.PrestigeCollapseTurns {
				eliminate(log, turn, h)
			}
		}
	} else if h.Status == model.HouseDefensiveCollapse {
		h.Status = model.HouseActive
	}
}

func eliminate(log *event.Log, turn int, h *model.House) {
	h.Eliminated = true
	h.Status = model.HouseEliminated
	log.Emit(turn, event.KindHouseEliminated, map[string]any{"house": string(h.ID)})
}

func hasMarineTransport(c *state.Container, house model.HouseId) bool {
	for _, fid := range c.FleetsOwnedBy(house) {
		f, ok := c.GetFleet(fid)
		if !ok {
			continue
		}
		for _, sqid := range f.Squadrons {
			sq, ok := c.GetSquadron(sqid)
			if ok && sq.State != model.Destroyed && sq.Cargo.Marines > 0 {
				return true
			}
		}
	}
	return false
}

// CheckVictory implements spec.md §4.7 step 11: prestige past the
// configured threshold, or exactly one active house remaining, or the
// turn limit reached.
func CheckVictory(reg *config.Registry, c *state.Container, log *event.Log, turn, turnLimit int) (model.HouseId, bool) {
	active := c.ActiveHouseIDsSorted()

	for _, id := range active {
		h, ok := c.GetHouse(id)
		if ok && h.Prestige >= reg.VictoryPrestigeThreshold {
			log.Emit(turn, event.KindVictory, map[string]any{"house": string(id), "reason": "prestige_threshold"})
			return id, true
		}
	}

	if len(active) == 1 {
		log.Emit(turn, event.KindVictory, map[string]any{"house": string(active[0]), "reason": "last_house_standing"})
		return active[0], true
	}

	if turnLimit > 0 && turn >= turnLimit && len(active) > 0 {
		leader := active[0]
		leaderHouse, _ := c.GetHouse(leader)
		best := 0
		if leaderHouse != nil {
			best = leaderHouse.Prestige
		}
		for _, id := range active[1:] {
			h, ok := c.GetHouse(id)
			if ok && h.Prestige > best {
				best = h.Prestige
				leader = id
			}
		}
		log.Emit(turn, event.KindVictory, map[string]any{"house": string(leader), "reason": "turn_limit"})
		return leader, true
	}

	return "", false
}

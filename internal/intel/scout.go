package intel

import (
	"math/rand"

	"github.com/greenm01/ec4x/internal/config"
	"github.com/greenm01/ec4x/internal/event"
	"github.com/greenm01/ec4x/internal/model"
	"github.com/greenm01/ec4x/internal/state"
)

// EffectiveELI scales a scout's base ELI (its TechLevel) by the
// configured mesh bonus table for its mesh count (spec.md §4.8 "Mesh
// bonus to ELI scales with mesh_count").
func EffectiveELI(reg *config.Registry, s *model.SpyScout) float64 {
	bonus := reg.MeshELIBonus[s.MeshCount]
	return float64(s.TechLevel) + bonus
}

// DetectionRoll resolves one detection check at an intermediate or
// target system: a d20 draw, modified by (defender CIC - scout ELI),
// against the configured base detection chance. Returns true if the
// scout is detected (spec.md §4.8 "a detection roll consults ELI vs.
// defender CIC").
func DetectionRoll(reg *config.Registry, r *rand.Rand, eli float64, defenderCIC int) bool {
	roll := r.Intn(20) + 1
	threshold := reg.DetectionBaseChance*20 + float64(defenderCIC) - eli
	return float64(roll) <= threshold
}

// AdvanceScout steps a scout one jump along its precomputed path,
// rolling detection at every intermediate system and at the target; on
// detection the scout is destroyed and a diplomatic incident is
// signaled via the returned bool (spec.md §4.8, §8 I7: a ScoutLocked
// fleet's scout squadrons no longer exist anywhere once consumed).
func AdvanceScout(c *state.Container, reg *config.Registry, log *event.Log, turn int, r *rand.Rand, s *model.SpyScout, defenderCIC int) (detected bool) {
	if s.PathIndex >= len(s.Path) {
		return false
	}

	s.Location = s.Path[s.PathIndex]
	s.PathIndex++

	eli := EffectiveELI(reg, s)
	if DetectionRoll(reg, r, eli, defenderCIC) {
		s.State = model.ScoutDetected
		c.RemoveScout(s.ID)
		log.Emit(turn, event.KindScoutDetected, map[string]any{
			"scout": string(s.ID), "owner": string(s.Owner), "system": string(s.Location),
		})
		return true
	}

	if s.PathIndex >= len(s.Path) {
		s.State = model.ScoutOnMission
	}
	return false
}

// GatherReport appends a perfect-quality report to the owning house's
// intel database once a scout reaches its target undetected (spec.md
// §4.8 "On success, a perfect-quality intel report is appended").
func GatherReport(h *model.House, kind model.ReportKind, subject model.SystemId, turn int, payload map[string]any) {
	h.Intel.Add(model.IntelReport{
		Kind: kind, Subject: subject, GatheredTurn: turn,
		Quality: model.QualityPerfect, Payload: payload,
	})
}

package combat

import (
	"sort"

	"github.com/greenm01/ec4x/internal/model"
)

// ApplySquadronDamage propagates `hits` incoming damage across a side's
// squadrons, in ascending-ID order for determinism. A squadron goes
// Undamaged -> Crippled on the first hit meeting its defense threshold;
// it only goes Crippled -> Destroyed once every other squadron on its
// side is already crippled (the destruction-protection rule) or a
// critical hit landed (spec.md §4.6). Returns the hits left over after
// every squadron on the side has either absorbed or been destroyed by
// them, the IDs crippled, and the IDs destroyed this call.
func ApplySquadronDamage(squadrons []*model.Squadron, hits int, critical bool) (remaining int, crippled, destroyed []model.SquadronId) {
	ordered := append([]*model.Squadron(nil), squadrons...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	for _, sq := range ordered {
		if hits <= 0 {
			break
		}
		if sq.State == model.Destroyed {
			continue
		}

		threshold := sq.BaseDefenseStrength
		if threshold <= 0 {
			threshold = 1
		}

		switch sq.State {
		case model.Undamaged:
			if critical || hits >= threshold {
				hits -= threshold
				sq.State = model.Crippled
				crippled = append(crippled, sq.ID)
			} else {
				hits = 0
			}
		case model.Crippled:
			if critical || allOthersCrippledOrDestroyed(ordered, sq.ID) {
				hits -= threshold / 2
				sq.State = model.Destroyed
				destroyed = append(destroyed, sq.ID)
			} else {
				hits = 0
			}
		}
	}

	if hits < 0 {
		hits = 0
	}
	return hits, crippled, destroyed
}

func allOthersCrippledOrDestroyed(squadrons []*model.Squadron, except model.SquadronId) bool {
	for _, sq := range squadrons {
		if sq.ID == except {
			continue
		}
		if sq.State == model.Undamaged {
			return false
		}
	}
	return true
}

// PlanetaryPropagation is the fixed damage order for the Planetary
// theater: Squadrons -> Batteries -> Ground Forces -> Industrial Units
// -> Population Units (spec.md §4.6).
func PlanetaryPropagation(col *model.Colony, squadrons []*model.Squadron, hits int, critical bool) (crippled, destroyed []model.SquadronId) {
	hits, crippled, destroyed = ApplySquadronDamage(squadrons, hits, critical)

	hits = applyToBatteries(col, hits)
	hits = applyToGroundForces(col, hits)
	hits = applyToIndustrialUnits(col, hits)
	applyToPopulationUnits(col, hits)

	return crippled, destroyed
}

func applyToBatteries(col *model.Colony, hits int) int {
	for i := range col.Starbases {
		if hits <= 0 {
			break
		}
		if !col.Starbases[i].Crippled {
			col.Starbases[i].Crippled = true
			hits -= 10
		}
	}
	if hits < 0 {
		hits = 0
	}
	return hits
}

func applyToGroundForces(col *model.Colony, hits int) int {
	if hits <= 0 {
		return 0
	}
	absorbed := col.GroundForces
	if hits < absorbed {
		col.GroundForces -= hits
		return 0
	}
	hits -= absorbed
	col.GroundForces = 0
	return hits
}

func applyToIndustrialUnits(col *model.Colony, hits int) int {
	if hits <= 0 {
		return 0
	}
	if hits < col.IndustrialUnits {
		col.IndustrialUnits -= hits
		return 0
	}
	hits -= col.IndustrialUnits
	col.IndustrialUnits = 0
	return hits
}

func applyToPopulationUnits(col *model.Colony, hits int) {
	if hits <= 0 {
		return
	}
	if hits < col.PopulationUnits {
		col.PopulationUnits -= hits
		return
	}
	col.PopulationUnits = 0
}

package economy

import (
	"github.com/greenm01/ec4x/internal/config"
	"github.com/greenm01/ec4x/internal/model"
)

// TaxTierDelta returns the prestige delta a house's current tax rate
// earns or costs this turn, per the tiered table of spec.md §4.7
// "Tax policy".
func TaxTierDelta(reg *config.Registry, rate int) int {
	for _, tier := range reg.TaxTiers {
		if rate >= tier.MinRate && rate <= tier.MaxRate {
			return tier.PrestigeDelta
		}
	}
	return 0
}

// RollingAverageDelta applies the same tier table against a house's
// 6-turn rolling average tax rate, the second penalty source spec.md
// §4.7 names ("Running 6-turn average also drives a penalty tier").
func RollingAverageDelta(reg *config.Registry, h *model.House) int {
	avg := int(h.TaxHistory.Average())
	return TaxTierDelta(reg, avg)
}

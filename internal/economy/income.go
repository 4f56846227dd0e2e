package economy

import (
	"strconv"

	"github.com/greenm01/ec4x/internal/config"
	"github.com/greenm01/ec4x/internal/detrand"
	"github.com/greenm01/ec4x/internal/event"
	"github.com/greenm01/ec4x/internal/model"
	"github.com/greenm01/ec4x/internal/state"
)

// ResearchAllocations is the per-house, per-field PP allocation
// requested for this turn's packet, keyed by house (spec.md §6
// "research_allocation").
type ResearchAllocations map[string]map[config.TechField]int

// EspionageInvestment is one house's requested EBP/CIP purchase for
// this turn, carrying the treasury snapshot the packet was built
// against so the over-investment threshold (5% of that turn's budget)
// can be computed without the economy package depending on
// internal/command (spec.md §4.7 step 2, §6 "treasury_snapshot").
type EspionageInvestment struct {
	EBP, CIP    int
	TurnBudget  int
}

// EspionageInvestments is the per-house purchase request for this
// turn, keyed by house.
type EspionageInvestments map[string]EspionageInvestment

// SalvageOrder names a fleet's completed Salvage mission: the house to
// credit and the system its wreckage was recovered from (spec.md §4.7
// step 6 "also handled in Income, not Command").
type SalvageOrder struct {
	House  model.HouseId
	System model.SystemId
}

// RunIncomePhase executes the fixed twelve-step ordering of spec.md
// §4.7 for every active house, in ascending house-ID order. turnLimit
// of 0 disables the turn-limit victory condition. wreckageBySystem is
// this turn's salvageable tonnage per system, as tallied by the
// Conflict Phase's combat reports; salvageOrders lists every fleet
// whose Salvage command completed this turn.
func RunIncomePhase(c *state.Container, reg *config.Registry, log *event.Log, turn int, rootSeed int64, research ResearchAllocations, espionage EspionageInvestments, salvageOrders []SalvageOrder, wreckageBySystem map[model.SystemId]int, turnLimit int) {
	// Steps 1-2: ongoing-effect timers and EBP/CIP purchase happen per
	// house before production, since espionage effects can suppress
	// this turn's GCO (e.g. SRP/NCV reduction).
	for _, hid := range c.ActiveHouseIDsSorted() {
		h, ok := c.GetHouse(hid)
		if !ok {
			continue
		}
		tickEspionageEffects(h)
		if inv, ok := espionage[string(hid)]; ok {
			purchaseEspionage(reg, log, turn, h, inv)
		}
	}

	// Step 6: salvage execution, before maintenance so the converted PP
	// is available to offset this turn's upkeep like any other income.
	runSalvage(reg, c, log, turn, salvageOrders, wreckageBySystem)

	// Step 3: base production, per colony.
	for _, hid := range c.ActiveHouseIDsSorted() {
		h, ok := c.GetHouse(hid)
		if !ok {
			continue
		}
		for _, cid := range c.ColoniesOwnedBy(hid) {
			col, ok := c.GetColony(cid)
			if !ok {
				continue
			}
			sys, ok := c.GetSystem(col.ID)
			if !ok {
				continue
			}

			// Step 4: blockade application — GCO reduces this turn, no
			// delay, plus the configured prestige penalty.
			if col.Blockaded {
				ApplyPrestigeDelta(h, -reg.BlockadePrestigePenalty)
				log.Emit(turn, event.KindBlockadeApplied, map[string]any{"colony": string(col.ID)})
			}

			gco := GCO(reg, col, sys, h.TechLevel(config.TechEL))
			ncv := NCV(gco, effectiveTaxRate(col, h))

			// Step 8: resource application — write treasuries. The
			// colony's production is not recorded on the colony.
			h.Treasury += int(ncv.IntPart())
		}

		// Step 5: maintenance deduction.
		h.Treasury -= Maintenance(reg, c, hid)

		// Step 7: capacity enforcement, post IU-loss.
		EnforceHouseCapacity(c, reg, log, turn, h)
		for _, cid := range c.ColoniesOwnedBy(hid) {
			col, ok := c.GetColony(cid)
			if ok {
				EnforceFighterCapacity(c, reg, log, turn, h, col)
			}
		}

		// Step 9: tax-policy prestige.
		ApplyPrestigeDelta(h, TaxTierDelta(reg, h.TaxRate))
		ApplyPrestigeDelta(h, RollingAverageDelta(reg, h))
		h.TaxHistory.Push(h.TaxRate)

		// Research allocation and breakthroughs.
		if alloc, ok := research[string(hid)]; ok {
			ApplyResearch(reg, h, log, turn, alloc)
		}
		r := detrand.Source(rootSeed, "research", string(hid), strconv.Itoa(turn))
		RollBreakthrough(reg, h, r, turn, log)

		// Step 10: elimination checks.
		CheckElimination(reg, c, log, turn, h)
	}

	// Step 11: victory check.
	CheckVictory(reg, c, log, turn, turnLimit)
}

// effectiveTaxRate returns a colony's override rate if set, else the
// house's standing rate (spec.md §3 "TaxRateOverride").
func effectiveTaxRate(col *model.Colony, h *model.House) int {
	if col.TaxRateOverride != nil {
		return *col.TaxRateOverride
	}
	return h.TaxRate
}

// tickEspionageEffects decrements every ongoing effect's counter and
// drops expired ones (spec.md §4.7 step 1).
func tickEspionageEffects(h *model.House) {
	live := h.OngoingEffects[:0:0]
	for _, eff := range h.OngoingEffects {
		eff.TurnsRemaining--
		if eff.TurnsRemaining > 0 {
			live = append(live, eff)
		}
	}
	h.OngoingEffects = live
}

// purchaseEspionage spends this turn's requested EBP/CIP investment at
// the configured 40 PP/point rate, then penalizes prestige once the
// spend exceeds the configured fraction of the turn's treasury
// snapshot: 1 prestige per 1% over, per point over the threshold
// percent (spec.md §4.7 step 2).
func purchaseEspionage(reg *config.Registry, log *event.Log, turn int, h *model.House, inv EspionageInvestment) {
	points := inv.EBP + inv.CIP
	if points <= 0 {
		return
	}

	cost := points * reg.EBPCIPCostPerPoint
	h.Treasury -= cost
	h.Espionage.EBP += inv.EBP
	h.Espionage.CIP += inv.CIP

	log.Emit(turn, event.KindEspionagePurchase, map[string]any{
		"house": string(h.ID), "ebp": inv.EBP, "cip": inv.CIP, "cost": cost,
	})

	threshold := int(float64(inv.TurnBudget) * reg.EBPCIPOverInvestThresholdPct)
	if cost <= threshold {
		return
	}
	overPct := 100
	if inv.TurnBudget > 0 {
		overPct = ((cost - threshold) * 100) / inv.TurnBudget
	}
	ApplyPrestigeDelta(h, -overPct*reg.EBPCIPOverInvestPenaltyPerPercent)
}

// runSalvage converts every completed Salvage mission's share of its
// system's wreckage into PP, crediting the issuing house's treasury
// (spec.md §4.7 step 6). Wreckage is tallied fresh each turn from that
// turn's combat losses (internal/turn), so a fleet can only salvage
// what was destroyed there this same turn.
func runSalvage(reg *config.Registry, c *state.Container, log *event.Log, turn int, orders []SalvageOrder, wreckageBySystem map[model.SystemId]int) {
	for _, ord := range orders {
		tonnage := wreckageBySystem[ord.System]
		if tonnage <= 0 {
			continue
		}
		h, ok := c.GetHouse(ord.House)
		if !ok {
			continue
		}
		pp := Salvage(tonnage, reg.SalvagePPPerTon)
		h.Treasury += pp
		wreckageBySystem[ord.System] = 0
		log.Emit(turn, event.KindSalvageCompleted, map[string]any{
			"house": string(ord.House), "system": string(ord.System), "pp": pp,
		})
	}
}

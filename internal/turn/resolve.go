// Package turn implements spec.md C10: the single public ResolveTurn
// entry point and its fixed Conflict -> Income -> Command -> Maintenance
// phase ordering. The resolver is single-threaded and deterministic
// end-to-end (spec.md §5); every random draw a phase needs is derived
// from the turn's root seed via internal/detrand.
package turn

import (
	"sort"
	"strconv"

	"golang.org/x/sync/singleflight"

	"github.com/greenm01/ec4x/internal/command"
	"github.com/greenm01/ec4x/internal/combat"
	"github.com/greenm01/ec4x/internal/config"
	"github.com/greenm01/ec4x/internal/detrand"
	"github.com/greenm01/ec4x/internal/ec4xerr"
	"github.com/greenm01/ec4x/internal/economy"
	"github.com/greenm01/ec4x/internal/event"
	"github.com/greenm01/ec4x/internal/fleet"
	"github.com/greenm01/ec4x/internal/intel"
	"github.com/greenm01/ec4x/internal/model"
	"github.com/greenm01/ec4x/internal/state"
)

// Result is what one ResolveTurn call returns: the mutated container
// (resolution is in place, but callers should treat the returned
// pointer as the new authoritative state), the events emitted this
// turn, and any rejections recorded against submitted commands.
type Result struct {
	State       *state.Container
	Events      []event.Event
	Rejections  []command.Rejection
}

// admission enforces spec.md §5 "Admission control": the host must
// reject a second resolve_turn invocation on the same game until the
// first returns. Keyed by an opaque game identifier the caller chooses
// (e.g. the game's persisted ID), singleflight.Group collapses
// concurrent callers onto one in-flight resolution rather than racing
// the state container.
var admission singleflight.Group

// ResolveTurn runs one full turn: Conflict, Income, Command, Maintenance,
// in that fixed order (spec.md §4.9), then verifies every state
// invariant (spec.md §8) before returning. An IntegrityError abort
// leaves the container's pre-turn Turn number not yet advanced.
func ResolveTurn(gameID string, c *state.Container, reg *config.Registry, turnLimit int, seed int64, commandsByHouse map[model.HouseId]*command.Packet) (*Result, error) {
	v, err, _ := admission.Do(gameID, func() (interface{}, error) {
		return resolveLocked(c, reg, turnLimit, seed, commandsByHouse)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Result), nil
}

func resolveLocked(c *state.Container, reg *config.Registry, turnLimit int, seed int64, commandsByHouse map[model.HouseId]*command.Packet) (*Result, error) {
	log := event.NewLog()
	turn := c.Turn

	var rejections []command.Rejection

	salvageOrders, wreckage := runConflictPhase(c, reg, log, turn, seed)
	economy.RunIncomePhase(c, reg, log, turn, seed, collectResearch(commandsByHouse),
		collectEspionage(commandsByHouse), salvageOrders, wreckage, turnLimit)
	rejections = append(rejections, runCommandPhase(c, log, turn, commandsByHouse)...)
	runMaintenancePhase(c, reg, log, turn)

	c.Rebuild()
	if err := state.CheckAll(c); err != nil {
		return nil, ec4xerr.Integrity("turn.ResolveTurn", "post-turn invariant check failed: %v", err)
	}

	c.Turn = turn + 1

	return &Result{State: c, Events: log.All(), Rejections: rejections}, nil
}

// runConflictPhase covers §4.9 phase 1 in full: move fleets one jump
// (step 1c lives here since it is this phase's arrival-filtering
// precondition), resolve combat theaters per contested system and
// transfer prestige on any seizure, flag/clear blockades (step 3),
// found colonies for arrived Colonize missions (step 5), advance scout
// missions and starbase surveillance (steps 6a/6a.5/6c), spend
// accumulated EBP on espionage actions (step 6b), and finally close out
// every command that reached Executing. Returns the Salvage orders and
// per-system wreckage tallied this turn, for the Income Phase to
// convert into PP (spec.md §4.7 step 6).
func runConflictPhase(c *state.Container, reg *config.Registry, log *event.Log, turn int, seed int64) ([]economy.SalvageOrder, map[model.SystemId]int) {
	for _, fid := range allFleetIDsSorted(c) {
		f, ok := c.GetFleet(fid)
		if !ok {
			continue
		}
		if f.Mission == model.MissionQueued || f.Mission == model.MissionTraveling {
			fleet.StepMovement(c, f)
		}
	}

	wreckage := make(map[model.SystemId]int)
	for _, sys := range c.AllSystemIDsSorted() {
		var priorOwner model.HouseId
		if col, ok := c.GetColony(sys); ok {
			priorOwner = col.Owner
		}

		rep := combat.Resolve(c, reg, log, turn, sys, seed)
		if rep == nil {
			continue
		}
		for _, ids := range rep.Destroyed {
			wreckage[sys] += len(ids) * reg.SalvageTonnagePerDestroyedSquadron
		}
		if rep.ColonySeized {
			log.Emit(turn, event.KindColonySeized, map[string]any{
				"system": string(sys), "seized_by": string(rep.SeizedBy),
			})
			if priorOwner != "" && priorOwner != rep.SeizedBy {
				economy.ZeroSumPrestigeTransfer(c, log, turn, rep.SeizedBy, priorOwner, reg.PrestigeColonySeized)
			}
		}
	}

	// Step 3: blockade bookkeeping — set or clear every colony's flag
	// fresh each turn from this turn's post-combat presence, so a
	// blockade lifts the moment the blockading fleet is gone or departs.
	for _, sys := range c.AllSystemIDsSorted() {
		if col, ok := c.GetColony(sys); ok {
			col.Blockaded = combat.BlockadeActive(c, sys)
		}
	}

	// Step 5: colonization attempts.
	runColonization(c, log, turn)

	// Steps 6a/6a.5: scout-mission resolution.
	runScoutMissions(c, reg, log, turn, seed)

	// Step 6c: starbase surveillance.
	runStarbaseSurveillance(c, log, turn)

	// Step 6b: EBP-based espionage.
	runEspionageActions(c, reg, log, turn, seed)

	var salvageOrders []economy.SalvageOrder
	for _, fid := range allFleetIDsSorted(c) {
		f, ok := c.GetFleet(fid)
		if !ok {
			continue
		}
		if f.Mission == model.MissionExecuting {
			if f.CurrentCommand != nil && f.CurrentCommand.Kind == model.CmdSalvage {
				salvageOrders = append(salvageOrders, economy.SalvageOrder{House: f.Owner, System: f.Location})
			}
			fleet.CompleteCommand(f)
		}
	}

	return salvageOrders, wreckage
}

// runColonization implements §4.9 step 5: a fleet whose Colonize
// command has arrived founds a new colony at its location, seeded from
// the colonists its lead squadron is carrying, and consumes that
// cargo. A target that already hosts a colony is silently skipped — the
// command simply has nothing left to do there.
func runColonization(c *state.Container, log *event.Log, turn int) {
	for _, fid := range allFleetIDsSorted(c) {
		f, ok := c.GetFleet(fid)
		if !ok || f.Mission != model.MissionExecuting {
			continue
		}
		if f.CurrentCommand == nil || f.CurrentCommand.Kind != model.CmdColonize {
			continue
		}
		if _, exists := c.GetColony(f.Location); exists {
			continue
		}
		if len(f.Squadrons) == 0 {
			continue
		}
		lead, ok := c.GetSquadron(f.Squadrons[0])
		if !ok || lead.Cargo.Colonists <= 0 {
			continue
		}

		col := model.NewColony(f.Location, f.Owner, lead.Cargo.Colonists)
		lead.Cargo.Colonists = 0
		c.AddColony(col)
		log.Emit(turn, event.KindColonyEstablished, map[string]any{
			"system": string(f.Location), "house": string(f.Owner),
		})
	}
}

// runScoutMissions advances §4.9 steps 6a/6a.5: every traveling scout
// steps one jump, rolling detection against the CIC of whatever colony
// sits at its next hop; on a clean arrival it gathers its report and
// is done (spec.md §4.8 — a consumed scout's squadrons never return,
// so there is nothing left to advance once the report lands).
func runScoutMissions(c *state.Container, reg *config.Registry, log *event.Log, turn int, seed int64) {
	for _, sid := range allScoutIDsSorted(c) {
		s, ok := c.GetScout(sid)
		if !ok || s.State != model.ScoutTraveling {
			continue
		}

		defenderCIC := 0
		if s.PathIndex < len(s.Path) {
			if col, ok := c.GetColony(s.Path[s.PathIndex]); ok {
				if defender, ok := c.GetHouse(col.Owner); ok {
					defenderCIC = defender.TechLevel(config.TechCIC)
				}
			}
		}

		r := detrand.Source(seed, "scout", string(sid), strconv.Itoa(turn))
		if intel.AdvanceScout(c, reg, log, turn, r, s, defenderCIC) {
			continue
		}
		if s.State != model.ScoutOnMission {
			continue
		}

		h, ok := c.GetHouse(s.Owner)
		if !ok {
			continue
		}
		kind := intel.ReportKindName(s.Mission)
		intel.GatherReport(h, kind, s.Location, turn, map[string]any{})
		log.Emit(turn, event.KindIntelGathered, map[string]any{
			"house": string(s.Owner), "system": string(s.Location), "kind": int(kind),
		})
		s.State = model.ScoutReturning
	}
}

// runStarbaseSurveillance implements §4.9 step 6c: every colony with at
// least one starbase passively reports any foreign fleet sitting in its
// system this turn.
func runStarbaseSurveillance(c *state.Container, log *event.Log, turn int) {
	for _, hid := range c.AllHouseIDsSorted() {
		h, ok := c.GetHouse(hid)
		if !ok {
			continue
		}
		for _, cid := range c.ColoniesOwnedBy(hid) {
			col, ok := c.GetColony(cid)
			if !ok || len(col.Starbases) == 0 {
				continue
			}
			var sighted []string
			for _, fid := range c.FleetsInSystem(model.SystemId(cid)) {
				f, ok := c.GetFleet(fid)
				if ok && f.Owner != hid {
					sighted = append(sighted, string(f.Owner))
				}
			}
			if len(sighted) == 0 {
				continue
			}
			h.Intel.Add(model.IntelReport{
				Kind: model.ReportStarbaseSurveillance, Subject: model.SystemId(cid),
				GatheredTurn: turn, Quality: model.QualityPerfect,
				Payload: map[string]any{"fleets": sighted},
			})
			log.Emit(turn, event.KindIntelGathered, map[string]any{
				"house": string(hid), "system": string(cid), "kind": "StarbaseSurveillance",
			})
		}
	}
}

// runEspionageActions implements §4.9 step 6b: a house with enough
// accumulated EBP spends it on a directed action against the rival with
// the highest prestige, producing a Partial-quality colony report when
// the roll clears the target's CIC (spec.md §4.8 espionage/counter-
// intelligence interplay; the packet schema carries only EBP/CIP
// investment, not a per-action target, so the target is chosen
// deterministically rather than left unimplemented).
func runEspionageActions(c *state.Container, reg *config.Registry, log *event.Log, turn int, seed int64) {
	for _, hid := range c.AllHouseIDsSorted() {
		h, ok := c.GetHouse(hid)
		if !ok || h.Espionage.EBP < reg.EspionageActionEBPCost {
			continue
		}
		target, ok := richestRival(c, hid)
		if !ok {
			continue
		}
		h.Espionage.EBP -= reg.EspionageActionEBPCost

		r := detrand.Source(seed, "espionage", string(hid), strconv.Itoa(turn))
		roll := r.Intn(20) + 1
		targetHouse, ok := c.GetHouse(target)
		cic := 0
		if ok {
			cic = targetHouse.TechLevel(config.TechCIC)
		}
		if roll <= cic {
			continue
		}

		colonies := c.ColoniesOwnedBy(target)
		if len(colonies) == 0 {
			continue
		}
		h.Intel.Add(model.IntelReport{
			Kind: model.ReportColony, Subject: model.SystemId(colonies[0]),
			GatheredTurn: turn, Quality: model.QualityPartial,
		})
		log.Emit(turn, event.KindIntelGathered, map[string]any{
			"house": string(hid), "target": string(target), "kind": "Espionage",
		})
	}
}

// richestRival picks the highest-prestige active house other than self,
// a deterministic stand-in target for espionage actions the packet
// schema leaves otherwise untargeted.
func richestRival(c *state.Container, self model.HouseId) (model.HouseId, bool) {
	var best model.HouseId
	bestPrestige := -1 << 62
	found := false
	for _, hid := range c.ActiveHouseIDsSorted() {
		if hid == self {
			continue
		}
		h, ok := c.GetHouse(hid)
		if !ok {
			continue
		}
		if !found || h.Prestige > bestPrestige {
			best, bestPrestige, found = hid, h.Prestige, true
		}
	}
	return best, found
}

// allScoutIDsSorted lists every scout in deterministic order, since
// map iteration order is not stable and combat/intel rolls must be
// reproducible turn-to-turn for the same seed.
func allScoutIDsSorted(c *state.Container) []model.SpyScoutId {
	out := make([]model.SpyScoutId, 0, len(c.Scouts))
	for id := range c.Scouts {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// runCommandPhase covers §4.9 phase 3: validate and commit every
// submitted fleet command, then generate standing-order commands for
// fleets left idle.
func runCommandPhase(c *state.Container, log *event.Log, turn int, commandsByHouse map[model.HouseId]*command.Packet) []command.Rejection {
	var rejections []command.Rejection

	var houses []model.HouseId
	for h := range commandsByHouse {
		houses = append(houses, h)
	}
	sort.Slice(houses, func(i, j int) bool { return houses[i] < houses[j] })

	for _, h := range houses {
		pkt := commandsByHouse[h]
		for _, req := range pkt.FleetCommands {
			rej, err := command.ValidateFleetCommand(c, h, req)
			if err != nil || rej != nil {
				if rej != nil {
					rejections = append(rejections, *rej)
					log.Emit(turn, event.KindCommandRejected, map[string]any{
						"house": string(h), "kind": rej.Kind, "reason": rej.Reason,
					})
				}
				continue
			}

			f, _ := c.GetFleet(req.FleetID)
			cmd := model.FleetCommand{
				Kind: req.Kind, TargetSystem: req.TargetSystem, TargetFleet: req.TargetFleet,
				Priority: req.Priority, IssuedTurn: turn, Threat: command.ThreatLevelFor(req.Kind),
			}
			_ = fleet.AcceptCommand(c, f, cmd)
		}
	}

	for _, fid := range allFleetIDsSorted(c) {
		f, ok := c.GetFleet(fid)
		if !ok || f.Mission != model.MissionIdle {
			continue
		}
		if cmd, ok := fleet.GenerateStandingOrderCommand(c, f); ok {
			_ = fleet.AcceptCommand(c, f, cmd)
		}
	}

	return rejections
}

// runMaintenancePhase covers §4.9 phase 4: advance construction queues
// and rotate tax history (the latter already happens inside Income
// Phase step 9's TaxHistory.Push, since it must read this turn's
// TaxRate before Maintenance runs).
func runMaintenancePhase(c *state.Container, reg *config.Registry, log *event.Log, turn int) {
	for _, hid := range c.AllHouseIDsSorted() {
		for _, cid := range c.ColoniesOwnedBy(hid) {
			col, ok := c.GetColony(cid)
			if !ok {
				continue
			}
			advanceConstruction(col, log, turn)
			advanceTerraform(col)
		}
	}
}

func advanceConstruction(col *model.Colony, log *event.Log, turn int) {
	if col.ActiveConstruction == nil {
		if len(col.PendingQueue) > 0 {
			col.ActiveConstruction = col.PendingQueue[0]
			col.PendingQueue = col.PendingQueue[1:]
		} else {
			return
		}
	}

	ppThisTurn := col.ActiveConstruction.TotalPP
	if col.ActiveConstruction.TurnsRemaining > 0 {
		ppThisTurn = col.ActiveConstruction.TotalPP / maxInt(col.ActiveConstruction.TurnsRemaining, 1)
	}

	if col.ActiveConstruction.Advance(ppThisTurn) {
		log.Emit(turn, event.KindConstructionComplete, map[string]any{
			"colony": string(col.ID), "item": col.ActiveConstruction.Item,
		})
		col.ActiveConstruction = nil
	}
}

func advanceTerraform(col *model.Colony) {
	if col.ActiveTerraform == nil {
		return
	}
	col.ActiveTerraform.TurnsRemaining--
	if col.ActiveTerraform.TurnsRemaining <= 0 {
		col.ActiveTerraform = nil
	}
}

func collectResearch(commandsByHouse map[model.HouseId]*command.Packet) economy.ResearchAllocations {
	out := make(economy.ResearchAllocations, len(commandsByHouse))
	for h, pkt := range commandsByHouse {
		alloc := make(map[config.TechField]int, len(pkt.ResearchAllocation))
		for field, pp := range pkt.ResearchAllocation {
			alloc[config.TechField(field)] = pp
		}
		out[string(h)] = alloc
	}
	return out
}

func collectEspionage(commandsByHouse map[model.HouseId]*command.Packet) economy.EspionageInvestments {
	out := make(economy.EspionageInvestments, len(commandsByHouse))
	for h, pkt := range commandsByHouse {
		if pkt.Espionage == nil {
			continue
		}
		out[string(h)] = economy.EspionageInvestment{
			EBP:        pkt.Espionage.EBPInvestment,
			CIP:        pkt.Espionage.CIPInvestment,
			TurnBudget: pkt.TreasurySnapshot,
		}
	}
	return out
}

func allFleetIDsSorted(c *state.Container) []model.FleetId {
	var out []model.FleetId
	for _, hid := range c.AllHouseIDsSorted() {
		out = append(out, c.FleetsOwnedBy(hid)...)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

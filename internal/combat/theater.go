package combat

import (
	"math/rand"
	"sort"
	"strconv"

	"github.com/greenm01/ec4x/internal/config"
	"github.com/greenm01/ec4x/internal/detrand"
	"github.com/greenm01/ec4x/internal/event"
	"github.com/greenm01/ec4x/internal/model"
	"github.com/greenm01/ec4x/internal/state"
)

// Theater names one of the four battle stages a system's combat
// resolves through in order (spec.md §4.6): a hostile fleet must clear
// Space before it can attempt Orbital, Orbital before Blockade takes
// effect or a ground assault (Planetary) is possible.
type Theater int

const (
	TheaterSpace Theater = iota
	TheaterOrbital
	TheaterBlockade
	TheaterPlanetary
)

func (t Theater) String() string {
	switch t {
	case TheaterSpace:
		return "Space"
	case TheaterOrbital:
		return "Orbital"
	case TheaterBlockade:
		return "Blockade"
	case TheaterPlanetary:
		return "Planetary"
	default:
		return "Unknown"
	}
}

// Report summarizes one system's combat resolution for the turn, the
// payload of a KindCombatReport event.
type Report struct {
	System          model.SystemId
	Rounds          int
	FinalTheater    Theater
	Crippled        map[model.HouseId][]model.SquadronId
	Destroyed       map[model.HouseId][]model.SquadronId
	Blockaded       bool
	ColonySeized    bool
	SeizedBy        model.HouseId
	RetreatedHouses []model.HouseId
}

// Detection implements spec.md §4.6 "Detection of combat": two or more
// houses present, and at least one of:
//   - either house sees the other as Enemy (unconditional combat);
//   - either sees the other as Hostile and has a Contest/Attack-tier
//     command executing in-system;
//   - both Neutral but one has an Attack-tier command executing at the
//     other's colony.
func Detection(c *state.Container, sys model.SystemId) bool {
	fleetIDs := c.FleetsInSystem(sys)

	type presence struct {
		owner      model.HouseId
		contesting bool // Contest/Attack-tier command executing in-system
		attacking  bool // Attack-tier command executing at the target colony
	}
	var present []presence

	for _, fid := range fleetIDs {
		f, ok := c.GetFleet(fid)
		if !ok {
			continue
		}
		p := presence{owner: f.Owner}
		if f.CurrentCommand != nil {
			threat := f.CurrentCommand.Threat
			p.contesting = threat == model.Contest || threat == model.Attack
			p.attacking = threat == model.Attack
		}
		present = append(present, p)
	}

	colonyOwner, hasColony := model.HouseId(""), false
	if col, ok := c.GetColony(sys); ok {
		colonyOwner, hasColony = col.Owner, true
	}

	owners := make(map[model.HouseId]bool)
	for _, p := range present {
		owners[p.owner] = true
	}
	if hasColony {
		owners[colonyOwner] = true
	}
	if len(owners) < 2 {
		return false
	}

	for _, p := range present {
		if hasColony && p.owner != colonyOwner {
			switch relationState(c, p.owner, colonyOwner) {
			case model.Enemy:
				return true
			case model.Hostile:
				if p.contesting {
					return true
				}
			case model.Neutral:
				if p.attacking {
					return true
				}
			}
		}
	}

	for i := range present {
		for j := range present {
			if i == j || present[i].owner == present[j].owner {
				continue
			}
			switch relationState(c, present[i].owner, present[j].owner) {
			case model.Enemy:
				return true
			case model.Hostile:
				if present[i].contesting {
					return true
				}
			}
		}
	}

	return false
}

// relationState returns how `from` regards `to`, defaulting to Neutral
// when no relation has been recorded yet — the standing every house
// starts at per model.NewDiplomaticRelation.
func relationState(c *state.Container, from, to model.HouseId) model.DiplomaticState {
	house, ok := c.GetHouse(from)
	if !ok {
		return model.Neutral
	}
	rel, ok := house.Diplomacy[to]
	if !ok {
		return model.Neutral
	}
	return rel.State
}

// Resolve runs the full Space->Orbital->Blockade->Planetary theater
// chain for one system for one turn, mutating squadrons/colony in
// place and returning the combat Report (spec.md §4.6, §4.9 Combat
// Phase). The round limit and retreat-eligible round both come from
// reg so a single config change retunes every battle identically.
func Resolve(c *state.Container, reg *config.Registry, log *event.Log, turn int, sys model.SystemId, rootSeed int64) *Report {
	fleetIDs := c.FleetsInSystem(sys)
	if len(fleetIDs) == 0 || !Detection(c, sys) {
		return nil
	}

	col, hasColony := c.GetColony(sys)
	var colonyOwner model.HouseId
	if hasColony {
		colonyOwner = col.Owner
	}

	bySide := groupBySide(c, fleetIDs, colonyOwner, hasColony)
	if len(bySide) < 2 {
		return nil
	}

	rep := &Report{
		System:    sys,
		Crippled:  make(map[model.HouseId][]model.SquadronId),
		Destroyed: make(map[model.HouseId][]model.SquadronId),
	}

	r := detrand.Source(rootSeed, "combat", string(sys), strconv.Itoa(turn))

	theater := TheaterSpace
	round := 0
	for round < reg.CombatRoundLimit {
		round++
		rep.Rounds = round

		// A colony owner with no fleet on-scene never has a live
		// squadron, so it never appears in active — that's the point:
		// an uncontested colony offers no ship-to-ship opposition, and
		// the very first round falls through to the cascade below,
		// landing on Planetary immediately (spec.md §4.6, §8 scenario
		// 3 "shielded colony invasion").
		active := activeHouses(c, bySide)
		if len(active) < 2 {
			if hasColony {
				for theater != TheaterPlanetary {
					theater = nextTheater(theater)
				}
				rep.FinalTheater = theater
				resolvePlanetary(c, reg, r, sys, active, rep)
			} else {
				theater = nextTheater(theater)
				rep.FinalTheater = theater
			}
			break
		}

		fought := fightRound(c, reg, r, sys, active, rep)
		if round >= reg.RetreatEligibleRound {
			rep.RetreatedHouses = append(rep.RetreatedHouses, retreatLosers(c, sys, active, rep)...)
		}
		if !fought {
			break
		}
	}

	rep.FinalTheater = theater
	log.Emit(turn, event.KindCombatReport, map[string]any{
		"system": string(sys),
		"rounds": rep.Rounds,
		"theater": theater.String(),
	})
	return rep
}

// groupBySide partitions the fleets present into per-house rosters and,
// when a colony sits at sys, adds its owner as an implicit side even
// with an empty roster: a colony defends itself with shields and
// ground forces, not squadrons, and an attacker with no opposing fleet
// must still be able to reach the Planetary theater.
func groupBySide(c *state.Container, fleetIDs []model.FleetId, colonyOwner model.HouseId, hasColony bool) map[model.HouseId][]model.FleetId {
	out := make(map[model.HouseId][]model.FleetId)
	for _, fid := range fleetIDs {
		f, ok := c.GetFleet(fid)
		if !ok {
			continue
		}
		out[f.Owner] = append(out[f.Owner], fid)
	}
	if hasColony {
		if _, ok := out[colonyOwner]; !ok {
			out[colonyOwner] = nil
		}
	}
	return out
}

func activeHouses(c *state.Container, bySide map[model.HouseId][]model.FleetId) []model.HouseId {
	var out []model.HouseId
	for house, fleets := range bySide {
		for _, fid := range fleets {
			f, ok := c.GetFleet(fid)
			if !ok {
				continue
			}
			for _, sqid := range f.Squadrons {
				sq, ok := c.GetSquadron(sqid)
				if ok && sq.State != model.Destroyed {
					out = append(out, house)
					break
				}
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return dedupeHouses(out)
}

func dedupeHouses(in []model.HouseId) []model.HouseId {
	out := in[:0:0]
	var last model.HouseId
	first := true
	for _, h := range in {
		if first || h != last {
			out = append(out, h)
		}
		last = h
		first = false
	}
	return out
}

// fightRound resolves one simultaneous CER exchange between every pair
// of active houses present: each house's total attack strength rolls
// once against each opposing house's squadrons, per spec.md §4.6 "Each
// side rolls 1d10".
func fightRound(c *state.Container, reg *config.Registry, r *rand.Rand, sys model.SystemId, active []model.HouseId, rep *Report) bool {
	squadronsByHouse := make(map[model.HouseId][]*model.Squadron)
	for _, house := range active {
		squadronsByHouse[house] = liveSquadronsAt(c, sys, house)
	}

	fought := false
	for _, attacker := range active {
		attackSquadrons := squadronsByHouse[attacker]
		as := totalAttackStrength(attackSquadrons)
		if as <= 0 {
			continue
		}
		for _, defender := range active {
			if defender == attacker {
				continue
			}
			defSquadrons := squadronsByHouse[defender]
			if len(defSquadrons) == 0 {
				continue
			}
			row := RollCER(r, reg.SpaceCER)
			hits := Hits(as, row.Multiplier)
			_, crippled, destroyed := ApplySquadronDamage(defSquadrons, hits, row.Critical)
			rep.Crippled[defender] = append(rep.Crippled[defender], crippled...)
			rep.Destroyed[defender] = append(rep.Destroyed[defender], destroyed...)
			fought = true
		}
	}
	return fought
}

func liveSquadronsAt(c *state.Container, sys model.SystemId, house model.HouseId) []*model.Squadron {
	var out []*model.Squadron
	for _, fid := range c.FleetsInSystem(sys) {
		f, ok := c.GetFleet(fid)
		if !ok || f.Owner != house {
			continue
		}
		for _, sqid := range f.Squadrons {
			sq, ok := c.GetSquadron(sqid)
			if ok && sq.State != model.Destroyed {
				out = append(out, sq)
			}
		}
	}
	return out
}

func totalAttackStrength(squadrons []*model.Squadron) float64 {
	var total float64
	for _, sq := range squadrons {
		total += sq.EffectiveAttackStrength()
	}
	return total
}

func nextTheater(t Theater) Theater {
	if t < TheaterPlanetary {
		return t + 1
	}
	return t
}

// BlockadeActive implements spec.md §4.9 step 3: a colony is blockaded
// this turn if a foreign fleet sits in its system with a Contest/Attack
// tier command and a Hostile-or-worse standing toward the owner (or any
// Attack-tier command at all, even from a nominal Neutral). Unlike
// Detection, an Enemy fleet with no current command does not blockade.
// The blockade lifts the moment that fleet departs or stands down.
func BlockadeActive(c *state.Container, sys model.SystemId) bool {
	col, ok := c.GetColony(sys)
	if !ok {
		return false
	}
	for _, fid := range c.FleetsInSystem(sys) {
		f, ok := c.GetFleet(fid)
		if !ok || f.Owner == col.Owner || f.CurrentCommand == nil {
			continue
		}
		threat := f.CurrentCommand.Threat
		contesting := threat == model.Contest || threat == model.Attack
		if !contesting {
			continue
		}
		switch relationState(c, f.Owner, col.Owner) {
		case model.Hostile, model.Enemy:
			return true
		case model.Neutral:
			if threat == model.Attack {
				return true
			}
		}
	}
	return false
}

// resolvePlanetary applies the final Planetary theater step: the
// surviving attacker's squadrons bombard the colony through its
// shield, with Planet-Breaker attack strength bypassing the shield
// entirely (spec.md §4.6).
func resolvePlanetary(c *state.Container, reg *config.Registry, r *rand.Rand, sys model.SystemId, active []model.HouseId, rep *Report) {
	col, ok := c.GetColony(sys)
	if !ok || len(active) == 0 {
		return
	}

	for _, attacker := range active {
		if attacker == col.Owner {
			continue
		}
		squadrons := liveSquadronsAt(c, sys, attacker)
		if len(squadrons) == 0 {
			continue
		}

		pb, other := SplitAttackStrength(squadrons)
		outcome := ResolveShield(r, reg, col)
		row := RollCER(r, reg.BombardmentCER)

		pbHits := Hits(pb, row.Multiplier)
		otherHits := Hits(other, row.Multiplier)
		totalHits := ApplyShield(outcome, otherHits, pbHits)

		crippled, destroyed := PlanetaryPropagation(col, liveSquadronsAt(c, sys, col.Owner), totalHits, row.Critical)
		rep.Crippled[col.Owner] = append(rep.Crippled[col.Owner], crippled...)
		rep.Destroyed[col.Owner] = append(rep.Destroyed[col.Owner], destroyed...)

		if col.GroundForces <= 0 {
			rep.ColonySeized = true
			rep.SeizedBy = attacker
			c.TransferColonyOwner(col.ID, attacker)
			break
		}
	}
}

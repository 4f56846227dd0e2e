package state

import (
	"fmt"
	"reflect"

	"github.com/greenm01/ec4x/internal/ec4xerr"
	"github.com/greenm01/ec4x/internal/model"
)

// CheckAll asserts every invariant of spec.md §3/§8 that can be verified
// from a Container alone (I1-I8 except the round-trip laws, which live
// in internal/persistence). Called at every phase boundary by
// internal/turn; a non-nil error is always an IntegrityError and aborts
// the turn per spec.md §7.
func CheckAll(c *Container) error {
	if err := checkSquadronOwnership(c); err != nil {
		return err
	}
	if err := checkSquadronSingleContainer(c); err != nil {
		return err
	}
	if err := checkExecutingFleetsAtTarget(c); err != nil {
		return err
	}
	if err := checkHouseBounds(c); err != nil {
		return err
	}
	if err := checkIndicesConsistent(c); err != nil {
		return err
	}
	return nil
}

// checkSquadronOwnership asserts I1/invariant 2: every squadron inside
// a fleet shares that fleet's owner.
func checkSquadronOwnership(c *Container) error {
	for fid, f := range c.Fleets {
		for _, sid := range f.Squadrons {
			sq, ok := c.Squadrons[sid]
			if !ok {
				return ec4xerr.Integrity("state.CheckAll", "fleet %s references missing squadron %s", fid, sid)
			}
			if sq.Owner != f.Owner {
				return ec4xerr.Integrity("state.CheckAll", "squadron %s owner %s != fleet %s owner %s", sid, sq.Owner, fid, f.Owner)
			}
		}
	}
	return nil
}

// checkSquadronSingleContainer asserts invariant 3: a squadron appears
// in exactly one container (fleet, colony unassigned, colony fighter).
func checkSquadronSingleContainer(c *Container) error {
	seen := make(map[model.SquadronId]string, len(c.Squadrons))

	record := func(id model.SquadronId, where string) error {
		if prev, ok := seen[id]; ok {
			return ec4xerr.Integrity("state.CheckAll", "squadron %s appears in both %s and %s", id, prev, where)
		}
		seen[id] = where
		return nil
	}

	for fid, f := range c.Fleets {
		for _, sid := range f.Squadrons {
			if err := record(sid, fmt.Sprintf("fleet %s", fid)); err != nil {
				return err
			}
		}
	}
	for cid, col := range c.Colonies {
		for _, sid := range col.UnassignedSquadrons {
			if err := record(sid, fmt.Sprintf("colony %s unassigned", cid)); err != nil {
				return err
			}
		}
		for _, sid := range col.FighterSquadrons {
			if err := record(sid, fmt.Sprintf("colony %s fighters", cid)); err != nil {
				return err
			}
		}
	}

	for id := range c.Squadrons {
		if _, ok := seen[id]; !ok {
			return ec4xerr.Integrity("state.CheckAll", "squadron %s is in no container", id)
		}
	}
	return nil
}

// checkExecutingFleetsAtTarget asserts invariant 10/I3: a fleet in
// Executing mission state sits exactly at its command's target.
func checkExecutingFleetsAtTarget(c *Container) error {
	for fid, f := range c.Fleets {
		if f.Mission != model.MissionExecuting {
			continue
		}
		if f.CurrentCommand == nil {
			return ec4xerr.Integrity("state.CheckAll", "fleet %s is Executing with no command", fid)
		}
		if f.CurrentCommand.TargetSystem != "" && f.Location != f.CurrentCommand.TargetSystem {
			return ec4xerr.Integrity("state.CheckAll", "fleet %s Executing at %s, command targets %s", fid, f.Location, f.CurrentCommand.TargetSystem)
		}
	}
	return nil
}

// checkHouseBounds asserts invariant 7/8 and I5: treasury, prestige and
// tech-level bounds.
func checkHouseBounds(c *Container) error {
	for id, h := range c.Houses {
		if h.Treasury <= -10000 {
			return ec4xerr.Integrity("state.CheckAll", "house %s treasury %d <= -10000", id, h.Treasury)
		}
		if h.Prestige < -10000 || h.Prestige > 10000 {
			return ec4xerr.Integrity("state.CheckAll", "house %s prestige %d out of bounds", id, h.Prestige)
		}
		for field, lvl := range h.TechLevels {
			if lvl < 0 || lvl > 20 {
				return ec4xerr.Integrity("state.CheckAll", "house %s tech %s = %d out of [0,20]", id, field, lvl)
			}
		}
	}
	return nil
}

// checkIndicesConsistent asserts I6: rebuilding indices from primaries
// produces the same contents currently held.
func checkIndicesConsistent(c *Container) error {
	shadow := New()
	for id, h := range c.Houses {
		shadow.Houses[id] = h
	}
	for id, s := range c.Systems {
		shadow.Systems[id] = s
	}
	for id, col := range c.Colonies {
		shadow.Colonies[id] = col
	}
	for id, f := range c.Fleets {
		shadow.Fleets[id] = f
	}
	shadow.Rebuild()

	if !reflect.DeepEqual(shadow.fleetsBySystem, c.fleetsBySystem) {
		return ec4xerr.Integrity("state.CheckAll", "fleetsBySystem index diverges from a fresh rebuild")
	}
	if !reflect.DeepEqual(shadow.coloniesByOwner, c.coloniesByOwner) {
		return ec4xerr.Integrity("state.CheckAll", "coloniesByOwner index diverges from a fresh rebuild")
	}
	if !reflect.DeepEqual(shadow.fleetsByOwner, c.fleetsByOwner) {
		return ec4xerr.Integrity("state.CheckAll", "fleetsByOwner index diverges from a fresh rebuild")
	}
	return nil
}

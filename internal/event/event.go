// Package event implements the append-only structured event log every
// subsystem emits to (spec.md C12): combat reports, eliminations,
// construction completions, prestige changes, intel gathered, and so
// on. Events are the only record of state mutation a client or test
// should rely on — "no silent drops" (spec.md §3 "Lifecycle").
package event

// Kind tags the variant of Payload carried by an Event.
type Kind string

const (
	KindCombatReport         Kind = "CombatReport"
	KindSquadronDisbanded    Kind = "SquadronDisbanded"
	KindHouseEliminated      Kind = "HouseEliminated"
	KindConstructionComplete Kind = "ConstructionCompleted"
	KindPrestigeChanged      Kind = "PrestigeChanged"
	KindIntelGathered        Kind = "IntelGathered"
	KindColonyEstablished    Kind = "ColonyEstablished"
	KindColonySeized         Kind = "ColonySeized"
	KindCommandRejected      Kind = "CommandRejected"
	KindCapacityViolation    Kind = "CapacityViolation"
	KindDiplomaticChange     Kind = "DiplomaticChange"
	KindBlockadeApplied      Kind = "BlockadeApplied"
	KindScoutDetected        Kind = "ScoutDetected"
	KindVictory              Kind = "Victory"
	KindResearchBreakthrough Kind = "ResearchBreakthrough"
	KindHouseEnteredCollapse Kind = "HouseEnteredCollapse"
	KindEspionagePurchase    Kind = "EspionagePurchase"
	KindSalvageCompleted     Kind = "SalvageCompleted"
)

// Event is the tagged union of spec.md §3. Payload is kind-specific,
// kept as a plain map — like internal/model's IntelReport — so new
// fields can be added to a kind's payload without a schema migration
// for every historical event already in the log.
type Event struct {
	Seq     int // monotonically increasing within a game; never reused.
	Turn    int
	Kind    Kind
	Payload map[string]any
}

// Log is the append-only per-game event store. Iteration always
// preserves causal/emission order (spec.md §5 "Event emission preserves
// the order of causing operations").
type Log struct {
	events []Event
	next   int
}

func NewLog() *Log { return &Log{} }

// Emit appends a new event, stamping it with the next sequence number.
func (l *Log) Emit(turn int, kind Kind, payload map[string]any) Event {
	e := Event{Seq: l.next, Turn: turn, Kind: kind, Payload: payload}
	l.next++
	l.events = append(l.events, e)
	return e
}

// All returns every event emitted so far, in emission order. The
// returned slice is a copy: callers must not mutate the log through it.
func (l *Log) All() []Event {
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// Since returns every event with Seq >= fromSeq, for incremental
// publish to a host that has already consumed earlier events.
func (l *Log) Since(fromSeq int) []Event {
	var out []Event
	for _, e := range l.events {
		if e.Seq >= fromSeq {
			out = append(out, e)
		}
	}
	return out
}

func (l *Log) Len() int { return len(l.events) }

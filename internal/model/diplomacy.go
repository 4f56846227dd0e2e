package model

// DiplomaticState enumerates the four standing a house can hold towards
// another (spec.md §3 "DiplomaticRelation").
type DiplomaticState int

const (
	Neutral DiplomaticState = iota
	NonAggression
	Hostile
	Enemy
)

func (s DiplomaticState) String() string {
	switch s {
	case Neutral:
		return "Neutral"
	case NonAggression:
		return "NonAggression"
	case Hostile:
		return "Hostile"
	case Enemy:
		return "Enemy"
	default:
		return "Unknown"
	}
}

// DiplomaticRelation is a directed (A,B) pair: how A currently regards
// B. The reverse relation is a separate *DiplomaticRelation stored under
// B's Diplomacy map, since the two houses need not agree in the same
// turn (escalation reconciles at the next Conflict Phase per spec.md
// §8 scenario 5).
type DiplomaticRelation struct {
	From, To HouseId
	State    DiplomaticState

	// DishonorCountdown / IsolationCountdown tick down once a pact is
	// broken or a house becomes diplomatically isolated; reaching zero
	// triggers the configured consequence (spec.md §3).
	DishonorCountdown  int
	IsolationCountdown int

	PactViolations int

	// PendingProposal tracks an outstanding diplomatic proposal from
	// From to To awaiting acceptance, advanced once per turn in the
	// Command Phase (SPEC_FULL.md "Supplemented features").
	PendingProposal *DiplomaticProposal
}

// DiplomaticProposalKind enumerates what a proposal offers to change.
type DiplomaticProposalKind int

const (
	ProposeNonAggression DiplomaticProposalKind = iota
	ProposeNeutral
	ProposeAlliancePact // modeled as a NonAggression pact with a violation counter reset
)

// DiplomaticProposal is an offer from one house to another, pending a
// response. It is consumed (accepted, rejected, or expired) during the
// Command Phase of the turn it is answered.
type DiplomaticProposal struct {
	Kind         DiplomaticProposalKind
	ProposedTurn int
	ExpiresTurn  int
}

// NewDiplomaticRelation creates the default Neutral standing a house
// holds towards another house it has just met.
func NewDiplomaticRelation(from, to HouseId) *DiplomaticRelation {
	return &DiplomaticRelation{From: from, To: to, State: Neutral}
}

// Escalate raises the relation towards Enemy in response to a combat
// command executed against the target, reconciling the relation for
// the *following* turn's Conflict Phase (spec.md §8 scenario 5).
func (r *DiplomaticRelation) Escalate(to DiplomaticState) {
	if to > r.State {
		r.State = to
	}
}

// Package wireproto implements spec.md §6 "External interfaces": the
// Nostr-style event-kind payload contracts the engine hands to its host
// for publication, per-event signing and per-recipient encryption, and
// the host-side retry policy for transport failures. The wire protocol
// itself (relay selection, subscription filters) is explicitly out of
// scope (spec.md §1) — this package only defines what goes inside an
// event's content field and how it is sealed.
package wireproto

// Kind is one of the Nostr-style event kinds spec.md §6 assigns to this
// application. Values match the spec exactly so a client implementing
// the wire protocol elsewhere can dispatch on the same numbers.
type Kind int

const (
	KindGameDefinition  Kind = 30400 // lobby: slots, statuses, invite codes.
	KindPlayerSlotClaim Kind = 30401 // player -> server.
	KindTurnCommands    Kind = 30402 // player -> server, encrypted with server pubkey.
	KindTurnResults     Kind = 30404 // server -> player, encrypted per-recipient, carries a delta.
	KindFullState       Kind = 30405 // server -> player, encrypted per-recipient, carries a snapshot projection.
)

func (k Kind) String() string {
	switch k {
	case KindGameDefinition:
		return "GameDefinition"
	case KindPlayerSlotClaim:
		return "PlayerSlotClaim"
	case KindTurnCommands:
		return "TurnCommands"
	case KindTurnResults:
		return "TurnResults"
	case KindFullState:
		return "FullState"
	default:
		return "Unknown"
	}
}

// SlotStatus enumerates a lobby slot's occupancy for a GameDefinition
// payload.
type SlotStatus string

const (
	SlotOpen    SlotStatus = "open"
	SlotClaimed SlotStatus = "claimed"
	SlotAI      SlotStatus = "ai"
)

// GameDefinitionPayload is the content of a 30400 event.
type GameDefinitionPayload struct {
	GameID     string
	Turn       int
	Slots      []SlotStatus
	InviteCode string // normalized form; see NormalizeInviteCode.
}

// PlayerSlotClaimPayload is the content of a 30401 event.
type PlayerSlotClaimPayload struct {
	GameID     string
	InviteCode string
	PlayerPub  [32]byte
}

// TurnCommandsPayload is the content of a 30402 event: the raw,
// server-pubkey-encrypted bytes of a marshaled command.Packet.
type TurnCommandsPayload struct {
	GameID        string
	Turn          int
	EncryptedBody []byte
}

// TurnResultsPayload is the content of a 30404 event: a per-house
// delta, encrypted for the one recipient it names.
type TurnResultsPayload struct {
	GameID        string
	Turn          int
	RecipientPub  [32]byte
	EncryptedBody []byte
}

// FullStatePayload is the content of a 30405 event: a complete
// fog-filtered snapshot projection, used to bootstrap a client that has
// no prior delta chain to replay from.
type FullStatePayload struct {
	GameID        string
	Turn          int
	RecipientPub  [32]byte
	EncryptedBody []byte
}

package wireproto

import (
	"encoding/json"

	"golang.org/x/crypto/nacl/sign"

	"github.com/greenm01/ec4x/internal/ec4xerr"
)

// Envelope is the signed wrapper every outbound event carries: "Each
// event carries game_id, turn, and is signed" (spec.md §6). Content is
// the JSON-marshaled Kind-specific payload; Signed is the combined
// nacl/sign message: the 64-byte signature followed by Content.
type Envelope struct {
	GameID string
	Turn   int
	Kind   Kind
	Signed []byte // sign.Sign(nil, content, serverPrivateKey)
}

// Seal marshals payload to JSON and signs it under the server identity,
// producing the Envelope ready for host publication.
func Seal(id *Identity, gameID string, turn int, kind Kind, payload any) (*Envelope, error) {
	content, err := json.Marshal(payload)
	if err != nil {
		return nil, ec4xerr.Validation("wireproto.Seal", "marshaling %s payload: %v", kind, err)
	}
	signed := sign.Sign(nil, content, id.private)
	return &Envelope{GameID: gameID, Turn: turn, Kind: kind, Signed: signed}, nil
}

// Open verifies the envelope's signature against the claimed signer's
// public key and unmarshals the content into dest. Returns a
// CryptoError on a failed signature check — callers must drop the
// message rather than treat it as a transport error (spec.md §7).
func Open(signerPub *[32]byte, e *Envelope, dest any) error {
	content, ok := sign.Open(nil, e.Signed, signerPub)
	if !ok {
		return ec4xerr.Crypto("wireproto.Open", nil, "signature verification failed for %s event in game %s", e.Kind, e.GameID)
	}
	if err := json.Unmarshal(content, dest); err != nil {
		return ec4xerr.Validation("wireproto.Open", "unmarshaling %s payload: %v", e.Kind, err)
	}
	return nil
}

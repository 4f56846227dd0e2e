package wireproto

import (
	"crypto/rand"
	"encoding/hex"
	"os"

	"golang.org/x/crypto/nacl/sign"

	"github.com/greenm01/ec4x/internal/ec4xerr"
)

// Identity is the server's long-lived signing keypair (spec.md §4.10
// "signed by the server's long-lived key"). The public half doubles as
// the server's wire identity for per-recipient encryption addressing.
type Identity struct {
	Public  *[32]byte
	private *[64]byte
}

// LoadOrCreateIdentity reads a hex-encoded keypair from path. If the
// file is absent, a new keypair is generated only when regenIdentity is
// true — spec.md §6 "EC4X_REGEN_IDENTITY=1 permits regenerating the
// server keypair on startup (default: refuse to start without an
// existing keypair)".
func LoadOrCreateIdentity(path string, regenIdentity bool) (*Identity, error) {
	raw, err := os.ReadFile(path)
	if err == nil {
		return decodeIdentity(raw)
	}
	if !os.IsNotExist(err) {
		return nil, ec4xerr.Transport("wireproto.LoadOrCreateIdentity", err, "reading identity file %s", path)
	}
	if !regenIdentity {
		return nil, ec4xerr.Config("wireproto.LoadOrCreateIdentity", "no identity at %s and EC4X_REGEN_IDENTITY is not set", path)
	}

	pub, priv, err := sign.GenerateKey(rand.Reader)
	if err != nil {
		return nil, ec4xerr.Crypto("wireproto.LoadOrCreateIdentity", err, "generating signing keypair")
	}
	id := &Identity{Public: pub, private: priv}
	if err := os.WriteFile(path, encodeIdentity(id), 0o600); err != nil {
		return nil, ec4xerr.Transport("wireproto.LoadOrCreateIdentity", err, "writing identity file %s", path)
	}
	return id, nil
}

// Sign signs arbitrary content with this identity's private key,
// returning the combined signed message (signature followed by
// content) that Verify opens. Used outside
// the Envelope/Kind wire format — e.g. authenticating a persisted
// snapshot blob (spec.md §4.10 "payloads must be authenticated").
func (id *Identity) Sign(content []byte) []byte {
	return sign.Sign(nil, content, id.private)
}

// Verify checks a message produced by (*Identity).Sign against the
// signer's public key, returning the original content on success.
func Verify(signerPub *[32]byte, signed []byte) ([]byte, error) {
	content, ok := sign.Open(nil, signed, signerPub)
	if !ok {
		return nil, ec4xerr.Crypto("wireproto.Verify", nil, "signature verification failed")
	}
	return content, nil
}

func encodeIdentity(id *Identity) []byte {
	out := make([]byte, hex.EncodedLen(64))
	hex.Encode(out, id.private[:])
	return out
}

func decodeIdentity(raw []byte) (*Identity, error) {
	decoded := make([]byte, 64)
	n, err := hex.Decode(decoded, raw)
	if err != nil || n != 64 {
		return nil, ec4xerr.Crypto("wireproto.decodeIdentity", err, "malformed identity file")
	}
	var priv [64]byte
	copy(priv[:], decoded)
	var pub [32]byte
	copy(pub[:], priv[32:])
	return &Identity{Public: &pub, private: &priv}, nil
}

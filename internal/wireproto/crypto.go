package wireproto

import (
	"crypto/rand"

	"golang.org/x/crypto/nacl/box"

	"github.com/greenm01/ec4x/internal/ec4xerr"
)

// EncryptForRecipient seals plaintext for exactly one recipient's
// Curve25519 public key using an ephemeral sender keypair, per spec.md
// §4.10 "may be encrypted per-recipient (asymmetric encapsulation)".
// The returned blob is box.Seal's nonce-prefixed ciphertext with the
// ephemeral public key prepended, so Decrypt needs only the
// recipient's long-lived private key to open it.
func EncryptForRecipient(recipientPub *[32]byte, plaintext []byte) ([]byte, error) {
	ephPub, ephPriv, err := box.GenerateKey(rand.Reader)
	if err != nil {
		return nil, ec4xerr.Crypto("wireproto.EncryptForRecipient", err, "generating ephemeral keypair")
	}

	var nonce [24]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, ec4xerr.Crypto("wireproto.EncryptForRecipient", err, "generating nonce")
	}

	sealed := box.Seal(nonce[:], plaintext, &nonce, recipientPub, ephPriv)

	out := make([]byte, 32+len(sealed))
	copy(out, ephPub[:])
	copy(out[32:], sealed)
	return out, nil
}

// DecryptFromSender opens a blob produced by EncryptForRecipient using
// the recipient's long-lived private key.
func DecryptFromSender(recipientPriv *[32]byte, blob []byte) ([]byte, error) {
	if len(blob) < 32+24 {
		return nil, ec4xerr.Crypto("wireproto.DecryptFromSender", nil, "blob too short to contain sender key and nonce")
	}
	var ephPub [32]byte
	copy(ephPub[:], blob[:32])

	var nonce [24]byte
	copy(nonce[:], blob[32:56])

	plain, ok := box.Open(nil, blob[56:], &nonce, &ephPub, recipientPriv)
	if !ok {
		return nil, ec4xerr.Crypto("wireproto.DecryptFromSender", nil, "decryption failed: wrong key or tampered ciphertext")
	}
	return plain, nil
}

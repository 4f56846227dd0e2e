package wireproto_test

import (
	"context"
	"crypto/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/nacl/box"

	"github.com/greenm01/ec4x/internal/ec4xerr"
	"github.com/greenm01/ec4x/internal/wireproto"
)

func generateBoxKeyPair(t *testing.T) (*[32]byte, *[32]byte, error) {
	t.Helper()
	return box.GenerateKey(rand.Reader)
}

func TestLoadOrCreateIdentityRefusesWithoutRegenFlag(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "identity.hex")

	_, err := wireproto.LoadOrCreateIdentity(path, false)
	require.Error(t, err)

	id, err := wireproto.LoadOrCreateIdentity(path, true)
	require.NoError(t, err)
	require.NotNil(t, id.Public)

	reloaded, err := wireproto.LoadOrCreateIdentity(path, false)
	require.NoError(t, err)
	require.Equal(t, *id.Public, *reloaded.Public)

	_ = os.Remove(path)
}

func TestSealOpenRoundTrip(t *testing.T) {
	dir := t.TempDir()
	id, err := wireproto.LoadOrCreateIdentity(filepath.Join(dir, "id.hex"), true)
	require.NoError(t, err)

	payload := wireproto.GameDefinitionPayload{GameID: "g1", Turn: 3, InviteCode: "abc123"}
	env, err := wireproto.Seal(id, "g1", 3, wireproto.KindGameDefinition, payload)
	require.NoError(t, err)

	var got wireproto.GameDefinitionPayload
	require.NoError(t, wireproto.Open(id.Public, env, &got))
	require.Equal(t, payload, got)
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	recipientPub, recipientPriv, err := generateBoxKeyPair(t)
	require.NoError(t, err)

	blob, err := wireproto.EncryptForRecipient(recipientPub, []byte("turn delta payload"))
	require.NoError(t, err)

	plain, err := wireproto.DecryptFromSender(recipientPriv, blob)
	require.NoError(t, err)
	require.Equal(t, "turn delta payload", string(plain))
}

func TestNormalizeInviteCodeFoldsCaseAndStripsSpace(t *testing.T) {
	require.Equal(t, "abc123", wireproto.NormalizeInviteCode(" ABC 123 "))
}

func TestWithRetryDoesNotRetryPermanentFailures(t *testing.T) {
	calls := 0
	err := wireproto.WithRetry(context.Background(), func(ctx context.Context) error {
		calls++
		return ec4xerr.Crypto("test", nil, "bad signature")
	})
	require.Error(t, err)
	require.Equal(t, 1, calls)
}

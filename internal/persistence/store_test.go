package persistence

import (
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"

	"github.com/greenm01/ec4x/internal/wireproto"
)

func TestStoreSealUnsealRoundTrip(t *testing.T) {
	dir := t.TempDir()
	ident, err := wireproto.LoadOrCreateIdentity(filepath.Join(dir, "id.hex"), true)
	require.NoError(t, err)

	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	dec, err := zstd.NewReader(nil)
	require.NoError(t, err)

	s := &Store{ident: ident, coder: enc, reader: dec}

	raw := []byte("a snapshot's worth of authoritative game state")
	sealed := s.seal(raw)
	require.NotEqual(t, raw, sealed)

	unsealed, err := s.unseal(sealed)
	require.NoError(t, err)
	require.Equal(t, raw, unsealed)
}

func TestStoreUnsealRejectsTamperedPayload(t *testing.T) {
	dir := t.TempDir()
	ident, err := wireproto.LoadOrCreateIdentity(filepath.Join(dir, "id.hex"), true)
	require.NoError(t, err)

	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	dec, err := zstd.NewReader(nil)
	require.NoError(t, err)

	s := &Store{ident: ident, coder: enc, reader: dec}

	sealed := s.seal([]byte("trust me"))
	sealed[len(sealed)-1] ^= 0xFF

	_, err = s.unseal(sealed)
	require.Error(t, err)
}

package digest_test

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/bootdat/digest"
)

func TestSum_known_vector(t *testing.T) {
	t.Parallel()

	got := digest.Sum([]byte("hello"))

	require.Len(t, got, digest.Size)
	// sha256("hello")
	assert.Equal(
		t,
		"2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
		hex.EncodeToString(got),
	)
}

func TestSum_empty_input(t *testing.T) {
	t.Parallel()

	got := digest.Sum(nil)

	require.Len(t, got, digest.Size)
	// sha256("")
	assert.Equal(
		t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		hex.EncodeToString(got),
	)
}

func TestHex_matches_sum(t *testing.T) {
	t.Parallel()

	data := []byte("hello")

	assert.Equal(
		t,
		hex.EncodeToString(digest.Sum(data)),
		digest.Hex(data),
	)
}

func TestFile_returns_sha256(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pa := filepath.Join(dir, "test.txt")
	require.NoError(t, os.WriteFile(pa, []byte("hello"), 0o600))

	got, err := digest.File(pa)

	require.NoError(t, err)
	// sha256("hello")
	assert.Equal(
		t,
		"2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
		got,
	)
}

func TestFile_nonexistent_file(t *testing.T) {
	t.Parallel()

	got, err := digest.File("/nonexistent")

	assert.Empty(t, got)
	assert.NoError(t, err)
}

func TestSaveSidecar_and_Stored_roundtrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pa := filepath.Join(dir, "data.bin")
	require.NoError(t, os.WriteFile(pa, []byte("content"), 0o600))

	require.NoError(t, digest.SaveSidecar(pa))

	got, err := digest.Stored(pa)
	require.NoError(t, err)

	expected, err := digest.File(pa)
	require.NoError(t, err)

	assert.Equal(t, expected, got)
}

func TestStored_no_sidecar(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pa := filepath.Join(dir, "data.bin")
	require.NoError(t, os.WriteFile(pa, []byte("content"), 0o600))

	got, err := digest.Stored(pa)

	assert.Empty(t, got)
	assert.NoError(t, err)
}

func TestVerifySidecar_valid(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pa := filepath.Join(dir, "data.bin")
	require.NoError(t, os.WriteFile(pa, []byte("content"), 0o600))
	require.NoError(t, digest.SaveSidecar(pa))

	ok, err := digest.VerifySidecar(pa)

	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifySidecar_tampered(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pa := filepath.Join(dir, "data.bin")
	require.NoError(t, os.WriteFile(pa, []byte("content"), 0o600))
	require.NoError(t, digest.SaveSidecar(pa))

	require.NoError(t, os.WriteFile(pa, []byte("tampered"), 0o600))

	ok, err := digest.VerifySidecar(pa)

	require.NoError(t, err)
	assert.False(t, ok)
}

func FuzzSum(f *testing.F) {
	f.Add([]byte("hello"))
	f.Add([]byte(""))
	f.Add([]byte("\x00\xff"))

	f.Fuzz(func(t *testing.T, data []byte) {
		t.Parallel()

		got := digest.Sum(data)

		assert.Len(t, got, digest.Size)
		assert.Len(t, digest.Hex(data), 64) // sha256 hex is always 64 chars
		assert.Equal(t, got, digest.Sum(data))
	})
}

package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
)

// Size is the length in bytes of a SHA-256 digest.
const Size = sha256.Size

// Sum returns the SHA-256 digest of data. The result is
// always Size bytes.
func Sum(data []byte) []byte {
	sum := sha256.Sum256(data)

	return sum[:]
}

// Hex returns the lowercase hex encoding of the SHA-256
// digest of data.
func Hex(data []byte) string {
	return hex.EncodeToString(Sum(data))
}

// File computes the SHA256 hex digest of the file at
// path. Returns empty string with no error if the file
// does not exist.
func File(path string) (result string, retErr error) {
	const errCtx = "digesting file"

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return "", nil
	}

	fi, err := os.Open(path) //nolint:gosec // path is caller-provided
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	defer func() {
		if closeErr := fi.Close(); closeErr != nil && retErr == nil {
			retErr = fmt.Errorf("%s: %w", errCtx, closeErr)
		}
	}()

	ha := sha256.New()

	if _, err := io.Copy(ha, fi); err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return hex.EncodeToString(ha.Sum(nil)), nil
}

// Stored reads a digest from a sidecar .digest file.
// Returns empty string with no error if the sidecar file
// does not exist.
func Stored(path string) (string, error) {
	const errCtx = "reading stored digest"

	dp := sidecarPath(path)

	if _, err := os.Stat(dp); errors.Is(err, os.ErrNotExist) {
		return "", nil
	}

	dg, err := os.ReadFile(dp) //nolint:gosec // path is caller-provided
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return string(dg), nil
}

// VerifySidecar compares the calculated digest of the
// file against its stored sidecar digest.
func VerifySidecar(path string) (bool, error) {
	const errCtx = "verifying sidecar digest"

	calc, err := File(path)
	if err != nil {
		return false, fmt.Errorf("%s: %w", errCtx, err)
	}

	stored, err := Stored(path)
	if err != nil {
		return false, fmt.Errorf("%s: %w", errCtx, err)
	}

	return calc == stored, nil
}

// SaveSidecar calculates the digest of a file and writes
// it to a .digest sidecar file.
func SaveSidecar(path string) error {
	const errCtx = "saving sidecar digest"

	dg, err := File(path)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := os.WriteFile(
		sidecarPath(path), []byte(dg), 0o600,
	); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// sidecarPath returns the companion digest file path.
func sidecarPath(path string) string {
	return path + ".digest"
}

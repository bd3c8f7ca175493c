package secure

import (
	"crypto/rand"
	"io"
)

// Reader is the CSPRNG handed to slip39.ShareGenerator.Random in
// production. It implements slip39.RandomSource (Read(p []byte)
// (int, error)) by wrapping crypto/rand.Reader; tests substitute a
// deterministic RandomSource instead of using this value.
//
//nolint:gochecknoglobals // Package-level RNG is required for testability
var Reader io.Reader = rand.Reader

// RandomBytes draws n cryptographically secure random bytes, for
// callers that need raw entropy outside the Shamir split itself (for
// example, a salt alongside an encrypted share bundle).
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(Reader, b); err != nil {
		return nil, err
	}
	return b, nil
}

// SecureRandomBytes is RandomBytes with the result held in a
// SecureBytes container instead of a plain slice.
func SecureRandomBytes(n int) (*SecureBytes, error) {
	sb, err := NewSecureBytes(n)
	if err != nil {
		return nil, err
	}

	if _, err := io.ReadFull(Reader, sb.Bytes()); err != nil {
		sb.Destroy()
		return nil, err
	}

	return sb, nil
}

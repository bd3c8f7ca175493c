package secure

import (
	"bytes"
	"fmt"
	"io"
	"sync/atomic"

	"filippo.io/age"
)

// bundleScryptWorkFactor controls the scrypt work factor used to derive
// the key that wraps a share bundle. Default is 18 (age's secure
// default, tuned for a human-memorable backup passphrase). The backup
// package's tests lower it so they stay fast.
//
//nolint:gochecknoglobals // Package-level atomic for thread-safe work factor configuration
var bundleScryptWorkFactor atomic.Int32

//nolint:gochecknoinits // Required to set secure default work factor
func init() {
	bundleScryptWorkFactor.Store(18)
}

// SetBundleWorkFactor sets the scrypt work factor applied to every
// subsequent EncryptBundle/DecryptBundle call. Lower values speed up
// tests at the cost of brute-force resistance; production code should
// never call this. Range: 10 (fast/insecure) to 22 (very secure).
func SetBundleWorkFactor(factor int) {
	if factor < 10 {
		factor = 10
	} else if factor > 22 {
		factor = 22
	}
	bundleScryptWorkFactor.Store(int32(factor))
}

// EncryptBundle wraps a serialized share bundle (the list of
// mnemonics) in an age passphrase-encrypted envelope.
func EncryptBundle(plaintext []byte, passphrase string) ([]byte, error) {
	recipient, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return nil, fmt.Errorf("deriving bundle recipient: %w", err)
	}
	recipient.SetWorkFactor(int(bundleScryptWorkFactor.Load()))

	buf := &bytes.Buffer{}
	w, err := age.Encrypt(buf, recipient)
	if err != nil {
		return nil, fmt.Errorf("opening bundle envelope: %w", err)
	}

	if _, err := w.Write(plaintext); err != nil {
		return nil, fmt.Errorf("writing bundle envelope: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("sealing bundle envelope: %w", err)
	}

	return buf.Bytes(), nil
}

// DecryptBundle opens an envelope produced by EncryptBundle and returns
// the serialized share bundle.
//
// SECURITY: the caller must zero the returned slice once the bundle has
// been unmarshalled. Prefer DecryptBundleSecure, which zeroes automatically
// via SecureBytes.Destroy.
func DecryptBundle(ciphertext []byte, passphrase string) ([]byte, error) {
	identity, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return nil, fmt.Errorf("deriving bundle identity: %w", err)
	}
	identity.SetMaxWorkFactor(int(bundleScryptWorkFactor.Load()))

	r, err := age.Decrypt(bytes.NewReader(ciphertext), identity)
	if err != nil {
		return nil, fmt.Errorf("opening bundle envelope: %w", err)
	}

	plaintext, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading bundle envelope: %w", err)
	}

	return plaintext, nil
}

// EncryptBundleSecure is EncryptBundle over a SecureBytes-held plaintext.
func EncryptBundleSecure(sb *SecureBytes, passphrase string) ([]byte, error) {
	data := sb.Bytes()
	if data == nil {
		return nil, nil
	}
	return EncryptBundle(data, passphrase)
}

// DecryptBundleSecure decrypts ciphertext into a SecureBytes-held
// plaintext, so the restored share bundle never sits in an
// ordinary, unlocked, un-zeroed slice.
func DecryptBundleSecure(ciphertext []byte, passphrase string) (*SecureBytes, error) {
	plaintext, err := DecryptBundle(ciphertext, passphrase)
	if err != nil {
		return nil, err
	}
	defer func() {
		for i := range plaintext {
			plaintext[i] = 0
		}
	}()

	return SecureBytesFromSlice(plaintext)
}

package slip39

import (
	"crypto/sha256"
	"unicode"

	"golang.org/x/crypto/pbkdf2"
)

const (
	feistelRounds  = 4
	baseIterations = 10000
)

// encryptRounds and decryptRounds are the Feistel round orders for the
// two directions: forward 0,1,2,3 to encrypt,
// reverse to decrypt.
var (
	encryptRounds = [feistelRounds]int{0, 1, 2, 3}
	decryptRounds = [feistelRounds]int{3, 2, 1, 0}
)

// EncryptMasterSecret runs the Feistel network forward, turning a
// plaintext master secret into the value actually split across
// shares.
func EncryptMasterSecret(masterSecret []byte, passphrase string, exponent uint8, extendable bool, id uint16) ([]byte, error) {
	return feistelCrypt(masterSecret, encryptRounds[:], passphrase, exponent, extendable, id)
}

// DecryptMasterSecret runs the Feistel network in reverse, the
// inverse of EncryptMasterSecret.
func DecryptMasterSecret(encryptedSecret []byte, passphrase string, exponent uint8, extendable bool, id uint16) ([]byte, error) {
	return feistelCrypt(encryptedSecret, decryptRounds[:], passphrase, exponent, extendable, id)
}

func feistelCrypt(secret []byte, rounds []int, passphrase string, exponent uint8, extendable bool, id uint16) ([]byte, error) {
	if len(secret) < 16 || len(secret)%2 != 0 {
		return nil, ErrInvalidSeedLength
	}
	if err := validatePassphrase(passphrase); err != nil {
		return nil, err
	}

	half := len(secret) / 2
	left := append([]byte(nil), secret[:half]...)
	right := append([]byte(nil), secret[half:]...)

	saltPrefix := customizationSalt(extendable, id)
	iterations := (baseIterations / feistelRounds) << exponent

	for _, i := range rounds {
		password := append([]byte{byte(i)}, []byte(passphrase)...)
		salt := append(append([]byte(nil), saltPrefix...), right...)
		f := pbkdf2.Key(password, salt, iterations, len(right), sha256.New)
		newRight := xorBytes(left, f)
		left, right = right, newRight
	}

	return append(append([]byte(nil), right...), left...), nil
}

// customizationSalt returns the fixed salt prefix the round function
// uses: empty when the share is extendable, otherwise "shamir"
// followed by the 15-bit identifier as a big-endian 16-bit value.
func customizationSalt(extendable bool, id uint16) []byte {
	if extendable {
		return nil
	}
	return append([]byte("shamir"), byte(id>>8), byte(id))
}

func xorBytes(a, b []byte) []byte {
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out
}

// validatePassphrase rejects anything outside printable ASCII; an
// empty passphrase is valid.
func validatePassphrase(passphrase string) error {
	for _, r := range passphrase {
		if r > unicode.MaxASCII || !unicode.IsPrint(r) {
			return ErrNonAsciiPassphrase
		}
	}
	return nil
}

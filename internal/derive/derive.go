// Package derive demonstrates taking a SLIP-39-recovered master secret
// (or a BIP-39 seed produced via internal/bip39bridge) the rest of the
// way to a usable account: a BIP-32 child key and the Ethereum-style
// address derived from it. It is explicitly a demo layered on top of
// the core scheme, not a core capability — key derivation stays out
// of internal/slip39's scope.
package derive

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/tyler-smith/go-bip32"
	"golang.org/x/crypto/sha3"

	slip39err "github.com/mrz1836/go-slip39/pkg/errors"
)

// hardenedOffset marks a hardened BIP-32 child index, conventionally
// written with a trailing apostrophe in path notation (e.g. 44').
const hardenedOffset = uint32(0x80000000)

// Account is the result of deriving a single BIP-32 child key from a
// seed and rendering its corresponding Ethereum-style address.
type Account struct {
	Path         string
	ExtendedKey  string
	PublicKeyHex string
	Address      string
}

// Derive walks seed through the BIP-32 derivation path (e.g.
// "m/44'/60'/0'/0/0") and returns the resulting account. seed is
// typically the 64-byte output of a BIP-39 bridge, but any byte string
// long enough for bip32.NewMasterKey is accepted.
func Derive(seed []byte, path string) (*Account, error) {
	segments, err := ParsePath(path)
	if err != nil {
		return nil, err
	}

	key, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, slip39err.Wrap(err, "deriving master key")
	}

	for _, childIdx := range segments {
		key, err = key.NewChildKey(childIdx)
		if err != nil {
			return nil, slip39err.Wrap(err, "deriving child key")
		}
	}

	address, pubKeyHex, err := ethereumAddress(key)
	if err != nil {
		return nil, err
	}

	return &Account{
		Path:         path,
		ExtendedKey:  key.B58Serialize(),
		PublicKeyHex: pubKeyHex,
		Address:      address,
	}, nil
}

// ParsePath parses a derivation path of the form "m/44'/0'/0'/0/0" into
// its raw BIP-32 child indices, applying the hardened offset to any
// segment suffixed with ' or h.
func ParsePath(path string) ([]uint32, error) {
	path = strings.TrimSpace(path)
	path = strings.TrimPrefix(path, "m/")
	path = strings.TrimPrefix(path, "M/")
	if path == "" {
		return nil, slip39err.ErrInvalidDerivationPath
	}

	parts := strings.Split(path, "/")
	indices := make([]uint32, 0, len(parts))
	for _, part := range parts {
		hardened := false
		if strings.HasSuffix(part, "'") || strings.HasSuffix(part, "h") || strings.HasSuffix(part, "H") {
			hardened = true
			part = part[:len(part)-1]
		}

		n, err := strconv.ParseUint(part, 10, 32)
		if err != nil || n >= uint64(hardenedOffset) {
			return nil, slip39err.WithDetails(
				slip39err.ErrInvalidDerivationPath,
				map[string]string{"segment": part},
			)
		}

		idx := uint32(n)
		if hardened {
			idx += hardenedOffset
		}
		indices = append(indices, idx)
	}

	return indices, nil
}

// ethereumAddress computes the Keccak-256-based Ethereum-style address
// for key's public key, decompressing the 33-byte SEC1 form bip32
// produces into the 64-byte (X||Y) form the address scheme hashes.
func ethereumAddress(key *bip32.Key) (address, pubKeyHex string, err error) {
	pub := key.PublicKey()

	parsed, parseErr := secp256k1.ParsePubKey(pub.Key)
	if parseErr != nil {
		return "", "", slip39err.Wrap(parseErr, "decompressing public key")
	}

	uncompressed := parsed.SerializeUncompressed()
	// uncompressed is 0x04 || X(32) || Y(32); the address hashes only X||Y.
	hash := sha3.NewLegacyKeccak256()
	hash.Write(uncompressed[1:])
	digest := hash.Sum(nil)

	return "0x" + hex.EncodeToString(digest[12:]), hex.EncodeToString(pub.Key), nil
}

// Package bip39bridge bridges BIP-39 mnemonic phrases into SLIP-39
// master secrets. It is a pure adapter: given a BIP-39 recovery phrase,
// it recovers the underlying entropy so the caller can hand that
// entropy to slip39.ShareGenerator.Generate as the master secret,
// letting an existing BIP-39 wallet be re-protected with SLIP-39
// sharing. It never derives keys or addresses itself — that belongs to
// internal/derive.
package bip39bridge

import (
	"github.com/tyler-smith/go-bip39"

	slip39err "github.com/mrz1836/go-slip39/pkg/errors"
)

// EntropyFromMnemonic validates a BIP-39 mnemonic and returns its
// underlying entropy, suitable as a slip39.ShareGenerator master
// secret. BIP-39 entropy is always even-length (16-32 bytes in 4-byte
// steps), so it already satisfies the SLIP-39 seed-length invariant.
func EntropyFromMnemonic(mnemonic string) ([]byte, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, slip39err.ErrInvalidBIP39Mnemonic
	}

	entropy, err := bip39.EntropyFromMnemonic(mnemonic)
	if err != nil {
		return nil, slip39err.WithSuggestion(
			slip39err.ErrInvalidBIP39Mnemonic,
			"check the phrase for typos and try again",
		)
	}

	return entropy, nil
}

// MnemonicFromEntropy renders entropy (16-32 bytes, as recovered from
// slip39.ShareCombiner.Combine) back into a BIP-39 mnemonic, the
// inverse bridge direction for round-tripping a BIP-39 wallet through
// SLIP-39 sharing and back.
func MnemonicFromEntropy(entropy []byte) (string, error) {
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", slip39err.Wrap(err, "encoding entropy as BIP-39 mnemonic")
	}
	return mnemonic, nil
}

// SeedFromMnemonic derives the 64-byte BIP-39 seed from a mnemonic and
// optional passphrase, the value a BIP-32 derivation demo consumes
// once a SLIP-39 recovery has handed back the original BIP-39 phrase.
func SeedFromMnemonic(mnemonic, passphrase string) ([]byte, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, slip39err.ErrInvalidBIP39Mnemonic
	}
	return bip39.NewSeed(mnemonic, passphrase), nil
}

package bip39bridge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tyler-smith/go-bip39"

	"github.com/mrz1836/go-slip39/internal/bip39bridge"
	slip39err "github.com/mrz1836/go-slip39/pkg/errors"
)

func testMnemonic(t *testing.T, bitSize int) string {
	t.Helper()
	entropy, err := bip39.NewEntropy(bitSize)
	require.NoError(t, err)
	mnemonic, err := bip39.NewMnemonic(entropy)
	require.NoError(t, err)
	return mnemonic
}

func TestEntropyFromMnemonic_RoundTrip(t *testing.T) {
	t.Parallel()

	mnemonic := testMnemonic(t, 128)
	entropy, err := bip39bridge.EntropyFromMnemonic(mnemonic)
	require.NoError(t, err)
	assert.Len(t, entropy, 16)

	back, err := bip39bridge.MnemonicFromEntropy(entropy)
	require.NoError(t, err)
	assert.Equal(t, mnemonic, back)
}

func TestEntropyFromMnemonic_256Bit(t *testing.T) {
	t.Parallel()

	mnemonic := testMnemonic(t, 256)
	entropy, err := bip39bridge.EntropyFromMnemonic(mnemonic)
	require.NoError(t, err)
	assert.Len(t, entropy, 32)
}

func TestEntropyFromMnemonic_Invalid(t *testing.T) {
	t.Parallel()

	_, err := bip39bridge.EntropyFromMnemonic("not a valid mnemonic phrase at all")
	require.Error(t, err)
	assert.Equal(t, "INVALID_BIP39_MNEMONIC", slip39err.Code(err))
}

func TestEntropyFromMnemonic_CorruptedWord(t *testing.T) {
	t.Parallel()

	mnemonic := testMnemonic(t, 128)
	words := []byte(mnemonic)
	words[0] ^= 1 // corrupt the first character of the first word

	_, err := bip39bridge.EntropyFromMnemonic(string(words))
	require.Error(t, err)
}

func TestSeedFromMnemonic(t *testing.T) {
	t.Parallel()

	mnemonic := testMnemonic(t, 128)
	seed, err := bip39bridge.SeedFromMnemonic(mnemonic, "")
	require.NoError(t, err)
	assert.Len(t, seed, 64)

	seedWithPass, err := bip39bridge.SeedFromMnemonic(mnemonic, "extra")
	require.NoError(t, err)
	assert.NotEqual(t, seed, seedWithPass)
}

func TestSeedFromMnemonic_Invalid(t *testing.T) {
	t.Parallel()

	_, err := bip39bridge.SeedFromMnemonic("invalid mnemonic", "")
	require.Error(t, err)
}

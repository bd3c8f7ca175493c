package derive_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/go-slip39/internal/derive"
)

func testSeed() []byte {
	return bytes.Repeat([]byte{0x5A}, 64)
}

func TestParsePath(t *testing.T) {
	t.Parallel()

	segments, err := derive.ParsePath("m/44'/60'/0'/0/0")
	require.NoError(t, err)
	require.Len(t, segments, 5)
	assert.Equal(t, uint32(0x80000000+44), segments[0])
	assert.Equal(t, uint32(0x80000000+60), segments[1])
	assert.Equal(t, uint32(0x80000000+0), segments[2])
	assert.Equal(t, uint32(0), segments[3])
	assert.Equal(t, uint32(0), segments[4])
}

func TestParsePath_Empty(t *testing.T) {
	t.Parallel()

	_, err := derive.ParsePath("")
	require.Error(t, err)
}

func TestParsePath_InvalidSegment(t *testing.T) {
	t.Parallel()

	_, err := derive.ParsePath("m/44'/abc/0")
	require.Error(t, err)
}

func TestParsePath_OutOfRange(t *testing.T) {
	t.Parallel()

	_, err := derive.ParsePath("m/5000000000")
	require.Error(t, err)
}

func TestDerive(t *testing.T) {
	t.Parallel()

	acct, err := derive.Derive(testSeed(), "m/44'/60'/0'/0/0")
	require.NoError(t, err)
	assert.Equal(t, "m/44'/60'/0'/0/0", acct.Path)
	assert.NotEmpty(t, acct.ExtendedKey)
	assert.Len(t, acct.PublicKeyHex, 66) // 33 compressed bytes, hex-encoded
	assert.Contains(t, acct.Address, "0x")
	assert.Len(t, acct.Address, 42)
}

func TestDerive_Deterministic(t *testing.T) {
	t.Parallel()

	a, err := derive.Derive(testSeed(), "m/44'/60'/0'/0/0")
	require.NoError(t, err)
	b, err := derive.Derive(testSeed(), "m/44'/60'/0'/0/0")
	require.NoError(t, err)
	assert.Equal(t, a.Address, b.Address)
}

func TestDerive_DifferentPathsDiffer(t *testing.T) {
	t.Parallel()

	a, err := derive.Derive(testSeed(), "m/44'/60'/0'/0/0")
	require.NoError(t, err)
	b, err := derive.Derive(testSeed(), "m/44'/60'/0'/0/1")
	require.NoError(t, err)
	assert.NotEqual(t, a.Address, b.Address)
}

func TestDerive_InvalidPath(t *testing.T) {
	t.Parallel()

	_, err := derive.Derive(testSeed(), "not-a-path/x")
	require.Error(t, err)
}

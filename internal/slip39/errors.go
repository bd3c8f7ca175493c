// Package slip39 implements the SLIP-39 two-level Shamir secret sharing
// scheme: splitting a master secret into mnemonic-encoded shares and
// recovering it from a threshold subset of those shares.
package slip39

import "errors"

// Sentinel errors for the core operations. Callers that need a stable,
// machine-readable code for one of these should match on the wrapped
// *errors.Slip39Error via pkg/errors, not on these values directly —
// these exist for errors.Is/errors.As and for package-internal use.
var (
	// ErrInvalidSeedLength is returned when a master secret is shorter
	// than 16 bytes or has an odd length.
	ErrInvalidSeedLength = errors.New("seed must be at least 16 bytes and have even length")

	// ErrInvalidGroupConfig is returned when a group or member
	// threshold/count violates the group/member configuration rules.
	ErrInvalidGroupConfig = errors.New("invalid group configuration")

	// ErrUnknownWord is returned when a mnemonic word is not present in
	// the word list.
	ErrUnknownWord = errors.New("unknown word in mnemonic")

	// ErrTooShort is returned when a mnemonic has fewer words than the
	// minimum required.
	ErrTooShort = errors.New("mnemonic is too short")

	// ErrBadChecksum is returned when the RS1024 checksum does not
	// evaluate to 1 under the chosen customization string.
	ErrBadChecksum = errors.New("invalid mnemonic checksum")

	// ErrInvalidPadding is returned when the value padding bits are
	// nonzero, or the decoded padding length exceeds 8 bits.
	ErrInvalidPadding = errors.New("invalid value padding")

	// ErrMixedShareSet is returned when shares being combined disagree
	// on id, extendable, iteration exponent, group threshold/count, or
	// (within a group) member threshold.
	ErrMixedShareSet = errors.New("shares belong to different sharing sets")

	// ErrWrongGroupCount is returned when the number of distinct groups
	// presented does not equal the group threshold.
	ErrWrongGroupCount = errors.New("wrong number of groups presented")

	// ErrWrongMemberCount is returned when the number of members
	// presented for a group does not equal that group's member
	// threshold.
	ErrWrongMemberCount = errors.New("wrong number of members presented for group")

	// ErrDuplicateIndex is returned when a group or member index is
	// repeated within its scope.
	ErrDuplicateIndex = errors.New("duplicate share index")

	// ErrDigestMismatch is returned when the recomputed HMAC digest
	// does not match the digest share recovered by interpolation.
	ErrDigestMismatch = errors.New("secret digest mismatch")

	// ErrNonAsciiPassphrase is returned when a passphrase contains a
	// non-printable or non-ASCII character.
	ErrNonAsciiPassphrase = errors.New("passphrase must be printable ASCII")

	// ErrShortBuffer is returned when a BitPacker read consumes more
	// bits than are available.
	ErrShortBuffer = errors.New("bit buffer exhausted")
)

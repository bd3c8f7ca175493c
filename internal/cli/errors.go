package cli

import (
	"errors"

	"github.com/mrz1836/go-slip39/internal/slip39"
	slip39err "github.com/mrz1836/go-slip39/pkg/errors"
)

// mapSlip39Error translates a core internal/slip39 sentinel into its
// pkg/errors.Slip39Error counterpart, so CLI output and exit codes go
// through slip39err.Code/slip39err.ExitCode instead of collapsing to
// GENERAL_ERROR. Errors that are already a *Slip39Error (or nil) pass
// through unchanged.
func mapSlip39Error(err error) error {
	if err == nil {
		return nil
	}

	var se *slip39err.Slip39Error
	if errors.As(err, &se) {
		return err
	}

	switch {
	case errors.Is(err, slip39.ErrInvalidSeedLength):
		return slip39err.ErrInvalidSeedLength
	case errors.Is(err, slip39.ErrInvalidGroupConfig):
		return slip39err.ErrInvalidGroupConfig
	case errors.Is(err, slip39.ErrUnknownWord):
		return slip39err.ErrUnknownWord
	case errors.Is(err, slip39.ErrTooShort):
		return slip39err.ErrTooShort
	case errors.Is(err, slip39.ErrBadChecksum):
		return slip39err.ErrBadChecksum
	case errors.Is(err, slip39.ErrInvalidPadding):
		return slip39err.ErrInvalidPadding
	case errors.Is(err, slip39.ErrMixedShareSet):
		return slip39err.ErrMixedShareSet
	case errors.Is(err, slip39.ErrWrongGroupCount):
		return slip39err.ErrWrongGroupCount
	case errors.Is(err, slip39.ErrWrongMemberCount):
		return slip39err.ErrWrongMemberCount
	case errors.Is(err, slip39.ErrDuplicateIndex):
		return slip39err.ErrDuplicateIndex
	case errors.Is(err, slip39.ErrDigestMismatch):
		return slip39err.ErrDigestMismatch
	case errors.Is(err, slip39.ErrNonAsciiPassphrase):
		return slip39err.ErrNonAsciiPassphrase
	default:
		return slip39err.Wrap(err, "slip39")
	}
}

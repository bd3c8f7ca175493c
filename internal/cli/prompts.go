package cli

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	slip39err "github.com/mrz1836/go-slip39/pkg/errors"
)

// Indirection points for tests: production code calls the Fn
// variables below so tests can
// substitute canned answers instead of driving a real terminal.
//
//nolint:gochecknoglobals // test seam
var (
	promptHiddenFn       = promptHidden
	promptNewPasswordFn  = promptNewPassword
	promptPassphraseFn   = promptPassphrase
	promptConfirmationFn = promptConfirmation
)

// promptHidden prompts for input with hidden (non-echoed) terminal
// entry via golang.org/x/term.
func promptHidden(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)

	input, err := term.ReadPassword(syscall.Stdin)
	fmt.Fprintln(os.Stderr)

	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	return input, nil
}

// promptNewPassword prompts for a new backup password with confirmation.
// The caller owns zeroing the returned bytes.
func promptNewPassword() ([]byte, error) {
	password, err := promptHiddenFn("Enter backup password: ")
	if err != nil {
		return nil, err
	}

	if len(password) < 8 {
		zero(password)
		return nil, slip39err.WithSuggestion(
			slip39err.ErrInvalidInput,
			"password must be at least 8 characters",
		)
	}

	confirm, err := promptHiddenFn("Confirm password: ")
	if err != nil {
		zero(password)
		return nil, err
	}
	defer zero(confirm)

	if string(password) != string(confirm) {
		zero(password)
		return nil, slip39err.WithSuggestion(
			slip39err.ErrInvalidInput,
			"passwords do not match",
		)
	}

	return password, nil
}

// promptPassphrase prompts for an optional SLIP-39 passphrase. Unlike
// promptNewPassword, there is no minimum length: the empty passphrase
// is the SLIP-39 default.
func promptPassphrase() (string, error) {
	fmt.Fprintln(os.Stderr, "SLIP-39 passphrase (optional, press Enter to skip):")

	passphrase, err := promptHiddenFn("Enter passphrase: ")
	if err != nil {
		return "", err
	}
	if len(passphrase) == 0 {
		return "", nil
	}
	defer zero(passphrase)

	confirm, err := promptHiddenFn("Confirm passphrase: ")
	if err != nil {
		return "", err
	}
	defer zero(confirm)

	if string(passphrase) != string(confirm) {
		return "", slip39err.WithSuggestion(
			slip39err.ErrInvalidInput,
			"passphrases do not match",
		)
	}

	return string(passphrase), nil
}

// promptConfirmation asks the user to confirm a destructive or
// security-sensitive action.
func promptConfirmation(question string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N]: ", question)

	var response string
	if _, err := fmt.Scanln(&response); err != nil {
		return false
	}

	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

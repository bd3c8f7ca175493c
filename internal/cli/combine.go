package cli

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrz1836/go-slip39/internal/bip39bridge"
	"github.com/mrz1836/go-slip39/internal/slip39"
	"github.com/mrz1836/go-slip39/internal/wordlist"
	slip39err "github.com/mrz1836/go-slip39/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	combineMnemonics     []string
	combineFile          string
	combineUsePassphrase bool
	combineAsBIP39       bool
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var combineCmd = &cobra.Command{
	Use:   "combine",
	Short: "Recover a secret from SLIP-39 mnemonic shares",
	Long: `Combine reconstructs the original master secret from a
threshold-meeting set of SLIP-39 mnemonic shares.

Shares can be passed with repeated --share flags, read from a file
with --file (one mnemonic per line), or entered interactively on
stdin when neither is given.

Example:
  slip39 combine --share "..." --share "..." --share "..."
  slip39 combine --file shares.txt`,
	RunE: runCombine,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(combineCmd)

	combineCmd.Flags().StringArrayVar(&combineMnemonics, "share", nil, "a SLIP-39 mnemonic sentence, repeatable")
	combineCmd.Flags().StringVar(&combineFile, "file", "", "path to a file with one mnemonic per line")
	combineCmd.Flags().BoolVar(&combineUsePassphrase, "passphrase", false, "prompt for the SLIP-39 passphrase")
	combineCmd.Flags().BoolVar(&combineAsBIP39, "as-bip39", false, "render the recovered secret as a BIP-39 mnemonic")
}

func runCombine(cmd *cobra.Command, _ []string) error {
	ctx := GetCmdContext(cmd)

	sentences, err := collectMnemonics(cmd)
	if err != nil {
		return err
	}

	shares := make([]slip39.Share, 0, len(sentences))
	for _, sentence := range sentences {
		share, parseErr := slip39.ShareFromMnemonic(ctx.Codec, sentence)
		if parseErr != nil {
			return mapSlip39Error(annotateUnknownWord(parseErr, sentence))
		}
		shares = append(shares, share)
	}

	var passphrase string
	if combineUsePassphrase {
		passphrase, err = promptPassphraseFn()
		if err != nil {
			return err
		}
	}

	secret, err := (slip39.ShareCombiner{Passphrase: passphrase}).Combine(shares)
	if err != nil {
		return mapSlip39Error(err)
	}
	defer zero(secret)

	return displayRecoveredSecret(cmd, ctx, secret)
}

// collectMnemonics gathers mnemonic sentences from flags, a file, or
// interactive stdin, in that order of precedence.
func collectMnemonics(cmd *cobra.Command) ([]string, error) {
	if len(combineMnemonics) > 0 {
		return combineMnemonics, nil
	}

	if combineFile != "" {
		// #nosec G304 -- path is from user input
		data, err := os.ReadFile(combineFile)
		if err != nil {
			return nil, slip39err.Wrap(err, "reading share file")
		}
		return nonEmptyLines(string(data)), nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Enter mnemonic shares, one per line. Enter a blank line when done:")
	scanner := bufio.NewScanner(os.Stdin)
	var lines []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			break
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return nil, slip39err.WithSuggestion(slip39err.ErrInvalidInput, "no shares provided")
	}
	return lines, nil
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// annotateUnknownWord adds a "did you mean" suggestion when the
// failure is an unrecognized word, mirroring a BIP-39
// typo-detection UX.
func annotateUnknownWord(err error, sentence string) error {
	if !errors.Is(err, slip39.ErrUnknownWord) {
		return err
	}

	for _, word := range strings.Fields(sentence) {
		if suggestion := wordlist.Suggest(word); suggestion != "" && suggestion != strings.ToLower(word) {
			return slip39err.WithDetails(slip39err.ErrUnknownWord, map[string]string{
				"word":       word,
				"suggestion": suggestion,
			})
		}
	}
	return err
}

func displayRecoveredSecret(cmd *cobra.Command, ctx *CommandContext, secret []byte) error {
	w := cmd.OutOrStdout()

	if combineAsBIP39 {
		mnemonic, err := bip39bridge.MnemonicFromEntropy(secret)
		if err != nil {
			return err
		}
		if ctx.Fmt.IsJSON() {
			return writeJSON(w, map[string]string{"bip39_mnemonic": mnemonic})
		}
		fmt.Fprintln(w, "Recovered BIP-39 mnemonic:")
		fmt.Fprintln(w, mnemonic)
		return nil
	}

	secretHex := hex.EncodeToString(secret)
	if ctx.Fmt.IsJSON() {
		return writeJSON(w, map[string]string{"secret": secretHex})
	}
	fmt.Fprintln(w, "Recovered secret:")
	fmt.Fprintln(w, secretHex)
	return nil
}

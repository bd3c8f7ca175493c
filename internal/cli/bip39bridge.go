package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrz1836/go-slip39/internal/bip39bridge"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var bip39Mnemonic string

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var bip39BridgeCmd = &cobra.Command{
	Use:   "bip39-bridge",
	Short: "Bridge a BIP-39 mnemonic into a SLIP-39 master secret",
	Long: `bip39-bridge recovers the entropy behind a BIP-39 recovery
phrase and prints it as hex, ready to pass to "slip39 generate --secret"
so an existing BIP-39 wallet can be re-protected with SLIP-39 sharing.

Example:
  slip39 bip39-bridge --mnemonic "abandon abandon ... about"`,
	RunE: runBIP39Bridge,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(bip39BridgeCmd)
	bip39BridgeCmd.Flags().StringVar(&bip39Mnemonic, "mnemonic", "", "BIP-39 mnemonic phrase")
}

func runBIP39Bridge(cmd *cobra.Command, _ []string) error {
	ctx := GetCmdContext(cmd)

	mnemonic := bip39Mnemonic
	if mnemonic == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "Enter BIP-39 mnemonic:")
		line, err := promptHiddenFn("")
		if err != nil {
			return err
		}
		mnemonic = strings.TrimSpace(string(line))
	}

	entropy, err := bip39bridge.EntropyFromMnemonic(mnemonic)
	if err != nil {
		return err
	}
	defer zero(entropy)

	w := cmd.OutOrStdout()
	secretHex := fmt.Sprintf("%x", entropy)
	if ctx.Fmt.IsJSON() {
		return writeJSON(w, map[string]string{"secret": secretHex})
	}
	fmt.Fprintln(w, "Master secret (pass to: slip39 generate --secret):")
	fmt.Fprintln(w, secretHex)
	return nil
}

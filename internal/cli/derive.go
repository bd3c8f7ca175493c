package cli

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrz1836/go-slip39/internal/derive"
	slip39err "github.com/mrz1836/go-slip39/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	deriveSeedHex string
	derivePath    string
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var deriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Derive a BIP-32 account from a recovered seed",
	Long: `derive takes a seed (typically the hex secret printed by
"slip39 combine") and walks a BIP-32
derivation path, printing the resulting extended key and an
Ethereum-style address. This is a demonstration of using a recovered
secret, not a core SLIP-39 capability.

Example:
  slip39 derive --seed 5a5a5a... --path "m/44'/60'/0'/0/0"`,
	RunE: runDerive,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(deriveCmd)
	deriveCmd.Flags().StringVar(&deriveSeedHex, "seed", "", "seed as hex (required)")
	deriveCmd.Flags().StringVar(&derivePath, "path", "", "BIP-32 derivation path (default: config default)")
	_ = deriveCmd.MarkFlagRequired("seed")
}

func runDerive(cmd *cobra.Command, _ []string) error {
	ctx := GetCmdContext(cmd)

	seed, err := hex.DecodeString(deriveSeedHex)
	if err != nil {
		return slip39err.WithSuggestion(slip39err.ErrInvalidInput, "seed must be valid hex")
	}
	defer zero(seed)

	path := derivePath
	if path == "" {
		path = ctx.Cfg.Derivation.DefaultPath
	}

	account, err := derive.Derive(seed, path)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if ctx.Fmt.IsJSON() {
		return writeJSON(w, account)
	}
	fmt.Fprintln(w, "Derived account:")
	fmt.Fprintf(w, "  Path:         %s\n", account.Path)
	fmt.Fprintf(w, "  Extended key: %s\n", account.ExtendedKey)
	fmt.Fprintf(w, "  Public key:   %s\n", account.PublicKeyHex)
	fmt.Fprintf(w, "  Address:      %s\n", account.Address)
	return nil
}

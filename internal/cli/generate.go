package cli

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrz1836/go-slip39/internal/secure"
	"github.com/mrz1836/go-slip39/internal/slip39"
	slip39err "github.com/mrz1836/go-slip39/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	generateSecretHex     string
	generateSecretBytes   int
	generateGroupThresh   int
	generateGroups        []string
	generateExtendable    bool
	generateUsePassphrase bool
	generateIterationExp  int
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Split a secret into SLIP-39 mnemonic shares",
	Long: `Generate splits a master secret into mnemonic-encoded shares
across one or more groups, each with its own member threshold.

Groups are given as "threshold:count" pairs. With no --group flags,
the configured default group template is used.

Example:
  slip39 generate --group-threshold 1 --group 3:5
  slip39 generate --secret 00112233445566778899aabbccddeeff --group 2:3 --group 3:5 --group-threshold 2`,
	RunE: runGenerate,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&generateSecretHex, "secret", "", "master secret as hex (random if omitted)")
	generateCmd.Flags().IntVar(&generateSecretBytes, "secret-bytes", 16, "random secret length in bytes, when --secret is omitted")
	generateCmd.Flags().IntVar(&generateGroupThresh, "group-threshold", 0, "number of groups required to recover (default: config default)")
	generateCmd.Flags().StringArrayVar(&generateGroups, "group", nil, `group as "threshold:count", repeatable`)
	generateCmd.Flags().BoolVar(&generateExtendable, "extendable", true, "set the extendable backup flag")
	generateCmd.Flags().BoolVar(&generateUsePassphrase, "passphrase", false, "prompt for a SLIP-39 passphrase")
	generateCmd.Flags().IntVar(&generateIterationExp, "iteration-exponent", -1, "Feistel iteration exponent (default: config default)")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx := GetCmdContext(cmd)

	secretBytes, err := resolveSecret()
	if err != nil {
		return err
	}
	defer zero(secretBytes)

	groups, groupThreshold, err := resolveGroups(ctx)
	if err != nil {
		return err
	}

	exponent := generateIterationExp
	if exponent < 0 {
		exponent = ctx.Cfg.GetIterationExponent()
	}
	if exponent < 0 || exponent > 15 {
		return slip39err.WithSuggestion(slip39err.ErrInvalidInput, "iteration exponent must be between 0 and 15")
	}

	var passphrase string
	if generateUsePassphrase {
		passphrase, err = promptPassphraseFn()
		if err != nil {
			return err
		}
	}

	generator := slip39.ShareGenerator{
		Passphrase:        passphrase,
		IterationExponent: uint8(exponent), //nolint:gosec // exponent is range-checked to 0..15 above
		Extendable:        generateExtendable,
		Random:            secure.Reader,
	}

	shareGroups, err := generator.Generate(secretBytes, groupThreshold, groups)
	if err != nil {
		return mapSlip39Error(err)
	}

	return displayGeneratedShares(cmd, ctx, shareGroups)
}

// resolveSecret returns the explicit --secret hex if given, otherwise
// a fresh cryptographically random secret of --secret-bytes length.
func resolveSecret() ([]byte, error) {
	if generateSecretHex != "" {
		secretBytes, err := hex.DecodeString(generateSecretHex)
		if err != nil {
			return nil, slip39err.WithSuggestion(slip39err.ErrInvalidInput, "secret must be valid hex")
		}
		return secretBytes, nil
	}

	n := generateSecretBytes
	if n < 16 || n%2 != 0 {
		return nil, slip39err.ErrInvalidSeedLength
	}

	secretBytes := make([]byte, n)
	if _, err := rand.Read(secretBytes); err != nil {
		return nil, slip39err.Wrap(err, "generating random secret")
	}
	return secretBytes, nil
}

// resolveGroups parses --group flags into slip39.GroupSpec values,
// falling back to the configured default template when none are given.
func resolveGroups(ctx *CommandContext) ([]slip39.GroupSpec, int, error) {
	threshold := generateGroupThresh

	if len(generateGroups) == 0 {
		groups := make([]slip39.GroupSpec, 0, len(ctx.Cfg.Sharing.DefaultGroups))
		for _, g := range ctx.Cfg.Sharing.DefaultGroups {
			groups = append(groups, slip39.GroupSpec{MemberThreshold: g.MemberThreshold, MemberCount: g.MemberCount})
		}
		if threshold == 0 {
			threshold = ctx.Cfg.Sharing.DefaultGroupThreshold
		}
		return groups, threshold, nil
	}

	groups := make([]slip39.GroupSpec, 0, len(generateGroups))
	for _, spec := range generateGroups {
		parts := strings.SplitN(spec, ":", 2)
		if len(parts) != 2 {
			return nil, 0, slip39err.WithDetails(slip39err.ErrInvalidGroupConfig, map[string]string{"group": spec})
		}
		memberThreshold, errT := strconv.Atoi(parts[0])
		memberCount, errC := strconv.Atoi(parts[1])
		if errT != nil || errC != nil {
			return nil, 0, slip39err.WithDetails(slip39err.ErrInvalidGroupConfig, map[string]string{"group": spec})
		}
		groups = append(groups, slip39.GroupSpec{MemberThreshold: memberThreshold, MemberCount: memberCount})
	}

	if threshold == 0 {
		threshold = len(groups)
	}

	return groups, threshold, nil
}

func displayGeneratedShares(cmd *cobra.Command, ctx *CommandContext, groups [][]slip39.Share) error {
	type memberOut struct {
		MemberIndex int    `json:"member_index"`
		Mnemonic    string `json:"mnemonic"`
	}
	type groupOut struct {
		GroupIndex int         `json:"group_index"`
		Members    []memberOut `json:"members"`
	}

	out := make([]groupOut, 0, len(groups))
	for gi, shares := range groups {
		members := make([]memberOut, 0, len(shares))
		for _, s := range shares {
			mnemonic, err := s.ToMnemonic(ctx.Codec)
			if err != nil {
				return slip39err.Wrap(err, "encoding share")
			}
			members = append(members, memberOut{MemberIndex: int(s.MemberIndex), Mnemonic: mnemonic})
		}
		out = append(out, groupOut{GroupIndex: gi, Members: members})
	}

	w := cmd.OutOrStdout()
	if ctx.Fmt.IsJSON() {
		return writeJSON(w, out)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "SLIP-39 Shares")
	fmt.Fprintln(w, strings.Repeat("=", 60))
	for _, g := range out {
		fmt.Fprintf(w, "\nGroup %d:\n", g.GroupIndex)
		for _, m := range g.Members {
			fmt.Fprintf(w, "  Member %d: %s\n", m.MemberIndex, m.Mnemonic)
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Store each share in a separate, secure location.")

	return nil
}

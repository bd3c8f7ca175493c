package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mrz1836/go-slip39/internal/backup"
	"github.com/mrz1836/go-slip39/internal/output"
	"github.com/mrz1836/go-slip39/internal/slip39"
	slip39err "github.com/mrz1836/go-slip39/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	backupLabel   string
	backupInput   string
	backupShares  []string
	backupFile    string
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage encrypted share bundle backups",
	Long:  `Create, verify, and restore password-encrypted backups of a set of SLIP-39 mnemonic shares.`,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a backup bundle from a set of shares",
	Long: `Create encrypts a set of SLIP-39 mnemonic shares into a single
password-protected backup bundle in ~/.slip39/backups/.

Example:
  slip39 backup create --label vault --share "..." --share "..."`,
	RunE: runBackupCreate,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var backupVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify a backup bundle's integrity",
	Long: `Verify checks a backup bundle's structure and checksum, and
optionally its password, without restoring anything.

Example:
  slip39 backup verify --input ~/.slip39/backups/vault-2024-01-15-120000.slip39bak`,
	RunE: runBackupVerify,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var backupRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore the mnemonic shares from a backup bundle",
	Long: `Restore decrypts a backup bundle and prints the mnemonic shares
it contains.

Example:
  slip39 backup restore --input ~/.slip39/backups/vault-2024-01-15-120000.slip39bak`,
	RunE: runBackupRestore,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var backupListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List available backup bundles",
	Aliases: []string{"ls"},
	RunE:    runBackupList,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupCreateCmd)
	backupCmd.AddCommand(backupVerifyCmd)
	backupCmd.AddCommand(backupRestoreCmd)
	backupCmd.AddCommand(backupListCmd)

	backupCreateCmd.Flags().StringVar(&backupLabel, "label", "", "label identifying the bundle")
	backupCreateCmd.Flags().StringArrayVar(&backupShares, "share", nil, "a SLIP-39 mnemonic sentence, repeatable")
	backupCreateCmd.Flags().StringVar(&backupFile, "file", "", "path to a file with one mnemonic per line")

	backupVerifyCmd.Flags().StringVar(&backupInput, "input", "", "path to backup file (required)")
	_ = backupVerifyCmd.MarkFlagRequired("input")

	backupRestoreCmd.Flags().StringVar(&backupInput, "input", "", "path to backup file (required)")
	_ = backupRestoreCmd.MarkFlagRequired("input")
}

func backupService(ctx *CommandContext) *backup.Service {
	return backup.NewService(filepath.Join(ctx.Cfg.GetHome(), "backups"))
}

func runBackupCreate(cmd *cobra.Command, _ []string) error {
	ctx := GetCmdContext(cmd)

	sentences := backupShares
	if len(sentences) == 0 && backupFile != "" {
		var err error
		sentences, err = readMnemonicFile(backupFile)
		if err != nil {
			return err
		}
	}
	if len(sentences) == 0 {
		return slip39err.WithSuggestion(slip39err.ErrInvalidInput, "provide shares with --share or --file")
	}

	shares := make([]slip39.Share, 0, len(sentences))
	for _, sentence := range sentences {
		share, err := slip39.ShareFromMnemonic(ctx.Codec, sentence)
		if err != nil {
			return mapSlip39Error(annotateUnknownWord(err, sentence))
		}
		shares = append(shares, share)
	}

	extendable, groupThreshold, memberCounts := summarizeShares(shares)

	password, err := promptNewPasswordFn()
	if err != nil {
		return err
	}
	defer zero(password)

	svc := backupService(ctx)
	bk, backupPath, err := svc.Create(backupLabel, sentences, extendable, groupThreshold, memberCounts, password)
	if err != nil {
		return slip39err.Wrap(err, "creating backup")
	}

	w := cmd.OutOrStdout()
	if ctx.Fmt.IsJSON() {
		return writeJSON(w, map[string]any{
			"path":     backupPath,
			"checksum": bk.Checksum,
			"manifest": bk.Manifest,
		})
	}
	output.Success(w, "Backup created successfully.")
	fmt.Fprintf(w, "  File:     %s\n", backupPath)
	fmt.Fprintf(w, "  Checksum: %s\n", bk.Checksum[:16]+"...")
	return nil
}

func runBackupVerify(cmd *cobra.Command, _ []string) error {
	ctx := GetCmdContext(cmd)
	svc := backupService(ctx)

	manifest, err := svc.Verify(backupInput)
	if err != nil {
		return slip39err.Wrap(err, "verifying backup")
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, "Backup structure verified.")
	fmt.Fprintf(w, "  Label:           %s\n", manifest.Label)
	fmt.Fprintf(w, "  Created:         %s\n", manifest.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "  Group threshold: %d of %d\n", manifest.GroupThreshold, manifest.GroupCount)

	fmt.Fprintln(w, "\nTo test decryption, enter your password (or press Enter to skip):")
	password, err := promptHiddenFn("Password: ")
	if err != nil {
		return err
	}
	defer zero(password)

	if len(password) > 0 {
		if _, err := svc.VerifyWithDecryption(backupInput, password); err != nil {
			return slip39err.WithSuggestion(slip39err.ErrDecryptionFailed, "wrong password or corrupted backup")
		}
		fmt.Fprintln(w, "Decryption verified.")
	}

	return nil
}

func runBackupRestore(cmd *cobra.Command, _ []string) error {
	ctx := GetCmdContext(cmd)
	svc := backupService(ctx)

	password, err := promptHiddenFn("Enter backup password: ")
	if err != nil {
		return err
	}
	defer zero(password)

	mnemonics, err := svc.Restore(backupInput, password)
	if err != nil {
		return slip39err.Wrap(err, "restoring backup")
	}

	w := cmd.OutOrStdout()
	if ctx.Fmt.IsJSON() {
		return writeJSON(w, map[string]any{"mnemonics": mnemonics})
	}
	fmt.Fprintln(w, "Restored shares:")
	for i, m := range mnemonics {
		fmt.Fprintf(w, "  %d: %s\n", i+1, m)
	}
	return nil
}

func runBackupList(cmd *cobra.Command, _ []string) error {
	ctx := GetCmdContext(cmd)
	svc := backupService(ctx)

	backups, err := svc.List()
	if err != nil {
		return slip39err.Wrap(err, "listing backups")
	}

	w := cmd.OutOrStdout()
	if ctx.Fmt.IsJSON() {
		if backups == nil {
			backups = []string{}
		}
		return writeJSON(w, backups)
	}

	if len(backups) == 0 {
		output.Warn(w, "No backups found.")
		return nil
	}

	table := output.NewTable("Backup File")
	for _, b := range backups {
		table.AddRow(b)
	}
	return table.Render(w)
}

// summarizeShares derives backup manifest fields from the shares the
// caller actually supplied: the extendable flag and group threshold
// come directly from the common share metadata, while member counts
// reflect how many of each group's members were included.
func summarizeShares(shares []slip39.Share) (extendable bool, groupThreshold int, memberCounts []int) {
	if len(shares) == 0 {
		return false, 0, nil
	}
	extendable = shares[0].Extendable
	groupThreshold = int(shares[0].GroupThreshold)

	counts := make(map[uint8]int)
	for _, s := range shares {
		counts[s.GroupIndex]++
	}
	indices := make([]int, 0, len(counts))
	for gi := range counts {
		indices = append(indices, int(gi))
	}
	sort.Ints(indices)

	memberCounts = make([]int, 0, len(indices))
	for _, gi := range indices {
		memberCounts = append(memberCounts, counts[uint8(gi)])
	}
	return extendable, groupThreshold, memberCounts
}

func readMnemonicFile(path string) ([]string, error) {
	// #nosec G304 -- path is from user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, slip39err.Wrap(err, "reading share file")
	}
	return nonEmptyLines(string(data)), nil
}

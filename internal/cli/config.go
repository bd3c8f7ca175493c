package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrz1836/go-slip39/internal/config"
	slip39err "github.com/mrz1836/go-slip39/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `View and modify go-slip39 configuration settings.`,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long: `Create a default configuration file at ~/.slip39/config.yaml.

Example:
  slip39 config init
  slip39 config init --force`,
	RunE: runConfigInit,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configGetCmd = &cobra.Command{
	Use:  "get <path>",
	Short: "Get a configuration value",
	Long: `Get a configuration value by dot-notation path, e.g.:
  slip39 config get sharing.iteration_exponent
  slip39 config get output.default_format`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configSetCmd = &cobra.Command{
	Use:  "set <path> <value>",
	Short: "Set a configuration value",
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var configForce bool

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)

	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite existing configuration")
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	ctx := GetCmdContext(cmd)
	configPath := config.Path(ctx.Cfg.Home)

	if _, err := os.Stat(configPath); err == nil && !configForce {
		return slip39err.WithSuggestion(
			slip39err.ErrGeneral,
			fmt.Sprintf("configuration already exists at %s. Use --force to overwrite.", configPath),
		)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o750); err != nil {
		return slip39err.Wrap(err, "creating config directory")
	}

	defaultCfg := config.Defaults()
	defaultCfg.Home = ctx.Cfg.Home

	if err := config.Save(defaultCfg, configPath); err != nil {
		return slip39err.Wrap(err, "writing config file")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Configuration initialized at %s\n", configPath)
	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	ctx := GetCmdContext(cmd)
	w := cmd.OutOrStdout()

	if ctx.Fmt.IsJSON() {
		return writeJSON(w, ctx.Cfg)
	}

	c := ctx.Cfg
	fmt.Fprintln(w, "Configuration:")
	fmt.Fprintf(w, "  Home: %s\n\n", c.Home)
	fmt.Fprintln(w, "  Sharing:")
	fmt.Fprintf(w, "    iteration_exponent: %d\n", c.Sharing.IterationExponent)
	fmt.Fprintf(w, "    default_group_threshold: %d\n\n", c.Sharing.DefaultGroupThreshold)
	fmt.Fprintln(w, "  Output:")
	fmt.Fprintf(w, "    default_format: %s\n", c.Output.DefaultFormat)
	fmt.Fprintf(w, "    verbose: %t\n\n", c.Output.Verbose)
	fmt.Fprintln(w, "  Logging:")
	fmt.Fprintf(w, "    level: %s\n", c.Logging.Level)
	fmt.Fprintf(w, "    file: %s\n", c.Logging.File)

	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	ctx := GetCmdContext(cmd)
	value, err := getConfigValue(ctx.Cfg, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	ctx := GetCmdContext(cmd)
	path, value := args[0], args[1]

	if _, err := getConfigValue(ctx.Cfg, path); err != nil {
		return err
	}

	configPath := config.Path(ctx.Cfg.Home)
	currentCfg, err := config.Load(configPath)
	if err != nil {
		currentCfg = config.Defaults()
		currentCfg.Home = ctx.Cfg.Home
	}

	if err := setConfigValue(currentCfg, path, value); err != nil {
		return err
	}

	if err := config.Save(currentCfg, configPath); err != nil {
		return slip39err.Wrap(err, "saving config")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", path, value)
	return nil
}

func getConfigValue(c *config.Config, path string) (string, error) {
	switch path {
	case "home":
		return c.Home, nil
	case "sharing.iteration_exponent":
		return strconv.Itoa(c.Sharing.IterationExponent), nil
	case "sharing.default_group_threshold":
		return strconv.Itoa(c.Sharing.DefaultGroupThreshold), nil
	case "output.default_format":
		return c.Output.DefaultFormat, nil
	case "output.verbose":
		return strconv.FormatBool(c.Output.Verbose), nil
	case "output.color":
		return c.Output.Color, nil
	case "logging.level":
		return c.Logging.Level, nil
	case "logging.file":
		return c.Logging.File, nil
	case "derivation.default_path":
		return c.Derivation.DefaultPath, nil
	case "security.memory_lock":
		return strconv.FormatBool(c.Security.MemoryLock), nil
	case "encryption.method":
		return c.Encryption.Method, nil
	default:
		return "", slip39err.WithDetails(slip39err.ErrUnknownConfigKey, map[string]string{"path": path})
	}
}

func setConfigValue(c *config.Config, path, value string) error {
	switch path {
	case "home":
		c.Home = value
	case "sharing.iteration_exponent":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 || n > 15 {
			return slip39err.WithDetails(slip39err.ErrInvalidInput, map[string]string{"value": value, "valid": "0-15"})
		}
		c.Sharing.IterationExponent = n
	case "sharing.default_group_threshold":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return slip39err.WithDetails(slip39err.ErrInvalidInput, map[string]string{"value": value})
		}
		c.Sharing.DefaultGroupThreshold = n
	case "output.default_format":
		if value != "text" && value != "json" && value != "auto" {
			return slip39err.WithDetails(slip39err.ErrInvalidInput, map[string]string{"value": value, "valid": "text, json, or auto"})
		}
		c.Output.DefaultFormat = value
	case "output.verbose":
		c.Output.Verbose = strings.EqualFold(value, "true")
	case "output.color":
		if value != "auto" && value != "always" && value != "never" {
			return slip39err.WithDetails(slip39err.ErrInvalidInput, map[string]string{"value": value, "valid": "auto, always, or never"})
		}
		c.Output.Color = value
	case "logging.level":
		switch value {
		case "off", "error", "debug":
			c.Logging.Level = value
		default:
			return slip39err.WithDetails(slip39err.ErrInvalidInput, map[string]string{"value": value, "valid": "off, error, or debug"})
		}
	case "logging.file":
		c.Logging.File = value
	case "derivation.default_path":
		c.Derivation.DefaultPath = value
	case "security.memory_lock":
		c.Security.MemoryLock = strings.EqualFold(value, "true")
	case "encryption.method":
		c.Encryption.Method = value
	default:
		return slip39err.WithDetails(slip39err.ErrUnknownConfigKey, map[string]string{"path": path})
	}
	return nil
}

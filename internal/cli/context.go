package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mrz1836/go-slip39/internal/config"
	"github.com/mrz1836/go-slip39/internal/output"
	"github.com/mrz1836/go-slip39/internal/slip39"
)

// contextKey is the type for context keys to avoid collisions.
type contextKey string

const cmdCtxKey contextKey = "slip39-cmd-ctx"

// SetCmdContext stores the CommandContext in the cobra command's context.
func SetCmdContext(cmd *cobra.Command, ctx *CommandContext) {
	cmd.SetContext(context.WithValue(cmd.Context(), cmdCtxKey, ctx))
}

// GetCmdContext retrieves the CommandContext from the cobra command's
// context. Returns nil if no context is set.
func GetCmdContext(cmd *cobra.Command) *CommandContext {
	ctx := cmd.Context()
	if ctx == nil {
		return nil
	}
	if cmdCtx, ok := ctx.Value(cmdCtxKey).(*CommandContext); ok {
		return cmdCtx
	}
	return nil
}

// CommandContext holds dependencies for CLI commands.
type CommandContext struct {
	Cfg   *config.Config
	Log   *config.Logger
	Fmt   *output.Formatter
	Codec *slip39.WordCodec
}

// NewCommandContext creates a context with the given dependencies.
func NewCommandContext(cfg *config.Config, logger *config.Logger, formatter *output.Formatter, codec *slip39.WordCodec) *CommandContext {
	return &CommandContext{
		Cfg:   cfg,
		Log:   logger,
		Fmt:   formatter,
		Codec: codec,
	}
}

package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigFolder string
	Format       string // "json" | "text"
}

var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the kboard-admin command tree. open is called by
// each subcommand to reach storage and services.
func NewRootCommand(open Opener) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "kboard-admin",
		Short: "kboard administration",
		Long:  "Administrative actions for kboard: schema, boards, accounts, counter checks and reports.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigFolder, "config_folder", "backend/config", "path to folder with configs")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewMigrateCommand(opts, open))
	cmd.AddCommand(NewBoardCommand(opts, open))
	cmd.AddCommand(NewUserCommand(opts, open))
	cmd.AddCommand(NewCountersCommand(opts, open))
	cmd.AddCommand(NewReportCommand(opts, open))

	return cmd
}

// withEnv opens the environment, runs fn and closes it again.
func withEnv(cmd *cobra.Command, opts *RootOptions, open Opener, fn func(ctx context.Context, env *Env, out *OutputFormatter) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	env, err := open(ctx, opts.ConfigFolder)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open environment", err)
	}
	defer env.Close()

	return fn(ctx, env, &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()})
}

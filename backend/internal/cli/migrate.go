package cli

import (
	"context"

	"github.com/spf13/cobra"
)

func NewMigrateCommand(rootOpts *RootOptions, open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		Long:  "Apply the embedded schema. Safe to run repeatedly.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, rootOpts, open, func(ctx context.Context, env *Env, out *OutputFormatter) error {
				if err := env.Store.Migrate(ctx); err != nil {
					return err
				}
				return out.Print(map[string]string{"status": "ok"}, "schema applied")
			})
		},
	}
}

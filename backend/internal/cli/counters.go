package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func NewCountersCommand(rootOpts *RootOptions, open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "counters",
		Short: "Check denormalized counters",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "verify",
		Short: "Recount threads and replies and report any drift",
		Long: `Compare boards.num_threads and threads.num_replies with fresh counts.
Exits with status 1 when any counter disagrees.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, rootOpts, open, func(ctx context.Context, env *Env, out *OutputFormatter) error {
				drifts, err := env.Store.VerifyCounters(ctx)
				if err != nil {
					return err
				}

				text := "all counters consistent"
				if len(drifts) > 0 {
					lines := make([]string, len(drifts))
					for i, d := range drifts {
						lines[i] = d.String()
					}
					text = strings.Join(lines, "\n")
				}
				if err := out.Print(map[string]any{"drift": drifts}, text); err != nil {
					return err
				}
				if len(drifts) > 0 {
					return NewExitError(ExitFailure, fmt.Sprintf("%d counter(s) drifted", len(drifts)))
				}
				return nil
			})
		},
	})
	return cmd
}

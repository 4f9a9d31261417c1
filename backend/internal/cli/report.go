package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

func NewReportCommand(rootOpts *RootOptions, open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Activity reports",
	}
	cmd.AddCommand(newActivityReportCommand(rootOpts, open, func() time.Time { return time.Now().UTC() }))
	return cmd
}

func newActivityReportCommand(rootOpts *RootOptions, open Opener, now func() time.Time) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Count accounts registered on a UTC day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day := now().AddDate(0, 0, -1)
			if date != "" {
				var err error
				if day, err = time.Parse(dateLayout, date); err != nil {
					return WrapExitError(ExitCommandError, "invalid --date, want YYYY-MM-DD", err)
				}
			}
			return withEnv(cmd, rootOpts, open, func(ctx context.Context, env *Env, out *OutputFormatter) error {
				count, err := env.Users.RegisteredOn(ctx, day)
				if err != nil {
					return err
				}
				label := day.Format(dateLayout)
				return out.Print(
					map[string]any{"date": label, "registered": count},
					fmt.Sprintf("%s: %d new account(s)", label, count),
				)
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "day to report, YYYY-MM-DD (default yesterday, UTC)")
	return cmd
}

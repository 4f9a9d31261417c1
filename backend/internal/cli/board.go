package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func NewBoardCommand(rootOpts *RootOptions, open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Manage boards",
	}
	cmd.AddCommand(newBoardCreateCommand(rootOpts, open))
	return cmd
}

func newBoardCreateCommand(rootOpts *RootOptions, open Opener) *cobra.Command {
	var title, description string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, rootOpts, open, func(ctx context.Context, env *Env, out *OutputFormatter) error {
				board, err := env.Boards.Create(ctx, title, description)
				if err != nil {
					return err
				}
				return out.Print(board, fmt.Sprintf("board %d created: %s", board.Id, board.Title))
			})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "board title")
	cmd.Flags().StringVar(&description, "description", "", "board description")
	cmd.MarkFlagRequired("title")
	return cmd
}

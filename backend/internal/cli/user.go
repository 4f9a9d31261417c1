package cli

import (
	"context"
	"fmt"

	"github.com/kevinclancy/kboard/shared/domain"
	"github.com/kevinclancy/kboard/shared/utils"
	"github.com/spf13/cobra"
)

func NewUserCommand(rootOpts *RootOptions, open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts",
	}
	cmd.AddCommand(newUserCreateCommand(rootOpts, open))
	cmd.AddCommand(newUserFlagCommand(rootOpts, open, "moderator", "Grant or revoke moderator rights", Users.SetModerator))
	cmd.AddCommand(newUserFlagCommand(rootOpts, open, "ban", "Suspend or restore an account", Users.SetBanned))
	cmd.AddCommand(newUserTokenCommand(rootOpts, open))
	return cmd
}

type userSummary struct {
	Id          domain.UserId `json:"id"`
	Pid         string        `json:"pid"`
	Email       string        `json:"email"`
	Name        string        `json:"name"`
	IsModerator bool          `json:"is_moderator"`
	IsBanned    bool          `json:"is_banned"`
}

func summarize(u domain.User) userSummary {
	return userSummary{
		Id:          u.Id,
		Pid:         u.Pid.String(),
		Email:       u.Email,
		Name:        u.Name,
		IsModerator: u.IsModerator,
		IsBanned:    u.IsBanned,
	}
}

func (s userSummary) String() string {
	return fmt.Sprintf("user %d <%s> moderator=%t banned=%t", s.Id, s.Email, s.IsModerator, s.IsBanned)
}

// createdUser also carries the password when the command generated one.
type createdUser struct {
	userSummary
	GeneratedPassword string `json:"generated_password,omitempty"`
}

func (c createdUser) String() string {
	if c.GeneratedPassword == "" {
		return c.userSummary.String()
	}
	return c.userSummary.String() + "\npassword: " + c.GeneratedPassword
}

const generatedPasswordLength = 16

func newUserCreateCommand(rootOpts *RootOptions, open Opener) *cobra.Command {
	var email, name, password string
	var moderator bool
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, rootOpts, open, func(ctx context.Context, env *Env, out *OutputFormatter) error {
				created := createdUser{}
				if password == "" {
					password = utils.GeneratePassword(generatedPasswordLength)
					created.GeneratedPassword = password
				}
				user, err := env.Users.Create(ctx, email, name, password, moderator)
				if err != nil {
					return err
				}
				created.userSummary = summarize(user)
				return out.Print(created, created.String())
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&password, "password", "", "initial password, at least 8 characters; generated when omitted")
	cmd.Flags().BoolVar(&moderator, "moderator", false, "grant moderator rights")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("name")
	return cmd
}

// newUserFlagCommand builds the commands that flip one boolean on an account.
func newUserFlagCommand(rootOpts *RootOptions, open Opener, use, short string, apply func(Users, context.Context, domain.Email, bool) (domain.User, error)) *cobra.Command {
	var email string
	var set bool
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, rootOpts, open, func(ctx context.Context, env *Env, out *OutputFormatter) error {
				user, err := apply(env.Users, ctx, email, set)
				if err != nil {
					return err
				}
				s := summarize(user)
				return out.Print(s, s.String())
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().BoolVar(&set, "set", true, "true to set, false to clear")
	cmd.MarkFlagRequired("email")
	return cmd
}

func newUserTokenCommand(rootOpts *RootOptions, open Opener) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an access token for an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, rootOpts, open, func(ctx context.Context, env *Env, out *OutputFormatter) error {
				token, err := env.Users.Token(ctx, email)
				if err != nil {
					return err
				}
				return out.Print(map[string]string{"token": token}, token)
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.MarkFlagRequired("email")
	return cmd
}

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Juicern/remagik/internal/auth"
)

func newLoginCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "login <email>",
		Short: "Sign in to use your saved tones without limits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, global)
			if err != nil {
				return err
			}
			user, err := e.identity.SignIn(cmd.Context(), args[0])
			if errors.Is(err, auth.ErrInvalidIdentity) {
				return fmt.Errorf("%q is not a valid email address", args[0])
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", user)
			return nil
		},
	}
}

func newLogoutCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, global)
			if err != nil {
				return err
			}
			if err := e.identity.SignOut(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func newUsageCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "usage",
		Short: "Show how many free rewrites are left",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, global)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if user, ok := e.identity.CurrentUser(); ok {
				fmt.Fprintf(out, "Signed in as %s: unlimited rewrites\n", user)
				return nil
			}
			gate, err := e.gate()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Free rewrites used: %d of %d (%s)\n", gate.Count(), gate.Limit(), gate.State())
			return nil
		},
	}
}

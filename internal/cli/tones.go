package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Juicern/remagik/internal/channel"
	"github.com/Juicern/remagik/internal/composer"
)

func newTonesCmd(global *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tones",
		Short: "Manage your tone for each channel",
	}
	cmd.AddCommand(newTonesListCmd(global), newTonesSetCmd(global))
	return cmd
}

func newTonesListCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your saved tones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, global)
			if err != nil {
				return err
			}
			if _, ok := e.identity.CurrentUser(); !ok {
				return userError(composer.ErrNotSignedIn)
			}
			comp, _, err := e.composer(channel.Slack)
			if err != nil {
				return err
			}
			if err := comp.LoadTones(cmd.Context()); err != nil {
				return userError(err)
			}

			out := cmd.OutOrStdout()
			tones := comp.Tones()
			if len(tones) == 0 {
				fmt.Fprintln(out, "No tones saved yet. Use `remagik tones set <channel>` to add one.")
				return nil
			}
			for _, t := range tones {
				fmt.Fprintf(out, "%s\n  prompt:  %s\n  example: %s\n", channel.Describe(t.Channel).DisplayName, orDash(t.Prompt), orDash(t.Example))
			}
			return nil
		},
	}
}

func newTonesSetCmd(global *globalOptions) *cobra.Command {
	var prompt, example string

	cmd := &cobra.Command{
		Use:   "set <channel>",
		Short: "Save the tone used when rewriting for a channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ch, err := parseChannel(args[0])
			if err != nil {
				return err
			}
			e, err := loadEnv(cmd, global)
			if err != nil {
				return err
			}
			comp, _, err := e.composer(ch)
			if err != nil {
				return err
			}
			// The stored list tells SaveTone whether this is an update.
			if err := comp.LoadTones(cmd.Context()); err != nil {
				return userError(err)
			}
			saved, err := comp.SaveTone(cmd.Context(), ch, prompt, example)
			if err != nil {
				return userError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved tone for %s (%s)\n", channel.Describe(ch).DisplayName, saved.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&prompt, "prompt", "", "how the rewrite should sound")
	cmd.Flags().StringVar(&example, "example", "", "a sample message in your voice")
	return cmd
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Juicern/remagik/internal/channel"
)

func newChannelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "channels",
		Short: "List the channels and their platform variants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, ch := range channel.All() {
				d := channel.Describe(ch)
				name := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(d.AccentColor)).Render(d.Icon + " " + d.DisplayName)
				fmt.Fprintf(out, "%s (%s)\n  variants: %s\n", name, strings.ToLower(d.ShortName), strings.Join(d.Variants, ", "))
			}
			return nil
		},
	}
}

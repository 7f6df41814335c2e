package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Juicern/remagik/internal/preview"
)

func newPreviewCmd() *cobra.Command {
	var (
		variant  string
		metadata string
		expanded bool
		format   string
	)

	cmd := &cobra.Command{
		Use:   "preview <channel> [text]",
		Short: "Show how a message looks on a channel, without rewriting it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ch, err := parseChannel(args[0])
			if err != nil {
				return err
			}
			text, err := readText(cmd, args[1:])
			if err != nil {
				return err
			}
			meta, err := loadMetadata(metadata)
			if err != nil {
				return err
			}

			p := preview.NewRenderer().Render(ch, text, preview.Options{Variant: variant, Metadata: meta, Expanded: expanded})
			out := cmd.OutOrStdout()
			switch format {
			case "terminal":
				fmt.Fprintln(out, preview.RenderTerminal(p, 0))
			case "html":
				fmt.Fprintln(out, p.HTML)
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(p)
			default:
				return fmt.Errorf("unknown format %q (terminal, html or json)", format)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&variant, "variant", "", "platform variant, e.g. Apple Mail")
	cmd.Flags().StringVar(&metadata, "metadata", "", "YAML file with preview metadata")
	cmd.Flags().BoolVar(&expanded, "expanded", false, "show long posts in full")
	cmd.Flags().StringVarP(&format, "format", "o", "terminal", "output format: terminal, html or json")
	return cmd
}

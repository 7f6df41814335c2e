package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Juicern/remagik/internal/editor"
	"github.com/Juicern/remagik/internal/preview"
)

type rewriteOptions struct {
	channel  string
	variant  string
	metadata string
	copy     bool
	raw      bool
	expanded bool
	format   []string
}

var formatCommands = map[string]editor.Command{
	"bold":    editor.Bold,
	"italic":  editor.Italic,
	"bullets": editor.BulletList,
}

func newRewriteCmd(global *globalOptions) *cobra.Command {
	var opts rewriteOptions

	cmd := &cobra.Command{
		Use:   "rewrite [text]",
		Short: "Rewrite a draft for a channel and preview it",
		Long: "Rewrite the draft given as arguments (or read from stdin) in your tone for the channel, " +
			"then show how it will look there. Without signing in you get a few free rewrites.",
		Example: `  remagik rewrite -c slack "deploy is done, thanks all"
  cat draft.txt | remagik rewrite -c email --copy
  remagik rewrite -c linkedin --format bold "we hit 1.0"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRewrite(cmd, global, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.channel, "channel", "c", "slack", "target channel")
	cmd.Flags().StringVar(&opts.variant, "variant", "", "platform variant, e.g. Outlook")
	cmd.Flags().StringVar(&opts.metadata, "metadata", "", "YAML file with preview metadata")
	cmd.Flags().BoolVar(&opts.copy, "copy", false, "copy the result to the clipboard")
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "print only the rewritten text")
	cmd.Flags().BoolVar(&opts.expanded, "expanded", false, "show long posts in full")
	cmd.Flags().StringSliceVar(&opts.format, "format", nil, "edit the result before output: bold, italic, bullets")

	return cmd
}

func runRewrite(cmd *cobra.Command, global *globalOptions, opts rewriteOptions, args []string) error {
	ch, err := parseChannel(opts.channel)
	if err != nil {
		return err
	}
	format, err := parseFormat(opts.format)
	if err != nil {
		return err
	}
	meta, err := loadMetadata(opts.metadata)
	if err != nil {
		return err
	}
	draft, err := readText(cmd, args)
	if err != nil {
		return err
	}

	e, err := loadEnv(cmd, global)
	if err != nil {
		return err
	}
	comp, gate, err := e.composer(ch)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	if err := comp.LoadTones(ctx); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", userError(err))
	}

	comp.SetDraft(draft)
	result, err := comp.Submit(ctx)
	if err != nil {
		return userError(err)
	}

	sopts := []preview.SessionOption{preview.WithContentListener(comp.SetResult)}
	if opts.copy {
		ack := preview.NewCopyAck(newClipboard())
		defer ack.Close()
		sopts = append(sopts, preview.WithCopyAck(ack))
	}
	session := preview.NewSession(preview.NewRenderer(), ch, result.RewrittenText, preview.Options{
		Variant:  opts.variant,
		Metadata: meta,
		Expanded: opts.expanded,
	}, sopts...)
	if err := applyFormat(session, format); err != nil {
		return err
	}

	if opts.raw {
		text := result.RewrittenText
		if last := comp.Snapshot().LastResult; last != nil {
			text = last.RewrittenText
		}
		fmt.Fprintln(out, text)
	} else {
		fmt.Fprintln(out, preview.RenderTerminal(session.Render(), 0))
	}

	if opts.copy {
		if err := session.Copy(); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "Copied!")
	}

	if comp.Snapshot().Anonymous {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d free rewrites left. Run `remagik login` for unlimited access.\n", gate.Remaining(), gate.Limit())
	}
	return nil
}

func parseFormat(names []string) ([]editor.Command, error) {
	var commands []editor.Command
	for _, name := range names {
		command, ok := formatCommands[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("unknown format %q (use bold, italic or bullets)", name)
		}
		commands = append(commands, command)
	}
	return commands, nil
}

// applyFormat runs the commands as one inline edit of the preview and
// commits it.
func applyFormat(session *preview.Session, commands []editor.Command) error {
	if len(commands) == 0 {
		return nil
	}
	ed := session.BeginEdit()
	for _, command := range commands {
		if err := ed.Exec(command); err != nil {
			_ = session.Cancel()
			return err
		}
	}
	_, err := session.Commit()
	return err
}

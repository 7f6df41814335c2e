// Package cli is the remagik command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

type globalOptions struct {
	apiURL  string
	home    string
	verbose bool
}

func NewRootCmd() *cobra.Command {
	var global globalOptions

	root := &cobra.Command{
		Use:   "remagik",
		Short: "Rewrite messages for the platform they are going to",
		Long:  "remagik rewrites a draft in the tone you set for Slack, email, company updates, articles or LinkedIn, and previews how it will look there.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&global.apiURL, "api-url", "", "application server URL (default from REMAGIK_API_URL)")
	root.PersistentFlags().StringVar(&global.home, "home", "", "profile directory (default from REMAGIK_HOME)")
	root.PersistentFlags().BoolVarP(&global.verbose, "verbose", "v", false, "log requests to stderr")

	root.AddCommand(
		newRewriteCmd(&global),
		newTonesCmd(&global),
		newPreviewCmd(),
		newChannelsCmd(),
		newLoginCmd(&global),
		newLogoutCmd(&global),
		newUsageCmd(&global),
	)

	root.Version = Version
	root.SetVersionTemplate(fmt.Sprintf("remagik %s\n", Version))

	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

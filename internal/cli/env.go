package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Juicern/remagik/internal/auth"
	"github.com/Juicern/remagik/internal/channel"
	"github.com/Juicern/remagik/internal/composer"
	"github.com/Juicern/remagik/internal/config"
	"github.com/Juicern/remagik/internal/domain"
	"github.com/Juicern/remagik/internal/preview"
	"github.com/Juicern/remagik/internal/remote"
	"github.com/Juicern/remagik/internal/usage"
)

// newClipboard is replaced in tests.
var newClipboard = func() preview.Clipboard { return preview.SystemClipboard{} }

// env is everything a command needs, resolved from config and flags.
type env struct {
	cfg      config.Config
	apiURL   string
	home     string
	logger   *slog.Logger
	identity *auth.ProfileGateway
}

func loadEnv(cmd *cobra.Command, global *globalOptions) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	e := &env{
		cfg:    cfg,
		apiURL: strings.TrimRight(firstSet(global.apiURL, cfg.Client.APIURL), "/"),
		home:   firstSet(global.home, cfg.Client.Home),
	}

	level := slog.LevelError + 4
	if global.verbose {
		level = slog.LevelInfo
	}
	e.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	e.identity, err = auth.NewProfileGateway(e.home)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	return e, nil
}

func (e *env) gate() (*usage.Gate, error) {
	return usage.NewGate(usage.NewFileStore(e.home), e.cfg.Client.FreeUsageLimit)
}

func (e *env) composer(ch channel.Channel) (*composer.Composer, *usage.Gate, error) {
	gate, err := e.gate()
	if err != nil {
		return nil, nil, err
	}
	timeout := remote.WithTimeout(e.cfg.Upstream.Timeout)
	c := composer.New(
		remote.NewRewriteClient(e.apiURL, timeout),
		composer.WithGate(gate),
		composer.WithIdentity(e.identity),
		composer.WithToneStore(remote.NewToneStore(e.apiURL, remote.QueryParam, timeout)),
		composer.WithDemoTones(composer.DemoTones()),
		composer.WithChannel(ch),
		composer.WithLogger(e.logger),
	)
	return c, gate, nil
}

func parseChannel(s string) (channel.Channel, error) {
	if ch, ok := channel.Parse(s); ok {
		return ch, nil
	}
	names := make([]string, 0, len(channel.All()))
	for _, ch := range channel.All() {
		names = append(names, channel.Describe(ch).ShortName)
	}
	return "", fmt.Errorf("unknown channel %q (choose from %s)", s, strings.ToLower(strings.Join(names, ", ")))
}

// readText joins args, or reads stdin when there are none or the only
// argument is "-".
func readText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 && !(len(args) == 1 && args[0] == "-") {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\n"), nil
}

func loadMetadata(path string) (domain.PreviewMetadata, error) {
	var meta domain.PreviewMetadata
	if path == "" {
		return meta, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return meta, err
	}
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return meta, fmt.Errorf("parse metadata: %w", err)
	}
	return meta, nil
}

func userError(err error) error {
	if err == nil {
		return nil
	}
	return errors.New(composer.Message(err))
}

func firstSet(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

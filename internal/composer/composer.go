// Package composer coordinates a single editing session: the draft, the
// selected channel, the user's tones and the rewrite call.
package composer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/Juicern/remagik/internal/channel"
	"github.com/Juicern/remagik/internal/domain"
	"github.com/Juicern/remagik/internal/remote"
)

type Rewriter interface {
	Rewrite(ctx context.Context, req domain.RewriteRequest) (string, error)
}

type ToneStore interface {
	List(ctx context.Context, userID domain.UserID) ([]domain.ToneConfig, error)
	Upsert(ctx context.Context, in remote.UpsertInput) (domain.ToneConfig, error)
}

type Gate interface {
	TryConsume() (bool, error)
}

type Identity interface {
	CurrentUser() (domain.UserID, bool)
}

// Tone is the prompt/example pair sent with a rewrite.
type Tone struct {
	Prompt  string
	Example string
}

type Option func(*Composer)

// WithGate bounds anonymous rewrites. Without a gate anonymous use is
// unlimited.
func WithGate(g Gate) Option {
	return func(c *Composer) { c.gate = g }
}

func WithIdentity(id Identity) Option {
	return func(c *Composer) { c.identity = id }
}

func WithToneStore(s ToneStore) Option {
	return func(c *Composer) { c.tones = s }
}

// WithDemoTones sets the tones used by anonymous users for channels they have
// not configured.
func WithDemoTones(tones map[channel.Channel]Tone) Option {
	return func(c *Composer) { c.demo = tones }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Composer) { c.logger = logger }
}

func WithChannel(ch channel.Channel) Option {
	return func(c *Composer) { c.selected = ch }
}

type Composer struct {
	rewriter Rewriter
	tones    ToneStore
	gate     Gate
	identity Identity
	demo     map[channel.Channel]Tone
	logger   *slog.Logger

	mu          sync.Mutex
	selected    channel.Channel
	draft       string
	toneList    []domain.ToneConfig
	lastResult  *domain.RewriteResult
	lastRequest *domain.RewriteRequest
	busy        bool
}

func New(rewriter Rewriter, opts ...Option) *Composer {
	c := &Composer{
		rewriter: rewriter,
		selected: channel.Slack,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot is a copy of the composer state for display.
type Snapshot struct {
	Channel    channel.Channel
	Draft      string
	Tone       Tone
	ToneID     string
	LastResult *domain.RewriteResult
	Busy       bool
	Anonymous  bool
}

func (c *Composer) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	tone, id := c.resolveTone(c.selected)
	s := Snapshot{
		Channel:   c.selected,
		Draft:     c.draft,
		Tone:      tone,
		ToneID:    id,
		Busy:      c.busy,
		Anonymous: c.anonymous(),
	}
	if c.lastResult != nil {
		r := *c.lastResult
		s.LastResult = &r
	}
	return s
}

func (c *Composer) SetDraft(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = text
}

// SelectChannel switches the target channel. A result produced for another
// channel is dropped so a preview never shows text rewritten for a different
// platform; the draft is kept.
func (c *Composer) SelectChannel(ch channel.Channel) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ch == c.selected {
		return
	}
	c.selected = ch
	c.lastResult = nil
	c.lastRequest = nil
}

// LoadTones replaces the session tone list with the user's stored tones. On
// failure the previous list is kept and rewrites fall back to no tone.
func (c *Composer) LoadTones(ctx context.Context) error {
	if c.tones == nil {
		return nil
	}
	user, ok := c.currentUser()
	if !ok {
		return nil
	}

	tones, err := c.tones.List(ctx, user)
	if err != nil {
		c.logWarn("load tones failed", slog.Any("error", err))
		return fmt.Errorf("%w: %w", ErrTonesUnavailable, err)
	}

	c.mu.Lock()
	c.toneList = tones
	c.mu.Unlock()
	return nil
}

// Tones returns the session tone list.
func (c *Composer) Tones() []domain.ToneConfig {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.ToneConfig(nil), c.toneList...)
}

// SaveTone upserts the user's tone for ch, reusing the id already known for
// that channel, and updates the session list with the stored record.
func (c *Composer) SaveTone(ctx context.Context, ch channel.Channel, prompt, example string) (domain.ToneConfig, error) {
	if c.tones == nil {
		return domain.ToneConfig{}, fmt.Errorf("%w: no tone store configured", ErrToneSaveFailed)
	}
	user, ok := c.currentUser()
	if !ok {
		return domain.ToneConfig{}, ErrNotSignedIn
	}

	c.mu.Lock()
	_, existingID := c.resolveTone(ch)
	c.mu.Unlock()

	saved, err := c.tones.Upsert(ctx, remote.UpsertInput{
		UserID:     user,
		Channel:    ch,
		Prompt:     prompt,
		Example:    example,
		ExistingID: existingID,
	})
	if err != nil {
		c.logWarn("save tone failed", slog.String("channel", ch.String()), slog.Any("error", err))
		return domain.ToneConfig{}, fmt.Errorf("%w: %w", ErrToneSaveFailed, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	replaced := false
	for i := range c.toneList {
		if (saved.ID != "" && c.toneList[i].ID == saved.ID) || (existingID == "" && c.toneList[i].Channel == ch) {
			c.toneList[i] = saved
			replaced = true
			break
		}
	}
	if !replaced {
		c.toneList = append([]domain.ToneConfig{saved}, c.toneList...)
	}
	return saved, nil
}

// Submit rewrites the current draft for the selected channel. Only one
// rewrite runs at a time per composer. On failure the previous result is
// kept.
func (c *Composer) Submit(ctx context.Context) (domain.RewriteResult, error) {
	c.mu.Lock()
	if strings.TrimSpace(c.draft) == "" {
		c.mu.Unlock()
		return domain.RewriteResult{}, ErrEmptyDraft
	}
	tone, _ := c.resolveTone(c.selected)
	req := domain.RewriteRequest{
		Text:    c.draft,
		Channel: c.selected,
		Prompt:  tone.Prompt,
		Example: tone.Example,
	}
	c.mu.Unlock()

	return c.run(ctx, req)
}

// Regenerate re-issues the last submitted request.
func (c *Composer) Regenerate(ctx context.Context) (domain.RewriteResult, error) {
	c.mu.Lock()
	if c.lastRequest == nil {
		c.mu.Unlock()
		return domain.RewriteResult{}, ErrNoPreviousRequest
	}
	req := *c.lastRequest
	c.mu.Unlock()

	return c.run(ctx, req)
}

func (c *Composer) run(ctx context.Context, req domain.RewriteRequest) (domain.RewriteResult, error) {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return domain.RewriteResult{}, ErrBusy
	}
	if c.anonymous() && c.gate != nil {
		ok, err := c.gate.TryConsume()
		if err != nil {
			c.mu.Unlock()
			return domain.RewriteResult{}, err
		}
		if !ok {
			c.mu.Unlock()
			return domain.RewriteResult{}, ErrUsageLimitReached
		}
	}
	c.busy = true
	// Recorded before the call so a failed attempt can be regenerated.
	c.lastRequest = &req
	c.mu.Unlock()

	c.logInfo("rewrite requested",
		slog.String("channel", req.Channel.String()),
		slog.Bool("has_prompt", req.Prompt != ""),
		slog.Bool("has_example", req.Example != ""),
	)
	text, err := c.rewriter.Rewrite(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
	if err != nil {
		c.logWarn("rewrite failed", slog.String("channel", req.Channel.String()), slog.Any("error", err))
		return domain.RewriteResult{}, err
	}

	result := domain.RewriteResult{RewrittenText: text, Channel: req.Channel}
	// A channel switch during the call makes this result stale.
	if req.Channel == c.selected {
		c.lastResult = &result
	}
	return result, nil
}

// SetResult replaces the last result, e.g. after an inline edit of the
// preview.
func (c *Composer) SetResult(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastResult = &domain.RewriteResult{RewrittenText: text, Channel: c.selected}
}

// resolveTone picks the active tone for ch. Among several stored tones the
// most recently updated wins; without timestamps the first one listed does.
// Callers hold c.mu.
func (c *Composer) resolveTone(ch channel.Channel) (Tone, string) {
	var active *domain.ToneConfig
	for i := range c.toneList {
		t := &c.toneList[i]
		if t.Channel != ch {
			continue
		}
		if active == nil || (t.UpdatedAt != nil && (active.UpdatedAt == nil || t.UpdatedAt.After(*active.UpdatedAt))) {
			active = t
		}
	}
	if active != nil {
		return Tone{Prompt: active.Prompt, Example: active.Example}, active.ID
	}
	if c.anonymous() {
		if tone, ok := c.demo[ch]; ok {
			return tone, ""
		}
	}
	return Tone{}, ""
}

func (c *Composer) anonymous() bool {
	if c.identity == nil {
		return true
	}
	_, ok := c.identity.CurrentUser()
	return !ok
}

func (c *Composer) currentUser() (domain.UserID, bool) {
	if c.identity == nil {
		return "", false
	}
	return c.identity.CurrentUser()
}

func (c *Composer) logInfo(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Info(msg, args...)
	}
}

func (c *Composer) logWarn(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Warn(msg, args...)
	}
}

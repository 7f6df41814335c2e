package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Juicern/remagik/internal/domain"
	"github.com/Juicern/remagik/internal/preview"
)

// stubApp imitates the application surface the CLI talks to.
type stubApp struct {
	mu       sync.Mutex
	rewrites []domain.RewriteRequest
	tones    map[string][]domain.ToneConfig
	seq      int
}

func (s *stubApp) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/api/rewrite":
		var req domain.RewriteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"bad json"}`, http.StatusBadRequest)
			return
		}
		s.rewrites = append(s.rewrites, req)
		_ = json.NewEncoder(w).Encode(domain.RewriteResult{RewrittenText: "Rewritten: " + req.Text})
	case r.Method == http.MethodGet && r.URL.Path == "/api/tones":
		list := s.tones[r.URL.Query().Get("userId")]
		if list == nil {
			list = []domain.ToneConfig{}
		}
		_ = json.NewEncoder(w).Encode(list)
	case (r.Method == http.MethodPost || r.Method == http.MethodPut) && r.URL.Path == "/api/tones":
		var tone domain.ToneConfig
		if err := json.NewDecoder(r.Body).Decode(&tone); err != nil {
			http.Error(w, `{"error":"bad json"}`, http.StatusBadRequest)
			return
		}
		list := s.tones[tone.UserID]
		if tone.ID == "" {
			s.seq++
			tone.ID = fmt.Sprintf("tone-%d", s.seq)
			list = append(list, tone)
		} else {
			for i := range list {
				if list[i].ID == tone.ID {
					list[i] = tone
				}
			}
		}
		s.tones[tone.UserID] = list
		_ = json.NewEncoder(w).Encode(tone)
	default:
		http.NotFound(w, r)
	}
}

func (s *stubApp) requests() []domain.RewriteRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.RewriteRequest(nil), s.rewrites...)
}

func setup(t *testing.T) *stubApp {
	t.Helper()
	app := &stubApp{tones: map[string][]domain.ToneConfig{}}
	srv := httptest.NewServer(app)
	t.Cleanup(srv.Close)

	t.Setenv("CONFIG_FILE", "")
	t.Setenv("REMAGIK_API_URL", srv.URL)
	t.Setenv("REMAGIK_HOME", t.TempDir())
	t.Setenv("FREE_USAGE_LIMIT", "3")
	return app
}

type result struct {
	out, err string
}

func run(t *testing.T, stdin string, args ...string) (result, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errBuf bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errBuf)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return result{out: out.String(), err: errBuf.String()}, err
}

func TestRewriteAnonymousUsesDemoToneUntilLimit(t *testing.T) {
	app := setup(t)

	for i := 0; i < 3; i++ {
		res, err := run(t, "", "rewrite", "--raw", "-c", "slack", "deploy done")
		require.NoError(t, err, res.err)
		assert.Equal(t, "Rewritten: deploy done\n", res.out)
		assert.Contains(t, res.err, fmt.Sprintf("%d of 3 free rewrites left", 2-i))
	}

	res, err := run(t, "", "rewrite", "--raw", "-c", "slack", "one more")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "free transformations")
	assert.Empty(t, res.out)

	reqs := app.requests()
	require.Len(t, reqs, 3)
	assert.Equal(t, "Slack", reqs[0].Channel.String())
	assert.Contains(t, reqs[0].Prompt, "Friendly and collaborative")

	res, err = run(t, "", "usage")
	require.NoError(t, err)
	assert.Contains(t, res.out, "3 of 3 (at_limit)")
}

func TestRewriteRejectsBlankDraft(t *testing.T) {
	app := setup(t)

	_, err := run(t, "  \n", "rewrite", "-c", "email")
	require.Error(t, err)
	assert.Empty(t, app.requests())

	res, err := run(t, "", "usage")
	require.NoError(t, err)
	assert.Contains(t, res.out, "0 of 3")
}

func TestRewriteReadsStdinAndRendersPreview(t *testing.T) {
	setup(t)

	res, err := run(t, "Thanks for the update\n", "rewrite", "-c", "slack")
	require.NoError(t, err, res.err)
	assert.Contains(t, res.out, "Rewritten: Thanks for the update")
	assert.Contains(t, res.out, "# general")
}

func TestRewriteCopiesToClipboard(t *testing.T) {
	setup(t)
	clip := &memClipboard{}
	orig := newClipboard
	newClipboard = func() preview.Clipboard { return clip }
	t.Cleanup(func() { newClipboard = orig })

	res, err := run(t, "", "rewrite", "--raw", "--copy", "-c", "email", "hello")
	require.NoError(t, err, res.err)
	assert.Equal(t, "Rewritten: hello", clip.text)
	assert.Contains(t, res.err, "Copied!")
}

func TestRewriteFormatEditsResult(t *testing.T) {
	setup(t)
	clip := &memClipboard{}
	orig := newClipboard
	newClipboard = func() preview.Clipboard { return clip }
	t.Cleanup(func() { newClipboard = orig })

	res, err := run(t, "", "rewrite", "--raw", "--copy", "--format", "bold,italic", "-c", "slack", "hello")
	require.NoError(t, err, res.err)
	assert.Equal(t, "<em><strong>Rewritten: hello</strong></em>", strings.TrimSpace(res.out))
	assert.Equal(t, "Rewritten: hello", clip.text)

	res, err = run(t, "", "rewrite", "--format", "bold", "-c", "slack", "hello")
	require.NoError(t, err, res.err)
	assert.Contains(t, res.out, "Rewritten: hello")
	assert.NotContains(t, res.out, "<strong>")
}

func TestRewriteUnknownFormat(t *testing.T) {
	setup(t)

	_, err := run(t, "", "rewrite", "--format", "blink", "-c", "slack", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown format "blink"`)

	res, err := run(t, "", "usage")
	require.NoError(t, err)
	assert.Contains(t, res.out, "0 of 3")
}

func TestSignedInToneRoundTrip(t *testing.T) {
	app := setup(t)

	res, err := run(t, "", "login", "ada@example.com")
	require.NoError(t, err)
	assert.Contains(t, res.out, "Signed in as ada@example.com")

	res, err = run(t, "", "tones", "list")
	require.NoError(t, err)
	assert.Contains(t, res.out, "No tones saved yet")

	res, err = run(t, "", "tones", "set", "email", "--prompt", "formal", "--example", "Dear team,")
	require.NoError(t, err, res.err)
	assert.Contains(t, res.out, "Saved tone for Email (tone-1)")

	// A second save reuses the stored id.
	res, err = run(t, "", "tones", "set", "email", "--prompt", "warm")
	require.NoError(t, err, res.err)
	assert.Contains(t, res.out, "(tone-1)")

	res, err = run(t, "", "tones", "list")
	require.NoError(t, err)
	assert.Contains(t, res.out, "Email")
	assert.Contains(t, res.out, "prompt:  warm")

	// Signed-in users are not gated and get their own tone.
	for i := 0; i < 4; i++ {
		_, err = run(t, "", "rewrite", "--raw", "-c", "email", "hi")
		require.NoError(t, err)
	}
	reqs := app.requests()
	require.Len(t, reqs, 4)
	assert.Equal(t, "warm", reqs[0].Prompt)

	res, err = run(t, "", "usage")
	require.NoError(t, err)
	assert.Contains(t, res.out, "unlimited")

	_, err = run(t, "", "logout")
	require.NoError(t, err)
	_, err = run(t, "", "tones", "list")
	assert.Error(t, err)
}

func TestLoginRejectsInvalidEmail(t *testing.T) {
	setup(t)
	_, err := run(t, "", "login", "not-an-email")
	assert.Error(t, err)
}

func TestPreviewCmdJSON(t *testing.T) {
	setup(t)

	res, err := run(t, "", "preview", "linkedin", "-o", "json", strings.Repeat("a", 300))
	require.NoError(t, err)

	var p preview.Preview
	require.NoError(t, json.Unmarshal([]byte(res.out), &p))
	assert.Equal(t, preview.LayoutPost, p.Layout)
	assert.True(t, p.Truncated)
	assert.Len(t, p.DisplayText, preview.TruncateLength+3)
}

func TestChannelsCmd(t *testing.T) {
	res, err := run(t, "", "channels")
	require.NoError(t, err)
	for _, name := range []string{"LinkedIn Post", "Slack", "Email", "Company Communication", "Article"} {
		assert.Contains(t, res.out, name)
	}
}

func TestUnknownChannel(t *testing.T) {
	setup(t)
	_, err := run(t, "", "rewrite", "-c", "fax", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown channel")
}

type memClipboard struct {
	text string
}

func (c *memClipboard) WriteAll(text string) error {
	c.text = text
	return nil
}

package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Juicern/remagik/internal/config"
	"github.com/Juicern/remagik/internal/domain"
	"github.com/Juicern/remagik/internal/preview"
	"github.com/Juicern/remagik/internal/remote"
	"github.com/Juicern/remagik/internal/repository"
	"github.com/Juicern/remagik/internal/service"
	"github.com/Juicern/remagik/internal/storage"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newBackend(t *testing.T, llm config.LLMConfig) http.Handler {
	t.Helper()
	cfg := config.DatabaseConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "tones.db")}
	db, err := storage.Open(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, storage.RunMigrations(context.Background(), db, cfg))

	tones := service.NewToneService(repository.NewToneRepository(db))
	rewrites := service.NewRewriteService(service.NewRegistry(llm), llm)
	return NewBackendRouter(tones, rewrites, discardLogger())
}

// newProxy wires the application surface to a live reference backend.
func newProxy(t *testing.T) http.Handler {
	t.Helper()
	upstream := httptest.NewServer(newBackend(t, config.LLMConfig{Provider: "echo"}))
	t.Cleanup(upstream.Close)

	return NewRouter(
		remote.NewRewriteClient(upstream.URL),
		remote.NewToneStore(upstream.URL, remote.PathParam),
		preview.NewRenderer(),
		discardLogger(),
	)
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealthz(t *testing.T) {
	rec := doJSON(t, newProxy(t), http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestProxyRewrite(t *testing.T) {
	h := newProxy(t)

	rec := doJSON(t, h, http.MethodPost, "/api/rewrite", map[string]string{
		"text":    "ship it",
		"channel": "Slack",
		"prompt":  "",
		"example": "",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"rewrittenText":"[Slack] ship it"}`, rec.Body.String())
}

func TestProxyRewriteValidation(t *testing.T) {
	h := newProxy(t)

	rec := doJSON(t, h, http.MethodPost, "/api/rewrite", map[string]string{"text": "  ", "channel": "Slack"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/rewrite", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProxyRewriteUpstreamDown(t *testing.T) {
	upstream := httptest.NewServer(http.NotFoundHandler())
	url := upstream.URL
	upstream.Close()

	h := NewRouter(remote.NewRewriteClient(url), remote.NewToneStore(url, remote.PathParam), preview.NewRenderer(), discardLogger())

	rec := doJSON(t, h, http.MethodPost, "/api/rewrite", map[string]string{"text": "hi", "channel": "Email"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to rewrite text", decode[map[string]string](t, rec)["error"])

	rec = doJSON(t, h, http.MethodGet, "/api/tones?userId=u1", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to fetch tones", decode[map[string]string](t, rec)["error"])
}

func TestProxyRewriteForwardsUpstreamReason(t *testing.T) {
	upstream := httptest.NewServer(newBackend(t, config.LLMConfig{Provider: "openai"}))
	defer upstream.Close()

	h := NewRouter(remote.NewRewriteClient(upstream.URL), remote.NewToneStore(upstream.URL, remote.PathParam), preview.NewRenderer(), discardLogger())

	rec := doJSON(t, h, http.MethodPost, "/api/rewrite", map[string]string{"text": "hi", "channel": "Email"})
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode[map[string]string](t, rec)
	assert.Equal(t, "Failed to rewrite text", body["error"])
	assert.Equal(t, "missing_api_key", body["message"])
}

func TestProxyTonesRoundTrip(t *testing.T) {
	h := newProxy(t)

	rec := doJSON(t, h, http.MethodGet, "/api/tones", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "User ID is required", decode[map[string]string](t, rec)["error"])

	rec = doJSON(t, h, http.MethodGet, "/api/tones?userId=ada%40example.com", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = doJSON(t, h, http.MethodPost, "/api/tones", map[string]string{
		"userId":  "ada@example.com",
		"channel": "LinkedIn Post",
		"prompt":  "upbeat",
		"example": "We shipped!",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	created := decode[domain.ToneConfig](t, rec)
	require.NotEmpty(t, created.ID)

	// Saving the same channel again without an id updates the stored tone.
	rec = doJSON(t, h, http.MethodPost, "/api/tones", map[string]string{
		"user_id": "ada@example.com",
		"channel": "LinkedIn Post",
		"prompt":  "calm",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, created.ID, decode[domain.ToneConfig](t, rec).ID)

	rec = doJSON(t, h, http.MethodPut, "/api/tones", map[string]string{
		"id":      created.ID,
		"userId":  "ada@example.com",
		"channel": "LinkedIn Post",
		"prompt":  "bold",
		"example": "Big news.",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, h, http.MethodGet, "/api/tones?userId=ada%40example.com", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	tones := decode[[]domain.ToneConfig](t, rec)
	require.Len(t, tones, 1)
	assert.Equal(t, "bold", tones[0].Prompt)
	assert.Equal(t, "Big news.", tones[0].Example)
}

func TestProxyToneValidation(t *testing.T) {
	h := newProxy(t)

	rec := doJSON(t, h, http.MethodPost, "/api/tones", map[string]string{"channel": "Slack"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/tones", map[string]string{"userId": "u1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodPut, "/api/tones", map[string]string{"userId": "u1", "channel": "Slack"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodPut, "/api/tones", map[string]string{"id": "missing", "userId": "u1", "channel": "Slack"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to update tone", decode[map[string]string](t, rec)["error"])
}

func TestProxyChannels(t *testing.T) {
	rec := doJSON(t, newProxy(t), http.MethodGet, "/api/channels", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var descriptors []struct {
		Channel     string   `json:"channel"`
		AccentColor string   `json:"accentColor"`
		Variants    []string `json:"variants"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &descriptors))
	require.Len(t, descriptors, 5)
	assert.Equal(t, "LinkedIn Post", descriptors[0].Channel)
	assert.Equal(t, "#0A66C2", descriptors[0].AccentColor)
}

func TestProxyPreview(t *testing.T) {
	h := newProxy(t)

	rec := doJSON(t, h, http.MethodPost, "/api/preview", map[string]any{
		"channel": "slack",
		"content": "Thanks so much for the update — really appreciate it!",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	p := decode[preview.Preview](t, rec)
	assert.Equal(t, preview.LayoutChat, p.Layout)
	assert.Contains(t, string(p.Body), "really appreciate it!")
	assert.False(t, p.Truncated)

	rec = doJSON(t, h, http.MethodPost, "/api/preview", map[string]any{"content": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBackendErrors(t *testing.T) {
	h := newBackend(t, config.LLMConfig{Provider: "echo"})

	rec := doJSON(t, h, http.MethodPut, "/api/tones", map[string]string{"id": "missing", "user_id": "u1", "channel": "Slack"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h, http.MethodPut, "/api/tones", map[string]string{"user_id": "u1", "channel": "Slack"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/rewrite", map[string]string{"text": "", "channel": "Slack"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	unsupported := newBackend(t, config.LLMConfig{Provider: "carrier-pigeon"})
	rec = doJSON(t, unsupported, http.MethodPost, "/api/rewrite", map[string]string{"text": "hi", "channel": "Slack"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"provider_not_supported"}`, rec.Body.String())
}

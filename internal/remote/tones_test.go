package remote

import (
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

	"github.com/Juicern/remagik/internal/channel"
	"github.com/Juicern/remagik/internal/domain"
)

// stubToneBackend keeps tones in memory and speaks both path styles.
type stubToneBackend struct {
	mu    sync.Mutex
	seq   int
	tones map[string][]domain.ToneConfig
	calls int
}

func newStubToneBackend() *stubToneBackend {
	return &stubToneBackend{tones: make(map[string][]domain.ToneConfig)}
}

func (b *stubToneBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++

	switch {
	case r.Method == http.MethodGet:
		user := r.URL.Query().Get("userId")
		if user == "" {
			user = strings.TrimPrefix(r.URL.Path, "/api/tones/")
		}
		_ = json.NewEncoder(w).Encode(b.tones[user])
	case r.Method == http.MethodPost || r.Method == http.MethodPut:
		var p tonePayload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		list := b.tones[p.UserID]
		for i := range list {
			if (p.ID != "" && list[i].ID == p.ID) || (p.ID == "" && list[i].Channel == p.Channel) {
				list[i].Prompt, list[i].Example = p.Prompt, p.Example
				_ = json.NewEncoder(w).Encode(list[i])
				return
			}
		}
		b.seq++
		tone := domain.ToneConfig{ID: fmt.Sprintf("tone-%d", b.seq), UserID: p.UserID, Channel: p.Channel, Prompt: p.Prompt, Example: p.Example}
		b.tones[p.UserID] = append(list, tone)
		_ = json.NewEncoder(w).Encode(tone)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func TestToneStoreRoundTrip(t *testing.T) {
	for _, style := range []PathStyle{QueryParam, PathParam} {
		t.Run(fmt.Sprint(style), func(t *testing.T) {
			backend := newStubToneBackend()
			srv := httptest.NewServer(backend)
			defer srv.Close()

			store := NewToneStore(srv.URL, style)
			ctx := context.Background()

			saved, err := store.Upsert(ctx, UpsertInput{
				UserID:  "ada@example.com",
				Channel: channel.LinkedInPost,
				Prompt:  "confident",
				Example: "Big news!",
			})
			require.NoError(t, err)
			assert.NotEmpty(t, saved.ID)

			tones, err := store.List(ctx, "ada@example.com")
			require.NoError(t, err)
			require.Len(t, tones, 1)
			assert.Equal(t, channel.LinkedInPost, tones[0].Channel)
			assert.Equal(t, "confident", tones[0].Prompt)
			assert.Equal(t, "Big news!", tones[0].Example)
			assert.Equal(t, 2, backend.calls)
		})
	}
}

func TestToneStoreUpsertUsesExistingID(t *testing.T) {
	var method string
	var got tonePayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"id":"t-1"}`))
	}))
	defer srv.Close()

	tone, err := NewToneStore(srv.URL, QueryParam).Upsert(context.Background(), UpsertInput{
		UserID:     "u",
		Channel:    channel.Email,
		Prompt:     "formal",
		ExistingID: "t-1",
	})

	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "t-1", got.ID)
	assert.Equal(t, "u", got.UserID)
	assert.Equal(t, "t-1", tone.ID)
	assert.Equal(t, channel.Email, tone.Channel)
	assert.Equal(t, "formal", tone.Prompt)
}

func TestToneStoreInvalidUser(t *testing.T) {
	store := NewToneStore("http://127.0.0.1:0", QueryParam)

	_, err := store.List(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrInvalidUser)

	_, err = store.Upsert(context.Background(), UpsertInput{Channel: channel.Slack})
	assert.ErrorIs(t, err, ErrInvalidUser)
}

func TestToneStoreRemoteFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to fetch tones"}`))
	}))
	defer srv.Close()

	store := NewToneStore(srv.URL, QueryParam)

	_, err := store.List(context.Background(), "u")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRemoteUnavailable)
	assert.Equal(t, "Failed to fetch tones", Reason(err))

	_, err = store.Upsert(context.Background(), UpsertInput{UserID: "u", Channel: channel.Slack})
	assert.ErrorIs(t, err, ErrRemoteUnavailable)
}

func TestToneStoreEmptyList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	}))
	defer srv.Close()

	tones, err := NewToneStore(srv.URL, QueryParam).List(context.Background(), "u")

	require.NoError(t, err)
	assert.NotNil(t, tones)
	assert.Empty(t, tones)
}

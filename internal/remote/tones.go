package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/Juicern/remagik/internal/channel"
	"github.com/Juicern/remagik/internal/domain"
)

// PathStyle selects how the user id is carried on list requests.
type PathStyle int

const (
	// QueryParam is the application surface: GET /api/tones?userId=<id>.
	QueryParam PathStyle = iota
	// PathParam is the upstream surface: GET /api/tones/<id>.
	PathParam
)

// ToneStore reads and writes per-user, per-channel tone configurations held by
// a remote store. Identity assignment and duplicate resolution belong to the
// remote side.
type ToneStore struct {
	client
	style PathStyle
}

func NewToneStore(baseURL string, style PathStyle, opts ...Option) *ToneStore {
	return &ToneStore{client: newClient(baseURL, opts...), style: style}
}

func (s *ToneStore) List(ctx context.Context, userID domain.UserID) ([]domain.ToneConfig, error) {
	if userID.Empty() {
		return nil, &Error{Op: "list tones", Kind: ErrInvalidUser}
	}

	path := "/api/tones?userId=" + url.QueryEscape(userID.String())
	if s.style == PathParam {
		path = "/api/tones/" + url.PathEscape(userID.String())
	}

	resp, err := s.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, &Error{Op: "list tones", Kind: ErrRemoteUnavailable, Err: err}
	}
	if !resp.ok() {
		return nil, &Error{Op: "list tones", Kind: ErrRemoteUnavailable, Status: resp.status, Reason: errorReason(resp.body)}
	}

	var tones []domain.ToneConfig
	if err := json.Unmarshal(resp.body, &tones); err != nil {
		return nil, &Error{Op: "list tones", Kind: ErrRemoteUnavailable, Status: resp.status, Err: err}
	}
	if tones == nil {
		tones = []domain.ToneConfig{}
	}
	return tones, nil
}

// UpsertInput is one tone save. A non-empty ExistingID selects update
// semantics; otherwise the remote store creates or resolves the record.
type UpsertInput struct {
	UserID     domain.UserID
	Channel    channel.Channel
	Prompt     string
	Example    string
	ExistingID string
}

type tonePayload struct {
	ID      string          `json:"id,omitempty"`
	UserID  string          `json:"user_id"`
	Channel channel.Channel `json:"channel"`
	Prompt  string          `json:"prompt"`
	Example string          `json:"example"`
}

func (s *ToneStore) Upsert(ctx context.Context, in UpsertInput) (domain.ToneConfig, error) {
	if in.UserID.Empty() {
		return domain.ToneConfig{}, &Error{Op: "save tone", Kind: ErrInvalidUser}
	}

	method := http.MethodPost
	if in.ExistingID != "" {
		method = http.MethodPut
	}
	payload := tonePayload{
		ID:      in.ExistingID,
		UserID:  in.UserID.String(),
		Channel: in.Channel,
		Prompt:  in.Prompt,
		Example: in.Example,
	}

	resp, err := s.do(ctx, method, "/api/tones", payload)
	if err != nil {
		return domain.ToneConfig{}, &Error{Op: "save tone", Kind: ErrRemoteUnavailable, Err: err}
	}
	if !resp.ok() {
		return domain.ToneConfig{}, &Error{Op: "save tone", Kind: ErrRemoteUnavailable, Status: resp.status, Reason: errorReason(resp.body)}
	}

	var tone domain.ToneConfig
	if err := json.Unmarshal(resp.body, &tone); err != nil {
		return domain.ToneConfig{}, &Error{Op: "save tone", Kind: ErrRemoteUnavailable, Status: resp.status, Err: err}
	}
	// Some stores echo only the id; keep what was sent for the rest.
	if tone.Channel == "" {
		tone.Channel = in.Channel
		tone.Prompt = in.Prompt
		tone.Example = in.Example
	}
	if tone.ID == "" {
		tone.ID = in.ExistingID
	}
	return tone, nil
}

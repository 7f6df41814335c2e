package remote

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Juicern/remagik/internal/domain"
)

// RewriteClient submits rewrite requests to a remote endpoint. It performs
// exactly one request per call and never retries.
type RewriteClient struct {
	client
}

func NewRewriteClient(baseURL string, opts ...Option) *RewriteClient {
	return &RewriteClient{client: newClient(baseURL, opts...)}
}

func (c *RewriteClient) Rewrite(ctx context.Context, req domain.RewriteRequest) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, "/api/rewrite", req)
	if err != nil {
		return "", &Error{Op: "rewrite", Kind: ErrBackendUnreachable, Err: err}
	}
	if !resp.ok() {
		return "", &Error{
			Op:     "rewrite",
			Kind:   ErrBackendRejected,
			Status: resp.status,
			Reason: errorReason(resp.body),
		}
	}

	var payload struct {
		RewrittenText *string `json:"rewrittenText"`
	}
	if err := json.Unmarshal(resp.body, &payload); err != nil {
		return "", &Error{Op: "rewrite", Kind: ErrMalformedResponse, Status: resp.status, Err: err}
	}
	if payload.RewrittenText == nil {
		return "", &Error{Op: "rewrite", Kind: ErrMalformedResponse, Status: resp.status, Reason: "missing rewrittenText"}
	}
	return *payload.RewrittenText, nil
}

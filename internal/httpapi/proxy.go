package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Juicern/remagik/internal/channel"
	"github.com/Juicern/remagik/internal/domain"
	"github.com/Juicern/remagik/internal/preview"
	"github.com/Juicern/remagik/internal/remote"
)

type Rewriter interface {
	Rewrite(ctx context.Context, req domain.RewriteRequest) (string, error)
}

type ToneStore interface {
	List(ctx context.Context, userID domain.UserID) ([]domain.ToneConfig, error)
	Upsert(ctx context.Context, in remote.UpsertInput) (domain.ToneConfig, error)
}

type ProxyAPI struct {
	rewriter Rewriter
	tones    ToneStore
	renderer *preview.Renderer
	logger   *slog.Logger
}

func (api *ProxyAPI) registerRoutes(r *gin.RouterGroup) {
	r.POST("/rewrite", api.rewrite)

	r.GET("/tones", api.listTones)
	r.POST("/tones", api.saveTone)
	r.PUT("/tones", api.updateTone)

	r.GET("/channels", api.listChannels)
	r.POST("/preview", api.renderPreview)
}

func (api *ProxyAPI) rewrite(c *gin.Context) {
	var req domain.RewriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, "invalid JSON body")
		return
	}
	if req.Blank() {
		validationError(c, "text is required")
		return
	}

	text, err := api.rewriter.Rewrite(c.Request.Context(), req)
	if err != nil {
		api.upstreamError(c, "Failed to rewrite text", err)
		return
	}
	c.JSON(http.StatusOK, domain.RewriteResult{RewrittenText: text})
}

func (api *ProxyAPI) listTones(c *gin.Context) {
	userID := domain.UserID(c.Query("userId"))
	if userID.Empty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
		return
	}

	tones, err := api.tones.List(c.Request.Context(), userID)
	if err != nil {
		api.upstreamError(c, "Failed to fetch tones", err)
		return
	}
	c.JSON(http.StatusOK, tones)
}

type toneRequest struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	SnakeUserID string          `json:"user_id"`
	Channel     channel.Channel `json:"channel"`
	Prompt      string          `json:"prompt"`
	Example     string          `json:"example"`
}

func (t toneRequest) user() domain.UserID {
	if t.UserID != "" {
		return domain.UserID(t.UserID)
	}
	return domain.UserID(t.SnakeUserID)
}

func (api *ProxyAPI) saveTone(c *gin.Context) {
	api.upsertTone(c, false, "Failed to save tone")
}

func (api *ProxyAPI) updateTone(c *gin.Context) {
	api.upsertTone(c, true, "Failed to update tone")
}

func (api *ProxyAPI) upsertTone(c *gin.Context, requireID bool, failure string) {
	var payload toneRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		validationError(c, "invalid JSON body")
		return
	}
	if payload.user().Empty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
		return
	}
	if strings.TrimSpace(payload.Channel.String()) == "" {
		validationError(c, "channel is required")
		return
	}
	if requireID && payload.ID == "" {
		validationError(c, "id is required")
		return
	}

	tone, err := api.tones.Upsert(c.Request.Context(), remote.UpsertInput{
		UserID:     payload.user(),
		Channel:    payload.Channel,
		Prompt:     payload.Prompt,
		Example:    payload.Example,
		ExistingID: payload.ID,
	})
	if err != nil {
		api.upstreamError(c, failure, err)
		return
	}
	c.JSON(http.StatusOK, tone)
}

func (api *ProxyAPI) listChannels(c *gin.Context) {
	all := channel.All()
	descriptors := make([]channel.Descriptor, 0, len(all))
	for _, ch := range all {
		descriptors = append(descriptors, channel.Describe(ch))
	}
	c.JSON(http.StatusOK, descriptors)
}

type previewRequest struct {
	Channel  string                 `json:"channel"`
	Content  string                 `json:"content"`
	Variant  string                 `json:"variant"`
	Metadata domain.PreviewMetadata `json:"metadata"`
	Expanded bool                   `json:"expanded"`
}

func (api *ProxyAPI) renderPreview(c *gin.Context) {
	var payload previewRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		validationError(c, "invalid JSON body")
		return
	}
	ch, ok := channel.Parse(payload.Channel)
	if !ok {
		ch = channel.Channel(payload.Channel)
	}
	if strings.TrimSpace(ch.String()) == "" {
		validationError(c, "channel is required")
		return
	}

	p := api.renderer.Render(ch, payload.Content, preview.Options{
		Variant:  payload.Variant,
		Metadata: payload.Metadata,
		Expanded: payload.Expanded,
	})
	c.JSON(http.StatusOK, p)
}

// upstreamError reports a failed upstream call as a 500 with the fixed
// message of the endpoint and, when the upstream gave one, its reason.
func (api *ProxyAPI) upstreamError(c *gin.Context, msg string, err error) {
	api.logger.Error("upstream request failed", slog.String("path", c.FullPath()), slog.Any("error", err))
	body := gin.H{"error": msg}
	if reason := remote.Reason(err); reason != "" {
		body["message"] = reason
	}
	c.JSON(http.StatusInternalServerError, body)
}

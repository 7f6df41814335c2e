package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Juicern/remagik/internal/domain"
	"github.com/Juicern/remagik/internal/service"
)

type BackendAPI struct {
	tones    *service.ToneService
	rewrites *service.RewriteService
	logger   *slog.Logger
}

func (api *BackendAPI) registerRoutes(r *gin.RouterGroup) {
	r.GET("/tones/:userId", api.listTones)
	r.POST("/tones", api.saveTone)
	r.PUT("/tones", api.updateTone)

	r.POST("/rewrite", api.rewrite)
}

func (api *BackendAPI) listTones(c *gin.Context) {
	tones, err := api.tones.List(c.Request.Context(), domain.UserID(c.Param("userId")))
	if err != nil {
		api.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, tones)
}

func (api *BackendAPI) saveTone(c *gin.Context) {
	var payload toneRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		validationError(c, "invalid JSON body")
		return
	}
	tone, err := api.tones.Save(c.Request.Context(), toSaveInput(payload))
	if err != nil {
		api.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, tone)
}

func (api *BackendAPI) updateTone(c *gin.Context) {
	var payload toneRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		validationError(c, "invalid JSON body")
		return
	}
	tone, err := api.tones.Update(c.Request.Context(), toSaveInput(payload))
	if err != nil {
		api.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, tone)
}

func toSaveInput(p toneRequest) service.SaveToneInput {
	return service.SaveToneInput{
		ID:      p.ID,
		UserID:  p.user(),
		Channel: p.Channel,
		Prompt:  p.Prompt,
		Example: p.Example,
	}
}

func (api *BackendAPI) rewrite(c *gin.Context) {
	var req domain.RewriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, "invalid JSON body")
		return
	}
	text, err := api.rewrites.Rewrite(c.Request.Context(), req)
	if err != nil {
		api.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, domain.RewriteResult{RewrittenText: text})
}

func (api *BackendAPI) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		validationError(c, err.Error())
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
	case errors.Is(err, service.ErrMissingAPIKey):
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_api_key"})
	case errors.Is(err, service.ErrProviderNotSupported):
		c.JSON(http.StatusBadRequest, gin.H{"error": "provider_not_supported"})
	default:
		api.logger.Error("request failed", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	}
}

func validationError(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": msg})
}

package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/youruser/cardgen/internal/cards"
	"github.com/youruser/cardgen/internal/generate"
	imagepkg "github.com/youruser/cardgen/internal/image"
	"github.com/youruser/cardgen/internal/session"
)

func mapError(c *gin.Context, err error) {
	requestID := c.GetString("request_id")

	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, cards.ErrInvalidHP),
		errors.Is(err, cards.ErrInvalidDamage),
		errors.Is(err, cards.ErrUnknownField),
		errors.Is(err, cards.ErrEmptyName),
		errors.Is(err, imagepkg.ErrDecode),
		errors.Is(err, imagepkg.ErrBadDataURL),
		errors.Is(err, imagepkg.ErrEmptyImage),
		errors.Is(err, imagepkg.ErrEmptyQRText),
		errors.Is(err, generate.ErrEmptyPrompt),
		errors.Is(err, generate.ErrNotImage),
		errors.Is(err, generate.ErrBadFilename):
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, session.ErrStaleGeneration):
		c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, generate.ErrUpstream), errors.Is(err, generate.ErrInvalidResponse):
		slog.Error("upstream generation failure", "request_id", requestID, "error", err)
		c.JSON(http.StatusBadGateway, errorResponse{Error: "image generation failed"})
	default:
		slog.Error("internal error", "request_id", requestID, "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

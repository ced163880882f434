package api

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/youruser/cardgen/internal/cards"
	imagepkg "github.com/youruser/cardgen/internal/image"
	"github.com/youruser/cardgen/internal/session"
)

const maxUploadBytes = 16 << 20

// withSession resolves :id or answers 404.
func (h *Handler) withSession(next func(*gin.Context, *session.Session)) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := h.store.Get(c.Param("id"))
		if err != nil {
			mapError(c, err)
			return
		}
		next(c, s)
	}
}

func (h *Handler) createSession(c *gin.Context) {
	s := h.store.Create()
	c.JSON(http.StatusCreated, s.Snapshot())
}

func (h *Handler) getSession(c *gin.Context, s *session.Session) {
	c.JSON(http.StatusOK, s.Snapshot())
}

func (h *Handler) deleteSession(c *gin.Context) {
	if !h.store.Delete(c.Param("id")) {
		mapError(c, session.ErrSessionNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) updateField(c *gin.Context, s *session.Session) {
	var req fieldUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if err := s.UpdateField(req.Field, req.Value); err != nil {
		mapError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

func (h *Handler) addAttack(c *gin.Context, s *session.Session) {
	var a cards.Attack
	if err := c.ShouldBindJSON(&a); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	s.AddAttack(a)
	c.JSON(http.StatusCreated, s.Snapshot())
}

func (h *Handler) updateAttack(c *gin.Context, s *session.Session) {
	i, err := pathIndex(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	var req fieldUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if err := s.UpdateAttack(i, req.Field, req.Value); err != nil {
		mapError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

func (h *Handler) removeAttack(c *gin.Context, s *session.Session) {
	i, err := pathIndex(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	s.RemoveAttack(i)
	c.JSON(http.StatusOK, s.Snapshot())
}

// upload accepts a multipart "file", a JSON {"data_url": ...} body or raw
// image bytes. No file at all is a no-op.
func (h *Handler) upload(c *gin.Context, s *session.Session) {
	data, err := readUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if err := s.SetUploadedImage(data); err != nil {
		h.logger.WarnContext(c.Request.Context(), "rejecting upload", "session", s.ID(), "error", err)
		mapError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

func readUpload(c *gin.Context) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)
	ct := c.ContentType()
	switch {
	case strings.HasPrefix(ct, "multipart/"):
		fh, err := c.FormFile("file")
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(f)
	case ct == "application/json":
		var req uploadRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, err
		}
		return []byte(req.DataURL), nil
	default:
		return io.ReadAll(c.Request.Body)
	}
}

func (h *Handler) generateForSession(c *gin.Context, s *session.Session) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if err := s.RequestGeneratedImage(c.Request.Context(), req.Prompt); err != nil {
		mapError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

func (h *Handler) exportSession(c *gin.Context, s *session.Session) {
	buf := new(bytes.Buffer)
	name, err := s.Export(c.Request.Context(), buf, h.fetcher)
	if err != nil {
		mapError(c, err)
		return
	}
	sendJPEG(c, name, buf.Bytes())
}

// sessionQR encodes a link to the session's export endpoint.
func (h *Handler) sessionQR(c *gin.Context, s *session.Session) {
	link := strings.TrimRight(h.publicBaseURL, "/") + "/api/sessions/" + s.ID() + "/export"
	b, err := imagepkg.GenerateQRPNG(link, imagepkg.DefaultQRSize)
	if err != nil {
		mapError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

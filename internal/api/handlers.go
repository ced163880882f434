package api

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/youruser/cardgen/internal/cards"
	"github.com/youruser/cardgen/internal/generate"
	imagepkg "github.com/youruser/cardgen/internal/image"
	"github.com/youruser/cardgen/internal/session"
)

// Handler serves the card API.
type Handler struct {
	store   *session.Store
	local   generate.Generator
	pool    *generate.Pool
	fetcher session.ImageFetcher
	logger  *slog.Logger

	// generator the sessions use: "local" or the remote endpoint URL
	generatorName string
	publicBaseURL string
}

// Options wires a Handler. Local may be nil to disable POST /api/generate.
type Options struct {
	Store         *session.Store
	Local         generate.Generator
	Pool          *generate.Pool
	Fetcher       session.ImageFetcher
	Logger        *slog.Logger
	GeneratorName string
	PublicBaseURL string
}

func NewHandler(o Options) *Handler {
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return &Handler{
		store:         o.Store,
		local:         o.Local,
		pool:          o.Pool,
		fetcher:       o.Fetcher,
		logger:        o.Logger,
		generatorName: o.GeneratorName,
		publicBaseURL: o.PublicBaseURL,
	}
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) modelStatus(c *gin.Context) {
	st := modelStatus{
		Generator: "local",
		Sessions:  h.store.Len(),
		Types:     cards.Types,
		Rarities:  cards.Rarities,
	}
	if h.generatorName != "" && h.generatorName != "local" {
		st.Generator = "remote"
		st.Endpoint = h.generatorName
	}
	c.JSON(http.StatusOK, st)
}

// qr returns a PNG of a QR code for the "text" query param.
func (h *Handler) qr(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		text = "card:example"
	}
	size := imagepkg.DefaultQRSize
	if sizeStr := c.Query("size"); sizeStr != "" {
		if v, err := strconv.Atoi(sizeStr); err == nil {
			size = v
		}
	}
	b, err := imagepkg.GenerateQRPNG(text, size)
	if err != nil {
		mapError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

// render draws a posted card without touching any session.
func (h *Handler) render(c *gin.Context) {
	req := renderRequest{Card: cards.Default()}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	var src image.Image
	if req.ImageURL != "" {
		img, err := h.fetcher.Fetch(c.Request.Context(), req.ImageURL)
		if err != nil {
			h.logger.WarnContext(c.Request.Context(), "fetch render background", "image_url", req.ImageURL, "error", err)
			c.JSON(http.StatusBadGateway, errorResponse{Error: "cannot fetch image_url"})
			return
		}
		src = img
	}

	buf := new(bytes.Buffer)
	if err := imagepkg.Export(buf, req.Card, src); err != nil {
		mapError(c, err)
		return
	}
	sendJPEG(c, cards.Filename(req.Card.Name), buf.Bytes())
}

// generate is the in-process generation endpoint; it speaks the same
// contract the remote Client consumes.
func (h *Handler) generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	res, err := h.local.Generate(c.Request.Context(), req.Prompt)
	if err != nil {
		mapError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) listPlaceholders(c *gin.Context) {
	images, err := h.pool.List()
	if err != nil {
		mapError(c, err)
		return
	}
	if images == nil {
		images = []string{}
	}
	c.JSON(http.StatusOK, placeholderList{
		Images:  images,
		Count:   len(images),
		Message: "Available placeholder images",
	})
}

func (h *Handler) uploadPlaceholder(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "missing file"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		mapError(c, err)
		return
	}
	defer f.Close()

	url, err := h.pool.Save(fh.Filename, fh.Header.Get("Content-Type"), f)
	if err != nil {
		mapError(c, err)
		return
	}
	c.JSON(http.StatusOK, placeholderUpload{
		Message:  "Image uploaded successfully",
		ImageURL: url,
		Filename: fh.Filename,
	})
}

func sendJPEG(c *gin.Context, filename string, b []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "image/jpeg", b)
}

func pathIndex(c *gin.Context) (int, error) {
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return 0, errors.New("attack index must be an integer")
	}
	return i, nil
}

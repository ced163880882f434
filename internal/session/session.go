package session

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/youruser/cardgen/internal/cards"
	"github.com/youruser/cardgen/internal/generate"
	imagepkg "github.com/youruser/cardgen/internal/image"
)

var (
	ErrStaleGeneration = errors.New("generation superseded by a newer request")
	ErrSessionNotFound = errors.New("session not found")
)

// Source identifies which image backs the card.
type Source int

const (
	SourceNone Source = iota
	SourceUploaded
	SourceGenerated
)

func (s Source) String() string {
	switch s {
	case SourceUploaded:
		return "uploaded"
	case SourceGenerated:
		return "generated"
	default:
		return "none"
	}
}

func (s Source) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// ImageFetcher resolves a generated image URL into a bitmap.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) (image.Image, error)
}

// State is a point-in-time copy of a session.
type State struct {
	ID           string     `json:"id"`
	Card         cards.Card `json:"card"`
	Source       Source     `json:"source"`
	GeneratedURL string     `json:"generated_url,omitempty"`
	HasUpload    bool       `json:"has_upload"`
	Generating   bool       `json:"generating"`
}

// Session owns one card being edited and its image selection. Every user
// action and every generation is tagged with an increasing sequence number;
// a generation result is applied only if no newer generation was started.
type Session struct {
	id     string
	gen    generate.Generator
	logger *slog.Logger

	mu   sync.Mutex
	card cards.Card

	uploaded    image.Image
	useUploaded bool

	generatedURL string
	useGenerated bool

	// fetched bitmap for generatedURL, filled lazily on export
	generatedImg    image.Image
	generatedImgURL string

	seq        uint64
	lastGen    uint64
	lastUpload uint64
	inFlight   int
}

// New returns a session holding the default card.
func New(id string, gen generate.Generator, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		id:     id,
		gen:    gen,
		logger: logger.With("session", id),
		card:   cards.Default(),
	}
}

func (s *Session) ID() string { return s.id }

// Snapshot returns a deep copy of the session state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		ID:           s.id,
		Card:         s.card.Clone(),
		Source:       s.activeLocked(),
		GeneratedURL: s.generatedURL,
		HasUpload:    s.uploaded != nil,
		Generating:   s.inFlight > 0,
	}
}

// Card returns a copy of the current card.
func (s *Session) Card() cards.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.card.Clone()
}

// ActiveSource reports which image currently backs the card.
func (s *Session) ActiveSource() Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeLocked()
}

func (s *Session) activeLocked() Source {
	switch {
	case s.useUploaded && s.uploaded != nil:
		return SourceUploaded
	case s.useGenerated && s.generatedURL != "":
		return SourceGenerated
	default:
		return SourceNone
	}
}

// UpdateField replaces one scalar card field. See cards.SetField for keys.
func (s *Session) UpdateField(field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cards.SetField(&s.card, field, value)
}

// UpdateAttack replaces one field of the attack at index. Out-of-range
// indexes leave the attacks untouched.
func (s *Session) UpdateAttack(index int, field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cards.SetAttackField(&s.card, index, field, value)
}

// AddAttack appends an attack and returns its index.
func (s *Session) AddAttack(a cards.Attack) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.card.Attacks = append(s.card.Attacks, a)
	return len(s.card.Attacks) - 1
}

// RemoveAttack drops the attack at index; out-of-range is a no-op.
func (s *Session) RemoveAttack(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.card.Attacks) {
		return false
	}
	s.card.Attacks = append(s.card.Attacks[:index:index], s.card.Attacks[index+1:]...)
	return true
}

// SetUploadedImage decodes data (raw bytes or a data URL) and makes it the
// active image. Empty data is ignored. A decode failure leaves the session
// unchanged.
func (s *Session) SetUploadedImage(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	img, err := imagepkg.DecodeImage(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.lastUpload = s.seq
	s.uploaded = img
	s.useUploaded = true
	s.useGenerated = false
	return nil
}

// RequestGeneratedImage runs prompt through the generator. The uploaded image
// is deselected while the request runs and reselected if it fails; the
// previous generated image stays until the new one arrives. A result is dropped with ErrStaleGeneration if another
// generation was requested meanwhile, and it is stored without being
// activated if an image was uploaded meanwhile.
func (s *Session) RequestGeneratedImage(ctx context.Context, prompt string) error {
	if strings.TrimSpace(prompt) == "" {
		return generate.ErrEmptyPrompt
	}

	s.mu.Lock()
	prevUseUploaded := s.useUploaded
	s.useUploaded = false
	s.seq++
	token := s.seq
	s.lastGen = token
	s.inFlight++
	s.mu.Unlock()

	res, err := s.gen.Generate(ctx, prompt)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight--

	if err != nil {
		// put the upload back unless a newer generation or upload took over
		if token == s.lastGen && s.lastUpload < token {
			s.useUploaded = prevUseUploaded
		}
		s.logger.ErrorContext(ctx, "image generation failed", "error", err)
		return fmt.Errorf("generate: %w", err)
	}
	if token != s.lastGen {
		s.logger.WarnContext(ctx, "discarding stale generation",
			"token", token, "latest", s.lastGen, "image_url", res.ImageURL)
		return ErrStaleGeneration
	}

	s.generatedURL = res.ImageURL
	s.generatedImg = nil
	s.generatedImgURL = ""
	if s.lastUpload < token {
		s.useGenerated = true
	}
	s.card = s.card.Merge(res.Metadata)
	s.logger.InfoContext(ctx, "applied generation",
		"image_url", res.ImageURL, "metadata", res.Metadata != nil)
	return nil
}

// ActiveImage resolves the bitmap behind the active source. A generated image
// is fetched once per URL; a fetch failure is logged and yields nil so the
// card still renders on the default background.
func (s *Session) ActiveImage(ctx context.Context, fetch ImageFetcher) image.Image {
	s.mu.Lock()
	src := s.activeLocked()
	uploaded := s.uploaded
	url := s.generatedURL
	cached, cachedURL := s.generatedImg, s.generatedImgURL
	s.mu.Unlock()

	switch src {
	case SourceUploaded:
		return uploaded
	case SourceGenerated:
		if cached != nil && cachedURL == url {
			return cached
		}
		if fetch == nil {
			return nil
		}
		img, err := fetch.Fetch(ctx, url)
		if err != nil {
			s.logger.WarnContext(ctx, "fetch generated image", "image_url", url, "error", err)
			return nil
		}
		s.mu.Lock()
		if s.generatedURL == url {
			s.generatedImg, s.generatedImgURL = img, url
		}
		s.mu.Unlock()
		return img
	default:
		return nil
	}
}

// Export renders the current card over its active image as a JPEG and
// returns the download file name.
func (s *Session) Export(ctx context.Context, w io.Writer, fetch ImageFetcher) (string, error) {
	card := s.Card()
	src := s.ActiveImage(ctx, fetch)
	if err := imagepkg.Export(w, card, src); err != nil {
		return "", err
	}
	return cards.Filename(card.Name), nil
}

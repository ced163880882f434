package generate

import (
	"context"
	"errors"

	"github.com/youruser/cardgen/internal/cards"
)

var (
	ErrEmptyPrompt     = errors.New("prompt cannot be empty")
	ErrUpstream        = errors.New("image generation failed")
	ErrInvalidResponse = errors.New("invalid generation response")
	ErrNoImages        = errors.New("no images available")
)

// Request is the wire body of a generation call.
type Request struct {
	Prompt string `json:"prompt"`
}

// Result is what a generation call yields: an image reference plus optional
// card metadata to merge into the current card.
type Result struct {
	ImageURL       string          `json:"image_url"`
	Metadata       *cards.Metadata `json:"metadata,omitempty"`
	GenerationTime float64         `json:"generation_time"`
}

// Generator turns a prompt into an image and card metadata.
type Generator interface {
	Generate(ctx context.Context, prompt string) (Result, error)
}

// RNG abstracts random number generation for deterministic testing.
type RNG interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
	// Float64 returns a random float in [0, 1).
	Float64() float64
}

package generate

import (
	"context"
	"log/slog"
	"math/rand"
	"strings"
	"time"
)

// StdRNG delegates to math/rand (auto-seeded, safe for concurrent use).
type StdRNG struct{}

func (StdRNG) Intn(n int) int   { return rand.Intn(n) }
func (StdRNG) Float64() float64 { return rand.Float64() }

// Local is an in-process Generator: it picks an image from the placeholder
// pool and derives card stats from the prompt.
type Local struct {
	pool   *Pool
	rng    RNG
	logger *slog.Logger
	now    func() time.Time
}

func NewLocal(pool *Pool, rng RNG, logger *slog.Logger) *Local {
	if rng == nil {
		rng = StdRNG{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Local{pool: pool, rng: rng, logger: logger, now: time.Now}
}

func (l *Local) Generate(ctx context.Context, prompt string) (Result, error) {
	if strings.TrimSpace(prompt) == "" {
		return Result{}, ErrEmptyPrompt
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	start := l.now()

	var images []string
	if l.pool != nil {
		list, err := l.pool.List()
		if err != nil {
			l.logger.WarnContext(ctx, "list placeholder images", "error", err)
		}
		images = list
	}
	if len(images) == 0 {
		l.logger.WarnContext(ctx, "no local images found, using fallback images")
		images = FallbackImages
	}
	if len(images) == 0 {
		return Result{}, ErrNoImages
	}
	imageURL := pick(l.rng, images)

	l.logger.InfoContext(ctx, "analyzing generated image", "prompt", truncate(prompt, 50))
	meta := Synthesize(prompt, l.rng)

	l.logger.InfoContext(ctx, "generated card",
		"name", *meta.Name,
		"type", *meta.Type,
		"hp", *meta.HP,
		"rarity", *meta.Rarity,
	)

	return Result{
		ImageURL:       imageURL,
		Metadata:       &meta,
		GenerationTime: l.now().Sub(start).Seconds(),
	}, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

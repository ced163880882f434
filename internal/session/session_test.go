package session_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"
	"time"

	"github.com/youruser/cardgen/internal/cards"
	"github.com/youruser/cardgen/internal/generate"
	"github.com/youruser/cardgen/internal/session"
)

// stubGen answers every prompt immediately.
type stubGen struct {
	res generate.Result
	err error
}

func (g stubGen) Generate(_ context.Context, _ string) (generate.Result, error) {
	return g.res, g.err
}

// switchGen answers like stubGen but can be changed between calls.
type switchGen struct {
	res generate.Result
	err error
}

func (g *switchGen) Generate(_ context.Context, _ string) (generate.Result, error) {
	return g.res, g.err
}

// gatedGen blocks each prompt until the test releases it.
type gatedGen struct {
	mu      sync.Mutex
	started map[string]chan struct{}
	release map[string]chan generate.Result
}

func newGatedGen(prompts ...string) *gatedGen {
	g := &gatedGen{started: map[string]chan struct{}{}, release: map[string]chan generate.Result{}}
	for _, p := range prompts {
		g.started[p] = make(chan struct{})
		g.release[p] = make(chan generate.Result)
	}
	return g
}

func (g *gatedGen) Generate(ctx context.Context, prompt string) (generate.Result, error) {
	g.mu.Lock()
	started, release := g.started[prompt], g.release[prompt]
	g.mu.Unlock()
	close(started)
	select {
	case res := <-release:
		return res, nil
	case <-ctx.Done():
		return generate.Result{}, ctx.Err()
	}
}

func (g *gatedGen) waitStarted(t *testing.T, prompt string) {
	t.Helper()
	select {
	case <-g.started[prompt]:
	case <-time.After(2 * time.Second):
		t.Fatalf("generation %q never started", prompt)
	}
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.SetNRGBA(0, 0, color.NRGBA{R: 0x10, A: 0xff})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestNew_DefaultState(t *testing.T) {
	s := session.New("s1", stubGen{}, nil)
	st := s.Snapshot()
	if st.ID != "s1" || st.Card.Name != "Mystic Dragon" {
		t.Errorf("unexpected state %+v", st)
	}
	if st.Source != session.SourceNone || st.HasUpload || st.Generating {
		t.Errorf("unexpected image state %+v", st)
	}
}

func TestGenerateThenUpload_UploadWins(t *testing.T) {
	s := session.New("s1", stubGen{res: generate.Result{ImageURL: "https://img/1.png"}}, nil)

	if err := s.RequestGeneratedImage(context.Background(), "dragon"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.ActiveSource(); got != session.SourceGenerated {
		t.Fatalf("after generate: source = %v", got)
	}
	if err := s.SetUploadedImage(pngBytes(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.ActiveSource(); got != session.SourceUploaded {
		t.Fatalf("after upload: source = %v", got)
	}
	if st := s.Snapshot(); st.GeneratedURL != "https://img/1.png" {
		t.Errorf("generated url should be kept, got %q", st.GeneratedURL)
	}
}

func TestUploadThenGenerate_GeneratedWins(t *testing.T) {
	s := session.New("s1", stubGen{res: generate.Result{ImageURL: "https://img/2.png"}}, nil)

	if err := s.SetUploadedImage(pngBytes(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.RequestGeneratedImage(context.Background(), "wolf"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	st := s.Snapshot()
	if st.Source != session.SourceGenerated {
		t.Fatalf("source = %v, want generated", st.Source)
	}
	if !st.HasUpload {
		t.Error("uploaded image should be retained")
	}
}

func TestRequestGeneratedImage_MergesMetadata(t *testing.T) {
	s := session.New("s1", stubGen{res: generate.Result{
		ImageURL: "https://img/3.png",
		Metadata: &cards.Metadata{Name: strPtr("Storm Eagle"), HP: intPtr(80)},
	}}, nil)
	if err := s.UpdateField(cards.FieldFlavorText, "Mine."); err != nil {
		t.Fatal(err)
	}

	if err := s.RequestGeneratedImage(context.Background(), "eagle"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := s.Card()
	if c.Name != "Storm Eagle" || c.HP != 80 {
		t.Errorf("metadata not merged: %+v", c)
	}
	if c.FlavorText != "Mine." || c.Type != "Fire" || len(c.Attacks) != 2 {
		t.Errorf("absent fields changed: %+v", c)
	}
}

func TestRequestGeneratedImage_FailureLeavesState(t *testing.T) {
	boom := errors.New("boom")
	s := session.New("s1", stubGen{err: boom}, nil)
	before := s.Snapshot()

	err := s.RequestGeneratedImage(context.Background(), "dragon")
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped generator error, got %v", err)
	}
	after := s.Snapshot()
	if after.Card.Name != before.Card.Name || after.Card.HP != before.Card.HP {
		t.Errorf("card changed on failure: %+v", after.Card)
	}
	if after.GeneratedURL != "" || after.Source != session.SourceNone || after.Generating {
		t.Errorf("image state changed on failure: %+v", after)
	}
}

func TestRequestGeneratedImage_FailureKeepsUpload(t *testing.T) {
	s := session.New("s1", stubGen{err: errors.New("boom")}, nil)
	if err := s.SetUploadedImage(pngBytes(t)); err != nil {
		t.Fatal(err)
	}

	if err := s.RequestGeneratedImage(context.Background(), "dragon"); err == nil {
		t.Fatal("expected error")
	}
	if got := s.ActiveSource(); got != session.SourceUploaded {
		t.Errorf("failed generation changed active source: uploaded -> %v", got)
	}
}

func TestRequestGeneratedImage_FailureKeepsGenerated(t *testing.T) {
	gen := &switchGen{res: generate.Result{ImageURL: "https://img/ok.png"}}
	s := session.New("s1", gen, nil)
	if err := s.RequestGeneratedImage(context.Background(), "first"); err != nil {
		t.Fatal(err)
	}

	gen.err = errors.New("boom")
	if err := s.RequestGeneratedImage(context.Background(), "second"); err == nil {
		t.Fatal("expected error")
	}
	st := s.Snapshot()
	if st.Source != session.SourceGenerated || st.GeneratedURL != "https://img/ok.png" {
		t.Errorf("failed generation changed image state: %+v", st)
	}
}

func TestRequestGeneratedImage_CanceledKeepsUpload(t *testing.T) {
	g := newGatedGen("slow")
	s := session.New("s1", g, nil)
	if err := s.SetUploadedImage(pngBytes(t)); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.RequestGeneratedImage(ctx, "slow") }()
	g.waitStarted(t, "slow")
	if got := s.ActiveSource(); got != session.SourceNone {
		t.Errorf("upload should be deselected while generating, got %v", got)
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if got := s.ActiveSource(); got != session.SourceUploaded {
		t.Errorf("canceled generation changed active source: uploaded -> %v", got)
	}
}

func TestRequestGeneratedImage_OlderFailureDoesNotRestoreUpload(t *testing.T) {
	g := newGatedGen("first", "second")
	s := session.New("s1", g, nil)
	if err := s.SetUploadedImage(pngBytes(t)); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() { firstErr <- s.RequestGeneratedImage(ctx, "first") }()
	g.waitStarted(t, "first")

	secondErr := make(chan error, 1)
	go func() { secondErr <- s.RequestGeneratedImage(context.Background(), "second") }()
	g.waitStarted(t, "second")

	cancel()
	if err := <-firstErr; err == nil {
		t.Fatal("expected first request to fail")
	}
	if got := s.ActiveSource(); got != session.SourceNone {
		t.Errorf("superseded failure reselected the upload: %v", got)
	}

	g.release["second"] <- generate.Result{ImageURL: "https://img/second.png"}
	if err := <-secondErr; err != nil {
		t.Fatalf("second: unexpected error: %v", err)
	}
	if got := s.ActiveSource(); got != session.SourceGenerated {
		t.Errorf("source = %v, want generated", got)
	}
}

func TestRequestGeneratedImage_EmptyPrompt(t *testing.T) {
	s := session.New("s1", stubGen{res: generate.Result{ImageURL: "x"}}, nil)
	if err := s.SetUploadedImage(pngBytes(t)); err != nil {
		t.Fatal(err)
	}
	if err := s.RequestGeneratedImage(context.Background(), " "); !errors.Is(err, generate.ErrEmptyPrompt) {
		t.Fatalf("expected ErrEmptyPrompt, got %v", err)
	}
	if got := s.ActiveSource(); got != session.SourceUploaded {
		t.Errorf("empty prompt changed source to %v", got)
	}
}

func TestRequestGeneratedImage_StaleResultDiscarded(t *testing.T) {
	g := newGatedGen("first", "second")
	s := session.New("s1", g, nil)
	ctx := context.Background()

	firstErr := make(chan error, 1)
	go func() { firstErr <- s.RequestGeneratedImage(ctx, "first") }()
	g.waitStarted(t, "first")

	secondErr := make(chan error, 1)
	go func() { secondErr <- s.RequestGeneratedImage(ctx, "second") }()
	g.waitStarted(t, "second")

	if !s.Snapshot().Generating {
		t.Error("expected generating while requests are in flight")
	}

	g.release["second"] <- generate.Result{ImageURL: "https://img/second.png", Metadata: &cards.Metadata{Name: strPtr("Second")}}
	if err := <-secondErr; err != nil {
		t.Fatalf("second: unexpected error: %v", err)
	}

	g.release["first"] <- generate.Result{ImageURL: "https://img/first.png", Metadata: &cards.Metadata{Name: strPtr("First")}}
	if err := <-firstErr; !errors.Is(err, session.ErrStaleGeneration) {
		t.Fatalf("first: expected ErrStaleGeneration, got %v", err)
	}

	st := s.Snapshot()
	if st.GeneratedURL != "https://img/second.png" || st.Card.Name != "Second" {
		t.Errorf("stale result applied: %+v", st)
	}
	if st.Generating {
		t.Error("generating flag should be cleared")
	}
}

func TestRequestGeneratedImage_UploadDuringFlight(t *testing.T) {
	g := newGatedGen("slow")
	s := session.New("s1", g, nil)

	done := make(chan error, 1)
	go func() { done <- s.RequestGeneratedImage(context.Background(), "slow") }()
	g.waitStarted(t, "slow")

	if err := s.SetUploadedImage(pngBytes(t)); err != nil {
		t.Fatal(err)
	}
	g.release["slow"] <- generate.Result{ImageURL: "https://img/slow.png", Metadata: &cards.Metadata{HP: intPtr(42)}}
	if err := <-done; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	st := s.Snapshot()
	if st.Source != session.SourceUploaded {
		t.Errorf("late generation took over the upload: source = %v", st.Source)
	}
	if st.GeneratedURL != "https://img/slow.png" || st.Card.HP != 42 {
		t.Errorf("late generation should still be recorded: %+v", st)
	}
}

func TestSetUploadedImage(t *testing.T) {
	s := session.New("s1", stubGen{}, nil)
	if err := s.SetUploadedImage(nil); err != nil {
		t.Fatalf("empty upload: %v", err)
	}
	if s.ActiveSource() != session.SourceNone {
		t.Error("empty upload changed the source")
	}
	if err := s.SetUploadedImage([]byte("garbage")); err == nil {
		t.Fatal("expected decode error")
	}
	if s.Snapshot().HasUpload {
		t.Error("failed upload stored an image")
	}
}

func TestAttacks(t *testing.T) {
	s := session.New("s1", stubGen{}, nil)

	if i := s.AddAttack(cards.Attack{Name: "Tail Whip", Damage: 20}); i != 2 {
		t.Errorf("AddAttack index = %d, want 2", i)
	}
	if err := s.UpdateAttack(2, cards.AttackFieldDamage, "25"); err != nil {
		t.Fatal(err)
	}
	if err := s.UpdateAttack(7, cards.AttackFieldName, "Ghost"); err != nil {
		t.Fatalf("out of range update: %v", err)
	}
	c := s.Card()
	if len(c.Attacks) != 3 || c.Attacks[2].Damage != 25 {
		t.Fatalf("unexpected attacks %+v", c.Attacks)
	}
	if s.RemoveAttack(5) {
		t.Error("RemoveAttack(5) reported success")
	}
	if !s.RemoveAttack(0) {
		t.Fatal("RemoveAttack(0) failed")
	}
	if c := s.Card(); len(c.Attacks) != 2 || c.Attacks[0].Name != "Dragon Roar" {
		t.Errorf("unexpected attacks after remove %+v", c.Attacks)
	}
}

type fetcherFunc func(ctx context.Context, url string) (image.Image, error)

func (f fetcherFunc) Fetch(ctx context.Context, url string) (image.Image, error) { return f(ctx, url) }

func TestExport(t *testing.T) {
	s := session.New("s1", stubGen{res: generate.Result{ImageURL: "https://img/e.png"}}, nil)
	if err := s.UpdateField(cards.FieldName, "Fire Drake"); err != nil {
		t.Fatal(err)
	}
	if err := s.RequestGeneratedImage(context.Background(), "drake"); err != nil {
		t.Fatal(err)
	}

	calls := 0
	fetch := fetcherFunc(func(_ context.Context, url string) (image.Image, error) {
		calls++
		if url != "https://img/e.png" {
			t.Errorf("unexpected fetch %q", url)
		}
		return image.NewNRGBA(image.Rect(0, 0, 10, 10)), nil
	})

	for i := 0; i < 2; i++ {
		var buf bytes.Buffer
		name, err := s.Export(context.Background(), &buf, fetch)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if name != "Fire_Drake_card.jpg" {
			t.Errorf("unexpected filename %q", name)
		}
		if buf.Len() == 0 {
			t.Error("empty export")
		}
	}
	if calls != 1 {
		t.Errorf("generated image fetched %d times, want 1", calls)
	}
}

func TestExport_FetchFailureStillRenders(t *testing.T) {
	s := session.New("s1", stubGen{res: generate.Result{ImageURL: "https://img/gone.png"}}, nil)
	if err := s.RequestGeneratedImage(context.Background(), "x"); err != nil {
		t.Fatal(err)
	}
	fetch := fetcherFunc(func(context.Context, string) (image.Image, error) {
		return nil, errors.New("404")
	})
	var buf bytes.Buffer
	if _, err := s.Export(context.Background(), &buf, fetch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("empty export")
	}
}

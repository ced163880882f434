package cards_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/youruser/cardgen/internal/cards"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadCards_TOMLArray(t *testing.T) {
	path := writeFile(t, "deck.toml", `
[[cards]]
name = "Fire Drake"
hp = 90
type = "Fire"
rarity = "Epic"
flavor_text = "Smoke follows it."

  [[cards.attacks]]
  name = "Scorch"
  damage = 40
  description = "Burns."

[[cards]]
name = "Pebble"
type = "Earth"
rarity = "Common"
`)
	got, err := cards.LoadCards(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(got))
	}
	if got[0].Name != "Fire Drake" || got[0].HP != 90 || got[0].FlavorText != "Smoke follows it." {
		t.Errorf("unexpected first card: %+v", got[0])
	}
	if len(got[0].Attacks) != 1 || got[0].Attacks[0].Damage != 40 {
		t.Errorf("unexpected attacks: %+v", got[0].Attacks)
	}
	if got[1].HP != cards.DefaultHP {
		t.Errorf("missing hp should default to %d, got %d", cards.DefaultHP, got[1].HP)
	}
}

func TestLoadCards_TOMLSingle(t *testing.T) {
	path := writeFile(t, "one.toml", `
name = "Tide Caller"
hp = 70
type = "Water"
rarity = "Uncommon"

[[attacks]]
name = "Splash"
damage = 10
`)
	got, err := cards.LoadCards(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Tide Caller" || len(got[0].Attacks) != 1 {
		t.Fatalf("unexpected cards: %+v", got)
	}
}

func TestLoadCards_JSON(t *testing.T) {
	one := writeFile(t, "one.json", `{"name":"Gale","hp":60,"type":"Air","rarity":"Rare","flavorText":"Whoosh"}`)
	got, err := cards.LoadCards(one)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].FlavorText != "Whoosh" {
		t.Fatalf("unexpected cards: %+v", got)
	}

	many := writeFile(t, "many.json", `[{"name":"A"},{"name":"B","hp":5}]`)
	got, err = cards.LoadCards(many)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].HP != cards.DefaultHP || got[1].HP != 5 {
		t.Fatalf("unexpected cards: %+v", got)
	}
}

func TestLoadCards_CSV(t *testing.T) {
	path := writeFile(t, "deck.csv", "name,hp,type,rarity,flavor_text,attacks\n"+
		"Fire Drake,90,Fire,Epic,Hot,Scorch:40:Burns / Roar:-:Scary\n"+
		"Pebble,,Earth,Common,,-\n")
	got, err := cards.LoadCards(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(got))
	}
	a := got[0].Attacks
	if len(a) != 2 || a[0].Name != "Scorch" || a[0].Damage != 40 || a[0].Description != "Burns" {
		t.Errorf("unexpected attacks: %+v", a)
	}
	if a[1].Damage != 0 || a[1].Description != "Scary" {
		t.Errorf("unexpected second attack: %+v", a[1])
	}
	if got[1].HP != cards.DefaultHP || len(got[1].Attacks) != 0 {
		t.Errorf("unexpected second card: %+v", got[1])
	}
}

func TestLoadCards_CSVBadHP(t *testing.T) {
	path := writeFile(t, "bad.csv", "name,hp\nX,many\n")
	if _, err := cards.LoadCards(path); !errors.Is(err, cards.ErrInvalidHP) {
		t.Fatalf("expected ErrInvalidHP, got %v", err)
	}
}

func TestLoadCards_EmptyName(t *testing.T) {
	path := writeFile(t, "noname.json", `{"hp":10}`)
	if _, err := cards.LoadCards(path); !errors.Is(err, cards.ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
}

func TestLoadCards_Errors(t *testing.T) {
	if _, err := cards.LoadCards(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := cards.LoadCards(writeFile(t, "deck.yaml", "name: x")); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

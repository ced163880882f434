package cards

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// fileCard mirrors Card with an optional HP so a missing value gets the default.
type fileCard struct {
	Name       string   `json:"name" toml:"name"`
	HP         *int     `json:"hp" toml:"hp"`
	Type       string   `json:"type" toml:"type"`
	Rarity     string   `json:"rarity" toml:"rarity"`
	FlavorText string   `json:"flavorText" toml:"flavor_text"`
	Attacks    []Attack `json:"attacks" toml:"attacks"`
}

type tomlFile struct {
	Cards []fileCard `toml:"cards"`
}

func (f fileCard) card() (Card, error) {
	c := Card{
		Name:       f.Name,
		HP:         DefaultHP,
		Type:       f.Type,
		Rarity:     f.Rarity,
		FlavorText: f.FlavorText,
		Attacks:    f.Attacks,
	}
	if f.HP != nil {
		c.HP = *f.HP
	}
	if strings.TrimSpace(c.Name) == "" {
		return Card{}, ErrEmptyName
	}
	return c, nil
}

// LoadCards reads card descriptions from a .toml, .json or .csv file.
// TOML files hold either one card at the top level or a [[cards]] array; JSON
// files hold one object or an array of objects.
func LoadCards(path string) ([]Card, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("card file %s: %w", path, err)
	}
	var (
		raw []fileCard
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		raw, err = loadTOML(path)
	case ".json":
		raw, err = loadJSON(path)
	case ".csv":
		return loadCSV(path)
	default:
		return nil, fmt.Errorf("unsupported card file extension %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	out := make([]Card, 0, len(raw))
	for i, f := range raw {
		c, err := f.card()
		if err != nil {
			return nil, fmt.Errorf("%s: card %d: %w", path, i+1, err)
		}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no cards found in %s", path)
	}
	return out, nil
}

func loadTOML(path string) ([]fileCard, error) {
	var many tomlFile
	if _, err := toml.DecodeFile(path, &many); err != nil {
		return nil, err
	}
	if len(many.Cards) > 0 {
		return many.Cards, nil
	}
	var one fileCard
	if _, err := toml.DecodeFile(path, &one); err != nil {
		return nil, err
	}
	return []fileCard{one}, nil
}

func loadJSON(path string) ([]fileCard, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(string(b))
	if strings.HasPrefix(trimmed, "[") {
		var many []fileCard
		if err := json.Unmarshal(b, &many); err != nil {
			return nil, err
		}
		return many, nil
	}
	var one fileCard
	if err := json.Unmarshal(b, &one); err != nil {
		return nil, err
	}
	return []fileCard{one}, nil
}

// parseListCell splits a "/"-separated cell, dropping blanks and "-".
func parseListCell(s string) []string {
	s = strings.ReplaceAll(s, "／", "/")
	parts := strings.Split(s, "/")
	out := []string{}
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" && t != "-" {
			out = append(out, t)
		}
	}
	return out
}

// parseAttackCell reads "Name:Damage:Description" entries from a list cell.
func parseAttackCell(s string) ([]Attack, error) {
	var out []Attack
	for _, item := range parseListCell(s) {
		parts := strings.SplitN(item, ":", 3)
		a := Attack{Name: strings.TrimSpace(parts[0])}
		if len(parts) > 1 {
			d := strings.TrimSpace(parts[1])
			if d != "" && d != "-" {
				v, err := strconv.Atoi(d)
				if err != nil {
					return nil, fmt.Errorf("%w: %q", ErrInvalidDamage, d)
				}
				a.Damage = v
			}
		}
		if len(parts) > 2 {
			a.Description = strings.TrimSpace(parts[2])
		}
		out = append(out, a)
	}
	return out, nil
}

func loadCSV(path string) ([]Card, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	r := csv.NewReader(fp)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("csv %s has no header", path)
	}
	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[strings.TrimSpace(h)] = i
	}

	get := func(row []string, name string) string {
		if idx, ok := cols[name]; ok && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	out := []Card{}
	for n, row := range rows[1:] {
		line := n + 2
		c := Card{
			Name:       get(row, "name"),
			HP:         DefaultHP,
			Type:       get(row, "type"),
			Rarity:     get(row, "rarity"),
			FlavorText: get(row, "flavor_text"),
		}
		if c.Name == "" {
			return nil, fmt.Errorf("%s line %d: %w", path, line, ErrEmptyName)
		}
		if hp := get(row, "hp"); hp != "" && hp != "-" {
			v, err := strconv.Atoi(hp)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w: %q", path, line, ErrInvalidHP, hp)
			}
			c.HP = v
		}
		attacks, err := parseAttackCell(get(row, "attacks"))
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line, err)
		}
		c.Attacks = attacks
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no cards found in %s", path)
	}
	return out, nil
}

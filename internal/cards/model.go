package cards

// Attack is one row on the card. Its position in Card.Attacks is the display
// order and the 1-based energy cost badge.
type Attack struct {
	Name        string `json:"name" toml:"name"`
	Damage      int    `json:"damage" toml:"damage"`
	Description string `json:"description" toml:"description"`
}

// Card is the editable description of a trading card.
type Card struct {
	Name       string   `json:"name" toml:"name"`
	HP         int      `json:"hp" toml:"hp"`
	Type       string   `json:"type" toml:"type"`
	Rarity     string   `json:"rarity" toml:"rarity"`
	FlavorText string   `json:"flavorText" toml:"flavor_text"`
	Attacks    []Attack `json:"attacks" toml:"attacks"`
}

// Metadata is a partial Card as returned by a generator. Nil fields are
// absent and never overwrite the card they are merged into.
type Metadata struct {
	Name       *string  `json:"name,omitempty"`
	HP         *int     `json:"hp,omitempty"`
	Type       *string  `json:"type,omitempty"`
	Rarity     *string  `json:"rarity,omitempty"`
	FlavorText *string  `json:"flavorText,omitempty"`
	Attacks    []Attack `json:"attacks,omitempty"`
}

const DefaultHP = 100

// Default returns the card a new editing session starts with.
func Default() Card {
	return Card{
		Name:       "Mystic Dragon",
		HP:         DefaultHP,
		Type:       "Fire",
		Rarity:     "Rare",
		FlavorText: "A legendary creature born from ancient flames.",
		Attacks: []Attack{
			{Name: "Flame Burst", Damage: 60, Description: "Deal 60 damage to the opponent."},
			{Name: "Dragon Roar", Damage: 0, Description: "Opponent's next attack deals 20 less damage."},
		},
	}
}

// Clone returns a deep copy so callers can't alias the attack slice.
func (c Card) Clone() Card {
	out := c
	if c.Attacks != nil {
		out.Attacks = make([]Attack, len(c.Attacks))
		copy(out.Attacks, c.Attacks)
	}
	return out
}

// Merge overwrites only the fields present in m. A nil m leaves c unchanged.
func (c Card) Merge(m *Metadata) Card {
	out := c.Clone()
	if m == nil {
		return out
	}
	if m.Name != nil {
		out.Name = *m.Name
	}
	if m.HP != nil {
		out.HP = *m.HP
	}
	if m.Type != nil {
		out.Type = *m.Type
	}
	if m.Rarity != nil {
		out.Rarity = *m.Rarity
	}
	if m.FlavorText != nil {
		out.FlavorText = *m.FlavorText
	}
	if m.Attacks != nil {
		out.Attacks = make([]Attack, len(m.Attacks))
		copy(out.Attacks, m.Attacks)
	}
	return out
}

package cards

import (
	"image/color"
	"strings"
)

var (
	Types    = []string{"Fire", "Water", "Earth", "Air", "Dark", "Light"}
	Rarities = []string{"Common", "Uncommon", "Rare", "Epic", "Legendary"}
)

// UnknownTypeSymbol is shown in the type badge for types outside Types.
const UnknownTypeSymbol = "N"

var typeSymbols = map[string]string{
	"fire":  "F",
	"water": "W",
	"earth": "E",
	"air":   "A",
	"dark":  "D",
	"light": "L",
}

var typeColors = map[string]color.NRGBA{
	"fire":  {R: 0xef, G: 0x44, B: 0x44, A: 0xff},
	"water": {R: 0x3b, G: 0x82, B: 0xf6, A: 0xff},
	"earth": {R: 0x92, G: 0x40, B: 0x0e, A: 0xff},
	"air":   {R: 0x0e, G: 0xa5, B: 0xe9, A: 0xff},
	"dark":  {R: 0x37, G: 0x41, B: 0x51, A: 0xff},
	"light": {R: 0xea, G: 0xb3, B: 0x08, A: 0xff},
}

var unknownTypeColor = color.NRGBA{R: 0x6b, G: 0x72, B: 0x80, A: 0xff}

var rarityColors = map[string]color.NRGBA{
	"common":    {R: 0x9c, G: 0xa3, B: 0xaf, A: 0xff},
	"uncommon":  {R: 0x22, G: 0xc5, B: 0x5e, A: 0xff},
	"rare":      {R: 0x3b, G: 0x82, B: 0xf6, A: 0xff},
	"epic":      {R: 0xa8, G: 0x55, B: 0xf7, A: 0xff},
	"legendary": {R: 0xf5, G: 0x9e, B: 0x0b, A: 0xff},
}

// TypeSymbol returns the single-letter badge for an elemental type.
func TypeSymbol(t string) string {
	if s, ok := typeSymbols[strings.ToLower(strings.TrimSpace(t))]; ok {
		return s
	}
	return UnknownTypeSymbol
}

// TypeColor returns the badge fill for an elemental type.
func TypeColor(t string) color.NRGBA {
	if c, ok := typeColors[strings.ToLower(strings.TrimSpace(t))]; ok {
		return c
	}
	return unknownTypeColor
}

// RarityColor returns the border color for a rarity. Matching ignores case and
// anything unrecognized gets the Common color.
func RarityColor(r string) color.NRGBA {
	if c, ok := rarityColors[strings.ToLower(strings.TrimSpace(r))]; ok {
		return c
	}
	return rarityColors["common"]
}

// IsKnownType reports whether t is one of Types, ignoring case.
func IsKnownType(t string) bool {
	_, ok := typeSymbols[strings.ToLower(strings.TrimSpace(t))]
	return ok
}

// IsKnownRarity reports whether r is one of Rarities, ignoring case.
func IsKnownRarity(r string) bool {
	_, ok := rarityColors[strings.ToLower(strings.TrimSpace(r))]
	return ok
}

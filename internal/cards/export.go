package cards

import (
	"fmt"
	"regexp"
	"strings"
)

const FilenameSuffix = "_card.jpg"

var whitespaceRun = regexp.MustCompile(`\s+`)

// Filename is the download name of a rendered card: runs of whitespace in the
// card name become a single underscore.
func Filename(name string) string {
	base := whitespaceRun.ReplaceAllString(name, "_")
	if base == "" {
		base = "card"
	}
	return base + FilenameSuffix
}

// ExportText renders a plain-text summary of the card, one line per item.
func ExportText(c Card) string {
	lines := []string{}
	lines = append(lines, fmt.Sprintf("# %s (HP %d)", c.Name, c.HP))
	lines = append(lines, fmt.Sprintf("%s / %s [%s]", c.Type, c.Rarity, TypeSymbol(c.Type)))
	for i, a := range c.Attacks {
		line := fmt.Sprintf("%d. %s", i+1, a.Name)
		if a.Damage > 0 {
			line += fmt.Sprintf(" - %d", a.Damage)
		}
		if a.Description != "" {
			line += ": " + a.Description
		}
		lines = append(lines, line)
	}
	if c.FlavorText != "" {
		lines = append(lines, "> "+c.FlavorText)
	}
	return strings.Join(lines, "\n")
}

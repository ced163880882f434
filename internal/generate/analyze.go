package generate

import (
	"fmt"
	"strings"

	"github.com/youruser/cardgen/internal/cards"
)

type keywordGroup struct {
	key      string
	keywords []string
}

// Groups are checked in order; the first group with a hit wins.
var (
	sizeIndicators = []struct {
		word       string
		multiplier float64
	}{
		{"tiny", 0.3}, {"small", 0.5}, {"young", 0.6}, {"medium", 0.7},
		{"large", 1.2}, {"huge", 1.5}, {"massive", 1.8}, {"giant", 2.0},
		{"ancient", 1.6}, {"elder", 1.4}, {"baby", 0.4}, {"mighty", 1.3},
	}

	elementKeywords = []keywordGroup{
		{"Fire", []string{"fire", "flame", "lava", "magma", "ember", "phoenix", "dragon"}},
		{"Water", []string{"water", "ice", "frost", "ocean", "sea", "aquatic", "whale"}},
		{"Earth", []string{"rock", "stone", "earth", "mountain", "crystal", "gem"}},
		{"Air", []string{"wind", "storm", "cloud", "lightning", "thunder", "eagle"}},
		{"Dark", []string{"shadow", "dark", "void", "nightmare", "demon", "evil"}},
		{"Light", []string{"light", "holy", "angel", "divine", "celestial", "bright"}},
	}

	creatureKeywords = []keywordGroup{
		{"dragon", []string{"dragon", "drake", "wyrm"}},
		{"wolf", []string{"wolf", "dire wolf", "fenrir"}},
		{"bird", []string{"eagle", "phoenix", "hawk", "raven"}},
		{"beast", []string{"tiger", "lion", "bear", "panther"}},
		{"elemental", []string{"elemental", "spirit", "wisp"}},
		{"demon", []string{"demon", "devil", "fiend"}},
		{"angel", []string{"angel", "seraph", "cherub"}},
		{"undead", []string{"skeleton", "zombie", "lich", "ghost"}},
	}

	combatKeywords = []keywordGroup{
		{"slashing", []string{"claws", "talons", "sharp"}},
		{"fire", []string{"fire", "flame", "burning"}},
		{"magic", []string{"magic", "spell", "enchanted"}},
		{"biting", []string{"bite", "teeth", "fangs"}},
	}

	epicWords = []string{"legendary", "ancient", "mythical"}
)

const (
	defaultElement  = "Fire"
	defaultCreature = "beast"
	defaultStyle    = "physical"
)

// Analysis is what the prompt reveals about the creature to be drawn.
type Analysis struct {
	PowerLevel   float64
	Element      string
	Complexity   int
	CreatureType string
	CombatStyles []string
}

func containsAny(hay string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(hay, n) {
			return true
		}
	}
	return false
}

func firstGroup(hay string, groups []keywordGroup, fallback string) string {
	for _, g := range groups {
		if containsAny(hay, g.keywords) {
			return g.key
		}
	}
	return fallback
}

// Analyze reads power, element, creature kind and combat styles from prompt
// keywords.
func Analyze(prompt string) Analysis {
	lower := strings.ToLower(prompt)

	a := Analysis{
		PowerLevel:   1.0,
		Element:      firstGroup(lower, elementKeywords, defaultElement),
		Complexity:   len(strings.Fields(prompt)),
		CreatureType: firstGroup(lower, creatureKeywords, defaultCreature),
	}
	for _, s := range sizeIndicators {
		if strings.Contains(lower, s.word) {
			a.PowerLevel = s.multiplier
			break
		}
	}
	if containsAny(lower, epicWords) {
		a.Complexity += 2
	}
	for _, g := range combatKeywords {
		if containsAny(lower, g.keywords) {
			a.CombatStyles = append(a.CombatStyles, g.key)
		}
	}
	if len(a.CombatStyles) == 0 {
		a.CombatStyles = []string{defaultStyle}
	}
	return a
}

// RarityFor maps the rarity score (complexity plus twice the power level)
// onto the rarity tiers.
func RarityFor(complexity int, power float64) string {
	score := float64(complexity) + power*2
	switch {
	case score >= 12:
		return "Legendary"
	case score >= 9:
		return "Epic"
	case score >= 6:
		return "Rare"
	case score >= 4:
		return "Uncommon"
	default:
		return "Common"
	}
}

// Synthesize builds full card metadata for prompt.
func Synthesize(prompt string, rng RNG) cards.Metadata {
	return Stats(Analyze(prompt), rng)
}

// Stats turns an analysis into card metadata. 80% of cards land in the
// 40-100 HP band before the power multiplier; HP is clamped to [20, 150].
func Stats(a Analysis, rng RNG) cards.Metadata {
	var base int
	if rng.Float64() < 0.8 {
		base = randInt(rng, 40, 100)
	} else {
		base = randInt(rng, 100, 150)
	}
	hp := clamp(int(float64(base)*a.PowerLevel), 20, 150)
	rarity := RarityFor(a.Complexity, a.PowerLevel)

	name := creatureName(a, rng)
	attacks := contextualAttacks(a, hp, rarity, rng)
	flavor := flavorText(a, rng)
	element := a.Element

	return cards.Metadata{
		Name:       &name,
		HP:         &hp,
		Type:       &element,
		Rarity:     &rarity,
		FlavorText: &flavor,
		Attacks:    attacks,
	}
}

var (
	elementPrefixes = map[string][]string{
		"Fire":  {"Flame", "Ember", "Blaze", "Inferno", "Cinder"},
		"Water": {"Frost", "Ice", "Wave", "Tide", "Storm"},
		"Earth": {"Stone", "Rock", "Crystal", "Granite", "Iron"},
		"Air":   {"Wind", "Storm", "Thunder", "Lightning", "Gale"},
		"Dark":  {"Shadow", "Void", "Night", "Dread", "Gloom"},
		"Light": {"Dawn", "Radiant", "Celestial", "Divine", "Bright"},
	}

	creatureSuffixes = map[string][]string{
		"dragon":    {"drake", "wyrm", "wing", "scale", "claw"},
		"wolf":      {"fang", "howl", "pack", "moon", "wild"},
		"bird":      {"wing", "talon", "soar", "sky", "flight"},
		"beast":     {"claw", "roar", "hunt", "prowl", "fierce"},
		"elemental": {"spirit", "essence", "force", "energy", "core"},
		"demon":     {"spawn", "fiend", "terror", "doom", "bane"},
		"angel":     {"wing", "light", "grace", "holy", "divine"},
		"undead":    {"bone", "soul", "wraith", "specter", "shade"},
	}
)

func creatureName(a Analysis, rng RNG) string {
	prefixes, ok := elementPrefixes[a.Element]
	if !ok {
		prefixes = []string{"Ancient"}
	}
	suffixes, ok := creatureSuffixes[a.CreatureType]
	if !ok {
		suffixes = []string{"beast"}
	}
	return pick(rng, prefixes) + pick(rng, suffixes)
}

var elementAttacks = map[string]map[string][]cards.Attack{
	"Fire": {
		"slashing": {{Name: "Flame Claw", Damage: 35, Description: "Slashes with burning claws"}},
		"fire":     {{Name: "Inferno Blast", Damage: 45, Description: "Unleashes a torrent of flames"}},
		"magic":    {{Name: "Fire Storm", Damage: 40, Description: "Conjures a magical fire storm"}},
		"biting":   {{Name: "Ember Bite", Damage: 30, Description: "Bites with flame-wreathed fangs"}},
	},
	"Water": {
		"slashing": {{Name: "Ice Claw", Damage: 32, Description: "Strikes with frozen talons"}},
		"fire":     {{Name: "Steam Burst", Damage: 38, Description: "Superheated water explosion"}},
		"magic":    {{Name: "Tidal Wave", Damage: 42, Description: "Summons a crushing wave"}},
		"biting":   {{Name: "Frost Bite", Damage: 28, Description: "Freezing bite that slows enemies"}},
	},
	"Earth": {
		"slashing": {{Name: "Stone Claw", Damage: 38, Description: "Cuts with razor-sharp stone"}},
		"magic":    {{Name: "Earthquake", Damage: 50, Description: "Shakes the ground violently"}},
		"physical": {{Name: "Boulder Throw", Damage: 45, Description: "Hurls massive rocks"}},
	},
	"Air": {
		"slashing": {{Name: "Wind Blade", Damage: 35, Description: "Cuts with compressed air"}},
		"magic":    {{Name: "Lightning Strike", Damage: 48, Description: "Calls down electric fury"}},
		"physical": {{Name: "Gust Slam", Damage: 40, Description: "Powerful wind attack"}},
	},
	"Dark": {
		"slashing": {{Name: "Shadow Claw", Damage: 36, Description: "Strikes from darkness"}},
		"magic":    {{Name: "Void Drain", Damage: 25, Description: "Drains life force from enemy"}},
		"physical": {{Name: "Terror Strike", Damage: 42, Description: "Frightening physical assault"}},
	},
	"Light": {
		"slashing": {{Name: "Radiant Slash", Damage: 38, Description: "Cuts with holy light"}},
		"magic":    {{Name: "Divine Ray", Damage: 44, Description: "Blasts with pure light"}},
		"physical": {{Name: "Blessing Strike", Damage: 35, Description: "Heals self while attacking"}},
	},
}

var rarityDamage = map[string]float64{
	"Common": 0.9, "Uncommon": 1.0, "Rare": 1.1, "Epic": 1.2, "Legendary": 1.3,
}

var basicStrike = cards.Attack{Name: "Basic Strike", Damage: 25, Description: "A simple but effective attack"}

// contextualAttacks yields exactly two attacks: one for the primary combat
// style, then either a weaker offensive move (70%) or a utility move.
func contextualAttacks(a Analysis, hp int, rarity string, rng RNG) []cards.Attack {
	byStyle, ok := elementAttacks[a.Element]
	if !ok {
		byStyle = elementAttacks[defaultElement]
	}
	primary := a.CombatStyles[0]
	styleAttacks, ok := byStyle[primary]
	if !ok {
		styleAttacks, ok = byStyle[defaultStyle]
		if !ok {
			styleAttacks = []cards.Attack{{Name: "Strike", Damage: 30, Description: "Basic attack"}}
		}
	}
	mult := rarityDamage[rarity]
	if mult == 0 {
		mult = 1.0
	}

	attacks := make([]cards.Attack, 0, 2)
	first := pick(rng, styleAttacks)
	first.Damage = max(15, int(float64(first.Damage)*mult))
	attacks = append(attacks, first)

	if rng.Float64() < 0.7 {
		secondary := "magic"
		if len(a.CombatStyles) > 1 {
			secondary = a.CombatStyles[1]
		}
		pool, ok := byStyle[secondary]
		if !ok {
			pool = styleAttacks
		}
		second := pick(rng, pool)
		second.Damage = max(10, int(float64(second.Damage)*mult*0.8))
		attacks = append(attacks, second)
	} else {
		utility := []cards.Attack{
			{Name: "Regenerate", Damage: 0, Description: fmt.Sprintf("Restores %d HP", hp/5)},
			{Name: "Fortify", Damage: 0, Description: "Reduces next attack by 50%"},
			{Name: "Power Up", Damage: 0, Description: "Next attack deals double damage"},
		}
		attacks = append(attacks, pick(rng, utility))
	}

	if len(attacks) < 2 {
		attacks = append(attacks, basicStrike)
	}
	return attacks[:2]
}

var flavorTemplates = map[string][]string{
	"dragon": {
		"Ancient and wise, this dragon commands respect from all who encounter it.",
		"Born from the heart of a volcano, its rage burns eternal.",
		"Legends speak of its hoard hidden deep in mountain caves.",
	},
	"wolf": {
		"A lone hunter that stalks its prey through moonlit forests.",
		"Leader of the pack, feared by all woodland creatures.",
		"Its howl echoes through the night, calling its kin to hunt.",
	},
	"bird": {
		"Soaring high above the clouds, it surveys its domain below.",
		"Its keen eyes miss nothing as it patrols the skies.",
		"Graceful in flight, deadly when it strikes.",
	},
	"beast": {
		"A fierce predator that rules its territory with strength.",
		"Its roar can be heard for miles, warning others to stay away.",
		"Perfectly adapted to survive in the harshest conditions.",
	},
	"elemental": {
		"A manifestation of pure elemental energy given form.",
		"It exists between the physical and spiritual realms.",
		"Ancient magic binds this creature to the natural world.",
	},
}

func flavorText(a Analysis, rng RNG) string {
	templates, ok := flavorTemplates[a.CreatureType]
	if !ok {
		templates = flavorTemplates[defaultCreature]
	}
	return pick(rng, templates)
}

func pick[T any](rng RNG, items []T) T {
	return items[rng.Intn(len(items))]
}

// randInt returns a value in [lo, hi].
func randInt(rng RNG, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

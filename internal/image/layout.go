package imagepkg

import (
	"image/color"
	"strconv"

	"github.com/youruser/cardgen/internal/cards"
)

// Card canvas geometry. Everything in CardLayout is derived from these.
const (
	CardWidth  = 720
	CardHeight = 1000

	borderInset = 4
	borderWidth = 8

	headerHeight   = 80
	headerBaseline = 52

	attackAreaOffset = 200 // rows start this far above the bottom edge
	attackRowStep    = 80
	attackDescGap    = 32

	flavorOffset = 60
	rarityOffset = 24
)

var (
	GradientStart = color.NRGBA{R: 0x66, G: 0x7e, B: 0xea, A: 0xff}
	GradientEnd   = color.NRGBA{R: 0x76, G: 0x4b, B: 0xa2, A: 0xff}

	headerOpaque      = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xe6}
	headerTranslucent = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x4d}

	ink         = color.NRGBA{R: 0x11, G: 0x18, B: 0x27, A: 0xff}
	white       = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	costBadgeBg = color.NRGBA{R: 0x1f, G: 0x29, B: 0x37, A: 0xff}
)

// Align is the horizontal anchor of a text run relative to its X.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Text is one positioned run. Y is the baseline unless Middle is set, in
// which case the run is vertically centered on Y.
type Text struct {
	Value   string
	X, Y    float64
	Align   Align
	Middle  bool
	Style   FontStyle
	Size    float64
	Color   color.NRGBA
	Outline bool
}

// Circle is a filled badge with a centered label.
type Circle struct {
	X, Y, R float64
	Fill    color.NRGBA
	Label   Text
}

// AttackRow is the geometry of one attack. Damage is nil when the attack
// deals no damage.
type AttackRow struct {
	Index       int
	Y           float64
	Badge       Circle
	Name        Text
	Damage      *Text
	Description Text
}

// CardLayout is everything the drawing pass needs, computed without a canvas.
type CardLayout struct {
	Width, Height int

	GradientStart, GradientEnd color.NRGBA

	BorderInset float64
	BorderWidth float64
	BorderColor color.NRGBA

	HeaderHeight               float64
	HeaderOpaque, HeaderFadeTo color.NRGBA

	Name, HP  Text
	TypeBadge Circle
	Attacks   []AttackRow
	Flavor    Text
	Rarity    Text
}

// AttackRowY is the first-line baseline of the attack at 0-based index i.
func AttackRowY(i int) float64 {
	return float64(CardHeight-attackAreaOffset) + float64(attackRowStep*i)
}

// Layout computes positions, strings and colors for c. It is pure.
func Layout(c cards.Card) CardLayout {
	w, h := float64(CardWidth), float64(CardHeight)

	badgeX, badgeY, badgeR := w-44, 40.0, 24.0

	l := CardLayout{
		Width:         CardWidth,
		Height:        CardHeight,
		GradientStart: GradientStart,
		GradientEnd:   GradientEnd,
		BorderInset:   borderInset,
		BorderWidth:   borderWidth,
		BorderColor:   cards.RarityColor(c.Rarity),
		HeaderHeight:  headerHeight,
		HeaderOpaque:  headerOpaque,
		HeaderFadeTo:  headerTranslucent,
		Name: Text{
			Value: c.Name,
			X:     24, Y: headerBaseline,
			Align: AlignLeft, Style: Bold, Size: 36, Color: ink,
		},
		HP: Text{
			Value: "HP " + strconv.Itoa(c.HP),
			X:     badgeX - badgeR - 12, Y: headerBaseline,
			Align: AlignRight, Style: Bold, Size: 28, Color: ink,
		},
		TypeBadge: Circle{
			X: badgeX, Y: badgeY, R: badgeR,
			Fill: cards.TypeColor(c.Type),
			Label: Text{
				Value: cards.TypeSymbol(c.Type),
				X:     badgeX, Y: badgeY,
				Align: AlignCenter, Middle: true, Style: Bold, Size: 26, Color: white,
			},
		},
		Flavor: Text{
			Value: c.FlavorText,
			X:     w / 2, Y: h - flavorOffset,
			Align: AlignCenter, Style: Italic, Size: 18, Color: ink, Outline: true,
		},
		Rarity: Text{
			Value: c.Rarity,
			X:     w - rarityOffset, Y: h - rarityOffset,
			Align: AlignRight, Style: Regular, Size: 16, Color: cards.RarityColor(c.Rarity),
		},
	}

	l.Attacks = make([]AttackRow, 0, len(c.Attacks))
	for i, a := range c.Attacks {
		y := AttackRowY(i)
		row := AttackRow{
			Index: i,
			Y:     y,
			Badge: Circle{
				X: 40, Y: y - 10, R: 16,
				Fill: costBadgeBg,
				Label: Text{
					Value: strconv.Itoa(i + 1),
					X:     40, Y: y - 10,
					Align: AlignCenter, Middle: true, Style: Bold, Size: 18, Color: white,
				},
			},
			Name: Text{
				Value: a.Name,
				X:     72, Y: y,
				Align: AlignLeft, Style: Bold, Size: 26, Color: ink, Outline: true,
			},
			Description: Text{
				Value: a.Description,
				X:     72, Y: y + attackDescGap,
				Align: AlignLeft, Style: Regular, Size: 18, Color: ink, Outline: true,
			},
		}
		if a.Damage > 0 {
			row.Damage = &Text{
				Value: strconv.Itoa(a.Damage),
				X:     w - 32, Y: y,
				Align: AlignRight, Style: Bold, Size: 30, Color: ink, Outline: true,
			}
		}
		l.Attacks = append(l.Attacks, row)
	}
	return l
}

package cards

import (
	"fmt"
	"strconv"
	"strings"
)

// Field keys accepted by SetField. They match the JSON names of Card.
const (
	FieldName       = "name"
	FieldHP         = "hp"
	FieldType       = "type"
	FieldRarity     = "rarity"
	FieldFlavorText = "flavorText"
)

// Field keys accepted by SetAttackField.
const (
	AttackFieldName        = "name"
	AttackFieldDamage      = "damage"
	AttackFieldDescription = "description"
)

// SetField replaces one scalar field of c from its text form. Non-numeric hp
// is rejected and c is left untouched.
func SetField(c *Card, field, value string) error {
	switch field {
	case FieldName:
		c.Name = value
	case FieldHP:
		hp, err := parseInt(value)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidHP, value)
		}
		c.HP = hp
	case FieldType:
		c.Type = value
	case FieldRarity:
		c.Rarity = value
	case FieldFlavorText, "flavor_text":
		c.FlavorText = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// SetAttackField replaces one field of c.Attacks[index]. An index outside the
// attack list is ignored.
func SetAttackField(c *Card, index int, field, value string) error {
	if index < 0 || index >= len(c.Attacks) {
		return nil
	}
	a := c.Attacks[index]
	switch field {
	case AttackFieldName:
		a.Name = value
	case AttackFieldDamage:
		d, err := parseInt(value)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidDamage, value)
		}
		a.Damage = d
	case AttackFieldDescription:
		a.Description = value
	default:
		return fmt.Errorf("%w: attack %q", ErrUnknownField, field)
	}
	c.Attacks[index] = a
	return nil
}

func parseInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

package cards

import "errors"

var (
	ErrUnknownField  = errors.New("unknown card field")
	ErrInvalidHP     = errors.New("hp must be an integer")
	ErrInvalidDamage = errors.New("damage must be an integer")
	ErrEmptyName     = errors.New("card name must not be empty")
)

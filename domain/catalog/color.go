package catalog

import (
	"fmt"
	"strings"
	"time"
)

// Color is a named paint color with a display hex code. A color is shared
// across every episode that uses it.
type Color struct {
	id        int64
	name      string
	hex       string
	createdAt time.Time
	updatedAt time.Time
}

// NewColor creates a Color. The name is required; the hex code is normalized
// to upper-case #RRGGBB form when present.
func NewColor(name, hex string) (Color, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Color{}, fmt.Errorf("%w: color name is required", ErrValidation)
	}
	normalized, err := NormalizeHex(hex)
	if err != nil {
		return Color{}, err
	}
	return Color{name: name, hex: normalized}, nil
}

// RestoreColor rebuilds a Color from persisted state.
func RestoreColor(id int64, name, hex string, createdAt, updatedAt time.Time) Color {
	return Color{
		id:        id,
		name:      name,
		hex:       hex,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ID returns the surrogate identifier (0 until saved).
func (c Color) ID() int64 { return c.id }

// Name returns the color name.
func (c Color) Name() string { return c.name }

// Hex returns the display hex code, e.g. "#FFFFFF".
func (c Color) Hex() string { return c.hex }

// CreatedAt returns the row creation time.
func (c Color) CreatedAt() time.Time { return c.createdAt }

// UpdatedAt returns the last row update time.
func (c Color) UpdatedAt() time.Time { return c.updatedAt }

// NormalizeHex validates a hex color code and returns it in canonical
// "#RRGGBB" upper-case form. An empty input is allowed and returned as-is:
// the source datasets omit hex codes for some colors.
func NormalizeHex(hex string) (string, error) {
	hex = strings.TrimSpace(hex)
	if hex == "" {
		return "", nil
	}
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	if len(hex) != 7 {
		return "", fmt.Errorf("%w: hex code %q must be #RRGGBB", ErrValidation, hex)
	}
	for _, r := range hex[1:] {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return "", fmt.Errorf("%w: hex code %q contains non-hex digit %q", ErrValidation, hex, r)
		}
	}
	return strings.ToUpper(hex), nil
}

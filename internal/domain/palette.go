package domain

import (
	"fmt"
	"strconv"
)

// paletteShiftFactor is how far Light and Dark variants move toward
// white and black respectively.
const paletteShiftFactor = 0.3

// Palette is a set of theme colors derived from a single mood color.
type Palette struct {
	Base  string `json:"base"`
	Light string `json:"light"`
	Dark  string `json:"dark"`
}

// DerivePalette computes lighter and darker variants of a #RRGGBB color.
// Invalid input yields a palette built from the contemplative default so
// callers never have to handle an error on the theming path.
func DerivePalette(color string) Palette {
	if !ValidHexColor(color) {
		color = DefaultColor(MoodContemplative)
	}

	return Palette{
		Base:  color,
		Light: shiftColor(color, paletteShiftFactor),
		Dark:  shiftColor(color, -paletteShiftFactor),
	}
}

// shiftColor moves each RGB channel toward white (positive factor) or
// black (negative factor). The input must be a valid #RRGGBB string.
func shiftColor(color string, factor float64) string {
	r := shiftChannel(color[1:3], factor)
	g := shiftChannel(color[3:5], factor)
	b := shiftChannel(color[5:7], factor)

	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

func shiftChannel(hexPair string, factor float64) int {
	v, _ := strconv.ParseInt(hexPair, 16, 32)

	var shifted float64
	if factor >= 0 {
		shifted = float64(v) + (255-float64(v))*factor
	} else {
		shifted = float64(v) * (1 + factor)
	}

	if shifted < 0 {
		shifted = 0
	}

	if shifted > 255 {
		shifted = 255
	}

	return int(shifted)
}

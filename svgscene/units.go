package svgscene

import (
	"math"
	"strconv"
	"strings"
)

// Conversion to user units assumes the CSS defaults of a 96 dpi
// viewport and a 16px font, which is what math translators target.
const (
	defaultFontSize = 16
	defaultExHeight = 8
)

var unitScales = map[string]float64{
	"px": 1,
	"pt": 96.0 / 72.0,
	"pc": 16,
	"em": defaultFontSize,
	"ex": defaultExHeight,
	"in": 96,
	"cm": 96.0 / 2.54,
	"mm": 96.0 / 25.4,
}

// parseBasicFloat parses a length with an optional absolute unit
// suffix, and converts it to user units.
func parseBasicFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	scale := 1.0
	for suffix, sc := range unitScales {
		if strings.HasSuffix(s, suffix) {
			scale = sc
			s = strings.TrimSuffix(s, suffix)
			break
		}
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f * scale, err
}

type percentageReference uint8

const (
	widthPercentage percentageReference = iota
	heightPercentage
	diagPercentage
)

// parseUnit resolves a length, with percentages measured against
// the view box dimension given by asPerc.
func (c *svgCursor) parseUnit(s string, asPerc percentageReference) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "%") {
		f, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return 0, err
		}
		w, h := c.doc.ViewBox.W, c.doc.ViewBox.H
		switch asPerc {
		case widthPercentage:
			return f / 100 * w, nil
		case heightPercentage:
			return f / 100 * h, nil
		default:
			return f / 100 * math.Hypot(w, h) / math.Sqrt2, nil
		}
	}
	return parseBasicFloat(s)
}

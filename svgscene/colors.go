package svgscene

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Pattern groups the different colors drawable on a path:
// either a plain color or a gradient.
type Pattern interface {
	isPattern()
}

// PlainColor is a simple solid color, implementing Pattern.
type PlainColor struct {
	color.NRGBA
}

// NewPlainColor builds an opacity-aware color.
func NewPlainColor(r, g, b, a uint8) PlainColor {
	return PlainColor{NRGBA: color.NRGBA{R: r, G: g, B: b, A: a}}
}

func (PlainColor) isPattern() {}
func (Gradient) isPattern()   {}

// optionalColor distinguishes a valid color from
// the "none" keyword, which disables painting entirely.
type optionalColor struct {
	color PlainColor
	valid bool
}

func (c optionalColor) asPattern() Pattern {
	if !c.valid {
		return nil
	}
	return c.color
}

func (c optionalColor) asColor() color.Color {
	if !c.valid {
		return nil
	}
	return c.color
}

// subset of the CSS color keywords, enough for the documents
// produced by math translators
var colorKeywords = map[string]PlainColor{
	"black":   NewPlainColor(0x00, 0x00, 0x00, 0xff),
	"white":   NewPlainColor(0xff, 0xff, 0xff, 0xff),
	"red":     NewPlainColor(0xff, 0x00, 0x00, 0xff),
	"green":   NewPlainColor(0x00, 0x80, 0x00, 0xff),
	"blue":    NewPlainColor(0x00, 0x00, 0xff, 0xff),
	"yellow":  NewPlainColor(0xff, 0xff, 0x00, 0xff),
	"orange":  NewPlainColor(0xff, 0xa5, 0x00, 0xff),
	"purple":  NewPlainColor(0x80, 0x00, 0x80, 0xff),
	"gray":    NewPlainColor(0x80, 0x80, 0x80, 0xff),
	"grey":    NewPlainColor(0x80, 0x80, 0x80, 0xff),
	"silver":  NewPlainColor(0xc0, 0xc0, 0xc0, 0xff),
	"maroon":  NewPlainColor(0x80, 0x00, 0x00, 0xff),
	"olive":   NewPlainColor(0x80, 0x80, 0x00, 0xff),
	"lime":    NewPlainColor(0x00, 0xff, 0x00, 0xff),
	"teal":    NewPlainColor(0x00, 0x80, 0x80, 0xff),
	"navy":    NewPlainColor(0x00, 0x00, 0x80, 0xff),
	"aqua":    NewPlainColor(0x00, 0xff, 0xff, 0xff),
	"cyan":    NewPlainColor(0x00, 0xff, 0xff, 0xff),
	"fuchsia": NewPlainColor(0xff, 0x00, 0xff, 0xff),
	"magenta": NewPlainColor(0xff, 0x00, 0xff, 0xff),
}

// parseSVGColor parses an SVG color literal: the "none" keyword,
// #rgb and #rrggbb hex forms, rgb()/rgba() functional forms and a
// subset of the color keywords.
func parseSVGColor(colorStr string) (optionalColor, error) {
	v := strings.ToLower(strings.TrimSpace(colorStr))
	switch v {
	case "none", "":
		return optionalColor{}, nil
	case "transparent":
		return optionalColor{valid: true, color: NewPlainColor(0, 0, 0, 0)}, nil
	case "currentcolor":
		// no color inheritance support: defaults to black
		return optionalColor{valid: true, color: NewPlainColor(0, 0, 0, 0xff)}, nil
	}
	if c, ok := colorKeywords[v]; ok {
		return optionalColor{valid: true, color: c}, nil
	}
	switch {
	case strings.HasPrefix(v, "#"):
		c, err := parseHexColor(v[1:])
		return optionalColor{valid: err == nil, color: c}, err
	case strings.HasPrefix(v, "rgb(") && strings.HasSuffix(v, ")"):
		c, err := parseRGBColor(v[4 : len(v)-1])
		return optionalColor{valid: err == nil, color: c}, err
	case strings.HasPrefix(v, "rgba(") && strings.HasSuffix(v, ")"):
		c, err := parseRGBColor(v[5 : len(v)-1])
		return optionalColor{valid: err == nil, color: c}, err
	}
	return optionalColor{}, fmt.Errorf("unsupported color value %q", colorStr)
}

func parseHexColor(hex string) (PlainColor, error) {
	var out PlainColor
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		fallthrough
	case 6:
		n, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return out, err
		}
		return NewPlainColor(uint8(n>>16), uint8(n>>8), uint8(n), 0xff), nil
	default:
		return out, fmt.Errorf("invalid hex color #%s", hex)
	}
}

// parseRGBColor parses the content of a rgb()/rgba() function:
// integers, percentages, and an optional alpha in [0, 1].
func parseRGBColor(body string) (PlainColor, error) {
	var out PlainColor
	parts := splitOnCommaOrSpace(body)
	if len(parts) != 3 && len(parts) != 4 {
		return out, fmt.Errorf("invalid rgb() value %q", body)
	}
	var channels [3]uint8
	for i, part := range parts[:3] {
		var (
			f   float64
			err error
		)
		if strings.HasSuffix(part, "%") {
			f, err = strconv.ParseFloat(strings.TrimSuffix(part, "%"), 64)
			f = f / 100 * 255
		} else {
			f, err = strconv.ParseFloat(part, 64)
		}
		if err != nil {
			return out, err
		}
		if f < 0 {
			f = 0
		} else if f > 255 {
			f = 255
		}
		channels[i] = uint8(f + 0.5)
	}
	alpha := uint8(0xff)
	if len(parts) == 4 {
		a, err := strconv.ParseFloat(parts[3], 64)
		if err != nil {
			return out, err
		}
		if a < 0 {
			a = 0
		} else if a > 1 {
			a = 1
		}
		alpha = uint8(a*255 + 0.5)
	}
	return NewPlainColor(channels[0], channels[1], channels[2], alpha), nil
}

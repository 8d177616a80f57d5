package svgscene

import (
	"encoding/xml"
	"image/color"
	"strings"
)

// GradientUnits is the type for gradient units
type GradientUnits byte

// SVG bounds paremater constants
const (
	ObjectBoundingBox GradientUnits = iota
	UserSpaceOnUse
)

// SpreadMethod is the type for spread parameters
type SpreadMethod byte

// SVG spread parameter constants
const (
	PadSpread SpreadMethod = iota
	ReflectSpread
	RepeatSpread
)

// GradStop represents a stop in the SVG 2.0 gradient specification
type GradStop struct {
	StopColor color.Color
	Offset    float64
	Opacity   float64
}

// Gradient holds a description of an SVG 2.0 gradient
type Gradient struct {
	Direction gradientDirecter
	Stops     []GradStop
	Bounds    Bounds
	Matrix    Matrix2D
	Spread    SpreadMethod
	Units     GradientUnits
}

// radial or linear
type gradientDirecter interface {
	IsRadial() bool
}

// Linear is a linear gradient direction: x1, y1, x2, y2
type Linear [4]float64

func (Linear) IsRadial() bool { return false }

// Radial is a radial gradient direction: cx, cy, fx, fy, r, fr
type Radial [6]float64

func (Radial) IsRadial() bool { return true }

// readGradURL reads an SVG url attribute value and resolves it
// against the gradients seen so far. The `defaultColor` is
// used to resolve implicit stop colors.
func (c *svgCursor) readGradURL(v string, defaultColor Pattern) (grad Gradient, ok bool) {
	if strings.HasPrefix(v, "url(") && strings.HasSuffix(v, ")") {
		urlStr := strings.TrimSpace(v[4 : len(v)-1])
		if strings.HasPrefix(urlStr, "#") {
			var g *Gradient
			g, ok = c.doc.grads[urlStr[1:]]
			if ok {
				grad = *g
				// transparent stops take the paint color of the referencing shape
				for i, stop := range grad.Stops {
					if stop.StopColor == nil {
						if pc, isPlain := defaultColor.(PlainColor); isPlain {
							grad.Stops[i].StopColor = pc
						} else {
							grad.Stops[i].StopColor = color.NRGBA{A: 0xff}
						}
					}
				}
			}
		}
	}
	return
}

// readGradAttr reads the gradient attributes shared by
// linear and radial gradients.
func (c *svgCursor) readGradAttr(attr xml.Attr) (err error) {
	switch attr.Name.Local {
	case "gradientTransform":
		c.grad.Matrix, err = c.parseTransform(attr.Value)
	case "gradientUnits":
		switch strings.TrimSpace(attr.Value) {
		case "userSpaceOnUse":
			c.grad.Units = UserSpaceOnUse
		case "objectBoundingBox":
			c.grad.Units = ObjectBoundingBox
		}
	case "spreadMethod":
		switch strings.TrimSpace(attr.Value) {
		case "repeat":
			c.grad.Spread = RepeatSpread
		case "reflect":
			c.grad.Spread = ReflectSpread
		case "pad":
			c.grad.Spread = PadSpread
		}
	}
	return
}

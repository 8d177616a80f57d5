package svgscene

import (
	"golang.org/x/image/math/fixed"
)

// Given a resolved scene, implements how to draw it on screen.
// This requires a driver implementing the actual draw operations,
// such as a rasterizer producing in-memory bitmaps.

// Drawer knows how to do the actual draw operations
// but doesn't need any SVG kwowledge.
// In particular, tranformations matrix are already applied to the points
// before sending them to the Drawer.
type Drawer interface {
	// Clear must reset the internal state (used before starting a new path painting)
	Clear()

	// Start starts a new path at the given point.
	Start(a fixed.Point26_6)

	// Line Adds a line for the current point to `b`
	Line(b fixed.Point26_6)

	// QuadBezier adds a quadratic bezier curve to the path
	QuadBezier(b, c fixed.Point26_6)

	// CubeBezier adds a cubic bezier curve to the path
	CubeBezier(b, c, d fixed.Point26_6)

	// Closes the path to the start point if `closeLoop` is true
	Stop(closeLoop bool)

	// SetColor set the color for the current path
	SetColor(color Pattern, opacity float64)

	// Draw fills or strokes the accumulated path using the current settings
	// depending on the filling mode
	Draw()
}

type Filler interface {
	Drawer

	// Decide to use or not the NonZeroWinding rule for the current path
	SetWinding(useNonZeroWinding bool)
}

type Stroker interface {
	Drawer

	// Parametrize the stroking style for the current path
	SetStrokeOptions(options StrokeOptions)
}

type Driver interface {
	// SetupDrawers returns the backend painters, and
	// will be called at the begining of every path.
	// If the `willXXX` boolean is false, the returned drawer should be nil
	// to avoid useless operations.
	// When both booleans are true, one can assume that the exact same draw operations
	// will be performed on the Filler first and then on the Stroker.
	SetupDrawers(willFill, willStroke bool) (Filler, Stroker)
}

type DashOptions struct {
	Dash       []float64 // values for the dash pattern (nil or an empty slice for no dashes)
	DashOffset float64   // starting offset into the dash array
}

// JoinMode type to specify how segments join.
type JoinMode uint8

// JoinMode constants determine how stroke segments bridge the gap at a join
// ArcClip mode is like MiterClip applied to arcs, and is not part of the SVG2.0
// standard.
const (
	Arc JoinMode = iota // New in SVG2
	Round
	Bevel
	Miter
	MiterClip // New in SVG2
	ArcClip   // Like MiterClip applied to arcs, and is not part of the SVG2.0 standard.
)

func (s JoinMode) String() string {
	switch s {
	case Round:
		return "Round"
	case Bevel:
		return "Bevel"
	case Miter:
		return "Miter"
	case MiterClip:
		return "MiterClip"
	case Arc:
		return "Arc"
	case ArcClip:
		return "ArcClip"
	default:
		return "<unknown JoinMode>"
	}
}

// CapMode defines how to draw caps on the ends of lines
type CapMode uint8

const (
	NilCap CapMode = iota // default value
	ButtCap
	SquareCap
	RoundCap
	CubicCap     // Not part of the SVG2.0 standard.
	QuadraticCap // Not part of the SVG2.0 standard.
)

func (c CapMode) String() string {
	switch c {
	case NilCap:
		return "NilCap"
	case ButtCap:
		return "ButtCap"
	case SquareCap:
		return "SquareCap"
	case RoundCap:
		return "RoundCap"
	case CubicCap:
		return "CubicCap"
	case QuadraticCap:
		return "QuadraticCap"
	default:
		return "<unknown CapMode>"
	}
}

// GapMode defines how to bridge gaps when the miter limit is exceeded,
// and is not part of the SVG2.0 standard.
type GapMode uint8

const (
	NilGap GapMode = iota
	FlatGap
	RoundGap
	CubicGap
	QuadraticGap
)

func (g GapMode) String() string {
	switch g {
	case NilGap:
		return "NilGap"
	case FlatGap:
		return "FlatGap"
	case RoundGap:
		return "RoundGap"
	case CubicGap:
		return "CubicGap"
	case QuadraticGap:
		return "QuadraticGap"
	default:
		return "<unknown GapMode>"
	}
}

type JoinOptions struct {
	MiterLimit   fixed.Int26_6 // the miter cutoff value for miter, arc, miterclip and arcClip joinModes
	LineJoin     JoinMode      // JoinMode for curve segments
	TrailLineCap CapMode       // capping functions for leading and trailing line ends. If one is nil, the other function is used at both ends.

	LeadLineCap CapMode // not part of the standard specification
	LineGap     GapMode // not part of the standard specification. determines how a gap on the convex side of two lines joining is filled
}

type StrokeOptions struct {
	LineWidth fixed.Int26_6 // width of the line
	Join      JoinOptions
	Dash      DashOptions
}

// Resolved is a scene whose text spans have all been
// replaced by glyph outline paths: only path layers remain.
// See the svgtext package for the replacement itself.
type Resolved struct {
	ViewBox       Bounds
	Width, Height float64 // intrinsic size, in user units
	Layers        []Layer // path layers only
	Transform     Matrix2D
}

// SetScale sets the Transform matrix so that the view box is mapped
// to a viewport scaled by (scaleX, scaleY). The view box origin is
// translated to (0, 0) of the viewport.
func (s *Resolved) SetScale(scaleX, scaleY float64) {
	s.Transform = Identity.Translate(-s.ViewBox.X*scaleX, -s.ViewBox.Y*scaleY).Scale(scaleX, scaleY)
}

// Draw the resolved scene into the driver `d`.
// All elements should be contained by the Bounds rectangle of the scene.
func (s *Resolved) Draw(d Driver, opacity float64) {
	for _, layer := range s.Layers {
		layer.drawTransformed(d, opacity, s.Transform)
	}
}

// drawTransformed draws the layer into the driver while applying transform t.
func (layer *Layer) drawTransformed(d Driver, opacity float64, t Matrix2D) {
	m := layer.Style.transform
	layer.Style.transform = t.Mult(m)
	defer func() { layer.Style.transform = m }() // Restore untransformed matrix

	filler, stroker := d.SetupDrawers(layer.Style.FillerColor != nil, layer.Style.LinerColor != nil)
	if filler != nil { // nil color disable filling
		filler.Clear()
		filler.SetWinding(layer.Style.UseNonZeroWinding)

		for _, op := range layer.Path {
			op.drawTo(filler, layer.Style.transform)
		}
		filler.Stop(false)

		filler.SetColor(layer.Style.FillerColor, layer.Style.FillOpacity*opacity)
		filler.Draw()
		filler.SetWinding(true) // default is true
	}

	if stroker != nil { // nil color disable lining
		stroker.Clear()

		lineGap := layer.Style.Join.LineGap
		if lineGap == NilGap {
			lineGap = DefaultStyle.Join.LineGap
		}
		lineCap := layer.Style.Join.TrailLineCap
		if lineCap == NilCap {
			lineCap = DefaultStyle.Join.TrailLineCap
		}
		leadLineCap := lineCap
		if layer.Style.Join.LeadLineCap != NilCap {
			leadLineCap = layer.Style.Join.LeadLineCap
		}
		stroker.SetStrokeOptions(StrokeOptions{
			LineWidth: fixed.Int26_6(layer.Style.LineWidth * 64),
			Join: JoinOptions{
				MiterLimit:   layer.Style.Join.MiterLimit,
				LineJoin:     layer.Style.Join.LineJoin,
				LeadLineCap:  leadLineCap,
				TrailLineCap: lineCap,
				LineGap:      lineGap,
			},
			Dash: layer.Style.Dash,
		})

		for _, op := range layer.Path {
			op.drawTo(stroker, layer.Style.transform)
		}
		stroker.Stop(false)

		stroker.SetColor(layer.Style.LinerColor, layer.Style.LineOpacity*opacity)
		stroker.Draw()
	}
}

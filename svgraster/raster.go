// Implements a raster backend to render resolved scenes,
// by wrapping rasterx.
package svgraster

import (
	"fmt"
	"image"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

	"github.com/texrender/texrender/svgscene"
)

var _ svgscene.Driver = (*Renderer)(nil) // assert interface conformance

// maxOutputWidth bounds the raster width derived from extreme
// aspect ratios.
const maxOutputWidth = 1 << 16

// SizeError reports a scene whose geometry cannot be mapped to a
// positive pixel size.
type SizeError struct {
	Width, Height float64
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("invalid raster size %g x %g", e.Width, e.Height)
}

// Renderer implements the scene painting driver on top of rasterx.
// The filler and the dasher are separate instances to avoid
// shared state between the fill and stroke passes.
type Renderer struct {
	fill   fillDrawer
	stroke strokeDrawer
}

// NewRenderer returns a renderer with default values.
// In addition to rasterizing lines like a Scanner,
// it can also rasterize quadratic and cubic bezier curves.
func NewRenderer(width, height int, scanner rasterx.Scanner) *Renderer {
	return &Renderer{
		fill:   fillDrawer{f: rasterx.NewFiller(width, height, scanner)},
		stroke: strokeDrawer{d: rasterx.NewDasher(width, height, scanner)},
	}
}

// SetupDrawers implements svgscene.Driver.
func (rd *Renderer) SetupDrawers(willFill, willStroke bool) (svgscene.Filler, svgscene.Stroker) {
	var (
		f svgscene.Filler
		s svgscene.Stroker
	)
	if willFill {
		f = &rd.fill
	}
	if willStroke {
		s = &rd.stroke
	}
	return f, s
}

// Rasterize renders the resolved scene into a transparent image of
// the given height, the width following from the intrinsic aspect
// ratio. The scene transform is set to map the view box onto the
// pixel grid.
func Rasterize(scene *svgscene.Resolved, targetHeight int) (*image.RGBA, error) {
	w, h := scene.Width, scene.Height
	if !(w > 0) || !(h > 0) || math.IsInf(w, 0) || math.IsInf(h, 0) {
		return nil, &SizeError{Width: w, Height: h}
	}
	if !(scene.ViewBox.W > 0) || !(scene.ViewBox.H > 0) {
		return nil, &SizeError{Width: scene.ViewBox.W, Height: scene.ViewBox.H}
	}

	outH := targetHeight
	outW := int(math.Round(w * float64(targetHeight) / h))
	if outW <= 0 || outH <= 0 || outW > maxOutputWidth {
		return nil, &SizeError{Width: float64(outW), Height: float64(outH)}
	}

	img := image.NewRGBA(image.Rect(0, 0, outW, outH))
	scanner := rasterx.NewScannerGV(outW, outH, img, img.Bounds())
	renderer := NewRenderer(outW, outH, scanner)

	// the horizontal and vertical scales are derived independently
	// from the rounded pixel size
	scene.SetScale(float64(outW)/scene.ViewBox.W, float64(outH)/scene.ViewBox.H)
	scene.Draw(renderer, 1.0)
	return img, nil
}

type fillDrawer struct {
	f *rasterx.Filler
}

func (fd *fillDrawer) Clear()                { fd.f.Clear() }
func (fd *fillDrawer) Start(a fixed.Point26_6) { fd.f.Start(a) }
func (fd *fillDrawer) Line(b fixed.Point26_6)  { fd.f.Line(b) }
func (fd *fillDrawer) QuadBezier(b, c fixed.Point26_6) {
	fd.f.QuadBezier(b, c)
}
func (fd *fillDrawer) CubeBezier(b, c, d fixed.Point26_6) {
	fd.f.CubeBezier(b, c, d)
}
func (fd *fillDrawer) Stop(closeLoop bool) { fd.f.Stop(closeLoop) }
func (fd *fillDrawer) Draw()               { fd.f.Draw() }
func (fd *fillDrawer) SetWinding(useNonZeroWinding bool) {
	fd.f.SetWinding(useNonZeroWinding)
}
func (fd *fillDrawer) SetColor(color svgscene.Pattern, opacity float64) {
	setColorFromPattern(color, opacity, fd.f.Scanner)
}

type strokeDrawer struct {
	d *rasterx.Dasher
}

func (sd *strokeDrawer) Clear()                { sd.d.Clear() }
func (sd *strokeDrawer) Start(a fixed.Point26_6) { sd.d.Start(a) }
func (sd *strokeDrawer) Line(b fixed.Point26_6)  { sd.d.Line(b) }
func (sd *strokeDrawer) QuadBezier(b, c fixed.Point26_6) {
	sd.d.QuadBezier(b, c)
}
func (sd *strokeDrawer) CubeBezier(b, c, d fixed.Point26_6) {
	sd.d.CubeBezier(b, c, d)
}
func (sd *strokeDrawer) Stop(closeLoop bool) { sd.d.Stop(closeLoop) }
func (sd *strokeDrawer) Draw()               { sd.d.Draw() }
var (
	joinToJoin = [...]rasterx.JoinMode{
		svgscene.Round:     rasterx.Round,
		svgscene.Bevel:     rasterx.Bevel,
		svgscene.Miter:     rasterx.Miter,
		svgscene.MiterClip: rasterx.MiterClip,
		svgscene.Arc:       rasterx.Arc,
		svgscene.ArcClip:   rasterx.ArcClip,
	}

	capToFunc = [...]rasterx.CapFunc{
		svgscene.ButtCap:      rasterx.ButtCap,
		svgscene.SquareCap:    rasterx.SquareCap,
		svgscene.RoundCap:     rasterx.RoundCap,
		svgscene.CubicCap:     rasterx.CubicCap,
		svgscene.QuadraticCap: rasterx.QuadraticCap,
	}

	gapToFunc = [...]rasterx.GapFunc{
		svgscene.FlatGap:      rasterx.FlatGap,
		svgscene.RoundGap:     rasterx.RoundGap,
		svgscene.CubicGap:     rasterx.CubicGap,
		svgscene.QuadraticGap: rasterx.QuadraticGap,
	}
)

func (sd *strokeDrawer) SetStrokeOptions(options svgscene.StrokeOptions) {
	sd.d.SetStroke(
		options.LineWidth, options.Join.MiterLimit, capToFunc[options.Join.LeadLineCap],
		capToFunc[options.Join.TrailLineCap], gapToFunc[options.Join.LineGap],
		joinToJoin[options.Join.LineJoin], options.Dash.Dash, options.Dash.DashOffset,
	)
}
func (sd *strokeDrawer) SetColor(color svgscene.Pattern, opacity float64) {
	setColorFromPattern(color, opacity, sd.d.Scanner)
}

func toRasterxGradient(grad svgscene.Gradient) rasterx.Gradient {
	var (
		points   [5]float64
		isRadial bool
	)
	switch dir := grad.Direction.(type) {
	case svgscene.Linear:
		points[0], points[1], points[2], points[3] = dir[0], dir[1], dir[2], dir[3]
		isRadial = false
	case svgscene.Radial:
		points[0], points[1], points[2], points[3], points[4] = dir[0], dir[1], dir[2], dir[3], dir[4] // in rasterx fr is ignored
		isRadial = true
	}
	stops := make([]rasterx.GradStop, len(grad.Stops))
	for i := range grad.Stops {
		stops[i] = rasterx.GradStop(grad.Stops[i])
	}
	return rasterx.Gradient{
		Points:   points,
		Stops:    stops,
		Bounds:   grad.Bounds,
		Matrix:   rasterx.Matrix2D(grad.Matrix),
		Spread:   rasterx.SpreadMethod(grad.Spread),
		Units:    rasterx.GradientUnits(grad.Units),
		IsRadial: isRadial,
	}
}

// resolve gradient color
func setColorFromPattern(color svgscene.Pattern, opacity float64, scanner rasterx.Scanner) {
	switch fillerColor := color.(type) {
	case svgscene.PlainColor:
		scanner.SetColor(rasterx.ApplyOpacity(fillerColor, opacity))
	case svgscene.Gradient:
		if fillerColor.Units == svgscene.ObjectBoundingBox {
			fRect := scanner.GetPathExtent()
			mnx, mny := float64(fRect.Min.X)/64, float64(fRect.Min.Y)/64
			mxx, mxy := float64(fRect.Max.X)/64, float64(fRect.Max.Y)/64
			fillerColor.Bounds.X, fillerColor.Bounds.Y = mnx, mny
			fillerColor.Bounds.W, fillerColor.Bounds.H = mxx-mnx, mxy-mny
		}
		rasterxGradient := toRasterxGradient(fillerColor)
		scanner.SetColor(rasterxGradient.GetColorFunction(opacity))
	}
}

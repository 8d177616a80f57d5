package svgscene

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// Matrix2D represents an SVG style affine transformation,
// Y is the second row and therefore shows as the reverse of
// a common mathematical convention:
//
//	[ A C E ]
//	[ B D F ]
type Matrix2D struct {
	A, B, C, D, E, F float64
}

// Identity is the identity matrix
var Identity = Matrix2D{1, 0, 0, 1, 0, 0}

// Mult returns a*b
func (a Matrix2D) Mult(b Matrix2D) Matrix2D {
	return Matrix2D{
		A: a.A*b.A + a.C*b.B,
		B: a.B*b.A + a.D*b.B,
		C: a.A*b.C + a.C*b.D,
		D: a.B*b.C + a.D*b.D,
		E: a.A*b.E + a.C*b.F + a.E,
		F: a.B*b.E + a.D*b.F + a.F,
	}
}

// TransformVector applies the transformation to the point (x, y),
// ignoring the translation components.
func (a Matrix2D) TransformVector(x, y float64) (x1, y1 float64) {
	return a.A*x + a.C*y, a.B*x + a.D*y
}

// TransformPoint applies the transformation to the point (x, y).
func (a Matrix2D) TransformPoint(x, y float64) (x1, y1 float64) {
	return a.A*x + a.C*y + a.E, a.B*x + a.D*y + a.F
}

// Scale post-multiplies a scale transformation
func (a Matrix2D) Scale(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{A: x, D: y})
}

// Translate post-multiplies a translation
func (a Matrix2D) Translate(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{A: 1, D: 1, E: x, F: y})
}

// Rotate post-multiplies a rotation, angle in radians
func (a Matrix2D) Rotate(theta float64) Matrix2D {
	sin, cos := math.Sin(theta), math.Cos(theta)
	return a.Mult(Matrix2D{A: cos, B: sin, C: -sin, D: cos})
}

// SkewX post-multiplies a skew around the X axis, angle in radians
func (a Matrix2D) SkewX(theta float64) Matrix2D {
	return a.Mult(Matrix2D{A: 1, C: math.Tan(theta), D: 1})
}

// SkewY post-multiplies a skew around the Y axis, angle in radians
func (a Matrix2D) SkewY(theta float64) Matrix2D {
	return a.Mult(Matrix2D{A: 1, B: math.Tan(theta), D: 1})
}

func (a Matrix2D) trPoint(p fixed.Point26_6) fixed.Point26_6 {
	x, y := a.TransformPoint(float64(p.X)/64, float64(p.Y)/64)
	return fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
}

func (a Matrix2D) trMove(op MoveTo) fixed.Point26_6 {
	return a.trPoint(fixed.Point26_6(op))
}

func (a Matrix2D) trLine(op LineTo) fixed.Point26_6 {
	return a.trPoint(fixed.Point26_6(op))
}

func (a Matrix2D) trQuad(op QuadTo) (b, c fixed.Point26_6) {
	return a.trPoint(op[0]), a.trPoint(op[1])
}

func (a Matrix2D) trCubic(op CubicTo) (b, c, d fixed.Point26_6) {
	return a.trPoint(op[0]), a.trPoint(op[1]), a.trPoint(op[2])
}

// matrixAdder applies a matrix to the points fed to
// a path, used when reducing shapes to their path equivalent.
type matrixAdder struct {
	path *Path
	M    Matrix2D
}

// Start starts a new path
func (t *matrixAdder) Start(a fixed.Point26_6) {
	t.path.Start(t.M.trPoint(a))
}

// Line adds a linear segment to the current curve
func (t *matrixAdder) Line(b fixed.Point26_6) {
	t.path.Line(t.M.trPoint(b))
}

// QuadBezier adds a quadratic segment to the current curve
func (t *matrixAdder) QuadBezier(b, c fixed.Point26_6) {
	t.path.QuadBezier(t.M.trPoint(b), t.M.trPoint(c))
}

// CubeBezier adds a cubic segment to the current curve
func (t *matrixAdder) CubeBezier(b, c, d fixed.Point26_6) {
	t.path.CubeBezier(t.M.trPoint(b), t.M.trPoint(c), t.M.trPoint(d))
}

package svgscene

import (
	"math"
	"strconv"
	"unicode"

	"golang.org/x/image/math/fixed"
)

// pathCursor compiles the d attribute of path elements,
// tracking the current point and the last control point.
type pathCursor struct {
	path                   Path
	points                 []float64
	placeX, placeY         float64
	curX, curY             float64 // offset applied by use elements
	cntlPtX, cntlPtY       float64
	pathStartX, pathStartY float64
	lastKey                uint8
	errorMode              ErrorMode
	inPath                 bool
}

// getPoints reads a set of floating point values from the SVG format number string,
// and add them to the cursor's points slice.
func (c *pathCursor) getPoints(dataPoints string) error {
	lastIndex := -1
	c.points = c.points[:0]
	lr := ' '
	for i, r := range dataPoints {
		if !unicode.IsNumber(r) && r != '.' && !(r == '-' && lr == 'e') && r != 'e' && r != 'E' {
			if lastIndex != -1 {
				value, err := strconv.ParseFloat(dataPoints[lastIndex:i], 64)
				if err != nil {
					return err
				}
				c.points = append(c.points, value)
			}
			if r == '-' {
				lastIndex = i
			} else {
				lastIndex = -1
			}
		} else if lastIndex == -1 {
			lastIndex = i
		}
		lr = r
	}
	if lastIndex != -1 && lastIndex != len(dataPoints) {
		value, err := strconv.ParseFloat(dataPoints[lastIndex:], 64)
		if err != nil {
			return err
		}
		c.points = append(c.points, value)
	}
	return nil
}

// valsToAbs converts relative values to absolute values
func (c *pathCursor) valsToAbs(last float64) {
	for i := 0; i < len(c.points); i++ {
		last += c.points[i]
		c.points[i] = last
	}
}

// pointsToAbs converts relative points to absolute points
func (c *pathCursor) pointsToAbs(sz int) {
	lastX := c.placeX
	lastY := c.placeY
	for j := 0; j < len(c.points); j += sz {
		for i := 0; i < sz; i += 2 {
			c.points[i+j] += lastX
			c.points[i+1+j] += lastY
		}
		lastX = c.points[(j+sz)-2]
		lastY = c.points[(j+sz)-1]
	}
}

// hasSetsOrPoints returns an error if the cursor's points slice does not hold
// a non-zero multiple of sz values
func (c *pathCursor) hasSetsOrPoints(sz int) error {
	if len(c.points)%sz != 0 || len(c.points) == 0 {
		return errParamMismatch
	}
	return nil
}

func (c *pathCursor) reflectControlQuad() (px, py float64) {
	switch c.lastKey {
	case 'q', 'Q', 'T', 't':
		px = 2*c.placeX - c.cntlPtX
		py = 2*c.placeY - c.cntlPtY
	default:
		px, py = c.placeX, c.placeY
	}
	return
}

func (c *pathCursor) reflectControlCube() (px, py float64) {
	switch c.lastKey {
	case 'c', 'C', 's', 'S':
		px = 2*c.placeX - c.cntlPtX
		py = 2*c.placeY - c.cntlPtY
	default:
		px, py = c.placeX, c.placeY
	}
	return
}

// fixedFromPlace converts a user-space point to fixed, applying
// the current use offset.
func (c *pathCursor) fixedFromPlace(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{
		X: fixed.Int26_6((x + c.curX) * 64),
		Y: fixed.Int26_6((y + c.curY) * 64),
	}
}

// addSeg decodes an SVG segment and appends it to the path
func (c *pathCursor) addSeg(segString string) error {
	// Parse the string describing the numeric points in SVG format
	if err := c.getPoints(segString[1:]); err != nil {
		return err
	}
	l := len(c.points)
	k := segString[0]
	rel := false
	switch k {
	case 'z', 'Z':
		if l != 0 {
			return errParamMismatch
		}
		if c.inPath {
			c.path.Stop(true)
			c.placeX = c.pathStartX
			c.placeY = c.pathStartY
			c.inPath = false
		}
	case 'm':
		c.pointsToAbs(2)
		fallthrough
	case 'M':
		if err := c.hasSetsOrPoints(2); err != nil {
			return err
		}
		c.pathStartX, c.pathStartY = c.points[0], c.points[1]
		c.inPath = true
		c.path.Start(c.fixedFromPlace(c.pathStartX, c.pathStartY))
		for i := 2; i < l-1; i += 2 {
			c.path.Line(c.fixedFromPlace(c.points[i], c.points[i+1]))
		}
		c.placeX = c.points[l-2]
		c.placeY = c.points[l-1]
	case 'l':
		c.pointsToAbs(2)
		fallthrough
	case 'L':
		if err := c.hasSetsOrPoints(2); err != nil {
			return err
		}
		for i := 0; i < l-1; i += 2 {
			c.path.Line(c.fixedFromPlace(c.points[i], c.points[i+1]))
		}
		c.placeX = c.points[l-2]
		c.placeY = c.points[l-1]
	case 'v':
		c.valsToAbs(c.placeY)
		fallthrough
	case 'V':
		if err := c.hasSetsOrPoints(1); err != nil {
			return err
		}
		for _, p := range c.points {
			c.path.Line(c.fixedFromPlace(c.placeX, p))
		}
		c.placeY = c.points[l-1]
	case 'h':
		c.valsToAbs(c.placeX)
		fallthrough
	case 'H':
		if err := c.hasSetsOrPoints(1); err != nil {
			return err
		}
		for _, p := range c.points {
			c.path.Line(c.fixedFromPlace(p, c.placeY))
		}
		c.placeX = c.points[l-1]
	case 'q':
		c.pointsToAbs(4)
		fallthrough
	case 'Q':
		if err := c.hasSetsOrPoints(4); err != nil {
			return err
		}
		for i := 0; i < l-3; i += 4 {
			c.path.QuadBezier(
				c.fixedFromPlace(c.points[i], c.points[i+1]),
				c.fixedFromPlace(c.points[i+2], c.points[i+3]))
			c.cntlPtX, c.cntlPtY = c.points[i], c.points[i+1]
			c.placeX = c.points[i+2]
			c.placeY = c.points[i+3]
		}
	case 't':
		rel = true
		fallthrough
	case 'T':
		if err := c.hasSetsOrPoints(2); err != nil {
			return err
		}
		for i := 0; i < l-1; i += 2 {
			px, py := c.reflectControlQuad()
			if rel {
				c.points[i] += c.placeX
				c.points[i+1] += c.placeY
			}
			c.path.QuadBezier(
				c.fixedFromPlace(px, py),
				c.fixedFromPlace(c.points[i], c.points[i+1]))
			c.lastKey = k
			c.placeX = c.points[i]
			c.placeY = c.points[i+1]
			c.cntlPtX, c.cntlPtY = px, py
		}
	case 'c':
		c.pointsToAbs(6)
		fallthrough
	case 'C':
		if err := c.hasSetsOrPoints(6); err != nil {
			return err
		}
		for i := 0; i < l-5; i += 6 {
			c.path.CubeBezier(
				c.fixedFromPlace(c.points[i], c.points[i+1]),
				c.fixedFromPlace(c.points[i+2], c.points[i+3]),
				c.fixedFromPlace(c.points[i+4], c.points[i+5]))
			c.cntlPtX, c.cntlPtY = c.points[i+2], c.points[i+3]
			c.placeX = c.points[i+4]
			c.placeY = c.points[i+5]
		}
	case 's':
		rel = true
		fallthrough
	case 'S':
		if err := c.hasSetsOrPoints(4); err != nil {
			return err
		}
		for i := 0; i < l-3; i += 4 {
			px, py := c.reflectControlCube()
			if rel {
				c.points[i] += c.placeX
				c.points[i+1] += c.placeY
				c.points[i+2] += c.placeX
				c.points[i+3] += c.placeY
			}
			c.path.CubeBezier(
				c.fixedFromPlace(px, py),
				c.fixedFromPlace(c.points[i], c.points[i+1]),
				c.fixedFromPlace(c.points[i+2], c.points[i+3]))
			c.lastKey = k
			c.cntlPtX, c.cntlPtY = c.points[i], c.points[i+1]
			c.placeX = c.points[i+2]
			c.placeY = c.points[i+3]
		}
	case 'a', 'A':
		if err := c.hasSetsOrPoints(7); err != nil {
			return err
		}
		for i := 0; i < l-6; i += 7 {
			if k == 'a' {
				c.points[i+5] += c.placeX
				c.points[i+6] += c.placeY
			}
			c.addSegArc(c.points[i : i+7])
		}
	default:
		return errParamMismatch
	}
	c.lastKey = k
	return nil
}

// addSegArc appends an elliptical arc starting at the current point;
// points holds rx, ry, x-rotation, large-arc, sweep, x, y.
func (c *pathCursor) addSegArc(points []float64) {
	cx, cy := findEllipseCenter(&points[0], &points[1], points[2]*math.Pi/180,
		c.placeX, c.placeY, points[5], points[6], points[4] == 0, points[3] == 0)
	c.placeX, c.placeY = c.path.addArc(points, cx, cy, c.placeX, c.placeY)
}

// compilePath translates the svgPath description string into the cursor's path
func (c *pathCursor) compilePath(svgPath string) error {
	lastIndex := -1
	c.inPath = false
	for i, v := range svgPath {
		if unicode.IsLetter(v) && v != 'e' && v != 'E' {
			if lastIndex != -1 {
				if err := c.addSeg(svgPath[lastIndex:i]); err != nil {
					return err
				}
			}
			lastIndex = i
		}
	}
	if lastIndex != -1 {
		if err := c.addSeg(svgPath[lastIndex:]); err != nil {
			return err
		}
	}
	return nil
}

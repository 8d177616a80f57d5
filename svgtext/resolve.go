// Package svgtext resolves the text spans of a parsed scene into
// glyph outline paths, using HarfBuzz shaping and the fonts of a
// registry. After resolution a scene only holds path layers and can
// be handed to any painting driver.
package svgtext

import (
	"unicode"

	"github.com/go-text/typesetting/di"
	gtfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/texrender/texrender/fontreg"
	"github.com/texrender/texrender/svgscene"
)

// Resolve replaces every text span of doc with glyph outline layers,
// preserving the drawing order of the document. Resolution never
// fails: spans whose requested family is not installed use the
// registry fallback, and glyphs without outlines, such as spaces,
// only advance the pen.
func Resolve(doc *svgscene.Document, reg *fontreg.Registry) *svgscene.Resolved {
	res := &svgscene.Resolved{
		ViewBox:   doc.ViewBox,
		Width:     doc.Width,
		Height:    doc.Height,
		Transform: svgscene.Identity,
	}
	var (
		shaper shaping.HarfbuzzShaper
		buf    sfnt.Buffer
	)
	for _, layer := range doc.Layers {
		if layer.Text == nil {
			res.Layers = append(res.Layers, layer)
			continue
		}
		if p := layoutSpan(layer.Text, reg, &shaper, &buf); len(p) > 0 {
			res.Layers = append(res.Layers, svgscene.Layer{Path: p, Style: layer.Style})
		}
	}
	return res
}

func layoutSpan(span *svgscene.TextSpan, reg *fontreg.Registry, shaper *shaping.HarfbuzzShaper, buf *sfnt.Buffer) svgscene.Path {
	runes := []rune(span.Text)
	if len(runes) == 0 {
		return nil
	}
	size := span.Size
	if size <= 0 {
		size = 16
	}

	face := reg.Face(span.Family)
	glyphs := shape(face, runes, size, shaper)
	if missesGlyphs(glyphs, runes) && face != reg.Fallback() {
		face = reg.Fallback()
		glyphs = shape(face, runes, size, shaper)
	}
	if glyphs == nil {
		return nil
	}

	var path svgscene.Path
	penX := span.X
	for _, g := range glyphs {
		x := penX + fromFixed(g.XOffset)
		// shaping offsets are y-up, the scene is y-down
		y := span.Y - fromFixed(g.YOffset)
		appendGlyphOutline(&path, face.SFNT(), buf, uint16(g.GlyphID), size, x, y)
		penX += fromFixed(g.Advance)
	}
	return path
}

// shape runs the whole span as a single left-to-right run.
func shape(face *fontreg.Face, runes []rune, size float64, shaper *shaping.HarfbuzzShaper) []shaping.Glyph {
	shaped, err := face.Shaping()
	if err != nil {
		return nil
	}
	out := shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      gtfont.NewFace(shaped),
		Size:      fixed.Int26_6(size * 64),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	})
	return out.Glyphs
}

// missesGlyphs reports whether shaping mapped a visible rune to the
// missing glyph.
func missesGlyphs(glyphs []shaping.Glyph, runes []rune) bool {
	if glyphs == nil {
		return true
	}
	for _, g := range glyphs {
		if g.GlyphID != 0 {
			continue
		}
		idx := g.TextIndex()
		if idx >= 0 && idx < len(runes) && !unicode.IsSpace(runes[idx]) {
			return true
		}
	}
	return false
}

// detectScript returns the script of the first visible rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if unicode.IsSpace(r) {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

// appendGlyphOutline loads the glyph outline at the given pixel size
// and appends it to the path, translated to the pen position. The
// sfnt segments are baseline-relative and y-down, matching the scene
// coordinates.
func appendGlyphOutline(p *svgscene.Path, f *sfnt.Font, buf *sfnt.Buffer, gid uint16, size, dx, dy float64) {
	segments, err := f.LoadGlyph(buf, sfnt.GlyphIndex(gid), fixed.Int26_6(size*64), nil)
	if err != nil || len(segments) == 0 {
		return
	}
	ox := fixed.Int26_6(dx * 64)
	oy := fixed.Int26_6(dy * 64)
	at := func(pt fixed.Point26_6) fixed.Point26_6 {
		return fixed.Point26_6{X: pt.X + ox, Y: pt.Y + oy}
	}
	inContour := false
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if inContour {
				p.Stop(true)
			}
			p.Start(at(seg.Args[0]))
			inContour = true
		case sfnt.SegmentOpLineTo:
			p.Line(at(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			p.QuadBezier(at(seg.Args[0]), at(seg.Args[1]))
		case sfnt.SegmentOpCubeTo:
			p.CubeBezier(at(seg.Args[0]), at(seg.Args[1]), at(seg.Args[2]))
		}
	}
	if inContour {
		p.Stop(true)
	}
}

func fromFixed(v fixed.Int26_6) float64 { return float64(v) / 64 }

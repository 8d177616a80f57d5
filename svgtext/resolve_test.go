package svgtext

import (
	"strings"
	"testing"

	"github.com/texrender/texrender/fontreg"
	"github.com/texrender/texrender/svgscene"
)

func parseDoc(t *testing.T, data string) *svgscene.Document {
	t.Helper()
	doc, err := svgscene.ReadDocumentStream(strings.NewReader(data), svgscene.StrictErrorMode)
	if err != nil {
		t.Fatalf("can't parse document: %s", err)
	}
	return doc
}

func testRegistry() *fontreg.Registry {
	return fontreg.New(nil, "goregular")
}

func TestResolveTextToOutlines(t *testing.T) {
	doc := parseDoc(t, `<svg viewBox="0 0 200 50">
	 <rect x="0" y="0" width="10" height="10"/>
	 <text x="10" y="40" font-size="20">x+1</text>
	</svg>`)
	res := Resolve(doc, testRegistry())

	if res.ViewBox != doc.ViewBox {
		t.Errorf("view box not preserved: %+v", res.ViewBox)
	}
	if res.Width != doc.Width || res.Height != doc.Height {
		t.Errorf("intrinsic size not preserved: %g x %g", res.Width, res.Height)
	}
	if len(res.Layers) != 2 {
		t.Fatalf("expected 2 layers, got %d", len(res.Layers))
	}
	for _, layer := range res.Layers {
		if layer.Text != nil {
			t.Fatal("text span left unresolved")
		}
		if len(layer.Path) == 0 {
			t.Fatal("empty path layer")
		}
	}
	// the glyph layer keeps the drawing order after the rectangle
	glyphs := res.Layers[1].Path
	if _, ok := glyphs[0].(svgscene.MoveTo); !ok {
		t.Errorf("glyph outlines should start with a move: %s", glyphs)
	}
	// three visible glyphs, at least one contour each
	nContours := 0
	for _, op := range glyphs {
		if _, ok := op.(svgscene.MoveTo); ok {
			nContours++
		}
	}
	if nContours < 3 {
		t.Errorf("expected at least 3 contours for %q, got %d", "x+1", nContours)
	}
}

func TestResolveUnknownFamily(t *testing.T) {
	doc := parseDoc(t, `<svg viewBox="0 0 200 50">
	 <text x="0" y="40" font-family="No Such Font 123">abc</text>
	</svg>`)
	res := Resolve(doc, testRegistry())
	if len(res.Layers) != 1 || len(res.Layers[0].Path) == 0 {
		t.Fatal("unknown family must fall back, not drop the span")
	}
}

func TestResolveWhitespaceOnly(t *testing.T) {
	doc := parseDoc(t, `<svg viewBox="0 0 200 50">
	 <text x="0" y="40"> </text>
	</svg>`)
	res := Resolve(doc, testRegistry())
	for _, layer := range res.Layers {
		if layer.Text != nil {
			t.Fatal("text span left unresolved")
		}
	}
}

func TestResolvePositionsAdvance(t *testing.T) {
	reg := testRegistry()
	one := parseDoc(t, `<svg viewBox="0 0 200 50"><text x="0" y="40">i</text></svg>`)
	two := parseDoc(t, `<svg viewBox="0 0 200 50"><text x="0" y="40">ii</text></svg>`)
	p1 := Resolve(one, reg).Layers[0].Path
	p2 := Resolve(two, reg).Layers[0].Path
	if len(p2) <= len(p1) {
		t.Fatalf("second glyph missing: %d vs %d operations", len(p2), len(p1))
	}
	// the pen advances: the repeated glyph is shifted right
	first := p1[0].(svgscene.MoveTo)
	second := p2[len(p1)].(svgscene.MoveTo)
	if second.X <= first.X {
		t.Errorf("expected the second glyph to start right of the first: %v vs %v", second, first)
	}
}

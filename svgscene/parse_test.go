package svgscene

import (
	"errors"
	"strings"
	"testing"
)

const mathDoc = `<svg xmlns="http://www.w3.org/2000/svg" width="4ex" height="2ex" viewBox="0 -800 3200 1600">
 <defs>
  <path id="g1" d="M100 0 L200 0 L200 100 Z"></path>
 </defs>
 <g fill="currentColor" transform="matrix(1 0 0 -1 0 0)">
  <use href="#g1"></use>
  <use href="#g1" x="250"></use>
 </g>
</svg>`

func TestReadMathDocument(t *testing.T) {
	doc, err := ReadDocumentStream(strings.NewReader(mathDoc), StrictErrorMode)
	if err != nil {
		t.Fatalf("can't parse document: %s", err)
	}
	vb := doc.ViewBox
	if vb.X != 0 || vb.Y != -800 || vb.W != 3200 || vb.H != 1600 {
		t.Errorf("unexpected view box %+v", vb)
	}
	// 1ex resolves to 8 user units
	if doc.Width != 32 || doc.Height != 16 {
		t.Errorf("unexpected intrinsic size %g x %g", doc.Width, doc.Height)
	}
	if len(doc.Layers) != 2 {
		t.Fatalf("expected 2 layers from use elements, got %d", len(doc.Layers))
	}
	for _, layer := range doc.Layers {
		if len(layer.Path) == 0 {
			t.Fatal("empty path layer")
		}
		if _, ok := layer.Path[0].(MoveTo); !ok {
			t.Errorf("layer does not start with a move: %s", layer.Path)
		}
		if layer.Style.FillerColor == nil {
			t.Error("fill disabled on referenced path")
		}
		m := layer.Style.transform
		if m.D != -1 {
			t.Errorf("group transform not inherited: %+v", m)
		}
	}
	// the second use is offset by x=250
	first := doc.Layers[0].Path[0].(MoveTo)
	second := doc.Layers[1].Path[0].(MoveTo)
	if second.X-first.X != 250*64 {
		t.Errorf("use offset not applied: %v vs %v", first, second)
	}
}

func TestReadTextSpan(t *testing.T) {
	const data = `<svg viewBox="0 0 100 50">
	 <text x="10" y="30" font-family="STIX Two Math, serif" font-size="20">x+1</text>
	</svg>`
	doc, err := ReadDocumentStream(strings.NewReader(data), StrictErrorMode)
	if err != nil {
		t.Fatalf("can't parse document: %s", err)
	}
	if !doc.HasText() {
		t.Fatal("text span not captured")
	}
	if len(doc.Layers) != 1 {
		t.Fatalf("expected 1 layer, got %d", len(doc.Layers))
	}
	span := doc.Layers[0].Text
	if span == nil {
		t.Fatal("expected a text layer")
	}
	if span.X != 10 || span.Y != 30 {
		t.Errorf("unexpected anchor (%g, %g)", span.X, span.Y)
	}
	if span.Family != "STIX Two Math" {
		t.Errorf("unexpected family %q", span.Family)
	}
	if span.Size != 20 {
		t.Errorf("unexpected size %g", span.Size)
	}
	if span.Text != "x+1" {
		t.Errorf("unexpected content %q", span.Text)
	}
}

func TestReadMalformed(t *testing.T) {
	for _, data := range []string{
		"",
		"not xml at all",
		"<svg><path d=",
		`<svg viewBox="0 0 10 10"><path d="M0 0 L5"/></svg>`,
	} {
		_, err := ReadDocumentStream(strings.NewReader(data), StrictErrorMode)
		if err == nil {
			t.Fatalf("expected error on %q", data)
		}
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("expected a ParseError on %q, got %T", data, err)
		}
	}
}

func TestCompilePathCommands(t *testing.T) {
	const data = `<svg viewBox="0 0 100 100">
	 <path d="M10 10 h80 v80 h-80 Z"/>
	 <path d="M10,10 C 20 20, 40 20, 50 10 S 80 0, 90 10"/>
	 <path d="M10 80 Q 52.5 10, 95 80 T 180 80"/>
	 <path d="M10 50 A 30 30 0 0 1 70 50"/>
	</svg>`
	doc, err := ReadDocumentStream(strings.NewReader(data), StrictErrorMode)
	if err != nil {
		t.Fatalf("can't parse document: %s", err)
	}
	if len(doc.Layers) != 4 {
		t.Fatalf("expected 4 path layers, got %d", len(doc.Layers))
	}

	rect := doc.Layers[0].Path
	if _, ok := rect[len(rect)-1].(Close); !ok {
		t.Errorf("z command not compiled: %s", rect)
	}
	if len(rect) != 5 { // move, 3 lines, close
		t.Errorf("unexpected rectangle path: %s", rect)
	}

	cubes := doc.Layers[1].Path
	nCubic := 0
	for _, op := range cubes {
		if _, ok := op.(CubicTo); ok {
			nCubic++
		}
	}
	if nCubic != 2 {
		t.Errorf("expected 2 cubic segments, got %d in %s", nCubic, cubes)
	}

	quads := doc.Layers[2].Path
	nQuad := 0
	for _, op := range quads {
		if _, ok := op.(QuadTo); ok {
			nQuad++
		}
	}
	if nQuad != 2 {
		t.Errorf("expected 2 quadratic segments, got %d in %s", nQuad, quads)
	}

	arc := doc.Layers[3].Path
	if len(arc) < 2 {
		t.Errorf("arc not approximated: %s", arc)
	}
	for _, op := range arc[1:] {
		if _, ok := op.(CubicTo); !ok {
			t.Errorf("expected cubic approximation, got %T", op)
		}
	}
}

func TestParseBasicFloat(t *testing.T) {
	for _, test := range []struct {
		input string
		want  float64
	}{
		{"10", 10},
		{"10px", 10},
		{"-1.5", -1.5},
		{"12pt", 16},
		{"1in", 96},
		{"2ex", 16},
		{"2.5em", 40},
		{"2.54cm", 96},
	} {
		got, err := parseBasicFloat(test.input)
		if err != nil {
			t.Fatalf("parse %q: %s", test.input, err)
		}
		if got != test.want {
			t.Errorf("parse %q: expected %g, got %g", test.input, test.want, got)
		}
	}
	if _, err := parseBasicFloat("abc"); err == nil {
		t.Error("expected error on invalid number")
	}
}

func TestParseColors(t *testing.T) {
	for _, test := range []struct {
		input string
		want  PlainColor
	}{
		{"#fff", NewPlainColor(0xff, 0xff, 0xff, 0xff)},
		{"#102030", NewPlainColor(0x10, 0x20, 0x30, 0xff)},
		{"rgb(1, 2, 3)", NewPlainColor(1, 2, 3, 0xff)},
		{"rgba(0, 0, 0, 0.5)", NewPlainColor(0, 0, 0, 128)},
		{"rgb(100%, 0%, 0%)", NewPlainColor(0xff, 0, 0, 0xff)},
		{"red", NewPlainColor(0xff, 0, 0, 0xff)},
		{"currentColor", NewPlainColor(0, 0, 0, 0xff)},
	} {
		got, err := parseSVGColor(test.input)
		if err != nil {
			t.Fatalf("parse %q: %s", test.input, err)
		}
		if !got.valid || got.color != test.want {
			t.Errorf("parse %q: expected %v, got %v", test.input, test.want, got.color)
		}
	}
	none, err := parseSVGColor("none")
	if err != nil || none.asPattern() != nil {
		t.Errorf("none should disable painting, got %v (%s)", none, err)
	}
}

func TestGradientFill(t *testing.T) {
	const data = `<svg viewBox="0 0 100 100">
	 <defs>
	  <linearGradient id="grad" x1="0" y1="0" x2="1" y2="0">
	   <stop offset="0%" stop-color="black"/>
	   <stop offset="100%" stop-color="white"/>
	  </linearGradient>
	 </defs>
	 <rect x="0" y="0" width="100" height="50" fill="url(#grad)"/>
	</svg>`
	doc, err := ReadDocumentStream(strings.NewReader(data), StrictErrorMode)
	if err != nil {
		t.Fatalf("can't parse document: %s", err)
	}
	if len(doc.Layers) != 1 {
		t.Fatalf("expected 1 layer, got %d", len(doc.Layers))
	}
	grad, ok := doc.Layers[0].Style.FillerColor.(Gradient)
	if !ok {
		t.Fatalf("expected a gradient fill, got %T", doc.Layers[0].Style.FillerColor)
	}
	if len(grad.Stops) != 2 {
		t.Errorf("expected 2 stops, got %d", len(grad.Stops))
	}
	if grad.Direction.IsRadial() {
		t.Error("expected a linear gradient")
	}
}

func TestSetScale(t *testing.T) {
	s := Resolved{ViewBox: Bounds{X: 0, Y: -800, W: 3200, H: 1600}}
	s.SetScale(0.0625, 0.0625) // maps to 200 x 100
	x, y := s.Transform.TransformPoint(0, -800)
	if x != 0 || y != 0 {
		t.Errorf("view box origin should map to (0, 0), got (%g, %g)", x, y)
	}
	x, y = s.Transform.TransformPoint(3200, 800)
	if x != 200 || y != 100 {
		t.Errorf("view box corner should map to (200, 100), got (%g, %g)", x, y)
	}
}

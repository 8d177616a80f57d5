package svgraster

import (
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/texrender/texrender/fontreg"
	"github.com/texrender/texrender/svgscene"
	"github.com/texrender/texrender/svgtext"
)

func resolveDoc(t *testing.T, data string) *svgscene.Resolved {
	t.Helper()
	doc, err := svgscene.ReadDocumentStream(strings.NewReader(data), svgscene.StrictErrorMode)
	if err != nil {
		t.Fatalf("can't parse document: %s", err)
	}
	return svgtext.Resolve(doc, fontreg.New(nil, "goregular"))
}

func TestRasterizeScalesToHeight(t *testing.T) {
	scene := resolveDoc(t, `<svg width="40" height="20" viewBox="0 0 40 20">
	 <rect x="0" y="0" width="40" height="20" fill="black"/>
	</svg>`)
	img, err := Rasterize(scene, 100)
	if err != nil {
		t.Fatalf("can't raster scene: %s", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 100 {
		t.Fatalf("expected 200 x 100, got %d x %d", b.Dx(), b.Dy())
	}
	// the rectangle covers the whole image
	for _, p := range []image.Point{{1, 1}, {198, 1}, {100, 50}, {198, 98}} {
		_, _, _, a := img.At(p.X, p.Y).RGBA()
		if a == 0 {
			t.Errorf("pixel %v not painted", p)
		}
	}
}

func TestRasterizeNegativeOrigin(t *testing.T) {
	// math output places the baseline at y=0, with a negative min-y
	scene := resolveDoc(t, `<svg width="32" height="16" viewBox="0 -800 3200 1600">
	 <rect x="0" y="-800" width="3200" height="1600" fill="black"/>
	</svg>`)
	img, err := Rasterize(scene, 100)
	if err != nil {
		t.Fatalf("can't raster scene: %s", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 100 {
		t.Fatalf("expected 200 x 100, got %d x %d", b.Dx(), b.Dy())
	}
	_, _, _, a := img.At(100, 50).RGBA()
	if a == 0 {
		t.Error("center pixel not painted: view box origin mishandled")
	}
}

func TestRasterizeTransparentBackground(t *testing.T) {
	scene := resolveDoc(t, `<svg width="40" height="20" viewBox="0 0 40 20">
	 <rect x="15" y="5" width="10" height="10" fill="black"/>
	</svg>`)
	img, err := Rasterize(scene, 100)
	if err != nil {
		t.Fatalf("can't raster scene: %s", err)
	}
	for _, p := range []image.Point{{0, 0}, {199, 0}, {0, 99}, {199, 99}} {
		_, _, _, a := img.At(p.X, p.Y).RGBA()
		if a != 0 {
			t.Errorf("corner %v should stay transparent", p)
		}
	}
	_, _, _, a := img.At(100, 50).RGBA()
	if a == 0 {
		t.Error("rectangle not painted")
	}
}

func TestRasterizeDegenerate(t *testing.T) {
	for _, data := range []string{
		`<svg width="0" height="0" viewBox="0 0 0 0"></svg>`,
		`<svg width="40" height="0" viewBox="0 0 40 0"></svg>`,
		`<svg></svg>`,
	} {
		scene := resolveDoc(t, data)
		_, err := Rasterize(scene, 100)
		if err == nil {
			t.Fatalf("expected error on %q", data)
		}
		var sizeErr *SizeError
		if !errors.As(err, &sizeErr) {
			t.Fatalf("expected a SizeError, got %T", err)
		}
	}
}

func TestRasterizeRespectsOpacity(t *testing.T) {
	scene := resolveDoc(t, `<svg width="40" height="20" viewBox="0 0 40 20">
	 <rect x="0" y="0" width="40" height="20" fill="black" fill-opacity="0.5"/>
	</svg>`)
	img, err := Rasterize(scene, 100)
	if err != nil {
		t.Fatalf("can't raster scene: %s", err)
	}
	_, _, _, a := img.At(100, 50).RGBA()
	if a == 0 || a == 0xffff {
		t.Errorf("expected a semi-transparent pixel, got alpha %d", a)
	}
}

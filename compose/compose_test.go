package compose

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/texrender/texrender/svgraster"
)

func TestPadDimensions(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 200, 100))
	out, err := Pad(img, 20)
	if err != nil {
		t.Fatalf("can't pad image: %s", err)
	}
	if b := out.Bounds(); b.Dx() != 240 || b.Dy() != 140 {
		t.Fatalf("expected 240 x 140, got %d x %d", b.Dx(), b.Dy())
	}
}

func TestPadWhiteBorder(t *testing.T) {
	// fully transparent content: the whole output must be white
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	out, err := Pad(img, 5)
	if err != nil {
		t.Fatalf("can't pad image: %s", err)
	}
	for _, p := range []image.Point{{0, 0}, {19, 0}, {10, 10}, {19, 19}} {
		r, g, b, a := out.At(p.X, p.Y).RGBA()
		if r != 0xffff || g != 0xffff || b != 0xffff || a != 0xffff {
			t.Errorf("pixel %v should be opaque white, got %v", p, out.At(p.X, p.Y))
		}
	}
}

func TestPadBlendsOverWhite(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for x := 0; x < 2; x++ {
		for y := 0; y < 2; y++ {
			img.SetNRGBA(x, y, color.NRGBA{A: 128}) // half-transparent black
		}
	}
	out, err := Pad(img, 1)
	if err != nil {
		t.Fatalf("can't pad image: %s", err)
	}
	r, _, _, a := out.At(1, 1).RGBA()
	if a != 0xffff {
		t.Fatalf("output must be opaque, got alpha %d", a)
	}
	// half-transparent black over white lands mid-gray
	if r < 0x6000 || r > 0x9fff {
		t.Errorf("expected a gray blend, got red channel %d", r)
	}
}

func TestPadDegenerate(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 0, 0))
	_, err := Pad(img, 20)
	if err == nil {
		t.Fatal("expected an error on an empty image")
	}
	var sizeErr *svgraster.SizeError
	if !errors.As(err, &sizeErr) {
		t.Fatalf("expected a SizeError, got %T", err)
	}
}

func TestEncodePNGDeterministic(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	img.Set(3, 3, color.NRGBA{R: 0x80, A: 0xff})

	var first, second bytes.Buffer
	if err := EncodePNG(&first, img); err != nil {
		t.Fatalf("can't encode: %s", err)
	}
	if err := EncodePNG(&second, img); err != nil {
		t.Fatalf("can't encode: %s", err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("identical images should encode to identical bytes")
	}

	decoded, err := png.Decode(&first)
	if err != nil {
		t.Fatalf("can't decode output: %s", err)
	}
	if b := decoded.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Errorf("unexpected decoded size %v", b)
	}
}

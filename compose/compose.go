// Package compose flattens a rasterized math image onto an opaque
// white canvas with uniform padding, and encodes the result to PNG.
package compose

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/disintegration/imaging"

	"github.com/texrender/texrender/svgraster"
)

// EncodeError reports a PNG encoding failure, unexpected for
// in-memory images but surfaced for completeness.
type EncodeError struct {
	cause error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("png encoding failed: %s", e.cause)
}

func (e *EncodeError) Unwrap() error { return e.cause }

// Pad draws img onto a white background extended by padding pixels
// on each side. Transparent and semi-transparent pixels blend over
// white, so the output is fully opaque.
func Pad(img image.Image, padding int) (*image.NRGBA, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 || padding < 0 {
		return nil, &svgraster.SizeError{Width: float64(w), Height: float64(h)}
	}
	outW := w + 2*padding
	outH := h + 2*padding
	if outW <= 0 || outH <= 0 { // overflow
		return nil, &svgraster.SizeError{Width: float64(outW), Height: float64(outH)}
	}

	canvas := imaging.New(outW, outH, color.White)
	return imaging.Overlay(canvas, img, image.Pt(padding, padding), 1.0), nil
}

// EncodePNG writes the image as PNG. The standard encoder is
// deterministic, identical images yield identical bytes.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return &EncodeError{cause: err}
	}
	return nil
}

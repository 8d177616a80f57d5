package fontreg

import (
	"bytes"
	"fmt"
	"sync"

	gtfont "github.com/go-text/typesetting/font"
	"golang.org/x/image/font/sfnt"
)

// Face is one font of the registry. The sfnt form is parsed eagerly
// during the scan; the shaping form is parsed lazily since only the
// handful of faces actually used by text spans need it.
type Face struct {
	Family string

	data  []byte
	font  *sfnt.Font
	index int // member index for collections, -1 for single fonts

	shapeOnce sync.Once
	shaped    *gtfont.Font
	shapeErr  error
}

// SFNT returns the parsed font, used for glyph outlines and metrics.
// The returned font is safe for concurrent use with separate
// sfnt.Buffer values.
func (f *Face) SFNT() *sfnt.Font { return f.font }

// Shaping returns the font in the form used by the HarfBuzz shaper.
// The returned value is read-only and safe for concurrent use; wrap
// it in a new gtfont.Face per shaping call.
func (f *Face) Shaping() (*gtfont.Font, error) {
	f.shapeOnce.Do(func() {
		if f.index >= 0 {
			faces, err := gtfont.ParseTTC(bytes.NewReader(f.data))
			if err != nil {
				f.shapeErr = err
				return
			}
			if f.index >= len(faces) {
				f.shapeErr = fmt.Errorf("font collection member %d out of range", f.index)
				return
			}
			f.shaped = faces[f.index].Font
			return
		}
		face, err := gtfont.ParseTTF(bytes.NewReader(f.data))
		if err != nil {
			f.shapeErr = err
			return
		}
		f.shaped = face.Font
	})
	return f.shaped, f.shapeErr
}

// Package svgscene parses vector-graphic documents into an abstract
// scene, which can then be consumed by painting drivers.
// Text elements are kept as spans, to be resolved into glyph outlines
// against a font registry (see texrender/svgtext).
package svgscene

import (
	"encoding/xml"
	"fmt"
	"io"

	"golang.org/x/net/html/charset"
)

// Bounds defines a bounding box, such as a viewport
// or a path extent.
type Bounds struct{ X, Y, W, H float64 }

// PathStyle holds the state of the SVG style
type PathStyle struct {
	FillOpacity, LineOpacity float64
	LineWidth                float64
	UseNonZeroWinding        bool

	Join                    JoinOptions
	Dash                    DashOptions
	FillerColor, LinerColor Pattern // either PlainColor or Gradient

	FontFamily string  // requested family for text spans
	FontSize   float64 // in user units

	transform Matrix2D // current transform
}

// TextSpan is a not-yet-resolved piece of text, positioned
// on its baseline at (X, Y).
type TextSpan struct {
	X, Y   float64
	Family string
	Size   float64
	Text   string
	Style  PathStyle
}

// Layer binds a style to a drawable. Either Path or Text is set.
type Layer struct {
	Path  Path
	Style PathStyle
	Text  *TextSpan
}

// Document holds the scene parsed from an SVG document, in
// drawing order. It is immutable once parsed, and owned by a
// single request.
type Document struct {
	ViewBox Bounds

	// intrinsic size in user units, resolved from the width and
	// height attributes, falling back on the view box
	Width, Height float64

	Titles       []string // Title elements collect here
	Descriptions []string // Description elements collect here
	Layers       []Layer

	grads map[string]*Gradient
	defs  map[string][]definition
}

// ParseError reports a malformed vector document. It is unexpected
// from a trusted translator, but checked defensively.
type ParseError struct {
	cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed vector document: %s", e.cause)
}

func (e *ParseError) Unwrap() error { return e.cause }

// ErrorMode determines how unsupported SVG elements are treated.
type ErrorMode uint8

const (
	IgnoreErrorMode ErrorMode = iota
	WarnErrorMode
	StrictErrorMode
)

// definition is used to store what's given in a def tag
type definition struct {
	ID, Tag string
	Attrs   []xml.Attr
}

// ReadDocumentStream reads an SVG document from the given io.Reader.
// This only supports a sub-set of SVG, but is enough to draw the
// documents produced by math translators. errMode determines if the
// parser ignores, errors out, or logs a warning when it does not
// handle an element found in the document.
func ReadDocumentStream(stream io.Reader, errMode ErrorMode) (*Document, error) {
	doc := &Document{defs: make(map[string][]definition), grads: make(map[string]*Gradient)}
	cursor := &svgCursor{styleStack: []PathStyle{DefaultStyle}, doc: doc}
	cursor.errorMode = errMode
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel
	seenTag := false
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				if !seenTag {
					return nil, &ParseError{cause: fmt.Errorf("no svg element found")}
				}
				break
			}
			return nil, &ParseError{cause: err}
		}
		// Inspect the type of the XML token
		switch se := t.(type) {
		case xml.StartElement:
			seenTag = true
			// Reads all recognized style attributes from the start element
			// and places it on top of the styleStack
			err = cursor.pushStyle(se.Attr)
			if err != nil {
				return nil, &ParseError{cause: err}
			}
			err = cursor.readStartElement(se)
			if err != nil {
				return nil, &ParseError{cause: err}
			}
		case xml.EndElement:
			// pop style
			cursor.styleStack = cursor.styleStack[:len(cursor.styleStack)-1]
			switch se.Name.Local {
			case "g":
				if cursor.inDefs {
					cursor.currentDef = append(cursor.currentDef, definition{
						Tag: "endg",
					})
				}
			case "text":
				if cursor.curText != nil {
					doc.Layers = append(doc.Layers, Layer{Text: cursor.curText, Style: cursor.curText.Style})
					cursor.curText = nil
				}
			case "title":
				cursor.inTitleText = false
			case "desc":
				cursor.inDescText = false
			case "defs":
				if len(cursor.currentDef) > 0 {
					cursor.doc.defs[cursor.currentDef[0].ID] = cursor.currentDef
					cursor.currentDef = make([]definition, 0)
				}
				cursor.inDefs = false
			case "radialGradient", "linearGradient":
				cursor.inGrad = false
			}
		case xml.CharData:
			if cursor.inTitleText {
				doc.Titles[len(doc.Titles)-1] += string(se)
			}
			if cursor.inDescText {
				doc.Descriptions[len(doc.Descriptions)-1] += string(se)
			}
			if cursor.curText != nil {
				cursor.curText.Text += string(se)
			}
		}
	}
	return doc, nil
}

// HasText reports whether the document contains unresolved text spans.
func (doc *Document) HasText() bool {
	for _, layer := range doc.Layers {
		if layer.Text != nil {
			return true
		}
	}
	return false
}

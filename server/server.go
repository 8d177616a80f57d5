// Package server exposes the math rendering pipeline over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/texrender/texrender/compose"
	"github.com/texrender/texrender/fontreg"
	"github.com/texrender/texrender/mathtex"
	"github.com/texrender/texrender/svgraster"
	"github.com/texrender/texrender/svgscene"
	"github.com/texrender/texrender/svgtext"
)

// maxRequestBytes bounds the request body size.
const maxRequestBytes = 1 << 20

// Config assembles the rendering pipeline. The zero value is usable:
// it runs the default translator command and the shared font registry.
type Config struct {
	Translator mathtex.Translator
	Height     int // raster height before padding, in pixels
	Padding    int // white border on each side, in pixels

	// Fonts returns the registry used to resolve text spans.
	// Defaults to fontreg.Shared, which scans the system fonts on
	// first use.
	Fonts func() *fontreg.Registry

	Logger *log.Logger
}

// Server renders LaTeX math to SVG and PNG.
type Server struct {
	cfg Config
}

// New returns a server, filling the zero fields of cfg with defaults.
func New(cfg Config) *Server {
	if cfg.Translator == nil {
		cfg.Translator = mathtex.Command{}
	}
	if cfg.Height <= 0 {
		cfg.Height = 100
	}
	if cfg.Padding < 0 {
		cfg.Padding = 0
	}
	if cfg.Fonts == nil {
		cfg.Fonts = fontreg.Shared
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	return &Server{cfg: cfg}
}

// Handler returns the route table. Unsupported methods on known
// paths get a 405 from the mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /render/svg", s.handleSVG)
	mux.HandleFunc("POST /render/png", s.handlePNG)
	return mux
}

type renderRequest struct {
	Latex string `json:"latex"`
}

func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (renderRequest, bool) {
	var req renderRequest
	body := http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		http.Error(w, "LaTeX Error: invalid request body", http.StatusBadRequest)
		return req, false
	}
	return req, true
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}
	svg, err := s.cfg.Translator.Translate(r.Context(), req.Latex)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(svg)
}

func (s *Server) handlePNG(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}
	png, err := s.renderPNG(r.Context(), req.Latex)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// renderPNG runs the full pipeline: translate, parse, resolve text,
// rasterize, pad, encode.
func (s *Server) renderPNG(ctx context.Context, latex string) ([]byte, error) {
	svg, err := s.cfg.Translator.Translate(ctx, latex)
	if err != nil {
		return nil, err
	}
	doc, err := svgscene.ReadDocumentStream(bytes.NewReader(svg), svgscene.IgnoreErrorMode)
	if err != nil {
		return nil, err
	}
	scene := svgtext.Resolve(doc, s.cfg.Fonts())
	img, err := svgraster.Rasterize(scene, s.cfg.Height)
	if err != nil {
		return nil, err
	}
	padded, err := compose.Pad(img, s.cfg.Padding)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := compose.EncodePNG(&buf, padded); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeError maps a pipeline error to an HTTP status: rejected LaTeX
// sources are client errors, everything else is internal.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var texErr *mathtex.Error
	if errors.As(err, &texErr) {
		http.Error(w, fmt.Sprintf("LaTeX Error: %s", texErr.Detail), http.StatusBadRequest)
		return
	}
	s.cfg.Logger.Printf("render failed: %s", err)
	http.Error(w, fmt.Sprintf("Internal Error: %s", err), http.StatusInternalServerError)
}

// Package mathtex turns LaTeX math source into SVG markup by
// delegating to an external translator.
package mathtex

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Error reports a LaTeX source rejected by the translator. It maps
// to a client error at the HTTP boundary.
type Error struct {
	Detail string
}

func (e *Error) Error() string { return e.Detail }

// Translator converts LaTeX math source to an SVG document.
// A *Error return means the source itself is invalid; any other
// error is an internal failure.
type Translator interface {
	Translate(ctx context.Context, latex string) (svg []byte, err error)
}

// Func adapts a function to the Translator interface.
type Func func(ctx context.Context, latex string) ([]byte, error)

func (f Func) Translate(ctx context.Context, latex string) ([]byte, error) {
	return f(ctx, latex)
}

// DefaultCommand is the translator executable looked up in PATH.
const DefaultCommand = "tex2svg"

// Command runs an external translator process per request, passing
// the LaTeX source as the last argument and reading SVG from stdout.
type Command struct {
	Path string   // executable, DefaultCommand if empty
	Args []string // extra arguments placed before the source
}

func (c Command) Translate(ctx context.Context, latex string) ([]byte, error) {
	path := c.Path
	if path == "" {
		path = DefaultCommand
	}
	args := append(append([]string{}, c.Args...), latex)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if _, ok := err.(*exec.ExitError); ok {
			// the translator rejected the source
			detail := strings.TrimSpace(stderr.String())
			if detail == "" {
				detail = err.Error()
			}
			return nil, &Error{Detail: detail}
		}
		return nil, fmt.Errorf("translator %s: %w", path, err)
	}
	return stdout.Bytes(), nil
}

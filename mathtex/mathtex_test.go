package mathtex

import (
	"context"
	"errors"
	"runtime"
	"testing"
)

func TestFuncAdapter(t *testing.T) {
	tr := Func(func(ctx context.Context, latex string) ([]byte, error) {
		if latex == "bad" {
			return nil, &Error{Detail: "unknown command"}
		}
		return []byte("<svg/>"), nil
	})

	svg, err := tr.Translate(context.Background(), "x")
	if err != nil || string(svg) != "<svg/>" {
		t.Fatalf("unexpected result %q, %s", svg, err)
	}

	_, err = tr.Translate(context.Background(), "bad")
	var texErr *Error
	if !errors.As(err, &texErr) {
		t.Fatalf("expected a *Error, got %T", err)
	}
	if texErr.Detail != "unknown command" {
		t.Errorf("unexpected detail %q", texErr.Detail)
	}
}

func TestCommandOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on sh")
	}
	cmd := Command{Path: "sh", Args: []string{"-c", `printf '<svg/>'`}}
	svg, err := cmd.Translate(context.Background(), `\frac{1}{2}`)
	if err != nil {
		t.Fatalf("can't run translator: %s", err)
	}
	if string(svg) != "<svg/>" {
		t.Errorf("unexpected output %q", svg)
	}
}

func TestCommandRejection(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on sh")
	}
	cmd := Command{Path: "sh", Args: []string{"-c", `echo 'missing brace' >&2; exit 1`}}
	_, err := cmd.Translate(context.Background(), `\frac{1`)
	var texErr *Error
	if !errors.As(err, &texErr) {
		t.Fatalf("expected a *Error, got %T: %s", err, err)
	}
	if texErr.Detail != "missing brace" {
		t.Errorf("stderr not captured: %q", texErr.Detail)
	}
}

func TestCommandMissingBinary(t *testing.T) {
	cmd := Command{Path: "no-such-translator-binary"}
	_, err := cmd.Translate(context.Background(), "x")
	if err == nil {
		t.Fatal("expected an error")
	}
	var texErr *Error
	if errors.As(err, &texErr) {
		t.Fatal("a missing binary is an internal failure, not a source error")
	}
}

func TestCommandCanceled(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on sh")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cmd := Command{Path: "sh", Args: []string{"-c", "sleep 10"}}
	_, err := cmd.Translate(ctx, "x")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

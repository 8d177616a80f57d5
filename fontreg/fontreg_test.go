package fontreg

import (
	"sync"
	"testing"
)

func TestEmbeddedFallback(t *testing.T) {
	// no directories: only the embedded face is available
	r := New(nil, "No Such Family")
	if r.Fallback() == nil {
		t.Fatal("registry must always provide a fallback face")
	}
	if r.Fallback().SFNT() == nil {
		t.Fatal("fallback face has no parsed font")
	}
	if got := r.Face("Another Unknown Family"); got != r.Fallback() {
		t.Errorf("unknown family should resolve to the fallback, got %v", got)
	}
	if got := r.Face(""); got != r.Fallback() {
		t.Errorf("empty family should resolve to the fallback, got %v", got)
	}
}

func TestLookupByNames(t *testing.T) {
	r := New(nil, "goregular")
	// the embedded face registers under file and internal names
	for _, name := range []string{"goregular", "Go Regular", "go regular", " Go Regular "} {
		if f := r.lookup(name); f == nil {
			t.Errorf("face not found under %q", name)
		}
	}
	face := r.Face("Go Regular")
	if face.Family == "" {
		t.Error("family name not recorded")
	}
}

func TestFaceShaping(t *testing.T) {
	r := New(nil, "goregular")
	face := r.Fallback()
	shaped, err := face.Shaping()
	if err != nil {
		t.Fatalf("can't parse shaping form: %s", err)
	}
	if shaped == nil {
		t.Fatal("nil shaping font")
	}
	// parsed once, then cached
	again, err := face.Shaping()
	if err != nil || again != shaped {
		t.Error("shaping form should be cached")
	}
}

func TestSharedScansOnce(t *testing.T) {
	before := sharedInits.Load()

	var wg sync.WaitGroup
	regs := make([]*Registry, 8)
	for i := range regs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			regs[i] = Shared()
		}(i)
	}
	wg.Wait()

	after := sharedInits.Load()
	if after-before > 1 {
		t.Fatalf("shared registry initialized %d times", after-before)
	}
	for _, r := range regs {
		if r != regs[0] {
			t.Fatal("concurrent callers must observe the same registry")
		}
		if r.Fallback() == nil {
			t.Fatal("shared registry has no fallback")
		}
	}
}

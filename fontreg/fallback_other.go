//go:build !darwin && !windows

package fontreg

// DefaultFallback is the serif family used when a text span does not
// name an installed font.
const DefaultFallback = "Noto Serif CJK JP"

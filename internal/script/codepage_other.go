//go:build !windows

package script

// ActiveCodePage returns FallbackCodePage; only Windows has an ANSI code page.
func ActiveCodePage() int {
	return FallbackCodePage
}

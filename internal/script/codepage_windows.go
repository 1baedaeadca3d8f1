//go:build windows

package script

import "golang.org/x/sys/windows"

// ActiveCodePage returns the system ANSI code page.
func ActiveCodePage() int {
	return int(windows.GetACP())
}

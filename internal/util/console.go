//go:build !windows

package util

// IsRunFromGUI reports whether the process was started by double-clicking
// the binary. Only Windows has a launch mode where that matters.
func IsRunFromGUI() bool {
	return false
}

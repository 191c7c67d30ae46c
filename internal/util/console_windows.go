//go:build windows

package util

import (
	"log/slog"
	"os"
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	kernel32             = windows.NewLazySystemDLL("kernel32.dll")
	procGetConsoleWindow = kernel32.NewProc("GetConsoleWindow")
)

// shells lists parent processes that mean cs2ts runs inside a terminal.
var shells = map[string]bool{
	"cmd.exe":             true,
	"powershell.exe":      true,
	"pwsh.exe":            true,
	"wt.exe":              true,
	"conhost.exe":         true,
	"windowsterminal.exe": true,
	"bash.exe":            true,
}

// IsRunFromGUI reports whether cs2ts was started from Explorer, in which case
// its console window closes as soon as the process exits.
func IsRunFromGUI() bool {
	hwnd, _, _ := procGetConsoleWindow.Call()
	if hwnd == 0 {
		return true
	}

	parent := strings.ToLower(parentProcessName())
	slog.Debug("Parent process", "name", parent)
	if shells[parent] {
		return false
	}
	return parent == "explorer.exe"
}

func parentProcessName() string {
	snapshot, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return ""
	}
	defer windows.CloseHandle(snapshot)

	entries := map[uint32]windows.ProcessEntry32{}
	var pe windows.ProcessEntry32
	pe.Size = uint32(unsafe.Sizeof(pe))
	for err = windows.Process32First(snapshot, &pe); err == nil; err = windows.Process32Next(snapshot, &pe) {
		entries[pe.ProcessID] = pe
	}

	self, ok := entries[uint32(os.Getpid())]
	if !ok || self.ParentProcessID == 0 {
		return ""
	}
	parent, ok := entries[self.ParentProcessID]
	if !ok {
		return ""
	}
	return windows.UTF16ToString(parent.ExeFile[:])
}

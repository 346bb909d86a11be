//go:build windows

package internal

import (
	"syscall"
	"unsafe"
)

// skipSystemLocale disables the Windows API lookup in tests
var skipSystemLocale = false

var (
	kernel32                 = syscall.NewLazyDLL("kernel32.dll")
	procGetUserDefaultLocale = kernel32.NewProc("GetUserDefaultLocaleName")
)

// detectSystemLocale checks the environment first (WSL, tests), then
// GetUserDefaultLocaleName.
func detectSystemLocale() string {
	if locale := localeFromEnv(localeEnvVars...); locale != "" {
		return locale
	}
	if skipSystemLocale {
		return ""
	}

	const maxLen = 85 // LOCALE_NAME_MAX_LENGTH
	buf := make([]uint16, maxLen)
	ret, _, _ := procGetUserDefaultLocale.Call(uintptr(unsafe.Pointer(&buf[0])), uintptr(maxLen))
	if ret == 0 {
		return ""
	}
	return syscall.UTF16ToString(buf)
}

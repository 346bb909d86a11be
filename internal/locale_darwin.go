//go:build darwin

package internal

import (
	"os/exec"
	"strings"
)

// skipSystemLocale disables the AppleLocale lookup in tests
var skipSystemLocale = false

// detectSystemLocale prefers the terminal environment, then the AppleLocale
// preference ("en_US", "sv_SE").
func detectSystemLocale() string {
	if locale := localeFromEnv(localeEnvVars...); locale != "" {
		return locale
	}
	if skipSystemLocale {
		return ""
	}

	out, err := exec.Command("defaults", "read", "-g", "AppleLocale").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

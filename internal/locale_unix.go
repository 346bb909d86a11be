//go:build !windows && !darwin

package internal

// skipSystemLocale is set in tests; Unix has no locale source beyond the environment
var skipSystemLocale = false

func detectSystemLocale() string {
	return localeFromEnv(localeEnvVars...)
}

package internal

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Currency represents a currency with its formatting rules
type Currency struct {
	Code    string // "SEK", "USD", "EUR"
	unit    currency.Unit
	tag     language.Tag
	printer *message.Printer
	symbol  string // set for codes x/text does not know
}

// symbolOverrides provides custom symbols where x/text defaults aren't ideal
var symbolOverrides = map[string]string{
	"SEK": "kr",
	"NOK": "kr",
	"DKK": "kr",
	"ISK": "kr",
}

// defaultLocaleForCurrency provides fallback locales when currency is specified
// without a system locale (e.g., --currency USD). Uses a "home" locale for each currency.
var defaultLocaleForCurrency = map[string]language.Tag{
	"SEK": language.Swedish,
	"USD": language.AmericanEnglish,
	"EUR": language.German,
	"GBP": language.BritishEnglish,
	"NOK": language.Norwegian,
	"DKK": language.Danish,
	"CHF": language.German,
	"JPY": language.Japanese,
	"CAD": language.CanadianFrench,
	"AUD": language.MustParse("en-AU"),
	"BRL": language.BrazilianPortuguese,
	"MXN": language.LatinAmericanSpanish,
	"INR": language.MustParse("en-IN"),
	"CNY": language.Chinese,
	"KRW": language.Korean,
	"PLN": language.Polish,
	"CZK": language.Czech,
	"HUF": language.Hungarian,
	"RUB": language.Russian,
	"TRY": language.Turkish,
	"ZAR": language.MustParse("en-ZA"),
	"NZD": language.MustParse("en-NZ"),
	"SGD": language.MustParse("en-SG"),
	"HKD": language.MustParse("zh-HK"),
	"THB": language.Thai,
}

// detectedLocale stores the system locale when auto-detected, so we can use it for formatting
var detectedLocale language.Tag

// GetCurrency returns the Currency for a given code, formatted for the
// detected system locale or else the currency's home locale.
func GetCurrency(code string) Currency {
	code = strings.ToUpper(code)

	// Priority: detected system locale > default locale for currency > English
	tag := language.English
	if detectedLocale != language.Und {
		tag = detectedLocale
	} else if t, ok := defaultLocaleForCurrency[code]; ok {
		tag = t
	}
	return newCurrency(code, tag)
}

// GetCurrencyWithLocale returns a Currency with a specific locale for formatting.
func GetCurrencyWithLocale(code string, tag language.Tag) Currency {
	return newCurrency(strings.ToUpper(code), tag)
}

func newCurrency(code string, tag language.Tag) Currency {
	c := Currency{
		Code:    code,
		tag:     tag,
		printer: message.NewPrinter(tag),
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		// unknown code: number formatting as USD, the code itself as symbol
		unit = currency.USD
		c.symbol = code
	}
	c.unit = unit
	return c
}

// ParseLocale accepts POSIX ("sv_SE.UTF-8", "de_DE@euro") and BCP 47
// ("sv-SE") locale names
func ParseLocale(locale string) (language.Tag, error) {
	base := locale
	if idx := strings.IndexAny(base, ".@"); idx != -1 {
		base = base[:idx]
	}
	tag, err := language.Parse(strings.ReplaceAll(base, "_", "-"))
	if err != nil {
		return language.Und, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return tag, nil
}

// ResolveCurrency picks the currency code and formatting locale. An empty
// code is taken from the locale's region, then from the system locale, then
// USD. An empty locale uses the system locale or the currency's home locale.
func ResolveCurrency(code, locale string) (Currency, error) {
	if locale == "" {
		if code == "" {
			code = DetectSystemCurrency()
		}
		if code == "" {
			code = "USD"
		}
		return GetCurrency(code), nil
	}

	tag, err := ParseLocale(locale)
	if err != nil {
		return Currency{}, err
	}
	if code == "" {
		code, _ = parseCurrencyFromLocale(locale)
	}
	if code == "" {
		code = "USD"
	}
	return GetCurrencyWithLocale(code, tag), nil
}

// localeFromEnv returns the first usable locale among the given environment
// variables. "C" and "POSIX" carry no region and are skipped.
func localeFromEnv(vars ...string) string {
	for _, envVar := range vars {
		locale := os.Getenv(envVar)
		if locale != "" && locale != "C" && locale != "POSIX" {
			return locale
		}
	}
	return ""
}

// localeEnvVars are checked in order on every platform, most specific first
var localeEnvVars = []string{"LC_MONETARY", "LC_ALL", "LANG"}

// DetectSystemCurrency derives a currency code from the system locale
// (environment first, then the OS preference on macOS and Windows) and
// remembers that locale for formatting. Returns "" if nothing usable is found.
func DetectSystemCurrency() string {
	locale := detectSystemLocale()
	if locale == "" {
		return ""
	}

	// Try to get currency and locale from the locale string
	currCode, tag := parseCurrencyFromLocale(locale)
	if currCode != "" {
		detectedLocale = tag
		return currCode
	}
	return ""
}

// parseCurrencyFromLocale extracts currency code and language tag from a locale string.
// Examples: "sv_SE.UTF-8" -> ("SEK", sv-SE), "pt_BR.UTF-8" -> ("BRL", pt-BR)
func parseCurrencyFromLocale(locale string) (string, language.Tag) {
	tag, err := ParseLocale(locale)
	if err != nil {
		return "", language.Und
	}

	// Extract region and get currency for that region
	_, _, region := tag.Raw()
	if region.String() == "" || region.String() == "ZZ" {
		return "", language.Und
	}

	unit, ok := currency.FromRegion(region)
	if !ok {
		return "", language.Und
	}

	return unit.String(), tag
}

// getSymbol returns the currency symbol, using overrides where needed
func (c Currency) getSymbol() string {
	if c.symbol != "" {
		return c.symbol
	}
	if sym, ok := symbolOverrides[c.Code]; ok {
		return sym
	}
	// Use x/text to get the narrow symbol
	return c.printer.Sprint(currency.NarrowSymbol(c.unit))
}

// isPrefix returns true if this currency symbol should be placed before the amount.
// Note: golang.org/x/text/currency doesn't implement symbol positioning from CLDR patterns
// (see TODO in x/text/internal/number/pattern.go for ¤ handling). Until that's fixed,
// we maintain this list of prefix currencies manually.
func (c Currency) isPrefix() bool {
	switch c.Code {
	case "USD", "GBP", "JPY", "CAD", "AUD", "MXN", "HKD", "SGD", "NZD", "ZAR":
		return true
	default:
		return false
	}
}

// fractionDigits returns the number of decimals the currency is normally shown with
func (c Currency) fractionDigits() int {
	scale, _ := currency.Standard.Rounding(c.unit)
	return scale
}

// Format formats a single amount with the currency symbol
func (c Currency) Format(amount float64) string {
	digits := c.fractionDigits()
	// Use x/text/number for proper locale-aware formatting
	formatted := c.printer.Sprint(number.Decimal(amount,
		number.MinFractionDigits(digits), number.MaxFractionDigits(digits)))
	symbol := c.getSymbol()

	if c.isPrefix() {
		return symbol + formatted
	}
	return formatted + " " + symbol
}

// FormatDecimal formats an exact decimal amount
func (c Currency) FormatDecimal(amount decimal.Decimal) string {
	// rounding to the currency's precision first keeps float conversion exact enough
	return c.Format(amount.Round(int32(c.fractionDigits())).InexactFloat64())
}

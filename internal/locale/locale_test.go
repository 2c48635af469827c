package locale

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "pt-BR", Normalize("pt-BR"))
	assert.Equal(t, "en", Normalize("de"))
	assert.Equal(t, "en", Normalize(""))
}

func TestTables_CoverAllSupportedLocales(t *testing.T) {
	for _, code := range Supported {
		assert.NotEmpty(t, LanguageDirective(code), "directive for %s", code)
		assert.NotEmpty(t, LanguageReminder(code), "reminder for %s", code)
		assert.NotEmpty(t, RateLimitMessage(code), "rate limit message for %s", code)
	}
}

func TestLanguageDirective_FallsBackToEnglish(t *testing.T) {
	assert.Equal(t, LanguageDirective("en"), LanguageDirective("ja"))
}

func TestFormatResetTime(t *testing.T) {
	// 2026-01-01 00:00 UTC is 21:00 the previous evening in Sao Paulo.
	const newYearUTC = 1767225600000

	assert.Equal(t, "09:00 PM", FormatResetTime(newYearUTC, "en"))
	assert.Equal(t, "21:00", FormatResetTime(newYearUTC, "pt-BR"))
	assert.Equal(t, "21:00", FormatResetTime(newYearUTC, "es"))
	assert.Equal(t, "21:00", FormatResetTime(newYearUTC, "fr"))

	// Unsupported locales fall back to the English convention.
	assert.True(t, strings.HasSuffix(FormatResetTime(newYearUTC, "de"), "PM"))
}

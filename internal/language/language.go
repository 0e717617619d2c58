package language

import (
	"strings"

	xlang "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Word forms that language.Parse does not accept but users commonly type.
var wordForms = map[string]string{
	"english":    "en",
	"spanish":    "es",
	"french":     "fr",
	"german":     "de",
	"italian":    "it",
	"portuguese": "pt",
	"japanese":   "ja",
	"korean":     "ko",
	"chinese":    "zh",
	"russian":    "ru",
	"arabic":     "ar",
	"hindi":      "hi",
	"dutch":      "nl",
	"polish":     "pl",
	"swedish":    "sv",
	"danish":     "da",
	"norwegian":  "no",
	"finnish":    "fi",
}

// Normalize converts a configured language value to the ISO 639-1 code that
// whisper expects. Regional variants collapse to their base language
// ("en-US" becomes "en"). Returns the empty string for unrecognized input.
func Normalize(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return ""
	}
	if mapped, ok := wordForms[code]; ok {
		return mapped
	}
	tag, err := xlang.Parse(code)
	if err != nil {
		return ""
	}
	base, conf := tag.Base()
	if conf == xlang.No {
		return ""
	}
	return base.String()
}

// DisplayName returns a human-readable English name for a language code.
// Returns "Unknown" when the code cannot be resolved.
func DisplayName(code string) string {
	normalized := Normalize(code)
	if normalized == "" {
		return "Unknown"
	}
	tag, err := xlang.Parse(normalized)
	if err != nil {
		return "Unknown"
	}
	name := display.English.Languages().Name(tag)
	if name == "" {
		return "Unknown"
	}
	return name
}

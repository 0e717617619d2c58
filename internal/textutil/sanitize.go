package textutil

import "strings"

// SanitizeFileName strips characters that are unsafe in filenames. Path
// separators and drive punctuation turn into dashes so page names like
// "A/B Test: Spring" stay readable on disk.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch r {
		case '/', '\\', ':', '*':
			b.WriteByte('-')
		case '?', '"', '<', '>', '|':
			// dropped
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// SanitizeToken lowercases a value into a compact identifier suitable for
// directory names and cache keys. Anything outside [a-z0-9_-] collapses to
// an underscore and empty input yields "unknown".
func SanitizeToken(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return "unknown"
	}
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, value)
	mapped = strings.Trim(mapped, "_-")
	if mapped == "" {
		return "unknown"
	}
	return mapped
}

package adslibrary

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"adscribe/internal/ads"
)

const (
	// minArchiveIDDigits filters numeric noise out of the archive ID scrape.
	minArchiveIDDigits = 12
	// maxBodyRunes caps extracted body text per ad.
	maxBodyRunes = 500
)

var (
	pageNamePattern   = regexp.MustCompile(`"page_name":"([^"]+)"`)
	pageIDPattern     = regexp.MustCompile(`"page_id":"(\d+)"`)
	archiveIDPatterns = []*regexp.Regexp{
		regexp.MustCompile(`"adArchiveID":"(\d+)"`),
		regexp.MustCompile(`"ad_archive_id":"(\d+)"`),
	}
)

// ExtractPageName pulls the page display name out of a library page.
func ExtractPageName(html string) string {
	if m := pageNamePattern.FindStringSubmatch(html); m != nil {
		return decodeJSONString(m[1])
	}
	return ""
}

// ExtractPageID pulls a page ID out of search results, preferring an explicit
// view_all_page_id link over embedded page_id fields.
func ExtractPageID(html string) string {
	if m := viewAllPageIDPattern.FindStringSubmatch(html); m != nil {
		return m[1]
	}
	if m := pageIDPattern.FindStringSubmatch(html); m != nil {
		return m[1]
	}
	return ""
}

// ExtractAds collects ad creatives from a rendered library page. Archive IDs
// shorter than 12 digits are discarded as scrape noise. The result is sorted
// by archive ID for determinism and capped at maxAds when positive.
func ExtractAds(html string, maxAds int) []ads.Ad {
	seen := make(map[string]struct{})
	for _, pattern := range archiveIDPatterns {
		for _, m := range pattern.FindAllStringSubmatch(html, -1) {
			id := m[1]
			if len(id) < minArchiveIDDigits {
				continue
			}
			seen[id] = struct{}{}
		}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	if maxAds > 0 && len(ids) > maxAds {
		ids = ids[:maxAds]
	}

	result := make([]ads.Ad, 0, len(ids))
	for _, id := range ids {
		ad := ads.Ad{
			ArchiveID:  id,
			LibraryURL: fmt.Sprintf("https://www.facebook.com/ads/library/?id=%s", id),
		}
		if date := extractStartDate(html, id); date != "" {
			ad.StartedDate = date
		}
		if body := extractBody(html, id); body != "" {
			ad.Body = body
		}
		if cta := extractCallToAction(html, id); cta != "" {
			ad.CallToAction = cta
		}
		result = append(result, ad)
	}
	return result
}

func extractStartDate(html, archiveID string) string {
	pattern := regexp.MustCompile(`(?s)` + regexp.QuoteMeta(archiveID) + `.*?Started running on (\w+ \d+, \d{4})`)
	if m := pattern.FindStringSubmatch(html); m != nil {
		return m[1]
	}
	return ""
}

func extractBody(html, archiveID string) string {
	pattern := regexp.MustCompile(`(?s)"adArchiveID":"` + regexp.QuoteMeta(archiveID) + `".*?"body_markup":\{"markup":"([^"]*)"`)
	if m := pattern.FindStringSubmatch(html); m != nil {
		return truncateRunes(decodeJSONString(m[1]), maxBodyRunes)
	}
	return ""
}

func extractCallToAction(html, archiveID string) string {
	pattern := regexp.MustCompile(`(?s)"adArchiveID":"` + regexp.QuoteMeta(archiveID) + `".*?"cta_text":"([^"]*)"`)
	if m := pattern.FindStringSubmatch(html); m != nil {
		return decodeJSONString(m[1])
	}
	return ""
}

// decodeJSONString resolves backslash escapes (\uXXXX, \n, \/) captured from
// embedded JSON. Falls back to the raw text when the escape syntax is broken.
func decodeJSONString(raw string) string {
	if !strings.ContainsRune(raw, '\\') {
		return raw
	}
	// JSON escapes slashes; Go string literal syntax does not.
	normalized := strings.ReplaceAll(raw, `\/`, "/")
	decoded, err := strconv.Unquote(`"` + normalized + `"`)
	if err != nil {
		return raw
	}
	return decoded
}

func truncateRunes(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}

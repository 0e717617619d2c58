package adslibrary

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	viewAllPageIDPattern = regexp.MustCompile(`view_all_page_id=(\d+)`)
	profileIDPattern     = regexp.MustCompile(`[?&]id=(\d+)`)
	facebookNamePattern  = regexp.MustCompile(`facebook\.com/([^/?#]+)`)
	instagramNamePattern = regexp.MustCompile(`instagram\.com/([^/?]+)`)
	digitsOnlyPattern    = regexp.MustCompile(`^\d+$`)
)

// reserved facebook.com path segments that are not page names.
var reservedFacebookPaths = map[string]struct{}{
	"ads":         {},
	"profile.php": {},
	"watch":       {},
	"reel":        {},
}

// PageRef is the parsed form of a user-supplied page reference. Exactly one
// of PageID or SearchName is set.
type PageRef struct {
	PageID     string
	SearchName string
}

// ParsePageRef interprets a raw page reference. Accepted shapes, in order:
// a library URL carrying view_all_page_id, a profile.php?id= URL, a bare
// numeric page ID, a facebook.com/<name> URL, an instagram.com/<name> URL,
// and a bare page name.
func ParsePageRef(raw string) (PageRef, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return PageRef{}, fmt.Errorf("page reference is empty")
	}

	if m := viewAllPageIDPattern.FindStringSubmatch(raw); m != nil {
		return PageRef{PageID: m[1]}, nil
	}
	if strings.Contains(raw, "profile.php") {
		if m := profileIDPattern.FindStringSubmatch(raw); m != nil {
			return PageRef{PageID: m[1]}, nil
		}
		return PageRef{}, fmt.Errorf("profile URL %q carries no numeric id", raw)
	}
	if digitsOnlyPattern.MatchString(raw) {
		return PageRef{PageID: raw}, nil
	}
	if strings.Contains(raw, "facebook.com/") {
		if m := facebookNamePattern.FindStringSubmatch(raw); m != nil {
			name := m[1]
			if _, reserved := reservedFacebookPaths[name]; !reserved {
				return PageRef{SearchName: name}, nil
			}
		}
		return PageRef{}, fmt.Errorf("cannot extract a page from %q", raw)
	}
	if strings.Contains(raw, "instagram.com/") {
		if m := instagramNamePattern.FindStringSubmatch(raw); m != nil {
			return PageRef{SearchName: m[1]}, nil
		}
		return PageRef{}, fmt.Errorf("cannot extract a page from %q", raw)
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return PageRef{}, fmt.Errorf("unsupported URL %q; use a Facebook or Instagram page URL", raw)
	}
	return PageRef{SearchName: raw}, nil
}

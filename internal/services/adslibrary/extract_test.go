package adslibrary

import (
	"strings"
	"testing"
)

const samplePage = `<html><script>
{"page_name":"Acme Tools","page_id":"123456789012345"}
{"adArchiveID":"111122223333","snapshot":{"body_markup":{"markup":"Stop scrolling! Get 50% off today.","x":1},"cta_text":"Shop Now","link_url":"https:\/\/acme.example\/sale"}}
<div>111122223333 ... Started running on Jul 4, 2026</div>
{"ad_archive_id":"444455556666"}
{"adArchiveID":"789"}
</script></html>`

func TestExtractPageName(t *testing.T) {
	if got := ExtractPageName(samplePage); got != "Acme Tools" {
		t.Fatalf("ExtractPageName = %q", got)
	}
	if got := ExtractPageName("<html></html>"); got != "" {
		t.Fatalf("expected empty name, got %q", got)
	}
}

func TestExtractPageID(t *testing.T) {
	if got := ExtractPageID(samplePage); got != "123456789012345" {
		t.Fatalf("ExtractPageID = %q", got)
	}
	withLink := `<a href="/?view_all_page_id=555666777">ads</a> {"page_id":"999"}`
	if got := ExtractPageID(withLink); got != "555666777" {
		t.Fatalf("expected view_all_page_id to win, got %q", got)
	}
}

func TestExtractAds(t *testing.T) {
	result := ExtractAds(samplePage, 0)
	if len(result) != 2 {
		t.Fatalf("expected 2 ads (short id filtered), got %d", len(result))
	}

	first := result[0]
	if first.ArchiveID != "111122223333" {
		t.Fatalf("unexpected first archive id: %q", first.ArchiveID)
	}
	if first.StartedDate != "Jul 4, 2026" {
		t.Errorf("StartedDate = %q", first.StartedDate)
	}
	if first.Body != "Stop scrolling! Get 50% off today." {
		t.Errorf("Body = %q", first.Body)
	}
	if first.CallToAction != "Shop Now" {
		t.Errorf("CallToAction = %q", first.CallToAction)
	}
	if !strings.Contains(first.LibraryURL, "?id=111122223333") {
		t.Errorf("LibraryURL = %q", first.LibraryURL)
	}

	second := result[1]
	if second.ArchiveID != "444455556666" {
		t.Fatalf("unexpected second archive id: %q", second.ArchiveID)
	}
	if second.StartedDate != "" || second.Body != "" {
		t.Errorf("expected bare metadata for second ad, got %+v", second)
	}
}

func TestExtractAdsMaxCap(t *testing.T) {
	result := ExtractAds(samplePage, 1)
	if len(result) != 1 {
		t.Fatalf("expected 1 ad with cap, got %d", len(result))
	}
}

func TestExtractAdsDeduplicates(t *testing.T) {
	html := `{"adArchiveID":"111122223333"} {"ad_archive_id":"111122223333"}`
	if got := ExtractAds(html, 0); len(got) != 1 {
		t.Fatalf("expected deduplicated single ad, got %d", len(got))
	}
}

func TestDecodeJSONString(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain text", "plain text"},
		{`café special`, "café special"},
		{`line one\nline two`, "line one\nline two"},
		{`slash \/ path`, "slash / path"},
		{`broken \q escape`, `broken \q escape`},
	}
	for _, tt := range tests {
		if got := decodeJSONString(tt.input); got != tt.want {
			t.Errorf("decodeJSONString(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTruncateRunes(t *testing.T) {
	long := strings.Repeat("é", maxBodyRunes+10)
	got := truncateRunes(long, maxBodyRunes)
	if len([]rune(got)) != maxBodyRunes {
		t.Fatalf("expected %d runes, got %d", maxBodyRunes, len([]rune(got)))
	}
}

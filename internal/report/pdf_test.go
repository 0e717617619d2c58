package report

import (
	"os"
	"strings"
	"testing"
	"time"

	"adscribe/internal/analysis"
)

var reportNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func sampleResult() analysis.Result {
	return analysis.Result{
		PageID:    "123456789012345",
		PageName:  "Acme Tools",
		TotalAds:  3,
		Originals: 1,
		Variants:  1,
		Scripts: []analysis.Script{
			{
				ArchiveID:    "111122223333",
				LibraryURL:   "https://www.facebook.com/ads/library/?id=111122223333",
				Transcript:   "Stop scrolling, this gadget replaced five tools in my drawer.",
				Body:         "50% off this week only.",
				CallToAction: "Shop Now",
				StartedDate:  "Dec 1, 2025",
				DurationDays: 104,
				IsOriginal:   true,
				VariantCount: 1,
				Score:        135,
				Rank:         1,
			},
			{
				ArchiveID:    "444455556666",
				LibraryURL:   "https://www.facebook.com/ads/library/?id=444455556666",
				Transcript:   "Stop scrolling, this single gadget replaced five tools in my drawer.",
				DurationDays: 64,
				SimilarTo:    "111122223333",
				Similarity:   0.87,
				Score:        80,
				Rank:         2,
			},
		},
	}
}

func TestGenerateWritesPDF(t *testing.T) {
	dir := t.TempDir()

	path, err := Generate(sampleResult(), dir, reportNow)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat report: %v", err)
	}
	if info.Size() < 1000 {
		t.Fatalf("report suspiciously small: %d bytes", info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.HasPrefix(string(data), "%PDF-") {
		t.Fatal("output is not a PDF")
	}
}

func TestGenerateHandlesNonLatinText(t *testing.T) {
	result := sampleResult()
	result.PageName = "Café Münchén"
	result.Scripts[0].Transcript = "Visitez notre café — ouvert tous les jours à Paris."

	if _, err := Generate(result, t.TempDir(), reportNow); err != nil {
		t.Fatalf("Generate: %v", err)
	}
}

func TestFileName(t *testing.T) {
	name := FileName("Acme Tools & Hardware!", 12, reportNow)
	if name != "acme_tools___hardware_ad_scripts_12_20260315_120000.pdf" {
		t.Fatalf("unexpected file name: %q", name)
	}
}

func TestFileNameTruncatesLongNames(t *testing.T) {
	name := FileName(strings.Repeat("verylongname", 10), 1, reportNow)
	if len(name) > len("_ad_scripts_1_20260315_120000.pdf")+maxNameLength {
		t.Fatalf("file name not truncated: %q", name)
	}
}

func TestBadge(t *testing.T) {
	cases := []struct {
		script analysis.Script
		want   string
	}{
		{analysis.Script{IsOriginal: true, VariantCount: 2}, "ORIGINAL  (2 variants)"},
		{analysis.Script{IsOriginal: true, VariantCount: 1}, "ORIGINAL  (1 variant)"},
		{analysis.Script{IsOriginal: true}, "UNIQUE"},
		{analysis.Script{Similarity: 0.87}, "VARIANT  (87% match)"},
	}
	for _, tc := range cases {
		if got := badge(tc.script); got != tc.want {
			t.Errorf("badge(%+v) = %q, want %q", tc.script, got, tc.want)
		}
	}
}

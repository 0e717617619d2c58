package analysis

import (
	"testing"
	"time"

	"adscribe/internal/ads"
)

var analysisNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

const winningScript = "Stop scrolling. This one kitchen gadget replaced five tools in my drawer and I use it every single day. Tap below to grab yours before the discount ends."

const variantScript = "Stop scrolling. This single kitchen gadget replaced five tools in my drawer and I honestly use it every day. Tap the link to grab yours before the discount ends."

const unrelatedScript = "Our accounting software closes your books in minutes. Join thousands of small businesses that switched this year and never looked back."

func testAd(id, transcript, started string) ads.Ad {
	return ads.Ad{
		ArchiveID:   id,
		LibraryURL:  "https://www.facebook.com/ads/library/?id=" + id,
		Transcript:  transcript,
		StartedDate: started,
	}
}

func TestAnalyzeGroupsVariants(t *testing.T) {
	env := ads.Envelope{
		PageID:   "123456789012345",
		PageName: "Acme Tools",
		Ads: []ads.Ad{
			testAd("111122223333", winningScript, "Dec 1, 2025"),
			testAd("444455556666", variantScript, "Jan 10, 2026"),
			testAd("777788889999", unrelatedScript, "Mar 1, 2026"),
		},
	}

	result := Analyze(env, 0.6, analysisNow)

	if result.Originals != 2 || result.Variants != 1 {
		t.Fatalf("originals=%d variants=%d, want 2/1", result.Originals, result.Variants)
	}

	byID := make(map[string]Script, len(result.Scripts))
	for _, s := range result.Scripts {
		byID[s.ArchiveID] = s
	}

	leader := byID["111122223333"]
	if !leader.IsOriginal || leader.VariantCount != 1 {
		t.Errorf("leader grouping wrong: %+v", leader)
	}
	variant := byID["444455556666"]
	if variant.IsOriginal || variant.SimilarTo != "111122223333" {
		t.Errorf("variant grouping wrong: %+v", variant)
	}
	if variant.Similarity < 0.6 {
		t.Errorf("variant similarity = %f, want >= 0.6", variant.Similarity)
	}
	if other := byID["777788889999"]; !other.IsOriginal || other.SimilarTo != "" {
		t.Errorf("unrelated script grouped: %+v", other)
	}
}

func TestAnalyzeGroupsShortWordScripts(t *testing.T) {
	// Jingle-style transcripts where every word is too short to carry a
	// fingerprint still group: the first stays the lone original, the
	// repeat joins it as a variant instead of earning its own bonus.
	jingle := "On y va, la! Go go go!"
	env := ads.Envelope{
		PageID: "123456789012345",
		Ads: []ads.Ad{
			testAd("111122223333", jingle, "Jan 1, 2026"),
			testAd("444455556666", jingle, "Feb 1, 2026"),
		},
	}

	result := Analyze(env, 0.6, analysisNow)

	if result.Originals != 1 || result.Variants != 1 {
		t.Fatalf("originals=%d variants=%d, want 1/1", result.Originals, result.Variants)
	}
	byID := make(map[string]Script, len(result.Scripts))
	for _, s := range result.Scripts {
		byID[s.ArchiveID] = s
	}
	if leader := byID["111122223333"]; !leader.IsOriginal || leader.VariantCount != 1 {
		t.Errorf("leader grouping wrong: %+v", leader)
	}
	if variant := byID["444455556666"]; variant.IsOriginal || variant.SimilarTo != "111122223333" || variant.Similarity != 1.0 {
		t.Errorf("variant grouping wrong: %+v", variant)
	}
}

func TestAnalyzeScoresAndRanks(t *testing.T) {
	env := ads.Envelope{
		PageID: "123456789012345",
		Ads: []ads.Ad{
			testAd("111122223333", winningScript, "Dec 1, 2025"),
			testAd("444455556666", variantScript, "Jan 10, 2026"),
			testAd("777788889999", unrelatedScript, ""),
		},
	}

	result := Analyze(env, 0.6, analysisNow)

	byID := make(map[string]Script, len(result.Scripts))
	for _, s := range result.Scripts {
		byID[s.ArchiveID] = s
	}

	// Dec 1 2025 to Mar 15 2026 is over 90 days: 100 + 20 original + 15 variant.
	if got := byID["111122223333"].Score; got != 135 {
		t.Errorf("leader score = %d, want 135", got)
	}
	// Jan 10 to Mar 15 is 64 days, variant gets no bonuses.
	if got := byID["444455556666"].Score; got != 80 {
		t.Errorf("variant score = %d, want 80", got)
	}
	// Unknown date base 30 plus original bonus.
	if got := byID["777788889999"].Score; got != 50 {
		t.Errorf("undated score = %d, want 50", got)
	}

	if result.Scripts[0].ArchiveID != "111122223333" || result.Scripts[0].Rank != 1 {
		t.Errorf("unexpected first ranked script: %+v", result.Scripts[0])
	}
	for i, s := range result.Scripts {
		if s.Rank != i+1 {
			t.Errorf("rank[%d] = %d", i, s.Rank)
		}
		if i > 0 && s.Score > result.Scripts[i-1].Score {
			t.Errorf("scripts not sorted by score at %d", i)
		}
	}
}

func TestAnalyzeIgnoresUntranscribedAds(t *testing.T) {
	env := ads.Envelope{
		Ads: []ads.Ad{
			testAd("111122223333", winningScript, ""),
			{ArchiveID: "444455556666", SkipReason: "video download failed"},
		},
	}

	result := Analyze(env, 0.6, analysisNow)
	if len(result.Scripts) != 1 {
		t.Fatalf("scripts = %d, want 1", len(result.Scripts))
	}
	if result.TotalAds != 2 {
		t.Fatalf("total ads = %d, want 2", result.TotalAds)
	}
}

func TestScoreScriptTiers(t *testing.T) {
	cases := []struct {
		days     int
		original bool
		variants int
		want     int
	}{
		{-1, false, 0, 30},
		{120, false, 0, 100},
		{60, false, 0, 80},
		{45, false, 0, 60},
		{20, false, 0, 40},
		{5, false, 0, 20},
		{5, true, 0, 40},
		{90, true, 3, 165},
	}
	for _, tc := range cases {
		if got := scoreScript(tc.days, tc.original, tc.variants); got != tc.want {
			t.Errorf("scoreScript(%d, %v, %d) = %d, want %d", tc.days, tc.original, tc.variants, got, tc.want)
		}
	}
}

func TestResultRoundTrip(t *testing.T) {
	result := Analyze(ads.Envelope{
		PageID: "1",
		Ads:    []ads.Ad{testAd("111122223333", winningScript, "Jan 1, 2026")},
	}, 0.6, analysisNow)

	encoded, err := result.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := Parse(encoded)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(decoded.Scripts) != 1 || decoded.Scripts[0].ArchiveID != "111122223333" {
		t.Fatalf("round trip lost data: %+v", decoded)
	}
}

func TestParseEmpty(t *testing.T) {
	result, err := Parse("")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(result.Scripts) != 0 {
		t.Fatalf("expected empty result, got %+v", result)
	}
}

package ads

import (
	"testing"
	"time"
)

func TestParseEmpty(t *testing.T) {
	env, err := Parse("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.PageID != "" || len(env.Ads) != 0 {
		t.Fatalf("expected empty envelope, got %+v", env)
	}
}

func TestParseInvalid(t *testing.T) {
	if _, err := Parse("{not json"); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	env := Envelope{
		PageID:   "1234567890",
		PageName: "Acme Tools",
		Country:  "US",
		Ads: []Ad{
			{ArchiveID: "987654321098", StartedDate: "Jul 4, 2026", Body: "Big sale"},
			{ArchiveID: "987654321099", Transcript: "Stop scrolling"},
		},
	}
	raw, err := env.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.PageID != env.PageID || got.PageName != env.PageName {
		t.Fatalf("page identity lost: %+v", got)
	}
	if len(got.Ads) != 2 {
		t.Fatalf("expected 2 ads, got %d", len(got.Ads))
	}
	if got.Ads[0].StartedDate != "Jul 4, 2026" {
		t.Fatalf("start date lost: %q", got.Ads[0].StartedDate)
	}
}

func TestFindAd(t *testing.T) {
	env := Envelope{Ads: []Ad{{ArchiveID: "111111111111"}, {ArchiveID: "222222222222"}}}
	ad := env.FindAd("222222222222")
	if ad == nil {
		t.Fatal("expected match")
	}
	ad.VideoPath = "/tmp/video.mp4"
	if env.Ads[1].VideoPath != "/tmp/video.mp4" {
		t.Fatal("FindAd should return a pointer into the envelope")
	}
	if env.FindAd("missing") != nil {
		t.Fatal("expected nil for unknown archive ID")
	}
}

func TestDaysRunning(t *testing.T) {
	now := time.Date(2026, time.August, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		date string
		want int
	}{
		{"recent", "Jul 22, 2026", 10},
		{"future clamps to zero", "Aug 15, 2026", 0},
		{"missing", "", -1},
		{"unparseable", "sometime last year", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ad := Ad{StartedDate: tt.date}
			if got := ad.DaysRunning(now); got != tt.want {
				t.Errorf("DaysRunning(%q) = %d, want %d", tt.date, got, tt.want)
			}
		})
	}
}

func TestTranscribedCount(t *testing.T) {
	env := Envelope{Ads: []Ad{
		{ArchiveID: "1", Transcript: "hello there"},
		{ArchiveID: "2", Transcript: "   "},
		{ArchiveID: "3"},
	}}
	if got := env.TranscribedCount(); got != 1 {
		t.Fatalf("TranscribedCount = %d, want 1", got)
	}
}

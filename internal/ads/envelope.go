package ads

import (
	"encoding/json"
	"slices"
	"strings"
	"time"
)

// Envelope captures the structured payload shared between the scanning,
// downloading, transcription, and analysis stages.
type Envelope struct {
	PageID    string    `json:"page_id"`
	PageName  string    `json:"page_name,omitempty"`
	PageURL   string    `json:"page_url,omitempty"`
	Country   string    `json:"country,omitempty"`
	ScannedAt time.Time `json:"scanned_at,omitempty"`
	Ads       []Ad      `json:"ads,omitempty"`
}

// Ad records one creative from the ads library plus the artefacts later
// stages attach to it.
type Ad struct {
	ArchiveID    string `json:"archive_id"`
	LibraryURL   string `json:"library_url,omitempty"`
	StartedDate  string `json:"started_date,omitempty"`
	Body         string `json:"body,omitempty"`
	CallToAction string `json:"call_to_action,omitempty"`

	// Download stage
	VideoPath string `json:"video_path,omitempty"`
	AudioPath string `json:"audio_path,omitempty"`

	// Transcription stage
	Transcript          string `json:"transcript,omitempty"`
	TranscriptPath      string `json:"transcript_path,omitempty"`
	TranscriptFromCache bool   `json:"transcript_from_cache,omitempty"`
	SkipReason          string `json:"skip_reason,omitempty"`
}

// HasTranscript reports whether the ad carries usable transcript text.
func (a Ad) HasTranscript() bool {
	return strings.TrimSpace(a.Transcript) != ""
}

// DaysRunning returns the number of days the ad has been running relative
// to now, or -1 when the start date is missing or unparseable. Start dates
// use the "Jan 2, 2006" form the ads library renders.
func (a Ad) DaysRunning(now time.Time) int {
	raw := strings.TrimSpace(a.StartedDate)
	if raw == "" {
		return -1
	}
	started, err := time.Parse("Jan 2, 2006", raw)
	if err != nil {
		return -1
	}
	days := int(now.Sub(started).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// Parse loads an envelope from JSON, returning an empty envelope on blank input.
func Parse(raw string) (Envelope, error) {
	var env Envelope
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return env, nil
	}
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return Envelope{}, err
	}
	env.Ads = slices.Clone(env.Ads)
	return env, nil
}

// Encode serialises the envelope to JSON.
func (e Envelope) Encode() (string, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FindAd returns a pointer to the ad with the given archive ID, or nil.
func (e *Envelope) FindAd(archiveID string) *Ad {
	for i := range e.Ads {
		if e.Ads[i].ArchiveID == archiveID {
			return &e.Ads[i]
		}
	}
	return nil
}

// TranscribedCount returns the number of ads carrying transcript text.
func (e Envelope) TranscribedCount() int {
	count := 0
	for _, ad := range e.Ads {
		if ad.HasTranscript() {
			count++
		}
	}
	return count
}

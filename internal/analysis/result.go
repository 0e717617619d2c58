package analysis

import (
	"encoding/json"
	"fmt"
	"time"
)

// Script is one analyzed ad transcript with its grouping and score.
type Script struct {
	ArchiveID    string  `json:"archive_id"`
	LibraryURL   string  `json:"library_url"`
	Transcript   string  `json:"transcript"`
	Body         string  `json:"body,omitempty"`
	CallToAction string  `json:"call_to_action,omitempty"`
	StartedDate  string  `json:"started_date,omitempty"`
	DurationDays int     `json:"duration_days"`
	IsOriginal   bool    `json:"is_original"`
	SimilarTo    string  `json:"similar_to,omitempty"`
	Similarity   float64 `json:"similarity,omitempty"`
	VariantCount int     `json:"variant_count"`
	Score        int     `json:"score"`
	Rank         int     `json:"rank"`
}

// Result is the full analysis outcome persisted on the queue item.
type Result struct {
	PageID     string    `json:"page_id"`
	PageName   string    `json:"page_name"`
	AnalyzedAt time.Time `json:"analyzed_at"`
	TotalAds   int       `json:"total_ads"`
	Originals  int       `json:"originals"`
	Variants   int       `json:"variants"`
	Scripts    []Script  `json:"scripts"`
}

// Parse decodes a stored analysis payload.
func Parse(raw string) (Result, error) {
	var result Result
	if raw == "" {
		return result, nil
	}
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return Result{}, fmt.Errorf("parse analysis payload: %w", err)
	}
	return result, nil
}

// Encode serializes the analysis for storage on the queue item.
func (r Result) Encode() (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("encode analysis payload: %w", err)
	}
	return string(data), nil
}

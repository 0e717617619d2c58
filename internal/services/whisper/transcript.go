package whisper

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Segment is one timed span of the whisper JSON output.
type Segment struct {
	ID    int     `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

type transcriptFile struct {
	Text     string    `json:"text"`
	Segments []Segment `json:"segments"`
	Language string    `json:"language"`
}

// LoadTranscript reads a whisper JSON output file and returns the
// transcript text. When the top-level text field is empty the segment
// texts are joined instead.
func LoadTranscript(jsonPath string) (string, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return "", fmt.Errorf("read transcript json: %w", err)
	}

	var file transcriptFile
	if err := json.Unmarshal(data, &file); err != nil {
		return "", fmt.Errorf("parse transcript json: %w", err)
	}

	if text := strings.TrimSpace(file.Text); text != "" {
		return text, nil
	}

	parts := make([]string, 0, len(file.Segments))
	for _, segment := range file.Segments {
		if text := strings.TrimSpace(segment.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " "), nil
}

// LoadSegments reads the timed segments from a whisper JSON output file.
func LoadSegments(jsonPath string) ([]Segment, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("read transcript json: %w", err)
	}

	var file transcriptFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse transcript json: %w", err)
	}
	return file.Segments, nil
}

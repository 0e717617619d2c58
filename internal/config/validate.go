package config

import (
	"errors"
	"fmt"
	"strings"

	"adscribe/internal/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAdsLibrary(); err != nil {
		return err
	}
	if err := c.validateTranscription(); err != nil {
		return err
	}
	if err := c.validateAnalysis(); err != nil {
		return err
	}
	if err := c.validateWorkflow(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateAdsLibrary() error {
	if !strings.HasPrefix(c.AdsLibrary.BaseURL, "http://") && !strings.HasPrefix(c.AdsLibrary.BaseURL, "https://") {
		return fmt.Errorf("ads_library.base_url must be an http(s) URL, got %q", c.AdsLibrary.BaseURL)
	}
	if c.AdsLibrary.MaxAds <= 0 {
		return errors.New("ads_library.max_ads must be positive")
	}
	return nil
}

func (c *Config) validateTranscription() error {
	if strings.TrimSpace(c.Transcription.Model) == "" {
		return errors.New("transcription.model must be set")
	}
	if language.Normalize(c.Transcription.Language) == "" {
		return fmt.Errorf("transcription.language %q is not a recognized language code", c.Transcription.Language)
	}
	return nil
}

func (c *Config) validateAnalysis() error {
	if c.Analysis.SimilarityThreshold <= 0 || c.Analysis.SimilarityThreshold > 1 {
		return errors.New("analysis.similarity_threshold must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateWorkflow() error {
	if err := ensurePositiveMap(map[string]int{
		"ads_library.request_timeout":   c.AdsLibrary.RequestTimeout,
		"transcription.timeout_seconds": c.Transcription.TimeoutSeconds,
		"notifications.request_timeout": c.Notifications.RequestTimeout,
		"workflow.queue_poll_interval":  c.Workflow.QueuePollInterval,
		"workflow.error_retry_interval": c.Workflow.ErrorRetryInterval,
	}); err != nil {
		return err
	}
	if c.Workflow.HeartbeatInterval <= 0 {
		return errors.New("workflow.heartbeat_interval must be positive")
	}
	if c.Workflow.HeartbeatTimeout <= 0 {
		return errors.New("workflow.heartbeat_timeout must be positive")
	}
	if c.Workflow.HeartbeatTimeout <= c.Workflow.HeartbeatInterval {
		return errors.New("workflow.heartbeat_timeout must be greater than workflow.heartbeat_interval")
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}

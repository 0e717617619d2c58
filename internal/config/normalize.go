package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeAdsLibrary()
	c.normalizeTranscription()
	c.normalizeNotifications()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.StagingDir, err = expandPath(c.Paths.StagingDir); err != nil {
		return fmt.Errorf("paths.staging_dir: %w", err)
	}
	if c.Paths.ReportsDir, err = expandPath(c.Paths.ReportsDir); err != nil {
		return fmt.Errorf("paths.reports_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.TranscriptCacheDir) == "" {
		c.Paths.TranscriptCacheDir = defaultTranscriptCacheDir
	}
	if c.Paths.TranscriptCacheDir, err = expandPath(c.Paths.TranscriptCacheDir); err != nil {
		return fmt.Errorf("paths.transcript_cache_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.ToolCacheDir) == "" {
		c.Paths.ToolCacheDir = defaultToolCacheDir()
	}
	if c.Paths.ToolCacheDir, err = expandPath(c.Paths.ToolCacheDir); err != nil {
		return fmt.Errorf("paths.tool_cache_dir: %w", err)
	}
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	if c.Paths.APIBind == "" {
		c.Paths.APIBind = defaultAPIBind
	}
	return nil
}

func (c *Config) normalizeAdsLibrary() {
	c.AdsLibrary.BaseURL = strings.TrimRight(strings.TrimSpace(c.AdsLibrary.BaseURL), "/")
	if c.AdsLibrary.BaseURL == "" {
		c.AdsLibrary.BaseURL = defaultAdsLibraryBaseURL
	}
	c.AdsLibrary.Country = strings.ToUpper(strings.TrimSpace(c.AdsLibrary.Country))
	if c.AdsLibrary.Country == "" {
		c.AdsLibrary.Country = defaultAdsLibraryCountry
	}
	if c.AdsLibrary.MaxAds <= 0 {
		c.AdsLibrary.MaxAds = defaultAdsLibraryMaxAds
	}
	if c.AdsLibrary.RequestTimeout <= 0 {
		c.AdsLibrary.RequestTimeout = defaultAdsLibraryTimeout
	}
	c.AdsLibrary.UserAgent = strings.TrimSpace(c.AdsLibrary.UserAgent)
	if c.AdsLibrary.UserAgent == "" {
		c.AdsLibrary.UserAgent = defaultAdsLibraryUserAgent
	}
}

func (c *Config) normalizeTranscription() {
	c.Transcription.Model = strings.TrimSpace(c.Transcription.Model)
	if c.Transcription.Model == "" {
		c.Transcription.Model = defaultWhisperModel
	}
	c.Transcription.Language = strings.ToLower(strings.TrimSpace(c.Transcription.Language))
	if c.Transcription.Language == "" {
		c.Transcription.Language = defaultWhisperLanguage
	}
	if c.Transcription.TimeoutSeconds <= 0 {
		c.Transcription.TimeoutSeconds = defaultWhisperTimeoutSeconds
	}
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.NtfyTopic == "" {
		if value, ok := os.LookupEnv("ADSCRIBE_NTFY_TOPIC"); ok {
			c.Notifications.NtfyTopic = strings.TrimSpace(value)
		}
	}
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyRequestTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}

package config

const (
	defaultStagingDir               = "~/.local/share/adscribe/staging"
	defaultReportsDir               = "~/.local/share/adscribe/reports"
	defaultLogDir                   = "~/.local/share/adscribe/logs"
	defaultTranscriptCacheDir       = "~/.local/share/adscribe/cache/transcripts"
	defaultLogRetentionDays         = 60
	defaultAPIBind                  = "127.0.0.1:7851"
	defaultAdsLibraryBaseURL        = "https://www.facebook.com/ads/library"
	defaultAdsLibraryCountry        = "ALL"
	defaultAdsLibraryMaxAds         = 30
	defaultAdsLibraryTimeout        = 30
	defaultAdsLibraryUserAgent      = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	defaultWhisperModel             = "base"
	defaultWhisperLanguage          = "en"
	defaultWhisperTimeoutSeconds    = 1800
	defaultSimilarityThreshold      = 0.6
	defaultNotifyRequestTimeout     = 10
	defaultWorkflowPollInterval     = 5
	defaultWorkflowErrorRetry       = 10
	defaultWorkflowHeartbeatEvery   = 15
	defaultWorkflowHeartbeatTimeout = 120
	defaultLogFormat                = "console"
	defaultLogLevel                 = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StagingDir:         defaultStagingDir,
			ReportsDir:         defaultReportsDir,
			LogDir:             defaultLogDir,
			TranscriptCacheDir: defaultTranscriptCacheDir,
			ToolCacheDir:       defaultToolCacheDir(),
			APIBind:            defaultAPIBind,
		},
		AdsLibrary: AdsLibrary{
			BaseURL:        defaultAdsLibraryBaseURL,
			Country:        defaultAdsLibraryCountry,
			MaxAds:         defaultAdsLibraryMaxAds,
			RequestTimeout: defaultAdsLibraryTimeout,
			UserAgent:      defaultAdsLibraryUserAgent,
		},
		Transcription: Transcription{
			Model:          defaultWhisperModel,
			Language:       defaultWhisperLanguage,
			TimeoutSeconds: defaultWhisperTimeoutSeconds,
		},
		Analysis: Analysis{
			SimilarityThreshold: defaultSimilarityThreshold,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
			Scan:           true,
			Report:         true,
			Queue:          true,
			Errors:         true,
		},
		Workflow: Workflow{
			QueuePollInterval:  defaultWorkflowPollInterval,
			ErrorRetryInterval: defaultWorkflowErrorRetry,
			HeartbeatInterval:  defaultWorkflowHeartbeatEvery,
			HeartbeatTimeout:   defaultWorkflowHeartbeatTimeout,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}

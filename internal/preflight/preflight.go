package preflight

import (
	"context"

	"adscribe/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
// Checks are only run when the corresponding feature is enabled.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, CheckDirectoryAccess("Staging directory", cfg.Paths.StagingDir))
	results = append(results, CheckDirectoryAccess("Reports directory", cfg.Paths.ReportsDir))

	if cfg.Paths.TranscriptCacheDir != "" {
		results = append(results, CheckDirectoryAccess("Transcript cache", cfg.Paths.TranscriptCacheDir))
	}

	results = append(results, CheckAdsLibrary(ctx, cfg.AdsLibrary.BaseURL, cfg.AdsLibrary.UserAgent))

	return results
}

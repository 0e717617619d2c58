package preflight

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"adscribe/internal/config"
)

// CheckNtfyFromConfig evaluates ntfy status from config and connectivity.
func CheckNtfyFromConfig(cfg *config.Config) Result {
	const name = "Notifications"

	if cfg == nil {
		return Result{Name: name, Detail: "Unknown"}
	}
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return Result{Name: name, Passed: true, Detail: "Disabled"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client := &http.Client{Timeout: 5 * time.Second}
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, topic, nil)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("check failed (%v)", err)}
	}
	resp, err := client.Do(req)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("unreachable (%v)", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return Result{Name: name, Detail: fmt.Sprintf("endpoint returned %d", resp.StatusCode)}
	}
	return Result{Name: name, Passed: true, Detail: "Reachable"}
}

// CheckAdsLibraryFromConfig evaluates ads library status from config and connectivity.
func CheckAdsLibraryFromConfig(cfg *config.Config) Result {
	const name = "Ads library"

	if cfg == nil {
		return Result{Name: name, Detail: "Unknown"}
	}
	if strings.TrimSpace(cfg.AdsLibrary.BaseURL) == "" {
		return Result{Name: name, Detail: "Missing URL"}
	}
	return CheckAdsLibrary(context.Background(), cfg.AdsLibrary.BaseURL, cfg.AdsLibrary.UserAgent)
}

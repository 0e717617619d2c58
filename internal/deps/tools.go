package deps

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"time"
)

// ResolveYtdlp reports the yt-dlp binary the download stage will execute.
//
// The download stage prefers the managed binary inside the tool cache and
// falls back to resolving "yt-dlp" from PATH. This helper mirrors that
// lookup order so status output matches download behaviour.
func ResolveYtdlp(managedPath string) Status {
	result := Status{
		Name:        "yt-dlp",
		Description: "Required for downloading ad videos",
	}

	managed := strings.TrimSpace(managedPath)
	if managed != "" {
		if info, err := os.Stat(managed); err == nil && !info.IsDir() {
			result.Command = managed
			result.Available = true
			return result
		}
	}

	if resolved, err := exec.LookPath("yt-dlp"); err == nil {
		result.Command = resolved
		result.Available = true
		return result
	}

	result.Command = "yt-dlp"
	result.Detail = "yt-dlp not found in tool cache or PATH; run setup"
	return result
}

// Version runs a binary with a version flag and returns the first output line.
// Returns an empty string when the probe fails.
func Version(ctx context.Context, command string, args ...string) string {
	command = strings.TrimSpace(command)
	if command == "" {
		return ""
	}
	if len(args) == 0 {
		args = []string{"--version"}
	}

	probeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cmd := exec.CommandContext(probeCtx, command, args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return ""
	}
	line, _, _ := strings.Cut(strings.TrimSpace(out.String()), "\n")
	return strings.TrimSpace(line)
}

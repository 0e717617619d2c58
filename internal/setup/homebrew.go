package setup

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const homebrewInstallScriptURL = "https://raw.githubusercontent.com/Homebrew/install/HEAD/install.sh"

// HomebrewInstaller installs packages on macOS via Homebrew, bootstrapping
// brew itself from the upstream install script when it is missing.
type HomebrewInstaller struct {
	// ScriptURL overrides the Homebrew install script location.
	ScriptURL string
	// Client performs the script download. Defaults to a 5 minute client.
	Client *http.Client
}

var _ Installer = (*HomebrewInstaller)(nil)

// NewHomebrewInstaller returns a Homebrew installer with default settings.
func NewHomebrewInstaller() *HomebrewInstaller {
	return &HomebrewInstaller{
		ScriptURL: homebrewInstallScriptURL,
		Client:    &http.Client{Timeout: 5 * time.Minute},
	}
}

func (p *HomebrewInstaller) Name() string { return "homebrew" }

// EnsureSelf bootstraps Homebrew when brew is not on PATH.
func (p *HomebrewInstaller) EnsureSelf(ctx context.Context) error {
	if _, err := exec.LookPath("brew"); err == nil {
		return nil
	}

	script, err := p.fetchInstallScript(ctx)
	if err != nil {
		return fmt.Errorf("fetch homebrew install script: %w", err)
	}
	defer os.Remove(script)

	cmd := exec.CommandContext(ctx, "/bin/bash", script)
	cmd.Env = append(os.Environ(), "NONINTERACTIVE=1")
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("run homebrew install script: %w (%s)", err, lastLine(output))
	}

	if _, err := exec.LookPath("brew"); err != nil {
		return fmt.Errorf("homebrew install finished but brew is not on PATH: %w", err)
	}
	return nil
}

// Install installs a formula, skipping work when it is already installed.
func (p *HomebrewInstaller) Install(ctx context.Context, pkg string) error {
	checkCmd := exec.CommandContext(ctx, "brew", "list", "--formula", pkg)
	if err := checkCmd.Run(); err == nil {
		return nil
	}

	installCmd := exec.CommandContext(ctx, "brew", "install", pkg)
	if output, err := installCmd.CombinedOutput(); err != nil {
		return fmt.Errorf("brew install %s: %w (%s)", pkg, err, lastLine(output))
	}
	return nil
}

func (p *HomebrewInstaller) fetchInstallScript(ctx context.Context) (string, error) {
	url := p.ScriptURL
	if url == "" {
		url = homebrewInstallScriptURL
	}
	client := p.Client
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Minute}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp("", "homebrew-install-*.sh")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Chmod(tmp.Name(), 0o755); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return filepath.Clean(tmp.Name()), nil
}

func lastLine(output []byte) string {
	text := strings.TrimSpace(string(output))
	if text == "" {
		return "no output"
	}
	lines := strings.Split(text, "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

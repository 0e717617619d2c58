package setup

import (
	"context"
	"runtime"
)

// Installer represents the OS package installation tool.
type Installer interface {
	// Name identifies the installer for logs and errors.
	Name() string
	// EnsureSelf makes the package manager itself available, bootstrapping
	// it when missing.
	EnsureSelf(ctx context.Context) error
	// Install installs a package, skipping work when it is already present.
	Install(ctx context.Context, pkg string) error
}

// NewInstaller returns an Installer suited for the current system, or the
// noop installer when package handling is not required.
func NewInstaller() Installer {
	if runtime.GOOS == "darwin" {
		return NewHomebrewInstaller()
	}
	return new(NoopInstaller)
}

// NoopInstaller implements a no-op of the Installer interface for hosts
// where the necessary executables are already available.
type NoopInstaller struct{}

var _ Installer = (*NoopInstaller)(nil)

func (p *NoopInstaller) Name() string                              { return "none" }
func (p *NoopInstaller) EnsureSelf(context.Context) error          { return nil }
func (p *NoopInstaller) Install(_ context.Context, _ string) error { return nil }

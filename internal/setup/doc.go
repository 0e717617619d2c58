// Package setup provisions the host environment for the ads pipeline.
//
// The "adscribe setup" command runs a fixed sequence of steps: ensure the
// OS package manager and FFmpeg on macOS, create the runtime directory
// tree, install the managed yt-dlp binary into the tool cache, and probe
// the external tools for a version response. The sequence aborts on the
// first failing step so later steps never run against a broken
// environment; rerunning on a provisioned host is a cheap no-op.
//
// Package-manager handling sits behind the Installer interface. On macOS
// the Homebrew installer bootstraps brew itself when missing; every other
// OS gets the noop installer and is expected to already provide FFmpeg.
package setup

// Package daemon coordinates the long-running adscribe process: it owns
// the workflow manager, enforces single-instance execution with a file
// lock, and exposes queue operations to the IPC and HTTP surfaces.
package daemon

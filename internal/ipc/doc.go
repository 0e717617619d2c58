// Package ipc exposes daemon control over a unix socket using JSON-RPC.
// The CLI dials the socket to start and stop processing, enqueue page
// analyses, inspect the queue, and tail daemon logs.
package ipc

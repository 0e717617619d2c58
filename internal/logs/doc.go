// Package logs provides log file tailing with offset bookkeeping, shared
// by the IPC LogTail handler and the CLI show command. Negative offsets
// request the last N lines, and follow mode polls for new lines until the
// wait window or the caller's context expires.
package logs

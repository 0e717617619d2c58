// Package queue persists page analysis runs in SQLite and exposes helpers
// for driving their lifecycle.
//
// The Store manages database connections, schema initialization, stats
// queries, heartbeat tracking, stuck-item recovery, and status transitions
// that mirror the pipeline stages (scan, download, transcribe, analyze,
// report). Queue items capture page identity, scan results, analysis
// output, progress, and review flags so stages can coordinate without
// additional state.
//
// The database is transient storage for in-flight runs rather than a
// long-term archive. Schema changes bump the version in schema.go; users
// clear the database to adopt the new schema.
package queue

// Package notifications delivers workflow events via ntfy.
//
// The default implementation publishes to the topic configured in
// config.toml and gracefully degrades to a no-op when notifications are
// disabled. Event categories (scan, report, queue, errors) can be toggled
// individually so stage handlers can emit consistent messages without
// duplicating HTTP glue.
//
// Extend this package if you need alternative transports; all workflow code
// depends only on the simple Service interface.
package notifications

// Package reporter implements the final workflow stage that renders the
// ranked PDF report and announces it.
package reporter

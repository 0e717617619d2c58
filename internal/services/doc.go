// Package services holds cross-cutting helpers shared by the analysis
// pipeline stages and external tool integrations.
//
// It provides context annotation (queue item IDs, stage and lane names,
// correlation IDs) consumed by the logging layer, and the sentinel error
// markers plus Wrap that classify stage failures into queue statuses
// (failed vs review).
package services

// Package analyzer implements the workflow stage that groups and scores
// transcribed ads, producing the ranking the report renders.
package analyzer

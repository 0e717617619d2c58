// Package report renders the ranked ad script analysis as a PDF.
//
// The report opens with a cover page summarizing the page and the scan,
// then dedicates a section to each script in rank order so the
// longest-running, most-reused creatives appear first.
package report

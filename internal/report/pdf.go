package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"

	"adscribe/internal/analysis"
	"adscribe/internal/textutil"
)

// maxNameLength caps the sanitized page name used in report filenames.
const maxNameLength = 30

// Generate renders the analysis as a PDF under outputDir and returns the
// file path.
func Generate(result analysis.Result, outputDir string, now time.Time) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create reports dir: %w", err)
	}

	path := filepath.Join(outputDir, FileName(result.PageName, len(result.Scripts), now))

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Ad Script Analysis: %s", result.PageName), true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	writeCoverPage(pdf, tr, result, now)
	for _, script := range result.Scripts {
		writeScriptSection(pdf, tr, script)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write pdf report: %w", err)
	}
	return path, nil
}

// FileName builds the report file name from the page name, script count,
// and generation time.
func FileName(pageName string, scriptCount int, now time.Time) string {
	name := textutil.SanitizeToken(pageName)
	if len(name) > maxNameLength {
		name = name[:maxNameLength]
	}
	return fmt.Sprintf("%s_ad_scripts_%d_%s.pdf", name, scriptCount, now.Format("20060102_150405"))
}

func writeCoverPage(pdf *fpdf.Fpdf, tr func(string) string, result analysis.Result, now time.Time) {
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(20, 20, 20)
	pdf.CellFormat(0, 14, tr("Ad Script Analysis"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr(result.PageName), "", 1, "C", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(60, 60, 60)
	pdf.MultiCell(0, 6, tr("Video ad transcripts from the Facebook Ads Library, grouped into script families and ranked by how long each ad has been running and how often its script is reused."), "", "L", false)
	pdf.Ln(6)

	stats := []struct {
		label string
		value string
	}{
		{"Page ID", result.PageID},
		{"Ads scanned", fmt.Sprintf("%d", result.TotalAds)},
		{"Scripts transcribed", fmt.Sprintf("%d", len(result.Scripts))},
		{"Original scripts", fmt.Sprintf("%d", result.Originals)},
		{"Variants", fmt.Sprintf("%d", result.Variants)},
		{"Generated", now.Format("Jan 2, 2006 15:04 MST")},
	}
	pdf.SetTextColor(20, 20, 20)
	for _, stat := range stats {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(50, 7, tr(stat.label), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 7, tr(stat.value), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(100, 100, 100)
	libraryURL := fmt.Sprintf("https://www.facebook.com/ads/library/?view_all_page_id=%s", result.PageID)
	pdf.WriteLinkString(5, libraryURL, libraryURL)
	pdf.Ln(6)
}

func writeScriptSection(pdf *fpdf.Fpdf, tr func(string) string, script analysis.Script) {
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(20, 20, 20)
	pdf.CellFormat(0, 10, tr(fmt.Sprintf("#%d  Score %d", script.Rank, script.Score)), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(200, 80, 0)
	pdf.CellFormat(0, 6, tr(badge(script)), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(0, 6, tr(durationLine(script)), "", 1, "L", false, 0, "")
	if script.LibraryURL != "" {
		pdf.SetFont("Helvetica", "", 8)
		pdf.WriteLinkString(4, script.LibraryURL, script.LibraryURL)
		pdf.Ln(6)
	}
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(20, 20, 20)
	pdf.CellFormat(0, 7, "Transcript", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, tr(script.Transcript), "", "L", false)
	pdf.Ln(3)

	if script.Body != "" {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 7, "Ad Text", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr(script.Body), "", "L", false)
		pdf.Ln(3)
	}

	if script.CallToAction != "" {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(30, 7, "CTA", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 7, tr(script.CallToAction), "", 1, "L", false, 0, "")
	}
}

// badge labels how a script relates to its family.
func badge(script analysis.Script) string {
	switch {
	case script.IsOriginal && script.VariantCount == 1:
		return "ORIGINAL  (1 variant)"
	case script.IsOriginal && script.VariantCount > 1:
		return fmt.Sprintf("ORIGINAL  (%d variants)", script.VariantCount)
	case script.IsOriginal:
		return "UNIQUE"
	default:
		return fmt.Sprintf("VARIANT  (%.0f%% match)", script.Similarity*100)
	}
}

func durationLine(script analysis.Script) string {
	if script.DurationDays < 0 {
		return "Start date unknown"
	}
	if script.StartedDate != "" {
		return fmt.Sprintf("Running %d days (since %s)", script.DurationDays, script.StartedDate)
	}
	return fmt.Sprintf("Running %d days", script.DurationDays)
}

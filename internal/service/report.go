package service

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

// ReportService renders AI responses as downloadable PDF reports.
type ReportService struct{}

// NewReportService creates a new ReportService
func NewReportService() *ReportService {
	return &ReportService{}
}

// BuildReport renders the content into a styled PDF. Lines starting with
// "# " and "## " become headings, "**...**" lines render bold, and blank
// lines become vertical spacing.
func (s *ReportService) BuildReport(title, content string) ([]byte, error) {
	if title == "" {
		title = "AI Analysis Report"
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(25, 25, 25)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// Title
	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(0x25, 0x63, 0xEB)
	pdf.MultiCell(0, 12, tr(title), "", "L", false)
	pdf.Ln(4)

	// Timestamp
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(0x37, 0x41, 0x51)
	timestamp := time.Now().Format("January 2, 2006 at 3:04 PM")
	pdf.MultiCell(0, 6, tr(fmt.Sprintf("Generated: %s", timestamp)), "", "L", false)
	pdf.Ln(8)

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			pdf.Ln(3)
			continue
		}

		switch {
		case strings.HasPrefix(line, "## "):
			pdf.SetFont("Helvetica", "B", 16)
			pdf.SetTextColor(0x1F, 0x29, 0x37)
			pdf.MultiCell(0, 8, tr(line[3:]), "", "L", false)
			pdf.Ln(2)
		case strings.HasPrefix(line, "# "):
			pdf.SetFont("Helvetica", "B", 20)
			pdf.SetTextColor(0x25, 0x63, 0xEB)
			pdf.MultiCell(0, 10, tr(line[2:]), "", "L", false)
			pdf.Ln(2)
		case strings.HasPrefix(line, "**") && strings.HasSuffix(line, "**") && len(line) > 4:
			pdf.SetFont("Helvetica", "B", 11)
			pdf.SetTextColor(0x37, 0x41, 0x51)
			pdf.MultiCell(0, 6, tr(line[2:len(line)-2]), "", "L", false)
		default:
			pdf.SetFont("Helvetica", "", 11)
			pdf.SetTextColor(0x37, 0x41, 0x51)
			pdf.MultiCell(0, 6, tr(line), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// ReportFilename returns a timestamped download name.
func (s *ReportService) ReportFilename(at time.Time) string {
	return fmt.Sprintf("AI_Analysis_%s.pdf", at.Format("20060102_150405"))
}

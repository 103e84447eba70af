package reports

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"uhakiki/verification-portal/verification-backend/internal/verification"
)

// PDFOptions configures report generation
type PDFOptions struct {
	Title       string
	FontFamily  string
	FontSize    float64
	TitleSize   float64
	DateFormat  string
	HeaderColor PDFColor
}

// PDFColor represents an RGB color
type PDFColor struct {
	R int
	G int
	B int
}

// DefaultPDFOptions returns default report options
func DefaultPDFOptions() PDFOptions {
	return PDFOptions{
		Title:       "Document Verification Report",
		FontFamily:  "Arial",
		FontSize:    10,
		TitleSize:   16,
		DateFormat:  "2006-01-02 15:04",
		HeaderColor: PDFColor{R: 30, G: 64, B: 175},
	}
}

// PDFReporter renders a single verification record as a PDF report.
type PDFReporter struct {
	options PDFOptions
}

func NewPDFReporter(options PDFOptions) *PDFReporter {
	return &PDFReporter{options: options}
}

// GenerateRecordReport produces the verification certificate for one record.
func (r *PDFReporter) GenerateRecordReport(record *verification.VerificationRecord) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 20, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	r.addTitle(pdf)
	r.addGeneratedLine(pdf)
	pdf.Ln(6)

	r.addVerdictBanner(pdf, record)
	pdf.Ln(8)

	r.addSection(pdf, "Document", [][2]string{
		{"Document Name", record.DocumentName},
		{"Document Type", string(record.DocumentType)},
		{"Submitted", record.CreatedAt.Format(r.options.DateFormat)},
		{"Reference", record.ID.String()},
	})

	r.addSection(pdf, "Candidate", [][2]string{
		{"Student Name", deref(record.StudentName)},
		{"Index Number", deref(record.IndexNumber)},
		{"Institution", deref(record.Institution)},
	})

	assessment := [][2]string{
		{"Risk Score", fmt.Sprintf("%d / 100", record.RiskScore)},
		{"OCR Confidence", fmt.Sprintf("%.0f%%", record.OCRConfidence*100)},
		{"Validation Passed", yesNo(record.ValidationPassed)},
	}
	if record.BiometricScore != nil {
		assessment = append(assessment, [2]string{"Biometric Match", fmt.Sprintf("%d%%", *record.BiometricScore)})
	}
	if record.FraudType != nil {
		assessment = append(assessment, [2]string{"Fraud Classification", *record.FraudType})
	}
	r.addSection(pdf, "Assessment", assessment)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf report: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *PDFReporter) addTitle(pdf *gofpdf.Fpdf) {
	pdf.SetFont(r.options.FontFamily, "B", r.options.TitleSize)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 10, r.options.Title, "", 1, "C", false, 0, "")
}

func (r *PDFReporter) addGeneratedLine(pdf *gofpdf.Fpdf) {
	pdf.SetFont(r.options.FontFamily, "", r.options.FontSize-1)
	pdf.SetTextColor(128, 128, 128)
	line := fmt.Sprintf("Generated: %s", time.Now().UTC().Format(r.options.DateFormat))
	pdf.CellFormat(0, 6, line, "", 1, "R", false, 0, "")
}

func (r *PDFReporter) addVerdictBanner(pdf *gofpdf.Fpdf, record *verification.VerificationRecord) {
	pdf.SetFont(r.options.FontFamily, "B", r.options.FontSize+3)
	switch record.Verdict {
	case "verified":
		pdf.SetFillColor(22, 101, 52)
	case "rejected":
		pdf.SetFillColor(153, 27, 27)
	default:
		pdf.SetFillColor(161, 98, 7)
	}
	pdf.SetTextColor(255, 255, 255)
	banner := fmt.Sprintf("Verdict: %s  (risk %d/100)", record.Verdict, record.RiskScore)
	pdf.CellFormat(0, 12, banner, "", 1, "C", true, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func (r *PDFReporter) addSection(pdf *gofpdf.Fpdf, title string, items [][2]string) {
	pdf.Ln(4)
	pdf.SetFont(r.options.FontFamily, "B", r.options.FontSize+2)
	pdf.SetFillColor(r.options.HeaderColor.R, r.options.HeaderColor.G, r.options.HeaderColor.B)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(0, 8, title, "", 1, "L", true, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(1)

	for _, item := range items {
		pdf.SetFont(r.options.FontFamily, "B", r.options.FontSize)
		pdf.CellFormat(55, 6, item[0]+":", "", 0, "L", false, 0, "")
		pdf.SetFont(r.options.FontFamily, "", r.options.FontSize)
		pdf.CellFormat(0, 6, item[1], "", 1, "L", false, 0, "")
	}
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

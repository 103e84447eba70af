package reports

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"uhakiki/verification-portal/verification-backend/internal/verification"
)

var exportColumns = []string{
	"ID", "Document Name", "Document Type", "Student Name", "Index Number",
	"Institution", "Verdict", "Risk Score", "OCR Confidence", "Validation Passed",
	"Biometric Score", "Fraud Type", "Created At",
}

// ExcelExporter writes verification records to a spreadsheet.
type ExcelExporter struct {
	sheetName string
}

func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{sheetName: "Verifications"}
}

// ExportRecords renders the records as an xlsx workbook with a styled,
// frozen header row.
func (e *ExcelExporter) ExportRecords(records []verification.VerificationRecord) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	file.SetSheetName("Sheet1", e.sheetName)

	headerStyle, err := file.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"1E40AF"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, col := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		file.SetCellValue(e.sheetName, cell, col)
		file.SetCellStyle(e.sheetName, cell, cell, headerStyle)
	}

	file.SetPanes(e.sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	for rowIdx, record := range records {
		rowNum := rowIdx + 2
		values := []interface{}{
			record.ID.String(),
			record.DocumentName,
			string(record.DocumentType),
			orDash(record.StudentName),
			orDash(record.IndexNumber),
			orDash(record.Institution),
			string(record.Verdict),
			record.RiskScore,
			record.OCRConfidence,
			record.ValidationPassed,
			intOrDash(record.BiometricScore),
			orDash(record.FraudType),
			record.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for colIdx, val := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowNum)
			if err := file.SetCellValue(e.sheetName, cell, val); err != nil {
				return nil, fmt.Errorf("failed to set cell value: %w", err)
			}
		}
	}

	lastCell, _ := excelize.CoordinatesToCellName(len(exportColumns), len(records)+1)
	file.AutoFilter(e.sheetName, "A1:"+lastCell, nil)

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func orDash(s *string) interface{} {
	if s == nil {
		return "-"
	}
	return *s
}

func intOrDash(n *int) interface{} {
	if n == nil {
		return "-"
	}
	return *n
}

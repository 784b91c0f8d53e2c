// Package export renders stored report analyses as downloadable files.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"testreport/internal/domain"
)

const resultsSheet = "Test Sonuçları"

var resultHeaders = []string{"#", "Test Adı", "Durum", "Hata Mesajı", "Hata Nedeni", "Önerilen Çözüm", "AI Sağlayıcı"}

// WriteXLSX renders a report and its test results as an xlsx workbook.
func WriteXLSX(report *domain.Report, results []domain.TestResult) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), resultsSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := writeReportHeader(f, report); err != nil {
		return nil, err
	}

	headerRow := 8
	for col, h := range resultHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, headerRow)
		if err != nil {
			return nil, fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(resultsSheet, cell, h); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E5E7EB"}},
	})
	if err == nil {
		start, _ := excelize.CoordinatesToCellName(1, headerRow)
		end, _ := excelize.CoordinatesToCellName(len(resultHeaders), headerRow)
		_ = f.SetCellStyle(resultsSheet, start, end, headerStyle)
	}

	for i, r := range results {
		row := headerRow + 1 + i
		values := []interface{}{
			r.Position + 1,
			r.TestName,
			string(r.Status),
			r.ErrorMessage,
			r.FailureReason,
			r.SuggestedFix,
			r.AIProvider,
		}
		for col, v := range values {
			cell, cerr := excelize.CoordinatesToCellName(col+1, row)
			if cerr != nil {
				return nil, fmt.Errorf("result cell: %w", cerr)
			}
			if err := f.SetCellValue(resultsSheet, cell, v); err != nil {
				return nil, fmt.Errorf("write result row %d: %w", i, err)
			}
		}
	}

	widths := []float64{6, 40, 12, 45, 45, 45, 14}
	for col, w := range widths {
		name, nerr := excelize.ColumnNumberToName(col + 1)
		if nerr != nil {
			continue
		}
		_ = f.SetColWidth(resultsSheet, name, name, w)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeReportHeader(f *excelize.File, report *domain.Report) error {
	rows := [][2]interface{}{
		{"Dosya", report.Filename},
		{"Rapor Tipi", report.ReportType.Label()},
		{"Dil", string(report.Language)},
		{"Toplam Test", report.TotalTests},
		{"Başarılı", report.PassedTests},
		{"Başarısız", report.FailedTests},
	}
	for i, pair := range rows {
		labelCell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("label cell: %w", err)
		}
		valueCell, err := excelize.CoordinatesToCellName(2, i+1)
		if err != nil {
			return fmt.Errorf("value cell: %w", err)
		}
		if err := f.SetCellValue(resultsSheet, labelCell, pair[0]); err != nil {
			return fmt.Errorf("write label: %w", err)
		}
		if err := f.SetCellValue(resultsSheet, valueCell, pair[1]); err != nil {
			return fmt.Errorf("write value: %w", err)
		}
	}
	return nil
}

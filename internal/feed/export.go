package feed

import (
	"fmt"
	"io"

	"github.com/Nasibullahbahir/hsmis-project-sub000/internal/config"
	"github.com/xuri/excelize/v2"
)

// ExportXLSX writes entries as a single-sheet workbook. headers replaces the
// English column titles when it has one title per column. Undated rows show
// config.DisplayNotAvailable in their date columns.
func ExportXLSX(w io.Writer, entries []Entry, headers []string) error {
	if len(headers) != len(config.ReportHeaders) {
		headers = config.ReportHeaders
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := config.ReportSheetName
	if err := f.SetSheetName(config.ReportDefaultTab, sheet); err != nil {
		return fmt.Errorf("%s: %w", config.ErrReportEncode, err)
	}

	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("%s: %w", config.ErrReportEncode, err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrReportEncode, err)
	}
	if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
		return fmt.Errorf("%s: %w", config.ErrReportEncode, err)
	}

	for i, e := range entries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("%s: %w", config.ErrReportEncode, err)
		}
		row := []interface{}{e.Title, e.Kind, orNA(e.Canonical), orNA(e.Shamsi), orNA(e.Hijri)}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s: %w", config.ErrReportEncode, err)
		}
	}

	if err := f.SetColWidth(sheet, config.ReportColFirst, config.ReportColLast, config.ReportColWidth); err != nil {
		return fmt.Errorf("%s: %w", config.ErrReportEncode, err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("%s: %w", config.ErrReportEncode, err)
	}
	return nil
}

func orNA(s string) string {
	if s == "" {
		return config.DisplayNotAvailable
	}
	return s
}

package report

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/omarshaarawi/benchwarmer/internal/models"
	"github.com/xuri/excelize/v2"
)

const maxSheetName = 31

// WriteWorkbook writes every report table as a sheet of one XLSX file.
func WriteWorkbook(path string, s *models.SeasonAudit) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}

	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	used := make(map[string]bool)
	for i, table := range Tables(s) {
		sheet := sheetName(table.Name, used)
		idx, err := f.NewSheet(sheet)
		if err != nil {
			return fmt.Errorf("adding sheet %s: %w", sheet, err)
		}
		if i == 0 {
			f.SetActiveSheet(idx)
		}

		header := make([]any, len(table.Header))
		for j, h := range table.Header {
			header[j] = h
		}
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			return fmt.Errorf("writing sheet %s: %w", sheet, err)
		}

		for j, row := range table.Rows {
			cell, err := excelize.CoordinatesToCellName(1, j+2)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return fmt.Errorf("writing sheet %s: %w", sheet, err)
			}
		}
	}

	if err := f.DeleteSheet(defaultSheet); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}

	slog.Info("Wrote workbook", "path", path)
	return nil
}

// sheetName fits name into Excel's sheet name limit, numbering any names
// that collide once truncated.
func sheetName(name string, used map[string]bool) string {
	base := []rune(name)
	if len(base) > maxSheetName {
		base = base[:maxSheetName]
	}
	candidate := string(base)
	for n := 2; used[candidate]; n++ {
		suffix := fmt.Sprintf("~%d", n)
		candidate = string(base[:min(len(base), maxSheetName-len(suffix))]) + suffix
	}
	used[candidate] = true
	return candidate
}

package report

import (
	"fmt"
	"io"

	"gradebook/internal/grades"

	"github.com/xuri/excelize/v2"
)

const SheetName = "ECTS"

// WriteECTS renders the grade distribution as an xlsx workbook: one row per
// course with a column per band and a total.
func WriteECTS(w io.Writer, dists []grades.Distribution) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return err
	}

	header := []interface{}{"Course", "Semester"}
	for _, g := range grades.Order {
		header = append(header, string(g))
	}
	header = append(header, "Total")
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, d := range dists {
		row := []interface{}{d.Title, d.Semester}
		for _, g := range grades.Order {
			row = append(row, d.Count(g))
		}
		row = append(row, d.Total)

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	_, err := f.WriteTo(w)
	return err
}

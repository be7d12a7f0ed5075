package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"indicadores/pkg/contracts/domain"
)

const detailSheet = "Dados detalhados"

// XLSXWriter renders tables into Excel workbooks
type XLSXWriter struct{}

// NewXLSXWriter creates a new XLSX writer
func NewXLSXWriter() *XLSXWriter {
	return &XLSXWriter{}
}

// WriteDetail writes the detail table as a single-sheet workbook. Numeric
// cells stay numeric; missing values are left blank.
func (x *XLSXWriter) WriteDetail(out io.Writer, rows []domain.DetailRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), detailSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(detailSheet)
	if err != nil {
		return fmt.Errorf("failed to create stream writer: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	days, err := f.NewStyle(&excelize.Style{NumFmt: 1}) // 0
	if err != nil {
		return err
	}
	fixed, err := f.NewStyle(&excelize.Style{NumFmt: 2}) // 0.00
	if err != nil {
		return err
	}

	header := make([]interface{}, len(DetailHeaders))
	for i, h := range DetailHeaders {
		header[i] = excelize.Cell{StyleID: headerStyle, Value: h}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	num := func(v domain.NullFloat, style int) interface{} {
		if x, ok := v.Get(); ok {
			return excelize.Cell{StyleID: style, Value: x}
		}
		return nil
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			r.Automation,
			r.Developer,
			num(r.DevelopmentDays, days),
			num(r.ManualHours, fixed),
			num(r.RobotHours, fixed),
			num(r.HoursSaved, fixed),
			num(r.SavingsPercent, fixed),
			r.ManualHMS,
			r.RobotHMS,
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush sheet: %w", err)
	}

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

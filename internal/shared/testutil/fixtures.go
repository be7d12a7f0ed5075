package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"indicadores/internal/dataset"
)

// Header is the canonical header row of the metrics spreadsheet.
var Header = []string{
	dataset.ColumnAutomation,
	dataset.ColumnDeveloper,
	dataset.ColumnDevelopmentDays,
	dataset.ColumnHoursSaved,
	dataset.ColumnSavingsPercent,
}

// SampleRows are three automations by two developers:
//
//	A  Ana  10 days   8 h  20%
//	B  Ana   5 days   4 h  40%
//	C  Bea   8 days  10 h  25%
var SampleRows = [][]string{
	{"A", "Ana", "10", "8", "20"},
	{"B", "Ana", "5", "4", "40"},
	{"C", "Bea", "8", "10", "25"},
}

// CSV renders the header followed by rows.
func CSV(rows ...[]string) string {
	var b strings.Builder
	b.WriteString(strings.Join(Header, ","))
	b.WriteByte('\n')
	for _, r := range rows {
		b.WriteString(strings.Join(r, ","))
		b.WriteByte('\n')
	}
	return b.String()
}

// WriteCSV saves rows as a CSV file in a fresh temp dir and returns its path.
func WriteCSV(t testing.TB, rows ...[]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dados.csv")
	require.NoError(t, os.WriteFile(path, []byte(CSV(rows...)), 0o644))
	return path
}

// WriteWorkbook saves rows into the first sheet of a new workbook.
func WriteWorkbook(t testing.TB, rows ...[]string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	all := append([][]string{Header}, rows...)
	for i, row := range all {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &cells))
	}

	path := filepath.Join(t.TempDir(), "indicadores.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

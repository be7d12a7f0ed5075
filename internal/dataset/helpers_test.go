package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var canonicalHeader = []interface{}{
	ColumnAutomation, ColumnDeveloper, ColumnDevelopmentDays, ColumnHoursSaved, ColumnSavingsPercent,
}

// writeWorkbook saves rows into the first sheet of a new workbook.
func writeWorkbook(t *testing.T, name string, rows ...[]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, f.SaveAs(path))
	return path
}

func writeFile(t *testing.T, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644))
	return path
}

func exampleRows() [][]interface{} {
	return [][]interface{}{
		canonicalHeader,
		{"A", "Ana", 10, 8, 20},
		{"B", "Ana", 5, 4, 40},
		{"C", "Bea", 8, 10, 25},
	}
}

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"indicadores/internal/indicators"
	"indicadores/internal/shared/testutil"
)

func writeData(t *testing.T) string {
	return testutil.WriteCSV(t, testutil.SampleRows...)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSummary_AllDevelopers(t *testing.T) {
	out, err := execute(t, "summary", "--data", writeData(t))
	require.NoError(t, err)

	assert.Contains(t, out, indicators.Title)
	assert.Contains(t, out, "Desenvolvedores: todos")
	assert.Contains(t, out, "7.67 dias")
	assert.Contains(t, out, "28.33%")
	assert.Contains(t, out, "22.00 h")
	assert.Contains(t, out, "Bea")
}

func TestSummary_Selection(t *testing.T) {
	out, err := execute(t, "summary", "--data", writeData(t), "-d", "Bea")
	require.NoError(t, err)

	assert.Contains(t, out, "Desenvolvedores: Bea")
	assert.Contains(t, out, "10.00 h")
	assert.NotContains(t, out, "Ana")
}

func TestSummary_MissingFile(t *testing.T) {
	_, err := execute(t, "summary", "--data", filepath.Join(t.TempDir(), "nada.xlsx"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nada.xlsx")
}

func TestExport_CSV(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out", "detalhe.csv")

	out, err := execute(t, "export", "--data", writeData(t), "-o", target, "-d", "Ana")
	require.NoError(t, err)
	assert.Contains(t, out, "2 linhas exportadas")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(string(data), "\ufeff")), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "B,Ana"), lines[1])
}

func TestExport_XLSX(t *testing.T) {
	target := filepath.Join(t.TempDir(), "detalhe.xlsx")

	_, err := execute(t, "export", "--data", writeData(t), "--output", target)
	require.NoError(t, err)

	f, err := excelize.OpenFile(target)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Dados detalhados")
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}

func TestExport_UnknownExtension(t *testing.T) {
	_, err := execute(t, "export", "--data", writeData(t), "-o", filepath.Join(t.TempDir(), "x.pdf"))
	assert.Error(t, err)
}

func TestVersionFlag(t *testing.T) {
	out, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "Indicadores")
}

func TestSummary_Workbook(t *testing.T) {
	out, err := execute(t, "summary", "--data", testutil.WriteWorkbook(t, testutil.SampleRows...))
	require.NoError(t, err)
	assert.Contains(t, out, "22.00 h")
}

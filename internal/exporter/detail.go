package exporter

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"indicadores/internal/indicators"
	"indicadores/pkg/contracts/domain"
)

// DetailFileBase is the download name of the detail table, without extension.
const DetailFileBase = "dados_detalhados"

// DetailHeaders are the column labels of the exported detail table.
var DetailHeaders = []string{
	"Automação",
	"Desenvolvedor",
	"Dias Desenvolvimento",
	"Horas Manuais",
	"Horas Robô",
	"Horas Economizadas",
	"Economia (%)",
	"Tempo Manual",
	"Tempo Robô",
}

// DetailRecords formats detail rows as CSV records.
func DetailRecords(rows []domain.DetailRow) [][]string {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			r.Automation,
			r.Developer,
			indicators.FormatDays(r.DevelopmentDays),
			indicators.FormatHours(r.ManualHours),
			indicators.FormatHours(r.RobotHours),
			indicators.FormatHours(r.HoursSaved),
			indicators.FormatPercent(r.SavingsPercent),
			r.ManualHMS,
			r.RobotHMS,
		})
	}
	return records
}

// DetailExporter writes the detail table in any supported format
type DetailExporter struct {
	csv    *CSVWriter
	xlsx   *XLSXWriter
	logger *slog.Logger
}

// NewDetailExporter creates an exporter for the detail table
func NewDetailExporter(logger *slog.Logger) *DetailExporter {
	logger = logger.With(slog.String("component", "exporter"))
	return &DetailExporter{
		csv:    NewCSVWriter(logger),
		xlsx:   NewXLSXWriter(),
		logger: logger,
	}
}

// Export streams rows to out in the given format
func (e *DetailExporter) Export(out io.Writer, format Format, rows []domain.DetailRow) error {
	switch format {
	case FormatCSV:
		return e.csv.Write(out, WriteOptions{
			Headers:   DetailHeaders,
			Records:   DetailRecords(rows),
			BOMPrefix: true,
		})
	case FormatXLSX:
		return e.xlsx.WriteDetail(out, rows)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// ExportFile writes rows to filePath. The format comes from the extension.
func (e *DetailExporter) ExportFile(filePath string, rows []domain.DetailRow) error {
	format, err := ParseFormat(filepath.Ext(filePath))
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := e.Export(file, format, rows); err != nil {
		file.Close()
		return err
	}

	e.logger.Info("Detail table exported",
		slog.String("file_path", filePath),
		slog.String("format", string(format)),
		slog.Int("rows", len(rows)))
	return file.Close()
}

package dataset

// Canonical column labels of the input spreadsheet.
const (
	ColumnAutomation      = "Automação"
	ColumnDeveloper       = "Desenvolvedor"
	ColumnDevelopmentDays = "Dias Desenvolvimento"
	ColumnHoursSaved      = "Horas Economizadas"
	ColumnSavingsPercent  = "Economia (%)"
)

// ColumnMap tells the normalizer which header label holds each field.
type ColumnMap struct {
	Automation      string
	Developer       string
	DevelopmentDays string
	HoursSaved      string
	SavingsPercent  string
}

// DefaultColumns returns the identity mapping over the canonical labels.
func DefaultColumns() ColumnMap {
	return ColumnMap{
		Automation:      ColumnAutomation,
		Developer:       ColumnDeveloper,
		DevelopmentDays: ColumnDevelopmentDays,
		HoursSaved:      ColumnHoursSaved,
		SavingsPercent:  ColumnSavingsPercent,
	}
}

// WithDefaults fills blank labels from DefaultColumns.
func (m ColumnMap) WithDefaults() ColumnMap {
	d := DefaultColumns()
	if m.Automation == "" {
		m.Automation = d.Automation
	}
	if m.Developer == "" {
		m.Developer = d.Developer
	}
	if m.DevelopmentDays == "" {
		m.DevelopmentDays = d.DevelopmentDays
	}
	if m.HoursSaved == "" {
		m.HoursSaved = d.HoursSaved
	}
	if m.SavingsPercent == "" {
		m.SavingsPercent = d.SavingsPercent
	}
	return m
}

// Labels returns the mapped labels in canonical column order.
func (m ColumnMap) Labels() []string {
	return []string{m.Automation, m.Developer, m.DevelopmentDays, m.HoursSaved, m.SavingsPercent}
}

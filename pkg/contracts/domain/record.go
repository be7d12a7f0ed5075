package domain

// Record is one row of the automation metrics spreadsheet.
//
// Text fields use the empty string for a missing cell. Numeric fields are
// finite-or-missing once the row has passed normalization.
type Record struct {
	// Automation identifies the automation project. Not guaranteed unique.
	Automation string `json:"automation"`

	// Developer who built the automation. Empty when the cell was blank.
	Developer string `json:"developer"`

	// DevelopmentDays is the number of days spent building the automation.
	DevelopmentDays NullFloat `json:"development_days"`

	// HoursSaved is the absolute execution time saved, in hours.
	HoursSaved NullFloat `json:"hours_saved"`

	// SavingsPercent is the reduction in execution time on a 0-100 scale.
	SavingsPercent NullFloat `json:"savings_percent"`
}

// HasDeveloper reports whether the developer cell was filled.
func (r Record) HasDeveloper() bool {
	return r.Developer != ""
}

// HasAutomation reports whether the automation cell was filled.
func (r Record) HasAutomation() bool {
	return r.Automation != ""
}

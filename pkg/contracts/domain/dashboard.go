package domain

import "time"

// KPIs are the four headline indicators computed over the filtered view.
type KPIs struct {
	// MeanDays is the mean development days, missing cells ignored.
	MeanDays NullFloat `json:"mean_days"`

	// MeanSavingsPercent is mean(savings_percent)/100, a fraction of 1.
	// Consumers multiply by 100 for percentage display.
	MeanSavingsPercent NullFloat `json:"mean_savings_percent"`

	// TotalHoursSaved is the sum of hours saved, missing cells ignored.
	TotalHoursSaved float64 `json:"total_hours_saved"`

	// AutomationCount is the number of distinct non-missing automations.
	AutomationCount int `json:"automation_count"`
}

// FormattedKPIs carries the display strings for the KPI cards.
type FormattedKPIs struct {
	MeanDays           string `json:"mean_days"`
	MeanSavingsPercent string `json:"mean_savings_percent"`
	TotalHoursSaved    string `json:"total_hours_saved"`
	AutomationCount    string `json:"automation_count"`
}

// DeveloperValue is one bar of a per-developer chart.
type DeveloperValue struct {
	Developer string    `json:"developer"`
	Value     NullFloat `json:"value"`
}

// AutomationValue is one bar of the per-automation savings chart.
type AutomationValue struct {
	Automation     string    `json:"automation"`
	SavingsPercent NullFloat `json:"savings_percent"`
}

// DerivedHours holds the back-computed execution times of a single record.
type DerivedHours struct {
	ManualHours NullFloat `json:"manual_hours"`
	RobotHours  NullFloat `json:"robot_hours"`
}

// DetailRow is one row of the detailed data table.
type DetailRow struct {
	Automation      string    `json:"automation"`
	Developer       string    `json:"developer"`
	DevelopmentDays NullFloat `json:"development_days"`
	ManualHours     NullFloat `json:"manual_hours"`
	RobotHours      NullFloat `json:"robot_hours"`
	HoursSaved      NullFloat `json:"hours_saved"`
	SavingsPercent  NullFloat `json:"savings_percent"`

	// ManualHMS and RobotHMS render the derived hours as H:MM:SS.
	ManualHMS string `json:"manual_hms"`
	RobotHMS  string `json:"robot_hms"`
}

// Chart describes how a front end should label a table when drawing it.
type Chart struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	XField   string `json:"x_field"`
	YField   string `json:"y_field"`
	Suffix   string `json:"suffix,omitempty"`
	FileName string `json:"file_name"`
}

// DeveloperSeries is a per-developer table with its chart metadata.
type DeveloperSeries struct {
	Chart Chart            `json:"chart"`
	Rows  []DeveloperValue `json:"rows"`
}

// AutomationSeries is the per-automation table with its chart metadata.
type AutomationSeries struct {
	Chart Chart             `json:"chart"`
	Rows  []AutomationValue `json:"rows"`
}

// DatasetInfo describes the snapshot a dashboard was computed from.
type DatasetInfo struct {
	Source           string    `json:"source"`
	LoadedAt         time.Time `json:"loaded_at"`
	Rows             int       `json:"rows"`
	CoercionFailures int       `json:"coercion_failures"`
}

// Dashboard is everything the presentation layer needs for one render.
type Dashboard struct {
	Title                  string           `json:"title"`
	Selection              []string         `json:"selection"`
	Developers             []string         `json:"developers"`
	KPIs                   KPIs             `json:"kpis"`
	Formatted              FormattedKPIs    `json:"formatted"`
	MeanDaysByDeveloper    DeveloperSeries  `json:"mean_days_by_developer"`
	SavingsByAutomation    AutomationSeries `json:"savings_by_automation"`
	MeanSavingsByDeveloper DeveloperSeries  `json:"mean_savings_by_developer"`
	Detail                 []DetailRow      `json:"detail"`
	Dataset                DatasetInfo      `json:"dataset"`
	GeneratedAt            time.Time        `json:"generated_at"`
}

package indicators

import (
	"fmt"
	"math"
	"slices"

	"indicadores/internal/dataset"
	"indicadores/pkg/contracts/domain"
)

// Derive back-computes the manual and robot execution hours of r from the
// hours saved and the savings percentage.
//
//	manual = hours_saved / (savings_percent / 100)
//	robot  = max(manual - hours_saved, 0)
//
// Both are missing when either input is missing or the percentage is zero.
func Derive(r domain.Record) domain.DerivedHours {
	hours, okHours := r.HoursSaved.Get()
	pct, okPct := r.SavingsPercent.Get()
	if !okHours || !okPct || pct == 0 {
		return domain.DerivedHours{}
	}

	manual := domain.Some(hours / (pct / 100))
	m, ok := manual.Get()
	if !ok {
		return domain.DerivedHours{}
	}

	return domain.DerivedHours{
		ManualHours: manual,
		RobotHours:  domain.Some(math.Max(m-hours, 0)),
	}
}

// DetailTable builds the detailed data table, sorted by savings percentage
// with the largest first and missing values last.
func DetailTable(ds *dataset.Dataset) []domain.DetailRow {
	rows := make([]domain.DetailRow, 0, ds.Len())
	for _, r := range ds.All {
		d := Derive(r)
		rows = append(rows, domain.DetailRow{
			Automation:      r.Automation,
			Developer:       r.Developer,
			DevelopmentDays: r.DevelopmentDays,
			ManualHours:     Round(d.ManualHours, 4),
			RobotHours:      Round(d.RobotHours, 4),
			HoursSaved:      r.HoursSaved,
			SavingsPercent:  Round(r.SavingsPercent, 2),
			ManualHMS:       HoursToHMS(d.ManualHours),
			RobotHMS:        HoursToHMS(d.RobotHours),
		})
	}

	slices.SortStableFunc(rows, func(a, b domain.DetailRow) int {
		return descending(a.SavingsPercent, b.SavingsPercent)
	})
	return rows
}

// HoursToHMS renders fractional hours as H:MM:SS, truncating to whole
// seconds. Hours are not wrapped at 24. Missing renders as "".
func HoursToHMS(v domain.NullFloat) string {
	h, ok := v.Get()
	if !ok {
		return ""
	}

	total := math.Floor(h * 3600)
	sign := ""
	if total < 0 {
		sign = "-"
		total = -total
	}

	secs := int64(total)
	return fmt.Sprintf("%s%d:%02d:%02d", sign, secs/3600, secs/60%60, secs%60)
}

package indicators

import (
	"slices"

	"indicadores/internal/dataset"
	"indicadores/pkg/contracts/domain"
)

// Summarize computes the KPI block over ds.
func Summarize(ds *dataset.Dataset) domain.KPIs {
	var (
		days, hours, savings []domain.NullFloat
		automations          = make(map[string]struct{})
	)
	for _, r := range ds.All {
		days = append(days, r.DevelopmentDays)
		hours = append(hours, r.HoursSaved)
		savings = append(savings, r.SavingsPercent)
		if r.HasAutomation() {
			automations[r.Automation] = struct{}{}
		}
	}

	meanSavings := mean(savings)
	if v, ok := meanSavings.Get(); ok {
		meanSavings = domain.Some(v / 100)
	}

	return domain.KPIs{
		MeanDays:           mean(days),
		MeanSavingsPercent: meanSavings,
		TotalHoursSaved:    sum(hours),
		AutomationCount:    len(automations),
	}
}

// MeanDaysByDeveloper averages development days per developer, largest first.
func MeanDaysByDeveloper(ds *dataset.Dataset) domain.DeveloperSeries {
	return domain.DeveloperSeries{
		Chart: ChartMeanDaysByDeveloper,
		Rows:  meanByDeveloper(ds, func(r domain.Record) domain.NullFloat { return r.DevelopmentDays }),
	}
}

// MeanSavingsByDeveloper averages the savings percentage per developer,
// largest first. Values stay on the 0-100 scale.
func MeanSavingsByDeveloper(ds *dataset.Dataset) domain.DeveloperSeries {
	return domain.DeveloperSeries{
		Chart: ChartMeanSavingsByDeveloper,
		Rows:  meanByDeveloper(ds, func(r domain.Record) domain.NullFloat { return r.SavingsPercent }),
	}
}

// SavingsByAutomation lists every record's savings percentage, largest
// first. Duplicate automation names are kept as separate rows.
func SavingsByAutomation(ds *dataset.Dataset) domain.AutomationSeries {
	rows := make([]domain.AutomationValue, 0, ds.Len())
	for _, r := range ds.All {
		rows = append(rows, domain.AutomationValue{Automation: r.Automation, SavingsPercent: r.SavingsPercent})
	}
	slices.SortStableFunc(rows, func(a, b domain.AutomationValue) int {
		return descending(a.SavingsPercent, b.SavingsPercent)
	})

	return domain.AutomationSeries{Chart: ChartSavingsByAutomation, Rows: rows}
}

// meanByDeveloper groups in first-appearance order, skipping records with no
// developer, then sorts by the group mean.
func meanByDeveloper(ds *dataset.Dataset, field func(domain.Record) domain.NullFloat) []domain.DeveloperValue {
	var order []string
	groups := make(map[string][]domain.NullFloat)
	for _, r := range ds.All {
		if !r.HasDeveloper() {
			continue
		}
		if _, seen := groups[r.Developer]; !seen {
			order = append(order, r.Developer)
		}
		groups[r.Developer] = append(groups[r.Developer], field(r))
	}

	rows := make([]domain.DeveloperValue, 0, len(order))
	for _, dev := range order {
		rows = append(rows, domain.DeveloperValue{Developer: dev, Value: mean(groups[dev])})
	}
	slices.SortStableFunc(rows, func(a, b domain.DeveloperValue) int {
		return descending(a.Value, b.Value)
	})
	return rows
}

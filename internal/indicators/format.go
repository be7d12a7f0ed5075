package indicators

import (
	"fmt"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"indicadores/pkg/contracts/domain"
)

// KPI cards group thousands with commas, e.g. "1,234.50 h".
var kpiPrinter = message.NewPrinter(language.English)

// FormatDays renders development days as a whole number.
func FormatDays(v domain.NullFloat) string {
	return formatFixed(v, "%.0f")
}

// FormatHours renders hours with two decimals.
func FormatHours(v domain.NullFloat) string {
	return formatFixed(v, "%.2f")
}

// FormatPercent renders a 0-100 percentage with two decimals, no sign.
func FormatPercent(v domain.NullFloat) string {
	return formatFixed(v, "%.2f")
}

// FormatFraction renders a fraction of 1 as a percentage, e.g. 0.25 → "25.00%".
func FormatFraction(v domain.NullFloat) string {
	x, ok := v.Get()
	if !ok {
		return ""
	}
	return fmt.Sprintf("%.2f%%", x*100)
}

func formatFixed(v domain.NullFloat, verb string) string {
	x, ok := v.Get()
	if !ok {
		return ""
	}
	return fmt.Sprintf(verb, x)
}

// FormatKPIs renders the KPI block the way the dashboard cards show it.
func FormatKPIs(k domain.KPIs) domain.FormattedKPIs {
	f := domain.FormattedKPIs{
		MeanSavingsPercent: FormatFraction(k.MeanSavingsPercent),
		TotalHoursSaved:    kpiPrinter.Sprintf("%.2f h", k.TotalHoursSaved),
		AutomationCount:    strconv.Itoa(k.AutomationCount),
	}
	if days, ok := k.MeanDays.Get(); ok {
		f.MeanDays = kpiPrinter.Sprintf("%.2f dias", days)
	}
	return f
}

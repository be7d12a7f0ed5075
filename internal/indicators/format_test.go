package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"indicadores/pkg/contracts/domain"
)

func TestFormatters(t *testing.T) {
	assert.Equal(t, "8", FormatDays(some(7.6)))
	assert.Equal(t, "22.00", FormatHours(some(22)))
	assert.Equal(t, "33.33", FormatPercent(some(33.333)))
	assert.Equal(t, "25.00%", FormatFraction(some(0.25)))

	for _, f := range []func(domain.NullFloat) string{FormatDays, FormatHours, FormatPercent, FormatFraction} {
		assert.Equal(t, "", f(domain.None()))
	}
}

func TestFormatKPIs(t *testing.T) {
	f := FormatKPIs(Summarize(exampleDataset()))

	assert.Equal(t, domain.FormattedKPIs{
		MeanDays:           "7.67 dias",
		MeanSavingsPercent: "28.33%",
		TotalHoursSaved:    "22.00 h",
		AutomationCount:    "3",
	}, f)
}

func TestFormatKPIs_GroupsThousands(t *testing.T) {
	f := FormatKPIs(domain.KPIs{MeanDays: some(1234.5), TotalHoursSaved: 98765.432})

	assert.Equal(t, "1,234.50 dias", f.MeanDays)
	assert.Equal(t, "98,765.43 h", f.TotalHoursSaved)
	assert.Equal(t, "", f.MeanSavingsPercent)
	assert.Equal(t, "0", f.AutomationCount)
}

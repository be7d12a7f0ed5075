package dataset

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "indicadores/internal/errors"
	"indicadores/pkg/contracts/domain"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in     string
		want   domain.NullFloat
		wantOK bool
	}{
		{"10", domain.Some(10), true},
		{" 2.5 ", domain.Some(2.5), true},
		{"-3", domain.Some(-3), true},
		{"", domain.None(), true},
		{"   ", domain.None(), true},
		{"abc", domain.None(), false},
		{"1,5", domain.None(), false},
		{"NaN", domain.None(), false},
		{"Inf", domain.None(), false},
		{"-Infinity", domain.None(), false},
		{"1e400", domain.None(), false},
		{"1e3", domain.Some(1000), true},
		{"0x1p4", domain.None(), false},
		{"-0X10", domain.None(), false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseNumber(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestNormalize(t *testing.T) {
	raw := &RawTable{
		Header: []string{ColumnAutomation, ColumnDeveloper, ColumnDevelopmentDays, ColumnHoursSaved, ColumnSavingsPercent},
		Rows: [][]string{
			{" A ", "Ana", "10", "8", "20"},
			{"B", "", "abc", "", "NaN"},
		},
	}

	ds, err := Normalize(raw, DefaultColumns())
	require.NoError(t, err)

	want := []domain.Record{
		{Automation: "A", Developer: "Ana", DevelopmentDays: domain.Some(10), HoursSaved: domain.Some(8), SavingsPercent: domain.Some(20)},
		{Automation: "B"},
	}
	if diff := cmp.Diff(want, ds.Records()); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, 2, ds.CoercionFailures())
	assert.Equal(t, []CoercionFailure{
		{Row: 3, Column: ColumnDevelopmentDays, Value: "abc"},
		{Row: 3, Column: ColumnSavingsPercent, Value: "NaN"},
	}, ds.Failures())

	for _, r := range ds.Records() {
		for _, v := range []domain.NullFloat{r.DevelopmentDays, r.HoursSaved, r.SavingsPercent} {
			if x, ok := v.Get(); ok {
				assert.False(t, math.IsNaN(x) || math.IsInf(x, 0))
			}
		}
	}
}

func TestNormalize_MissingColumns(t *testing.T) {
	raw := &RawTable{
		Header: []string{ColumnAutomation, ColumnDevelopmentDays, ColumnHoursSaved},
	}

	_, err := Normalize(raw, DefaultColumns())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumn))
	assert.Contains(t, err.Error(), ColumnDeveloper)
	assert.Contains(t, err.Error(), ColumnSavingsPercent)

	typ, _ := apperrors.TypeOf(err)
	assert.Equal(t, apperrors.ErrTypeSchema, typ)
}

func TestNormalize_CustomColumns(t *testing.T) {
	raw := &RawTable{
		Header: []string{"Robô", "Dev", ColumnDevelopmentDays, ColumnHoursSaved, ColumnSavingsPercent},
		Rows:   [][]string{{"R1", "Ana", "1", "2", "3"}},
	}

	ds, err := Normalize(raw, ColumnMap{Automation: "Robô", Developer: "Dev"})
	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())
	assert.Equal(t, "R1", ds.Records()[0].Automation)
	assert.Equal(t, "Ana", ds.Records()[0].Developer)
}

package dataset

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "indicadores/internal/errors"
	"indicadores/pkg/contracts/domain"
)

// CoercionFailure records a non-empty numeric cell that could not be read
// as a finite number and was treated as missing.
type CoercionFailure struct {
	Row    int    `json:"row"`
	Column string `json:"column"`
	Value  string `json:"value"`
}

// Normalize maps the raw header onto canonical fields and coerces the
// numeric columns. All mapped labels must be present in the header.
func Normalize(raw *RawTable, columns ColumnMap) (*Dataset, error) {
	columns = columns.WithDefaults()

	index := make(map[string]int, len(raw.Header))
	for i, h := range raw.Header {
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}

	var missing []string
	for _, label := range columns.Labels() {
		if _, ok := index[label]; !ok {
			missing = append(missing, label)
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.NewSchemaError(
			fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")),
			ErrMissingColumn,
		).WithContext("missing_columns", missing).WithContext("source", raw.Source)
	}

	var (
		automation = index[columns.Automation]
		developer  = index[columns.Developer]
		days       = index[columns.DevelopmentDays]
		hours      = index[columns.HoursSaved]
		savings    = index[columns.SavingsPercent]
	)

	ds := &Dataset{records: make([]domain.Record, 0, len(raw.Rows))}
	for i, row := range raw.Rows {
		// Spreadsheet row number: header is row 1.
		line := i + 2
		number := func(col int, label string) domain.NullFloat {
			v, ok := ParseNumber(row[col])
			if !ok {
				ds.failures = append(ds.failures, CoercionFailure{Row: line, Column: label, Value: row[col]})
			}
			return v
		}

		ds.records = append(ds.records, domain.Record{
			Automation:      strings.TrimSpace(row[automation]),
			Developer:       strings.TrimSpace(row[developer]),
			DevelopmentDays: number(days, columns.DevelopmentDays),
			HoursSaved:      number(hours, columns.HoursSaved),
			SavingsPercent:  number(savings, columns.SavingsPercent),
		})
	}

	return ds, nil
}

// ParseNumber coerces a cell to a number. Empty cells are missing. Text that
// is not a finite number is also missing and reported with ok=false.
func ParseNumber(s string) (value domain.NullFloat, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return domain.None(), true
	}

	if isHexLiteral(s) {
		return domain.None(), false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return domain.None(), false
	}

	v := domain.Some(f)
	return v, v.Valid
}

// isHexLiteral reports Go hex float syntax, which spreadsheets never produce.
func isHexLiteral(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

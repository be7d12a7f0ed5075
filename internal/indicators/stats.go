package indicators

import (
	"math"

	"indicadores/pkg/contracts/domain"
)

// mean averages the present values. It is missing when none are present.
func mean(values []domain.NullFloat) domain.NullFloat {
	var (
		sum float64
		n   int
	)
	for _, v := range values {
		if x, ok := v.Get(); ok {
			sum += x
			n++
		}
	}
	if n == 0 {
		return domain.None()
	}
	return domain.Some(sum / float64(n))
}

// sum adds the present values, 0 when none are present.
func sum(values []domain.NullFloat) float64 {
	var total float64
	for _, v := range values {
		total += v.Or(0)
	}
	return total
}

// Round rounds half away from zero to the given number of decimals, so 0.125
// becomes 0.13 rather than the banker's 0.12.
func Round(v domain.NullFloat, decimals int) domain.NullFloat {
	x, ok := v.Get()
	if !ok {
		return v
	}
	p := math.Pow10(decimals)
	return domain.Some(math.Round(x*p) / p)
}

// descending orders a before b when a is larger; missing values go last.
func descending(a, b domain.NullFloat) int {
	switch {
	case a.Valid && !b.Valid:
		return -1
	case !a.Valid && b.Valid:
		return 1
	case !a.Valid && !b.Valid:
		return 0
	case a.Value > b.Value:
		return -1
	case a.Value < b.Value:
		return 1
	default:
		return 0
	}
}

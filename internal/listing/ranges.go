package listing

import (
	"apartment-geo-enrich/internal/domain"
	"strconv"
	"strings"
)

// ParseRent reads "$1,200", "$1,200 - $1,500" and similar. Unparsable or
// empty input yields two missing values.
func ParseRent(s string) (min, max float64) {
	return parseRange(strings.NewReplacer("$", "", ",", "").Replace(s))
}

// ParseSquareFeet reads "650 sq ft", "650 - 900 sq ft" and similar.
func ParseSquareFeet(s string) (min, max float64) {
	return parseRange(strings.NewReplacer("sq ft", "", ",", "").Replace(s))
}

func parseRange(cleaned string) (float64, float64) {
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return domain.Missing(), domain.Missing()
	}

	if !strings.Contains(cleaned, "-") {
		v, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return domain.Missing(), domain.Missing()
		}
		return v, v
	}

	parts := strings.Split(cleaned, "-")
	if len(parts) != 2 {
		return domain.Missing(), domain.Missing()
	}
	lo, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return domain.Missing(), domain.Missing()
	}
	hi, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return domain.Missing(), domain.Missing()
	}
	return lo, hi
}

// RentPerSqftAvg is (rentMin+rentMax)/(sqftMin+sqftMax). It is missing when
// any input is missing or zero: a zero rent or area is treated as absent
// data, not as a real value.
func RentPerSqftAvg(rentMin, rentMax, sqftMin, sqftMax float64) float64 {
	for _, v := range []float64{rentMin, rentMax, sqftMin, sqftMax} {
		if v == 0 || domain.IsMissing(v) {
			return domain.Missing()
		}
	}
	return (rentMin + rentMax) / (sqftMin + sqftMax)
}

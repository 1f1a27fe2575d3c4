package util

import "strconv"

// ParseCent converts a decimal amount string to cents. The API speaks
// decimal amounts; internally everything is int64 cents.
func ParseCent(s string) (int64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f >= 0 {
		return int64(f*100 + 0.5), nil
	}
	return int64(f*100 - 0.5), nil
}

// FormatCent renders cents as a decimal string with two places.
func FormatCent(cent int64) string {
	return strconv.FormatFloat(float64(cent)/100.0, 'f', 2, 64)
}

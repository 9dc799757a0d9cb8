package analysis

import "strconv"

func quote(s string) string {
	return strconv.Quote(s)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

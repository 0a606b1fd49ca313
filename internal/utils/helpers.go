package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatFare renders a fare amount the way the dashboard shows it:
// two decimal places, no currency symbol.
func FormatFare(amount float64) string {
	return fmt.Sprintf("%.2f", math.Round(amount*100)/100)
}

// ParseFare is the inverse of FormatFare; a blank or malformed string
// parses as zero.
func ParseFare(fare string) float64 {
	cleaned := strings.TrimSpace(strings.TrimPrefix(fare, "$"))
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return f
}

// CoercePassengers applies the draft invariant: any non-positive or
// unparseable passenger count becomes the default of one.
func CoercePassengers(value interface{}) int {
	switch v := value.(type) {
	case int:
		if v >= MinPassengers {
			return v
		}
	case float64:
		if n := int(v); n >= MinPassengers {
			return n
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n >= MinPassengers {
			return n
		}
	}
	return DefaultPassengers
}

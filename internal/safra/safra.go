// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package safra maps calendar months onto crop-year (ano-safra) months. The
// crop year starts in April: April is month 1 and March is month 12.
package safra

import (
	"fmt"
	"strconv"
	"time"
)

// CropYear returns the crop-year month for a calendar month (1-12) as a string,
// the form the report uses for column lookups.
func CropYear(month int) (string, error) {
	if month < 1 || month > 12 {
		return "", fmt.Errorf("month must be between 1 and 12, got %d", month)
	}
	switch {
	case month == 4:
		return "1", nil
	case month >= 5:
		return strconv.Itoa(month - 3), nil
	default:
		return strconv.Itoa(month + 9), nil
	}
}

// Current returns the crop-year month for now.
func Current(now time.Time) string {
	// time.Month is always in range.
	s, _ := CropYear(int(now.Month()))
	return s
}

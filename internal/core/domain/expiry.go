package domain

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

var expiryPattern = regexp.MustCompile(`^(\d+)(m|h|d)$`)

var expiryUnits = map[string]time.Duration{
	"m": time.Minute,
	"h": time.Hour,
	"d": 24 * time.Hour,
}

// ValidExpiry reports whether s is a well-formed offset such as "15m", "2h"
// or "7d" whose length fits in a time.Duration (about 292 years).
func ValidExpiry(s string) bool {
	_, _, err := parseExpiry(s)
	return err == nil
}

// ResolveExpiry turns an offset expression into an absolute timestamp
// relative to now. Days are calendar days.
func ResolveExpiry(offset string, now time.Time) (time.Time, error) {
	n, unit, err := parseExpiry(offset)
	if err != nil {
		return time.Time{}, err
	}
	if unit == "d" {
		return now.AddDate(0, 0, int(n)), nil
	}
	return now.Add(time.Duration(n) * expiryUnits[unit]), nil
}

func parseExpiry(offset string) (int64, string, error) {
	m := expiryPattern.FindStringSubmatch(offset)
	if m == nil {
		return 0, "", fmt.Errorf("%w: invalid validUntil format %q", ErrInvalidInput, offset)
	}

	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil || n > math.MaxInt64/int64(expiryUnits[m[2]]) {
		return 0, "", fmt.Errorf("%w: validUntil offset %q is too large", ErrInvalidInput, offset)
	}
	return n, m[2], nil
}

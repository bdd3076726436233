package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Fixed UTC-offset handling for local-date derivation. Offsets are strings of
// the form "+HH:MM"/"-HH:MM"; "Z", "" and a bare "HH:MM" (treated as positive)
// are also accepted. Sub-minute offsets do not exist in this domain.

var offsetPattern = regexp.MustCompile(`^[+-](\d{1,2})(?::(\d{1,2}))?$`)

// NormalizeOffset canonicalizes an offset string to a signed form.
func NormalizeOffset(offset string) string {
	trimmed := strings.TrimSpace(offset)
	if trimmed == "" || strings.EqualFold(trimmed, "Z") {
		return "+00:00"
	}
	if strings.HasPrefix(trimmed, "+") || strings.HasPrefix(trimmed, "-") {
		return trimmed
	}
	return "+" + trimmed
}

// OffsetToMinutes parses an offset string into signed minutes east of UTC.
func OffsetToMinutes(offset string) (int, error) {
	normalized := NormalizeOffset(offset)

	matches := offsetPattern.FindStringSubmatch(normalized)
	if matches == nil {
		return 0, ValidationError(fmt.Sprintf("invalid timezone offset %q", offset))
	}

	hours, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, ValidationError(fmt.Sprintf("invalid timezone offset %q", offset))
	}

	minutes := 0
	if matches[2] != "" {
		minutes, err = strconv.Atoi(matches[2])
		if err != nil || minutes > 59 {
			return 0, ValidationError(fmt.Sprintf("invalid timezone offset %q", offset))
		}
	}

	total := hours*60 + minutes
	if strings.HasPrefix(normalized, "-") {
		total = -total
	}
	return total, nil
}

// ShiftInstant reinterprets the instant's UTC calendar fields as UTC and adds
// the offset, producing an instant whose UTC date component equals the local
// calendar date at that offset. The result is a constructive shift used only
// for date extraction, not a real local timestamp.
func ShiftInstant(offset string, instant time.Time) (time.Time, error) {
	offsetMinutes, err := OffsetToMinutes(offset)
	if err != nil {
		return time.Time{}, err
	}

	utc := instant.UTC()
	return time.Date(
		utc.Year(), utc.Month(), utc.Day(),
		utc.Hour(), utc.Minute()+offsetMinutes, utc.Second(),
		0, time.UTC,
	), nil
}

// LocalDateKey derives the "YYYY-MM-DD" dedup key for a UTC instant at a
// fixed offset. Same instant and offset always yield the same key.
func LocalDateKey(offset string, instant time.Time) (string, error) {
	shifted, err := ShiftInstant(offset, instant)
	if err != nil {
		return "", err
	}
	return shifted.Format(time.DateOnly), nil
}

package session

import (
	"fmt"
	"strconv"
	"strings"
)

// FallbackDuration is used when a session has a missing or degenerate interval.
const FallbackDuration = 60

// TimeToMinutes converts "HH:MM" to minutes since midnight.
// Single-digit hours ("9:30") are accepted. Returns 0 for invalid input.
func TimeToMinutes(t string) int {
	hours, mins, ok := splitTime(t)
	if !ok {
		return 0
	}
	return hours*60 + mins
}

// ParseTime strictly parses "HH:MM" (00:00-23:59) into minutes since midnight.
func ParseTime(t string) (int, error) {
	if len(t) != 5 || t[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, t)
	}
	hours, mins, ok := splitTime(t)
	if !ok || hours > 23 || mins > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, t)
	}
	return hours*60 + mins, nil
}

// IsValidTime reports whether t is a strict "HH:MM" time.
func IsValidTime(t string) bool {
	_, err := ParseTime(t)
	return err == nil
}

func splitTime(t string) (int, int, bool) {
	h, m, found := strings.Cut(strings.TrimSpace(t), ":")
	if !found || len(h) == 0 || len(h) > 2 || len(m) != 2 {
		return 0, 0, false
	}
	hours, err := strconv.Atoi(h)
	if err != nil || hours < 0 {
		return 0, 0, false
	}
	mins, err := strconv.Atoi(m)
	if err != nil || mins < 0 || mins > 59 {
		return 0, 0, false
	}
	return hours, mins, true
}

// MinutesToTime converts minutes since midnight to "HH:MM" format.
// Values are clamped to 00:00-23:59.
func MinutesToTime(m int) string {
	if m < 0 {
		m = 0
	}
	if m >= 24*60 {
		m = 24*60 - 1
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// AddMinutes returns t shifted by the given number of minutes.
func AddMinutes(t string, minutes int) string {
	return MinutesToTime(TimeToMinutes(t) + minutes)
}

// DurationMinutes returns end - start in minutes.
// A missing bound or a non-positive span yields FallbackDuration.
func DurationMinutes(start, end string) int {
	if start == "" || end == "" {
		return FallbackDuration
	}
	d := TimeToMinutes(end) - TimeToMinutes(start)
	if d <= 0 {
		return FallbackDuration
	}
	return d
}

// TimesOverlap returns true if two half-open time ranges overlap.
// Two ranges overlap if: start1 < end2 AND start2 < end1.
func TimesOverlap(start1, end1, start2, end2 string) bool {
	return TimeToMinutes(start1) < TimeToMinutes(end2) && TimeToMinutes(start2) < TimeToMinutes(end1)
}

// FormatDuration renders minutes as "90 min" or "1h 30m" for long spans.
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	h, m := minutes/60, minutes%60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

// Package timeutil holds the loose-text time conversions shared by the
// project task estimate field and the task minute fields.
package timeutil

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	bareNumber = regexp.MustCompile(`^\d+$`)
	hourSuffix = regexp.MustCompile(`^(\d+)\s*(h|hr|hrs|hour|hours)$`)
)

// NormalizeEstimate canonicalizes free-text estimates to "N hours" when the
// input is purely numeric or carries an h/hr/hrs suffix. Anything else
// ("5 days", "half a day") passes through unchanged.
func NormalizeEstimate(estimate string) string {
	if estimate == "" {
		return ""
	}
	lower := strings.ToLower(strings.TrimSpace(estimate))
	if bareNumber.MatchString(lower) {
		return lower + " hours"
	}
	if m := hourSuffix.FindStringSubmatch(lower); m != nil {
		return m[1] + " hours"
	}
	return estimate
}

// MinutesToClock renders stored minutes as "H:MM". Zero or negative minutes
// render as "0:00".
func MinutesToClock(minutes int) string {
	if minutes <= 0 {
		return "0:00"
	}
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}

// ClockToMinutes parses "H:MM" back to minutes. A bare integer is treated
// as minutes, matching what the task form accepts.
func ClockToMinutes(clock string) (int, error) {
	clock = strings.TrimSpace(clock)
	if clock == "" {
		return 0, nil
	}
	if bareNumber.MatchString(clock) {
		var mins int
		fmt.Sscanf(clock, "%d", &mins)
		return mins, nil
	}
	var h, m int
	if _, err := fmt.Sscanf(clock, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", clock, err)
	}
	if m < 0 || m > 59 || h < 0 {
		return 0, fmt.Errorf("invalid time %q", clock)
	}
	return h*60 + m, nil
}

package transit

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseClock converts an "HH:MM:SS" wall-clock string to seconds since
// midnight. Hours past 24 are kept as-is (trips crossing midnight use
// values like "25:10:00"), so the result is deliberately not reduced
// modulo 86400.
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("malformed clock value %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("malformed clock value %q: %w", s, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("malformed clock value %q: %w", s, err)
	}
	sec, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, fmt.Errorf("malformed clock value %q: %w", s, err)
	}
	if h < 0 || m < 0 || m > 59 || sec < 0 || sec > 59 {
		return 0, fmt.Errorf("clock value %q out of range", s)
	}
	return h*3600 + m*60 + sec, nil
}

// FormatDuration renders a duration in seconds as "HH:MM:SS".
// Hours may exceed 24 for long journeys.
func FormatDuration(seconds int) string {
	h := seconds / 3600
	rem := seconds % 3600
	return fmt.Sprintf("%02d:%02d:%02d", h, rem/60, rem%60)
}

package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateNormalizer converts raw date tokens into absolute instants. Tokens
// come in two shapes: date-time ("20240312T143000", optionally with a
// trailing "Z") and all-day dates ("20240312"). Fields are fixed-width,
// so positional slicing is used instead of layout parsing.
type DateNormalizer struct{}

func NewDateNormalizer() *DateNormalizer {
	return &DateNormalizer{}
}

// Run converts one raw date token into an instant usable for duration
// arithmetic and display-field derivation. A token with a time separator
// is composed as a local date-time; a trailing UTC marker is NOT honored
// and reads the same as a local token. A token without a separator becomes
// local midnight of that date.
func (n *DateNormalizer) Run(token string) (time.Time, error) {
	token = strings.TrimSpace(token)

	if strings.Contains(token, "T") {
		return n.parseDateTime(token)
	}
	return n.parseDate(token)
}

func (n *DateNormalizer) parseDateTime(token string) (time.Time, error) {
	if len(token) < 15 {
		return time.Time{}, fmt.Errorf("date-time token too short: %q", token)
	}

	fields := [6]struct{ lo, hi int }{
		{0, 4},   // year
		{4, 6},   // month
		{6, 8},   // day
		{9, 11},  // hour, skipping the separator at index 8
		{11, 13}, // minute
		{13, 15}, // second
	}

	var parts [6]int
	for i, f := range fields {
		v, err := strconv.Atoi(token[f.lo:f.hi])
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date-time token %q: %w", token, err)
		}
		parts[i] = v
	}

	return time.Date(parts[0], time.Month(parts[1]), parts[2],
		parts[3], parts[4], parts[5], 0, time.Local), nil
}

func (n *DateNormalizer) parseDate(token string) (time.Time, error) {
	if len(token) < 8 {
		return time.Time{}, fmt.Errorf("date token too short: %q", token)
	}

	year, err := strconv.Atoi(token[0:4])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date token %q: %w", token, err)
	}
	month, err := strconv.Atoi(token[4:6])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date token %q: %w", token, err)
	}
	day, err := strconv.Atoi(token[6:8])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date token %q: %w", token, err)
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local), nil
}

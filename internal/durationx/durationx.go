// Package durationx parses the ms/s/m/h duration strings accepted by the
// CLI's -t/-I flags. A bare integer (no suffix) means milliseconds.
//
// Go's stdlib time.ParseDuration requires a unit suffix and rejects bare
// integers, so it cannot express the round-trip laws this tool commits
// to (parse("1000") == 1000ms). This is a direct Go port of
// original_source/src/time.rs's parse_to_milliseconds/format_milliseconds.
package durationx

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse converts a duration string into milliseconds. Accepted forms:
// a bare integer ("1000"), or an integer suffixed with "ms", "s", "m" or
// "h". Negative numbers, decimals, and unknown suffixes are errors.
func Parse(s string) (uint64, error) {
	if strings.HasSuffix(s, "ms") {
		value, err := strconv.ParseUint(s[:len(s)-2], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid milliseconds")
		}
		return value, nil
	}

	if strings.HasSuffix(s, "s") {
		value, err := strconv.ParseUint(s[:len(s)-1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid seconds")
		}
		return value * 1000, nil
	}

	if strings.HasSuffix(s, "m") {
		value, err := strconv.ParseUint(s[:len(s)-1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid minutes")
		}
		return value * 1000 * 60, nil
	}

	if strings.HasSuffix(s, "h") {
		value, err := strconv.ParseUint(s[:len(s)-1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid hours")
		}
		return value * 1000 * 60 * 60, nil
	}

	value, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid milliseconds")
	}
	return value, nil
}

// Format renders a millisecond count back into the shortest of the ms/s/m/h
// suffixed forms, matching the original's format_milliseconds.
func Format(milliseconds uint64) string {
	if milliseconds < 1000 {
		return fmt.Sprintf("%dms", milliseconds)
	}
	if milliseconds < 1000*60 {
		return fmt.Sprintf("%ds", milliseconds/1000)
	}
	if milliseconds < 1000*60*60 {
		return fmt.Sprintf("%dm", milliseconds/1000/60)
	}
	return fmt.Sprintf("%dh", milliseconds/1000/60/60)
}

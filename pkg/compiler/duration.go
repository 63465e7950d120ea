package compiler

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/flowforge/flowc/pkg/logger"
)

var durationLog = logger.New("compiler:duration")

// durationRegex matches "<integer><unit>" with unit ms, s, m, or h. The "ms"
// alternative must come before "m" so "30ms" is not read as minutes.
var durationRegex = regexp.MustCompile(`^(\d+)(ms|s|m|h)$`)

// ParseDuration parses a duration string of the form "<integer><unit>" into
// milliseconds. Supported units are ms, s, m, and h.
//
// Example inputs and outputs:
//
//	ParseDuration("30s")  // returns 30000
//	ParseDuration("1m")   // returns 60000
//	ParseDuration("2h")   // returns 7200000
//	ParseDuration("abc")  // returns an error
//
// Callers that embed durations into generated code keep the original string
// verbatim, since the target runtime's native duration representation is
// string-based; the parsed value is used only for backoff arithmetic and
// consistency checks.
func ParseDuration(s string) (int64, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, fmt.Errorf("duration cannot be empty")
	}

	matches := durationRegex.FindStringSubmatch(trimmed)
	if matches == nil {
		durationLog.Printf("Duration parse failed: %q", s)
		return 0, fmt.Errorf("invalid duration %q: expected <integer><unit> with unit ms, s, m, or h", s)
	}

	magnitude, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration magnitude %q: %w", matches[1], err)
	}

	var factor int64
	switch matches[2] {
	case "ms":
		factor = 1
	case "s":
		factor = 1000
	case "m":
		factor = 60 * 1000
	case "h":
		factor = 60 * 60 * 1000
	}

	return magnitude * factor, nil
}

package core

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// durationTerm matches one "<digits><spaces><unit>" term of a duration.
var durationTerm = regexp.MustCompile(`(\d+) *(\p{L}*)`)

var durationUnits = map[string]int64{
	"s": 1,
	"m": 60,
	"h": 60 * 60,
	"d": 24 * 60 * 60,
	"w": 7 * 24 * 60 * 60,
}

// maxDurationSeconds keeps the total representable as a time.Duration.
const maxDurationSeconds = math.MaxInt64 / int64(time.Second)

// ParseDuration parses durations such as "3h", "2m 10s", "1d12h" or "-5s".
// Units are s, m, h, d and w. A leading minus negates the whole value. A term
// without a unit is only accepted when it is zero.
func ParseDuration(text string) (time.Duration, error) {
	trimmed := strings.TrimSpace(text)
	negative := strings.HasPrefix(trimmed, "-")

	terms := durationTerm.FindAllStringSubmatch(trimmed, -1)
	if len(terms) == 0 {
		return 0, &DurationError{Input: text, Reason: fmt.Sprintf("invalid duration: '%s'", text)}
	}

	var total int64
	for _, term := range terms {
		value, err := strconv.ParseInt(term[1], 10, 64)
		if err != nil || value > maxDurationSeconds {
			return 0, &DurationError{Input: text, Reason: fmt.Sprintf("duration out of range: '%s'", text)}
		}
		unit := term[2]
		if unit == "" && value == 0 {
			continue
		}
		mult, ok := durationUnits[unit]
		if !ok {
			return 0, &DurationError{Input: text, Reason: fmt.Sprintf("invalid duration units: '%s'", unit)}
		}
		if value > (maxDurationSeconds-total)/mult {
			return 0, &DurationError{Input: text, Reason: fmt.Sprintf("duration out of range: '%s'", text)}
		}
		total += value * mult
	}

	if negative {
		total = -total
	}
	return time.Duration(total) * time.Second, nil
}

// FormatDuration renders d with the same units ParseDuration accepts, largest
// first, e.g. "1d 3h 5m". Sub-second precision is dropped.
func FormatDuration(d time.Duration) string {
	secs := int64(d / time.Second)
	sign := ""
	if secs < 0 {
		sign = "-"
		secs = -secs
	}
	if secs == 0 {
		return "0s"
	}
	var parts []string
	for _, u := range []struct {
		name string
		size int64
	}{{"d", 86400}, {"h", 3600}, {"m", 60}, {"s", 1}} {
		if n := secs / u.size; n > 0 {
			parts = append(parts, strconv.FormatInt(n, 10)+u.name)
			secs %= u.size
		}
	}
	return sign + strings.Join(parts, " ")
}

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// NextWake returns the first activation of a five-field cron expression (or a
// descriptor such as "@daily") strictly after now.
func NextWake(expr string, now time.Time) (time.Time, error) {
	schedule, err := cronParser.Parse(strings.TrimSpace(expr))
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing wake schedule %q: %w", expr, err)
	}
	next := schedule.Next(now)
	if next.IsZero() {
		return time.Time{}, fmt.Errorf("wake schedule %q never fires", expr)
	}
	return next, nil
}

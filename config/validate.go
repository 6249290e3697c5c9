package config

import "fmt"

const (
	minPastDelay = 0
	maxPastDelay = 100
)

// ClampDelay corrects an out-of-range past-mode delay to the nearest
// bound. Idempotent.
func ClampDelay(delay int) int {
	if delay < minPastDelay {
		return minPastDelay
	}
	if delay > maxPastDelay {
		return maxPastDelay
	}
	return delay
}

// Normalize applies load-boundary corrections to a freshly read document
// and returns one warning per corrected value. Corrections are not
// errors: the document stays usable.
func Normalize(cfg *Config) []string {
	var warnings []string
	if clamped := ClampDelay(cfg.Past.Delay); clamped != cfg.Past.Delay {
		warnings = append(warnings, fmt.Sprintf(
			"past.delay must be within %d to %d seconds, corrected %d to %d",
			minPastDelay, maxPastDelay, cfg.Past.Delay, clamped))
		cfg.Past.Delay = clamped
	}
	return warnings
}

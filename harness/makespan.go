package harness

import (
	"regexp"
	"strconv"
	"strings"
)

var stepPattern = regexp.MustCompile(`^(\d+):`)

// ParseMakespan scans planner output for plan step lines of the form
// "<index>: <action>" and returns the highest 0-based index plus one.
// The second return value is false when no step line exists.
func ParseMakespan(output string) (int, bool) {
	maxStep := -1

	// Lines have no length cap.
	for _, line := range strings.Split(output, "\n") {
		m := stepPattern.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}

		step, err := strconv.Atoi(m[1])
		if err != nil {
			// Overflowing index; not a plan step we can use.
			continue
		}

		if step > maxStep {
			maxStep = step
		}
	}

	if maxStep < 0 {
		return 0, false
	}

	return maxStep + 1, true
}

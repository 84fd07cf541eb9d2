package advisor

import (
	"html"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicy = bluemonday.StrictPolicy()

	headingRe  = regexp.MustCompile(`^\s{0,3}#{1,6}\s*`)
	boldRe     = regexp.MustCompile(`\*\*|__`)
	analysisRe = regexp.MustCompile(`(?i)^analysis\s*:\s*`)
)

// stripHTML removes markup and decodes the entities the policy escapes.
func stripHTML(raw string) string {
	return html.UnescapeString(textPolicy.Sanitize(raw))
}

// cleanLine strips markdown decoration and bullet markers from one line.
func cleanLine(line string) string {
	line = headingRe.ReplaceAllString(line, "")
	line = boldRe.ReplaceAllString(line, "")
	line = strings.Trim(line, " \t•")
	line = strings.TrimPrefix(line, "- ")
	line = strings.TrimPrefix(line, "* ")
	line = analysisRe.ReplaceAllString(line, "")
	return strings.TrimSpace(line)
}

// parseInsights turns a model answer into insight lines. When no line
// survives cleaning the text is split into sentences instead.
func parseInsights(raw string) []string {
	text := stripHTML(raw)

	lines := make([]string, 0)
	for _, line := range strings.Split(text, "\n") {
		if l := cleanLine(line); l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) > 0 {
		return lines
	}

	flat := strings.Join(strings.Fields(text), " ")
	for _, s := range strings.Split(flat, ".") {
		if s = cleanLine(s); s != "" {
			lines = append(lines, s)
		}
	}
	return lines
}

// parseSchedule picks out lines shaped "Week N: Phase - a, b". Other lines
// are ignored.
func parseSchedule(raw string) []Week {
	weeks := make([]Week, 0)
	for _, line := range strings.Split(stripHTML(raw), "\n") {
		line = cleanLine(line)
		label, rest, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		label = strings.TrimSpace(label)
		if !strings.HasPrefix(strings.ToLower(label), "week") {
			continue
		}

		rest = strings.TrimSpace(rest)
		phase, acts, hasActs := strings.Cut(rest, " - ")
		activities := make([]string, 0)
		if hasActs {
			for _, a := range strings.Split(acts, ",") {
				if a = strings.TrimSpace(a); a != "" {
					activities = append(activities, a)
				}
			}
		}

		weeks = append(weeks, Week{
			Number:     weekNumber(label),
			Phase:      strings.TrimSpace(phase),
			Activities: activities,
		})
	}
	return weeks
}

// weekNumber joins every digit in the label, so "Week 1-2" reads as 12,
// and returns nil when there are none.
func weekNumber(label string) *int {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, label)
	n, err := strconv.Atoi(digits)
	if err != nil {
		return nil
	}
	return &n
}

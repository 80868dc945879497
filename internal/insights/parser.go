package insights

import "strings"

// Section and list limits of the expected response format.
const (
	maxLifestyleChanges = 6
	maxActionSteps      = 7
)

// Parse extracts the delimited sections from a generated response. The
// format is ---OVERVIEW---, ---LIFESTYLE_CHANGES--- (bulleted), then
// ---INSIGHTS--- and ---ACTION_STEPS--- (bulleted or numbered). Missing
// sections degrade: an empty overview gets a stock line and missing
// details fall back to the whole response.
func Parse(text string) *Insights {
	parts := strings.Split(text, "---")

	var (
		overview string
		changes  []string
		details  string
		steps    []string
	)

	for i, part := range parts {
		header := strings.TrimSpace(part)
		body := ""
		if i+1 < len(parts) {
			body = strings.TrimSpace(parts[i+1])
		}

		switch {
		case strings.Contains(header, "OVERVIEW"):
			overview = body
		case strings.Contains(header, "LIFESTYLE_CHANGES"):
			changes = bulletLines(body, isChangeLine)
		case strings.Contains(header, "ACTION_STEPS"):
			steps = bulletLines(body, isStepLine)
		case strings.Contains(header, "INSIGHTS"):
			details = body
		}
	}

	if overview == "" {
		overview = "Analysis generated successfully."
	}
	if details == "" {
		details = text
	}
	if len(changes) > maxLifestyleChanges {
		changes = changes[:maxLifestyleChanges]
	}
	if len(steps) > maxActionSteps {
		steps = steps[:maxActionSteps]
	}

	return &Insights{
		OverviewSummary:  overview,
		LifestyleChanges: changes,
		Details:          details,
		ActionSteps:      steps,
	}
}

func bulletLines(body string, keep func(string) bool) []string {
	lines := []string{}
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && keep(line) {
			lines = append(lines, line)
		}
	}
	return lines
}

func isChangeLine(line string) bool {
	return strings.Contains(line, "✓") ||
		strings.Contains(line, "•") ||
		strings.HasPrefix(line, "-")
}

func isStepLine(line string) bool {
	if strings.Contains(line, "→") || strings.Contains(line, "•") || strings.HasPrefix(line, "-") {
		return true
	}
	return len(line) > 0 && line[0] >= '0' && line[0] <= '9'
}

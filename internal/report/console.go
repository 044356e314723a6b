package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"resultgate/internal/evidence"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	passStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	failStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Render formats the summary for the console.
func Render(s *Summary) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Result Validation Summary"))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  Total:     %d\n", s.Total))
	sb.WriteString(fmt.Sprintf("  Passed:    %s\n", passStyle.Render(fmt.Sprintf("%d", s.Passed))))
	sb.WriteString(fmt.Sprintf("  Failed:    %s\n", failStyle.Render(fmt.Sprintf("%d", s.Failed))))
	sb.WriteString(fmt.Sprintf("  Pass rate: %.1f%%\n", s.PassRate))

	if len(s.FailuresByReason) > 0 {
		sb.WriteString("\n")
		sb.WriteString(titleStyle.Render("Failures by reason"))
		sb.WriteString("\n")
		for _, reason := range sortedReasons(s.FailuresByReason) {
			sb.WriteString(fmt.Sprintf("  %-24s %d\n", reason, s.FailuresByReason[reason]))
		}
	}

	if s.NegativeControls.Total > 0 {
		sb.WriteString("\n")
		sb.WriteString(titleStyle.Render("Negative controls"))
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("  Total:  %d\n", s.NegativeControls.Total))
		sb.WriteString(fmt.Sprintf("  Passed: %d\n", s.NegativeControls.Passed))
		sb.WriteString(fmt.Sprintf("  Failed: %d\n", s.NegativeControls.Failed))
	}

	sb.WriteString("\n")
	if s.Failed == 0 {
		sb.WriteString(passStyle.Render("ALL GREEN"))
	} else {
		sb.WriteString(failStyle.Render(fmt.Sprintf("%d FAILED", s.Failed)))
		sb.WriteString(mutedStyle.Render("  (see validated results for per-record reasons)"))
	}
	sb.WriteString("\n")

	return sb.String()
}

// sortedReasons orders the histogram by descending count, then name, so
// the report is stable across runs.
func sortedReasons(hist map[evidence.FailureReason]int) []evidence.FailureReason {
	reasons := make([]evidence.FailureReason, 0, len(hist))
	for reason := range hist {
		reasons = append(reasons, reason)
	}
	sort.Slice(reasons, func(i, j int) bool {
		if hist[reasons[i]] != hist[reasons[j]] {
			return hist[reasons[i]] > hist[reasons[j]]
		}
		return reasons[i] < reasons[j]
	})
	return reasons
}

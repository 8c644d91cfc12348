package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// CLI output styles for consistent terminal output.
var (
	cliSuccess = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#059669", Dark: "#10B981"})
	cliWarn    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#F59E0B"})
	cliError   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"})
	cliMuted   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"})
	cliPrimary = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#C45A3C", Dark: "#DA7756"})

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"}).
			Padding(0, 2)
)

func symSuccess() string { return cliSuccess.Render("✓") }
func symError() string   { return cliError.Render("✗") }
func symWarning() string { return cliWarn.Render("!") }

// renderCard renders a bordered card with a styled title and detail lines.
func renderCard(title string, details ...string) string {
	lines := []string{cliPrimary.Render(title)}
	for _, d := range details {
		if d != "" {
			lines = append(lines, d)
		}
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}

// kvPair is a label/value line inside a card.
type kvPair struct {
	key   string
	value string
}

// renderKeyValueLines renders aligned key/value lines with muted keys.
func renderKeyValueLines(pairs []kvPair) string {
	width := 0
	for _, p := range pairs {
		if len(p.key) > width {
			width = len(p.key)
		}
	}
	var sb strings.Builder
	for i, p := range pairs {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(cliMuted.Render(p.key + strings.Repeat(" ", width-len(p.key)) + "  "))
		sb.WriteString(p.value)
	}
	return sb.String()
}

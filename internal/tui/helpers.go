package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// truncateStr truncates a string to the specified number of runes with ellipsis
func truncateStr(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// renderToast renders a status line, or nothing when t is nil
func renderToast(t *toast) string {
	if t == nil {
		return ""
	}
	color := successColor
	if t.kind == toastError {
		color = errorColor
	}
	return lipgloss.NewStyle().Foreground(color).Render("  "+t.text) + "\n\n"
}

// renderError renders err as a status line, or nothing when err is nil
func renderError(err error) string {
	if err == nil {
		return ""
	}
	return lipgloss.NewStyle().Foreground(errorColor).
		Render(fmt.Sprintf("  Error: %v", err)) + "\n\n"
}

// checkbox renders the selection marker of a list row
func checkbox(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}

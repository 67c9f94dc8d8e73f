package tui

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// formatTime renders a relative timestamp for list displays.
func formatTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// formatClock renders t as a wall-clock time for conversation lines.
func formatClock(t time.Time) string {
	if time.Since(t) >= 24*time.Hour {
		return t.Local().Format("Jan 02")
	}
	return t.Local().Format("15:04")
}

// truncStr truncates a string to maxLen runes, appending an ellipsis if needed.
func truncStr(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}

// oneLine collapses newlines and runs of whitespace so previews stay on a row.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// separator renders a horizontal rule for a body of the given width.
func separator(s styles, width int) string {
	return " " + s.meta.Render(strings.Repeat("─", max(width-2, 4))) + "\n"
}

// statusLine renders a transient status or error under a list.
func statusLine(s styles, status string, isErr bool) string {
	if status == "" {
		return ""
	}
	if isErr {
		return "\n " + s.warn.Render(status) + "\n"
	}
	return "\n " + s.dim.Render(status) + "\n"
}

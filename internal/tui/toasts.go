package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/orkadia/orkadia/internal/notify"
)

// toastTickInterval is how often the toast stack is swept and redrawn.
const toastTickInterval = 100 * time.Millisecond

// toastWidth is the outer width of one toast box.
const toastWidth = 44

type toastTickMsg time.Time

func toastTickCmd() tea.Cmd {
	return tea.Tick(toastTickInterval, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

// renderToasts stacks pending events top to bottom, right aligned. Each toast
// is exactly notify.StackOffset rows tall.
func renderToasts(s styles, events []notify.Event, now time.Time, width int) string {
	if len(events) == 0 {
		return ""
	}
	rows := make([]string, 0, len(events))
	for _, e := range events {
		box := renderToast(s, e, now)
		rows = append(rows, lipgloss.PlaceHorizontal(max(width, toastWidth), lipgloss.Right, box))
	}
	return strings.Join(rows, "\n")
}

func renderToast(s styles, e notify.Event, now time.Time) string {
	inner := toastWidth - 4 // border + padding
	var title, sub string
	switch e.Kind {
	case notify.KindXP:
		title = s.accent.Bold(true).Render(fmt.Sprintf("+%d XP", e.Points))
		sub = s.normal.Render(truncStr(e.Title, inner))
	default:
		head := e.Title
		if e.Icon != "" {
			head = e.Icon + " " + head
		}
		pts := fmt.Sprintf("+%d", e.Points)
		name := truncStr(head, inner-len(pts)-1)
		gap := max(inner-lipgloss.Width(name)-len(pts), 1)
		title = RarityStyle(e.Rarity).Render(name) + strings.Repeat(" ", gap) + s.accent.Render(pts)
		sub = s.dim.Render(truncStr(e.Description, inner))
	}

	box := s.toast.Width(toastWidth - 2)
	if e.PhaseAt(now) == notify.PhaseExiting {
		box = box.Faint(true)
	}
	return box.Render(title + "\n" + sub)
}

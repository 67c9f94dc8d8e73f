package tui

import (
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

// maxInputLen is the maximum number of runes allowed in any inline input.
// It matches the longest field the services accept (a wall post).
const maxInputLen = 2000

// editInput applies a keystroke to an inline text input. Typed and pasted
// runes are appended, backspace removes the last rune, other keys leave the
// text unchanged. Input is clamped to maxInputLen runes.
func editInput(text string, msg tea.KeyMsg) string {
	switch msg.Type {
	case tea.KeyBackspace:
		if len(text) > 0 {
			runes := []rune(text)
			return string(runes[:len(runes)-1])
		}
		return text
	case tea.KeySpace:
		return appendClamped(text, []rune{' '})
	case tea.KeyRunes:
		if msg.Alt {
			return text
		}
		return appendClamped(text, msg.Runes)
	}
	return text
}

func appendClamped(text string, add []rune) string {
	room := maxInputLen - utf8.RuneCountInString(text)
	if room <= 0 {
		return text
	}
	if len(add) > room {
		add = add[:room]
	}
	return text + string(add)
}

// truncateToHeight limits output to maxLines newline-delimited lines.
// Returns the original string if it fits or maxLines is <= 0.
func truncateToHeight(s string, maxLines int) string {
	if maxLines <= 0 {
		return s
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
			if n >= maxLines {
				return s[:i+1]
			}
		}
	}
	return s
}

type cursorBlinkMsg time.Time

func cursorBlinkCmd() tea.Cmd {
	return tea.Tick(530*time.Millisecond, func(t time.Time) tea.Msg {
		return cursorBlinkMsg(t)
	})
}

// renderInput renders a one-line prompt with a block cursor when focused
// and a placeholder when empty.
func renderInput(s styles, prompt, input, placeholder string, focused, cursorOn bool) string {
	head := " " + s.prompt.Render(prompt+" ")
	if !focused {
		if input == "" {
			return head + s.placeholder.Render(placeholder)
		}
		return head + s.dim.Render(input)
	}
	cursor := " "
	if cursorOn {
		cursor = s.accent.Render("█")
	}
	return head + s.selected.Render(input) + cursor
}

package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/orkadia/orkadia/pkg/domain"
)

type blocksLoadedMsg struct {
	blocks []domain.UserBlock
	names  map[uuid.UUID]string
	err    error
}

type blockChangedMsg struct {
	status string
	err    error
}

type blocksModel struct {
	env       *env
	blocks    []domain.UserBlock
	names     map[uuid.UUID]string
	cursor    int
	loading   bool
	err       string
	status    string
	statusErr bool
	width     int
	height    int

	blocking bool
	input    string
	cursorOn bool
}

func newBlocksModel(e *env) blocksModel {
	return blocksModel{env: e, loading: true}
}

func (m blocksModel) Init() tea.Cmd {
	return m.load()
}

func (m blocksModel) load() tea.Cmd {
	e := m.env
	return func() tea.Msg {
		ctx := context.Background()
		blocks, err := e.social.Blocked(ctx, e.me)
		if err != nil {
			return blocksLoadedMsg{err: err}
		}
		ids := make([]uuid.UUID, 0, len(blocks))
		for _, bl := range blocks {
			ids = append(ids, bl.BlockedID)
		}
		return blocksLoadedMsg{blocks: blocks, names: e.usernames(ctx, ids)}
	}
}

// block parses "<username> [reason]" and blocks that citizen.
func (m blocksModel) block(line string) tea.Cmd {
	e := m.env
	return func() tea.Msg {
		name, reason, _ := strings.Cut(strings.TrimSpace(line), " ")
		ctx := context.Background()
		p, err := e.social.Lookup(ctx, name)
		if err != nil {
			return blockChangedMsg{err: err}
		}
		if _, err := e.social.Block(ctx, e.me, p.ID, strings.TrimSpace(reason)); err != nil {
			return blockChangedMsg{err: err}
		}
		return blockChangedMsg{status: "blocked " + p.Username}
	}
}

func (m blocksModel) unblock(id uuid.UUID, name string) tea.Cmd {
	e := m.env
	return func() tea.Msg {
		if err := e.social.Unblock(context.Background(), e.me, id); err != nil {
			return blockChangedMsg{err: err}
		}
		return blockChangedMsg{status: "unblocked " + name}
	}
}

func (m blocksModel) Update(msg tea.Msg) (blocksModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case blocksLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		m.err = ""
		m.blocks = msg.blocks
		m.names = msg.names
		if m.cursor >= len(m.blocks) {
			m.cursor = max(len(m.blocks)-1, 0)
		}

	case blockChangedMsg:
		if msg.err != nil {
			m.status, m.statusErr = msg.err.Error(), true
			return m, nil
		}
		m.status, m.statusErr = msg.status, false
		return m, m.load()

	case cursorBlinkMsg:
		if m.blocking {
			m.cursorOn = !m.cursorOn
		}

	case tea.KeyMsg:
		m.cursorOn = true
		if m.blocking {
			switch msg.String() {
			case "esc":
				m.blocking = false
				m.input = ""
			case "enter":
				line := m.input
				m.blocking = false
				m.input = ""
				if strings.TrimSpace(line) == "" {
					return m, nil
				}
				return m, m.block(line)
			default:
				m.input = editInput(m.input, msg)
			}
			return m, nil
		}
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.blocks)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "b":
			m.blocking = true
			m.input = ""
			m.status = ""
		case "u", "d":
			if m.cursor < len(m.blocks) {
				id := m.blocks[m.cursor].BlockedID
				return m, m.unblock(id, m.names[id])
			}
		case "r":
			m.loading = true
			return m, m.load()
		}
	}
	return m, nil
}

func (m blocksModel) View() string {
	s := m.env.sheet.get()
	var b strings.Builder

	b.WriteString(" " + s.title.Render("Blocked citizens") + "\n")
	b.WriteString(separator(s, m.width))

	// The input prompt renders below in every state.
	switch {
	case m.loading && m.blocks == nil:
		b.WriteString(" " + s.dim.Render("loading...") + "\n")
	case m.err != "":
		b.WriteString(" " + s.warn.Render("error: "+m.err) + "\n")
	case len(m.blocks) == 0:
		b.WriteString("\n " + s.dim.Render("nobody blocked · press b to block someone") + "\n")
	}

	for i, bl := range m.blocks {
		cursor := "  "
		name := m.names[bl.BlockedID]
		if name == "" {
			name = bl.BlockedID.String()[:8]
		}
		nameStyled := s.normal.Render(fmt.Sprintf("%-16s", name))
		if i == m.cursor {
			cursor = s.accent.Render("▸") + " "
			nameStyled = s.selected.Render(fmt.Sprintf("%-16s", name))
		}
		reason := bl.Reason
		if reason == "" {
			reason = "—"
		}
		fmt.Fprintf(&b, " %s%s %s  %s\n",
			cursor, nameStyled,
			s.dim.Render(truncStr(oneLine(reason), max(m.width-40, 10))),
			s.meta.Render(formatTime(bl.CreatedAt)),
		)
	}

	if m.blocking {
		b.WriteString("\n" + renderInput(s, "block:", m.input, "username [reason]", true, m.cursorOn) + "\n")
	}
	b.WriteString(statusLine(s, m.status, m.statusErr))
	return b.String()
}

func (m blocksModel) helpKeys() string {
	s := m.env.sheet.get()
	if m.blocking {
		return s.helpEntry("enter", "block") + "  " + s.helpEntry("esc", "cancel")
	}
	return s.helpEntry("j/k", "nav") + "  " + s.helpEntry("b", "block") + "  " + s.helpEntry("u", "unblock")
}

package tui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/orkadia/orkadia/pkg/domain"
)

// -- messages --

type giftsLoadedMsg struct {
	gifts []domain.Gift
	names map[uuid.UUID]string
	err   error
}

type giftSentMsg struct {
	to  string
	err error
}

type giftDeletedMsg struct {
	err error
}

// errGiftUsage is shown when the send prompt cannot be parsed.
var errGiftUsage = errors.New("usage: <username> <gift> [note]")

// -- model --

type giftsModel struct {
	env       *env
	gifts     []domain.Gift
	names     map[uuid.UUID]string
	cursor    int
	loading   bool
	err       string
	status    string
	statusErr bool
	width     int
	height    int

	sending  bool
	input    string
	cursorOn bool
}

func newGiftsModel(e *env) giftsModel {
	return giftsModel{env: e, loading: true}
}

func (m giftsModel) Init() tea.Cmd {
	return m.load()
}

func (m giftsModel) load() tea.Cmd {
	e := m.env
	return func() tea.Msg {
		ctx := context.Background()
		gifts, err := e.social.Gifts(ctx, e.me)
		if err != nil {
			return giftsLoadedMsg{err: err}
		}
		ids := make([]uuid.UUID, 0, len(gifts))
		for _, g := range gifts {
			ids = append(ids, g.FromUserID)
		}
		return giftsLoadedMsg{gifts: gifts, names: e.usernames(ctx, ids)}
	}
}

// send parses "<username> <gift> [note]" and sends the gift.
func (m giftsModel) send(line string) tea.Cmd {
	e := m.env
	return func() tea.Msg {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return giftSentMsg{err: errGiftUsage}
		}
		ctx := context.Background()
		to, err := e.social.Lookup(ctx, fields[0])
		if err != nil {
			return giftSentMsg{err: err}
		}
		note := strings.Join(fields[2:], " ")
		_, err = e.social.SendGift(ctx, e.me, to.ID, strings.ToLower(fields[1]), note)
		return giftSentMsg{to: to.Username, err: err}
	}
}

func (m giftsModel) remove(id uuid.UUID) tea.Cmd {
	e := m.env
	return func() tea.Msg {
		return giftDeletedMsg{err: e.social.DeleteGift(context.Background(), id, e.me)}
	}
}

func (m giftsModel) Update(msg tea.Msg) (giftsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case giftsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		m.err = ""
		m.gifts = msg.gifts
		m.names = msg.names
		if m.cursor >= len(m.gifts) {
			m.cursor = max(len(m.gifts)-1, 0)
		}

	case giftSentMsg:
		if msg.err != nil {
			m.status, m.statusErr = msg.err.Error(), true
		} else {
			m.status, m.statusErr = "gift sent to "+msg.to, false
		}

	case giftDeletedMsg:
		if msg.err != nil {
			m.status, m.statusErr = msg.err.Error(), true
			return m, nil
		}
		m.status, m.statusErr = "gift removed", false
		return m, m.load()

	case cursorBlinkMsg:
		if m.sending {
			m.cursorOn = !m.cursorOn
		}

	case tea.KeyMsg:
		m.cursorOn = true
		if m.sending {
			switch msg.String() {
			case "esc":
				m.sending = false
				m.input = ""
			case "enter":
				line := m.input
				m.sending = false
				m.input = ""
				return m, m.send(line)
			default:
				m.input = editInput(m.input, msg)
			}
			return m, nil
		}
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.gifts)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "s":
			m.sending = true
			m.input = ""
			m.status = ""
		case "d", "x":
			if m.cursor < len(m.gifts) {
				return m, m.remove(m.gifts[m.cursor].ID)
			}
		case "r":
			m.loading = true
			return m, m.load()
		}
	}
	return m, nil
}

func (m giftsModel) View() string {
	s := m.env.sheet.get()
	var b strings.Builder

	b.WriteString(" " + s.title.Render("Gifts") + "\n")
	b.WriteString(separator(s, m.width))

	// The input prompt renders below in every state.
	switch {
	case m.loading && m.gifts == nil:
		b.WriteString(" " + s.dim.Render("loading...") + "\n")
	case m.err != "":
		b.WriteString(" " + s.warn.Render("error: "+m.err) + "\n")
	case len(m.gifts) == 0:
		b.WriteString("\n " + s.dim.Render("no gifts yet · press s to send one") + "\n")
	}

	noteWidth := max(m.width-40, 10)
	for i, g := range m.gifts {
		cursor := "  "
		from := m.names[g.FromUserID]
		if from == "" {
			from = g.FromUserID.String()[:8]
		}
		fromStyled := s.normal.Render(fmt.Sprintf("%-16s", from))
		if i == m.cursor {
			cursor = s.accent.Render("▸") + " "
			fromStyled = s.selected.Render(fmt.Sprintf("%-16s", from))
		}
		fmt.Fprintf(&b, " %s%s %s %s  %s\n",
			cursor,
			domain.GiftEmoji(g.GiftType),
			fromStyled,
			s.dim.Render(truncStr(oneLine(g.Message), noteWidth)),
			s.meta.Render(formatTime(g.CreatedAt)),
		)
	}

	if m.sending {
		b.WriteString("\n" + renderInput(s, "gift:", m.input, "username gift [note]", true, m.cursorOn) + "\n")
		b.WriteString(" " + s.meta.Render("gifts: "+giftMenu()) + "\n")
	}
	b.WriteString(statusLine(s, m.status, m.statusErr))
	return b.String()
}

// giftMenu lists the known gift types with their glyphs in a stable order.
func giftMenu() string {
	types := make([]string, 0, len(domain.GiftEmojis))
	for t := range domain.GiftEmojis {
		types = append(types, t)
	}
	sort.Strings(types)
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = domain.GiftEmojis[t] + " " + t
	}
	return strings.Join(parts, "  ")
}

func (m giftsModel) helpKeys() string {
	s := m.env.sheet.get()
	if m.sending {
		return s.helpEntry("enter", "send") + "  " + s.helpEntry("esc", "cancel")
	}
	return s.helpEntry("j/k", "nav") + "  " + s.helpEntry("s", "send") + "  " + s.helpEntry("d", "delete")
}

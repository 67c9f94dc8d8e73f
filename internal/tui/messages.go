package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/orkadia/orkadia/pkg/domain"
)

// messagesState distinguishes between the contact picker and a conversation.
type messagesState int

const (
	messagesPickState  messagesState = iota
	messagesConvoState               // viewing a single conversation
)

// messagesPollInterval is how often the open conversation polls for new messages.
const messagesPollInterval = 5 * time.Second

// -- messages --

type peerResolvedMsg struct {
	peer *domain.Profile
	err  error
}

type conversationLoadedMsg struct {
	peer     domain.Profile
	messages []domain.Message
	err      error
}

type messageSentMsg struct {
	err error
}

type messagesPollTickMsg time.Time

func messagesPollCmd() tea.Cmd {
	return tea.Tick(messagesPollInterval, func(t time.Time) tea.Msg {
		return messagesPollTickMsg(t)
	})
}

// -- model --

type messagesModel struct {
	env    *env
	state  messagesState
	recent []domain.Profile // peers opened this session, most recent first
	cursor int
	width  int
	height int

	// input is the username prompt in the picker and the composer in a conversation.
	input        string
	inputFocused bool
	cursorOn     bool
	status       string
	statusErr    bool

	peer     domain.Profile
	messages []domain.Message
}

func newMessagesModel(e *env) messagesModel {
	return messagesModel{env: e}
}

func (m messagesModel) Init() tea.Cmd {
	if m.state == messagesConvoState {
		return m.loadConversation()
	}
	return nil
}

func (m messagesModel) resolve(username string) tea.Cmd {
	e := m.env
	return func() tea.Msg {
		p, err := e.social.Lookup(context.Background(), username)
		return peerResolvedMsg{peer: p, err: err}
	}
}

// loadConversation fetches both directions and marks the peer's messages read.
func (m messagesModel) loadConversation() tea.Cmd {
	e := m.env
	peer := m.peer
	return func() tea.Msg {
		ctx := context.Background()
		msgs, err := e.social.Conversation(ctx, e.me, peer.ID)
		if err != nil {
			return conversationLoadedMsg{peer: peer, err: err}
		}
		// Read receipts are best-effort.
		_, _ = e.social.MarkRead(ctx, e.me, peer.ID) //nolint:errcheck
		return conversationLoadedMsg{peer: peer, messages: msgs}
	}
}

func (m messagesModel) send(body string) tea.Cmd {
	e := m.env
	to := m.peer.ID
	return func() tea.Msg {
		_, err := e.social.SendMessage(context.Background(), e.me, to, body)
		return messageSentMsg{err: err}
	}
}

func (m messagesModel) Update(msg tea.Msg) (messagesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case peerResolvedMsg:
		if msg.err != nil {
			m.status, m.statusErr = msg.err.Error(), true
			return m, nil
		}
		return m.open(*msg.peer)

	case conversationLoadedMsg:
		if msg.peer.ID == m.peer.ID {
			if msg.err != nil {
				m.status, m.statusErr = "error loading messages: "+msg.err.Error(), true
			} else {
				m.messages = msg.messages
			}
		}
		if m.state == messagesConvoState {
			return m, messagesPollCmd()
		}

	case messageSentMsg:
		if msg.err != nil {
			m.status, m.statusErr = "send failed: "+msg.err.Error(), true
			return m, nil
		}
		m.status = ""
		return m, m.loadConversation()

	case messagesPollTickMsg:
		if m.state == messagesConvoState {
			return m, m.loadConversation()
		}

	case cursorBlinkMsg:
		if m.inputFocused {
			m.cursorOn = !m.cursorOn
		}

	case tea.KeyMsg:
		m.cursorOn = true
		switch m.state {
		case messagesPickState:
			return m.updatePick(msg)
		case messagesConvoState:
			return m.updateConvo(msg)
		}
	}
	return m, nil
}

// open switches to the conversation with peer and moves it to the front of recent.
func (m messagesModel) open(peer domain.Profile) (messagesModel, tea.Cmd) {
	recent := []domain.Profile{peer}
	for _, p := range m.recent {
		if p.ID != peer.ID {
			recent = append(recent, p)
		}
	}
	m.recent = recent
	m.cursor = 0
	m.state = messagesConvoState
	m.peer = peer
	m.messages = nil
	m.input = ""
	m.inputFocused = true
	m.status = ""
	return m, m.loadConversation()
}

func (m messagesModel) updatePick(msg tea.KeyMsg) (messagesModel, tea.Cmd) {
	key := msg.String()
	if m.inputFocused {
		switch key {
		case "esc":
			m.inputFocused = false
			m.input = ""
		case "enter":
			name := strings.TrimSpace(m.input)
			m.input = ""
			m.inputFocused = false
			if name == "" {
				return m, nil
			}
			return m, m.resolve(name)
		default:
			m.input = editInput(m.input, msg)
		}
		return m, nil
	}

	switch key {
	case "j", "down":
		if m.cursor < len(m.recent)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		if m.cursor < len(m.recent) {
			return m.open(m.recent[m.cursor])
		}
	case "/", "n":
		m.inputFocused = true
		m.input = ""
		m.status = ""
	}
	return m, nil
}

func (m messagesModel) updateConvo(msg tea.KeyMsg) (messagesModel, tea.Cmd) {
	key := msg.String()

	if m.inputFocused {
		switch key {
		case "esc":
			m.inputFocused = false
			return m, nil
		case "enter":
			body := strings.TrimSpace(m.input)
			if body == "" {
				return m, nil
			}
			m.input = ""
			return m, m.send(body)
		default:
			m.input = editInput(m.input, msg)
			return m, nil
		}
	}

	// Nav mode
	switch key {
	case "esc":
		m.state = messagesPickState
		m.messages = nil
		m.input = ""
		m.status = ""
	case "enter", "i":
		m.inputFocused = true
		m.cursorOn = true
	case "r":
		return m, m.loadConversation()
	}
	return m, nil
}

func (m messagesModel) View() string {
	switch m.state {
	case messagesConvoState:
		return m.viewConvo()
	default:
		return m.viewPick()
	}
}

func (m messagesModel) viewPick() string {
	s := m.env.sheet.get()
	var b strings.Builder

	b.WriteString(" " + s.title.Render("Messages") + "\n")
	b.WriteString(separator(s, m.width))

	if len(m.recent) == 0 && !m.inputFocused {
		b.WriteString("\n " + s.dim.Render("no conversations yet · press / to message someone") + "\n")
	}
	for i, p := range m.recent {
		cursor := "  "
		name := s.normal.Render(p.Username)
		if i == m.cursor {
			cursor = s.accent.Render("▸") + " "
			name = s.selected.Render(p.Username)
		}
		fmt.Fprintf(&b, " %s%s  %s\n", cursor, name, s.meta.Render(p.DisplayName))
	}

	if m.inputFocused {
		b.WriteString("\n" + renderInput(s, "to:", m.input, "username", true, m.cursorOn) + "\n")
	}
	b.WriteString(statusLine(s, m.status, m.statusErr))
	return b.String()
}

func (m messagesModel) viewConvo() string {
	s := m.env.sheet.get()
	var b strings.Builder

	b.WriteString(" " + s.title.Render("Conversation with ") + s.selected.Render(m.peer.Username) + "\n")
	b.WriteString(separator(s, m.width))

	chrome := 4 // header + sep + input + status
	viewportHeight := max(m.height-chrome, 2)

	if len(m.messages) == 0 {
		for i := 1; i < viewportHeight; i++ {
			b.WriteByte('\n')
		}
		b.WriteString(" " + s.dim.Render("no messages yet") + "\n")
	} else {
		var lines []string
		for _, msg := range m.messages {
			lines = append(lines, strings.Split(m.renderMessage(s, msg), "\n")...)
		}
		// Show the last lines that fit, padded from the top.
		start := max(len(lines)-viewportHeight, 0)
		visible := lines[start:]
		for i := len(visible); i < viewportHeight; i++ {
			b.WriteByte('\n')
		}
		for _, line := range visible {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}

	b.WriteString(renderInput(s, "you ·", m.input, "type a message...", m.inputFocused, m.cursorOn))
	b.WriteByte('\n')
	if m.status != "" {
		if m.statusErr {
			b.WriteString(" " + s.warn.Render(m.status))
		} else {
			b.WriteString(" " + s.dim.Render(m.status))
		}
	}
	return b.String()
}

func (m messagesModel) renderMessage(s styles, msg domain.Message) string {
	timePart := s.meta.Render(fmt.Sprintf("%6s", formatClock(msg.CreatedAt)))

	isSelf := msg.FromUserID == m.env.me
	name := m.peer.Username
	nameStyle := s.accent
	bodyStyle := s.normal
	if isSelf {
		name = "you"
		nameStyle = s.selected
		bodyStyle = s.dim
	}
	receipt := ""
	if isSelf && msg.IsRead {
		receipt = " " + s.meta.Render("✓")
	}

	prefix := " " + timePart + "  " + nameStyle.Render(name) + s.meta.Render(" · ")
	indent := strings.Repeat(" ", lipgloss.Width(prefix))
	bodyWidth := max(m.width-lipgloss.Width(prefix)-2, 20)
	wrapped := strings.Split(lipgloss.NewStyle().Width(bodyWidth).Render(msg.Content), "\n")

	out := prefix + bodyStyle.Render(wrapped[0])
	for _, line := range wrapped[1:] {
		out += "\n" + indent + bodyStyle.Render(line)
	}
	return out + receipt
}

func (m messagesModel) helpKeys() string {
	s := m.env.sheet.get()
	switch {
	case m.inputFocused && m.state == messagesConvoState:
		return s.helpEntry("enter", "send") + "  " + s.helpEntry("esc", "nav")
	case m.inputFocused:
		return s.helpEntry("enter", "open") + "  " + s.helpEntry("esc", "cancel")
	case m.state == messagesConvoState:
		return s.helpEntry("enter", "type") + "  " + s.helpEntry("r", "refresh") + "  " + s.helpEntry("esc", "back")
	default:
		return s.helpEntry("j/k", "nav") + "  " + s.helpEntry("enter", "open") + "  " + s.helpEntry("/", "new")
	}
}

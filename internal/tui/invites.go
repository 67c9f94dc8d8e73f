package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/orkadia/orkadia/internal/invite"
	"github.com/orkadia/orkadia/pkg/domain"
)

// -- messages --

type invitesLoadedMsg struct {
	codes []domain.InviteCode
	stats domain.InviteStats
	err   error
}

type inviteCreatedMsg struct {
	code *domain.InviteCode
	err  error
}

type inviteRedeemedMsg struct {
	redemption *invite.Redemption
	err        error
}

type copyResultMsg struct {
	code string
	err  error
}

// -- model --

type invitesModel struct {
	env       *env
	codes     []domain.InviteCode
	stats     domain.InviteStats
	cursor    int
	loading   bool
	err       string
	status    string
	statusErr bool
	width     int
	height    int

	redeeming bool
	input     string
	cursorOn  bool
}

func newInvitesModel(e *env) invitesModel {
	return invitesModel{env: e, loading: true}
}

func (m invitesModel) Init() tea.Cmd {
	return m.load()
}

func (m invitesModel) load() tea.Cmd {
	e := m.env
	return func() tea.Msg {
		ctx := context.Background()
		codes, err := e.invites.Codes(ctx, e.me)
		if err != nil {
			return invitesLoadedMsg{err: err}
		}
		stats, err := e.invites.Stats(ctx, e.me)
		return invitesLoadedMsg{codes: codes, stats: stats, err: err}
	}
}

func (m invitesModel) create() tea.Cmd {
	e := m.env
	return func() tea.Msg {
		c, err := e.invites.Create(context.Background(), e.me, domain.DefaultInviteMaxUses, 0)
		return inviteCreatedMsg{code: c, err: err}
	}
}

func (m invitesModel) redeem(code string) tea.Cmd {
	e := m.env
	return func() tea.Msg {
		r, err := e.invites.Redeem(context.Background(), code, e.me)
		return inviteRedeemedMsg{redemption: r, err: err}
	}
}

func (m invitesModel) Update(msg tea.Msg) (invitesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case invitesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		m.err = ""
		m.codes = msg.codes
		m.stats = msg.stats
		if m.cursor >= len(m.codes) {
			m.cursor = max(len(m.codes)-1, 0)
		}

	case inviteCreatedMsg:
		if msg.err != nil {
			m.status, m.statusErr = "create failed: "+msg.err.Error(), true
			return m, nil
		}
		m.status, m.statusErr = "new code "+msg.code.Code, false
		return m, m.load()

	case inviteRedeemedMsg:
		if msg.err != nil {
			m.status, m.statusErr = msg.err.Error(), true
			return m, nil
		}
		m.status, m.statusErr = redemptionSummary(msg.redemption), false
		return m, m.load()

	case copyResultMsg:
		if msg.err != nil {
			m.status, m.statusErr = "copy failed: "+msg.err.Error(), true
		} else {
			m.status, m.statusErr = "copied "+msg.code, false
		}

	case cursorBlinkMsg:
		if m.redeeming {
			m.cursorOn = !m.cursorOn
		}

	case tea.KeyMsg:
		m.cursorOn = true
		if m.redeeming {
			return m.updateRedeem(msg)
		}
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.codes)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "c", "y":
			if m.cursor < len(m.codes) {
				code := m.codes[m.cursor].Code
				return m, func() tea.Msg {
					return copyResultMsg{code: code, err: clipboard.WriteAll(code)}
				}
			}
		case "n":
			m.status = ""
			return m, m.create()
		case "u", "/":
			m.redeeming = true
			m.input = ""
			m.status = ""
		case "r":
			m.loading = true
			return m, m.load()
		}
	}
	return m, nil
}

func (m invitesModel) updateRedeem(msg tea.KeyMsg) (invitesModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.redeeming = false
		m.input = ""
	case "enter":
		code := m.input
		m.redeeming = false
		m.input = ""
		return m, m.redeem(code)
	default:
		m.input = editInput(m.input, msg)
	}
	return m, nil
}

func redemptionSummary(r *invite.Redemption) string {
	if r == nil || r.Code == nil {
		return "redeemed"
	}
	out := "redeemed " + r.Code.Code
	if !r.RewardCredited {
		out += " · inviter reward pending"
	}
	if len(r.Milestones) > 0 {
		out += " · unlocked " + strings.Join(r.Milestones, ", ")
	}
	return out
}

func (m invitesModel) View() string {
	s := m.env.sheet.get()
	var b strings.Builder

	b.WriteString(" " + s.title.Render("Invites") + "\n")
	b.WriteString(separator(s, m.width))

	if m.loading && m.codes == nil {
		b.WriteString(" " + s.dim.Render("loading...") + "\n")
		return b.String()
	}
	if m.err != "" {
		b.WriteString(" " + s.warn.Render("error: "+m.err) + "\n")
		return b.String()
	}

	fmt.Fprintf(&b, " %s  %s  %s\n\n",
		s.selected.Render(fmt.Sprintf("%d invited", m.stats.TotalInvites)),
		s.accent.Render(fmt.Sprintf("+%d pts", m.stats.RewardPoints)),
		s.meta.Render(fmt.Sprintf("%d invite achievements", m.stats.Achievements)),
	)

	if len(m.codes) == 0 {
		b.WriteString(" " + s.dim.Render("no invite codes yet · press n to create one") + "\n")
	}
	for i, c := range m.codes {
		cursor := "  "
		code := s.normal.Render(c.Code)
		if i == m.cursor {
			cursor = s.accent.Render("▸") + " "
			code = s.selected.Render(c.Code)
		}
		uses := fmt.Sprintf("%d/%d used", c.UsedCount, c.MaxUses)
		state := c.Status(time.Now())
		stateStyle := s.dim
		if state != "active" {
			stateStyle = s.meta
		}
		fmt.Fprintf(&b, " %s%s  %s  %s  %s\n",
			cursor, code,
			s.dim.Render(fmt.Sprintf("%-10s", uses)),
			stateStyle.Render(fmt.Sprintf("%-9s", state)),
			s.meta.Render(formatTime(c.CreatedAt)),
		)
	}

	if m.redeeming {
		b.WriteString("\n" + renderInput(s, "code:", m.input, "invite code", true, m.cursorOn) + "\n")
	}
	b.WriteString(statusLine(s, m.status, m.statusErr))
	return b.String()
}

func (m invitesModel) helpKeys() string {
	s := m.env.sheet.get()
	if m.redeeming {
		return s.helpEntry("enter", "redeem") + "  " + s.helpEntry("esc", "cancel")
	}
	return s.helpEntry("j/k", "nav") + "  " + s.helpEntry("c", "copy") + "  " + s.helpEntry("n", "new") + "  " + s.helpEntry("u", "use code")
}

package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/orkadia/orkadia/pkg/domain"
)

// profileState is the state machine for profile editing.
type profileState int

const (
	profileViewing profileState = iota
	profileEditing              // editing the selected field
	profilePosting              // composing a wall post
)

// profileField is one editable row of the profile card.
type profileField struct {
	label string
	get   func(p *domain.Profile) string
	set   func(u *domain.ProfileUpdate, v string)
}

var profileFields = []profileField{
	{"username", func(p *domain.Profile) string { return p.Username }, func(u *domain.ProfileUpdate, v string) { u.Username = &v }},
	{"display name", func(p *domain.Profile) string { return p.DisplayName }, func(u *domain.ProfileUpdate, v string) { u.DisplayName = &v }},
	{"bio", func(p *domain.Profile) string { return p.Bio }, func(u *domain.ProfileUpdate, v string) { u.Bio = &v }},
	{"avatar", func(p *domain.Profile) string { return p.AvatarURL }, func(u *domain.ProfileUpdate, v string) { u.AvatarURL = &v }},
	{"background", func(p *domain.Profile) string { return p.HouseBackground }, func(u *domain.ProfileUpdate, v string) { u.HouseBackground = &v }},
	{"music", func(p *domain.Profile) string { return p.HouseMusic }, func(u *domain.ProfileUpdate, v string) { u.HouseMusic = &v }},
	{"city", func(p *domain.Profile) string { return p.City }, func(u *domain.ProfileUpdate, v string) { u.City = &v }},
	{"country", func(p *domain.Profile) string { return p.Country }, func(u *domain.ProfileUpdate, v string) { u.Country = &v }},
}

// -- messages --

type profileLoadedMsg struct {
	profile *domain.Profile
	stats   domain.InviteStats
	err     error
}

type profileSavedMsg struct {
	profile *domain.Profile
	err     error
}

type postCreatedMsg struct {
	err error
}

// -- model --

type profileModel struct {
	env       *env
	state     profileState
	profile   *domain.Profile
	stats     domain.InviteStats
	cursor    int
	input     string
	cursorOn  bool
	loading   bool
	err       string
	status    string
	statusErr bool
	width     int
	height    int
}

func newProfileModel(e *env) profileModel {
	return profileModel{env: e, loading: true}
}

func (m profileModel) Init() tea.Cmd {
	return m.load()
}

func (m profileModel) load() tea.Cmd {
	e := m.env
	return func() tea.Msg {
		ctx := context.Background()
		p, err := e.social.Profile(ctx, e.me)
		if err != nil {
			return profileLoadedMsg{err: err}
		}
		// Stats are decoration; a failure leaves them zero.
		stats, _ := e.invites.Stats(ctx, e.me) //nolint:errcheck
		return profileLoadedMsg{profile: p, stats: stats}
	}
}

func (m profileModel) save(field profileField, value string) tea.Cmd {
	e := m.env
	return func() tea.Msg {
		var u domain.ProfileUpdate
		field.set(&u, value)
		p, err := e.social.UpdateProfile(context.Background(), e.me, u)
		return profileSavedMsg{profile: p, err: err}
	}
}

func (m profileModel) post(content string) tea.Cmd {
	e := m.env
	return func() tea.Msg {
		_, err := e.social.CreatePost(context.Background(), e.me, content)
		return postCreatedMsg{err: err}
	}
}

func (m profileModel) Update(msg tea.Msg) (profileModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case profileLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err.Error()
		} else {
			m.profile = msg.profile
			m.stats = msg.stats
			m.err = ""
		}

	case profileSavedMsg:
		if msg.err != nil {
			m.status, m.statusErr = msg.err.Error(), true
			return m, nil
		}
		m.profile = msg.profile
		m.status, m.statusErr = "saved", false

	case postCreatedMsg:
		if msg.err != nil {
			m.status, m.statusErr = msg.err.Error(), true
		} else {
			m.status, m.statusErr = "posted", false
		}

	case cursorBlinkMsg:
		m.cursorOn = !m.cursorOn

	case tea.KeyMsg:
		m.cursorOn = true
		switch m.state {
		case profileEditing, profilePosting:
			return m.updateInput(msg)
		default:
			return m.updateNav(msg)
		}
	}
	return m, nil
}

func (m profileModel) updateNav(msg tea.KeyMsg) (profileModel, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(profileFields)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter", "e":
		if m.profile == nil {
			return m, nil
		}
		m.state = profileEditing
		m.input = profileFields[m.cursor].get(m.profile)
		m.status = ""
	case "p":
		m.state = profilePosting
		m.input = ""
		m.status = ""
	case "r":
		m.loading = true
		return m, m.load()
	}
	return m, nil
}

func (m profileModel) updateInput(msg tea.KeyMsg) (profileModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = profileViewing
		m.input = ""
		return m, nil
	case "enter":
		value := strings.TrimSpace(m.input)
		state := m.state
		m.state = profileViewing
		m.input = ""
		if state == profilePosting {
			return m, m.post(value)
		}
		return m, m.save(profileFields[m.cursor], value)
	default:
		m.input = editInput(m.input, msg)
	}
	return m, nil
}

func (m profileModel) View() string {
	s := m.env.sheet.get()
	var b strings.Builder

	b.WriteString(" " + s.title.Render("Profile") + "\n")
	b.WriteString(separator(s, m.width))

	if m.loading && m.profile == nil {
		b.WriteString(" " + s.dim.Render("loading...") + "\n")
		return b.String()
	}
	if m.err != "" {
		b.WriteString(" " + s.warn.Render("error: "+m.err) + "\n")
		return b.String()
	}
	if m.profile == nil {
		return b.String()
	}

	p := m.profile
	name := p.DisplayName
	if name == "" {
		name = p.Username
	}
	fmt.Fprintf(&b, " %s  %s  %s\n",
		s.selected.Render(name),
		s.dim.Render("@"+p.Username),
		s.accent.Render(fmt.Sprintf("%d pts", p.Points)),
	)
	fmt.Fprintf(&b, " %s\n\n", s.meta.Render(fmt.Sprintf(
		"%d invited · %d reward pts · citizen since %s",
		m.stats.TotalInvites, m.stats.RewardPoints, p.CreatedAt.Local().Format("Jan 2006"),
	)))

	valueWidth := max(m.width-20, 20)
	for i, f := range profileFields {
		cursor := "  "
		label := s.dim.Render(fmt.Sprintf("%-12s", f.label))
		if i == m.cursor {
			cursor = s.accent.Render("▸") + " "
			label = s.selected.Render(fmt.Sprintf("%-12s", f.label))
		}
		value := f.get(p)
		var rendered string
		if value == "" {
			rendered = s.meta.Render("—")
		} else {
			rendered = s.normal.Render(truncStr(oneLine(value), valueWidth))
		}
		fmt.Fprintf(&b, " %s%s %s\n", cursor, label, rendered)
	}

	switch m.state {
	case profileEditing:
		b.WriteString("\n" + renderInput(s, profileFields[m.cursor].label+":", m.input, "", true, m.cursorOn) + "\n")
		if profileFields[m.cursor].label == "bio" {
			b.WriteString(" " + s.meta.Render(fmt.Sprintf("%d/%d", len([]rune(m.input)), domain.MaxBioLen)) + "\n")
		}
	case profilePosting:
		b.WriteString("\n" + renderInput(s, "post:", m.input, "what's happening?", true, m.cursorOn) + "\n")
	}

	b.WriteString(statusLine(s, m.status, m.statusErr))
	return b.String()
}

func (m profileModel) helpKeys() string {
	s := m.env.sheet.get()
	if m.state != profileViewing {
		return s.helpEntry("enter", "save") + "  " + s.helpEntry("esc", "cancel")
	}
	return s.helpEntry("j/k", "nav") + "  " + s.helpEntry("e", "edit") + "  " + s.helpEntry("p", "post") + "  " + s.helpEntry("r", "reload")
}

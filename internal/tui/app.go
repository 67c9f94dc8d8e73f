package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/orkadia/orkadia/internal/invite"
	"github.com/orkadia/orkadia/internal/notify"
	"github.com/orkadia/orkadia/internal/social"
	"github.com/orkadia/orkadia/internal/theme"
	"github.com/orkadia/orkadia/pkg/domain"
)

type view int

const (
	viewProfile view = iota
	viewMessages
	viewAchievements
	viewInvites
	viewGifts
	viewBlocks
)

// Deps are the services the TUI drives on behalf of the signed-in citizen.
type Deps struct {
	Social  *social.Service
	Invites *invite.Service
	Themes  *theme.Manager
	Toasts  *notify.Queue
	UserID  uuid.UUID
	Version string
}

// env is shared by every tab.
type env struct {
	social  *social.Service
	invites *invite.Service
	me      uuid.UUID
	sheet   *stylesheet
}

// usernames resolves profile ids to usernames. Unresolvable ids render as a
// short id prefix.
func (e *env) usernames(ctx context.Context, ids []uuid.UUID) map[uuid.UUID]string {
	out := make(map[uuid.UUID]string, len(ids))
	for _, id := range ids {
		if _, ok := out[id]; ok {
			continue
		}
		p, err := e.social.Profile(ctx, id)
		if err != nil {
			out[id] = id.String()[:8]
			continue
		}
		out[id] = p.Username
	}
	return out
}

// themeChangedMsg reports the result of persisting a new theme.
type themeChangedMsg struct {
	theme theme.Theme
	err   error
}

// App is the root Bubbletea model.
type App struct {
	env          *env
	themes       *theme.Manager
	toasts       *notify.Queue
	version      string
	view         view
	profile      profileModel
	messages     messagesModel
	achievements achievementsModel
	invites      invitesModel
	gifts        giftsModel
	blocks       blocksModel
	helpOpen     bool
	me           *domain.Profile
	toastCount   int
	status       string
	width        int
	height       int
	frame        int // logo shimmer animation frame
}

// NewApp creates a new TUI application. The stylesheet is attached to the
// theme manager so theme changes restyle every tab.
func NewApp(d Deps) App {
	e := &env{social: d.Social, invites: d.Invites, me: d.UserID, sheet: newStylesheet()}
	if d.Themes != nil {
		d.Themes.Attach(e.sheet)
	}
	toasts := d.Toasts
	if toasts == nil {
		toasts = notify.NewQueue(nil)
	}
	return App{
		env:          e,
		themes:       d.Themes,
		toasts:       toasts,
		version:      d.Version,
		profile:      newProfileModel(e),
		messages:     newMessagesModel(e),
		achievements: newAchievementsModel(e),
		invites:      newInvitesModel(e),
		gifts:        newGiftsModel(e),
		blocks:       newBlocksModel(e),
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.profile.Init(), shimmerTickCmd(), toastTickCmd(), cursorBlinkCmd())
}

func (a App) currentTheme() theme.Theme {
	if a.themes != nil {
		return a.themes.Current()
	}
	return theme.Default
}

func (a App) cycleTheme() tea.Cmd {
	m := a.themes
	if m == nil {
		return nil
	}
	next := theme.Next(m.Current())
	return func() tea.Msg {
		return themeChangedMsg{theme: next, err: m.Set(next)}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + tabs(1) + status(1) + help(1) = 5 lines
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 5}
		a.profile, _ = a.profile.Update(bodyMsg)
		a.messages, _ = a.messages.Update(bodyMsg)
		a.achievements, _ = a.achievements.Update(bodyMsg)
		a.invites, _ = a.invites.Update(bodyMsg)
		a.gifts, _ = a.gifts.Update(bodyMsg)
		a.blocks, _ = a.blocks.Update(bodyMsg)
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case toastTickMsg:
		a.toasts.Sweep()
		n := a.toasts.Len()
		grew := n > a.toastCount
		a.toastCount = n
		if grew {
			// A banner means points moved; refresh the header and the
			// tabs that show earned state.
			return a, tea.Batch(toastTickCmd(), a.profile.load(), a.achievements.load())
		}
		return a, toastTickCmd()

	case cursorBlinkMsg:
		a.profile, _ = a.profile.Update(msg)
		a.messages, _ = a.messages.Update(msg)
		a.invites, _ = a.invites.Update(msg)
		a.gifts, _ = a.gifts.Update(msg)
		a.blocks, _ = a.blocks.Update(msg)
		return a, cursorBlinkCmd()

	case themeChangedMsg:
		if msg.err != nil {
			a.status = "theme: " + msg.err.Error()
		} else {
			a.status = "theme: " + string(msg.theme)
		}
		return a, nil

	case profileLoadedMsg:
		if msg.err == nil && msg.profile != nil {
			a.me = msg.profile
		}
		var cmd tea.Cmd
		a.profile, cmd = a.profile.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if a.helpOpen {
			switch msg.String() {
			case "h", "esc":
				a.helpOpen = false
			case "q", "ctrl+c":
				return a, tea.Quit
			}
			return a, nil
		}

		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// Global keys (only when not editing)
		if !a.isEditing() {
			a.status = ""
			switch msg.String() {
			case "h", "?":
				a.helpOpen = true
				return a, nil
			case "q":
				return a, tea.Quit
			case "t":
				return a, a.cycleTheme()
			case "X":
				a.dismissToast()
				return a, nil
			case "1":
				return a.switchTo(viewProfile)
			case "2":
				return a.switchTo(viewMessages)
			case "3":
				return a.switchTo(viewAchievements)
			case "4":
				return a.switchTo(viewInvites)
			case "5":
				return a.switchTo(viewGifts)
			case "6":
				return a.switchTo(viewBlocks)
			}
		}
	}

	var cmd tea.Cmd
	switch a.view {
	case viewProfile:
		a.profile, cmd = a.profile.Update(msg)
	case viewMessages:
		a.messages, cmd = a.messages.Update(msg)
	case viewAchievements:
		a.achievements, cmd = a.achievements.Update(msg)
	case viewInvites:
		a.invites, cmd = a.invites.Update(msg)
	case viewGifts:
		a.gifts, cmd = a.gifts.Update(msg)
	case viewBlocks:
		a.blocks, cmd = a.blocks.Update(msg)
	}
	return a, cmd
}

// dismissToast removes the oldest pending toast ahead of its deadline.
func (a *App) dismissToast() {
	if pending := a.toasts.Pending(); len(pending) > 0 {
		a.toasts.Remove(pending[0].ID)
	}
	a.toastCount = a.toasts.Len()
}

func (a App) switchTo(v view) (tea.Model, tea.Cmd) {
	if a.view == v {
		return a, nil
	}
	a.view = v
	switch v {
	case viewProfile:
		return a, a.profile.Init()
	case viewMessages:
		return a, a.messages.Init()
	case viewAchievements:
		return a, a.achievements.Init()
	case viewInvites:
		return a, a.invites.Init()
	case viewGifts:
		return a, a.gifts.Init()
	case viewBlocks:
		return a, a.blocks.Init()
	}
	return a, nil
}

func (a App) isEditing() bool {
	switch a.view {
	case viewProfile:
		return a.profile.state != profileViewing
	case viewMessages:
		return a.messages.inputFocused
	case viewInvites:
		return a.invites.redeeming
	case viewGifts:
		return a.gifts.sending
	case viewBlocks:
		return a.blocks.blocking
	}
	return false
}

func (a App) View() string {
	s := a.env.sheet.get()

	logo := renderShimmerLogo(s.pal, a.frame)
	statsLine := ""
	if a.me != nil {
		parts := []string{"@" + a.me.Username, fmt.Sprintf("%d pts", a.me.Points)}
		if a.me.City != "" {
			parts = append(parts, a.me.City)
		}
		statsLine = s.meta.Render(strings.Join(parts, " · "))
	}

	header := center(logo, a.width)
	if statsLine != "" {
		header += "\n" + center(statsLine, a.width)
	} else {
		header += "\n"
	}

	type tabEntry struct {
		key  string
		name string
		v    view
	}
	tabs := []tabEntry{
		{"1", "Profile", viewProfile},
		{"2", "Messages", viewMessages},
		{"3", "Achievements", viewAchievements},
		{"4", "Invites", viewInvites},
		{"5", "Gifts", viewGifts},
		{"6", "Blocks", viewBlocks},
	}
	colWidth := a.width / len(tabs)
	var tabBar strings.Builder
	for _, t := range tabs {
		var label string
		if t.v == a.view {
			label = s.accent.Render(t.key) + " " + s.selected.Underline(true).Render(t.name)
		} else {
			label = s.meta.Render(t.key) + " " + s.dim.Render(t.name)
		}
		labelWidth := lipgloss.Width(label)
		leftPad := max((colWidth-labelWidth)/2, 0)
		rightPad := max(colWidth-labelWidth-leftPad, 0)
		tabBar.WriteString(strings.Repeat(" ", leftPad) + label + strings.Repeat(" ", rightPad))
	}

	var body, keys string
	switch a.view {
	case viewProfile:
		body, keys = a.profile.View(), a.profile.helpKeys()
	case viewMessages:
		body, keys = a.messages.View(), a.messages.helpKeys()
	case viewAchievements:
		body, keys = a.achievements.View(), a.achievements.helpKeys()
	case viewInvites:
		body, keys = a.invites.View(), a.invites.helpKeys()
	case viewGifts:
		body, keys = a.gifts.View(), a.gifts.helpKeys()
	case viewBlocks:
		body, keys = a.blocks.View(), a.blocks.helpKeys()
	}
	help := " " + s.helpEntry("1-6", "tabs") + "  " + keys
	if !a.isEditing() {
		help += "  " + s.helpEntry("t", "theme") + "  " + s.helpEntry("h", "help") + "  " + s.helpEntry("q", "quit")
	}

	if a.helpOpen {
		body = helpView(s, a.currentTheme())
		if a.version != "" {
			body += "\n  " + s.meta.Render("version "+a.version) + "\n"
		}
		help = " " + s.helpEntry("esc", "close")
	}

	pending := a.toasts.Pending()
	toasts := renderToasts(s, pending, a.toasts.Now(), a.width)

	// Chrome budget: header(2) + tabs(1) + status(1) + help(1) = 5 lines + toasts + body
	chrome := 5 + notify.Offset(len(pending))
	body = strings.TrimRight(truncateToHeight(body, a.height-chrome), "\n")

	status := ""
	if a.status != "" {
		status = " " + s.dim.Render(a.status)
	}

	if toasts != "" {
		return fmt.Sprintf("%s\n%s\n%s\n%s\n%s\n%s", header, tabBar.String(), toasts, body, status, help)
	}
	return fmt.Sprintf("%s\n%s\n%s\n%s\n%s", header, tabBar.String(), body, status, help)
}

// center pads s on the left so it sits in the middle of width columns.
func center(s string, width int) string {
	pad := max((width-lipgloss.Width(s))/2, 0)
	return strings.Repeat(" ", pad) + s
}

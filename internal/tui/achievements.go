package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/orkadia/orkadia/pkg/domain"
)

type achievementsLoadedMsg struct {
	earned []domain.EarnedAchievement
	err    error
}

type achievementsModel struct {
	env     *env
	earned  map[string]domain.EarnedAchievement // by key
	cursor  int
	loading bool
	err     string
	width   int
	height  int
}

func newAchievementsModel(e *env) achievementsModel {
	return achievementsModel{env: e, loading: true}
}

func (m achievementsModel) Init() tea.Cmd {
	return m.load()
}

func (m achievementsModel) load() tea.Cmd {
	e := m.env
	return func() tea.Msg {
		earned, err := e.social.Achievements(context.Background(), e.me)
		return achievementsLoadedMsg{earned: earned, err: err}
	}
}

func (m achievementsModel) Update(msg tea.Msg) (achievementsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case achievementsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		m.err = ""
		m.earned = make(map[string]domain.EarnedAchievement, len(msg.earned))
		for _, a := range msg.earned {
			m.earned[a.Key] = a
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(domain.Catalog)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "r":
			m.loading = true
			return m, m.load()
		}
	}
	return m, nil
}

func (m achievementsModel) View() string {
	s := m.env.sheet.get()
	var b strings.Builder

	fmt.Fprintf(&b, " %s  %s\n", s.title.Render("Achievements"),
		s.meta.Render(fmt.Sprintf("%d/%d earned", len(m.earned), len(domain.Catalog))))
	b.WriteString(separator(s, m.width))

	if m.loading && m.earned == nil {
		b.WriteString(" " + s.dim.Render("loading...") + "\n")
		return b.String()
	}
	if m.err != "" {
		b.WriteString(" " + s.warn.Render("error: "+m.err) + "\n")
		return b.String()
	}

	for i, def := range domain.Catalog {
		cursor := "  "
		if i == m.cursor {
			cursor = s.accent.Render("▸") + " "
		}
		got, ok := m.earned[def.Key]
		name := fmt.Sprintf("%-14s", def.Name)
		rarity := fmt.Sprintf("%-10s", def.Rarity)
		pts := fmt.Sprintf("+%-4d", def.Points)
		if ok {
			fmt.Fprintf(&b, " %s%s %s %s %s %s\n",
				cursor, def.Icon,
				RarityStyle(def.Rarity).Render(name),
				RarityStyle(def.Rarity).Faint(true).Render(rarity),
				s.accent.Render(pts),
				s.meta.Render("earned "+formatTime(got.EarnedAt)),
			)
		} else {
			fmt.Fprintf(&b, " %s%s %s %s %s %s\n",
				cursor, "·",
				s.dim.Render(name),
				s.meta.Render(rarity),
				s.meta.Render(pts),
				s.meta.Render("locked"),
			)
		}
	}

	if m.cursor < len(domain.Catalog) {
		b.WriteString("\n " + s.normal.Render(domain.Catalog[m.cursor].Description) + "\n")
	}
	return b.String()
}

func (m achievementsModel) helpKeys() string {
	s := m.env.sheet.get()
	return s.helpEntry("j/k", "nav") + "  " + s.helpEntry("r", "reload")
}

package tui

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/orkadia/orkadia/internal/theme"
	"github.com/orkadia/orkadia/pkg/domain"
)

// Shimmer animation for the ORKADIA logo.
type shimmerTickMsg time.Time

func shimmerTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return shimmerTickMsg(t)
	})
}

// palette is the colour set of one theme.
type palette struct {
	text      string
	bright    string
	dim       string
	meta      string
	accent    string
	logoDeep  string
	logoLight string
	warn      string
	toastEdge string
}

var palettes = map[theme.Theme]palette{
	theme.Light: {
		text: "#3a3f4b", bright: "#111318", dim: "#6b7280", meta: "#9ca3af",
		accent: "#2563eb", logoDeep: "#1e3a8a", logoLight: "#60a5fa",
		warn: "#dc2626", toastEdge: "#93c5fd",
	},
	theme.Dark: {
		text: "#c0c4d0", bright: "#e4e4ec", dim: "#8890a0", meta: "#505868",
		accent: "#34d474", logoDeep: "#1a3a24", logoLight: "#4ade80",
		warn: "#f87171", toastEdge: "#404858",
	},
	theme.Christmas: {
		text: "#e8e2d0", bright: "#fff8e7", dim: "#9fb4a0", meta: "#5f7a62",
		accent: "#e23d3d", logoDeep: "#14532d", logoLight: "#ef4444",
		warn: "#fbbf24", toastEdge: "#166534",
	},
	theme.NewYear: {
		text: "#d8d4f0", bright: "#ffffff", dim: "#a09cc0", meta: "#5c5880",
		accent: "#facc15", logoDeep: "#3b0764", logoLight: "#fde047",
		warn: "#fb7185", toastEdge: "#a855f7",
	},
}

// styles is the rendered style set for the active palette.
type styles struct {
	pal palette

	dim         lipgloss.Style
	normal      lipgloss.Style
	selected    lipgloss.Style
	meta        lipgloss.Style
	accent      lipgloss.Style
	title       lipgloss.Style
	warn        lipgloss.Style
	helpKey     lipgloss.Style
	helpLabel   lipgloss.Style
	prompt      lipgloss.Style
	placeholder lipgloss.Style
	toast       lipgloss.Style
}

func buildStyles(p palette) styles {
	return styles{
		pal:         p,
		dim:         lipgloss.NewStyle().Foreground(lipgloss.Color(p.dim)),
		normal:      lipgloss.NewStyle().Foreground(lipgloss.Color(p.text)),
		selected:    lipgloss.NewStyle().Foreground(lipgloss.Color(p.bright)).Bold(true),
		meta:        lipgloss.NewStyle().Foreground(lipgloss.Color(p.meta)),
		accent:      lipgloss.NewStyle().Foreground(lipgloss.Color(p.accent)),
		title:       lipgloss.NewStyle().Foreground(lipgloss.Color(p.dim)).Bold(true),
		warn:        lipgloss.NewStyle().Foreground(lipgloss.Color(p.warn)),
		helpKey:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.dim)),
		helpLabel:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.meta)),
		prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color(p.accent)).Bold(true),
		placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color(p.meta)).Italic(true),
		toast: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.toastEdge)).
			Padding(0, 1),
	}
}

// stylesheet is the theme root of the TUI. The theme manager adds and removes
// theme-<name> classes on it; the class present picks the palette.
type stylesheet struct {
	mu      sync.RWMutex
	classes map[string]bool
	cur     styles
}

func newStylesheet() *stylesheet {
	st := &stylesheet{classes: map[string]bool{}}
	theme.Apply(st, theme.Default)
	return st
}

func (st *stylesheet) AddClass(name string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.classes[name] = true
	if t, ok := strings.CutPrefix(name, "theme-"); ok {
		if p, ok := palettes[theme.Theme(t)]; ok {
			st.cur = buildStyles(p)
		}
	}
}

func (st *stylesheet) RemoveClass(name string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.classes, name)
}

// themeClasses returns the theme classes currently on the sheet.
func (st *stylesheet) themeClasses() []string {
	st.mu.RLock()
	defer st.mu.RUnlock()
	var out []string
	for _, t := range theme.All {
		if st.classes[t.Class()] {
			out = append(out, t.Class())
		}
	}
	return out
}

func (st *stylesheet) get() styles {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.cur
}

// renderShimmerLogo renders "O R K A D I A" as a flowing wave between the
// palette's deep and light logo colours.
func renderShimmerLogo(p palette, frame int) string {
	const text = "ORKADIA"
	n := len(text)
	r0, g0, b0 := hexToRGB(p.logoDeep)
	r1, g1, b1 := hexToRGB(p.logoLight)

	var out string
	t := float64(frame)
	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1)

		phase := t*0.1 - x*3.0
		phase += math.Sin(t*0.023) * 2.0

		b := math.Sin(phase)*0.5 + 0.5
		b = math.Pow(b, 1.3)

		tide := math.Sin(t*0.035) * 0.12
		b = b*0.75 + tide + 0.18
		if b > 1.0 {
			b = 1.0
		} else if b < 0.05 {
			b = 0.05
		}

		r := clampByte(float64(r0) + b*float64(r1-r0))
		g := clampByte(float64(g0) + b*float64(g1-g0))
		bl := clampByte(float64(b0) + b*float64(b1-b0))
		color := fmt.Sprintf("#%02X%02X%02X", r, g, bl)

		out += lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color)).Render(string(text[i]))
		if i < n-1 {
			out += "  "
		}
	}
	return out
}

func clampByte(v float64) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

// hexToRGB parses a hex color string (#RRGGBB) into r,g,b ints.
func hexToRGB(hex string) (int, int, int) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 128, 128, 128
	}
	var r, g, b int
	_, _ = fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b) //nolint:errcheck
	return r, g, b
}

var rarityColors = map[domain.Rarity]lipgloss.Color{
	domain.RarityCommon:    lipgloss.Color("#9ca3af"),
	domain.RarityRare:      lipgloss.Color("#3b82f6"),
	domain.RarityEpic:      lipgloss.Color("#a855f7"),
	domain.RarityLegendary: lipgloss.Color("#f59e0b"),
}

// RarityStyle returns a bold style colored for the given rarity.
func RarityStyle(r domain.Rarity) lipgloss.Style {
	if c, ok := rarityColors[r]; ok {
		return lipgloss.NewStyle().Foreground(c).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(rarityColors[domain.RarityCommon]).Bold(true)
}

// helpEntry renders a single "key label" pair for help bars.
func (s styles) helpEntry(key, label string) string {
	return s.helpKey.Render(key) + " " + s.helpLabel.Render(label)
}

// helpView renders the command reference overlay.
func helpView(s styles, current theme.Theme) string {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.pal.accent)).
		Bold(true).
		Render("O R K A D I A")

	cmdStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(s.pal.bright))
	sectionStyle := s.title

	commands := []struct{ cmd, desc string }{
		{"orkadia", "Open the interactive client"},
		{"orkadia login", "Sign in through the browser"},
		{"orkadia logout", "Clear your session"},
		{"orkadia whoami", "Show the signed-in citizen"},
		{"orkadia theme [name]", "Show or change the theme"},
		{"orkadia redeem <code>", "Use an invite code"},
		{"orkadia invites", "List your invite codes"},
		{"orkadia send <user> ..", "Send a private message"},
		{"orkadia block <user>", "Stop a citizen messaging you"},
	}
	keys := []struct{ key, desc string }{
		{"1-6", "switch tabs"},
		{"t", "cycle theme"},
		{"X", "dismiss the oldest toast"},
		{"r", "reload the current tab"},
		{"q", "quit"},
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n  %s\n\n", title, s.dim.Render("theme: "+string(current)))

	fmt.Fprintf(&b, "  %s\n", sectionStyle.Render("Commands"))
	for _, c := range commands {
		fmt.Fprintf(&b, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-24s", c.cmd)), s.dim.Render(c.desc))
	}
	fmt.Fprintf(&b, "\n  %s\n", sectionStyle.Render("Keys"))
	for _, k := range keys {
		fmt.Fprintf(&b, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-24s", k.key)), s.dim.Render(k.desc))
	}
	return b.String()
}

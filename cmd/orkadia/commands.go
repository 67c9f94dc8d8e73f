package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/orkadia/orkadia/internal/invite"
	"github.com/orkadia/orkadia/internal/notify"
	"github.com/orkadia/orkadia/internal/theme"
	"github.com/orkadia/orkadia/internal/tui"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#34d474")).Bold(true)
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	nameStyle = lipgloss.NewStyle().Bold(true)
)

// printer writes achievement and XP events as plain lines.
func printer(w io.Writer) notify.Notifier {
	return notify.NotifierFunc(func(e notify.Event) {
		switch e.Kind {
		case notify.KindXP:
			fmt.Fprintf(w, "%s %s\n", okStyle.Render(fmt.Sprintf("+%d XP", e.Points)), dimStyle.Render(e.Title))
		default:
			fmt.Fprintf(w, "%s %s %s %s\n",
				e.Icon,
				tui.RarityStyle(e.Rarity).Render("achievement unlocked: "+e.Title),
				okStyle.Render(fmt.Sprintf("+%d", e.Points)),
				dimStyle.Render(e.Description),
			)
		}
	})
}

// open opens a session whose events print to the command's output.
func (c *cli) open(ctx context.Context) (*session, error) {
	return openSession(ctx, c.cfg, c.log, printer(c.out))
}

func (c *cli) runTUI(ctx context.Context) error {
	logger, closeLog := c.fileLogger()
	defer closeLog()

	toasts := notify.NewQueue(nil)
	s, err := openSession(ctx, c.cfg, logger, toasts)
	if errors.Is(err, errNotSignedIn) || errors.Is(err, errSessionExpired) {
		printGreeting(c.out)
		return nil
	}
	if err != nil {
		return err
	}
	defer s.close() //nolint:errcheck

	themes, err := theme.Load(c.cfg.ThemePath())
	if err != nil {
		return err
	}

	app := tui.NewApp(tui.Deps{
		Social:  s.social,
		Invites: s.invites,
		Themes:  themes,
		Toasts:  toasts,
		UserID:  s.me,
		Version: version,
	})
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

// fileLogger logs to the log file so the alt screen stays clean. It falls
// back to discarding when the file cannot be opened.
func (c *cli) fileLogger() (*slog.Logger, func()) {
	opts := &slog.HandlerOptions{Level: c.cfg.LogLevel}
	if err := os.MkdirAll(c.cfg.Home, 0o700); err == nil {
		f, err := os.OpenFile(c.cfg.LogPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err == nil {
			return slog.New(slog.NewTextHandler(f, opts)), func() { f.Close() } //nolint:errcheck
		}
	}
	return slog.New(slog.NewTextHandler(io.Discard, opts)), func() {}
}

func (c *cli) runLogout() error {
	if c.cfg.Token == "" {
		fmt.Fprintln(c.out, "Already logged out.")
		return nil
	}
	if err := c.cfg.ClearToken(); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Logged out.")
	return nil
}

func (c *cli) runWhoami(ctx context.Context) error {
	s, err := c.open(ctx)
	if err != nil {
		return err
	}
	defer s.close() //nolint:errcheck

	p, err := s.social.Profile(ctx, s.me)
	if err != nil {
		return err
	}
	stats, err := s.invites.Stats(ctx, s.me)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s  %s\n", nameStyle.Render("@"+p.Username), okStyle.Render(fmt.Sprintf("%d pts", p.Points)))
	fmt.Fprintln(c.out, dimStyle.Render(fmt.Sprintf("%d invited · citizen since %s · %s store",
		stats.TotalInvites, p.CreatedAt.Local().Format("Jan 2006"), c.cfg.Store)))
	return nil
}

func (c *cli) runTheme(args []string) error {
	m, err := theme.Load(c.cfg.ThemePath())
	if err != nil {
		return err
	}
	if len(args) == 0 {
		current := m.Current()
		for _, t := range theme.All {
			mark := "  "
			if t == current {
				mark = okStyle.Render("▸ ")
			}
			fmt.Fprintln(c.out, mark+string(t))
		}
		return nil
	}
	t, err := theme.Parse(args[0])
	if err != nil {
		return err
	}
	if err := m.Set(t); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "theme set to "+string(t))
	return nil
}

func (c *cli) runRedeem(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: orkadia redeem <code>")
	}
	s, err := c.open(ctx)
	if err != nil {
		return err
	}
	defer s.close() //nolint:errcheck

	r, err := s.invites.Redeem(ctx, args[0], s.me)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, okStyle.Render("redeemed "+r.Code.Code))
	if !r.RewardCredited {
		fmt.Fprintln(c.out, dimStyle.Render("the inviter's reward could not be credited yet"))
	}
	return nil
}

func (c *cli) runInvites(ctx context.Context) error {
	s, err := c.open(ctx)
	if err != nil {
		return err
	}
	defer s.close() //nolint:errcheck

	codes, err := s.invites.Codes(ctx, s.me)
	if err != nil {
		return err
	}
	stats, err := s.invites.Stats(ctx, s.me)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s  %s  %s\n",
		nameStyle.Render(fmt.Sprintf("%d invited", stats.TotalInvites)),
		okStyle.Render(fmt.Sprintf("+%d pts", stats.RewardPoints)),
		dimStyle.Render(fmt.Sprintf("%d invite achievements", stats.Achievements)),
	)
	if len(codes) == 0 {
		fmt.Fprintln(c.out, dimStyle.Render("no invite codes yet · orkadia invite-new"))
		return nil
	}
	now := time.Now()
	for _, ic := range codes {
		fmt.Fprintf(c.out, "%s  %-10s  %s\n",
			nameStyle.Render(ic.Code),
			fmt.Sprintf("%d/%d used", ic.UsedCount, ic.MaxUses),
			dimStyle.Render(ic.Status(now)),
		)
	}
	return nil
}

func (c *cli) runInviteNew(ctx context.Context, args []string) error {
	// 0 asks Create for the default cap.
	maxUses := 0
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return invite.ErrInvalidMaxUses
		}
		maxUses = n
	}
	s, err := c.open(ctx)
	if err != nil {
		return err
	}
	defer s.close() //nolint:errcheck

	ic, err := s.invites.Create(ctx, s.me, maxUses, 0)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s  %s\n", nameStyle.Render(ic.Code), dimStyle.Render(fmt.Sprintf("%d uses", ic.MaxUses)))
	return nil
}

func (c *cli) runSend(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: orkadia send <username> <text>")
	}
	s, err := c.open(ctx)
	if err != nil {
		return err
	}
	defer s.close() //nolint:errcheck

	to, err := s.social.Lookup(ctx, args[0])
	if err != nil {
		return err
	}
	if _, err := s.social.SendMessage(ctx, s.me, to.ID, strings.Join(args[1:], " ")); err != nil {
		return err
	}
	fmt.Fprintln(c.out, okStyle.Render("sent to @"+to.Username))
	return nil
}

func (c *cli) runBlock(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: orkadia block <username> [reason]")
	}
	s, err := c.open(ctx)
	if err != nil {
		return err
	}
	defer s.close() //nolint:errcheck

	p, err := s.social.Lookup(ctx, args[0])
	if err != nil {
		return err
	}
	if _, err := s.social.Block(ctx, s.me, p.ID, strings.Join(args[1:], " ")); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "blocked @"+p.Username)
	return nil
}

func (c *cli) runUnblock(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: orkadia unblock <username>")
	}
	s, err := c.open(ctx)
	if err != nil {
		return err
	}
	defer s.close() //nolint:errcheck

	p, err := s.social.Lookup(ctx, args[0])
	if err != nil {
		return err
	}
	if err := s.social.Unblock(ctx, s.me, p.ID); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "unblocked @"+p.Username)
	return nil
}

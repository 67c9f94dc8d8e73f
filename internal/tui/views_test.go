package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/orkadia/orkadia/internal/invite"
	"github.com/orkadia/orkadia/internal/notify"
	"github.com/orkadia/orkadia/internal/social"
	"github.com/orkadia/orkadia/internal/theme"
	"github.com/orkadia/orkadia/pkg/domain"
)

func sized[M interface {
	Update(tea.Msg) (M, tea.Cmd)
}](m M) M {
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

func TestProfileEditBioGrantsWriter(t *testing.T) {
	f := setup(t)
	m := sized(newProfileModel(f.env))
	m, _ = m.Update(exec(t, m.load()))
	if m.profile == nil {
		t.Fatalf("profile not loaded: %q", m.err)
	}

	// Move to the bio row and open it.
	m, _ = m.Update(key("j"))
	m, _ = m.Update(key("j"))
	m, _ = m.Update(key("e"))
	if m.state != profileEditing {
		t.Fatalf("state = %d, want profileEditing", m.state)
	}
	m, _ = m.Update(runes("I write long enough bios for the badge"))
	m, cmd := m.Update(key("enter"))
	if m.state != profileViewing {
		t.Errorf("state after enter = %d, want profileViewing", m.state)
	}
	m, _ = m.Update(exec(t, cmd))

	if m.statusErr {
		t.Fatalf("save failed: %s", m.status)
	}
	if !strings.HasPrefix(m.profile.Bio, "I write long") {
		t.Errorf("Bio = %q", m.profile.Bio)
	}
	pending := f.toasts.Pending()
	if len(pending) != 2 || pending[0].Title != "Writer" || pending[1].Kind != notify.KindXP {
		t.Errorf("pending toasts = %+v, want a Writer banner and its XP toast", pending)
	}
	if !strings.Contains(m.View(), "I write long") {
		t.Error("expected saved bio in profile view")
	}
}

func TestProfileUsernameTakenShowsError(t *testing.T) {
	f := setup(t)
	m := sized(newProfileModel(f.env))
	m, _ = m.Update(exec(t, m.load()))

	m, _ = m.Update(key("e"))
	m.input = "BOB"
	m, cmd := m.Update(key("enter"))
	m, _ = m.Update(exec(t, cmd))
	if !m.statusErr || m.status != social.ErrUsernameTaken.Error() {
		t.Errorf("status = %q (err=%v), want %q", m.status, m.statusErr, social.ErrUsernameTaken)
	}
}

func TestProfileEscCancelsEdit(t *testing.T) {
	f := setup(t)
	m := sized(newProfileModel(f.env))
	m, _ = m.Update(exec(t, m.load()))
	m, _ = m.Update(key("e"))
	m, cmd := m.Update(key("esc"))
	if m.state != profileViewing || cmd != nil {
		t.Errorf("esc: state=%d cmd=%v, want viewing and no command", m.state, cmd != nil)
	}
}

func TestProfilePostGrantsSocial(t *testing.T) {
	f := setup(t)
	m := sized(newProfileModel(f.env))
	m, _ = m.Update(key("p"))
	m, _ = m.Update(runes("hello orkadia"))
	m, cmd := m.Update(key("enter"))
	m, _ = m.Update(exec(t, cmd))
	if m.status != "posted" {
		t.Errorf("status = %q, want posted", m.status)
	}
	pending := f.toasts.Pending()
	if len(pending) != 2 || pending[0].Title != "Social" || pending[1].Kind != notify.KindXP {
		t.Errorf("pending toasts = %+v, want a Social banner and its XP toast", pending)
	}
}

func TestMessagesOpenSendAndRender(t *testing.T) {
	f := setup(t)
	m := sized(newMessagesModel(f.env))

	m, _ = m.Update(key("/"))
	m, _ = m.Update(runes("Bob"))
	m, cmd := m.Update(key("enter"))
	m, cmd = m.Update(exec(t, cmd)) // peerResolvedMsg
	if m.state != messagesConvoState || m.peer.ID != f.bob.ID {
		t.Fatalf("expected conversation with bob, got state=%d peer=%q (status %q)", m.state, m.peer.Username, m.status)
	}
	m, _ = m.Update(exec(t, cmd)) // conversationLoadedMsg
	if !strings.Contains(m.View(), "no messages yet") {
		t.Errorf("expected empty conversation, got:\n%s", m.View())
	}

	m, _ = m.Update(runes("hi bob"))
	m, cmd = m.Update(key("enter"))
	if m.input != "" {
		t.Errorf("input = %q, want cleared after send", m.input)
	}
	m, cmd = m.Update(exec(t, cmd)) // messageSentMsg
	m, _ = m.Update(exec(t, cmd))   // conversationLoadedMsg

	if len(m.messages) != 1 || m.messages[0].Content != "hi bob" {
		t.Fatalf("messages = %+v, want the sent message", m.messages)
	}
	if !strings.Contains(m.View(), "hi bob") {
		t.Errorf("expected sent message in view, got:\n%s", m.View())
	}
	pending := f.toasts.Pending()
	if len(pending) != 2 || pending[0].Title != "First Message" || pending[1].Kind != notify.KindXP {
		t.Errorf("pending toasts = %+v, want a First Message banner and its XP toast", pending)
	}

	// Back to the picker; bob is now a recent contact.
	m.inputFocused = false
	m, _ = m.Update(key("esc"))
	if m.state != messagesPickState || len(m.recent) != 1 {
		t.Errorf("expected picker with one recent contact, got state=%d recent=%d", m.state, len(m.recent))
	}
	if !strings.Contains(m.View(), "bob") {
		t.Error("expected bob in recent list")
	}
}

func TestMessagesMarksIncomingRead(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	if _, err := f.social.SendMessage(ctx, f.bob.ID, f.ada.ID, "are you there?"); err != nil {
		t.Fatalf("SendMessage() error: %v", err)
	}
	m := sized(newMessagesModel(f.env))
	m, cmd := m.open(*f.bob)
	m, _ = m.Update(exec(t, cmd))
	if len(m.messages) != 1 {
		t.Fatalf("messages = %d, want 1", len(m.messages))
	}

	msgs, err := f.social.Conversation(ctx, f.bob.ID, f.ada.ID)
	if err != nil {
		t.Fatalf("Conversation() error: %v", err)
	}
	if len(msgs) != 1 || !msgs[0].IsRead {
		t.Error("expected bob's message marked read after ada opened the conversation")
	}
}

func TestMessagesBlockedSendShowsError(t *testing.T) {
	f := setup(t)
	if _, err := f.social.Block(context.Background(), f.bob.ID, f.ada.ID, ""); err != nil {
		t.Fatalf("Block() error: %v", err)
	}
	m := sized(newMessagesModel(f.env))
	m, _ = m.open(*f.bob)
	m.input = "hello?"
	m, cmd := m.Update(key("enter"))
	m, _ = m.Update(exec(t, cmd))
	if !m.statusErr || !strings.Contains(m.status, social.ErrBlocked.Error()) {
		t.Errorf("status = %q, want blocked error", m.status)
	}
	if f.toasts.Len() != 0 {
		t.Error("a refused message must not grant achievements")
	}
}

func TestMessagesUnknownUser(t *testing.T) {
	f := setup(t)
	m := sized(newMessagesModel(f.env))
	m.inputFocused = true
	m.input = "nobody"
	m, cmd := m.Update(key("enter"))
	m, _ = m.Update(exec(t, cmd))
	if m.state != messagesPickState || !m.statusErr {
		t.Errorf("expected error in picker, got state=%d status=%q", m.state, m.status)
	}
}

func TestAchievementsViewMarksEarned(t *testing.T) {
	f := setup(t)
	if _, err := f.social.CreatePost(context.Background(), f.ada.ID, "first"); err != nil {
		t.Fatalf("CreatePost() error: %v", err)
	}
	m := sized(newAchievementsModel(f.env))
	m, _ = m.Update(exec(t, m.load()))
	if _, ok := m.earned[domain.KeySocial]; !ok {
		t.Fatalf("earned = %v, want social", m.earned)
	}
	view := m.View()
	if !strings.Contains(view, "1/11 earned") {
		t.Errorf("expected earned count in view, got:\n%s", view)
	}
	if !strings.Contains(view, "locked") {
		t.Error("expected locked achievements listed")
	}
}

func TestInvitesCreateAndList(t *testing.T) {
	f := setup(t)
	m := sized(newInvitesModel(f.env))
	m, _ = m.Update(exec(t, m.load()))
	if !strings.Contains(m.View(), "no invite codes yet") {
		t.Errorf("expected empty state, got:\n%s", m.View())
	}

	m, cmd := m.Update(key("n"))
	m, cmd = m.Update(exec(t, cmd)) // inviteCreatedMsg
	m, _ = m.Update(exec(t, cmd))   // invitesLoadedMsg
	if len(m.codes) != 1 {
		t.Fatalf("codes = %d, want 1", len(m.codes))
	}
	c := m.codes[0]
	if c.MaxUses != domain.DefaultInviteMaxUses || len(c.Code) != 8 {
		t.Errorf("code = %+v, want 8 chars and default max uses", c)
	}
	view := m.View()
	if !strings.Contains(view, c.Code) || !strings.Contains(view, "0/5 used") {
		t.Errorf("expected code row in view, got:\n%s", view)
	}
}

func TestInvitesRedeemOwnCodeRefused(t *testing.T) {
	f := setup(t)
	c, err := f.invites.Create(context.Background(), f.ada.ID, 0, 0)
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	m := sized(newInvitesModel(f.env))
	m, _ = m.Update(key("u"))
	m, _ = m.Update(runes(strings.ToLower(c.Code)))
	m, cmd := m.Update(key("enter"))
	m, _ = m.Update(exec(t, cmd))
	if !m.statusErr || m.status != invite.ErrSelfInvite.Error() {
		t.Errorf("status = %q, want %q", m.status, invite.ErrSelfInvite)
	}
}

func TestInvitesRedeemCreditsInviterOnly(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	c, err := f.invites.Create(ctx, f.bob.ID, 0, 0)
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	m := sized(newInvitesModel(f.env))
	m.redeeming = true
	m.input = c.Code
	m, cmd := m.Update(key("enter"))
	m, _ = m.Update(exec(t, cmd))
	if m.statusErr || !strings.Contains(m.status, "redeemed "+c.Code) {
		t.Fatalf("status = %q, want redeemed", m.status)
	}
	if !strings.Contains(m.status, domain.KeyFirstInvite) {
		t.Errorf("status = %q, want first-invite milestone", m.status)
	}

	bob, err := f.store.Profile(ctx, f.bob.ID)
	if err != nil {
		t.Fatalf("Profile() error: %v", err)
	}
	// 50 for the invite plus 25 for the first-invite milestone.
	if bob.Points != 75 {
		t.Errorf("bob points = %d, want 75", bob.Points)
	}
	// Bob's XP and milestone banners are not ada's to see.
	if f.toasts.Len() != 0 {
		t.Errorf("ada's toast queue has %d events, want 0", f.toasts.Len())
	}
}

func TestInvitesCopyResult(t *testing.T) {
	f := setup(t)
	m := newInvitesModel(f.env)
	m, _ = m.Update(copyResultMsg{code: "ABCD2345"})
	if m.status != "copied ABCD2345" {
		t.Errorf("status = %q", m.status)
	}
}

func TestGiftsListAndDelete(t *testing.T) {
	f := setup(t)
	if _, err := f.social.SendGift(context.Background(), f.bob.ID, f.ada.ID, "coffee", "for the morning"); err != nil {
		t.Fatalf("SendGift() error: %v", err)
	}
	m := sized(newGiftsModel(f.env))
	m, _ = m.Update(exec(t, m.load()))
	view := m.View()
	for _, want := range []string{"☕", "bob", "for the morning"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in gifts view, got:\n%s", want, view)
		}
	}

	m, cmd := m.Update(key("d"))
	m, cmd = m.Update(exec(t, cmd)) // giftDeletedMsg
	m, _ = m.Update(exec(t, cmd))   // giftsLoadedMsg
	if len(m.gifts) != 0 {
		t.Errorf("gifts = %d, want 0 after delete", len(m.gifts))
	}
}

func TestGiftsSend(t *testing.T) {
	f := setup(t)
	m := sized(newGiftsModel(f.env))
	m, _ = m.Update(key("s"))
	if !strings.Contains(m.View(), "coffee") {
		t.Error("expected gift menu while sending")
	}
	m, _ = m.Update(runes("bob Flowers well done"))
	m, cmd := m.Update(key("enter"))
	m, _ = m.Update(exec(t, cmd))
	if m.statusErr || m.status != "gift sent to bob" {
		t.Fatalf("status = %q", m.status)
	}
	got, err := f.social.Gifts(context.Background(), f.bob.ID)
	if err != nil {
		t.Fatalf("Gifts() error: %v", err)
	}
	if len(got) != 1 || got[0].GiftType != "flowers" || got[0].Message != "well done" {
		t.Errorf("bob's gifts = %+v", got)
	}
}

func TestGiftsPromptShownBeforeListLoads(t *testing.T) {
	f := setup(t)
	tests := []struct {
		name string
		err  string
		want string
	}{
		{"loading", "", "loading..."},
		{"load failed", "connection refused", "error: connection refused"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := sized(newGiftsModel(f.env))
			m.loading = tt.err == ""
			m.err = tt.err
			m, _ = m.Update(key("s"))
			view := m.View()
			for _, want := range []string{tt.want, "gift:", "coffee"} {
				if !strings.Contains(view, want) {
					t.Errorf("view missing %q:\n%s", want, view)
				}
			}
		})
	}
}

func TestGiftsSendErrors(t *testing.T) {
	f := setup(t)
	tests := []struct {
		line string
		want string
	}{
		{"bob", errGiftUsage.Error()},
		{"bob dragon", social.ErrUnknownGift.Error()},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			m := newGiftsModel(f.env)
			m.sending = true
			m.input = tt.line
			m, cmd := m.Update(key("enter"))
			m, _ = m.Update(exec(t, cmd))
			if !m.statusErr || m.status != tt.want {
				t.Errorf("status = %q, want %q", m.status, tt.want)
			}
		})
	}
}

func TestBlocksBlockAndUnblock(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	m := sized(newBlocksModel(f.env))
	m, _ = m.Update(exec(t, m.load()))
	if !strings.Contains(m.View(), "nobody blocked") {
		t.Errorf("expected empty state, got:\n%s", m.View())
	}

	m, _ = m.Update(key("b"))
	m, _ = m.Update(runes("bob too noisy"))
	m, cmd := m.Update(key("enter"))
	m, cmd = m.Update(exec(t, cmd)) // blockChangedMsg
	m, _ = m.Update(exec(t, cmd))   // blocksLoadedMsg
	if m.status != "blocked bob" || len(m.blocks) != 1 {
		t.Fatalf("status=%q blocks=%d", m.status, len(m.blocks))
	}
	if !strings.Contains(m.View(), "too noisy") {
		t.Error("expected block reason in view")
	}
	if blocked, _ := f.store.IsBlocked(ctx, f.ada.ID, f.bob.ID); !blocked {
		t.Error("expected ada to block bob in the store")
	}

	m, cmd = m.Update(key("u"))
	m, cmd = m.Update(exec(t, cmd))
	m, _ = m.Update(exec(t, cmd))
	if m.status != "unblocked bob" || len(m.blocks) != 0 {
		t.Errorf("status=%q blocks=%d", m.status, len(m.blocks))
	}
}

func TestBlocksPromptShownBeforeListLoads(t *testing.T) {
	f := setup(t)
	m := sized(newBlocksModel(f.env))
	m, _ = m.Update(key("b"))
	view := m.View()
	if !strings.Contains(view, "loading...") || !strings.Contains(view, "block:") {
		t.Errorf("expected loading line and block prompt, got:\n%s", view)
	}
}

func TestBlocksDuplicateShowsError(t *testing.T) {
	f := setup(t)
	if _, err := f.social.Block(context.Background(), f.ada.ID, f.bob.ID, ""); err != nil {
		t.Fatalf("Block() error: %v", err)
	}
	m := newBlocksModel(f.env)
	m.blocking = true
	m.input = "bob"
	m, cmd := m.Update(key("enter"))
	m, _ = m.Update(exec(t, cmd))
	if !m.statusErr || m.status != social.ErrAlreadyBlocked.Error() {
		t.Errorf("status = %q, want %q", m.status, social.ErrAlreadyBlocked)
	}
}

func TestRenderToastsStackHeight(t *testing.T) {
	s := buildStyles(palettes[theme.Light])
	now := time.Now()
	events := []notify.Event{
		{Kind: notify.KindAchievement, Title: "Collector", Description: "Earned five achievements", Points: 100, Rarity: domain.RarityEpic, Icon: "🏆", ShownAt: now},
		{Kind: notify.KindXP, Points: 50, Title: "Invite redeemed", ShownAt: now},
	}
	out := renderToasts(s, events, now, 100)
	lines := strings.Split(out, "\n")
	if len(lines) != notify.Offset(len(events)) {
		t.Errorf("toast stack has %d lines, want %d", len(lines), notify.Offset(len(events)))
	}
	if !strings.Contains(out, "Collector") || !strings.Contains(out, "+50 XP") {
		t.Errorf("missing toast content:\n%s", out)
	}
	if renderToasts(s, nil, now, 100) != "" {
		t.Error("no events should render nothing")
	}
}

func TestStylesheetKeepsOneThemeClass(t *testing.T) {
	st := newStylesheet()
	for _, th := range theme.All {
		theme.Apply(st, th)
		got := st.themeClasses()
		if len(got) != 1 || got[0] != th.Class() {
			t.Errorf("after Apply(%q) classes = %v", th, got)
		}
		if st.get().pal != palettes[th] {
			t.Errorf("after Apply(%q) palette not swapped", th)
		}
	}
}

func TestRarityStyleRendersText(t *testing.T) {
	for _, r := range []domain.Rarity{domain.RarityCommon, domain.RarityRare, domain.RarityEpic, domain.RarityLegendary, "mythic"} {
		if got := RarityStyle(r).Render("x"); !strings.Contains(got, "x") {
			t.Errorf("RarityStyle(%q) lost text: %q", r, got)
		}
	}
}

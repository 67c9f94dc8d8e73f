package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/orkadia/orkadia/internal/invite"
	"github.com/orkadia/orkadia/internal/social"
	"github.com/orkadia/orkadia/internal/theme"
	"github.com/orkadia/orkadia/pkg/domain"
)

// localEnv points the CLI at a sqlite database under a temp home.
func localEnv(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("ORKADIA_HOME", home)
	t.Setenv("ORKADIA_STORE", "sqlite")
	t.Setenv("ORKADIA_DSN", "")
	t.Setenv("ORKADIA_TOKEN", "")
	t.Setenv("ORKADIA_LOG_LEVEL", "error")
	return home
}

// as runs the CLI as the local citizen user and returns its output.
func as(t *testing.T, user string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("ORKADIA_USER", user)
	var out bytes.Buffer
	err := run(context.Background(), args, &out)
	return out.String(), err
}

func mustAs(t *testing.T, user string, args ...string) string {
	t.Helper()
	out, err := as(t, user, args...)
	if err != nil {
		t.Fatalf("%s %v: %v", user, args, err)
	}
	return out
}

var codePattern = regexp.MustCompile(`[A-Z2-7]{8}`)

func TestRunVersion(t *testing.T) {
	var out bytes.Buffer
	if err := run(context.Background(), []string{"version"}, &out); err != nil {
		t.Fatalf("run(version) error: %v", err)
	}
	if out.String() != "orkadia dev\n" {
		t.Errorf("output = %q", out.String())
	}
}

func TestRunHelpListsCommands(t *testing.T) {
	var out bytes.Buffer
	if err := run(context.Background(), []string{"help"}, &out); err != nil {
		t.Fatalf("run(help) error: %v", err)
	}
	for _, cmd := range []string{"login", "redeem", "invite-new", "unblock", "theme"} {
		if !strings.Contains(out.String(), "orkadia "+cmd) {
			t.Errorf("help missing %q", cmd)
		}
	}
}

func TestRunUnknownCommand(t *testing.T) {
	localEnv(t)
	if _, err := as(t, "ada", "conjure"); err == nil || !strings.Contains(err.Error(), "conjure") {
		t.Errorf("expected unknown command error, got %v", err)
	}
}

func TestInviteFlow(t *testing.T) {
	localEnv(t)

	out := mustAs(t, "ada", "invite-new", "2")
	code := codePattern.FindString(out)
	if code == "" {
		t.Fatalf("no code in output %q", out)
	}
	if !strings.Contains(out, "2 uses") {
		t.Errorf("output = %q, want max uses", out)
	}

	if _, err := as(t, "ada", "redeem", code); err == nil || !strings.Contains(err.Error(), "own invite") {
		t.Errorf("ada redeeming her own code: err = %v", err)
	}

	out = mustAs(t, "bob", "redeem", strings.ToLower(code))
	if !strings.Contains(out, "redeemed "+code) {
		t.Errorf("bob redeem output = %q", out)
	}
	if strings.Contains(out, "XP") || strings.Contains(out, "First Invite") {
		t.Errorf("bob's output shows ada's rewards: %q", out)
	}

	out = mustAs(t, "ada", "invites")
	for _, want := range []string{"1 invited", "+50 pts", code, "1/2 used", "active"} {
		if !strings.Contains(out, want) {
			t.Errorf("invites output missing %q:\n%s", want, out)
		}
	}

	out = mustAs(t, "ada", "whoami")
	if !strings.Contains(out, "@ada") || !strings.Contains(out, "75 pts") {
		t.Errorf("whoami output = %q, want @ada with 75 pts", out)
	}

	mustAs(t, "carol", "redeem", code)
	if _, err := as(t, "dave", "redeem", code); err == nil || !strings.Contains(err.Error(), "no uses left") {
		t.Errorf("redeeming an exhausted code: err = %v", err)
	}
}

func TestInviteNewMaxUses(t *testing.T) {
	localEnv(t)
	for _, arg := range []string{"-1", "many"} {
		if _, err := as(t, "ada", "invite-new", arg); !errors.Is(err, invite.ErrInvalidMaxUses) {
			t.Errorf("invite-new %s: err = %v, want ErrInvalidMaxUses", arg, err)
		}
	}
	out := mustAs(t, "ada", "invite-new", "0")
	if want := fmt.Sprintf("%d uses", domain.DefaultInviteMaxUses); !strings.Contains(out, want) {
		t.Errorf("invite-new 0 output = %q, want the default %q", out, want)
	}
}

func TestSendAndBlock(t *testing.T) {
	localEnv(t)
	mustAs(t, "bob", "whoami")

	out := mustAs(t, "ada", "send", "bob", "hello", "there")
	if !strings.Contains(out, "sent to @bob") {
		t.Errorf("send output = %q", out)
	}
	if !strings.Contains(out, "First Message") {
		t.Errorf("expected first-message achievement line, got %q", out)
	}

	out = mustAs(t, "bob", "block", "ada", "spam")
	if !strings.Contains(out, "blocked @ada") {
		t.Errorf("block output = %q", out)
	}
	if _, err := as(t, "ada", "send", "bob", "again"); !errors.Is(err, social.ErrBlocked) {
		t.Errorf("send while blocked: err = %v, want ErrBlocked", err)
	}
	if _, err := as(t, "bob", "block", "ada"); !errors.Is(err, social.ErrAlreadyBlocked) {
		t.Errorf("second block: err = %v, want ErrAlreadyBlocked", err)
	}

	mustAs(t, "bob", "unblock", "ada")
	if _, err := as(t, "bob", "unblock", "ada"); !errors.Is(err, social.ErrNotBlocked) {
		t.Errorf("second unblock: err = %v, want ErrNotBlocked", err)
	}
	mustAs(t, "ada", "send", "bob", "again")
}

func TestSendUsage(t *testing.T) {
	localEnv(t)
	if _, err := as(t, "ada", "send", "bob"); err == nil || !strings.Contains(err.Error(), "usage") {
		t.Errorf("expected usage error, got %v", err)
	}
}

func TestThemeCommand(t *testing.T) {
	home := localEnv(t)

	out := mustAs(t, "ada", "theme")
	for _, th := range theme.All {
		if !strings.Contains(out, string(th)) {
			t.Errorf("theme list missing %q", th)
		}
	}

	mustAs(t, "ada", "theme", "christmas")
	m, err := theme.Load(filepath.Join(home, "theme"))
	if err != nil {
		t.Fatalf("theme.Load() error: %v", err)
	}
	if m.Current() != theme.Christmas {
		t.Errorf("persisted theme = %q, want christmas", m.Current())
	}

	if _, err := as(t, "ada", "theme", "halloween"); !errors.Is(err, theme.ErrUnknownTheme) {
		t.Errorf("unknown theme: err = %v", err)
	}
}

func TestLocalStoreNeedsCitizenName(t *testing.T) {
	localEnv(t)
	if _, err := as(t, "!!!", "whoami"); !errors.Is(err, errNoLocalUser) {
		t.Errorf("err = %v, want errNoLocalUser", err)
	}
}

func TestRemoteStoreNeedsToken(t *testing.T) {
	localEnv(t)
	t.Setenv("ORKADIA_STORE", "remote")
	if _, err := as(t, "ada", "whoami"); !errors.Is(err, errNotSignedIn) {
		t.Errorf("err = %v, want errNotSignedIn", err)
	}

	out := mustAs(t, "ada")
	if !strings.Contains(out, "orkadia login") {
		t.Errorf("expected greeting when signed out, got %q", out)
	}
}

func TestLoginRequiresRemoteStore(t *testing.T) {
	localEnv(t)
	if _, err := as(t, "ada", "login"); err == nil || !strings.Contains(err.Error(), "remote") {
		t.Errorf("err = %v, want remote store error", err)
	}
}

func TestLogout(t *testing.T) {
	home := localEnv(t)
	t.Setenv("ORKADIA_STORE", "remote")
	tokPath := filepath.Join(home, "token")
	if err := os.WriteFile(tokPath, []byte("tok\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	out := mustAs(t, "ada", "logout")
	if !strings.Contains(out, "Logged out.") {
		t.Errorf("output = %q", out)
	}
	if _, err := os.Stat(tokPath); !os.IsNotExist(err) {
		t.Errorf("token file still present: %v", err)
	}

	out = mustAs(t, "ada", "logout")
	if !strings.Contains(out, "Already logged out.") {
		t.Errorf("second logout output = %q", out)
	}
}

func TestCallbackHandler(t *testing.T) {
	exchange := func(_ context.Context, code string) (string, error) {
		if code == "bad" {
			return "", errors.New("invalid grant")
		}
		return "token-for-" + code, nil
	}
	tests := []struct {
		name      string
		query     string
		wantCode  int
		wantToken string
	}{
		{"ok", "state=s1&code=abc", http.StatusOK, "token-for-abc"},
		{"state mismatch", "state=other&code=abc", http.StatusForbidden, ""},
		{"missing state", "code=abc", http.StatusForbidden, ""},
		{"missing code", "state=s1", http.StatusBadRequest, ""},
		{"provider error", "state=s1&error=access_denied&error_description=denied", http.StatusBadRequest, ""},
		{"exchange failure", "state=s1&code=bad", http.StatusInternalServerError, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := make(chan string, 1)
			errs := make(chan error, 1)
			h := callbackHandler("s1", exchange, tokens, errs)

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback?"+tt.query, nil))

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if tt.wantToken != "" {
				select {
				case got := <-tokens:
					if got != tt.wantToken {
						t.Errorf("token = %q, want %q", got, tt.wantToken)
					}
				default:
					t.Error("expected a token")
				}
				if !strings.Contains(rec.Body.String(), "authenticated") {
					t.Error("expected success page")
				}
				return
			}
			select {
			case <-errs:
			default:
				t.Error("expected an error on the error channel")
			}
			if len(tokens) != 0 {
				t.Error("no token expected")
			}
		})
	}
}

func TestRandomTokenIsUnique(t *testing.T) {
	a, err := randomToken(16, func(b []byte) string { return string(b) })
	if err != nil {
		t.Fatal(err)
	}
	b, _ := randomToken(16, func(b []byte) string { return string(b) }) //nolint:errcheck
	if len(a) != 16 || a == b {
		t.Errorf("randomToken gave %d bytes, equal=%v", len(a), a == b)
	}
}

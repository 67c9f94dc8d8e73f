package browser

import (
	"errors"
	"path/filepath"
	"slices"
	"testing"
)

func TestCommand(t *testing.T) {
	const url = "https://orkadia.app/auth"
	tests := []struct {
		name     string
		goos     string
		override string
		wantProg string
		wantArgs []string
	}{
		{"darwin", "darwin", "", "open", []string{url}},
		{"linux", "linux", "", "xdg-open", []string{url}},
		{"bsd", "openbsd", "", "xdg-open", []string{url}},
		{"windows", "windows", "", "rundll32", []string{"url.dll,FileProtocolHandler", url}},
		{"override", "linux", "firefox", "firefox", []string{url}},
		{"override with args", "darwin", "firefox --new-tab", "firefox", []string{"--new-tab", url}},
		{"override placeholder", "linux", "w3m -o url=%s", "w3m", []string{"-o", "url=" + url}},
		{"blank override", "darwin", "   ", "open", []string{url}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := command(tt.goos, tt.override, url)
			if err != nil {
				t.Fatalf("command() error: %v", err)
			}
			if got := filepath.Base(cmd.Path); got != tt.wantProg && cmd.Args[0] != tt.wantProg {
				t.Errorf("program = %q, want %q", got, tt.wantProg)
			}
			if got := cmd.Args[1:]; !slices.Equal(got, tt.wantArgs) {
				t.Errorf("args = %q, want %q", got, tt.wantArgs)
			}
		})
	}
}

func TestCommandUnsupported(t *testing.T) {
	if _, err := command("plan9", "", "https://orkadia.app"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("err = %v, want ErrUnsupported", err)
	}
}

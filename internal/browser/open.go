// Package browser hands URLs to the desktop's browser for the login flow.
package browser

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// ErrUnsupported is returned when no opener is known for the platform.
var ErrUnsupported = errors.New("no browser opener for this platform")

// Open starts the browser on url without waiting for it to exit.
// $BROWSER, when set, wins over the platform opener.
func Open(url string) error {
	cmd, err := command(runtime.GOOS, os.Getenv("BROWSER"), url)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("browser.Open: %w", err)
	}
	// Reap the opener in the background.
	go cmd.Wait() //nolint:errcheck
	return nil
}

// command builds the opener for goos. override is a $BROWSER style value:
// a program name, optionally with arguments, where %s marks the URL.
func command(goos, override, url string) (*exec.Cmd, error) {
	if fields := strings.Fields(override); len(fields) > 0 {
		args := fields[1:]
		placed := false
		for i, a := range args {
			if strings.Contains(a, "%s") {
				args[i] = strings.ReplaceAll(a, "%s", url)
				placed = true
			}
		}
		if !placed {
			args = append(args, url)
		}
		return exec.Command(fields[0], args...), nil
	}
	switch goos {
	case "darwin":
		return exec.Command("open", url), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", url), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url), nil
	default:
		return nil, fmt.Errorf("browser.Open: %w: %s", ErrUnsupported, goos)
	}
}

package main

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/orkadia/orkadia/internal/browser"
	"github.com/orkadia/orkadia/pkg/client"
)

// loginProvider is the OAuth provider the browser login starts with.
const loginProvider = "github"

// loginTimeout bounds the wait for the browser callback.
const loginTimeout = 2 * time.Minute

// exchangeFunc trades the one-time auth code for an access token.
type exchangeFunc func(ctx context.Context, code string) (string, error)

func (c *cli) runLogin(ctx context.Context) error {
	if c.cfg.Local() {
		return fmt.Errorf("login needs the remote store, ORKADIA_STORE is %q", c.cfg.Store)
	}

	// Start ephemeral localhost server on random port.
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return fmt.Errorf("start callback listener: %w", err)
	}
	defer listener.Close() //nolint:errcheck
	port := listener.Addr().(*net.TCPAddr).Port

	state, err := randomToken(16, hex.EncodeToString)
	if err != nil {
		return fmt.Errorf("generate oauth state: %w", err)
	}
	verifier, err := randomToken(32, base64.RawURLEncoding.EncodeToString)
	if err != nil {
		return fmt.Errorf("generate pkce verifier: %w", err)
	}

	api := client.New(c.cfg.APIURL, c.cfg.AnonKey, "")
	exchange := func(ctx context.Context, code string) (string, error) {
		tok, err := api.ExchangeCode(ctx, code, verifier)
		if err != nil {
			return "", err
		}
		return tok.AccessToken, nil
	}

	tokenCh := make(chan string, 1)
	errCh := make(chan error, 1)
	mux := http.NewServeMux()
	mux.Handle("/callback", callbackHandler(state, exchange, tokenCh, errCh))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if srvErr := srv.Serve(listener); srvErr != nil && !errors.Is(srvErr, http.ErrServerClosed) {
			errCh <- srvErr
		}
	}()
	defer func() {
		shutCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutCtx) //nolint:errcheck
	}()

	redirect := fmt.Sprintf("http://127.0.0.1:%d/callback?%s", port, url.Values{"state": {state}}.Encode())
	loginURL := api.AuthorizeURL(loginProvider, redirect, client.CodeChallenge(verifier))

	fmt.Fprintln(c.out, "Opening browser to authenticate...")
	if err := browser.Open(loginURL); err != nil {
		fmt.Fprintf(c.out, "Could not open browser. Visit this URL manually:\n  %s\n", loginURL)
	}

	var token string
	select {
	case token = <-tokenCh:
	case err := <-errCh:
		return fmt.Errorf("callback server error: %w", err)
	case <-time.After(loginTimeout):
		return errors.New("login timed out: no callback received within 2 minutes")
	case <-ctx.Done():
		return ctx.Err()
	}

	if err := c.cfg.SaveToken(token); err != nil {
		return err
	}
	sess, err := client.SessionFromToken(token)
	if err != nil {
		fmt.Fprintf(c.out, "Token saved but could not be read: %v\n", err)
		return nil
	}
	fmt.Fprintf(c.out, "Authenticated as %s\n\n", nameStyle.Render(sess.Email))

	// Launch TUI automatically after login.
	return c.runTUI(ctx)
}

// callbackHandler serves the OAuth redirect. It checks the CSRF state,
// exchanges the code and hands the token to tokens. Failures go to errs.
func callbackHandler(state string, exchange exchangeFunc, tokens chan<- string, errs chan<- error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("state") != state {
			http.Error(w, "invalid state", http.StatusForbidden)
			errs <- errors.New("callback state mismatch (possible CSRF)")
			return
		}
		if msg := q.Get("error_description"); msg != "" {
			http.Error(w, "login failed", http.StatusBadRequest)
			errs <- fmt.Errorf("login failed: %s", msg)
			return
		}
		code := q.Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			errs <- errors.New("callback received without code")
			return
		}
		token, err := exchange(r.Context(), code)
		if err != nil {
			http.Error(w, "exchange failed", http.StatusInternalServerError)
			errs <- fmt.Errorf("code exchange: %w", err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, callbackHTML) //nolint:errcheck
		tokens <- token
	})
}

// randomToken returns n random bytes rendered by encode.
func randomToken(n int, encode func([]byte) string) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return encode(b), nil
}

const callbackHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>Orkadia</title>
<style>
*{margin:0;padding:0;box-sizing:border-box}
body{
  background:#f8fafc;color:#111318;
  font-family:'JetBrains Mono','SF Mono','Consolas',monospace;
  height:100vh;display:flex;align-items:center;justify-content:center;
}
.card{text-align:center}
.logo{font-size:32px;font-weight:700;letter-spacing:12px;margin-bottom:24px}
.logo span{display:inline-block;animation:wave 3s ease-in-out infinite}
.logo span:nth-child(odd){color:#1e3a8a}
.logo span:nth-child(even){color:#60a5fa}
.logo span:nth-child(2){animation-delay:.1s}
.logo span:nth-child(3){animation-delay:.2s}
.logo span:nth-child(4){animation-delay:.3s}
.logo span:nth-child(5){animation-delay:.4s}
.logo span:nth-child(6){animation-delay:.5s}
.logo span:nth-child(7){animation-delay:.6s}
@keyframes wave{0%,100%{opacity:.6;transform:translateY(0)}50%{opacity:1;transform:translateY(-2px)}}
.msg{font-size:14px;color:#2563eb;font-weight:600;margin-bottom:8px}
.sub{font-size:12px;color:#6b7280}
</style>
</head>
<body>
<div class="card">
  <div class="logo">
    <span>O</span><span>R</span><span>K</span><span>A</span><span>D</span><span>I</span><span>A</span>
  </div>
  <div class="msg">authenticated</div>
  <div class="sub">return to your terminal</div>
</div>
</body>
</html>`

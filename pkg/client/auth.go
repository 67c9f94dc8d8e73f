package client

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"
)

// AuthUser is the account record returned by the auth API.
type AuthUser struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// TokenResponse is returned by a successful code exchange.
type TokenResponse struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresIn    int      `json:"expires_in"`
	User         AuthUser `json:"user"`
}

// GetUser returns the account behind the client's access token.
func (c *Client) GetUser(ctx context.Context) (*AuthUser, error) {
	var u AuthUser
	if _, err := c.doRequest(ctx, request{method: http.MethodGet, path: "/auth/v1/user", out: &u}); err != nil {
		return nil, fmt.Errorf("client.GetUser: %w", err)
	}
	return &u, nil
}

// AuthorizeURL builds the browser URL that starts an OAuth login with PKCE.
// challenge is CodeChallenge(verifier).
func (c *Client) AuthorizeURL(provider, redirectTo, challenge string) string {
	q := url.Values{}
	q.Set("provider", provider)
	q.Set("redirect_to", redirectTo)
	q.Set("code_challenge", challenge)
	q.Set("code_challenge_method", "s256")
	return c.baseURL + "/auth/v1/authorize?" + q.Encode()
}

// ExchangeCode trades the one-time auth code from the OAuth callback for a session.
func (c *Client) ExchangeCode(ctx context.Context, authCode, verifier string) (*TokenResponse, error) {
	body := map[string]string{
		"auth_code":     authCode,
		"code_verifier": verifier,
	}
	var tok TokenResponse
	if _, err := c.doRequest(ctx, request{
		method: http.MethodPost,
		path:   "/auth/v1/token?grant_type=pkce",
		body:   body,
		out:    &tok,
	}); err != nil {
		return nil, fmt.Errorf("client.ExchangeCode: %w", err)
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("client.ExchangeCode: empty access token")
	}
	return &tok, nil
}

// CodeChallenge returns the S256 PKCE challenge for verifier.
func CodeChallenge(verifier string) string {
	sum := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

package client

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/orkadia/orkadia/pkg/domain"
)

type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// SessionFromToken reads the subject, email and expiry out of an access token.
// The signature is not verified: the backend does that on every request, and
// the client only needs to know who it is and when to re-login.
func SessionFromToken(token string) (domain.Session, error) {
	var claims sessionClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return domain.Session{}, fmt.Errorf("client.SessionFromToken: %w", err)
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return domain.Session{}, fmt.Errorf("client.SessionFromToken: subject: %w", err)
	}
	s := domain.Session{UserID: id, Email: claims.Email}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s, nil
}

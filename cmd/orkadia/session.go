package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/orkadia/orkadia/internal/achievement"
	"github.com/orkadia/orkadia/internal/config"
	"github.com/orkadia/orkadia/internal/invite"
	"github.com/orkadia/orkadia/internal/notify"
	"github.com/orkadia/orkadia/internal/social"
	"github.com/orkadia/orkadia/internal/store"
	"github.com/orkadia/orkadia/internal/store/remote"
	"github.com/orkadia/orkadia/internal/store/sqlstore"
	"github.com/orkadia/orkadia/pkg/client"
	"github.com/orkadia/orkadia/pkg/domain"
)

var (
	errNotSignedIn    = errors.New("not signed in: run orkadia login")
	errSessionExpired = errors.New("session expired: run orkadia login")
	errNoLocalUser    = errors.New("local store needs a citizen name: set ORKADIA_USER")
)

// session is a signed-in citizen with services bound to a store.
type session struct {
	me      uuid.UUID
	store   store.Store
	social  *social.Service
	invites *invite.Service
	close   func() error
}

// openSession connects the configured store, resolves the signed-in citizen
// and builds the services. Events for that citizen go to n.
func openSession(ctx context.Context, cfg *config.Config, logger *slog.Logger, n notify.Notifier) (*session, error) {
	s, closeFn, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	var me uuid.UUID
	if cfg.Local() {
		me, err = localCitizen(ctx, s, cfg.User)
	} else {
		me, err = remoteCitizen(ctx, cfg)
	}
	if err != nil {
		closeFn() //nolint:errcheck
		return nil, err
	}

	n = notify.ForUser(me, n)
	eval := achievement.New(s, n, logger)
	return &session{
		me:      me,
		store:   s,
		social:  social.New(s, eval, logger),
		invites: invite.New(s, eval, n, logger),
		close:   closeFn,
	}, nil
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, func() error, error) {
	switch cfg.Store {
	case config.StoreRemote:
		if cfg.Token == "" {
			return nil, nil, errNotSignedIn
		}
		c := client.New(cfg.APIURL, cfg.AnonKey, cfg.Token)
		return remote.New(c), func() error { return nil }, nil
	case config.StoreMemory:
		s, err := sqlstore.OpenMemory(ctx)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		if cfg.Store == config.StoreSQLite {
			if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
				return nil, nil, fmt.Errorf("create config dir: %w", err)
			}
		}
		s, err := sqlstore.Open(ctx, cfg.Store, cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		if err := s.Migrate(ctx); err != nil {
			s.Close() //nolint:errcheck
			return nil, nil, err
		}
		if err := s.Seed(ctx, domain.Catalog); err != nil {
			s.Close() //nolint:errcheck
			return nil, nil, err
		}
		return s, s.Close, nil
	}
}

// remoteCitizen reads the citizen out of the access token and checks the
// backend still accepts it. Only a 401 forces a new login; transient
// failures let the caller carry on and retry.
func remoteCitizen(ctx context.Context, cfg *config.Config) (uuid.UUID, error) {
	sess, err := client.SessionFromToken(cfg.Token)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w (%w)", errNotSignedIn, err)
	}
	if sess.Expired(time.Now()) {
		return uuid.Nil, errSessionExpired
	}
	c := client.New(cfg.APIURL, cfg.AnonKey, cfg.Token)
	if _, err := c.GetUser(ctx); client.IsStatus(err, http.StatusUnauthorized) {
		return uuid.Nil, errSessionExpired
	}
	return sess.UserID, nil
}

// localCitizen finds the profile named username, creating it on first use.
func localCitizen(ctx context.Context, s store.ProfileStore, username string) (uuid.UUID, error) {
	name := domain.NormalizeUsername(username)
	if name == "" {
		return uuid.Nil, errNoLocalUser
	}
	p, err := s.ProfileByUsername(ctx, name)
	if errors.Is(err, store.ErrNotFound) {
		p, err = s.CreateProfile(ctx, domain.Profile{ID: uuid.New(), Username: name, CreatedAt: time.Now().UTC()})
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("local citizen %q: %w", name, err)
	}
	return p.ID, nil
}

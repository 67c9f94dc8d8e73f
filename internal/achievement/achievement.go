// Package achievement grants achievements and their point rewards.
//
// Every grant is keyed by the achievement's key slug. A grant is idempotent:
// the existing-grant check plus the store's unique (user, achievement) pair
// make a repeated or racing call a no-op that credits no points.
package achievement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/orkadia/orkadia/internal/notify"
	"github.com/orkadia/orkadia/internal/store"
	"github.com/orkadia/orkadia/pkg/domain"
)

// MinBioLen is the bio length, in characters, that earns the writer achievement.
const MinBioLen = 20

// Store is the persistence the evaluator needs.
type Store interface {
	store.AchievementStore
	AddPoints(ctx context.Context, id uuid.UUID, delta int) (int, error)
	CountMessagesFrom(ctx context.Context, userID uuid.UUID) (int, error)
	CountPostsBy(ctx context.Context, authorID uuid.UUID) (int, error)
}

// Evaluator decides and records grants. It holds no per-user state.
type Evaluator struct {
	store  Store
	notify notify.Notifier
	log    *slog.Logger
}

// New creates an Evaluator. A nil notifier discards events; a nil logger uses slog.Default.
func New(s Store, n notify.Notifier, logger *slog.Logger) *Evaluator {
	if n == nil {
		n = notify.Discard
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Evaluator{store: s, notify: n, log: logger}
}

// Grant gives key to userID unless already held and reports whether a new
// grant was made. Failures are logged and never returned: evaluation must not
// break the user action that triggered it.
func (e *Evaluator) Grant(ctx context.Context, userID uuid.UUID, key string) bool {
	granted, err := e.grant(ctx, userID, key)
	if err != nil {
		e.log.Warn("achievement grant failed", "user_id", userID, "key", key, "err", err)
	}
	if granted && key != domain.KeyCollector {
		e.checkCollector(ctx, userID)
	}
	return granted
}

// grant returns granted=true once the grant row exists, even when the
// follow-up point credit fails; that failure comes back as err.
func (e *Evaluator) grant(ctx context.Context, userID uuid.UUID, key string) (bool, error) {
	a, err := e.store.AchievementByKey(ctx, key)
	if err != nil {
		return false, fmt.Errorf("lookup definition: %w", err)
	}
	held, err := e.store.HasGrant(ctx, userID, a.ID)
	if err != nil {
		return false, fmt.Errorf("check grant: %w", err)
	}
	if held {
		return false, nil
	}
	err = e.store.InsertGrant(ctx, domain.UserAchievement{UserID: userID, AchievementID: a.ID})
	if errors.Is(err, store.ErrConflict) {
		// Lost a race with a concurrent grant; the winner credits the points.
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("insert grant: %w", err)
	}

	credited := false
	var creditErr error
	if a.Points > 0 {
		if _, err := e.store.AddPoints(ctx, userID, a.Points); err != nil {
			creditErr = fmt.Errorf("credit %d points: %w", a.Points, err)
		} else {
			credited = true
		}
	}
	e.notify.Notify(notify.Event{
		Kind:        notify.KindAchievement,
		UserID:      userID,
		Title:       a.Name,
		Description: a.Description,
		Points:      a.Points,
		Rarity:      a.Rarity,
		Icon:        a.Icon,
	})
	if credited {
		e.notify.Notify(notify.Event{
			Kind:   notify.KindXP,
			UserID: userID,
			Title:  a.Name,
			Points: a.Points,
		})
	}
	e.log.Info("achievement granted", "user_id", userID, "key", key, "points", a.Points)
	return true, creditErr
}

func (e *Evaluator) checkCollector(ctx context.Context, userID uuid.UUID) {
	n, err := e.store.CountGrants(ctx, userID)
	if err != nil {
		e.log.Warn("count grants failed", "user_id", userID, "err", err)
		return
	}
	if n >= domain.CollectorThreshold {
		e.Grant(ctx, userID, domain.KeyCollector)
	}
}

// OnMessageSent grants first-message when the user has sent exactly one message.
func (e *Evaluator) OnMessageSent(ctx context.Context, userID uuid.UUID) []string {
	n, err := e.store.CountMessagesFrom(ctx, userID)
	if err != nil {
		e.log.Warn("count messages failed", "user_id", userID, "err", err)
		return nil
	}
	if n != 1 {
		return nil
	}
	return e.grantAll(ctx, userID, domain.KeyFirstMessage)
}

// OnProfileUpdated grants the profile achievements p now qualifies for.
func (e *Evaluator) OnProfileUpdated(ctx context.Context, p domain.Profile) []string {
	var keys []string
	if p.AvatarURL != "" {
		keys = append(keys, domain.KeyPhotographer)
	}
	if p.HouseBackground != "" {
		keys = append(keys, domain.KeyDecorator)
	}
	if p.HouseMusic != "" {
		keys = append(keys, domain.KeyMusician)
	}
	if utf8.RuneCountInString(p.Bio) >= MinBioLen {
		keys = append(keys, domain.KeyWriter)
	}
	return e.grantAll(ctx, p.ID, keys...)
}

// OnPostCreated grants social once the user has authored a post.
func (e *Evaluator) OnPostCreated(ctx context.Context, userID uuid.UUID) []string {
	n, err := e.store.CountPostsBy(ctx, userID)
	if err != nil {
		e.log.Warn("count posts failed", "user_id", userID, "err", err)
		return nil
	}
	if n < 1 {
		return nil
	}
	return e.grantAll(ctx, userID, domain.KeySocial)
}

// grantAll grants each key in order and returns those newly granted.
func (e *Evaluator) grantAll(ctx context.Context, userID uuid.UUID, keys ...string) []string {
	var granted []string
	for _, k := range keys {
		if e.Grant(ctx, userID, k) {
			granted = append(granted, k)
		}
	}
	return granted
}

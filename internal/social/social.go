// Package social implements the user actions that write to the store and
// feed the achievement evaluator: profile edits, messages, gifts, blocks
// and posts.
package social

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/orkadia/orkadia/internal/store"
	"github.com/orkadia/orkadia/pkg/domain"
)

// Validation and conflict errors surfaced to the user.
var (
	ErrUsernameRequired = errors.New("username is required")
	ErrUsernameTaken    = errors.New("username is already taken")
	ErrBioTooLong       = fmt.Errorf("bio must be at most %d characters", domain.MaxBioLen)
	ErrEmptyMessage     = errors.New("message is empty")
	ErrMessageTooLong   = fmt.Errorf("message must be at most %d characters", domain.MaxMessageLen)
	ErrSelfMessage      = errors.New("cannot message yourself")
	ErrBlocked          = errors.New("this citizen is not accepting your messages")
	ErrUnknownGift      = errors.New("unknown gift type")
	ErrGiftNoteTooLong  = fmt.Errorf("gift message must be at most %d characters", domain.MaxGiftMessageLen)
	ErrNotRecipient     = errors.New("only the recipient can delete a gift")
	ErrGiftNotFound     = errors.New("gift not found")
	ErrSelfBlock        = errors.New("cannot block yourself")
	ErrAlreadyBlocked   = errors.New("already blocked")
	ErrNotBlocked       = errors.New("not blocked")
	ErrEmptyPost        = errors.New("post is empty")
	ErrPostTooLong      = fmt.Errorf("post must be at most %d characters", domain.MaxPostLen)
)

// Triggers is the subset of the achievement evaluator the service calls
// after a successful write.
type Triggers interface {
	OnMessageSent(ctx context.Context, userID uuid.UUID) []string
	OnProfileUpdated(ctx context.Context, p domain.Profile) []string
	OnPostCreated(ctx context.Context, userID uuid.UUID) []string
}

// Service runs social actions against a store.
type Service struct {
	store    store.Store
	triggers Triggers
	log      *slog.Logger
}

// New creates a Service. triggers may be nil. A nil logger uses slog.Default.
func New(s store.Store, t Triggers, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: s, triggers: t, log: logger}
}

// Profile returns a profile by id.
func (s *Service) Profile(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	p, err := s.store.Profile(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("social.Profile: %w", err)
	}
	return p, nil
}

// Lookup returns the profile with the given username.
func (s *Service) Lookup(ctx context.Context, username string) (*domain.Profile, error) {
	name := domain.NormalizeUsername(username)
	if name == "" {
		return nil, ErrUsernameRequired
	}
	p, err := s.store.ProfileByUsername(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("social.Lookup: %w", err)
	}
	return p, nil
}

// UpdateProfile validates and saves u, then evaluates profile achievements.
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, u domain.ProfileUpdate) (*domain.Profile, error) {
	if u.Username != nil {
		name := domain.NormalizeUsername(*u.Username)
		if name == "" {
			return nil, ErrUsernameRequired
		}
		u.Username = &name
	}
	if u.Bio != nil && utf8.RuneCountInString(*u.Bio) > domain.MaxBioLen {
		return nil, ErrBioTooLong
	}
	p, err := s.store.UpdateProfile(ctx, userID, u)
	if errors.Is(err, store.ErrConflict) {
		return nil, ErrUsernameTaken
	}
	if err != nil {
		return nil, fmt.Errorf("social.UpdateProfile: %w", err)
	}
	if s.triggers != nil {
		s.triggers.OnProfileUpdated(ctx, *p)
	}
	return p, nil
}

// SendMessage delivers content from one citizen to another unless the
// recipient has blocked the sender.
func (s *Service) SendMessage(ctx context.Context, from, to uuid.UUID, content string) (*domain.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyMessage
	}
	if utf8.RuneCountInString(content) > domain.MaxMessageLen {
		return nil, ErrMessageTooLong
	}
	if from == to {
		return nil, ErrSelfMessage
	}
	blocked, err := s.store.IsBlocked(ctx, to, from)
	if err != nil {
		return nil, fmt.Errorf("social.SendMessage: %w", err)
	}
	if blocked {
		s.log.Debug("message refused by block", "from", from, "to", to)
		return nil, ErrBlocked
	}
	m, err := s.store.InsertMessage(ctx, domain.Message{FromUserID: from, ToUserID: to, Content: content})
	if err != nil {
		return nil, fmt.Errorf("social.SendMessage: %w", err)
	}
	if s.triggers != nil {
		s.triggers.OnMessageSent(ctx, from)
	}
	return m, nil
}

// ConversationLimit caps how many messages Conversation loads.
const ConversationLimit = 200

// Conversation lists messages between me and other, oldest first.
func (s *Service) Conversation(ctx context.Context, me, other uuid.UUID) ([]domain.Message, error) {
	msgs, err := s.store.Conversation(ctx, me, other, ConversationLimit)
	if err != nil {
		return nil, fmt.Errorf("social.Conversation: %w", err)
	}
	return msgs, nil
}

// MarkRead marks every message from other to me as read.
func (s *Service) MarkRead(ctx context.Context, me, other uuid.UUID) (int, error) {
	n, err := s.store.MarkRead(ctx, other, me)
	if err != nil {
		return 0, fmt.Errorf("social.MarkRead: %w", err)
	}
	return n, nil
}

// SendGift sends a gift with an optional note.
func (s *Service) SendGift(ctx context.Context, from, to uuid.UUID, giftType, message string) (*domain.Gift, error) {
	if !domain.ValidGiftType(giftType) {
		return nil, ErrUnknownGift
	}
	message = strings.TrimSpace(message)
	if utf8.RuneCountInString(message) > domain.MaxGiftMessageLen {
		return nil, ErrGiftNoteTooLong
	}
	g, err := s.store.InsertGift(ctx, domain.Gift{FromUserID: from, ToUserID: to, GiftType: giftType, Message: message})
	if err != nil {
		return nil, fmt.Errorf("social.SendGift: %w", err)
	}
	return g, nil
}

// Gifts lists gifts received by userID, newest first.
func (s *Service) Gifts(ctx context.Context, userID uuid.UUID) ([]domain.Gift, error) {
	gifts, err := s.store.GiftsTo(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("social.Gifts: %w", err)
	}
	return gifts, nil
}

// DeleteGift removes a gift. Only its recipient may do so.
func (s *Service) DeleteGift(ctx context.Context, giftID, userID uuid.UUID) error {
	g, err := s.store.Gift(ctx, giftID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrGiftNotFound
	}
	if err != nil {
		return fmt.Errorf("social.DeleteGift: %w", err)
	}
	if g.ToUserID != userID {
		return ErrNotRecipient
	}
	if err := s.store.DeleteGift(ctx, giftID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrGiftNotFound
		}
		return fmt.Errorf("social.DeleteGift: %w", err)
	}
	return nil
}

// Block stops blocked from messaging blocker.
func (s *Service) Block(ctx context.Context, blocker, blocked uuid.UUID, reason string) (*domain.UserBlock, error) {
	if blocker == blocked {
		return nil, ErrSelfBlock
	}
	b, err := s.store.InsertBlock(ctx, domain.UserBlock{BlockerID: blocker, BlockedID: blocked, Reason: strings.TrimSpace(reason)})
	if errors.Is(err, store.ErrConflict) {
		return nil, ErrAlreadyBlocked
	}
	if err != nil {
		return nil, fmt.Errorf("social.Block: %w", err)
	}
	s.log.Info("citizen blocked", "blocker_id", blocker, "blocked_id", blocked)
	return b, nil
}

// Unblock lifts a block. Only the blocker can lift it.
func (s *Service) Unblock(ctx context.Context, blocker, blocked uuid.UUID) error {
	err := s.store.DeleteBlock(ctx, blocker, blocked)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotBlocked
	}
	if err != nil {
		return fmt.Errorf("social.Unblock: %w", err)
	}
	return nil
}

// Blocked lists the blocks blocker has placed, newest first.
func (s *Service) Blocked(ctx context.Context, blocker uuid.UUID) ([]domain.UserBlock, error) {
	blocks, err := s.store.BlocksBy(ctx, blocker)
	if err != nil {
		return nil, fmt.Errorf("social.Blocked: %w", err)
	}
	return blocks, nil
}

// CreatePost publishes a wall post, then evaluates the social achievement.
func (s *Service) CreatePost(ctx context.Context, author uuid.UUID, content string) (*domain.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyPost
	}
	if utf8.RuneCountInString(content) > domain.MaxPostLen {
		return nil, ErrPostTooLong
	}
	p, err := s.store.InsertPost(ctx, domain.Post{AuthorID: author, Content: content})
	if err != nil {
		return nil, fmt.Errorf("social.CreatePost: %w", err)
	}
	if s.triggers != nil {
		s.triggers.OnPostCreated(ctx, author)
	}
	return p, nil
}

// Achievements lists the achievements userID has earned, newest first.
func (s *Service) Achievements(ctx context.Context, userID uuid.UUID) ([]domain.EarnedAchievement, error) {
	earned, err := s.store.EarnedAchievements(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("social.Achievements: %w", err)
	}
	return earned, nil
}

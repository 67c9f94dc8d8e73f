package sqlstore

import (
	"time"

	"github.com/google/uuid"
)

type profileModel struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Username        string    `gorm:"column:username;uniqueIndex;not null"`
	DisplayName     string    `gorm:"column:display_name"`
	Bio             string    `gorm:"column:bio"`
	AvatarURL       string    `gorm:"column:avatar_url"`
	HouseTheme      string    `gorm:"column:house_theme"`
	HouseBackground string    `gorm:"column:house_background"`
	HouseMusic      string    `gorm:"column:house_music"`
	Points          int       `gorm:"column:points;not null;default:0"`
	City            string    `gorm:"column:city"`
	Country         string    `gorm:"column:country"`
	CreatedAt       time.Time `gorm:"column:created_at"`
}

func (profileModel) TableName() string { return "profiles" }

type achievementModel struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Key         string    `gorm:"column:key;uniqueIndex;not null"`
	Name        string    `gorm:"column:name;uniqueIndex;not null"`
	Description string    `gorm:"column:description"`
	Points      int       `gorm:"column:points;not null"`
	Rarity      string    `gorm:"column:rarity;not null"`
	Icon        string    `gorm:"column:icon"`
}

func (achievementModel) TableName() string { return "achievements" }

type userAchievementModel struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID        uuid.UUID `gorm:"column:user_id;type:uuid;uniqueIndex:idx_user_achievement;not null"`
	AchievementID uuid.UUID `gorm:"column:achievement_id;type:uuid;uniqueIndex:idx_user_achievement;not null"`
	EarnedAt      time.Time `gorm:"column:earned_at;autoCreateTime"`
}

func (userAchievementModel) TableName() string { return "user_achievements" }

type inviteCodeModel struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Code      string     `gorm:"column:code;uniqueIndex;not null"`
	UserID    uuid.UUID  `gorm:"column:user_id;type:uuid;index;not null"`
	UsedCount int        `gorm:"column:used_count;not null;default:0"`
	MaxUses   int        `gorm:"column:max_uses;not null"`
	ExpiresAt *time.Time `gorm:"column:expires_at"`
	IsActive  bool       `gorm:"column:is_active;not null"`
	CreatedAt time.Time  `gorm:"column:created_at"`
}

func (inviteCodeModel) TableName() string { return "invite_codes" }

type inviteUsageModel struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	InviteCodeID  uuid.UUID `gorm:"column:invite_code_id;type:uuid;index;not null"`
	InviterID     uuid.UUID `gorm:"column:inviter_id;type:uuid;not null"`
	InvitedUserID uuid.UUID `gorm:"column:invited_user_id;type:uuid;not null"`
	UsedAt        time.Time `gorm:"column:used_at;autoCreateTime"`
}

func (inviteUsageModel) TableName() string { return "invite_usage" }

type messageModel struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	FromUserID uuid.UUID `gorm:"column:from_user_id;type:uuid;index;not null"`
	ToUserID   uuid.UUID `gorm:"column:to_user_id;type:uuid;index;not null"`
	Content    string    `gorm:"column:content;not null"`
	IsRead     bool      `gorm:"column:is_read;not null;default:false"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (messageModel) TableName() string { return "messages" }

type giftModel struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	FromUserID uuid.UUID `gorm:"column:from_user_id;type:uuid;not null"`
	ToUserID   uuid.UUID `gorm:"column:to_user_id;type:uuid;index;not null"`
	GiftType   string    `gorm:"column:gift_type;not null"`
	Message    string    `gorm:"column:message"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (giftModel) TableName() string { return "gifts" }

type userBlockModel struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	BlockerID uuid.UUID `gorm:"column:blocker_id;type:uuid;uniqueIndex:idx_block_pair;not null"`
	BlockedID uuid.UUID `gorm:"column:blocked_id;type:uuid;uniqueIndex:idx_block_pair;not null"`
	Reason    string    `gorm:"column:reason"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (userBlockModel) TableName() string { return "user_blocks" }

type postModel struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	AuthorID  uuid.UUID `gorm:"column:author_id;type:uuid;index;not null"`
	Content   string    `gorm:"column:content;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (postModel) TableName() string { return "posts" }

// earnedRow is the projection of a grant joined with its definition.
type earnedRow struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid"`
	Key         string    `gorm:"column:key"`
	Name        string    `gorm:"column:name"`
	Description string    `gorm:"column:description"`
	Points      int       `gorm:"column:points"`
	Rarity      string    `gorm:"column:rarity"`
	Icon        string    `gorm:"column:icon"`
	EarnedAt    time.Time `gorm:"column:earned_at"`
}

func (r earnedRow) definition() achievementModel {
	return achievementModel{
		ID:          r.ID,
		Key:         r.Key,
		Name:        r.Name,
		Description: r.Description,
		Points:      r.Points,
		Rarity:      r.Rarity,
		Icon:        r.Icon,
	}
}

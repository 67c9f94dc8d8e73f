package domain

// ReactionType is a post reaction.
type ReactionType string

const (
	ReactionLove  ReactionType = "love"
	ReactionLaugh ReactionType = "laugh"
	ReactionWow   ReactionType = "wow"
	ReactionSad   ReactionType = "sad"
	ReactionAngry ReactionType = "angry"
	ReactionFire  ReactionType = "fire"
)

// ReactionInfo is the display data for a reaction type.
type ReactionInfo struct {
	Emoji    string
	Label    string
	HexColor string
}

// Reactions is the fixed reaction table.
var Reactions = map[ReactionType]ReactionInfo{
	ReactionLove:  {Emoji: "❤", Label: "Love", HexColor: "#E0245E"},
	ReactionLaugh: {Emoji: "😂", Label: "Haha", HexColor: "#F7B125"},
	ReactionWow:   {Emoji: "😮", Label: "Wow", HexColor: "#F7B125"},
	ReactionSad:   {Emoji: "😢", Label: "Sad", HexColor: "#5B9BD5"},
	ReactionAngry: {Emoji: "😠", Label: "Angry", HexColor: "#E9710F"},
	ReactionFire:  {Emoji: "🔥", Label: "Fire", HexColor: "#FF4500"},
}

// CitizenBadge is an honorary badge shown on a profile.
type CitizenBadge string

const (
	BadgePoet       CitizenBadge = "poet"
	BadgeChronicler CitizenBadge = "chronicler"
	BadgeHumorist   CitizenBadge = "humorist"
	BadgeStar       CitizenBadge = "star"
)

// CitizenBadges lists the badges in display order.
var CitizenBadges = []CitizenBadge{BadgePoet, BadgeChronicler, BadgeHumorist, BadgeStar}

package sqlstore

import "github.com/orkadia/orkadia/pkg/domain"

func toDomainProfile(m profileModel) domain.Profile {
	return domain.Profile{
		ID: m.ID, Username: m.Username, DisplayName: m.DisplayName, Bio: m.Bio,
		AvatarURL: m.AvatarURL, HouseTheme: m.HouseTheme, HouseBackground: m.HouseBackground,
		HouseMusic: m.HouseMusic, Points: m.Points, City: m.City, Country: m.Country,
		CreatedAt: m.CreatedAt,
	}
}

func fromDomainProfile(p domain.Profile) profileModel {
	return profileModel{
		ID: p.ID, Username: p.Username, DisplayName: p.DisplayName, Bio: p.Bio,
		AvatarURL: p.AvatarURL, HouseTheme: p.HouseTheme, HouseBackground: p.HouseBackground,
		HouseMusic: p.HouseMusic, Points: p.Points, City: p.City, Country: p.Country,
		CreatedAt: p.CreatedAt,
	}
}

func toDomainAchievement(m achievementModel) domain.Achievement {
	return domain.Achievement{
		ID: m.ID, Key: m.Key, Name: m.Name, Description: m.Description,
		Points: m.Points, Rarity: domain.Rarity(m.Rarity), Icon: m.Icon,
	}
}

func fromDomainAchievement(a domain.Achievement) achievementModel {
	return achievementModel{
		ID: a.ID, Key: a.Key, Name: a.Name, Description: a.Description,
		Points: a.Points, Rarity: string(a.Rarity), Icon: a.Icon,
	}
}

func toDomainInviteCode(m inviteCodeModel) domain.InviteCode {
	return domain.InviteCode{
		ID: m.ID, Code: m.Code, UserID: m.UserID, UsedCount: m.UsedCount, MaxUses: m.MaxUses,
		ExpiresAt: m.ExpiresAt, IsActive: m.IsActive, CreatedAt: m.CreatedAt,
	}
}

func toDomainMessage(m messageModel) domain.Message {
	return domain.Message{
		ID: m.ID, FromUserID: m.FromUserID, ToUserID: m.ToUserID, Content: m.Content,
		IsRead: m.IsRead, CreatedAt: m.CreatedAt,
	}
}

func toDomainGift(m giftModel) domain.Gift {
	return domain.Gift{
		ID: m.ID, FromUserID: m.FromUserID, ToUserID: m.ToUserID, GiftType: m.GiftType,
		Message: m.Message, CreatedAt: m.CreatedAt,
	}
}

func toDomainBlock(m userBlockModel) domain.UserBlock {
	return domain.UserBlock{
		ID: m.ID, BlockerID: m.BlockerID, BlockedID: m.BlockedID, Reason: m.Reason,
		CreatedAt: m.CreatedAt,
	}
}

func toDomainPost(m postModel) domain.Post {
	return domain.Post{ID: m.ID, AuthorID: m.AuthorID, Content: m.Content, CreatedAt: m.CreatedAt}
}

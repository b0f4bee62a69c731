package entity

import "time"

// DiscordRoleCache is the snapshot of the roles a discord user holds in a guild.
type DiscordRoleCache struct {
	Base

	UserID     string     `gorm:"uniqueIndex:idx_discord_role_cache_user_guild;size:64;not null"`
	GuildID    string     `gorm:"uniqueIndex:idx_discord_role_cache_user_guild;size:64;not null"`
	Roles      StringList `gorm:"type:text"`
	VerifiedAt time.Time
	ExpiresAt  time.Time `gorm:"index"`
}

func (DiscordRoleCache) TableName() string {
	return "discord_role_cache"
}

func (e *DiscordRoleCache) HasRole(roleID string) bool {
	return e.Roles.Contains(roleID)
}

func (e *DiscordRoleCache) Expired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}

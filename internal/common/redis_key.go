package common

import "fmt"

func RedisKeyDiscordRoleCache(userID, guildID string) string {
	return fmt.Sprintf("discord_role_cache:%s:%s", userID, guildID)
}

package model

import "time"

type VerifyDiscordJoinRequest struct {
	DiscordUserID string `json:"discordUserId"`
	GuildID       string `json:"guildId"`
}

type DiscordMemberData struct {
	Username      string   `json:"username"`
	Discriminator string   `json:"discriminator"`
	JoinedAt      string   `json:"joinedAt"`
	Roles         []string `json:"roles"`
}

type VerifyDiscordJoinResponse struct {
	Success    bool               `json:"success"`
	Message    string             `json:"message"`
	IsMember   bool               `json:"isMember"`
	GuildID    string             `json:"guildId,omitempty"`
	UserID     string             `json:"userId,omitempty"`
	MemberData *DiscordMemberData `json:"memberData,omitempty"`
}

type VerifyDiscordRoleRequest struct {
	DiscordUserID string `json:"discordUserId"`
	GuildID       string `json:"guildId"`
	RoleID        string `json:"roleId"`
}

type VerifyDiscordRoleResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	IsMember bool   `json:"isMember"`
	HasRole  bool   `json:"hasRole"`
	GuildID  string `json:"guildId,omitempty"`
	RoleID   string `json:"roleId,omitempty"`
	UserID   string `json:"userId,omitempty"`
}

type VerifyDiscordCompleteRequest = VerifyDiscordRoleRequest

type VerifyDiscordCompleteResponse struct {
	Success   bool     `json:"success"`
	Message   string   `json:"message"`
	IsMember  bool     `json:"isMember"`
	HasRole   bool     `json:"hasRole"`
	GuildID   string   `json:"guildId,omitempty"`
	RoleID    string   `json:"roleId,omitempty"`
	UserRoles []string `json:"userRoles,omitempty"`
}

type VerifyDiscordRolesBatchRequest struct {
	DiscordUserID string   `json:"discordUserId"`
	RoleIDs       []string `json:"roleIds"`
	GuildID       string   `json:"guildId"`
}

type VerifyDiscordRolesBatchResponse struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	RoleStatus map[string]bool `json:"roleStatus"`
}

type VerifyBadgeRolesRequest struct {
	DiscordUserID string   `json:"discordUserId"`
	GuildID       string   `json:"guildId"`
	RoleIDs       []string `json:"roleIds"`
}

type VerifyBadgeRolesResponse struct {
	Success  bool            `json:"success"`
	Message  string          `json:"message"`
	Roles    map[string]bool `json:"roles"`
	IsMember bool            `json:"isMember"`
	GuildID  string          `json:"guildId,omitempty"`
	UserID   string          `json:"userId,omitempty"`
}

type DiscordHealthRequest struct{}

type DiscordHealthConfig struct {
	BotTokenConfigured bool   `json:"botTokenConfigured" structs:"botTokenConfigured"`
	APIURL             string `json:"apiUrl" structs:"apiUrl"`
	Note               string `json:"note" structs:"note"`
}

type DiscordHealthResponse struct {
	Success   bool           `json:"success"`
	Message   string         `json:"message"`
	Timestamp time.Time      `json:"timestamp"`
	Config    map[string]any `json:"config"`
}

// RoleStatusResult is the role status of a user over the tracked roles of the guild.
type RoleStatusResult struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message,omitempty"`
	RoleStatus map[string]bool `json:"roleStatus"`
	Cached     bool            `json:"cached"`
	VerifiedAt time.Time       `json:"verifiedAt"`
	ExpiresAt  time.Time       `json:"expiresAt"`
}

type CheckDiscordRoleRequest struct {
	DiscordUserID string `json:"discordUserId"`
	RoleID        string `json:"roleId"`
}

type CheckDiscordRoleResponse struct {
	Success bool   `json:"success"`
	HasRole bool   `json:"hasRole"`
	RoleID  string `json:"roleId"`
}

type VerifyDiscordRolesRequest struct {
	DiscordUserID string `json:"discordUserId"`
}

type VerifyDiscordRolesResponse = RoleStatusResult

type RefreshDiscordRolesRequest struct {
	DiscordUserID string `json:"discordUserId"`
}

type RefreshDiscordRolesResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type CleanupDiscordRoleCacheRequest struct{}

type CleanupDiscordRoleCacheResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Deleted int64  `json:"deleted"`
}

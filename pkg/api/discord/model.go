package discord

type User struct {
	ID            string `mapstructure:"id"`
	Username      string `mapstructure:"username"`
	Discriminator string `mapstructure:"discriminator"`
}

type Member struct {
	User     User     `mapstructure:"user"`
	JoinedAt string   `mapstructure:"joined_at"`
	Roles    []string `mapstructure:"roles"`
}

func (m Member) HasRole(roleID string) bool {
	for _, r := range m.Roles {
		if r == roleID {
			return true
		}
	}

	return false
}

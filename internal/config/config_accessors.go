package config

func (c *Config) GetBotToken() string {
	return c.v.GetString("bot_token")
}

// GetClientID returns the Discord application id used for command registration.
func (c *Config) GetClientID() string {
	return c.v.GetString("client_id")
}

// GetGuildID scopes command registration to one guild when set.
func (c *Config) GetGuildID() string {
	return c.v.GetString("guild_id")
}

func (c *Config) GetGraphQLEndpoint() string {
	if endpoint := c.v.GetString("graphql_endpoint"); endpoint != "" {
		return endpoint
	}
	return DefaultGraphQLEndpoint
}

func (c *Config) GetLogChannelID() string {
	return c.v.GetString("log_channel_id")
}

func (c *Config) GetLogDir() string {
	return c.v.GetString("log_dir")
}

// GetBansPerPage returns how many bans go into one page embed (default 3)
func (c *Config) GetBansPerPage() int {
	n := c.v.GetInt("bans_per_page")
	if n <= 0 {
		return DefaultBansPerPage
	}
	return n
}

// GetString returns the string value for a given config key
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

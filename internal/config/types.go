package config

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	AdminEmails   []string
	Turso         TursoConfig
	Slack         SlackConfig
	Google        GoogleConfig
}
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
type SlackConfig struct {
	Token     string
	ChannelID string
}
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string
}

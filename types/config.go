package types

// AppConfig represents the complete application configuration.
type AppConfig struct {
	Verbose bool          `mapstructure:"verbose"`
	Config  string        `mapstructure:"config"`
	Data    DataConfig    `mapstructure:"data" validate:"required"`
	Session SessionConfig `mapstructure:"session" validate:"required"`
}

// DataConfig holds data storage configuration.
type DataConfig struct {
	File string `mapstructure:"file" validate:"required"`
}

// SessionConfig holds interactive session settings.
type SessionConfig struct {
	// TimeoutSeconds is the idle window after which the interactive
	// session exits automatically.
	TimeoutSeconds int `mapstructure:"timeoutSeconds" validate:"required,min=1"`
}

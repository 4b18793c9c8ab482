// internal/common/config/config.go
package config

import (
	"strings"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig          `mapstructure:"app"`
	Server        ServerConfig       `mapstructure:"server"`
	Talenox       TalenoxConfig      `mapstructure:"talenox"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Dedup         DedupConfig        `mapstructure:"dedup"`
	Workflow      WorkflowConfig     `mapstructure:"workflow"`
	Logging       LoggingConfig      `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// IsProduction reports whether strict CORS and JSON logs apply.
func (a AppConfig) IsProduction() bool {
	return a.Environment == "production"
}

type ServerConfig struct {
	Port            int      `mapstructure:"port"`
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	ReadTimeout     int      `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int      `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int      `mapstructure:"shutdown_timeout"` // milliseconds
}

// --- Specific Configuration Sections ---

// TalenoxConfig holds the HR API settings. Empty BaseURL or APIKey means "not configured".
type TalenoxConfig struct {
	BaseURL            string `mapstructure:"base_url"`
	APIKey             string `mapstructure:"api_key"`
	Timeout            int    `mapstructure:"timeout"` // milliseconds
	PageSize           int    `mapstructure:"page_size"`
	EmployeeIDCeiling  int    `mapstructure:"employee_id_ceiling"`
	FallbackEmployeeID string `mapstructure:"fallback_employee_id"`
}

// Configured reports whether both the URL and credential are present.
func (t TalenoxConfig) Configured() bool {
	return strings.TrimSpace(t.BaseURL) != "" && strings.TrimSpace(t.APIKey) != ""
}

// NotificationConfig holds settings for the HR notifier.
type NotificationConfig struct {
	Provider     string `mapstructure:"provider"` // "sendgrid" or "ses"
	APIKey       string `mapstructure:"api_key"`
	NotifyEmail  string `mapstructure:"notify_email"`
	FromEmail    string `mapstructure:"from_email"`
	ContactEmail string `mapstructure:"contact_email"`
	AWS          struct {
		Region        string `mapstructure:"region"`
		AlertTopicARN string `mapstructure:"alert_topic_arn"`
	} `mapstructure:"aws"`
}

type DedupConfig struct {
	Enabled bool        `mapstructure:"enabled"`
	TTL     int         `mapstructure:"ttl"` // milliseconds
	Redis   RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type WorkflowConfig struct {
	Timeout int `mapstructure:"timeout"` // milliseconds
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}

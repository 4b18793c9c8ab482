// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultFromEmail    = "Tinkercademy Onboarding <hr.onboarding@tinkertanker.com>"
	DefaultContactEmail = "hr.onboarding@tinkertanker.com"
)

func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	// TALENOX_BASE_URL overrides talenox.base_url
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	registerDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	env := environment()
	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // optional

	return finish(v)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	registerDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finish(v)
}

func finish(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	overrideEmptyConfig(&cfg)
	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func environment() string {
	if env := os.Getenv("APP_ENVIRONMENT"); env != "" {
		return env
	}
	if env := os.Getenv("NODE_ENV"); env != "" {
		return env
	}
	return "development"
}

// loadEnvFile loads the first .env found walking towards the project root.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// registerDefaults makes every key known to viper so AutomaticEnv applies on Unmarshal.
func registerDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "onboarding-intake")
	v.SetDefault("app.version", "dev")
	v.SetDefault("app.environment", environment())

	v.SetDefault("server.port", 3000)
	v.SetDefault("server.allowed_origins", []string{})
	v.SetDefault("server.read_timeout", 10000)
	v.SetDefault("server.write_timeout", 30000)
	v.SetDefault("server.shutdown_timeout", 30000)

	v.SetDefault("talenox.base_url", "")
	v.SetDefault("talenox.api_key", "")
	v.SetDefault("talenox.timeout", 30000)
	v.SetDefault("talenox.page_size", 50)
	v.SetDefault("talenox.employee_id_ceiling", 10000)
	v.SetDefault("talenox.fallback_employee_id", "301")

	v.SetDefault("notifications.provider", "sendgrid")
	v.SetDefault("notifications.api_key", "")
	v.SetDefault("notifications.notify_email", "")
	v.SetDefault("notifications.from_email", DefaultFromEmail)
	v.SetDefault("notifications.contact_email", DefaultContactEmail)
	v.SetDefault("notifications.aws.region", "ap-southeast-1")
	v.SetDefault("notifications.aws.alert_topic_arn", "")

	v.SetDefault("dedup.enabled", false)
	v.SetDefault("dedup.ttl", 600000)
	v.SetDefault("dedup.redis.address", "")
	v.SetDefault("dedup.redis.password", "")
	v.SetDefault("dedup.redis.db", 0)

	v.SetDefault("workflow.timeout", 900000)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "")
	v.SetDefault("logging.output", "stdout")
}

// Improved environment variable expansion
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		val := v.Get(key)

		if strVal, ok := val.(string); ok {
			if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
				expanded := os.ExpandEnv(strVal)
				if expanded != strVal {
					v.Set(key, expanded)
				}
			}
		}
	}
}

// overrideEmptyConfig honours the variable names the form deployment has always used.
func overrideEmptyConfig(cfg *Config) {
	if cfg.Talenox.BaseURL == "" {
		if val := os.Getenv("TALENOX_API_URL"); val != "" {
			cfg.Talenox.BaseURL = val
		}
	}
	if cfg.Talenox.APIKey == "" {
		if val := os.Getenv("TALENOX_API_KEY"); val != "" {
			cfg.Talenox.APIKey = val
		}
	}

	if cfg.Notifications.APIKey == "" {
		for _, name := range []string{"SENDGRID_API_KEY", "RESEND_API_KEY"} {
			if val := os.Getenv(name); val != "" {
				cfg.Notifications.APIKey = val
				break
			}
		}
	}
	if cfg.Notifications.NotifyEmail == "" {
		if val := os.Getenv("NOTIFY_EMAIL"); val != "" {
			cfg.Notifications.NotifyEmail = val
		}
	}
	if val := os.Getenv("FROM_EMAIL"); val != "" {
		cfg.Notifications.FromEmail = val
	}

	if val := os.Getenv("NODE_ENV"); val != "" && os.Getenv("APP_ENVIRONMENT") == "" {
		cfg.App.Environment = val
	}

	if val := os.Getenv("ALLOWED_ORIGINS"); val != "" {
		cfg.Server.AllowedOrigins = splitList(val)
	}
	if val := os.Getenv("PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			cfg.Server.Port = port
		}
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3000
	}
	cfg.Server.AllowedOrigins = splitList(strings.Join(cfg.Server.AllowedOrigins, ","))

	cfg.Talenox.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.Talenox.BaseURL), "/")
	if cfg.Talenox.Timeout == 0 {
		cfg.Talenox.Timeout = 30000
	}
	if cfg.Talenox.PageSize == 0 {
		cfg.Talenox.PageSize = 50
	}
	if cfg.Talenox.EmployeeIDCeiling == 0 {
		cfg.Talenox.EmployeeIDCeiling = 10000
	}
	if cfg.Talenox.FallbackEmployeeID == "" {
		cfg.Talenox.FallbackEmployeeID = "301"
	}

	if cfg.Notifications.Provider == "" {
		cfg.Notifications.Provider = "sendgrid"
	}
	if cfg.Notifications.FromEmail == "" {
		cfg.Notifications.FromEmail = DefaultFromEmail
	}
	if cfg.Notifications.ContactEmail == "" {
		cfg.Notifications.ContactEmail = DefaultContactEmail
	}

	if cfg.Dedup.TTL == 0 {
		cfg.Dedup.TTL = 600000
	}
	if cfg.Workflow.Timeout == 0 {
		cfg.Workflow.Timeout = 900000
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}

// validateConfig validates critical configuration fields.
// Missing Talenox credentials are reported per submission, not here.
func validateConfig(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", cfg.Server.Port)
	}

	switch cfg.Notifications.Provider {
	case "sendgrid", "ses":
	default:
		return fmt.Errorf("notifications.provider must be sendgrid or ses, got %q", cfg.Notifications.Provider)
	}

	if cfg.Dedup.Enabled && cfg.Dedup.Redis.Address == "" {
		return fmt.Errorf("dedup.redis.address is required when dedup is enabled")
	}

	if cfg.Talenox.EmployeeIDCeiling < 0 {
		return fmt.Errorf("talenox.employee_id_ceiling must not be negative")
	}

	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

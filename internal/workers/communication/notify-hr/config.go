package notifyhr

import "time"

type Config struct {
	// NotifyEmail is the operations inbox. Empty disables notifications.
	NotifyEmail string
	FromEmail   string
	Timeout     time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		FromEmail: "Tinkercademy Onboarding <hr.onboarding@tinkertanker.com>",
		Timeout:   30 * time.Second,
	}
}

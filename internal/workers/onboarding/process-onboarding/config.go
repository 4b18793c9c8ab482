package processonboarding

import "time"

type Config struct {
	// HRConfigured is false when the Talenox URL or key is missing.
	HRConfigured bool
	// Timeout bounds one background run, detached from the request.
	Timeout         time.Duration
	ContactEmail    string
	RawExcerptLimit int
}

func DefaultConfig() *Config {
	return &Config{
		HRConfigured:    true,
		Timeout:         15 * time.Minute,
		ContactEmail:    "hr.onboarding@tinkertanker.com",
		RawExcerptLimit: 500,
	}
}

// internal/workers/onboarding/allocate-employee-id/config.go
package allocateemployeeid

type Config struct {
	PageSize   int
	Sort       string
	Ceiling    int
	FallbackID string
}

func DefaultConfig() *Config {
	return &Config{
		PageSize:   50,
		Sort:       "-created_at",
		Ceiling:    10000,
		FallbackID: "301",
	}
}

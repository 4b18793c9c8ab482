// internal/workers/onboarding/transform-submission/config.go
package transformsubmission

import "time"

// Singapore does not observe DST, so a fixed zone is exact.
var DefaultLocation = time.FixedZone("SGT", 8*60*60)

type Config struct {
	// Location decides which calendar day "now" falls on.
	Location           *time.Location
	DefaultNationality string
	CountryID          string
	Currency           string
	RateOfPay          string
}

func DefaultConfig() *Config {
	return &Config{
		Location:           DefaultLocation,
		DefaultNationality: "Singaporean",
		CountryID:          "SG",
		Currency:           "SGD",
		RateOfPay:          "Monthly",
	}
}

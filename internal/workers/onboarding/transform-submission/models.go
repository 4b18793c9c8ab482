// internal/workers/onboarding/transform-submission/models.go
package transformsubmission

import (
	"onboarding-intake/internal/models"

	"github.com/shopspring/decimal"
)

// Talenox citizenship classifications.
const (
	CitizenshipContract  = "Contract (No CPF, No SDL)"
	CitizenshipIntern    = "Intern"
	CitizenshipSGCitizen = "Singapore Citizen"
	CitizenshipSGPR      = "Singapore PR"
)

// JobProfile is the fixed job shape of one employment category.
type JobProfile struct {
	Title      string
	Department string
	Amount     decimal.Decimal
}

var jobProfiles = map[models.EmployeeType]JobProfile{
	models.EmployeeTypeTrainer: {
		Title:      "Freelance Trainer",
		Department: "Tinkercademy",
		Amount:     decimal.Zero,
	},
	models.EmployeeTypeInternSchool: {
		Title:      "Tinkertanker Intern",
		Department: "Internship",
		Amount:     decimal.NewFromInt(800),
	},
	models.EmployeeTypeInternNoSchool: {
		Title:      "Tinkertanker Intern",
		Department: "Internship",
		Amount:     decimal.NewFromInt(800),
	},
	models.EmployeeTypeFullTime: {
		Title:      "Tinkertanker Full-timer",
		Department: "Operations",
		Amount:     decimal.NewFromInt(3000),
	},
}

// ProfileFor returns the job profile of t.
func ProfileFor(t models.EmployeeType) (JobProfile, bool) {
	p, ok := jobProfiles[t]
	return p, ok
}

// JobDateLayout is the DD/MM/YYYY format the jobs endpoint expects.
const JobDateLayout = "02/01/2006"

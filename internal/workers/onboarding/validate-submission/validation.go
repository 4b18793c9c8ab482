// internal/workers/onboarding/validate-submission/validation.go
package validatesubmission

import (
	"regexp"

	"onboarding-intake/internal/common/validation"
)

var (
	nricPattern        = regexp.MustCompile(`(?i)^[STFGM]\d{7}[A-Z]$`)
	lastFourDigitsOnly = regexp.MustCompile(`^\d{4}$`)
	emailPattern       = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	digitsOnly         = regexp.MustCompile(`^\d+$`)
	isoDatePattern     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

const (
	MsgEmployeeTypeRequired  = "Employee type is required"
	MsgFullNameRequired      = "Full name is required"
	MsgEmailRequired         = "Email is required"
	MsgNRICRequired          = "NRIC/FIN is required"
	MsgNationalityRequired   = "Nationality is required"
	MsgCitizenshipRequired   = "Citizenship status is required"
	MsgDOBRequired           = "Date of birth is required"
	MsgGenderRequired        = "Gender is required"
	MsgBankRequired          = "Bank is required"
	MsgAccountNameRequired   = "Account name is required"
	MsgAccountNumberRequired = "Account number is required"
	MsgEmployeeTypeInvalid   = "Employee type must be one of trainer, intern_school, intern_no_school, fulltime"
	MsgNRICLastFour          = "Please enter your complete 9-character NRIC/FIN, not just the last 4 digits"
	MsgNRICLength            = "NRIC/FIN must be exactly 9 characters (e.g., S1234567A)"
	MsgNRICFormat            = "Invalid NRIC/FIN format. It should start with S, T, F, G, or M followed by 7 digits and 1 letter"
	MsgEmailFormat           = "Invalid email format"
	MsgInternStartRequired   = "Start date is required for interns"
	MsgInternEndRequired     = "End date is required for interns"
	MsgEndBeforeStart        = "End date must be after start date"
	MsgFullTimeStartRequired = "Start date is required for full-time employees"
	MsgAccountNumberDigits   = "Account number must contain only digits"
	MsgDOBFormat             = "Date of birth must be in YYYY-MM-DD format"
	MsgStartDateFormat       = "Start date must be in YYYY-MM-DD format"
	MsgEndDateFormat         = "End date must be in YYYY-MM-DD format"
)

// SubmissionSchema checks only JSON types so a malformed field becomes a readable
// error before decoding. Business rules live in Validate.
const SubmissionSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"properties": {
		"employeeType":      {"type": "string"},
		"fullName":          {"type": "string"},
		"email":             {"type": "string"},
		"nric":              {"type": "string"},
		"nationality":       {"type": "string"},
		"citizenshipStatus": {"type": "string"},
		"dob":               {"type": "string"},
		"gender":            {"type": "string"},
		"bank":              {"type": "string"},
		"accountName":       {"type": "string"},
		"accountNumber":     {"type": "string"},
		"startDate":         {"type": ["string", "null"]},
		"endDate":           {"type": ["string", "null"]},
		"jobTitle":          {"type": ["string", "null"]},
		"requiresSHG":       {"type": ["boolean", "null"]}
	}
}`

var submissionSchema = validation.MustCompile(SubmissionSchema)

// CheckShape validates the raw request body against SubmissionSchema.
func CheckShape(body []byte) (*validation.ValidationResult, error) {
	return submissionSchema.ValidateDocument(body)
}

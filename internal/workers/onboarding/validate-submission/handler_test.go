// internal/workers/onboarding/validate-submission/handler_test.go
package validatesubmission

import (
	"testing"

	"onboarding-intake/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func validSubmission(employeeType models.EmployeeType) models.Submission {
	sub := models.Submission{
		EmployeeType:      employeeType,
		FullName:          "Jane Tan",
		Email:             "jane.tan@example.com",
		NRIC:              "S1234567A",
		Nationality:       "Singaporean",
		CitizenshipStatus: models.CitizenshipSGCitizen,
		DOB:               "1999-05-14",
		Gender:            "female",
		Bank:              "DBS",
		AccountName:       "Jane Tan",
		AccountNumber:     "0123456789",
	}
	switch employeeType {
	case models.EmployeeTypeInternSchool, models.EmployeeTypeInternNoSchool:
		sub.StartDate = "2024-06-03"
		sub.EndDate = "2024-08-30"
	case models.EmployeeTypeFullTime:
		sub.StartDate = "2024-07-01"
	}
	return sub
}

// ==========================
// Core Functionality Tests
// ==========================

func TestValidator_Validate_AcceptsEveryCategory(t *testing.T) {
	v := New()
	for _, et := range []models.EmployeeType{
		models.EmployeeTypeTrainer,
		models.EmployeeTypeInternSchool,
		models.EmployeeTypeInternNoSchool,
		models.EmployeeTypeFullTime,
	} {
		t.Run(string(et), func(t *testing.T) {
			result := v.Validate(validSubmission(et))
			assert.True(t, result.Valid(), "unexpected errors: %v", result.Messages())
		})
	}
}

func TestValidator_Validate_EmptySubmission(t *testing.T) {
	result := New().Validate(models.Submission{})

	assert.Equal(t, []string{
		MsgEmployeeTypeRequired,
		MsgFullNameRequired,
		MsgEmailRequired,
		MsgNRICRequired,
		MsgNationalityRequired,
		MsgCitizenshipRequired,
		MsgDOBRequired,
		MsgGenderRequired,
		MsgBankRequired,
		MsgAccountNameRequired,
		MsgAccountNumberRequired,
	}, result.Messages())
}

func TestValidator_Validate_WhitespaceCountsAsMissing(t *testing.T) {
	sub := validSubmission(models.EmployeeTypeTrainer)
	sub.FullName = "   "
	sub.Bank = "\t"

	result := New().Validate(sub)
	assert.Equal(t, []string{MsgFullNameRequired, MsgBankRequired}, result.Messages())
}

func TestValidator_Validate_NRIC(t *testing.T) {
	tests := []struct {
		name     string
		nric     string
		expected []string
	}{
		{name: "valid uppercase", nric: "S1234567A", expected: nil},
		{name: "valid lowercase", nric: "t7654321z", expected: nil},
		{name: "trimmed", nric: "  G1234567X ", expected: nil},
		{name: "last four digits only", nric: "567A", expected: []string{MsgNRICLength}},
		{name: "four digits", nric: "4567", expected: []string{MsgNRICLastFour}},
		{name: "too short", nric: "S123456A", expected: []string{MsgNRICLength}},
		{name: "too long", nric: "S12345678A", expected: []string{MsgNRICLength}},
		{name: "bad prefix", nric: "A1234567B", expected: []string{MsgNRICFormat}},
		{name: "letter in digits", nric: "S12345X7A", expected: []string{MsgNRICFormat}},
		{name: "digit suffix", nric: "S12345678", expected: []string{MsgNRICFormat}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := validSubmission(models.EmployeeTypeTrainer)
			sub.NRIC = tt.nric
			result := New().Validate(sub)
			if tt.expected == nil {
				assert.True(t, result.Valid(), "unexpected errors: %v", result.Messages())
				return
			}
			assert.Equal(t, tt.expected, result.Messages())
		})
	}
}

func TestValidator_Validate_Email(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"a@b.co", true},
		{"first.last+tag@sub.example.sg", true},
		{"no-at-sign.com", false},
		{"a@nodot", false},
		{"a b@example.com", false},
		{"a@@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			sub := validSubmission(models.EmployeeTypeTrainer)
			sub.Email = tt.email
			result := New().Validate(sub)
			if tt.valid {
				assert.True(t, result.Valid(), "unexpected errors: %v", result.Messages())
			} else {
				assert.Equal(t, []string{MsgEmailFormat}, result.Messages())
			}
		})
	}
}

func TestValidator_Validate_InternDates(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		expected []string
	}{
		{name: "both missing", expected: []string{MsgInternStartRequired, MsgInternEndRequired}},
		{name: "end missing", start: "2024-06-01", expected: []string{MsgInternEndRequired}},
		{name: "start missing", end: "2024-06-01", expected: []string{MsgInternStartRequired}},
		{name: "end equals start", start: "2024-06-01", end: "2024-06-01", expected: []string{MsgEndBeforeStart}},
		{name: "end before start", start: "2024-06-02", end: "2024-06-01", expected: []string{MsgEndBeforeStart}},
		{name: "end after start", start: "2024-06-01", end: "2024-06-02", expected: nil},
		{name: "malformed start", start: "01/06/2024", end: "2024-06-02", expected: []string{MsgStartDateFormat}},
	}

	for _, et := range []models.EmployeeType{models.EmployeeTypeInternSchool, models.EmployeeTypeInternNoSchool} {
		for _, tt := range tests {
			t.Run(string(et)+"/"+tt.name, func(t *testing.T) {
				sub := validSubmission(et)
				sub.StartDate = tt.start
				sub.EndDate = tt.end
				result := New().Validate(sub)
				if tt.expected == nil {
					assert.True(t, result.Valid(), "unexpected errors: %v", result.Messages())
					return
				}
				assert.Equal(t, tt.expected, result.Messages())
			})
		}
	}
}

func TestValidator_Validate_FullTimeDates(t *testing.T) {
	sub := validSubmission(models.EmployeeTypeFullTime)
	sub.StartDate = ""
	assert.Equal(t, []string{MsgFullTimeStartRequired}, New().Validate(sub).Messages())

	sub.StartDate = "2024-07-01"
	sub.EndDate = ""
	assert.True(t, New().Validate(sub).Valid())
}

func TestValidator_Validate_TrainerNeedsNoDates(t *testing.T) {
	sub := validSubmission(models.EmployeeTypeTrainer)
	sub.StartDate = ""
	sub.EndDate = ""
	assert.True(t, New().Validate(sub).Valid())

	sub.StartDate = "2024-02-30"
	assert.Equal(t, []string{MsgStartDateFormat}, New().Validate(sub).Messages())
}

func TestValidator_Validate_AccountNumber(t *testing.T) {
	sub := validSubmission(models.EmployeeTypeTrainer)
	sub.AccountNumber = "123-456-789"
	assert.Equal(t, []string{MsgAccountNumberDigits}, New().Validate(sub).Messages())
}

func TestValidator_Validate_UnknownEmployeeType(t *testing.T) {
	sub := validSubmission(models.EmployeeTypeTrainer)
	sub.EmployeeType = "contractor"
	assert.Equal(t, []string{MsgEmployeeTypeInvalid}, New().Validate(sub).Messages())
}

func TestValidator_Validate_CollectsInCheckOrder(t *testing.T) {
	sub := validSubmission(models.EmployeeTypeInternSchool)
	sub.FullName = ""
	sub.NRIC = "1234"
	sub.Email = "bad"
	sub.EndDate = ""
	sub.AccountNumber = "12ab"

	result := New().Validate(sub)
	assert.Equal(t, []string{
		MsgFullNameRequired,
		MsgNRICLastFour,
		MsgEmailFormat,
		MsgInternEndRequired,
		MsgAccountNumberDigits,
	}, result.Messages())

	fields := make([]string, 0, len(result.Errors))
	for _, e := range result.Errors {
		fields = append(fields, e.Field)
	}
	assert.Equal(t, []string{"fullName", "nric", "email", "endDate", "accountNumber"}, fields)
}

func TestValidator_Validate_DoesNotMutate(t *testing.T) {
	sub := validSubmission(models.EmployeeTypeInternSchool)
	sub.NRIC = "  s1234567a "
	before := sub
	_ = New().Validate(sub)
	assert.Equal(t, before, sub)
}

// ==========================
// Shape Check Tests
// ==========================

func TestCheckShape(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		valid bool
	}{
		{name: "typical form", body: `{"employeeType":"trainer","fullName":"Jane","requiresSHG":true,"startDate":null}`, valid: true},
		{name: "empty object", body: `{}`, valid: true},
		{name: "numeric name", body: `{"fullName": 42}`, valid: false},
		{name: "string boolean", body: `{"requiresSHG": "yes"}`, valid: false},
		{name: "array body", body: `[]`, valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CheckShape([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.valid, result.Valid)
		})
	}
}

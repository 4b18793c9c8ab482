// internal/workers/onboarding/validate-submission/handler.go
package validatesubmission

import (
	"strings"
	"time"

	"onboarding-intake/internal/models"
)

// Validator checks a submission for completeness and format. It has no side effects.
type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// Validate collects every failed rule in check order.
func (v *Validator) Validate(sub models.Submission) models.ValidationResult {
	var result models.ValidationResult

	v.checkRequired(sub, &result)
	v.checkEmployeeType(sub, &result)
	v.checkNRIC(sub, &result)
	v.checkEmail(sub, &result)
	v.checkDates(sub, &result)
	v.checkAccountNumber(sub, &result)

	return result
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func (v *Validator) checkRequired(sub models.Submission, result *models.ValidationResult) {
	required := []struct {
		field   string
		value   string
		message string
	}{
		{"employeeType", string(sub.EmployeeType), MsgEmployeeTypeRequired},
		{"fullName", sub.FullName, MsgFullNameRequired},
		{"email", sub.Email, MsgEmailRequired},
		{"nric", sub.NRIC, MsgNRICRequired},
		{"nationality", sub.Nationality, MsgNationalityRequired},
		{"citizenshipStatus", sub.CitizenshipStatus, MsgCitizenshipRequired},
		{"dob", sub.DOB, MsgDOBRequired},
		{"gender", sub.Gender, MsgGenderRequired},
		{"bank", sub.Bank, MsgBankRequired},
		{"accountName", sub.AccountName, MsgAccountNameRequired},
		{"accountNumber", sub.AccountNumber, MsgAccountNumberRequired},
	}

	for _, r := range required {
		if blank(r.value) {
			result.Add(r.field, r.message)
		}
	}
}

func (v *Validator) checkEmployeeType(sub models.Submission, result *models.ValidationResult) {
	if blank(string(sub.EmployeeType)) {
		return
	}
	switch sub.EmployeeType {
	case models.EmployeeTypeTrainer, models.EmployeeTypeInternSchool,
		models.EmployeeTypeInternNoSchool, models.EmployeeTypeFullTime:
		return
	}
	result.Add("employeeType", MsgEmployeeTypeInvalid)
}

func (v *Validator) checkNRIC(sub models.Submission, result *models.ValidationResult) {
	if blank(sub.NRIC) {
		return
	}

	nric := strings.TrimSpace(sub.NRIC)
	if len([]rune(nric)) != 9 {
		if lastFourDigitsOnly.MatchString(nric) {
			result.Add("nric", MsgNRICLastFour)
		} else {
			result.Add("nric", MsgNRICLength)
		}
		return
	}

	if !nricPattern.MatchString(nric) {
		result.Add("nric", MsgNRICFormat)
	}
}

func (v *Validator) checkEmail(sub models.Submission, result *models.ValidationResult) {
	if blank(sub.Email) {
		return
	}
	if !emailPattern.MatchString(sub.Email) {
		result.Add("email", MsgEmailFormat)
	}
}

// checkDates applies the per-category date rules, then reports malformed supplied dates.
func (v *Validator) checkDates(sub models.Submission, result *models.ValidationResult) {
	start, startOK := parseDate(sub.StartDate)
	end, endOK := parseDate(sub.EndDate)

	switch {
	case sub.EmployeeType.IsIntern():
		if blank(sub.StartDate) {
			result.Add("startDate", MsgInternStartRequired)
		}
		if blank(sub.EndDate) {
			result.Add("endDate", MsgInternEndRequired)
		}
		if startOK && endOK && !end.After(start) {
			result.Add("endDate", MsgEndBeforeStart)
		}
	case sub.EmployeeType == models.EmployeeTypeFullTime:
		if blank(sub.StartDate) {
			result.Add("startDate", MsgFullTimeStartRequired)
		}
	}

	if !blank(sub.DOB) {
		if _, ok := parseDate(sub.DOB); !ok {
			result.Add("dob", MsgDOBFormat)
		}
	}
	if !blank(sub.StartDate) && !startOK {
		result.Add("startDate", MsgStartDateFormat)
	}
	if !blank(sub.EndDate) && !endOK {
		result.Add("endDate", MsgEndDateFormat)
	}
}

func (v *Validator) checkAccountNumber(sub models.Submission, result *models.ValidationResult) {
	if blank(sub.AccountNumber) {
		return
	}
	if !digitsOnly.MatchString(sub.AccountNumber) {
		result.Add("accountNumber", MsgAccountNumberDigits)
	}
}

// parseDate accepts only YYYY-MM-DD calendar dates.
func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if !isoDatePattern.MatchString(value) {
		return time.Time{}, false
	}
	t, err := time.Parse(models.DateLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

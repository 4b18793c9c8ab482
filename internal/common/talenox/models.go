package talenox

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"onboarding-intake/internal/models"

	"github.com/shopspring/decimal"
)


// EmployeeRecord is the create-employee payload.
type EmployeeRecord struct {
	FirstName              string      `json:"first_name"`
	IdentificationFullName string      `json:"identification_full_name"`
	Email                  string      `json:"email"`
	Gender                 string      `json:"gender"`
	Nationality            string      `json:"nationality"`
	HiredDate              string      `json:"hired_date"`
	ResignDate             *string     `json:"resign_date"`
	Birthdate              string      `json:"birthdate"`
	SSN                    string      `json:"ssn"`
	EmployeeID             string      `json:"employee_id"`
	Citizenship            string      `json:"citizenship"`
	BankAccount            BankAccount `json:"bank_account_attributes"`
	JobTitle               string      `json:"job_title,omitempty"`
	Position               string      `json:"position,omitempty"`
	InviteUser             bool        `json:"invite_user"`
	EmployeeType           string      `json:"employee_type"`
	RequiresSHG            bool        `json:"requires_shg"`
	CountryID              string      `json:"country_id"`
}

type BankAccount struct {
	BankType    string `json:"bank_type"`
	AccountName string `json:"account_name"`
	Number      string `json:"number"`
}

// Redacted returns a log-safe view of the record.
func (r EmployeeRecord) Redacted() map[string]interface{} {
	resign := ""
	if r.ResignDate != nil {
		resign = *r.ResignDate
	}
	return map[string]interface{}{
		"employee_id":   r.EmployeeID,
		"employee_type": r.EmployeeType,
		"citizenship":   r.Citizenship,
		"hired_date":    r.HiredDate,
		"resign_date":   resign,
		"ssn":           models.RedactNRIC(r.SSN),
		"bank_type":     r.BankAccount.BankType,
		"number":        models.RedactAccountNumber(r.BankAccount.Number),
	}
}

// JobRecord is the create-job payload, linked to a created employee.
type JobRecord struct {
	EmployeeID int64      `json:"employee_id"`
	Title      string     `json:"title"`
	Job        JobDetails `json:"job"`
}

type JobDetails struct {
	Title      string          `json:"title"`
	Department string          `json:"department"`
	StartDate  string          `json:"start_date"`
	EndDate    string          `json:"end_date"`
	Currency   string          `json:"currency"`
	Amount     decimal.Decimal `json:"amount"`
	RateOfPay  string          `json:"rate_of_pay"`
	Remarks    string          `json:"remarks"`
}

// MarshalJSON writes Amount as a bare JSON number, which is what Talenox expects.
func (d JobDetails) MarshalJSON() ([]byte, error) {
	type plain JobDetails
	return json.Marshal(struct {
		plain
		Amount json.Number `json:"amount"`
	}{plain: plain(d), Amount: json.Number(d.Amount.String())})
}

// CreatedEmployee is the subset of the create response the workflow needs.
type CreatedEmployee struct {
	ID  string
	Raw map[string]interface{}
}

type CreatedJob struct {
	ID  string
	Raw map[string]interface{}
}

// APIError is a non-2xx response from Talenox.
type APIError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("talenox %s failed (status %d)", e.Operation, e.StatusCode)
}

// Message returns the "message" field of a JSON error body, if any.
func (e *APIError) Message() string {
	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(e.Body), &payload); err != nil {
		return ""
	}
	if msg, ok := payload["message"].(string); ok {
		return msg
	}
	return ""
}

var duplicateMarkers = []string{"duplicate", "already exist", "has already been taken", "unique"}

// IsDuplicate scans a JSON error body for wording that suggests the person exists.
// Non-JSON bodies never count as duplicates.
func (e *APIError) IsDuplicate() bool {
	if !json.Valid([]byte(e.Body)) {
		return false
	}
	lowered := strings.ToLower(e.Body)
	for _, marker := range duplicateMarkers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}

// Excerpt returns at most n bytes of the raw body, cut on a rune boundary.
func (e *APIError) Excerpt(n int) string {
	if len(e.Body) <= n {
		return e.Body
	}
	for n > 0 && !utf8.RuneStart(e.Body[n]) {
		n--
	}
	return e.Body[:n]
}

// idString renders a decoded JSON id (string or json.Number) as a string.
func idString(v interface{}) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return id
	case json.Number:
		return id.String()
	case float64:
		return fmt.Sprintf("%.0f", id)
	default:
		return fmt.Sprintf("%v", id)
	}
}

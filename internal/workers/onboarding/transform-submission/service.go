// internal/workers/onboarding/transform-submission/service.go
package transformsubmission

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"onboarding-intake/internal/common/talenox"
	"onboarding-intake/internal/models"
)

// IDAllocator yields the next employee number. It never fails.
type IDAllocator interface {
	Next(ctx context.Context) string
}

// Transformer maps a validated submission into Talenox payloads.
// Given the same clock and allocator it is deterministic.
type Transformer struct {
	config    *Config
	allocator IDAllocator
	now       func() time.Time
}

func NewTransformer(config *Config, allocator IDAllocator, now func() time.Time) *Transformer {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Location == nil {
		config.Location = DefaultLocation
	}
	if now == nil {
		now = time.Now
	}
	return &Transformer{config: config, allocator: allocator, now: now}
}

// Transform builds the employee record, allocating its employee number.
func (t *Transformer) Transform(ctx context.Context, sub models.Submission) (talenox.EmployeeRecord, error) {
	hired, resign, err := t.employmentDates(sub)
	if err != nil {
		return talenox.EmployeeRecord{}, err
	}

	nationality := strings.TrimSpace(sub.Nationality)
	if nationality == "" {
		nationality = t.config.DefaultNationality
	}

	record := talenox.EmployeeRecord{
		FirstName:              sub.FullName,
		IdentificationFullName: sub.FullName,
		Email:                  sub.Email,
		Gender:                 capitalize(sub.Gender),
		Nationality:            nationality,
		HiredDate:              hired,
		ResignDate:             resign,
		Birthdate:              sub.DOB,
		SSN:                    strings.TrimSpace(sub.NRIC),
		Citizenship:            Citizenship(sub.EmployeeType, sub.CitizenshipStatus),
		BankAccount: talenox.BankAccount{
			BankType:    sub.Bank,
			AccountName: sub.AccountName,
			Number:      sub.AccountNumber,
		},
		JobTitle:     sub.JobTitle,
		Position:     sub.JobTitle,
		InviteUser:   true,
		EmployeeType: string(sub.EmployeeType),
		RequiresSHG:  sub.RequiresSHG,
		CountryID:    t.config.CountryID,
	}

	if t.allocator != nil {
		record.EmployeeID = t.allocator.Next(ctx)
	}

	return record, nil
}

// employmentDates returns hired_date and resign_date (nil when open-ended).
// Trainers default to the 1st of last month and always resign the next day.
func (t *Transformer) employmentDates(sub models.Submission) (string, *string, error) {
	hired := strings.TrimSpace(sub.StartDate)
	end := strings.TrimSpace(sub.EndDate)

	if sub.EmployeeType != models.EmployeeTypeTrainer {
		if end == "" {
			return hired, nil, nil
		}
		return hired, &end, nil
	}

	var hiredAt time.Time
	if hired == "" {
		today := t.today()
		hiredAt = time.Date(today.Year(), today.Month()-1, 1, 0, 0, 0, 0, time.UTC)
		hired = hiredAt.Format(models.DateLayout)
	} else {
		parsed, err := time.Parse(models.DateLayout, hired)
		if err != nil {
			return "", nil, fmt.Errorf("invalid start date %q: %w", hired, err)
		}
		hiredAt = parsed
	}

	resign := hiredAt.AddDate(0, 0, 1).Format(models.DateLayout)
	return hired, &resign, nil
}

// Citizenship maps category and form status to the Talenox classification.
func Citizenship(employeeType models.EmployeeType, status string) string {
	switch employeeType {
	case models.EmployeeTypeTrainer, models.EmployeeTypeInternSchool:
		return CitizenshipContract
	case models.EmployeeTypeInternNoSchool:
		return CitizenshipIntern
	case models.EmployeeTypeFullTime:
		if status == models.CitizenshipSGPR {
			return CitizenshipSGPR
		}
		return CitizenshipSGCitizen
	}
	return CitizenshipContract
}

// BuildJob derives the job record for a created employee.
// Interns run three months and full-timers ten years from the 1st of next month;
// trainers reuse the employee's hire and resign dates.
func (t *Transformer) BuildJob(personID string, employeeType models.EmployeeType, record talenox.EmployeeRecord) (talenox.JobRecord, error) {
	profile, ok := ProfileFor(employeeType)
	if !ok {
		return talenox.JobRecord{}, fmt.Errorf("no job profile for employee type %q", employeeType)
	}

	employeeID, err := strconv.ParseInt(strings.TrimSpace(personID), 10, 64)
	if err != nil {
		return talenox.JobRecord{}, fmt.Errorf("person id %q is not numeric: %w", personID, err)
	}

	today := t.today()
	nextMonth := time.Date(today.Year(), today.Month()+1, 1, 0, 0, 0, 0, time.UTC)

	var start, end time.Time
	switch {
	case employeeType == models.EmployeeTypeTrainer:
		start, err = time.Parse(models.DateLayout, record.HiredDate)
		if err != nil {
			return talenox.JobRecord{}, fmt.Errorf("invalid hired date %q: %w", record.HiredDate, err)
		}
		end = start.AddDate(0, 0, 1)
		if record.ResignDate != nil {
			end, err = time.Parse(models.DateLayout, *record.ResignDate)
			if err != nil {
				return talenox.JobRecord{}, fmt.Errorf("invalid resign date %q: %w", *record.ResignDate, err)
			}
		}
	case employeeType.IsIntern():
		start = nextMonth
		end = nextMonth.AddDate(0, 3, 0)
	default:
		start = nextMonth
		end = nextMonth.AddDate(10, 0, 0)
	}

	return talenox.JobRecord{
		EmployeeID: employeeID,
		Title:      profile.Title,
		Job: talenox.JobDetails{
			Title:      profile.Title,
			Department: profile.Department,
			StartDate:  start.Format(JobDateLayout),
			EndDate:    end.Format(JobDateLayout),
			Currency:   t.config.Currency,
			Amount:     profile.Amount,
			RateOfPay:  t.config.RateOfPay,
			Remarks:    fmt.Sprintf("Auto-created job for %s", employeeType),
		},
	}, nil
}

// today is the current calendar date in the configured location.
func (t *Transformer) today() time.Time {
	local := t.now().In(t.config.Location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

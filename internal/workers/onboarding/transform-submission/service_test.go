package transformsubmission

import (
	"context"
	"testing"
	"time"

	"onboarding-intake/internal/common/talenox"
	"onboarding-intake/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedAllocator string

func (f fixedAllocator) Next(context.Context) string { return string(f) }

// 2025-03-15 10:00 SGT
func fixedNow() time.Time {
	return time.Date(2025, time.March, 15, 2, 0, 0, 0, time.UTC)
}

func newTestTransformer() *Transformer {
	return NewTransformer(DefaultConfig(), fixedAllocator("307"), fixedNow)
}

func baseSubmission(t models.EmployeeType) models.Submission {
	return models.Submission{
		EmployeeType:      t,
		FullName:          "Jane Tan",
		Email:             "jane@example.com",
		NRIC:              "S1234567A",
		Nationality:       "Malaysian",
		CitizenshipStatus: "foreigner",
		DOB:               "1999-04-02",
		Gender:            "female",
		Bank:              "DBS",
		AccountName:       "Jane Tan",
		AccountNumber:     "0123456789",
	}
}

func TestTransform_InternWithSchool(t *testing.T) {
	sub := baseSubmission(models.EmployeeTypeInternSchool)
	sub.NRIC = "T9876543B"
	sub.StartDate = "2025-02-01"
	sub.EndDate = "2025-05-31"

	record, err := newTestTransformer().Transform(t.Context(), sub)
	require.NoError(t, err)

	assert.Equal(t, CitizenshipContract, record.Citizenship)
	assert.Equal(t, "2025-02-01", record.HiredDate)
	require.NotNil(t, record.ResignDate)
	assert.Equal(t, "2025-05-31", *record.ResignDate)
	assert.Equal(t, "307", record.EmployeeID)
	assert.Equal(t, "T9876543B", record.SSN)
	assert.Equal(t, "Female", record.Gender)
	assert.Equal(t, "Malaysian", record.Nationality)
	assert.Equal(t, "Jane Tan", record.FirstName)
	assert.Equal(t, "Jane Tan", record.IdentificationFullName)
	assert.Equal(t, "intern_school", record.EmployeeType)
	assert.Equal(t, "SG", record.CountryID)
	assert.True(t, record.InviteUser)
	assert.Equal(t, talenox.BankAccount{BankType: "DBS", AccountName: "Jane Tan", Number: "0123456789"}, record.BankAccount)

	profile, ok := ProfileFor(sub.EmployeeType)
	require.True(t, ok)
	assert.True(t, profile.Amount.Equal(decimal.NewFromInt(800)))
}

func TestTransform_InternWithoutSchool(t *testing.T) {
	sub := baseSubmission(models.EmployeeTypeInternNoSchool)
	sub.StartDate = "2025-06-01"
	sub.EndDate = "2025-08-31"

	record, err := newTestTransformer().Transform(t.Context(), sub)
	require.NoError(t, err)
	assert.Equal(t, CitizenshipIntern, record.Citizenship)
	assert.Equal(t, "2025-08-31", *record.ResignDate)
}

func TestTransform_TrainerDates(t *testing.T) {
	tests := []struct {
		name           string
		start          string
		end            string
		expectedHired  string
		expectedResign string
	}{
		{
			name:           "defaults to first of previous month",
			expectedHired:  "2025-02-01",
			expectedResign: "2025-02-02",
		},
		{
			name:           "explicit start",
			start:          "2025-04-10",
			expectedHired:  "2025-04-10",
			expectedResign: "2025-04-11",
		},
		{
			name:           "provided end date is ignored",
			start:          "2025-04-30",
			end:            "2025-12-31",
			expectedHired:  "2025-04-30",
			expectedResign: "2025-05-01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := baseSubmission(models.EmployeeTypeTrainer)
			sub.StartDate = tt.start
			sub.EndDate = tt.end

			record, err := newTestTransformer().Transform(t.Context(), sub)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedHired, record.HiredDate)
			require.NotNil(t, record.ResignDate)
			assert.Equal(t, tt.expectedResign, *record.ResignDate)
			assert.Equal(t, CitizenshipContract, record.Citizenship)
		})
	}
}

func TestTransform_TrainerPreviousMonthAcrossYear(t *testing.T) {
	january := func() time.Time { return time.Date(2025, time.January, 20, 4, 0, 0, 0, time.UTC) }
	tr := NewTransformer(nil, fixedAllocator("400"), january)

	record, err := tr.Transform(t.Context(), baseSubmission(models.EmployeeTypeTrainer))
	require.NoError(t, err)
	assert.Equal(t, "2024-12-01", record.HiredDate)
	assert.Equal(t, "2024-12-02", *record.ResignDate)
}

func TestTransform_TodayUsesSingaporeCalendar(t *testing.T) {
	// 2025-02-28 17:00 UTC is already 1 March in Singapore.
	lateUTC := func() time.Time { return time.Date(2025, time.February, 28, 17, 0, 0, 0, time.UTC) }
	tr := NewTransformer(nil, fixedAllocator("400"), lateUTC)

	record, err := tr.Transform(t.Context(), baseSubmission(models.EmployeeTypeTrainer))
	require.NoError(t, err)
	assert.Equal(t, "2025-02-01", record.HiredDate)
}

func TestTransform_FullTime(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		expected string
	}{
		{name: "citizen", status: models.CitizenshipSGCitizen, expected: CitizenshipSGCitizen},
		{name: "permanent resident", status: models.CitizenshipSGPR, expected: CitizenshipSGPR},
		{name: "other defaults to citizen", status: "foreigner", expected: CitizenshipSGCitizen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := baseSubmission(models.EmployeeTypeFullTime)
			sub.CitizenshipStatus = tt.status
			sub.StartDate = "2025-04-01"
			sub.JobTitle = "Engineer"

			record, err := newTestTransformer().Transform(t.Context(), sub)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, record.Citizenship)
			assert.Equal(t, "2025-04-01", record.HiredDate)
			assert.Nil(t, record.ResignDate)
			assert.Equal(t, "Engineer", record.JobTitle)
			assert.Equal(t, "Engineer", record.Position)
		})
	}
}

func TestTransform_NationalityDefault(t *testing.T) {
	sub := baseSubmission(models.EmployeeTypeInternSchool)
	sub.Nationality = "  "
	sub.StartDate = "2025-02-01"
	sub.EndDate = "2025-05-31"

	record, err := newTestTransformer().Transform(t.Context(), sub)
	require.NoError(t, err)
	assert.Equal(t, "Singaporean", record.Nationality)
}

func TestTransform_Deterministic(t *testing.T) {
	sub := baseSubmission(models.EmployeeTypeTrainer)
	tr := newTestTransformer()

	first, err := tr.Transform(t.Context(), sub)
	require.NoError(t, err)
	second, err := tr.Transform(t.Context(), sub)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestTransform_InvalidTrainerStart(t *testing.T) {
	sub := baseSubmission(models.EmployeeTypeTrainer)
	sub.StartDate = "01/04/2025"

	_, err := newTestTransformer().Transform(t.Context(), sub)
	assert.ErrorContains(t, err, "invalid start date")
}

func TestBuildJob(t *testing.T) {
	resign := "2025-04-11"

	tests := []struct {
		name         string
		employeeType models.EmployeeType
		record       talenox.EmployeeRecord
		title        string
		department   string
		start        string
		end          string
		amount       int64
	}{
		{
			name:         "intern school",
			employeeType: models.EmployeeTypeInternSchool,
			title:        "Tinkertanker Intern",
			department:   "Internship",
			start:        "01/04/2025",
			end:          "01/07/2025",
			amount:       800,
		},
		{
			name:         "intern no school",
			employeeType: models.EmployeeTypeInternNoSchool,
			title:        "Tinkertanker Intern",
			department:   "Internship",
			start:        "01/04/2025",
			end:          "01/07/2025",
			amount:       800,
		},
		{
			name:         "full-time",
			employeeType: models.EmployeeTypeFullTime,
			title:        "Tinkertanker Full-timer",
			department:   "Operations",
			start:        "01/04/2025",
			end:          "01/04/2035",
			amount:       3000,
		},
		{
			name:         "trainer",
			employeeType: models.EmployeeTypeTrainer,
			record:       talenox.EmployeeRecord{HiredDate: "2025-04-10", ResignDate: &resign},
			title:        "Freelance Trainer",
			department:   "Tinkercademy",
			start:        "10/04/2025",
			end:          "11/04/2025",
			amount:       0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job, err := newTestTransformer().BuildJob("88123", tt.employeeType, tt.record)
			require.NoError(t, err)

			assert.Equal(t, int64(88123), job.EmployeeID)
			assert.Equal(t, tt.title, job.Title)
			assert.Equal(t, tt.title, job.Job.Title)
			assert.Equal(t, tt.department, job.Job.Department)
			assert.Equal(t, tt.start, job.Job.StartDate)
			assert.Equal(t, tt.end, job.Job.EndDate)
			assert.True(t, job.Job.Amount.Equal(decimal.NewFromInt(tt.amount)))
			assert.Equal(t, "SGD", job.Job.Currency)
			assert.Equal(t, "Monthly", job.Job.RateOfPay)
			assert.Equal(t, "Auto-created job for "+string(tt.employeeType), job.Job.Remarks)
		})
	}
}

func TestBuildJob_DecemberRollsIntoNextYear(t *testing.T) {
	december := func() time.Time { return time.Date(2025, time.December, 3, 1, 0, 0, 0, time.UTC) }
	tr := NewTransformer(nil, nil, december)

	job, err := tr.BuildJob("1", models.EmployeeTypeInternSchool, talenox.EmployeeRecord{})
	require.NoError(t, err)
	assert.Equal(t, "01/01/2026", job.Job.StartDate)
	assert.Equal(t, "01/04/2026", job.Job.EndDate)
}

func TestBuildJob_Errors(t *testing.T) {
	tr := newTestTransformer()

	_, err := tr.BuildJob("88123", models.EmployeeType("contractor"), talenox.EmployeeRecord{})
	assert.ErrorContains(t, err, "no job profile")

	_, err = tr.BuildJob("abc", models.EmployeeTypeFullTime, talenox.EmployeeRecord{})
	assert.ErrorContains(t, err, "not numeric")

	_, err = tr.BuildJob("1", models.EmployeeTypeTrainer, talenox.EmployeeRecord{HiredDate: "nope"})
	assert.ErrorContains(t, err, "invalid hired date")
}

func TestCitizenship(t *testing.T) {
	assert.Equal(t, CitizenshipContract, Citizenship(models.EmployeeTypeTrainer, models.CitizenshipSGPR))
	assert.Equal(t, CitizenshipContract, Citizenship(models.EmployeeTypeInternSchool, ""))
	assert.Equal(t, CitizenshipIntern, Citizenship(models.EmployeeTypeInternNoSchool, ""))
	assert.Equal(t, CitizenshipSGPR, Citizenship(models.EmployeeTypeFullTime, models.CitizenshipSGPR))
	assert.Equal(t, CitizenshipSGCitizen, Citizenship(models.EmployeeTypeFullTime, ""))
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Male", capitalize("male"))
	assert.Equal(t, "Female", capitalize("Female"))
	assert.Equal(t, "", capitalize(""))
}

package notifyhr

import (
	"fmt"
	"strings"
	"time"

	"onboarding-intake/internal/models"
)

// TimestampLayout renders failure times like 2025-03-01T04:05:06.789Z.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

const (
	successFooter = "This is an automated notification from the Tinkercademy onboarding system."
	failureFooter = "This is an automated failure alert from the Tinkercademy onboarding system."
)

// SuccessSubject is "New Employee: <name> (<type>)".
func SuccessSubject(sub models.Submission) string {
	return fmt.Sprintf("New Employee: %s (%s)", sub.FullName, sub.EmployeeType.DisplayName())
}

// FailureSubject tolerates a submission that never passed validation.
func FailureSubject(sub models.Submission) string {
	name := orDefault(sub.FullName, "Unknown")
	kind := "Unknown"
	if sub.EmployeeType != "" {
		kind = sub.EmployeeType.DisplayName()
	}
	return fmt.Sprintf("⚠️ FAILED Onboarding: %s (%s)", name, kind)
}

func SuccessBody(n models.Notification) string {
	sub := n.Submission
	jobID := "Not yet assigned"
	if n.JobID != nil && *n.JobID != "" {
		jobID = *n.JobID
	}

	var b strings.Builder
	b.WriteString("New Employee Onboarding Submission\n\n")

	b.WriteString("Employee Details:\n")
	fmt.Fprintf(&b, "- Name: %s\n", sub.FullName)
	fmt.Fprintf(&b, "- Employee Type: %s\n", sub.EmployeeType.DisplayName())
	fmt.Fprintf(&b, "- Email: %s\n", sub.Email)
	fmt.Fprintf(&b, "- Nationality: %s\n", orDefault(sub.Nationality, "Not specified"))
	fmt.Fprintf(&b, "- Citizenship Status: %s\n\n", orDefault(sub.CitizenshipStatus, "Not specified"))

	b.WriteString("Talenox Integration:\n")
	fmt.Fprintf(&b, "- Internal Employee ID: %s\n", n.InternalID)
	fmt.Fprintf(&b, "- Talenox Database ID: %s\n", n.PersonID)
	fmt.Fprintf(&b, "- Job ID: %s\n", jobID)
	b.WriteString("- Status: Successfully created with automatic user account invitation\n\n")

	b.WriteString("Next Steps:\n")
	b.WriteString("- Employee will receive Talenox account invitation email\n")
	b.WriteString("- Review employee details in Talenox dashboard\n")
	b.WriteString("- Confirm all information is correct\n\n")

	b.WriteString(successFooter)
	return b.String()
}

func FailureBody(n models.Notification) string {
	sub := n.Submission
	kind := "Unknown"
	if sub.EmployeeType != "" {
		kind = sub.EmployeeType.DisplayName()
	}
	at := n.At
	if at.IsZero() {
		at = time.Now()
	}

	var b strings.Builder
	b.WriteString("FAILED Employee Onboarding Submission\n\n")

	b.WriteString("Employee Details:\n")
	fmt.Fprintf(&b, "- Name: %s\n", orDefault(sub.FullName, "Not provided"))
	fmt.Fprintf(&b, "- Employee Type: %s\n", kind)
	fmt.Fprintf(&b, "- Email: %s\n", orDefault(sub.Email, "Not provided"))
	fmt.Fprintf(&b, "- Nationality: %s\n", orDefault(sub.Nationality, "Not provided"))
	fmt.Fprintf(&b, "- Citizenship Status: %s\n\n", orDefault(sub.CitizenshipStatus, "Not provided"))

	b.WriteString("Failure Details:\n")
	fmt.Fprintf(&b, "- Error Type: %s\n", n.ErrorType)
	fmt.Fprintf(&b, "- Error Message: %s\n", n.ErrorMessage)
	fmt.Fprintf(&b, "- Timestamp: %s\n\n", at.UTC().Format(TimestampLayout))

	b.WriteString("Action Required:\n")
	b.WriteString("- Review the error details above\n")
	b.WriteString("- Check if this requires manual intervention\n")
	b.WriteString("- Contact the employee if needed to resubmit\n\n")

	b.WriteString(failureFooter)
	return b.String()
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

// internal/models/notification.go
package models

import "time"

// NotificationKind distinguishes success summaries from failure alerts.
type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationFailure NotificationKind = "failure"
)

// Notification is the event handed to observers when a workflow settles or fails.
type Notification struct {
	Kind       NotificationKind `json:"kind"`
	RequestID  string           `json:"requestId"`
	Submission Submission       `json:"-"`
	// Success fields
	PersonID   string  `json:"personId,omitempty"`
	InternalID string  `json:"internalEmployeeId,omitempty"`
	JobID      *string `json:"jobId,omitempty"`
	// Failure fields
	ErrorType    string    `json:"errorType,omitempty"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
	At           time.Time `json:"at"`
}

// EmailMessage is a rendered plain-text email.
type EmailMessage struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

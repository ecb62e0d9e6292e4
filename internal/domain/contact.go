package domain

import (
	"context"
	"errors"
)

// Fixed messages shown to the visitor after a submit attempt
const (
	MessageSubmitSuccess    = "Your message has been sent successfully!"
	MessageSubmitFailed     = "Something went wrong. Please try again."
	MessageTransportFailure = "Failed to send message. Please check your internet connection."
)

// ContactAPIPath is the backend route contact submissions are posted to
const ContactAPIPath = "/api/v5/contact"

var (
	ErrUnknownField       = errors.New("unknown form field")
	ErrSubmissionInFlight = errors.New("a submission is already in flight")
	ErrFormNotFound       = errors.New("form not found")
	ErrTooManyForms       = errors.New("too many open forms")
)

// FormField names one of the four inputs of the contact form
type FormField string

const (
	FieldName    FormField = "name"
	FieldEmail   FormField = "email"
	FieldSubject FormField = "subject"
	FieldMessage FormField = "message"
)

// FormFields lists the inputs in display order
var FormFields = []FormField{FieldName, FieldEmail, FieldSubject, FieldMessage}

// ParseFormField maps an input name to a FormField
func ParseFormField(name string) (FormField, error) {
	for _, f := range FormFields {
		if string(f) == name {
			return f, nil
		}
	}
	return "", ErrUnknownField
}

// FormState backs the contact form. Validation tags mirror the checks the
// browser performs before a submit is allowed.
type FormState struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// Get returns the value of a single field
func (s FormState) Get(field FormField) string {
	switch field {
	case FieldName:
		return s.Name
	case FieldEmail:
		return s.Email
	case FieldSubject:
		return s.Subject
	case FieldMessage:
		return s.Message
	}
	return ""
}

// Set assigns a single field
func (s *FormState) Set(field FormField, value string) error {
	switch field {
	case FieldName:
		s.Name = value
	case FieldEmail:
		s.Email = value
	case FieldSubject:
		s.Subject = value
	case FieldMessage:
		s.Message = value
	default:
		return ErrUnknownField
	}
	return nil
}

// Filled reports, per field, whether the input holds any text.
// The page uses it to float the field label.
func (s FormState) Filled() map[FormField]bool {
	out := make(map[FormField]bool, len(FormFields))
	for _, f := range FormFields {
		out[f] = s.Get(f) != ""
	}
	return out
}

// ContactPayload is the JSON body sent to the contact backend.
// Field order is part of the wire contract.
type ContactPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
}

// PayloadFromState renames name to username; the other fields pass through
func PayloadFromState(s FormState) ContactPayload {
	return ContactPayload{
		Username: s.Name,
		Email:    s.Email,
		Subject:  s.Subject,
		Message:  s.Message,
	}
}

// SubmissionStatus is the submit lifecycle of a form
type SubmissionStatus string

const (
	StatusIdle     SubmissionStatus = "idle"
	StatusInFlight SubmissionStatus = "in-flight"
)

// Outcome classifies a SubmissionResult
type Outcome string

const (
	OutcomeNone    Outcome = ""
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// FailureKind separates the two recoverable failure paths
type FailureKind string

const (
	FailureNone             FailureKind = ""
	FailureServerRejection  FailureKind = "server_rejection"
	FailureTransportFailure FailureKind = "transport_failure"
)

// SubmissionResult is the outcome of the latest submit attempt. Zero value means no result.
type SubmissionResult struct {
	Outcome    Outcome     `json:"outcome,omitempty"`
	Message    string      `json:"message,omitempty"`
	Failure    FailureKind `json:"failure,omitempty"`
	StatusCode int         `json:"status_code,omitempty"`
}

// Succeeded reports whether the backend accepted the submission
func (r SubmissionResult) Succeeded() bool {
	return r.Outcome == OutcomeSuccess
}

// GatewayResponse is what came back from the contact backend.
// Message is empty when the body had no usable "message" field.
type GatewayResponse struct {
	StatusCode int
	Message    string
}

// OK reports a 2xx status
func (r *GatewayResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// ContactGateway delivers a payload to the external contact backend.
// A non-nil error means the request never completed.
type ContactGateway interface {
	SendContact(ctx context.Context, payload ContactPayload) (*GatewayResponse, error)
}

// FormSnapshot is a read-only view of one form session
type FormSnapshot struct {
	ID           string             `json:"id"`
	Fields       FormState          `json:"fields"`
	Status       SubmissionStatus   `json:"status"`
	Result       SubmissionResult   `json:"result"`
	FilledFields map[FormField]bool `json:"filled_fields"`
}

// FieldChangeRequest is the body of a single input event
type FieldChangeRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// FormSessionUsecase owns the contact forms opened by visitors
type FormSessionUsecase interface {
	Open(ctx context.Context) (*FormSnapshot, error)
	Get(ctx context.Context, id string) (*FormSnapshot, error)
	ChangeField(ctx context.Context, id string, field string, value string) (*FormSnapshot, error)
	Submit(ctx context.Context, id string) (*FormSnapshot, error)
	Close(ctx context.Context, id string) error
}

// ValidationError is returned when a form is submitted with missing or malformed fields.
// No request is sent in that case.
type ValidationError struct {
	Messages []string
	Err      error
}

func (e *ValidationError) Error() string {
	if len(e.Messages) == 0 {
		return "form validation failed"
	}
	return "form validation failed: " + e.Messages[0]
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

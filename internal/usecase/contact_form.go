package usecase

import (
	"context"
	"log/slog"
	"sync"

	"agentic-landing-site/internal/domain"
	"agentic-landing-site/pkg/audit"
)

// ContactForm holds the state of one contact form and drives its submit lifecycle.
// Handlers are serialised by mu; the backend call runs without holding it.
type ContactForm struct {
	gateway domain.ContactGateway
	log     *slog.Logger
	audit   *audit.Logger

	mu     sync.Mutex
	state  domain.FormState
	status domain.SubmissionStatus
	result domain.SubmissionResult
}

// NewContactForm creates an idle form with empty fields.
// A nil logger falls back to slog.Default; a nil audit logger disables auditing.
func NewContactForm(gateway domain.ContactGateway, log *slog.Logger, auditLog *audit.Logger) *ContactForm {
	if log == nil {
		log = slog.Default()
	}
	return &ContactForm{
		gateway: gateway,
		log:     log,
		audit:   auditLog,
		status:  domain.StatusIdle,
	}
}

// OnFieldChange stores value in field. No validation is done here.
func (f *ContactForm) OnFieldChange(field domain.FormField, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.Set(field, value)
}

// OnSubmit sends the current fields to the contact backend and records the outcome.
// Every failure is converted into a result message; the only error returned is
// ErrSubmissionInFlight when another submit has not finished yet.
func (f *ContactForm) OnSubmit(ctx context.Context) (domain.SubmissionResult, error) {
	return f.submit(ctx, nil)
}

// SubmitChecked is OnSubmit with a precheck run on the exact fields that will be
// sent, under the same lock. A precheck error is returned as is, nothing is sent
// and the status and previous result stay unchanged.
func (f *ContactForm) SubmitChecked(ctx context.Context, precheck func(domain.FormState) error) (domain.SubmissionResult, error) {
	return f.submit(ctx, precheck)
}

func (f *ContactForm) submit(ctx context.Context, precheck func(domain.FormState) error) (domain.SubmissionResult, error) {
	f.mu.Lock()
	if f.status == domain.StatusInFlight {
		f.mu.Unlock()
		return domain.SubmissionResult{}, domain.ErrSubmissionInFlight
	}
	if precheck != nil {
		if err := precheck(f.state); err != nil {
			f.mu.Unlock()
			return domain.SubmissionResult{}, err
		}
	}
	f.status = domain.StatusInFlight
	f.result = domain.SubmissionResult{}
	payload := domain.PayloadFromState(f.state)
	f.mu.Unlock()

	resp, err := f.gateway.SendContact(ctx, payload)

	f.mu.Lock()
	defer f.mu.Unlock()
	defer func() { f.status = domain.StatusIdle }()

	switch {
	case err != nil:
		f.log.Error("Contact submission failed", "error", err)
		f.audit.SubmissionTransportFailed(ctx, payload.Email, err)
		f.result = domain.SubmissionResult{
			Outcome: domain.OutcomeFailure,
			Message: domain.MessageTransportFailure,
			Failure: domain.FailureTransportFailure,
		}
	case resp.OK():
		f.result = domain.SubmissionResult{
			Outcome:    domain.OutcomeSuccess,
			Message:    domain.MessageSubmitSuccess,
			StatusCode: resp.StatusCode,
		}
		f.state = domain.FormState{}
		f.audit.SubmissionAccepted(ctx, payload.Email, resp.StatusCode)
	default:
		message := resp.Message
		if message == "" {
			message = domain.MessageSubmitFailed
		}
		f.result = domain.SubmissionResult{
			Outcome:    domain.OutcomeFailure,
			Message:    message,
			Failure:    domain.FailureServerRejection,
			StatusCode: resp.StatusCode,
		}
		f.audit.SubmissionRejected(ctx, payload.Email, resp.StatusCode, resp.Message)
	}

	return f.result, nil
}

// State returns a copy of the current fields
func (f *ContactForm) State() domain.FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *ContactForm) Status() domain.SubmissionStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

func (f *ContactForm) Result() domain.SubmissionResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.result
}

// Snapshot reads fields, status and result under a single lock
func (f *ContactForm) Snapshot(id string) domain.FormSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return domain.FormSnapshot{
		ID:           id,
		Fields:       f.state,
		Status:       f.status,
		Result:       f.result,
		FilledFields: f.state.Filled(),
	}
}

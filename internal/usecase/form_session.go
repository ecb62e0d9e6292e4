package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"agentic-landing-site/internal/domain"
	"agentic-landing-site/pkg/audit"
	"agentic-landing-site/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// FormSessionConfig bounds how many forms are kept and for how long
type FormSessionConfig struct {
	TTL      time.Duration
	MaxForms int
}

// DefaultFormSessionConfig keeps a form for 30 minutes of inactivity
func DefaultFormSessionConfig() FormSessionConfig {
	return FormSessionConfig{
		TTL:      30 * time.Minute,
		MaxForms: 10000,
	}
}

type formEntry struct {
	form     *ContactForm
	lastSeen time.Time
}

type formSessionUsecase struct {
	gateway  domain.ContactGateway
	validate *validator.Validate
	log      *slog.Logger
	audit    *audit.Logger
	cfg      FormSessionConfig
	now      func() time.Time

	mu    sync.Mutex
	forms map[string]*formEntry
}

// NewFormSessionUsecase creates the registry of contact forms opened by visitors
func NewFormSessionUsecase(gateway domain.ContactGateway, validate *validator.Validate, log *slog.Logger, auditLog *audit.Logger, cfg FormSessionConfig) domain.FormSessionUsecase {
	return newFormSessionUsecase(gateway, validate, log, auditLog, cfg, time.Now)
}

func newFormSessionUsecase(gateway domain.ContactGateway, validate *validator.Validate, log *slog.Logger, auditLog *audit.Logger, cfg FormSessionConfig, now func() time.Time) *formSessionUsecase {
	if validate == nil {
		validate = validation.New()
	}
	if log == nil {
		log = slog.Default()
	}
	def := DefaultFormSessionConfig()
	if cfg.TTL <= 0 {
		cfg.TTL = def.TTL
	}
	if cfg.MaxForms <= 0 {
		cfg.MaxForms = def.MaxForms
	}
	return &formSessionUsecase{
		gateway:  gateway,
		validate: validate,
		log:      log,
		audit:    auditLog,
		cfg:      cfg,
		now:      now,
		forms:    make(map[string]*formEntry),
	}
}

func (uc *formSessionUsecase) Open(ctx context.Context) (*domain.FormSnapshot, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	now := uc.now()
	uc.evictExpiredLocked(now)
	if len(uc.forms) >= uc.cfg.MaxForms {
		uc.audit.FormCapacityReached(ctx, len(uc.forms))
		return nil, domain.ErrTooManyForms
	}

	id := uuid.NewString()
	entry := &formEntry{
		form:     NewContactForm(uc.gateway, uc.log, uc.audit),
		lastSeen: now,
	}
	uc.forms[id] = entry

	snap := entry.form.Snapshot(id)
	return &snap, nil
}

func (uc *formSessionUsecase) Get(ctx context.Context, id string) (*domain.FormSnapshot, error) {
	form, err := uc.lookup(id)
	if err != nil {
		return nil, err
	}
	snap := form.Snapshot(id)
	return &snap, nil
}

func (uc *formSessionUsecase) ChangeField(ctx context.Context, id string, field string, value string) (*domain.FormSnapshot, error) {
	form, err := uc.lookup(id)
	if err != nil {
		return nil, err
	}
	f, err := domain.ParseFormField(field)
	if err != nil {
		return nil, err
	}
	if err := form.OnFieldChange(f, value); err != nil {
		return nil, err
	}
	snap := form.Snapshot(id)
	return &snap, nil
}

// Submit checks the fields the way the browser would and sends them in one step,
// so a concurrent field change cannot slip in unchecked. Backend failures come back
// inside the snapshot result.
func (uc *formSessionUsecase) Submit(ctx context.Context, id string) (*domain.FormSnapshot, error) {
	form, err := uc.lookup(id)
	if err != nil {
		return nil, err
	}

	validate := func(state domain.FormState) error {
		err := ValidateFormState(uc.validate, state)
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			uc.audit.ValidationFailed(ctx, id, vErr.Messages)
		}
		return err
	}
	if _, err := form.SubmitChecked(ctx, validate); err != nil {
		return nil, err
	}

	uc.touch(id)
	snap := form.Snapshot(id)
	return &snap, nil
}

func (uc *formSessionUsecase) Close(ctx context.Context, id string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if _, ok := uc.forms[id]; !ok {
		return domain.ErrFormNotFound
	}
	delete(uc.forms, id)
	return nil
}

func (uc *formSessionUsecase) lookup(id string) (*ContactForm, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	entry, ok := uc.forms[id]
	if !ok {
		return nil, domain.ErrFormNotFound
	}
	entry.lastSeen = uc.now()
	return entry.form, nil
}

func (uc *formSessionUsecase) touch(id string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if entry, ok := uc.forms[id]; ok {
		entry.lastSeen = uc.now()
	}
}

// evictExpiredLocked drops idle forms past the TTL. Forms with a request in
// flight are kept until it finishes.
func (uc *formSessionUsecase) evictExpiredLocked(now time.Time) {
	for id, entry := range uc.forms {
		if now.Sub(entry.lastSeen) <= uc.cfg.TTL {
			continue
		}
		if entry.form.Status() == domain.StatusInFlight {
			continue
		}
		delete(uc.forms, id)
	}
}

// ValidateFormState runs the browser-equivalent checks (required fields, email format)
func ValidateFormState(v *validator.Validate, state domain.FormState) error {
	if err := v.Struct(state); err != nil {
		return &domain.ValidationError{
			Messages: validation.FormatValidationErrors(err),
			Err:      err,
		}
	}
	return nil
}

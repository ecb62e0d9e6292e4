package audit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"agentic-landing-site/internal/domain"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType represents the type of audit event
type EventType string

const (
	EventSubmissionAccepted  EventType = "submission_accepted"
	EventSubmissionRejected  EventType = "submission_rejected"
	EventSubmissionTransport EventType = "submission_transport_failed"
	EventValidationFailed    EventType = "validation_failed"
	EventRateLimitTriggered  EventType = "rate_limit_triggered"
	EventFormCapacityReached EventType = "form_capacity_reached"
)

// Event represents a submission or abuse related event to be logged
type Event struct {
	Timestamp    time.Time              `json:"timestamp"`
	Service      string                 `json:"service"`
	Environment  string                 `json:"env"`
	Level        string                 `json:"level"`
	Event        EventType              `json:"event"`
	SubjectType  string                 `json:"subject_type,omitempty"`  // "email", "ip", "form"
	SubjectValue string                 `json:"subject_value,omitempty"` // Masked or hashed for PII
	IP           string                 `json:"ip,omitempty"`
	UserAgent    string                 `json:"user_agent,omitempty"`
	RequestID    string                 `json:"request_id,omitempty"`
	Details      map[string]interface{} `json:"details,omitempty"`
}

// maxServerMessage caps how much backend text ends up in one audit line
const maxServerMessage = 256

// logText strips markup from text we did not write before it reaches log viewers
var logText = bluemonday.StrictPolicy()

// Logger writes audit events through Zap. A nil *Logger discards everything,
// so callers never need to check whether auditing is enabled.
type Logger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
}

// New builds a production Zap logger writing JSON to stdout
func New(serviceName, environment string) *Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.LevelKey = "level"
	config.EncoderConfig.MessageKey = "message"
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build(zap.AddCaller())
	if err != nil {
		logger, _ = zap.NewProduction()
	}
	return NewWithZap(logger, serviceName, environment)
}

// NewWithZap wraps an existing Zap logger (tests pass an observer core)
func NewWithZap(logger *zap.Logger, serviceName, environment string) *Logger {
	return &Logger{
		zapLogger:   logger,
		serviceName: serviceName,
		environment: environment,
	}
}

// Log logs an audit event
func (l *Logger) Log(ctx context.Context, event Event) {
	if l == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	event.Service = l.serviceName
	event.Environment = l.environment
	if event.RequestID == "" && ctx != nil {
		if id, ok := ctx.Value(domain.KeyRequestID).(string); ok {
			event.RequestID = id
		}
	}

	level := zapcore.WarnLevel
	switch event.Event {
	case EventSubmissionAccepted:
		level = zapcore.InfoLevel
	case EventSubmissionRejected, EventValidationFailed, EventRateLimitTriggered, EventFormCapacityReached:
		level = zapcore.WarnLevel
	case EventSubmissionTransport:
		level = zapcore.ErrorLevel
	}
	event.Level = level.String()

	fields := []zap.Field{
		zap.String("service", event.Service),
		zap.String("env", event.Environment),
		zap.String("event", string(event.Event)),
	}
	if event.SubjectType != "" {
		fields = append(fields, zap.String("subject_type", event.SubjectType))
	}
	if event.SubjectValue != "" {
		fields = append(fields, zap.String("subject_value", event.SubjectValue))
	}
	if event.IP != "" {
		fields = append(fields, zap.String("ip", event.IP))
	}
	if event.UserAgent != "" {
		fields = append(fields, zap.String("user_agent", event.UserAgent))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if len(event.Details) > 0 {
		detailsJSON, _ := json.Marshal(event.Details)
		fields = append(fields, zap.String("details", string(detailsJSON)))
	}

	l.zapLogger.Log(level, string(event.Event), fields...)
}

// SubmissionAccepted logs a 2xx answer from the contact backend
func (l *Logger) SubmissionAccepted(ctx context.Context, email string, statusCode int) {
	l.Log(ctx, Event{
		Event:        EventSubmissionAccepted,
		SubjectType:  "email",
		SubjectValue: MaskEmail(email),
		Details:      map[string]interface{}{"status_code": statusCode},
	})
}

// SubmissionRejected logs a non-2xx answer from the contact backend
func (l *Logger) SubmissionRejected(ctx context.Context, email string, statusCode int, serverMessage string) {
	details := map[string]interface{}{"status_code": statusCode}
	if msg := serverMessageForLog(serverMessage); msg != "" {
		details["server_message"] = msg
	}
	l.Log(ctx, Event{
		Event:        EventSubmissionRejected,
		SubjectType:  "email",
		SubjectValue: MaskEmail(email),
		Details:      details,
	})
}

// SubmissionTransportFailed logs a request that never reached the backend
func (l *Logger) SubmissionTransportFailed(ctx context.Context, email string, err error) {
	l.Log(ctx, Event{
		Event:        EventSubmissionTransport,
		SubjectType:  "email",
		SubjectValue: MaskEmail(email),
		Details:      map[string]interface{}{"error": err.Error()},
	})
}

// ValidationFailed logs a submit refused before any request was sent
func (l *Logger) ValidationFailed(ctx context.Context, formID string, messages []string) {
	l.Log(ctx, Event{
		Event:        EventValidationFailed,
		SubjectType:  "form",
		SubjectValue: HashValue(formID),
		Details:      map[string]interface{}{"errors": messages},
	})
}

// RateLimitTriggered logs when rate limiting is triggered
func (l *Logger) RateLimitTriggered(ctx context.Context, ip, userAgent, requestID, endpoint string) {
	l.Log(ctx, Event{
		Event:        EventRateLimitTriggered,
		SubjectType:  "ip",
		SubjectValue: ip,
		IP:           ip,
		UserAgent:    userAgent,
		RequestID:    requestID,
		Details:      map[string]interface{}{"endpoint": endpoint},
	})
}

// RateLimitError logs a failing rate limit store
func (l *Logger) RateLimitError(ctx context.Context, ip, errorType string, err error) {
	l.Log(ctx, Event{
		Event:       EventRateLimitTriggered,
		SubjectType: "system",
		IP:          ip,
		Details: map[string]interface{}{
			"error_type": errorType,
			"error":      err.Error(),
		},
	})
}

// FormCapacityReached logs a refused Open because too many forms are live
func (l *Logger) FormCapacityReached(ctx context.Context, open int) {
	l.Log(ctx, Event{
		Event:   EventFormCapacityReached,
		Details: map[string]interface{}{"open_forms": open},
	})
}

// serverMessageForLog drops tags and truncates a backend message.
// Only the audit copy changes; visitors see the message as sent.
func serverMessageForLog(message string) string {
	clean := strings.TrimSpace(logText.Sanitize(message))
	if len(clean) > maxServerMessage {
		clean = clean[:maxServerMessage] + "..."
	}
	return clean
}

// Sync flushes any buffered log entries
func (l *Logger) Sync() error {
	if l == nil {
		return nil
	}
	return l.zapLogger.Sync()
}

// MaskEmail masks an email for logging (e.g., "j***@example.com")
func MaskEmail(email string) string {
	if len(email) < 3 {
		return "***"
	}
	atIndex := strings.IndexByte(email, '@')
	if atIndex < 0 {
		return "***"
	}
	if atIndex <= 1 {
		return "***" + email[1:]
	}
	return string(email[0]) + "***" + email[atIndex:]
}

// HashValue creates a SHA256 hash of a value (for logging without PII)
func HashValue(value string) string {
	hash := sha256.Sum256([]byte(value))
	return hex.EncodeToString(hash[:8])
}

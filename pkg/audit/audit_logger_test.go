package audit

import (
	"context"
	"errors"
	"testing"

	"agentic-landing-site/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved() (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.InfoLevel)
	return NewWithZap(zap.New(core), "agentic-landing-site", "test"), logs
}

func TestAuditLogger(t *testing.T) {
	t.Run("Should mask the email and pick levels per event", func(t *testing.T) {
		l, logs := newObserved()
		ctx := context.WithValue(context.Background(), domain.KeyRequestID, "req-1")

		l.SubmissionAccepted(ctx, "ada@example.com", 201)
		l.SubmissionTransportFailed(ctx, "ada@example.com", errors.New("offline"))

		entries := logs.All()
		require.Len(t, entries, 2)

		accepted := entries[0]
		assert.Equal(t, zapcore.InfoLevel, accepted.Level)
		assert.Equal(t, string(EventSubmissionAccepted), accepted.Message)
		fields := accepted.ContextMap()
		assert.Equal(t, "a***@example.com", fields["subject_value"])
		assert.Equal(t, "req-1", fields["request_id"])
		assert.Equal(t, "test", fields["env"])

		assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	})

	t.Run("Should log server messages without markup", func(t *testing.T) {
		l, logs := newObserved()
		l.SubmissionRejected(context.Background(), "ada@example.com", 400, "<b>Email</b> already used<script>x()</script>")

		entries := logs.All()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
		assert.Contains(t, entries[0].ContextMap()["details"], `"server_message":"Email already used"`)
	})

	t.Run("Should do nothing on a nil logger", func(t *testing.T) {
		var l *Logger
		assert.NotPanics(t, func() {
			l.RateLimitTriggered(context.Background(), "127.0.0.1", "curl", "", "/contact")
			_ = l.Sync()
		})
	})
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "***", MaskEmail("a"))
	assert.Equal(t, "***@x.io", MaskEmail("a@x.io"))
	assert.Equal(t, "j***@example.com", MaskEmail("jane@example.com"))
	assert.Equal(t, "***", MaskEmail("jane.doe.example.com"))
}

func TestHashValue(t *testing.T) {
	assert.Len(t, HashValue("form-1"), 16)
	assert.Equal(t, HashValue("form-1"), HashValue("form-1"))
	assert.NotEqual(t, HashValue("form-1"), HashValue("form-2"))
}

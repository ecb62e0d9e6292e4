package usecase_test

import (
	"context"
	"encoding/json"
	"testing"

	"agentic-landing-site/internal/domain"
	"agentic-landing-site/internal/usecase"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

type recordingGateway struct {
	last domain.ContactPayload
}

func (g *recordingGateway) SendContact(_ context.Context, payload domain.ContactPayload) (*domain.GatewayResponse, error) {
	g.last = payload
	return &domain.GatewayResponse{StatusCode: 400}, nil
}

func TestContactFormProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	// Property: each field holds the last value written to it
	properties.Property("last write wins per field", prop.ForAll(
		func(fieldIdx []int, values []string) bool {
			form := usecase.NewContactForm(&recordingGateway{}, quietLogger(), nil)
			want := map[domain.FormField]string{}

			n := len(fieldIdx)
			if len(values) < n {
				n = len(values)
			}
			for i := 0; i < n; i++ {
				field := domain.FormFields[fieldIdx[i]]
				if err := form.OnFieldChange(field, values[i]); err != nil {
					return false
				}
				want[field] = values[i]
			}

			state := form.State()
			for _, field := range domain.FormFields {
				if state.Get(field) != want[field] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, len(domain.FormFields)-1)),
		gen.SliceOf(gen.AnyString()),
	))

	// Property: the payload sent is the form with name renamed to username
	properties.Property("payload renames name to username", prop.ForAll(
		func(name, email, subject, message string) bool {
			gw := &recordingGateway{}
			form := usecase.NewContactForm(gw, quietLogger(), nil)
			state := domain.FormState{Name: name, Email: email, Subject: subject, Message: message}
			for _, f := range domain.FormFields {
				_ = form.OnFieldChange(f, state.Get(f))
			}
			if _, err := form.OnSubmit(context.Background()); err != nil {
				return false
			}

			raw, err := json.Marshal(gw.last)
			if err != nil {
				return false
			}
			var decoded map[string]string
			if err := json.Unmarshal(raw, &decoded); err != nil {
				return false
			}
			_, hasName := decoded["name"]
			return !hasName &&
				decoded["username"] == name &&
				decoded["email"] == email &&
				decoded["subject"] == subject &&
				decoded["message"] == message &&
				form.State() == state // rejected, so nothing was cleared
		},
		gen.AlphaString(),
		gen.AlphaString(),
		gen.AnyString(),
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

func TestContactPayloadWireFormat(t *testing.T) {
	raw, err := json.Marshal(domain.PayloadFromState(ada))
	if err != nil {
		t.Fatal(err)
	}
	want := `{"username":"Ada","email":"ada@example.com","subject":"Hi","message":"Test"}`
	if string(raw) != want {
		t.Errorf("payload = %s, want %s", raw, want)
	}
}

package contactapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"agentic-landing-site/internal/domain"
)

// maxResponseBytes caps how much of the backend answer is read
const maxResponseBytes = 1 << 20

// responseBody is the part of the backend answer we rely on.
// The backend is not ours, so everything else is ignored.
type responseBody struct {
	Message *string `json:"message"`
}

type gateway struct {
	endpoint string
	client   *http.Client
}

// NewGateway posts contact payloads to baseURL + /api/v5/contact.
// A nil client uses http.DefaultClient, which applies no timeout of its own.
func NewGateway(baseURL string, client *http.Client) domain.ContactGateway {
	if client == nil {
		client = http.DefaultClient
	}
	return &gateway{
		endpoint: strings.TrimRight(baseURL, "/") + domain.ContactAPIPath,
		client:   client,
	}
}

// SendContact returns the backend status and optional message.
// An error is returned only when no HTTP response was received.
func (g *gateway) SendContact(ctx context.Context, payload domain.ContactPayload) (*domain.GatewayResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode contact payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build contact request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post contact request: %w", err)
	}
	defer resp.Body.Close()

	out := &domain.GatewayResponse{StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		// Status is known, so this is still an answer from the backend
		return out, nil
	}
	var parsed responseBody
	if err := json.Unmarshal(raw, &parsed); err == nil && parsed.Message != nil {
		out.Message = *parsed.Message
	}
	return out, nil
}

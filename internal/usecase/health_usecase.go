package usecase

import (
	"context"

	"agentic-landing-site/internal/domain"
)

// Pinger reports whether an optional dependency answers
type Pinger func(ctx context.Context) error

type healthUsecase struct {
	contactAPIConfigured bool
	rateLimitStore       Pinger
}

// NewHealthUsecase reports readiness. A nil store means rate limiting runs in memory.
func NewHealthUsecase(contactAPIBaseURL string, rateLimitStore Pinger) domain.HealthUsecase {
	return &healthUsecase{
		contactAPIConfigured: contactAPIBaseURL != "",
		rateLimitStore:       rateLimitStore,
	}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	out := map[string]string{
		"status":      "ok",
		"contact_api": "configured",
		"rate_limit":  "memory",
	}
	if !u.contactAPIConfigured {
		out["status"] = "degraded"
		out["contact_api"] = "missing"
	}
	if u.rateLimitStore != nil {
		if err := u.rateLimitStore(ctx); err != nil {
			// Limiter falls back to memory, so the site still works
			out["rate_limit"] = "redis_unavailable"
		} else {
			out["rate_limit"] = "redis"
		}
	}
	return out
}

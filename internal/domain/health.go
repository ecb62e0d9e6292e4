package domain

import "context"

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

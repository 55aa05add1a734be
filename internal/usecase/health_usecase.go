package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	StatusOK       = "ok"
	StatusDown     = "down"
	StatusDisabled = "disabled"
)

// PingFunc reports whether a dependency is reachable.
type PingFunc func(ctx context.Context) error

type HealthUsecase interface {
	// Check returns the status of every dependency and whether all
	// configured ones are up.
	Check(ctx context.Context) (map[string]string, bool)
}

type healthUsecase struct {
	checks map[string]PingFunc
	log    *zap.Logger
}

// NewHealthUsecase takes one check per dependency; a nil check is reported as disabled.
func NewHealthUsecase(checks map[string]PingFunc, log *zap.Logger) HealthUsecase {
	return &healthUsecase{checks: checks, log: log}
}

func (u *healthUsecase) Check(ctx context.Context) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := make(map[string]string, len(u.checks))
	healthy := true
	for name, ping := range u.checks {
		if ping == nil {
			status[name] = StatusDisabled
			continue
		}
		if err := ping(ctx); err != nil {
			u.log.Warn("health check failed", zap.String("dependency", name), zap.Error(err))
			status[name] = StatusDown
			healthy = false
			continue
		}
		status[name] = StatusOK
	}
	return status, healthy
}

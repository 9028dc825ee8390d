// Package server holds HTTP server building blocks shared across binaries.
package server

import "context"

// HealthChecker reports whether the service can currently take traffic.
// Implementations back the health endpoint and may probe their dependencies.
type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

// OkHealthChecker always reports healthy. The search API serves read-only
// traffic against remote backends, so liveness is process liveness; swap in a
// backend-probing checker if that ever changes.
type OkHealthChecker struct{}

func NewOkHealthChecker() *OkHealthChecker {
	return &OkHealthChecker{}
}

func (hc *OkHealthChecker) Healthy(_ context.Context) bool {
	return true
}

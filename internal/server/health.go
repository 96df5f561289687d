package server

import "context"

// HealthService defines behaviour for readiness probes.
type HealthService interface {
	Probe(ctx context.Context) error
}

// Pinger is implemented by accessors that can verify store connectivity.
type Pinger interface {
	VerifyConnectivity(ctx context.Context) error
}

// GraphHealthService verifies graph connectivity as part of health checks.
type GraphHealthService struct {
	Graph Pinger
}

// Probe implements the HealthService interface.
func (s GraphHealthService) Probe(ctx context.Context) error {
	if s.Graph == nil {
		return nil
	}
	return s.Graph.VerifyConnectivity(ctx)
}

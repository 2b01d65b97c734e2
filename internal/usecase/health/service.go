package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Unhealthy indicates a failing component.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	registry RegistryPinger
}

// New creates a Service.
func New(registry RegistryPinger) *Service {
	return &Service{registry: registry}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if err := s.registry.Ping(ctx); err != nil {
		checks["registry"] = CheckError
	} else {
		checks["registry"] = CheckOK
	}

	status := Healthy
	for _, c := range checks {
		if c == CheckError {
			status = Unhealthy
		}
	}
	return Report{Status: status, Checks: checks}
}

package matchdex

import (
	"context"
)

// HealthStatus represents the aggregated system health.
// Status is "ok", "degraded" (embedding provider down, matching of stored
// profiles keeps working) or "error" (profile store unavailable).
type HealthStatus struct {
	Status string
	Checks map[string]string // component name to "ok"/"error"
}

// Health checks the health of all system components.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}
}

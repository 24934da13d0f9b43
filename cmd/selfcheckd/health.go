package main

import (
	"context"

	"github.com/coredb-io/clustercheck/health"
	"github.com/coredb-io/clustercheck/orchestrator"
)

// transportClientsChecker reports the process's own readiness, distinct
// from /status's cluster self-check: it is healthy only once a
// deployment has wired real transport clients into clients, degraded
// when some are missing, unhealthy when none are.
type transportClientsChecker struct {
	clients orchestrator.Clients
}

func (c *transportClientsChecker) Name() string { return "transport_clients" }

func (c *transportClientsChecker) Check(ctx context.Context) health.Result {
	configured, total := 0, 6
	missing := make(map[string]any)
	for name, present := range map[string]bool{
		"scheme_cache": c.clients.SchemeCache != nil,
		"tenant":       c.clients.Tenant != nil,
		"scheme_shard": c.clients.SchemeShard != nil,
		"controller":   c.clients.Controller != nil,
		"hive":         c.clients.Hive != nil,
		"whiteboard":   c.clients.Whiteboard != nil,
	} {
		if present {
			configured++
		} else {
			missing[name] = "not configured"
		}
	}

	switch {
	case configured == total:
		return health.Healthy("all transport clients configured")
	case configured == 0:
		return health.Unhealthy("no transport clients configured", nil).WithDetails(missing)
	default:
		return health.Degraded("some transport clients not configured").WithDetails(missing)
	}
}

// newHealthAggregator registers the process-liveness checkers backing
// /healthz, /readyz, and /health — separate from the cluster self-check
// the orchestrator runs against clients.
func newHealthAggregator(clients orchestrator.Clients) *health.Aggregator {
	agg := health.NewAggregator()
	agg.Register("transport_clients", &transportClientsChecker{clients: clients})
	return agg
}

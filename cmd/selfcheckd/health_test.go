package main

import (
	"context"
	"testing"

	"github.com/coredb-io/clustercheck/health"
	"github.com/coredb-io/clustercheck/orchestrator"
	"github.com/coredb-io/clustercheck/transport"
)

type stubSchemeCache struct{}

func (stubSchemeCache) Navigate(ctx context.Context, path string) (transport.NavigateResult, error) {
	return transport.NavigateResult{}, nil
}
func (stubSchemeCache) NavigateByID(ctx context.Context, pathID uint64) (transport.NavigateResult, error) {
	return transport.NavigateResult{}, nil
}

func TestTransportClientsCheckerUnhealthyWhenNoneConfigured(t *testing.T) {
	checker := &transportClientsChecker{}
	result := checker.Check(context.Background())

	if result.Status != health.StatusUnhealthy {
		t.Fatalf("Status = %v, want Unhealthy", result.Status)
	}
}

func TestTransportClientsCheckerDegradedWhenSomeConfigured(t *testing.T) {
	checker := &transportClientsChecker{clients: orchestrator.Clients{SchemeCache: stubSchemeCache{}}}
	result := checker.Check(context.Background())

	if result.Status != health.StatusDegraded {
		t.Fatalf("Status = %v, want Degraded", result.Status)
	}
}

func TestNewHealthAggregatorRegistersTransportClientsChecker(t *testing.T) {
	agg := newHealthAggregator(orchestrator.Clients{})
	names := agg.CheckerNames()

	if len(names) != 1 || names[0] != "transport_clients" {
		t.Fatalf("CheckerNames() = %v, want [transport_clients]", names)
	}
}

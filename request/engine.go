package request

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/coredb-io/clustercheck/aggregate"
	"github.com/coredb-io/clustercheck/builder"
	"github.com/coredb-io/clustercheck/evaluate"
	"github.com/coredb-io/clustercheck/merge"
	"github.com/coredb-io/clustercheck/model"
	"github.com/coredb-io/clustercheck/observe"
	"github.com/coredb-io/clustercheck/orchestrator"
)

// maxDiscoveryRounds bounds the storage-discovery fixed point so a
// pathological response graph (a bug upstream, not a valid cluster
// shape) can't loop the request past its own deadline; real clusters
// settle in a handful of rounds (one per hierarchy level).
const maxDiscoveryRounds = 16

// Result is the outcome of one Check, unfiltered: package respond
// applies operation_timeout-adjacent request filters and maps Status to
// the wire verdict from this.
type Result struct {
	RequestID        string
	Status           model.Status
	DatabaseStatuses []model.DatabaseStatus
	Issues           []*model.IssueRecord
}

// Engine runs the whole component pipeline — orchestrator fan-out,
// model building, aggregation, evaluation, merging — behind one
// request-scoped deadline. One Engine is shared by every concurrent
// self-check request the process serves; Check owns no state beyond
// what it returns.
type Engine struct {
	Orchestrator *orchestrator.Orchestrator
	Static       *model.StaticConfig
	Logger       observe.Logger
}

// New returns an Engine wired to o. static is the process-wide blob
// storage config snapshot (see package config); it may be nil.
func New(o *orchestrator.Orchestrator, static *model.StaticConfig, logger observe.Logger) *Engine {
	return &Engine{Orchestrator: o, Static: static, Logger: logger}
}

// Check runs one self-check request to completion or to its deadline,
// whichever comes first, and returns the unfiltered result.
func (e *Engine) Check(ctx context.Context, f Filters) Result {
	requestID := uuid.NewString()
	ctx, cancel := context.WithTimeout(ctx, f.Deadline())
	defer cancel()

	if e.Logger != nil {
		e.Logger.Info(ctx, "self-check request started",
			observe.Field{Key: "request_id", Value: requestID},
			observe.Field{Key: "database", Value: f.Database},
			observe.Field{Key: "deadline", Value: f.Deadline().String()})
	}

	checkAll := f.Database == ""
	b := builder.New(e.Static)
	e.discoverStorage(ctx, b, f)
	e.discoverHivesAndCompute(ctx, b, checkAll)

	now := time.Now()
	agg := aggregate.Build(b.Model)
	status, databaseStatuses, issues := evaluate.Evaluate(agg, b.Model, now)
	merged := merge.Merge(issues)

	if e.Logger != nil {
		e.Logger.Info(ctx, "self-check request finished",
			observe.Field{Key: "request_id", Value: requestID},
			observe.Field{Key: "status", Value: status.String()},
			observe.Field{Key: "issue_count", Value: len(merged)})
	}

	return Result{RequestID: requestID, Status: status, DatabaseStatuses: databaseStatuses, Issues: merged}
}

// discoverStorage drives the storage-discovery fixed point: Navigate (or
// ListTenants) seeds the round, and every response's follow-up RPCs —
// plus the engine-level Describe and, for the check-all case,
// TenantStatus calls builder.Ingest can't originate on its own, since it
// has no dedup state for them — accumulate into the next round until one
// round asks for nothing further.
func (e *Engine) discoverStorage(ctx context.Context, b *builder.Builder, f Filters) {
	checkAll := f.Database == ""
	requestedDescribe := make(map[string]bool)

	req := orchestrator.FanOutRequest{BaseConfig: true}
	if checkAll {
		req.ListTenants = true
	} else {
		req.NavigatePaths = []string{f.Database}
	}

	for round := 0; round < maxDiscoveryRounds; round++ {
		if fanOutEmpty(req) {
			return
		}
		req = e.discoveryRound(ctx, b, req, checkAll, requestedDescribe)
	}

	if e.Logger != nil {
		e.Logger.Warn(ctx, "storage discovery did not reach a fixed point", observe.Field{Key: "rounds", Value: maxDiscoveryRounds})
	}
}

func (e *Engine) discoveryRound(ctx context.Context, b *builder.Builder, req orchestrator.FanOutRequest, checkAll bool, requestedDescribe map[string]bool) orchestrator.FanOutRequest {
	roundStart := time.Now()
	var follow orchestrator.FanOutRequest

	for resp := range e.Orchestrator.Run(ctx, req) {
		mergeFanOut(&follow, b.Ingest(resp))

		switch resp.Kind {
		case orchestrator.KindNavigate:
			if resp.Err != nil {
				continue
			}
			path := resp.Path
			if path == "" {
				path = resp.Navigate.Path
			}
			if path == "" || requestedDescribe[path] {
				continue
			}
			requestedDescribe[path] = true
			follow.DescribePaths = append(follow.DescribePaths, path)
		case orchestrator.KindListTenants:
			if checkAll && resp.Err == nil {
				follow.TenantStatusPaths = append(follow.TenantStatusPaths, resp.Tenants...)
			}
		case orchestrator.KindDescribe:
			recordSystemTabletPing(b.Model, "schemeshard/"+resp.Path, schemeShardTabletID(b.Model, resp.Path), roundStart, resp.Err != nil)
		}
	}
	return follow
}

// discoverHivesAndCompute is the second discovery phase: once storage
// discovery has every database's HiveID, it issues one round of
// hive-info/hive-node-stats/hive-start-time calls, then a follow-up
// round for each compute node hive-node-stats revealed, triggering that
// node's system-state whiteboard call via Builder.RequestComputeNodeOnce.
// When checkAll is set (no database filter), every static node base
// config discovery has revealed so far also joins this round's compute
// set, per SPEC_FULL.md §4.2's "every static node is added to the
// default domain's compute set and scheduled for compute-node RPCs".
func (e *Engine) discoverHivesAndCompute(ctx context.Context, b *builder.Builder, checkAll bool) {
	hiveReq := orchestrator.FanOutRequest{}
	for _, id := range collectHiveIDs(b.Model) {
		hiveReq.HiveInfos = append(hiveReq.HiveInfos, orchestrator.HiveInfoRequest{HiveID: id, WithFollowers: true})
		hiveReq.HiveNodeStatsHives = append(hiveReq.HiveNodeStatsHives, id)
		hiveReq.HiveStartTimeHives = append(hiveReq.HiveStartTimeHives, id)
	}
	if checkAll {
		for _, nodeID := range staticNodeIDs(b.Model) {
			mergeFanOut(&hiveReq, b.RequestComputeNodeOnce(nodeID))
		}
	}
	if fanOutEmpty(hiveReq) {
		return
	}

	roundStart := time.Now()
	var computeFollow orchestrator.FanOutRequest
	for resp := range e.Orchestrator.Run(ctx, hiveReq) {
		b.Ingest(resp)

		switch resp.Kind {
		case orchestrator.KindHiveStartTime:
			recordSystemTabletPing(b.Model, fmt.Sprintf("hive/%d", resp.HiveID), resp.HiveID, roundStart, resp.Err != nil)
		case orchestrator.KindHiveNodeStats:
			if resp.Err != nil {
				continue
			}
			for _, stat := range resp.HiveNodeStats {
				mergeFanOut(&computeFollow, b.RequestComputeNodeOnce(stat.NodeID))
			}
		}
	}

	if fanOutEmpty(computeFollow) {
		return
	}
	for resp := range e.Orchestrator.Run(ctx, computeFollow) {
		b.Ingest(resp)
	}
}

// collectHiveIDs returns the deduplicated, non-zero hive ids every
// database discovered so far declares.
func collectHiveIDs(m *model.ClusterModel) []uint64 {
	seen := make(map[uint64]bool)
	var ids []uint64
	for _, db := range m.Databases {
		if db.HiveID == 0 || seen[db.HiveID] {
			continue
		}
		seen[db.HiveID] = true
		ids = append(ids, db.HiveID)
	}
	return ids
}

// staticNodeIDs returns the deduplicated, sorted ids of every node
// ControllerBaseConfig has revealed a pdisk on, in ascending order so
// the RPC order stays deterministic across otherwise-identical rounds.
func staticNodeIDs(m *model.ClusterModel) []uint32 {
	var ids []uint32
	for id, n := range m.Nodes {
		if n.IsStatic {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// schemeShardTabletID returns the scheme-shard system tablet id for a
// previously navigated path, or zero if no navigate response for it has
// been ingested yet (the ping is still recorded, just unattributed to a
// specific tablet id).
func schemeShardTabletID(m *model.ClusterModel, path string) uint64 {
	if db, ok := m.Databases[path]; ok {
		return db.SchemeShardID
	}
	return 0
}

// recordSystemTabletPing upserts one system-tablet RPC's observed
// latency and disposition into the model, the data evaluate.
// evaluateSystemTablets consumes. Latency is measured from the start of
// the discovery round the RPC was issued in, since individual outbound
// calls don't carry their own timing back through orchestrator.Response
// — an approximation, not the RPC's exact wire latency, but sufficient
// to trip the §4.3 response-time thresholds when a service is genuinely
// slow rather than merely sharing a round with slower siblings.
func recordSystemTabletPing(m *model.ClusterModel, key string, tabletID uint64, start time.Time, failed bool) {
	m.TabletRequests[key] = &model.TabletRequest{
		RequestID:       key,
		TabletID:        tabletID,
		Key:             key,
		StartTime:       start,
		MaxResponseTime: time.Since(start),
		Unresponsive:    failed,
	}
}

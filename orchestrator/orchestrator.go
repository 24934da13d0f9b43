package orchestrator

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/coredb-io/clustercheck/model"
	"github.com/coredb-io/clustercheck/observe"
	"github.com/coredb-io/clustercheck/resilience"
	"github.com/coredb-io/clustercheck/transport"
)

// Orchestrator issues the outbound RPC batches a self-check request needs
// and streams completed Responses back over a channel. One Orchestrator
// is shared by every concurrent self-check request the process serves;
// Run is called once per request (or once per discovery round within a
// request) and owns no per-request state beyond what it returns.
type Orchestrator struct {
	clients    Clients
	middleware *observe.Middleware
	logger     observe.Logger

	// whiteboardExecutor retries direct-transport per-node whiteboard
	// dials; it carries no breaker or bulkhead of its own since those
	// calls are already deduplicated per (kind, node) by nodeFlight.
	whiteboardExecutor *resilience.Executor

	// executors pairs a circuit breaker with a bulkhead per external
	// cluster service (scheme_cache, tenant, scheme_shard, controller,
	// hive), composed through resilience.Executor so one misbehaving
	// service can neither cascade-fail its callers nor starve the
	// fan-out's goroutine budget.
	executors map[string]*resilience.Executor

	// nodeFlight collapses concurrent request_storage_node/
	// request_compute_node calls for the same (kind, node id) pair into
	// one in-flight whiteboard dial, the per-node generalization of the
	// "one connection per tablet id" pipe rule.
	nodeFlight singleflight.Group
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger used for request-level and logic-assertion
// logging (per-RPC logging goes through the middleware instead).
func WithLogger(l observe.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// New returns an Orchestrator wired to clients. mw instruments every
// outbound RPC with tracing, metrics, and per-RPC logging; build one via
// observe.MiddlewareFromObserver for a real deployment, or
// observe.NewMiddleware with hand-rolled fakes in tests.
func New(clients Clients, mw *observe.Middleware, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		clients:    clients,
		middleware: mw,
		whiteboardExecutor: resilience.NewExecutor(
			resilience.WithRetry(resilience.NewRetry(resilience.WhiteboardRetryConfig())),
		),
		executors: make(map[string]*resilience.Executor),
	}
	for _, svc := range []string{"scheme_cache", "tenant", "scheme_shard", "controller", "hive"} {
		o.executors[svc] = resilience.NewExecutor(
			resilience.WithBulkhead(resilience.NewBulkhead(resilience.PerServiceBulkheadConfig())),
			resilience.WithCircuitBreaker(resilience.NewCircuitBreaker(resilience.PerServiceBreakerConfig())),
		)
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// exec instruments fn through the middleware and, when non-nil, through
// executor's composed resilience chain (bulkhead, then circuit breaker,
// then retry, per resilience.Executor.Execute's documented order).
func exec[T any](ctx context.Context, o *Orchestrator, meta observe.RPCMeta, executor *resilience.Executor, fn func(context.Context) (T, error)) (T, error) {
	op := func(ctx context.Context) (any, error) {
		return fn(ctx)
	}
	if executor != nil {
		inner := op
		op = func(ctx context.Context) (any, error) {
			var result any
			err := executor.Execute(ctx, func(ctx context.Context) error {
				var err error
				result, err = inner(ctx)
				return err
			})
			return result, err
		}
	}

	wrapped := o.middleware.Wrap(func(ctx context.Context, _ observe.RPCMeta, _ any) (any, error) {
		return op(ctx)
	})

	v, err := wrapped(ctx, meta, nil)
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// Run issues every RPC named by req concurrently, bounded by req.Deadline,
// and returns a channel of Responses. The channel is closed once every
// issued RPC has completed. The engine never aborts the batch because one
// service is unavailable: every goroutine below always returns nil to the
// errgroup, so a single failing RPC never cancels its siblings — only
// req's own deadline does that, and it does so per RPC (the failing RPC's
// own context expires) rather than by tearing down the whole group.
func (o *Orchestrator) Run(ctx context.Context, req FanOutRequest) <-chan Response {
	if req.Deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Deadline)
		go func() {
			<-ctx.Done()
			cancel()
		}()
	}

	n := req.count()
	out := make(chan Response, n)
	var outstanding int64 = int64(n)

	g, gctx := errgroup.WithContext(ctx)

	send := func(r Response) {
		out <- r
		if atomic.AddInt64(&outstanding, -1) < 0 && o.logger != nil {
			o.logger.Error(ctx, ErrNegativeOutstanding.Error())
		}
	}

	for _, path := range req.NavigatePaths {
		path := path
		g.Go(func() error {
			r := Response{Kind: KindNavigate, Path: path}
			if o.clients.SchemeCache == nil {
				r.Err = ErrClientNotConfigured
			} else {
				r.Navigate, r.Err = exec(gctx, o, observe.RPCMeta{Namespace: "scheme_cache", Name: "Navigate"}, o.executors["scheme_cache"],
					func(ctx context.Context) (transport.NavigateResult, error) {
						return o.clients.SchemeCache.Navigate(ctx, path)
					})
			}
			send(r)
			return nil
		})
	}
	for _, pathID := range req.NavigatePathIDs {
		pathID := pathID
		g.Go(func() error {
			r := Response{Kind: KindNavigate}
			if o.clients.SchemeCache == nil {
				r.Err = ErrClientNotConfigured
			} else {
				r.Navigate, r.Err = exec(gctx, o, observe.RPCMeta{Namespace: "scheme_cache", Name: "NavigateByID"}, o.executors["scheme_cache"],
					func(ctx context.Context) (transport.NavigateResult, error) {
						return o.clients.SchemeCache.NavigateByID(ctx, pathID)
					})
			}
			send(r)
			return nil
		})
	}
	if req.ListTenants {
		g.Go(func() error {
			r := Response{Kind: KindListTenants}
			if o.clients.Tenant == nil {
				r.Err = ErrClientNotConfigured
			} else {
				r.Tenants, r.Err = exec(gctx, o, observe.RPCMeta{Namespace: "tenant", Name: "ListTenants"}, o.executors["tenant"],
					o.clients.Tenant.ListTenants)
			}
			send(r)
			return nil
		})
	}
	for _, path := range req.TenantStatusPaths {
		path := path
		g.Go(func() error {
			r := Response{Kind: KindTenantStatus, Path: path}
			if o.clients.Tenant == nil {
				r.Err = ErrClientNotConfigured
			} else {
				r.TenantStatus, r.Err = exec(gctx, o, observe.RPCMeta{Namespace: "tenant", Name: "TenantStatus"}, o.executors["tenant"],
					func(ctx context.Context) (transport.TenantStatus, error) {
						return o.clients.Tenant.TenantStatus(ctx, path)
					})
			}
			send(r)
			return nil
		})
	}
	for _, path := range req.DescribePaths {
		path := path
		g.Go(func() error {
			r := Response{Kind: KindDescribe, Path: path}
			if o.clients.SchemeShard == nil {
				r.Err = ErrClientNotConfigured
			} else {
				r.Describe, r.Err = exec(gctx, o, observe.RPCMeta{Namespace: "scheme_shard", Name: "Describe"}, o.executors["scheme_shard"],
					func(ctx context.Context) (transport.DescribeResult, error) {
						return o.clients.SchemeShard.Describe(ctx, path)
					})
			}
			send(r)
			return nil
		})
	}
	for _, pool := range req.SelectGroupsPools {
		pool := pool
		g.Go(func() error {
			r := Response{Kind: KindSelectGroups, Pool: pool}
			if o.clients.Controller == nil {
				r.Err = ErrClientNotConfigured
			} else {
				r.GroupIDs, r.Err = exec(gctx, o, observe.RPCMeta{Namespace: "controller", Name: "SelectGroups"}, o.executors["controller"],
					func(ctx context.Context) ([]uint32, error) {
						return o.clients.Controller.SelectGroups(ctx, pool)
					})
			}
			send(r)
			return nil
		})
	}
	if req.BaseConfig {
		g.Go(func() error {
			r := Response{Kind: KindBaseConfig}
			if o.clients.Controller == nil {
				r.Err = ErrClientNotConfigured
			} else {
				r.BaseConfig, r.Err = exec(gctx, o, observe.RPCMeta{Namespace: "controller", Name: "BaseConfig"}, o.executors["controller"],
					o.clients.Controller.BaseConfig)
			}
			send(r)
			return nil
		})
	}
	for _, hi := range req.HiveInfos {
		hi := hi
		g.Go(func() error {
			r := Response{Kind: KindHiveInfo, HiveID: hi.HiveID}
			if o.clients.Hive == nil {
				r.Err = ErrClientNotConfigured
			} else {
				r.HiveTablets, r.Err = exec(gctx, o, observe.RPCMeta{Namespace: "hive", Name: "HiveInfo"}, o.executors["hive"],
					func(ctx context.Context) ([]transport.HiveTabletInfo, error) {
						return o.clients.Hive.HiveInfo(ctx, hi.HiveID, hi.WithFollowers)
					})
			}
			send(r)
			return nil
		})
	}
	for _, hiveID := range req.HiveNodeStatsHives {
		hiveID := hiveID
		g.Go(func() error {
			r := Response{Kind: KindHiveNodeStats, HiveID: hiveID}
			if o.clients.Hive == nil {
				r.Err = ErrClientNotConfigured
			} else {
				r.HiveNodeStats, r.Err = exec(gctx, o, observe.RPCMeta{Namespace: "hive", Name: "HiveNodeStats"}, o.executors["hive"],
					func(ctx context.Context) ([]transport.HiveNodeStat, error) {
						return o.clients.Hive.HiveNodeStats(ctx, hiveID)
					})
			}
			send(r)
			return nil
		})
	}
	for _, hiveID := range req.HiveStartTimeHives {
		hiveID := hiveID
		g.Go(func() error {
			r := Response{Kind: KindHiveStartTime, HiveID: hiveID}
			if o.clients.Hive == nil {
				r.Err = ErrClientNotConfigured
			} else {
				r.HiveStartTime, r.Err = exec(gctx, o, observe.RPCMeta{Namespace: "hive", Name: "StartTime"}, o.executors["hive"],
					func(ctx context.Context) (int64, error) {
						return o.clients.Hive.StartTime(ctx, hiveID)
					})
			}
			send(r)
			return nil
		})
	}
	for _, nodeID := range req.ComputeNodes {
		nodeID := nodeID
		g.Go(func() error {
			send(o.requestComputeNode(gctx, nodeID))
			return nil
		})
	}
	for _, nodeID := range req.StorageNodes {
		nodeID := nodeID
		g.Go(func() error {
			for _, r := range o.requestStorageNode(gctx, nodeID) {
				send(r)
			}
			return nil
		})
	}

	go func() {
		_ = g.Wait()
		close(out)
	}()

	return out
}

// requestComputeNode issues the system-state whiteboard call for a
// compute node.
func (o *Orchestrator) requestComputeNode(ctx context.Context, nodeID uint32) Response {
	if o.clients.Whiteboard == nil {
		return Response{Kind: KindSystemState, NodeID: nodeID, Err: ErrClientNotConfigured}
	}
	state, err := singleflightWhiteboard(ctx, o, "compute-system", nodeID, "SystemState",
		func(ctx context.Context) (*model.SystemStateInfo, error) {
			return o.clients.Whiteboard.SystemState(ctx, nodeID)
		})
	return Response{Kind: KindSystemState, NodeID: nodeID, SystemState: state, Err: err}
}

// requestStorageNode issues the full storage-node whiteboard subset
// (system state, vdisk state, pdisk state, bsgroup state) for a node.
// Each call is deduplicated independently so a concurrent duplicate
// request for just the system state doesn't wait on the others.
func (o *Orchestrator) requestStorageNode(ctx context.Context, nodeID uint32) []Response {
	if o.clients.Whiteboard == nil {
		return []Response{
			{Kind: KindSystemState, NodeID: nodeID, IsStorageNode: true, Err: ErrClientNotConfigured},
			{Kind: KindVDiskState, NodeID: nodeID, IsStorageNode: true, Err: ErrClientNotConfigured},
			{Kind: KindPDiskState, NodeID: nodeID, IsStorageNode: true, Err: ErrClientNotConfigured},
			{Kind: KindBSGroupState, NodeID: nodeID, IsStorageNode: true, Err: ErrClientNotConfigured},
		}
	}
	system, systemErr := singleflightWhiteboard(ctx, o, "storage-system", nodeID, "SystemState",
		func(ctx context.Context) (*model.SystemStateInfo, error) {
			return o.clients.Whiteboard.SystemState(ctx, nodeID)
		})
	vdisks, vdiskErr := singleflightWhiteboard(ctx, o, "storage-vdisk", nodeID, "VDiskState",
		func(ctx context.Context) ([]model.VDisk, error) {
			return o.clients.Whiteboard.VDiskState(ctx, nodeID)
		})
	pdisks, pdiskErr := singleflightWhiteboard(ctx, o, "storage-pdisk", nodeID, "PDiskState",
		func(ctx context.Context) ([]model.PDisk, error) {
			return o.clients.Whiteboard.PDiskState(ctx, nodeID)
		})
	groups, groupErr := singleflightWhiteboard(ctx, o, "storage-bsgroup", nodeID, "BSGroupState",
		func(ctx context.Context) ([]model.Group, error) {
			return o.clients.Whiteboard.BSGroupState(ctx, nodeID)
		})

	return []Response{
		{Kind: KindSystemState, NodeID: nodeID, IsStorageNode: true, SystemState: system, Err: systemErr},
		{Kind: KindVDiskState, NodeID: nodeID, IsStorageNode: true, VDisks: vdisks, Err: vdiskErr},
		{Kind: KindPDiskState, NodeID: nodeID, IsStorageNode: true, PDisks: pdisks, Err: pdiskErr},
		{Kind: KindBSGroupState, NodeID: nodeID, IsStorageNode: true, Groups: groups, Err: groupErr},
	}
}

// singleflightWhiteboard collapses concurrent identical whiteboard calls
// for the same (kind, node) pair into one in-flight retry-wrapped dial.
func singleflightWhiteboard[T any](ctx context.Context, o *Orchestrator, kind string, nodeID uint32, rpcName string, fn func(context.Context) (T, error)) (T, error) {
	key := fmt.Sprintf("%s:%d", kind, nodeID)
	v, err, _ := o.nodeFlight.Do(key, func() (any, error) {
		return exec(ctx, o, observe.RPCMeta{Namespace: "whiteboard", Name: rpcName}, o.whiteboardExecutor, fn)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

package request

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/coredb-io/clustercheck/model"
	"github.com/coredb-io/clustercheck/observe"
	"github.com/coredb-io/clustercheck/orchestrator"
	"github.com/coredb-io/clustercheck/transport"
)

type fakeTracer struct{}

func (fakeTracer) StartSpan(ctx context.Context, meta observe.RPCMeta) (context.Context, trace.Span) {
	return tracenoop.NewTracerProvider().Tracer("test").Start(ctx, meta.SpanName())
}
func (fakeTracer) EndSpan(span trace.Span, err error) { span.End() }

type fakeMetrics struct{}

func (fakeMetrics) RecordExecution(ctx context.Context, meta observe.RPCMeta, d time.Duration, err error) {
}

type fakeLogger struct{}

func (fakeLogger) Info(ctx context.Context, msg string, fields ...observe.Field)  {}
func (fakeLogger) Warn(ctx context.Context, msg string, fields ...observe.Field)  {}
func (fakeLogger) Error(ctx context.Context, msg string, fields ...observe.Field) {}
func (fakeLogger) Debug(ctx context.Context, msg string, fields ...observe.Field) {}
func (fakeLogger) WithRPC(meta observe.RPCMeta) observe.Logger                    { return fakeLogger{} }

func testMiddleware() *observe.Middleware {
	return observe.NewMiddleware(fakeTracer{}, fakeMetrics{}, fakeLogger{})
}

type fakeSchemeCache struct{}

func (fakeSchemeCache) Navigate(ctx context.Context, path string) (transport.NavigateResult, error) {
	return transport.NavigateResult{Path: path, DomainKey: 1, ResourcesDomainKey: 1, HiveID: 100, SchemeShardID: 200}, nil
}
func (fakeSchemeCache) NavigateByID(ctx context.Context, pathID uint64) (transport.NavigateResult, error) {
	return transport.NavigateResult{}, nil
}

type fakeTenant struct{}

func (fakeTenant) ListTenants(ctx context.Context) ([]string, error) {
	return []string{"/Root/db1"}, nil
}
func (fakeTenant) TenantStatus(ctx context.Context, path string) (transport.TenantStatus, error) {
	return transport.TenantStatus{Path: path}, nil
}

type fakeSchemeShard struct{}

func (fakeSchemeShard) Describe(ctx context.Context, path string) (transport.DescribeResult, error) {
	return transport.DescribeResult{
		StoragePools:      []model.StoragePool{{Name: "static", Kind: "static"}},
		StorageUsageBytes: 10,
		StorageQuotaBytes: 100,
	}, nil
}

type fakeController struct{}

func (fakeController) SelectGroups(ctx context.Context, pool string) ([]uint32, error) {
	return []uint32{1}, nil
}
func (fakeController) BaseConfig(ctx context.Context) (transport.BaseConfigResult, error) {
	pdiskID := model.PDiskLocationID(1, 1)
	return transport.BaseConfigResult{
		PDisks: []model.PDisk{{ID: pdiskID, NodeID: 1, PDiskID: 1, State: model.PDiskStateNormal, TotalSize: 100, AvailableSize: 90}},
		VDisks: []model.VDisk{{ID: "1-1-0-0-0", PDiskID: pdiskID, NodeID: 1, State: model.VDiskStateOK, Replicated: true}},
		Groups: []model.Group{{ID: 1, Generation: 1, Erasure: model.ErasureNone, VDiskIDs: []string{"1-1-0-0-0"}}},
	}, nil
}

type fakeHive struct{}

func (fakeHive) HiveInfo(ctx context.Context, hiveID uint64, withFollowers bool) ([]transport.HiveTabletInfo, error) {
	return nil, nil
}
func (fakeHive) HiveNodeStats(ctx context.Context, hiveID uint64) ([]transport.HiveNodeStat, error) {
	return []transport.HiveNodeStat{{NodeID: 1, NodeDomain: "200"}}, nil
}
func (fakeHive) StartTime(ctx context.Context, hiveID uint64) (int64, error) {
	return time.Now().Add(-time.Hour).UnixMilli(), nil
}

type fakeWhiteboard struct{}

func (fakeWhiteboard) SystemState(ctx context.Context, nodeID uint32) (*model.SystemStateInfo, error) {
	return &model.SystemStateInfo{NodeID: nodeID, NumCPUs: 4}, nil
}
func (fakeWhiteboard) VDiskState(ctx context.Context, nodeID uint32) ([]model.VDisk, error) { return nil, nil }
func (fakeWhiteboard) PDiskState(ctx context.Context, nodeID uint32) ([]model.PDisk, error) { return nil, nil }
func (fakeWhiteboard) BSGroupState(ctx context.Context, nodeID uint32) ([]model.Group, error) {
	return nil, nil
}

func testEngine() *Engine {
	clients := orchestrator.Clients{
		SchemeCache: fakeSchemeCache{},
		Tenant:      fakeTenant{},
		SchemeShard: fakeSchemeShard{},
		Controller:  fakeController{},
		Hive:        fakeHive{},
		Whiteboard:  fakeWhiteboard{},
	}
	o := orchestrator.New(clients, testMiddleware())
	return New(o, nil, fakeLogger{})
}

func TestCheckAllGreenBaseline(t *testing.T) {
	e := testEngine()
	result := e.Check(context.Background(), Filters{})

	if result.Status != model.StatusGreen {
		t.Fatalf("Status = %v, want Green; issues: %+v", result.Status, result.Issues)
	}
	if len(result.DatabaseStatuses) != 1 {
		t.Fatalf("DatabaseStatuses = %v, want 1 entry", result.DatabaseStatuses)
	}
	if result.DatabaseStatuses[0].Name != "/Root/db1" {
		t.Fatalf("DatabaseStatuses[0].Name = %q, want /Root/db1", result.DatabaseStatuses[0].Name)
	}
	if result.RequestID == "" {
		t.Fatal("RequestID = \"\", want a minted id")
	}
}

func TestCheckSingleDatabaseFilterSkipsListTenants(t *testing.T) {
	e := testEngine()
	result := e.Check(context.Background(), Filters{Database: "/Root/db1"})

	if result.Status != model.StatusGreen {
		t.Fatalf("Status = %v, want Green; issues: %+v", result.Status, result.Issues)
	}
	if len(result.DatabaseStatuses) != 1 {
		t.Fatalf("DatabaseStatuses = %v, want 1 entry", result.DatabaseStatuses)
	}
}

// fakeControllerTwoStaticNodes puts a pdisk on node 2 that no hive ever
// reports node stats for, so it only gets a compute-node RPC if the
// checkAll "every static node joins the default domain" rule fires.
type fakeControllerTwoStaticNodes struct{}

func (fakeControllerTwoStaticNodes) SelectGroups(ctx context.Context, pool string) ([]uint32, error) {
	return []uint32{1}, nil
}
func (fakeControllerTwoStaticNodes) BaseConfig(ctx context.Context) (transport.BaseConfigResult, error) {
	pdiskID1 := model.PDiskLocationID(1, 1)
	pdiskID2 := model.PDiskLocationID(2, 1)
	return transport.BaseConfigResult{
		PDisks: []model.PDisk{
			{ID: pdiskID1, NodeID: 1, PDiskID: 1, State: model.PDiskStateNormal, TotalSize: 100, AvailableSize: 90},
			{ID: pdiskID2, NodeID: 2, PDiskID: 1, State: model.PDiskStateNormal, TotalSize: 100, AvailableSize: 90},
		},
		VDisks: []model.VDisk{{ID: "1-1-0-0-0", PDiskID: pdiskID1, NodeID: 1, State: model.VDiskStateOK, Replicated: true}},
		Groups: []model.Group{{ID: 1, Generation: 1, Erasure: model.ErasureNone, VDiskIDs: []string{"1-1-0-0-0"}}},
	}, nil
}

// recordingWhiteboard counts SystemState and VDiskState calls per node id.
// A storage-node request issues both, a compute-node request issues only
// SystemState, so the difference is the number of compute-node requests.
type recordingWhiteboard struct {
	mu          sync.Mutex
	systemState map[uint32]int
	vdiskState  map[uint32]int
}

func newRecordingWhiteboard() *recordingWhiteboard {
	return &recordingWhiteboard{systemState: make(map[uint32]int), vdiskState: make(map[uint32]int)}
}

func (w *recordingWhiteboard) computeCalls(nodeID uint32) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.systemState[nodeID] - w.vdiskState[nodeID]
}

func (w *recordingWhiteboard) SystemState(ctx context.Context, nodeID uint32) (*model.SystemStateInfo, error) {
	w.mu.Lock()
	w.systemState[nodeID]++
	w.mu.Unlock()
	return &model.SystemStateInfo{NodeID: nodeID, NumCPUs: 4}, nil
}
func (w *recordingWhiteboard) VDiskState(ctx context.Context, nodeID uint32) ([]model.VDisk, error) {
	w.mu.Lock()
	w.vdiskState[nodeID]++
	w.mu.Unlock()
	return nil, nil
}
func (w *recordingWhiteboard) PDiskState(ctx context.Context, nodeID uint32) ([]model.PDisk, error) {
	return nil, nil
}
func (w *recordingWhiteboard) BSGroupState(ctx context.Context, nodeID uint32) ([]model.Group, error) {
	return nil, nil
}

func TestCheckAllSchedulesComputeNodeForEveryStaticNode(t *testing.T) {
	wb := newRecordingWhiteboard()
	clients := orchestrator.Clients{
		SchemeCache: fakeSchemeCache{},
		Tenant:      fakeTenant{},
		SchemeShard: fakeSchemeShard{},
		Controller:  fakeControllerTwoStaticNodes{},
		Hive:        fakeHive{},
		Whiteboard:  wb,
	}
	e := New(orchestrator.New(clients, testMiddleware()), nil, fakeLogger{})

	e.Check(context.Background(), Filters{})

	if wb.computeCalls(2) == 0 {
		t.Fatal("no compute-node SystemState call for node 2, a static node with no hive-node-stats entry")
	}
}

func TestCheckSingleDatabaseDoesNotScheduleUnrelatedStaticNode(t *testing.T) {
	wb := newRecordingWhiteboard()
	clients := orchestrator.Clients{
		SchemeCache: fakeSchemeCache{},
		Tenant:      fakeTenant{},
		SchemeShard: fakeSchemeShard{},
		Controller:  fakeControllerTwoStaticNodes{},
		Hive:        fakeHive{},
		Whiteboard:  wb,
	}
	e := New(orchestrator.New(clients, testMiddleware()), nil, fakeLogger{})

	e.Check(context.Background(), Filters{Database: "/Root/db1"})

	if n := wb.computeCalls(2); n != 0 {
		t.Fatalf("%d compute-node SystemState call(s) for node 2 under a single-database filter; the default-domain rule only applies to checkAll", n)
	}
}

package model

import "testing"

func TestUpsertGroupLatestGenerationWins(t *testing.T) {
	m := NewClusterModel(nil)
	m.UpsertGroup(Group{ID: 1, Generation: 1, Erasure: ErasureBlock42, VDiskIDs: []string{"old"}})
	m.UpsertGroup(Group{ID: 1, Generation: 2, Erasure: ErasureBlock42, VDiskIDs: []string{"new"}})

	got := m.Groups[1]
	if got.Generation != 2 || got.VDiskIDs[0] != "new" {
		t.Fatalf("expected generation 2 to fully replace generation 1, got %+v", got)
	}
}

func TestUpsertGroupOlderGenerationDiscarded(t *testing.T) {
	m := NewClusterModel(nil)
	m.UpsertGroup(Group{ID: 1, Generation: 2, VDiskIDs: []string{"new"}})
	m.UpsertGroup(Group{ID: 1, Generation: 1, VDiskIDs: []string{"old"}})

	got := m.Groups[1]
	if got.Generation != 2 || got.VDiskIDs[0] != "new" {
		t.Fatalf("expected stale generation 1 sighting to be discarded, got %+v", got)
	}
}

func TestSetSystemStateKeepsIndexInSync(t *testing.T) {
	m := NewClusterModel(nil)
	s := &SystemStateInfo{NodeID: 7, NumCPUs: 4}
	m.SetSystemState(7, s)

	if m.NodeByID[7] != s {
		t.Fatal("NodeByID index not updated")
	}
	if m.Nodes[7].RawSystemState != s {
		t.Fatal("Node.RawSystemState not updated")
	}
}

func TestUpsertPDiskFillsMissingFieldsOnly(t *testing.T) {
	m := NewClusterModel(nil)
	id := PDiskLocationID(1, 2)
	m.UpsertPDisk(PDisk{ID: id, NodeID: 1, PDiskID: 2, TotalSize: 1000})
	m.UpsertPDisk(PDisk{ID: id, NodeID: 1, PDiskID: 2, State: PDiskStateNormal, AvailableSize: 500})

	got := m.PDisks[id]
	if got.TotalSize != 1000 {
		t.Errorf("expected TotalSize preserved from first sighting, got %d", got.TotalSize)
	}
	if got.AvailableSize != 500 {
		t.Errorf("expected AvailableSize filled from second sighting, got %d", got.AvailableSize)
	}
	if got.State != PDiskStateNormal {
		t.Errorf("expected State filled from second sighting, got %q", got.State)
	}
}

func TestPoolOrCreateIsIdempotent(t *testing.T) {
	m := NewClusterModel(nil)
	a := m.PoolOrCreate("static")
	b := m.PoolOrCreate("static")
	if a != b {
		t.Fatal("expected PoolOrCreate to return the same pool on a second call")
	}
}

func TestPDiskAvailableRatioZeroTotal(t *testing.T) {
	p := PDisk{}
	if got := p.AvailableRatio(); got != 1 {
		t.Errorf("AvailableRatio() with zero TotalSize = %f, want 1", got)
	}
}

package evaluate

import (
	"testing"

	"github.com/coredb-io/clustercheck/model"
)

func TestEvaluateClockSkewPairedOnce(t *testing.T) {
	nodes := map[uint32]*model.Node{
		1: {ID: 1, ClockSkewPeerID: 2, ClockSkewMicros: 30000},
		2: {ID: 2, ClockSkewPeerID: 1, ClockSkewMicros: 30000},
	}
	status, issues := evaluateClockSkew(nodes, "")
	if status != model.StatusRed {
		t.Fatalf("status = %v, want Red", status)
	}
	if len(issues) != 2 {
		t.Fatalf("issues = %d, want exactly 2 (one NodeState pair issue, pair visited once, plus one SyncState rollup)", len(issues))
	}
	var sawSync, sawNode bool
	for _, is := range issues {
		switch is.Tag {
		case model.TagSyncState:
			sawSync = true
			if is.Message != "Time difference exceeded" {
				t.Fatalf("sync issue Message = %q, want %q", is.Message, "Time difference exceeded")
			}
		case model.TagNodeState:
			sawNode = true
			if is.Message != "Time difference is more than 25 ms" {
				t.Fatalf("node issue Message = %q, want %q", is.Message, "Time difference is more than 25 ms")
			}
		}
	}
	if !sawSync || !sawNode {
		t.Fatalf("issues = %+v, want one TagSyncState and one TagNodeState issue", issues)
	}
}

func TestEvaluateClockSkewMultiplePairsRollUpToOneSyncIssue(t *testing.T) {
	nodes := map[uint32]*model.Node{
		1: {ID: 1, ClockSkewPeerID: 2, ClockSkewMicros: 30000},
		2: {ID: 2, ClockSkewPeerID: 1, ClockSkewMicros: 30000},
		3: {ID: 3, ClockSkewPeerID: 4, ClockSkewMicros: 10000},
		4: {ID: 4, ClockSkewPeerID: 3, ClockSkewMicros: 10000},
	}
	status, issues := evaluateClockSkew(nodes, "")
	if status != model.StatusRed {
		t.Fatalf("status = %v, want Red (max of the two pairs)", status)
	}
	syncCount := 0
	nodeCount := 0
	for _, is := range issues {
		switch is.Tag {
		case model.TagSyncState:
			syncCount++
		case model.TagNodeState:
			nodeCount++
		}
	}
	if syncCount != 1 {
		t.Fatalf("syncCount = %d, want exactly 1 rollup issue regardless of pair count", syncCount)
	}
	if nodeCount != 2 {
		t.Fatalf("nodeCount = %d, want 2 (one per skewed pair)", nodeCount)
	}
}

func TestEvaluateClockSkewWithinToleranceIsGreen(t *testing.T) {
	nodes := map[uint32]*model.Node{
		1: {ID: 1, ClockSkewPeerID: 2, ClockSkewMicros: 100},
		2: {ID: 2, ClockSkewPeerID: 1, ClockSkewMicros: 100},
	}
	status, issues := evaluateClockSkew(nodes, "")
	if status != model.StatusGreen {
		t.Fatalf("status = %v, want Green", status)
	}
	if len(issues) != 0 {
		t.Fatalf("issues = %v, want none", issues)
	}
}

func TestEvaluateClockSkewNoDeclaredPeerIsIgnored(t *testing.T) {
	nodes := map[uint32]*model.Node{
		1: {ID: 1},
	}
	status, issues := evaluateClockSkew(nodes, "")
	if status != model.StatusGreen || len(issues) != 0 {
		t.Fatalf("status = %v, issues = %v, want Green/none", status, issues)
	}
}

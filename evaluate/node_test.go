package evaluate

import (
	"testing"
	"time"

	"github.com/coredb-io/clustercheck/model"
)

func TestEvaluateComputeNodeHighLoadAverage(t *testing.T) {
	m := model.NewClusterModel(nil)
	m.SetSystemState(7, &model.SystemStateInfo{NodeID: 7, NumCPUs: 4, LoadAverage: []float64{9.0}})
	status, issues := evaluateComputeNode(7, m, nil, time.Unix(0, 0), "db", "loc", LevelPoolNode)
	if status != model.StatusYellow {
		t.Fatalf("status = %v, want Yellow", status)
	}
	if len(issues) != 1 {
		t.Fatalf("issues = %d, want 1", len(issues))
	}
}

func TestEvaluateComputeNodesMarksUnavailable(t *testing.T) {
	m := model.NewClusterModel(nil)
	m.UnavailableComputeNodes[9] = true
	status, issues := evaluateComputeNodes([]uint32{9}, nil, m, time.Unix(0, 0), "db", "loc", LevelSection)
	if status != model.StatusRed {
		t.Fatalf("status = %v, want Red", status)
	}
	if len(issues) != 1 || issues[0].Message != "Compute node is not available" {
		t.Fatalf("issues = %+v, want a single unavailable-node issue", issues)
	}
}

func TestEvaluateComputeNodePoolSaturation(t *testing.T) {
	m := model.NewClusterModel(nil)
	m.SetSystemState(3, &model.SystemStateInfo{
		NodeID: 3, NumCPUs: 8, LoadAverage: []float64{1.0},
		PoolUsage: []model.PoolUsage{{Name: "System", Usage: 0.995}},
	})
	status, _ := evaluateComputeNode(3, m, nil, time.Unix(0, 0), "db", "loc", LevelPoolNode)
	if status != model.StatusRed {
		t.Fatalf("status = %v, want Red (System pool at or above 0.99)", status)
	}
}

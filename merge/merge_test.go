package merge

import (
	"fmt"
	"testing"

	"github.com/coredb-io/clustercheck/model"
)

func pdiskIssue(id, location string) *model.IssueRecord {
	return &model.IssueRecord{
		ID: id, Status: model.StatusRed, Message: "PDisk is not available",
		Location: location, Level: 7, Type: "PDISK", Tag: model.TagPDiskState,
		Count: 1, Listed: 1,
	}
}

func TestMergeLeavesSmallGroupsAsIs(t *testing.T) {
	var issues []*model.IssueRecord
	for i := 0; i < SimilarityThreshold; i++ {
		issues = append(issues, pdiskIssue(fmt.Sprintf("pd-%d", i), fmt.Sprintf("g1/pd-%d", i)))
	}
	out := Merge(issues)
	if len(out) != SimilarityThreshold {
		t.Fatalf("len(out) = %d, want %d (group too small to merge)", len(out), SimilarityThreshold)
	}
}

func TestMergeCollapsesLargeSimilarGroup(t *testing.T) {
	var issues []*model.IssueRecord
	for i := 0; i < SimilarityThreshold+3; i++ {
		issues = append(issues, pdiskIssue(fmt.Sprintf("pd-%d", i), fmt.Sprintf("g1/pd-%d", i)))
	}
	out := Merge(issues)
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1 (merged into first)", len(out))
	}
	if out[0].ID != "pd-0" {
		t.Fatalf("merged record id = %q, want first record's id pd-0", out[0].ID)
	}
	if out[0].Count != SimilarityThreshold+3 {
		t.Fatalf("Count = %d, want %d", out[0].Count, SimilarityThreshold+3)
	}
	if out[0].Message != "PDisks are not available" {
		t.Fatalf("Message = %q, want pluralized rewrite", out[0].Message)
	}
}

func TestMergeCollapsesMissingPDisksToPluralSpecExample(t *testing.T) {
	var issues []*model.IssueRecord
	for i := 0; i < 20; i++ {
		is := pdiskIssue(fmt.Sprintf("pd-%02d", i), fmt.Sprintf("g1/pd-%02d", i))
		is.Message = fmt.Sprintf("PDisk is %s", model.PDiskStateMissing)
		issues = append(issues, is)
	}
	out := Merge(issues)
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1 (merged into one record)", len(out))
	}
	if out[0].Message != "PDisks are Missing" {
		t.Fatalf("Message = %q, want %q", out[0].Message, "PDisks are Missing")
	}
	if out[0].Count != 20 {
		t.Fatalf("Count = %d, want 20", out[0].Count)
	}
}

func TestMergeTruncatesAcrossParent(t *testing.T) {
	var issues []*model.IssueRecord
	for i := 0; i < 15; i++ {
		is := pdiskIssue(fmt.Sprintf("pd-%02d", i), fmt.Sprintf("g1/pd-%02d", i))
		is.Message = fmt.Sprintf("PDisk %d is not available", i) // distinct messages so none merge
		issues = append(issues, is)
	}
	out := Merge(issues)
	total := 0
	for _, is := range out {
		total += is.Listed
	}
	if total > TruncationCap {
		t.Fatalf("total listed = %d, want <= %d", total, TruncationCap)
	}
	if len(out) >= 15 {
		t.Fatalf("len(out) = %d, want fewer than 15 (some truncated)", len(out))
	}
}

func TestMergeCascadesRemovalIntoUnreferencedReasons(t *testing.T) {
	pd := pdiskIssue("pd-1", "g1/vd-1/pd-1")
	var vdisks []*model.IssueRecord
	for i := 0; i < SimilarityThreshold+5; i++ {
		vd := &model.IssueRecord{
			ID: fmt.Sprintf("vd-%d", i), Status: model.StatusRed, Message: "VDisk is not available",
			Location: fmt.Sprintf("g1/vd-%d", i), Level: 6, Type: "VDISK", Tag: model.TagVDiskState,
			Reason: []string{"pd-1"}, Count: 1, Listed: 1,
		}
		vdisks = append(vdisks, vd)
	}
	issues := append([]*model.IssueRecord{pd}, vdisks...)
	out := Merge(issues)

	foundPD := false
	for _, is := range out {
		if is.ID == "pd-1" {
			foundPD = true
		}
	}
	if !foundPD {
		t.Fatalf("expected pd-1 to survive (still referenced by merged vd-0's reason), got %+v", out)
	}
}

func TestMergeOutputSatisfiesReferentialClosure(t *testing.T) {
	pd := pdiskIssue("pd-1", "g1/vd-1/pd-1")
	var vdisks []*model.IssueRecord
	for i := 0; i < SimilarityThreshold+5; i++ {
		vdisks = append(vdisks, &model.IssueRecord{
			ID: fmt.Sprintf("vd-%d", i), Status: model.StatusRed, Message: "VDisk is not available",
			Location: fmt.Sprintf("g1/vd-%d", i), Level: 6, Type: "VDISK", Tag: model.TagVDiskState,
			Reason: []string{"pd-1"}, Count: 1, Listed: 1,
		})
	}
	out := Merge(append([]*model.IssueRecord{pd}, vdisks...))
	if err := ValidateClosure(out); err != nil {
		t.Fatalf("ValidateClosure(out) = %v, want nil", err)
	}
}

func TestMergeDropsOrphanedReasonIDs(t *testing.T) {
	pd := pdiskIssue("pd-orphan", "g1/vd-9/pd-orphan")
	vd := &model.IssueRecord{
		ID: "vd-9", Status: model.StatusRed, Message: "VDisk is not available",
		Location: "g1/vd-9", Level: 6, Type: "VDISK", Tag: model.TagVDiskState,
		Reason: []string{"pd-orphan", "pd-does-not-exist"}, Count: 1, Listed: 1,
	}
	out := Merge([]*model.IssueRecord{pd, vd})
	for _, is := range out {
		if is.ID != "vd-9" {
			continue
		}
		for _, r := range is.Reason {
			if r == "pd-does-not-exist" {
				t.Fatalf("Reason still contains a nonexistent id: %v", is.Reason)
			}
		}
	}
}

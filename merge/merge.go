package merge

import (
	"sort"
	"strings"

	"github.com/coredb-io/clustercheck/model"
)

// TruncationCap is the max listed count per tag level under a common
// parent location (SPEC_FULL.md §4.4 "Truncation").
const TruncationCap = 10

// SimilarityThreshold is the minimum group size worth collapsing
// (SPEC_FULL.md §4.4 "Similarity": groups of 4 or fewer are left as-is).
const SimilarityThreshold = 4

// tagOrder is the bottom-up processing order both merge and truncation
// follow.
var tagOrder = []model.Tag{model.TagPDiskState, model.TagVDiskState, model.TagGroupState}

// Merge consolidates issues per SPEC_FULL.md §4.4 and returns the final
// record set, with every surviving reason[] id resolvable to a surviving
// record.
func Merge(issues []*model.IssueRecord) []*model.IssueRecord {
	byID := make(map[string]*model.IssueRecord, len(issues))
	var order []string
	for _, is := range issues {
		if _, ok := byID[is.ID]; ok {
			continue
		}
		byID[is.ID] = is
		order = append(order, is.ID)
	}

	removed := make(map[string]bool)
	for _, tag := range tagOrder {
		mergeTag(byID, order, tag, removed)
	}
	for _, tag := range tagOrder {
		truncateTag(byID, order, tag, removed)
	}

	cleanupReferences(byID, order, removed)

	var out []*model.IssueRecord
	for _, id := range order {
		if removed[id] {
			continue
		}
		rec := byID[id]
		rec.Reason = filterPresent(rec.Reason, byID, removed)
		out = append(out, rec)
	}
	return out
}

// parentLocation strips the last "/"-delimited segment off a location
// path, so two records at the same nesting depth under a common parent
// are recognized as siblings.
func parentLocation(location string) string {
	i := strings.LastIndex(location, "/")
	if i < 0 {
		return ""
	}
	return location[:i]
}

type similarityKey struct {
	Parent  string
	Status  model.Status
	Message string
	Level   int
}

// mergeTag collapses sibling groups larger than SimilarityThreshold,
// within tag, into their first member. The first member's id is kept so
// reason[] references into it remain valid; the rest are marked removed.
func mergeTag(byID map[string]*model.IssueRecord, order []string, tag model.Tag, removed map[string]bool) {
	groups := make(map[similarityKey][]*model.IssueRecord)
	var keys []similarityKey
	for _, id := range order {
		rec := byID[id]
		if rec.Tag != tag || removed[id] {
			continue
		}
		key := similarityKey{Parent: parentLocation(rec.Location), Status: rec.Status, Message: rec.Message, Level: rec.Level}
		if _, ok := groups[key]; !ok {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], rec)
	}

	for _, key := range keys {
		group := groups[key]
		if len(group) <= SimilarityThreshold {
			continue
		}
		first := group[0]
		reasons := make(map[string]bool)
		for _, id := range first.Reason {
			reasons[id] = true
		}
		for _, rec := range group[1:] {
			for _, id := range rec.Reason {
				reasons[id] = true
			}
			removed[rec.ID] = true
		}
		first.Reason = sortedKeys(reasons)
		first.Count = len(group)
		first.Listed = len(group)
		first.Message = pluralize(first.Message, tag)
	}
}

// truncateTag caps listed to TruncationCap per (parent, tag). Records are
// ordered by status, worst first, then by id for determinism; a record
// that straddles the cap keeps its place with listed trimmed to the room
// left, and records beyond the cap are removed outright.
func truncateTag(byID map[string]*model.IssueRecord, order []string, tag model.Tag, removed map[string]bool) {
	byParent := make(map[string][]*model.IssueRecord)
	var parents []string
	for _, id := range order {
		rec := byID[id]
		if rec.Tag != tag || removed[id] {
			continue
		}
		p := parentLocation(rec.Location)
		if _, ok := byParent[p]; !ok {
			parents = append(parents, p)
		}
		byParent[p] = append(byParent[p], rec)
	}

	for _, p := range parents {
		recs := byParent[p]
		sort.Slice(recs, func(i, j int) bool {
			if recs[i].Status != recs[j].Status {
				return recs[i].Status > recs[j].Status
			}
			return recs[i].ID < recs[j].ID
		})
		total := 0
		for _, rec := range recs {
			if total+rec.Listed <= TruncationCap {
				total += rec.Listed
				continue
			}
			if total < TruncationCap {
				rec.Listed = TruncationCap - total
				total = TruncationCap
				continue
			}
			removed[rec.ID] = true
		}
	}
}

// cleanupReferences applies SPEC_FULL.md §4.4 "Referential cleanup": for
// every already-removed record, any id its reason[] names is cascaded
// into removed too, unless some surviving record still references it.
// Iterates to a fixed point since cascading one level can orphan the
// next.
func cleanupReferences(byID map[string]*model.IssueRecord, order []string, removed map[string]bool) {
	for {
		changed := false

		referencedBySurviving := make(map[string]bool)
		for _, id := range order {
			if removed[id] {
				continue
			}
			for _, r := range byID[id].Reason {
				referencedBySurviving[r] = true
			}
		}

		for id := range removed {
			rec, ok := byID[id]
			if !ok {
				continue
			}
			for _, r := range rec.Reason {
				if removed[r] || referencedBySurviving[r] {
					continue
				}
				removed[r] = true
				changed = true
			}
		}

		if !changed {
			break
		}
	}
}

func filterPresent(ids []string, byID map[string]*model.IssueRecord, removed map[string]bool) []string {
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if removed[id] {
			continue
		}
		if _, ok := byID[id]; !ok {
			continue
		}
		out = append(out, id)
	}
	return out
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// pluralize rewrites a singular per-entity message into its merged plural
// form per SPEC_FULL.md §4.4 "Message rewriting".
func pluralize(msg string, tag model.Tag) string {
	subject := ""
	switch tag {
	case model.TagGroupState:
		subject = "Group"
	case model.TagVDiskState:
		subject = "VDisk"
	case model.TagPDiskState:
		subject = "PDisk"
	default:
		return msg
	}
	switch {
	case strings.HasPrefix(msg, subject+" has "):
		return subject + "s have " + strings.TrimPrefix(msg, subject+" has ")
	case strings.HasPrefix(msg, subject+" is "):
		return subject + "s are " + strings.TrimPrefix(msg, subject+" is ")
	default:
		return msg
	}
}

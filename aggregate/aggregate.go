package aggregate

import (
	"fmt"
	"sort"

	"github.com/coredb-io/clustercheck/model"
)

// Build walks m's flat, id-keyed maps and resolves the per-database
// compute+storage hierarchy the evaluator needs. Every pool and group
// the model holds is reachable from a DatabaseView or from Result's
// UnknownPools/UnknownGroups. VDisks and pdisks are reached only through
// the groups that list them: a vdisk no group lists, and a pdisk no
// listed vdisk sits on, appear nowhere in Result.
func Build(m *model.ClusterModel) Result {
	usedPools := make(map[string]bool)
	usedGroups := make(map[uint32]bool)

	var dbPaths []string
	for path := range m.Databases {
		dbPaths = append(dbPaths, path)
	}
	sort.Strings(dbPaths)

	var dbs []DatabaseView
	for _, path := range dbPaths {
		db := m.Databases[path]
		dv := DatabaseView{Database: db}

		for _, name := range uniqueSorted(db.StoragePoolNames) {
			pool, ok := m.Pools[name]
			if !ok || usedPools[name] {
				continue
			}
			usedPools[name] = true
			dv.Pools = append(dv.Pools, buildPoolView(pool, m, usedGroups))
		}

		dv.ComputeNodes = computeNodesForDatabase(db, m)
		dv.Tablets = tabletsForNodes(dv.ComputeNodes, m)
		dbs = append(dbs, dv)
	}

	var poolNames []string
	for name := range m.Pools {
		poolNames = append(poolNames, name)
	}
	sort.Strings(poolNames)

	var unknownPools []PoolView
	for _, name := range poolNames {
		if usedPools[name] {
			continue
		}
		unknownPools = append(unknownPools, buildPoolView(m.Pools[name], m, usedGroups))
	}

	var groupIDs []uint32
	for id := range m.Groups {
		groupIDs = append(groupIDs, id)
	}
	sort.Slice(groupIDs, func(i, j int) bool { return groupIDs[i] < groupIDs[j] })

	var unknownGroups []GroupView
	for _, id := range groupIDs {
		if usedGroups[id] {
			continue
		}
		unknownGroups = append(unknownGroups, buildGroupView(m.Groups[id], m))
	}

	return Result{Databases: dbs, UnknownPools: unknownPools, UnknownGroups: unknownGroups}
}

func buildPoolView(pool *model.StoragePool, m *model.ClusterModel, usedGroups map[uint32]bool) PoolView {
	pv := PoolView{Pool: pool}
	for _, id := range pool.AuthenticGroupIDs {
		g, ok := m.Groups[id]
		if !ok {
			continue
		}
		usedGroups[id] = true
		pv.Groups = append(pv.Groups, buildGroupView(g, m))
	}
	return pv
}

func buildGroupView(g *model.Group, m *model.ClusterModel) GroupView {
	gv := GroupView{Group: g}
	for _, vid := range g.VDiskIDs {
		v, ok := m.VDisks[vid]
		if !ok {
			gv.VDisks = append(gv.VDisks, VDiskView{ID: vid})
			continue
		}
		var pd *model.PDisk
		if v.PDiskID != "" {
			pd = m.PDisks[v.PDiskID]
		}
		gv.VDisks = append(gv.VDisks, VDiskView{ID: vid, VDisk: v, PDisk: pd})
	}
	return gv
}

// computeNodesForDatabase assigns node ids to a database by matching a
// tablet's reported object domain against the database's scheme-shard id
// or its own path — the two forms hive-info has been observed to use for
// ObjectDomain. The "no database filter" case, where every static node
// also joins the default domain's compute set, is a request-level
// decision (see package request) applied after Build returns, since it
// depends on whether the inbound request named a database at all.
func computeNodesForDatabase(db *model.Database, m *model.ClusterModel) []uint32 {
	domain := fmt.Sprintf("%d", db.SchemeShardID)
	seen := make(map[uint32]bool)
	var nodes []uint32
	for _, t := range m.Tablets {
		if t.ObjectDomain != domain && t.ObjectDomain != db.Path {
			continue
		}
		if seen[t.NodeID] {
			continue
		}
		seen[t.NodeID] = true
		nodes = append(nodes, t.NodeID)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })
	return nodes
}

func tabletsForNodes(nodeIDs []uint32, m *model.ClusterModel) []*model.Tablet {
	if len(nodeIDs) == 0 {
		return nil
	}
	in := make(map[uint32]bool, len(nodeIDs))
	for _, id := range nodeIDs {
		in[id] = true
	}
	var keys []model.TabletKey
	for k, t := range m.Tablets {
		if in[t.NodeID] {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].TabletID != keys[j].TabletID {
			return keys[i].TabletID < keys[j].TabletID
		}
		return keys[i].FollowerID < keys[j].FollowerID
	})
	tablets := make([]*model.Tablet, len(keys))
	for i, k := range keys {
		tablets[i] = m.Tablets[k]
	}
	return tablets
}

func uniqueSorted(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

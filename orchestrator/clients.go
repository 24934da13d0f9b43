package orchestrator

import "github.com/coredb-io/clustercheck/transport"

// Clients bundles every outbound service contract the orchestrator issues
// requests through. A field left nil disables the requests that need it;
// FanOutRequest fields that need a nil client produce a Response with a
// non-nil Err instead of panicking.
type Clients struct {
	SchemeCache transport.SchemeCacheClient
	Tenant      transport.TenantClient
	SchemeShard transport.SchemeShardClient
	Controller  transport.BlobStorageControllerClient
	Hive        transport.HiveClient
	Whiteboard  transport.WhiteboardClient
}

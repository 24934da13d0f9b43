package request

import (
	"time"

	"github.com/coredb-io/clustercheck/model"
)

// DefaultOperationTimeout is the request's single wall-clock deadline
// when the inbound request leaves operation_timeout unset
// (SPEC_FULL.md §5: "default 10 000 ms").
const DefaultOperationTimeout = 10 * time.Second

// Filters is the Go shape of the inbound SelfCheckRequest (SPEC_FULL.md
// §6): everything a caller can use to scope and shape one self-check.
type Filters struct {
	// Database, if non-empty, scopes the check to a single database path
	// instead of every tenant the cluster reports.
	Database string

	// OperationTimeout overrides DefaultOperationTimeout when positive.
	OperationTimeout time.Duration

	// ReturnVerboseStatus requests the per-database status array in the
	// wire response; the responder drops it when false (§4.5).
	ReturnVerboseStatus bool

	// MinimumStatus drops issues below this threshold from the wire
	// response; zero value (StatusGrey) keeps everything.
	MinimumStatus model.Status

	// MaximumLevel drops issues deeper than this hierarchy level; zero
	// means "no cap".
	MaximumLevel int
}

// Deadline returns the effective operation timeout for f.
func (f Filters) Deadline() time.Duration {
	if f.OperationTimeout > 0 {
		return f.OperationTimeout
	}
	return DefaultOperationTimeout
}

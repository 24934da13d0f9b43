package respond

import (
	"errors"
	"fmt"

	"github.com/coredb-io/clustercheck/model"
	"github.com/coredb-io/clustercheck/request"
)

// ErrInvalidFilter marks an inbound request.Filters value this package
// cannot shape a response for: a MinimumStatus or MaximumLevel outside
// the range the wire protocol defines.
var ErrInvalidFilter = errors.New("respond: invalid filter")

// ValidateFilters rejects a MinimumStatus past model.StatusRed or a
// negative MaximumLevel, the two Filters fields this package interprets
// directly when shaping a Response.
func ValidateFilters(f request.Filters) error {
	if f.MinimumStatus < model.StatusGrey || f.MinimumStatus > model.StatusRed {
		return fmt.Errorf("%w: minimum_status %v out of range", ErrInvalidFilter, f.MinimumStatus)
	}
	if f.MaximumLevel < 0 {
		return fmt.Errorf("%w: maximum_level %d must be non-negative", ErrInvalidFilter, f.MaximumLevel)
	}
	return nil
}

package builder

import "errors"

// ErrUnknownResponseKind names the logic error of Ingest being handed a
// Response whose Kind the builder has no handler for. Ingest ignores
// such a Response without returning or logging this sentinel, so the
// request is never aborted over it.
var ErrUnknownResponseKind = errors.New("builder: unknown response kind")

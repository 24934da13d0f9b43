package respond

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/coredb-io/clustercheck/model"
	"github.com/coredb-io/clustercheck/request"
)

// defaultHTTPTimeout bounds a /status probe that doesn't supply its own
// timeout query param.
const defaultHTTPTimeout = 10 * time.Second

// StatusHandler returns the HTTPInfo /status handler (SPEC_FULL.md §6):
// runs a check-all self-check and answers 200 if the verdict is GOOD,
// 500 otherwise, always with the full JSON envelope as the body. The
// minimum_status and maximum_level query params map directly onto
// request.Filters; an out-of-range value answers 400 instead of running
// the check.
func StatusHandler(e *request.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := filtersFromQuery(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), f.Deadline())
		defer cancel()

		body := Shape(e.Check(ctx, f), f)

		w.Header().Set("Content-Type", "application/json")
		if body.SelfCheckResult == model.VerdictGood {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusInternalServerError)
		}
		_ = json.NewEncoder(w).Encode(body)
	}
}

// filtersFromQuery builds request.Filters from /status's query params
// and validates it before the check ever runs.
func filtersFromQuery(r *http.Request) (request.Filters, error) {
	f := request.Filters{OperationTimeout: defaultHTTPTimeout, ReturnVerboseStatus: true}

	q := r.URL.Query()
	if raw := q.Get("timeout"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			f.OperationTimeout = d
		}
	}
	if raw := q.Get("minimum_status"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			f.MinimumStatus = model.Status(n)
		}
	}
	if raw := q.Get("maximum_level"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			f.MaximumLevel = n
		}
	}

	if err := ValidateFilters(f); err != nil {
		return request.Filters{}, err
	}
	return f, nil
}

// RegisterHandlers registers the self-check HTTP surface on mux.
func RegisterHandlers(mux *http.ServeMux, e *request.Engine) {
	mux.HandleFunc("/status", StatusHandler(e))
}

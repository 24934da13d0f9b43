// Package respond shapes an unfiltered request.Result into the wire
// response: applying the inbound filters (return_verbose_status,
// minimum_status, maximum_level), mapping the root status to a
// model.Verdict, and serving it over HTTP. Grounded on health/http.go's
// ServeMux handler and JSON-envelope conventions.
package respond

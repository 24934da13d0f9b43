package model

// DatabaseStatus is one database's own rolled-up status, part of the
// per-database array the wire response's return_verbose_status filter
// controls (SPEC_FULL.md §4.5).
type DatabaseStatus struct {
	Name   string `json:"name"`
	Status Status `json:"status"`
}

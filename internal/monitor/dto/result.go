package dto

const (
	StatusSuccess = "SUCCESS"
	StatusFailed  = "FAILED"
	StatusSkipped = "SKIPPED"
)

// WatchCycleResult is the per-watch outcome of one evaluation cycle,
// collected into the monitor run record.
type WatchCycleResult struct {
	WatchID   uint   `json:"watch_id"`
	Symbol    string `json:"symbol"`
	Status    string `json:"status"`
	AlertKind string `json:"alert_kind,omitempty"`
	Errors    string `json:"errors,omitempty"`
}

package entity

import (
	"database/sql"
	"time"

	"gorm.io/datatypes"
)

const (
	MonitorRunStatusRunning   = "RUNNING"
	MonitorRunStatusCompleted = "COMPLETED"
	MonitorRunStatusFailed    = "FAILED"
)

// MonitorRun is the audit record of one evaluation scan: when it ran, how
// many watches it covered and the per-watch outcome as JSON.
type MonitorRun struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Status      string         `gorm:"not null" json:"status"`
	WatchCount  int            `gorm:"not null" json:"watch_count"`
	Results     datatypes.JSON `json:"results"`
	StartedAt   time.Time      `gorm:"not null" json:"started_at"`
	CompletedAt sql.NullTime   `json:"completed_at"`
}

func (MonitorRun) TableName() string {
	return "monitor_runs"
}

package store

// Status is the lifecycle state of a run.
type Status string

const (
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Run is a single execution bound to an append-only event log.
type Run struct {
	ID            string
	Status        Status
	CreatedAtMs   int64
	FinalizedAtMs *int64
}

// LogLine is one append-only entry in a run's event log, ordered by ID.
type LogLine struct {
	ID          int64
	RunID       string
	CreatedAtMs int64
	Line        string
}

// kvEntry is the persisted form of a single state_kv row.
type kvEntry struct {
	Value       []byte `json:"value"`
	UpdatedAtMs int64  `json:"updated_at_ms"`
}

// snapshot is the entire on-disk representation of a store: it is
// loaded wholesale on Open and rewritten wholesale on every mutation,
// the embedded-store analogue of a transactional commit.
type snapshot struct {
	SchemaVersion int                        `json:"schema_version"`
	Runs          map[string]*Run            `json:"runs"`
	Logs          []LogLine                  `json:"run_logs"`
	KV            map[string]map[string]kvEntry `json:"state_kv"`
	NextRunID     int64                      `json:"next_run_id"`
	NextLogID     int64                      `json:"next_log_id"`
}

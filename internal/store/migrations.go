package store

// CurrentSchemaVersion is the schema version this build supports.
// Opening a store persisted at a newer version fails with
// SchemaVersionTooNewError; opening one at an older version applies
// every migration between the two in order.
const CurrentSchemaVersion = 1

// migration brings a snapshot from version-1 to version in place.
// The migration list is append-only: existing entries are never
// edited once released.
type migration struct {
	version int
	apply   func(*snapshot)
}

var migrations = []migration{
	{
		version: 1,
		apply: func(s *snapshot) {
			if s.Runs == nil {
				s.Runs = make(map[string]*Run)
			}
			if s.KV == nil {
				s.KV = make(map[string]map[string]kvEntry)
			}
		},
	},
}

// applyMigrations runs every migration newer than the snapshot's
// current version, persisting once per version so that a crash
// between versions leaves the store at a consistent, lower version
// rather than a half-applied one.
func (s *Store) applyMigrations() error {
	for _, m := range migrations {
		if m.version <= s.data.SchemaVersion {
			continue
		}
		m.apply(&s.data)
		s.data.SchemaVersion = m.version
		if err := s.persistLocked(); err != nil {
			return err
		}
	}
	return nil
}

package store

// schemaVersion is the target schema version for this build.
const schemaVersion = 1

// schemaDDL creates the run registry schema.
var schemaDDL = `
CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL);

CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	preferred_outcome TEXT NOT NULL,
	quote_count INTEGER NOT NULL,
	case_count INTEGER NOT NULL,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS case_values (
	run_id TEXT NOT NULL,
	case_id TEXT NOT NULL,
	value TEXT NOT NULL,
	value_source TEXT NOT NULL,
	PRIMARY KEY (run_id, case_id),
	FOREIGN KEY (run_id) REFERENCES runs(id)
);

CREATE INDEX IF NOT EXISTS idx_case_values_run ON case_values(run_id);
`

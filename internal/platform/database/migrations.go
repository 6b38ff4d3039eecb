package database

const schemaVersionTable = `CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`

type migration struct {
	version int
	sql     string
}

// migrations must stay portable between PostgreSQL and SQLite.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS tasks (
	code        VARCHAR(6) PRIMARY KEY,
	name        VARCHAR(50) NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMP NOT NULL,
	updated_at  TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_tasks_created_at ON tasks(created_at);
`,
	},
	{
		version: 2,
		sql: `
CREATE TABLE IF NOT EXISTS users (
	id              VARCHAR(36) PRIMARY KEY,
	username        VARCHAR(150) NOT NULL UNIQUE,
	hashed_password TEXT NOT NULL,
	created_at      TIMESTAMP NOT NULL
);
`,
	},
}

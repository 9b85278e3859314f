package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// Open opens a DB and ensures schema exists.
func Open(ctx context.Context, driver Driver, dsn string) (*sql.DB, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite" // modernc driver
		if dsn == "" {
			dsn = "file:examgen.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		drvName = "pgx" // pgx stdlib driver
		if dsn == "" {
			dsn = "postgres://localhost:5432/examgen?sslmode=disable"
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := ensureSchema(ctx, db, driver); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(ctx context.Context, db *sql.DB, driver Driver) error {
	var schema string
	switch driver {
	case DriverSQLite:
		schema = schemaSQLite
	case DriverPostgres:
		schema = schemaPostgres
	}
	_, err := db.ExecContext(ctx, schema)
	return err
}

// Booleans are stored as 0/1 integers so rows scan the same way on both
// drivers. Dates are stored as ISO "2006-01-02" strings for the same reason.

const schemaSQLite = `
PRAGMA foreign_keys=ON;

CREATE TABLE IF NOT EXISTS doctors (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS materials (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  material_name TEXT NOT NULL,
  material_code TEXT NOT NULL,
  level TEXT NOT NULL,
  department TEXT NOT NULL,
  term INTEGER NOT NULL,
  doctor_id INTEGER NOT NULL REFERENCES doctors(id)
);

CREATE TABLE IF NOT EXISTS topics (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  topic_name TEXT NOT NULL,
  material_id INTEGER NOT NULL REFERENCES materials(id)
);

CREATE TABLE IF NOT EXISTS groups (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  topic_id INTEGER NOT NULL REFERENCES topics(id),
  group_name TEXT NOT NULL,
  common_question_header TEXT NOT NULL DEFAULT '',
  has_common_header INTEGER NOT NULL DEFAULT 0,
  total_problems INTEGER NOT NULL DEFAULT 0,
  main_degree INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS problems (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  group_id INTEGER NOT NULL REFERENCES groups(id),
  problem_name TEXT NOT NULL,
  problem_header TEXT NOT NULL DEFAULT '',
  image_path TEXT NOT NULL DEFAULT '',
  choices_number INTEGER NOT NULL DEFAULT 0,
  right_answer INTEGER NOT NULL DEFAULT 1,
  shuffle INTEGER NOT NULL DEFAULT 0,
  main_degree INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS problem_choices (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  problem_id INTEGER NOT NULL REFERENCES problems(id) ON DELETE CASCADE,
  choice_text TEXT NOT NULL,
  image_path TEXT NOT NULL DEFAULT '',
  unit_order INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS exams (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  material_id INTEGER NOT NULL REFERENCES materials(id),
  exam_name TEXT NOT NULL,
  main_degree INTEGER NOT NULL DEFAULT 0,
  total_problems INTEGER NOT NULL DEFAULT 0,
  shuffle INTEGER NOT NULL DEFAULT 0,
  duration_min INTEGER NOT NULL,
  exam_date TEXT NOT NULL,
  university_name TEXT NOT NULL DEFAULT '',
  college_name TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS exam_units (
  unit_order INTEGER PRIMARY KEY AUTOINCREMENT,
  exam_id INTEGER NOT NULL REFERENCES exams(id),
  group_id INTEGER NOT NULL REFERENCES groups(id),
  main_degree INTEGER NOT NULL DEFAULT 0,
  total_problems INTEGER NOT NULL DEFAULT 0,
  shuffle INTEGER NOT NULL DEFAULT 0,
  all_problems INTEGER NOT NULL DEFAULT 0
);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS doctors (
  id BIGSERIAL PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS materials (
  id BIGSERIAL PRIMARY KEY,
  material_name TEXT NOT NULL,
  material_code TEXT NOT NULL,
  level TEXT NOT NULL,
  department TEXT NOT NULL,
  term INTEGER NOT NULL,
  doctor_id BIGINT NOT NULL REFERENCES doctors(id)
);

CREATE TABLE IF NOT EXISTS topics (
  id BIGSERIAL PRIMARY KEY,
  topic_name TEXT NOT NULL,
  material_id BIGINT NOT NULL REFERENCES materials(id)
);

CREATE TABLE IF NOT EXISTS groups (
  id BIGSERIAL PRIMARY KEY,
  topic_id BIGINT NOT NULL REFERENCES topics(id),
  group_name TEXT NOT NULL,
  common_question_header TEXT NOT NULL DEFAULT '',
  has_common_header INTEGER NOT NULL DEFAULT 0,
  total_problems INTEGER NOT NULL DEFAULT 0,
  main_degree INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS problems (
  id BIGSERIAL PRIMARY KEY,
  group_id BIGINT NOT NULL REFERENCES groups(id),
  problem_name TEXT NOT NULL,
  problem_header TEXT NOT NULL DEFAULT '',
  image_path TEXT NOT NULL DEFAULT '',
  choices_number INTEGER NOT NULL DEFAULT 0,
  right_answer INTEGER NOT NULL DEFAULT 1,
  shuffle INTEGER NOT NULL DEFAULT 0,
  main_degree INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS problem_choices (
  id BIGSERIAL PRIMARY KEY,
  problem_id BIGINT NOT NULL REFERENCES problems(id) ON DELETE CASCADE,
  choice_text TEXT NOT NULL,
  image_path TEXT NOT NULL DEFAULT '',
  unit_order INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS exams (
  id BIGSERIAL PRIMARY KEY,
  material_id BIGINT NOT NULL REFERENCES materials(id),
  exam_name TEXT NOT NULL,
  main_degree INTEGER NOT NULL DEFAULT 0,
  total_problems INTEGER NOT NULL DEFAULT 0,
  shuffle INTEGER NOT NULL DEFAULT 0,
  duration_min INTEGER NOT NULL,
  exam_date TEXT NOT NULL,
  university_name TEXT NOT NULL DEFAULT '',
  college_name TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS exam_units (
  unit_order BIGSERIAL PRIMARY KEY,
  exam_id BIGINT NOT NULL REFERENCES exams(id),
  group_id BIGINT NOT NULL REFERENCES groups(id),
  main_degree INTEGER NOT NULL DEFAULT 0,
  total_problems INTEGER NOT NULL DEFAULT 0,
  shuffle INTEGER NOT NULL DEFAULT 0,
  all_problems INTEGER NOT NULL DEFAULT 0
);
`

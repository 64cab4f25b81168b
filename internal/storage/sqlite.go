package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps tasks in a single table; the position column carries
// display order.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		return nil, errors.New("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, err
	}
	db, err := sql.Open("sqlite", sqliteDSN(dbPath))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{path: dbPath, db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not prepare database `%s`: %w", dbPath, err)
	}
	return s, nil
}

func (s *SQLiteStore) Path() string { return s.path }

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS tasks (
	id INTEGER PRIMARY KEY,
	title TEXT NOT NULL,
	content TEXT NOT NULL DEFAULT '',
	position INTEGER NOT NULL DEFAULT 0
);`
	if _, err := s.db.Exec(ddl); err != nil {
		return err
	}
	return s.ensureTaskColumns()
}

func (s *SQLiteStore) ensureTaskColumns() error {
	required := map[string]string{
		"content":  "ALTER TABLE tasks ADD COLUMN content TEXT NOT NULL DEFAULT '';",
		"position": "ALTER TABLE tasks ADD COLUMN position INTEGER NOT NULL DEFAULT 0;",
	}
	existing := map[string]struct{}{}
	rows, err := s.db.Query(`PRAGMA table_info(tasks);`)
	if err != nil {
		return err
	}
	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dflt sql.NullString
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			rows.Close()
			return err
		}
		existing[name] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	for col, alter := range required {
		if _, ok := existing[col]; ok {
			continue
		}
		if _, err := s.db.Exec(alter); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) Load() ([]Task, error) {
	rows, err := s.db.Query(`SELECT id, title, content FROM tasks ORDER BY position, id;`)
	if err != nil {
		return nil, fmt.Errorf("could not read database `%s`: %w", s.path, err)
	}
	defer rows.Close()

	tasks := []Task{}
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Content); err != nil {
			return nil, fmt.Errorf("could not read database `%s`: %w", s.path, err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not read database `%s`: %w", s.path, err)
	}
	if err := Validate(tasks); err != nil {
		return nil, fmt.Errorf("could not parse database `%s`: %w", s.path, err)
	}
	return tasks, nil
}

// Save replaces every row in one transaction, numbering positions in slice
// order.
func (s *SQLiteStore) Save(tasks []Task) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("could not write database `%s`: %w", s.path, err)
	}
	if err := replaceTasks(tx, tasks); err != nil {
		tx.Rollback()
		return fmt.Errorf("could not write database `%s`: %w", s.path, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not write database `%s`: %w", s.path, err)
	}
	return nil
}

func replaceTasks(tx *sql.Tx, tasks []Task) error {
	if _, err := tx.Exec(`DELETE FROM tasks;`); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO tasks (id, title, content, position) VALUES (?, ?, ?, ?);`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, t := range tasks {
		if _, err := stmt.Exec(t.ID, t.Title, t.Content, i); err != nil {
			return err
		}
	}
	return nil
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}

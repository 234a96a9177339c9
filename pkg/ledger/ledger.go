package ledger

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mattsolo1/nothing/pkg/models"
)

// Ledger records what the automations did and which names have already
// been notified.
type Ledger struct {
	db     *sql.DB
	useFTS bool
}

// Open opens or creates the ledger database at path.
func Open(path string) (*Ledger, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create ledger directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	l := &Ledger{db: db}
	if err := l.init(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init ledger schema: %w", err)
	}

	return l, nil
}

// init creates the database schema.
func (l *Ledger) init() error {
	l.useFTS = l.checkFTS5Support()

	schema := `
	CREATE TABLE IF NOT EXISTS activity (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT,
		at TIMESTAMP,
		component TEXT,
		kind TEXT,
		from_path TEXT,
		to_path TEXT,
		detail TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_activity_at ON activity(at);
	CREATE INDEX IF NOT EXISTS idx_activity_run ON activity(run_id);

	CREATE TABLE IF NOT EXISTS notified (
		name TEXT PRIMARY KEY,
		at TIMESTAMP
	);
	`

	if _, err := l.db.Exec(schema); err != nil {
		return err
	}

	if l.useFTS {
		ftsSchema := `
		CREATE VIRTUAL TABLE IF NOT EXISTS activity_fts USING fts5(
			from_path,
			to_path,
			detail,
			content = 'activity',
			content_rowid = 'id',
			tokenize = 'unicode61'
		);
		`

		if _, err := l.db.Exec(ftsSchema); err != nil {
			// Fall back to LIKE queries
			l.useFTS = false
		}
	}

	return nil
}

// checkFTS5Support checks if FTS5 module is available.
func (l *Ledger) checkFTS5Support() bool {
	_, err := l.db.Exec("CREATE VIRTUAL TABLE IF NOT EXISTS fts5_test USING fts5(content)")
	if err != nil {
		return false
	}

	_, _ = l.db.Exec("DROP TABLE IF EXISTS fts5_test")
	return true
}

// Record appends an activity row.
func (l *Ledger) Record(a models.Activity) error {
	tx, err := l.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	res, err := tx.Exec(`
		INSERT INTO activity (run_id, at, component, kind, from_path, to_path, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, a.RunID, a.At.UTC(), string(a.Component), string(a.Kind), a.From, a.To, a.Detail)
	if err != nil {
		return err
	}

	if l.useFTS {
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		_, err = tx.Exec(`
			INSERT INTO activity_fts (rowid, from_path, to_path, detail)
			VALUES (?, ?, ?, ?)
		`, id, a.From, a.To, a.Detail)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Recent returns the newest activity rows first.
func (l *Ledger) Recent(limit int) ([]*models.Activity, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := l.db.Query(`
		SELECT id, run_id, at, component, kind, from_path, to_path, detail
		FROM activity
		ORDER BY at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanActivity(rows)
}

// Search finds activity whose paths or detail match query.
func (l *Ledger) Search(query string, limit int) ([]*models.Activity, error) {
	if limit <= 0 {
		limit = 50
	}

	var rows *sql.Rows
	var err error
	if l.useFTS {
		rows, err = l.db.Query(`
			SELECT a.id, a.run_id, a.at, a.component, a.kind, a.from_path, a.to_path, a.detail
			FROM activity_fts f
			JOIN activity a ON a.id = f.rowid
			WHERE activity_fts MATCH ?
			ORDER BY a.at DESC, a.id DESC
			LIMIT ?
		`, ftsQuery(query), limit)
	} else {
		pattern := "%" + strings.ReplaceAll(query, " ", "%") + "%"
		rows, err = l.db.Query(`
			SELECT id, run_id, at, component, kind, from_path, to_path, detail
			FROM activity
			WHERE from_path LIKE ? OR to_path LIKE ? OR detail LIKE ?
			ORDER BY at DESC, id DESC
			LIMIT ?
		`, pattern, pattern, pattern, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanActivity(rows)
}

// ftsQuery quotes each word so task-name punctuation is not read as
// FTS5 syntax.
func ftsQuery(query string) string {
	words := strings.Fields(query)
	for i, w := range words {
		words[i] = `"` + strings.ReplaceAll(w, `"`, `""`) + `"`
	}
	return strings.Join(words, " ")
}

func scanActivity(rows *sql.Rows) ([]*models.Activity, error) {
	var results []*models.Activity
	for rows.Next() {
		a := &models.Activity{}
		var component, kind string
		var to, detail sql.NullString

		err := rows.Scan(&a.ID, &a.RunID, &a.At, &component, &kind, &a.From, &to, &detail)
		if err != nil {
			return nil, err
		}
		a.Component = models.Automation(component)
		a.Kind = models.ActionKind(kind)
		a.To = to.String
		a.Detail = detail.String

		results = append(results, a)
	}
	return results, rows.Err()
}

// Notified reports whether name has already been notified.
func (l *Ledger) Notified(name string) (bool, error) {
	var count int
	err := l.db.QueryRow("SELECT COUNT(*) FROM notified WHERE name = ?", name).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// MarkNotified remembers name; marking twice is a no-op.
func (l *Ledger) MarkNotified(name string, at time.Time) error {
	_, err := l.db.Exec("INSERT OR IGNORE INTO notified (name, at) VALUES (?, ?)", name, at.UTC())
	return err
}

// Close closes the ledger.
func (l *Ledger) Close() error {
	return l.db.Close()
}

package clipboard

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// schema mirrors the original clipboard store's table layout: a
// records table holding metadata (text content inline, image content
// as a path reference) plus an FTS5 virtual table kept in sync by
// triggers so text search never touches application code.
const schema = `
CREATE TABLE IF NOT EXISTS records (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    type            INTEGER NOT NULL,
    content         TEXT NOT NULL,
    content_hash    TEXT NOT NULL UNIQUE,
    source_app      TEXT,
    thumbnail_path  TEXT,
    image_format    TEXT,
    image_width     INTEGER NOT NULL DEFAULT 0,
    image_height    INTEGER NOT NULL DEFAULT 0,
    file_size       INTEGER NOT NULL DEFAULT 0,
    created_at      INTEGER NOT NULL,
    last_used_at    INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_records_hash ON records(content_hash);
CREATE INDEX IF NOT EXISTS idx_records_last_used ON records(last_used_at);

CREATE VIRTUAL TABLE IF NOT EXISTS records_fts USING fts5(
    content, content='records', content_rowid='id'
);

CREATE TRIGGER IF NOT EXISTS records_ai AFTER INSERT ON records BEGIN
    INSERT INTO records_fts(rowid, content) VALUES (new.id, new.content);
END;

CREATE TRIGGER IF NOT EXISTS records_ad AFTER DELETE ON records BEGIN
    INSERT INTO records_fts(records_fts, rowid, content) VALUES ('delete', old.id, old.content);
END;

CREATE TRIGGER IF NOT EXISTS records_au AFTER UPDATE ON records BEGIN
    INSERT INTO records_fts(records_fts, rowid, content) VALUES ('delete', old.id, old.content);
    INSERT INTO records_fts(rowid, content) VALUES (new.id, new.content);
END;
`

// Store is the SQLite-backed clipboard history store.
type Store struct {
	db  *sql.DB
	now func() int64
}

// Open opens or creates the clipboard database at path and applies the
// schema. now supplies the current time in Unix milliseconds; callers
// pass time.Now-derived clocks so the store itself stays free of
// wall-clock calls and is easy to test deterministically.
func Open(path string, now func() int64) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create clipboard database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open clipboard database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply clipboard schema: %w", err)
	}

	return &Store{db: db, now: now}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// AddRecord inserts rec, or if a record with the same ContentHash
// already exists, refreshes its LastUsedAt and returns its existing ID
// with IsNew false.
func (s *Store) AddRecord(rec Record) (AddResult, error) {
	existing, err := s.FindByHash(rec.ContentHash)
	if err != nil {
		return AddResult{}, err
	}
	if existing != nil {
		if err := s.UpdateLastUsedTime(existing.ID); err != nil {
			return AddResult{}, err
		}
		return AddResult{ID: existing.ID, IsNew: false}, nil
	}

	now := s.now()
	result, err := s.db.Exec(`
		INSERT INTO records (type, content, content_hash, source_app, thumbnail_path, image_format, image_width, image_height, file_size, created_at, last_used_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		int(rec.Type), rec.Content, rec.ContentHash, rec.SourceApp, rec.ThumbnailPath, rec.ImageFormat, rec.ImageWidth, rec.ImageHeight, rec.FileSize, now, now,
	)
	if err != nil {
		return AddResult{}, fmt.Errorf("insert clipboard record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return AddResult{}, fmt.Errorf("get last insert id: %w", err)
	}

	return AddResult{ID: id, IsNew: true}, nil
}

// FindByHash looks up a record by its content hash, returning nil if
// none exists.
func (s *Store) FindByHash(hash string) (*Record, error) {
	row := s.db.QueryRow(`
		SELECT id, type, content, content_hash, source_app, thumbnail_path, image_format, image_width, image_height, file_size, created_at, last_used_at
		FROM records WHERE content_hash = ?`, hash)
	return scanRecord(row)
}

// GetRecord fetches a record by ID, returning nil if it does not
// exist.
func (s *Store) GetRecord(id int64) (*Record, error) {
	row := s.db.QueryRow(`
		SELECT id, type, content, content_hash, source_app, thumbnail_path, image_format, image_width, image_height, file_size, created_at, last_used_at
		FROM records WHERE id = ?`, id)
	return scanRecord(row)
}

// UpdateLastUsedTime bumps LastUsedAt to the current time, used when a
// record is pasted back or deduped against.
func (s *Store) UpdateLastUsedTime(id int64) error {
	_, err := s.db.Exec(`UPDATE records SET last_used_at = ? WHERE id = ?`, s.now(), id)
	if err != nil {
		return fmt.Errorf("update last used time: %w", err)
	}
	return nil
}

// GetAllRecords returns records ordered by most-recently-used first,
// paginated by limit/offset.
func (s *Store) GetAllRecords(limit, offset int) ([]Record, error) {
	rows, err := s.db.Query(`
		SELECT id, type, content, content_hash, source_app, thumbnail_path, image_format, image_width, image_height, file_size, created_at, last_used_at
		FROM records
		ORDER BY last_used_at DESC
		LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query clipboard records: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// SearchText runs a full-text search over text records via the FTS5
// virtual table, falling back to a LIKE scan if the query contains
// characters FTS5's query syntax rejects (e.g. a bare "-" or quote).
func (s *Store) SearchText(keyword string, limit int) ([]Record, error) {
	rows, err := s.db.Query(`
		SELECT r.id, r.type, r.content, r.content_hash, r.source_app, r.thumbnail_path, r.image_format, r.image_width, r.image_height, r.file_size, r.created_at, r.last_used_at
		FROM records r
		JOIN records_fts f ON f.rowid = r.id
		WHERE records_fts MATCH ? AND r.type = ?
		ORDER BY r.last_used_at DESC
		LIMIT ?`, ftsQuery(keyword), int(ContentText), limit)
	if err != nil {
		return s.searchTextFallback(keyword, limit)
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (s *Store) searchTextFallback(keyword string, limit int) ([]Record, error) {
	rows, err := s.db.Query(`
		SELECT id, type, content, content_hash, source_app, thumbnail_path, image_format, image_width, image_height, file_size, created_at, last_used_at
		FROM records
		WHERE content LIKE ? AND type = ?
		ORDER BY last_used_at DESC
		LIMIT ?`, "%"+keyword+"%", int(ContentText), limit)
	if err != nil {
		return nil, fmt.Errorf("search clipboard text: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// ftsQuery wraps keyword in double quotes so punctuation inside it is
// treated as a literal phrase rather than FTS5 query syntax.
func ftsQuery(keyword string) string {
	return `"` + strings.ReplaceAll(keyword, `"`, `""`) + `"`
}

// DeleteRecord removes a record by ID.
func (s *Store) DeleteRecord(id int64) error {
	_, err := s.db.Exec(`DELETE FROM records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete clipboard record: %w", err)
	}
	return nil
}

const recordColumns = `id, type, content, content_hash, source_app, thumbnail_path, image_format, image_width, image_height, file_size, created_at, last_used_at`

// DeleteExpiredRecords removes records that violate policy and returns
// the deleted rows so callers can clean up associated image files.
// With only one limit set, that limit alone decides what's expired.
// With both set, a record must fail both at once to be deleted: it
// must be older than the age cutoff *and* fall outside the
// most-recently-used MaxCount rows — the intersection, not the union,
// of the two candidate sets.
func (s *Store) DeleteExpiredRecords(policy RetentionPolicy) ([]Record, error) {
	var (
		query string
		args  []any
	)

	switch {
	case policy.MaxAgeDays > 0 && policy.MaxCount > 0:
		cutoff := s.now() - int64(policy.MaxAgeDays)*24*60*60*1000
		query = `
			SELECT ` + recordColumns + `
			FROM records
			WHERE created_at < ?
			AND id NOT IN (
				SELECT id FROM records ORDER BY last_used_at DESC LIMIT ?
			)`
		args = []any{cutoff, policy.MaxCount}
	case policy.MaxAgeDays > 0:
		cutoff := s.now() - int64(policy.MaxAgeDays)*24*60*60*1000
		query = `SELECT ` + recordColumns + ` FROM records WHERE created_at < ?`
		args = []any{cutoff}
	case policy.MaxCount > 0:
		query = `
			SELECT ` + recordColumns + `
			FROM records
			ORDER BY last_used_at DESC
			LIMIT -1 OFFSET ?`
		args = []any{policy.MaxCount}
	default:
		return nil, nil
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query expired records: %w", err)
	}
	expired, err := scanRecords(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}

	deleted := make([]Record, 0, len(expired))
	for _, r := range expired {
		if err := s.DeleteRecord(r.ID); err != nil {
			return nil, err
		}
		deleted = append(deleted, r)
	}
	return deleted, nil
}

// ClearAll removes every record and returns what was deleted, so
// callers can clean up associated image files.
func (s *Store) ClearAll() ([]Record, error) {
	rows, err := s.db.Query(`
		SELECT id, type, content, content_hash, source_app, thumbnail_path, image_format, image_width, image_height, file_size, created_at, last_used_at
		FROM records ORDER BY last_used_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query clipboard records before clear: %w", err)
	}
	all, err := scanRecords(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}
	if _, err := s.db.Exec(`DELETE FROM records`); err != nil {
		return nil, fmt.Errorf("clear clipboard records: %w", err)
	}
	return all, nil
}

// RecordCount returns the total number of stored records.
func (s *Store) RecordCount() (int64, error) {
	var n int64
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count clipboard records: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var r Record
	var typ int
	err := row.Scan(&r.ID, &typ, &r.Content, &r.ContentHash, &r.SourceApp, &r.ThumbnailPath, &r.ImageFormat, &r.ImageWidth, &r.ImageHeight, &r.FileSize, &r.CreatedAt, &r.LastUsedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan clipboard record: %w", err)
	}
	r.Type = ContentType(typ)
	return &r, nil
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		var r Record
		var typ int
		if err := rows.Scan(&r.ID, &typ, &r.Content, &r.ContentHash, &r.SourceApp, &r.ThumbnailPath, &r.ImageFormat, &r.ImageWidth, &r.ImageHeight, &r.FileSize, &r.CreatedAt, &r.LastUsedAt); err != nil {
			return nil, fmt.Errorf("scan clipboard record: %w", err)
		}
		r.Type = ContentType(typ)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clipboard records: %w", err)
	}
	return records, nil
}

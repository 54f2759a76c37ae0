// Package store persists validated fiducial sets in SQLite.
//
// Each set is one row of the fid_db table with three REAL columns per
// landmark, named after its code (AC_x, AC_y, AC_z, ... LOSF_z).
package store

import (
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/blake2b"

	"github.com/afids/afids-go/pkg/afids"
	"github.com/afids/afids-go/pkg/fcsv"
	"github.com/afids/afids-go/pkg/version"
)

// Set is a stored fiducial set.
type Set struct {
	// ID is a UUID assigned on insert.
	ID string

	// Source is the uploaded file name.
	Source string

	// Digest is the BLAKE2b-256 hex digest of the uploaded bytes.
	Digest string

	CreatedAt time.Time

	Fiducials *fcsv.ParsedFile
}

// Columns returns the coordinates keyed by column name (AC_x, ...).
func (s *Set) Columns() map[string]float64 {
	out := make(map[string]float64, 3*afids.Count)
	for _, r := range s.Fiducials.Records() {
		d, _ := afids.Describe(r.Label)
		out[d.Code+"_x"] = r.X
		out[d.Code+"_y"] = r.Y
		out[d.Code+"_z"] = r.Z
	}
	return out
}

// Digest returns the hex BLAKE2b-256 digest of content.
func Digest(content []byte) string {
	sum := blake2b.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// coordColumns lists the 96 coordinate column names in label order.
var coordColumns = func() []string {
	cols := make([]string, 0, 3*afids.Count)
	for _, d := range afids.All() {
		cols = append(cols, d.Code+"_x", d.Code+"_y", d.Code+"_z")
	}
	return cols
}()

var (
	selectColumns = "id, source, digest, version, created_at, " + strings.Join(coordColumns, ", ")
	insertSQL     = fmt.Sprintf("INSERT INTO fid_db (%s) VALUES (?%s)",
		selectColumns, strings.Repeat(", ?", 4+len(coordColumns)))
)

// Store provides SQLite persistence for fiducial sets.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewStore creates a new store with the given database path.
// Use ":memory:" for an in-memory database.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Every new connection to ":memory:" would see an empty database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	var sb strings.Builder
	sb.WriteString(`
	CREATE TABLE IF NOT EXISTS fid_db (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		source TEXT,
		digest TEXT NOT NULL UNIQUE,
		version TEXT NOT NULL,
		created_at DATETIME NOT NULL`)
	for _, c := range coordColumns {
		fmt.Fprintf(&sb, ",\n\t\t%s REAL NOT NULL", c)
	}
	sb.WriteString("\n\t);\n")

	_, err := s.db.Exec(sb.String())
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores a parsed set. Uploads whose bytes were stored before are not
// duplicated; the existing set is returned with created == false.
func (s *Store) Save(source string, content []byte, pf *fcsv.ParsedFile) (set *Set, created bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	digest := Digest(content)
	existing, err := s.getBy("digest", digest)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	set = &Set{
		ID:        uuid.New().String(),
		Source:    source,
		Digest:    digest,
		CreatedAt: time.Now().UTC(),
		Fiducials: pf,
	}

	args := []any{set.ID, set.Source, set.Digest, pf.Version().String(), set.CreatedAt}
	for _, r := range pf.Records() {
		args = append(args, r.X, r.Y, r.Z)
	}
	if _, err := s.db.Exec(insertSQL, args...); err != nil {
		return nil, false, fmt.Errorf("failed to insert set: %w", err)
	}
	return set, true, nil
}

// Get retrieves a set by ID. It returns nil, nil if there is no such set.
func (s *Store) Get(id string) (*Set, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getBy("id", id)
}

// getBy expects the caller to hold the lock.
func (s *Store) getBy(column, value string) (*Set, error) {
	row := s.db.QueryRow("SELECT "+selectColumns+" FROM fid_db WHERE "+column+" = ?", value)
	set, err := scanSet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return set, err
}

// List retrieves sets in insertion order.
func (s *Store) List(limit, offset int) ([]Set, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.Query("SELECT "+selectColumns+" FROM fid_db ORDER BY seq LIMIT ? OFFSET ?", limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sets []Set
	for rows.Next() {
		set, err := scanSet(rows)
		if err != nil {
			return nil, err
		}
		sets = append(sets, *set)
	}
	return sets, rows.Err()
}

// Count returns the number of stored sets.
func (s *Store) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM fid_db").Scan(&count)
	return count, err
}

// Delete removes a set. It reports whether a set was removed.
func (s *Store) Delete(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM fid_db WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSet(sc scanner) (*Set, error) {
	var (
		set    Set
		source sql.NullString
		ver    string
		coords = make([]float64, len(coordColumns))
	)

	dest := []any{&set.ID, &source, &set.Digest, &ver, &set.CreatedAt}
	for i := range coords {
		dest = append(dest, &coords[i])
	}
	if err := sc.Scan(dest...); err != nil {
		return nil, err
	}
	set.Source = source.String

	v, err := version.Parse(ver)
	if err != nil {
		return nil, fmt.Errorf("set %s: %w", set.ID, err)
	}

	records := make([]fcsv.Record, 0, afids.Count)
	for i, d := range afids.All() {
		records = append(records, fcsv.Record{
			Label: d.Label,
			Desc:  d.Name,
			X:     coords[3*i],
			Y:     coords[3*i+1],
			Z:     coords[3*i+2],
		})
	}
	set.Fiducials, err = fcsv.NewParsedFile(v, records)
	if err != nil {
		return nil, fmt.Errorf("set %s: %w", set.ID, err)
	}
	return &set, nil
}

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/drishyamitra/server/internal/models"
)

// NewSQLiteDB opens a SQLite database and creates the document table.
// Collections keep the same full-overwrite semantics as the JSON files;
// SQLite is an alternate backend, not a relational schema.
func NewSQLiteDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// One connection serializes transactions, so update cycles cannot
	// interleave and fail with a busy database.
	db.SetMaxOpenConns(1)

	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		collection TEXT NOT NULL,
		position INTEGER NOT NULL,
		body TEXT NOT NULL,
		PRIMARY KEY (collection, position)
	);`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// docCollection reads and writes one named collection in the documents
// table. Save replaces the collection inside a transaction; update reads,
// applies the mutation, and replaces within one transaction, so the
// read-modify-write cycle cannot lose a concurrent write.
type docCollection[T any] struct {
	db   *sql.DB
	name string
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

func (c docCollection[T]) load(ctx context.Context) ([]T, error) {
	return c.loadFrom(ctx, c.db)
}

func (c docCollection[T]) loadFrom(ctx context.Context, q querier) ([]T, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT body FROM documents WHERE collection = ? ORDER BY position", c.name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		var item T
		if err := json.Unmarshal([]byte(body), &item); err != nil {
			return nil, fmt.Errorf("parse %s document: %w", c.name, err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (c docCollection[T]) save(ctx context.Context, items []T) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := c.replace(ctx, tx, items); err != nil {
		return err
	}
	return tx.Commit()
}

func (c docCollection[T]) update(ctx context.Context, fn func(items []T) ([]T, error)) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	items, err := c.loadFrom(ctx, tx)
	if err != nil {
		return err
	}
	items, err = fn(items)
	if err != nil {
		return err
	}
	if err := c.replace(ctx, tx, items); err != nil {
		return err
	}
	return tx.Commit()
}

func (c docCollection[T]) replace(ctx context.Context, tx *sql.Tx, items []T) error {
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM documents WHERE collection = ?", c.name); err != nil {
		return err
	}

	for i, item := range items {
		body, err := json.Marshal(item)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO documents (collection, position, body) VALUES (?, ?, ?)",
			c.name, i, string(body)); err != nil {
			return err
		}
	}
	return nil
}

// SQLitePhotoStore is the SQLite-backed photo collection
type SQLitePhotoStore struct {
	col docCollection[*models.Photo]
}

// NewSQLitePhotoStore creates a SQLite photo store
func NewSQLitePhotoStore(db *sql.DB) *SQLitePhotoStore {
	return &SQLitePhotoStore{col: docCollection[*models.Photo]{db: db, name: "photos"}}
}

func (s *SQLitePhotoStore) Load(ctx context.Context) ([]*models.Photo, error) {
	return s.col.load(ctx)
}

func (s *SQLitePhotoStore) Save(ctx context.Context, photos []*models.Photo) error {
	return s.col.save(ctx, photos)
}

func (s *SQLitePhotoStore) Update(ctx context.Context, fn func(photos []*models.Photo) ([]*models.Photo, error)) error {
	return s.col.update(ctx, fn)
}

// SQLiteContactStore is the SQLite-backed contact collection
type SQLiteContactStore struct {
	col docCollection[*models.Contact]
}

// NewSQLiteContactStore creates a SQLite contact store
func NewSQLiteContactStore(db *sql.DB) *SQLiteContactStore {
	return &SQLiteContactStore{col: docCollection[*models.Contact]{db: db, name: "contacts"}}
}

func (s *SQLiteContactStore) Load(ctx context.Context) ([]*models.Contact, error) {
	return s.col.load(ctx)
}

func (s *SQLiteContactStore) Save(ctx context.Context, contacts []*models.Contact) error {
	return s.col.save(ctx, contacts)
}

func (s *SQLiteContactStore) Update(ctx context.Context, fn func(contacts []*models.Contact) ([]*models.Contact, error)) error {
	return s.col.update(ctx, fn)
}

// SQLiteShareStore is the SQLite-backed share collection
type SQLiteShareStore struct {
	col docCollection[*models.ShareRecord]
}

// NewSQLiteShareStore creates a SQLite share store
func NewSQLiteShareStore(db *sql.DB) *SQLiteShareStore {
	return &SQLiteShareStore{col: docCollection[*models.ShareRecord]{db: db, name: "shares"}}
}

func (s *SQLiteShareStore) Load(ctx context.Context) ([]*models.ShareRecord, error) {
	return s.col.load(ctx)
}

func (s *SQLiteShareStore) Save(ctx context.Context, shares []*models.ShareRecord) error {
	return s.col.save(ctx, shares)
}

func (s *SQLiteShareStore) Update(ctx context.Context, fn func(shares []*models.ShareRecord) ([]*models.ShareRecord, error)) error {
	return s.col.update(ctx, fn)
}

// SQLiteProfileStore is the SQLite-backed owner profile
type SQLiteProfileStore struct {
	col docCollection[*models.Profile]
}

// NewSQLiteProfileStore creates a SQLite profile store
func NewSQLiteProfileStore(db *sql.DB) *SQLiteProfileStore {
	return &SQLiteProfileStore{col: docCollection[*models.Profile]{db: db, name: "profile"}}
}

func (s *SQLiteProfileStore) Load(ctx context.Context) (*models.Profile, error) {
	items, err := s.col.load(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 || items[0].Name == "" {
		return models.DefaultProfile(), nil
	}
	return items[0], nil
}

func (s *SQLiteProfileStore) Save(ctx context.Context, profile *models.Profile) error {
	return s.col.save(ctx, []*models.Profile{profile})
}

// NewSQLiteStores creates the full set of SQLite record stores
func NewSQLiteStores(db *sql.DB) Stores {
	return Stores{
		Photos:   NewSQLitePhotoStore(db),
		Contacts: NewSQLiteContactStore(db),
		Shares:   NewSQLiteShareStore(db),
		Profile:  NewSQLiteProfileStore(db),
	}
}

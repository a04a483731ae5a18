package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-shaker/catalog"
)

// Store is the single-table relational cache holding one row per ordinal.
// Its lifetime is scoped to a single run: populated to completion during
// ingestion, then read arbitrarily many times by the renderer. Rows are
// never updated or deleted.
type Store struct {
	db *bun.DB
}

// New wraps an existing bun handle. The caller keeps ownership of the
// underlying connection.
func New(db *bun.DB) *Store {
	return &Store{db: db}
}

// Open builds a SQLite-backed store for the given strategy. Memory stores use
// a shared cache with a single connection so every reader observes the same
// database.
func Open(strategy Strategy) (*Store, error) {
	sqlDB, err := sql.Open("sqlite3", strategy.DSN())
	if err != nil {
		return nil, fmt.Errorf("store: open %q: %w", strategy, err)
	}

	db := bun.NewDB(sqlDB, sqlitedialect.New())
	if strategy.IsMemory() {
		db.SetMaxOpenConns(1)
	}

	return New(db), nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Init creates the entries table when it does not exist yet.
func (s *Store) Init(ctx context.Context) error {
	if _, err := s.db.NewCreateTable().
		Model((*catalog.Record)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("store: create schema: %w", err)
	}
	return nil
}

// Insert adds a record. A colliding ordinal is a hard failure, not an
// upsert, and leaves the store unchanged.
func (s *Store) Insert(ctx context.Context, record *catalog.Record) error {
	_, err := s.db.NewInsert().Model(record).Exec(ctx)
	if err == nil {
		return nil
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return &catalog.DuplicateOrdinalError{Ordinal: record.Ordinal}
	}
	return fmt.Errorf("%w: insert %q: %v", catalog.ErrStoreCorruption, record.Ordinal, err)
}

// Get performs a point lookup. Absence is not an error: a missing record
// comes back as (nil, nil).
func (s *Store) Get(ctx context.Context, ordinal string) (*catalog.Record, error) {
	record := new(catalog.Record)
	err := s.db.NewSelect().
		Model(record).
		Where("?TableAlias.ordinal = ?", ordinal).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: get %q: %v", catalog.ErrStoreCorruption, ordinal, err)
	}
	return record, nil
}

// ChildrenOf returns every record whose parent equals the given ordinal, in
// ascending ordinal order. An empty slice is the renderer's leaf signal.
func (s *Store) ChildrenOf(ctx context.Context, ordinal string) ([]*catalog.Record, error) {
	var records []*catalog.Record
	err := s.db.NewSelect().
		Model(&records).
		Where("?TableAlias.parent IS ?", ordinal).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: children of %q: %v", catalog.ErrStoreCorruption, ordinal, err)
	}
	sortRecords(records)
	return records, nil
}

// Sections returns the top-level records (parent IS NULL), in ascending
// ordinal order. These are the traversal roots.
func (s *Store) Sections(ctx context.Context) ([]*catalog.Record, error) {
	var records []*catalog.Record
	err := s.db.NewSelect().
		Model(&records).
		Where("?TableAlias.parent IS NULL").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: sections: %v", catalog.ErrStoreCorruption, err)
	}
	sortRecords(records)
	return records, nil
}

// SiblingsOf resolves the previous and next neighbours of the given ordinal.
// Either result may be nil; existence is decided purely by store lookup of
// the arithmetically derived keys. It fails only when the ordinal itself
// does not parse.
func (s *Store) SiblingsOf(ctx context.Context, ordinal string) (prev, next *catalog.Record, err error) {
	prevOrdinal, err := catalog.Sibling(ordinal, -1)
	if err != nil {
		return nil, nil, err
	}
	nextOrdinal, err := catalog.Sibling(ordinal, 1)
	if err != nil {
		return nil, nil, err
	}

	if prev, err = s.Get(ctx, prevOrdinal); err != nil {
		return nil, nil, err
	}
	if next, err = s.Get(ctx, nextOrdinal); err != nil {
		return nil, nil, err
	}
	return prev, next, nil
}

// Count reports the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	count, err := s.db.NewSelect().
		Model((*catalog.Record)(nil)).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: count: %v", catalog.ErrStoreCorruption, err)
	}
	return count, nil
}

// sortRecords orders query results numerically per ordinal segment. String
// ordering in SQL would put "1.10" before "1.2", so the comparison happens
// here instead.
func sortRecords(records []*catalog.Record) {
	slices.SortFunc(records, func(a, b *catalog.Record) int {
		return catalog.Compare(a.Ordinal, b.Ordinal)
	})
}

// Package docstore is an embedded document store over SQLite. Each
// collection is a table of JSON documents keyed by a server-assigned id,
// with server-maintained createdAt/updatedAt timestamps, equality filters
// and ordering pushed down via json_extract, merge-style partial updates,
// and a per-collection snapshot subscription channel.
package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/Bhaskar125/gym-management-system/internal/adapters/storage"
)

// Document is a stored record: id plus raw JSON body and the
// server-assigned timestamps.
type Document struct {
	ID        string
	Data      []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Unmarshal decodes the document body into v.
func (d Document) Unmarshal(v any) error {
	return json.Unmarshal(d.Data, v)
}

// Filter is an equality condition on a top-level JSON field.
type Filter struct {
	Field string
	Value any
}

// ListOptions carries filtering and ordering for List. Ordering is
// evaluated by SQLite, not client-side.
type ListOptions struct {
	Filters    []Filter
	OrderBy    string
	Descending bool
}

// DB is a handle to the document store.
type DB struct {
	sql storage.SQLDB
	hub *hub

	// Injection points for tests.
	now   func() time.Time
	newID func() string
}

// New wraps a SQL connection as a document store.
// PRE: storage.InitDB has been run against the connection
func New(sqldb storage.SQLDB) *DB {
	return &DB{
		sql:   sqldb,
		hub:   newHub(),
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
}

var fieldNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

func checkCollection(op, name string) error {
	if !storage.IsCollection(name) {
		return storage.NewError(storage.KindUnknown, op, fmt.Errorf("unknown collection %q", name))
	}
	return nil
}

func checkField(op, name string) error {
	if !fieldNamePattern.MatchString(name) {
		return storage.NewError(storage.KindUnknown, op, fmt.Errorf("bad field name %q", name))
	}
	return nil
}

// Insert stores a new document and returns it with the assigned id and
// timestamps.
// PRE: data is a JSON object
// POST: Document is persisted; collection watchers receive a new snapshot
func (db *DB) Insert(ctx context.Context, collection string, data []byte) (Document, error) {
	op := "insert " + collection
	if err := checkCollection(op, collection); err != nil {
		return Document{}, err
	}
	if !json.Valid(data) {
		return Document{}, storage.NewError(storage.KindUnknown, op, fmt.Errorf("document is not valid JSON"))
	}

	now := db.now().UTC()
	doc := Document{ID: db.newID(), Data: data, CreatedAt: now, UpdatedAt: now}

	unlock := db.hub.lock(collection)
	defer unlock()

	query := fmt.Sprintf("INSERT INTO %q (id, doc, created_at, updated_at) VALUES (?, ?, ?, ?)", collection)
	_, err := db.sql.ExecContext(ctx, query, doc.ID, string(doc.Data), now.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano))
	if err != nil {
		return Document{}, storage.WrapErr(op, err)
	}
	db.publishLocked(collection)
	return doc, nil
}

// Get retrieves a document by id.
// POST: Returns (doc, true, nil) when present, (zero, false, nil) when
// absent. Absence is not an error.
func (db *DB) Get(ctx context.Context, collection, id string) (Document, bool, error) {
	op := "get " + collection
	if err := checkCollection(op, collection); err != nil {
		return Document{}, false, err
	}

	query := fmt.Sprintf("SELECT id, doc, created_at, updated_at FROM %q WHERE id = ?", collection)
	doc, err := scanDocument(db.sql.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return Document{}, false, nil
	}
	if err != nil {
		return Document{}, false, storage.WrapErr(op, err)
	}
	return doc, true, nil
}

// List returns documents matching the options. With no ordering, documents
// come back in insertion order.
func (db *DB) List(ctx context.Context, collection string, opts ListOptions) ([]Document, error) {
	op := "list " + collection
	if err := checkCollection(op, collection); err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT id, doc, created_at, updated_at FROM %q", collection)
	var args []any
	for i, f := range opts.Filters {
		if err := checkField(op, f.Field); err != nil {
			return nil, err
		}
		clause := " AND "
		if i == 0 {
			clause = " WHERE "
		}
		query += clause + fmt.Sprintf("json_extract(doc, '$.%s') = ?", f.Field)
		args = append(args, filterArg(f.Value))
	}
	if opts.OrderBy != "" {
		if err := checkField(op, opts.OrderBy); err != nil {
			return nil, err
		}
		query += fmt.Sprintf(" ORDER BY json_extract(doc, '$.%s')", opts.OrderBy)
		if opts.Descending {
			query += " DESC"
		}
	} else {
		query += " ORDER BY rowid"
	}

	rows, err := db.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storage.WrapErr(op, err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		doc, err := scanDocumentRows(rows)
		if err != nil {
			return nil, storage.WrapErr(op, err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, storage.WrapErr(op, err)
	}
	return docs, nil
}

// Patch merges the given fields into an existing document and refreshes
// updatedAt. A nil field value removes the key from the document, which is
// how optional fields are cleared without storing null.
// POST: Only the given fields change; watchers receive a new snapshot
func (db *DB) Patch(ctx context.Context, collection, id string, fields map[string]any) (Document, error) {
	op := "patch " + collection
	if err := checkCollection(op, collection); err != nil {
		return Document{}, err
	}

	unlock := db.hub.lock(collection)
	defer unlock()

	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return Document{}, storage.WrapErr(op, err)
	}
	defer tx.Rollback()

	query := fmt.Sprintf("SELECT id, doc, created_at, updated_at FROM %q WHERE id = ?", collection)
	doc, err := scanDocument(tx.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return Document{}, storage.NewError(storage.KindNotFound, op, fmt.Errorf("id %q", id))
	}
	if err != nil {
		return Document{}, storage.WrapErr(op, err)
	}

	var body map[string]any
	if err := json.Unmarshal(doc.Data, &body); err != nil {
		return Document{}, storage.WrapErr(op, err)
	}
	for k, v := range fields {
		if v == nil {
			delete(body, k)
			continue
		}
		body[k] = v
	}
	merged, err := json.Marshal(body)
	if err != nil {
		return Document{}, storage.WrapErr(op, err)
	}

	now := db.now().UTC()
	update := fmt.Sprintf("UPDATE %q SET doc = ?, updated_at = ? WHERE id = ?", collection)
	if _, err := tx.ExecContext(ctx, update, string(merged), now.Format(time.RFC3339Nano), id); err != nil {
		return Document{}, storage.WrapErr(op, err)
	}
	if err := tx.Commit(); err != nil {
		return Document{}, storage.WrapErr(op, err)
	}

	doc.Data = merged
	doc.UpdatedAt = now
	db.publishLocked(collection)
	return doc, nil
}

// Delete removes a document. Deleting an id that does not exist is not an
// error.
// POST: Document is absent; watchers receive a snapshot only if a row was
// actually removed
func (db *DB) Delete(ctx context.Context, collection, id string) error {
	op := "delete " + collection
	if err := checkCollection(op, collection); err != nil {
		return err
	}

	unlock := db.hub.lock(collection)
	defer unlock()

	query := fmt.Sprintf("DELETE FROM %q WHERE id = ?", collection)
	res, err := db.sql.ExecContext(ctx, query, id)
	if err != nil {
		return storage.WrapErr(op, err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		db.publishLocked(collection)
	}
	return nil
}

// publishLocked re-reads the collection and pushes the snapshot to every
// watcher. Caller must hold the collection lock so snapshots arrive in
// commit order. The read uses a background context: a caller's expired
// deadline must not starve other subscribers of the committed write.
func (db *DB) publishLocked(collection string) {
	if !db.hub.hasWatchers(collection) {
		return
	}
	docs, err := db.List(context.Background(), collection, ListOptions{})
	if err != nil {
		return
	}
	db.hub.publish(collection, docs)
}

// filterArg converts a filter value to something SQLite can compare with
// json_extract output. Booleans become 1/0 to match JSON1 semantics.
func filterArg(v any) any {
	if b, ok := v.(bool); ok {
		if b {
			return 1
		}
		return 0
	}
	return v
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row *sql.Row) (Document, error) {
	return scanDocumentRows(row)
}

func scanDocumentRows(row rowScanner) (Document, error) {
	var doc Document
	var body, createdAt, updatedAt string
	if err := row.Scan(&doc.ID, &body, &createdAt, &updatedAt); err != nil {
		return Document{}, err
	}
	doc.Data = []byte(body)
	doc.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	doc.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	return doc, nil
}

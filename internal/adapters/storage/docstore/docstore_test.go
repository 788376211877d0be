package docstore_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Bhaskar125/gym-management-system/internal/adapters/storage"
	"github.com/Bhaskar125/gym-management-system/internal/adapters/storage/docstore"
)

func newTestDB(t *testing.T) *docstore.DB {
	t.Helper()
	sqldb, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// A second pooled connection would see its own empty in-memory database.
	sqldb.SetMaxOpenConns(1)
	t.Cleanup(func() { sqldb.Close() })
	if err := storage.InitDB(sqldb); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return docstore.New(sqldb)
}

func mustInsert(t *testing.T, db *docstore.DB, collection string, v any) docstore.Document {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	doc, err := db.Insert(context.Background(), collection, data)
	if err != nil {
		t.Fatalf("insert into %s: %v", collection, err)
	}
	return doc
}

// TestInsertGetRoundTrip verifies a created document reads back with the
// same body plus the assigned id and timestamps.
func TestInsertGetRoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	in := map[string]any{"name": "Basic Plan", "price": 50.0, "duration": "1 month"}
	created := mustInsert(t, db, storage.CollectionPackages, in)
	if created.ID == "" {
		t.Fatal("insert assigned empty id")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatal("insert did not assign timestamps")
	}

	got, found, err := db.Get(ctx, storage.CollectionPackages, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !found {
		t.Fatal("get: found = false, want true")
	}
	var out map[string]any
	if err := got.Unmarshal(&out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out["name"] != "Basic Plan" || out["price"] != 50.0 || out["duration"] != "1 month" {
		t.Fatalf("round trip body = %v, want original fields", out)
	}
}

// TestGetMissingIsNotError verifies a point lookup of a nonexistent id
// returns the not-found signal, not an error.
func TestGetMissingIsNotError(t *testing.T) {
	db := newTestDB(t)

	_, found, err := db.Get(context.Background(), storage.CollectionMembers, "nonexistent")
	if err != nil {
		t.Fatalf("get: error = %v, want nil", err)
	}
	if found {
		t.Fatal("get: found = true, want false")
	}
}

// TestPatchMergesFields verifies partial update: untouched fields keep
// their values, patched fields change, and updatedAt is refreshed.
func TestPatchMergesFields(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	created := mustInsert(t, db, storage.CollectionMembers, map[string]any{
		"name": "John", "email": "john@x.com", "phone": "555",
	})

	patched, err := db.Patch(ctx, storage.CollectionMembers, created.ID, map[string]any{"phone": "777"})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}

	var out map[string]any
	if err := patched.Unmarshal(&out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out["name"] != "John" || out["email"] != "john@x.com" {
		t.Fatalf("untouched fields changed: %v", out)
	}
	if out["phone"] != "777" {
		t.Fatalf("phone = %v, want 777", out["phone"])
	}
	if patched.UpdatedAt.Before(created.UpdatedAt) {
		t.Fatal("updatedAt not refreshed")
	}
}

// TestPatchRemovesFieldOnNil verifies a nil patch value deletes the key
// instead of storing null.
func TestPatchRemovesFieldOnNil(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	created := mustInsert(t, db, storage.CollectionMembers, map[string]any{
		"name": "John", "packageId": "basic",
	})

	patched, err := db.Patch(ctx, storage.CollectionMembers, created.ID, map[string]any{"packageId": nil})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	var out map[string]any
	if err := patched.Unmarshal(&out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, present := out["packageId"]; present {
		t.Fatalf("packageId still present after removal: %v", out)
	}
}

// TestPatchMissingIsNotFound verifies patching a nonexistent id fails with
// a NotFound storage error.
func TestPatchMissingIsNotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Patch(context.Background(), storage.CollectionBills, "nonexistent", map[string]any{"status": "Paid"})
	if err == nil {
		t.Fatal("patch missing id: error = nil, want NotFound")
	}
	if !storage.IsNotFound(err) {
		t.Fatalf("patch missing id: kind = %v, want not_found", storage.KindOf(err))
	}
}

// TestDeleteIsIdempotent verifies deleting twice never errors.
func TestDeleteIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	created := mustInsert(t, db, storage.CollectionPackages, map[string]any{"name": "Basic"})

	if err := db.Delete(ctx, storage.CollectionPackages, created.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := db.Delete(ctx, storage.CollectionPackages, created.ID); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if _, found, _ := db.Get(ctx, storage.CollectionPackages, created.ID); found {
		t.Fatal("document still present after delete")
	}
}

// TestListFilterAndOrder verifies equality filters and server-side
// ordering on a JSON field.
func TestListFilterAndOrder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	mustInsert(t, db, storage.CollectionBills, map[string]any{"memberId": "m1", "month": "2024-01", "status": "Paid"})
	mustInsert(t, db, storage.CollectionBills, map[string]any{"memberId": "m1", "month": "2024-03", "status": "Pending"})
	mustInsert(t, db, storage.CollectionBills, map[string]any{"memberId": "m2", "month": "2024-02", "status": "Pending"})

	docs, err := db.List(ctx, storage.CollectionBills, docstore.ListOptions{
		Filters:    []docstore.Filter{{Field: "memberId", Value: "m1"}},
		OrderBy:    "month",
		Descending: true,
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("len = %d, want 2", len(docs))
	}
	var first, second map[string]any
	docs[0].Unmarshal(&first)
	docs[1].Unmarshal(&second)
	if first["month"] != "2024-03" || second["month"] != "2024-01" {
		t.Fatalf("order = %v, %v; want 2024-03 then 2024-01", first["month"], second["month"])
	}
}

// TestListBoolFilter verifies boolean equality filters match JSON1's 1/0
// representation.
func TestListBoolFilter(t *testing.T) {
	db := newTestDB(t)

	mustInsert(t, db, storage.CollectionDietPlans, map[string]any{"name": "B", "active": true})
	mustInsert(t, db, storage.CollectionDietPlans, map[string]any{"name": "A", "active": true})
	mustInsert(t, db, storage.CollectionDietPlans, map[string]any{"name": "C", "active": false})

	docs, err := db.List(context.Background(), storage.CollectionDietPlans, docstore.ListOptions{
		Filters: []docstore.Filter{{Field: "active", Value: true}},
		OrderBy: "name",
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("len = %d, want 2", len(docs))
	}
	var first map[string]any
	docs[0].Unmarshal(&first)
	if first["name"] != "A" {
		t.Fatalf("first = %v, want A (name asc)", first["name"])
	}
}

// TestUnknownCollection verifies operations reject collections outside the
// schema instead of interpolating them into SQL.
func TestUnknownCollection(t *testing.T) {
	db := newTestDB(t)

	if _, err := db.Insert(context.Background(), "evil\"; DROP TABLE members; --", []byte(`{}`)); err == nil {
		t.Fatal("insert into unknown collection succeeded")
	}
}

func recvSnapshot(t *testing.T, ch <-chan []docstore.Document) []docstore.Document {
	t.Helper()
	select {
	case docs, ok := <-ch:
		if !ok {
			t.Fatal("snapshot channel closed")
		}
		return docs
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
	}
	return nil
}

// TestWatchDeliversSnapshots verifies the subscription fires immediately
// with current state, again after each write, and stops after cancel.
func TestWatchDeliversSnapshots(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	mustInsert(t, db, storage.CollectionMembers, map[string]any{"name": "John"})

	ch, cancel, err := db.Watch(ctx, storage.CollectionMembers)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer cancel()

	initial := recvSnapshot(t, ch)
	if len(initial) != 1 {
		t.Fatalf("initial snapshot len = %d, want 1", len(initial))
	}

	created := mustInsert(t, db, storage.CollectionMembers, map[string]any{"name": "Jane"})
	after := recvSnapshot(t, ch)
	if len(after) != 2 {
		t.Fatalf("snapshot after insert len = %d, want 2", len(after))
	}
	seen := false
	for _, d := range after {
		if d.ID == created.ID {
			seen = true
		}
	}
	if !seen {
		t.Fatal("snapshot after insert missing the new document")
	}

	cancel()
	cancel() // safe to call twice

	mustInsert(t, db, storage.CollectionMembers, map[string]any{"name": "Mike"})
	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("received snapshot after unsubscribe")
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("channel not closed after cancel")
	}
}

// TestWatchScopedToCollection verifies writes to other collections do not
// wake a watcher.
func TestWatchScopedToCollection(t *testing.T) {
	db := newTestDB(t)

	ch, cancel, err := db.Watch(context.Background(), storage.CollectionDietPlans)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer cancel()
	recvSnapshot(t, ch) // drain initial

	mustInsert(t, db, storage.CollectionMembers, map[string]any{"name": "John"})
	select {
	case docs := <-ch:
		t.Fatalf("unexpected snapshot %v for foreign-collection write", docs)
	case <-time.After(100 * time.Millisecond):
	}
}

// TestWrapErrTimeout verifies context deadline failures classify as
// Timeout at the storage boundary.
func TestWrapErrTimeout(t *testing.T) {
	err := storage.WrapErr("get members", context.DeadlineExceeded)
	if err.Kind != storage.KindTimeout {
		t.Fatalf("kind = %v, want timeout", err.Kind)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatal("wrapped cause lost")
	}
}

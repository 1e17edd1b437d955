package history_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"cropall/internal/cropper"
	"cropall/internal/history"
	"cropall/internal/testsupport"
)

func openStore(t *testing.T) *history.Store {
	t.Helper()
	return testsupport.MustOpenStore(t, testsupport.NewConfig(t))
}

func TestRecordAndList(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	for i, name := range []string{"/p/a.jpg", "/p/b.jpg", "/p/a.jpg"} {
		entry, err := store.Record(ctx, history.Entry{
			SessionID:    "s1",
			InputPath:    name,
			OutputPath:   "/p/crops/" + filepath.Base(name),
			Rect:         cropper.Rect{X0: i, Y0: 1, X1: 10 + i, Y1: 20},
			SourceWidth:  100,
			SourceHeight: 80,
		})
		if err != nil {
			t.Fatalf("Record returned error: %v", err)
		}
		if entry.ID == 0 || entry.CreatedAt.IsZero() {
			t.Fatalf("expected id and timestamp, got %+v", entry)
		}
	}

	all, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(all))
	}
	if all[0].Rect.X0 != 2 || all[2].Rect.X0 != 0 {
		t.Fatalf("expected newest first, got %+v", all)
	}

	limited, err := store.List(ctx, 1)
	if err != nil || len(limited) != 1 {
		t.Fatalf("expected one entry with limit, got %d (%v)", len(limited), err)
	}

	last, ok, err := store.Last(ctx, "/p/a.jpg")
	if err != nil || !ok {
		t.Fatalf("Last returned ok=%v err=%v", ok, err)
	}
	if last.Rect != (cropper.Rect{X0: 2, Y0: 1, X1: 12, Y1: 20}) {
		t.Fatalf("unexpected last rect %+v", last.Rect)
	}
	if _, ok, _ := store.Last(ctx, "/p/missing.jpg"); ok {
		t.Fatal("expected no entry for unknown input")
	}
}

func TestReopenKeepsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := history.Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if _, err := store.Record(context.Background(), history.Entry{SessionID: "s", InputPath: "a", OutputPath: "b"}); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	_ = store.Close()

	reopened, err := history.Open(path)
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	defer reopened.Close()
	entries, err := reopened.List(context.Background(), 0)
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected 1 entry after reopen, got %d (%v)", len(entries), err)
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := history.Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	_ = store.Close()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open raw db: %v", err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	_ = db.Close()

	if _, err := history.Open(path); !errors.Is(err, history.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

package repository

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	// every pooled connection would get its own in-memory database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if err := Migrate(context.Background(), db); err != nil {
		t.Fatal(err)
	}
	return db
}

func TestSettingsRepositoryDefaultsToMissing(t *testing.T) {
	r := NewSettingsRepository(openTestDB(t))

	value, ok, err := r.Get(context.Background(), WebhookURLKey)
	if err != nil {
		t.Fatal(err)
	}
	if ok || value != "" {
		t.Errorf("got %q, %v; want empty, false", value, ok)
	}
}

func TestSettingsRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	r := NewSettingsRepository(db)

	if err := r.Set(ctx, WebhookURLKey, "https://hook.make.com/first"); err != nil {
		t.Fatal(err)
	}
	if err := r.Set(ctx, WebhookURLKey, "https://hook.make.com/second"); err != nil {
		t.Fatal(err)
	}

	// a fresh repository over the same database sees the last write
	value, ok, err := NewSettingsRepository(db).Get(ctx, WebhookURLKey)
	if err != nil {
		t.Fatal(err)
	}
	if !ok || value != "https://hook.make.com/second" {
		t.Errorf("got %q, %v", value, ok)
	}

	var rows int
	if err := db.QueryRow(`SELECT COUNT(*) FROM settings`).Scan(&rows); err != nil {
		t.Fatal(err)
	}
	if rows != 1 {
		t.Errorf("got %d rows, want 1", rows)
	}
}

func TestMigrateIsRepeatable(t *testing.T) {
	db := openTestDB(t)
	if err := Migrate(context.Background(), db); err != nil {
		t.Errorf("second migrate: %v", err)
	}
}

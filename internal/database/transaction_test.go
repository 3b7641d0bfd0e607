package database

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"
)

func openTestDB(t *testing.T) Database {
	t.Helper()
	ctx := context.Background()
	db, err := NewDatabase(ctx, "sqlite:///:memory:")
	if err != nil {
		t.Fatalf("NewDatabase: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := db.Session(ctx).Exec("CREATE TABLE test_items (id INTEGER PRIMARY KEY, name TEXT)").Error; err != nil {
		t.Fatalf("create table: %v", err)
	}
	return db
}

func countItems(t *testing.T, db Database) int64 {
	t.Helper()
	var count int64
	if err := db.Session(context.Background()).Raw("SELECT COUNT(*) FROM test_items").Scan(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return count
}

func TestWithTransaction_CommitsOnSuccess(t *testing.T) {
	db := openTestDB(t)

	err := WithTransaction(context.Background(), db, func(tx *gorm.DB) error {
		return tx.Exec("INSERT INTO test_items (name) VALUES (?)", "item1").Error
	})
	if err != nil {
		t.Fatalf("WithTransaction: %v", err)
	}

	if got := countItems(t, db); got != 1 {
		t.Errorf("expected count 1, got %d", got)
	}
}

func TestWithTransaction_RollsBackOnError(t *testing.T) {
	db := openTestDB(t)
	boom := errors.New("boom")

	err := WithTransaction(context.Background(), db, func(tx *gorm.DB) error {
		if err := tx.Exec("INSERT INTO test_items (name) VALUES (?)", "item1").Error; err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the callback error, got %v", err)
	}

	if got := countItems(t, db); got != 0 {
		t.Errorf("expected count 0 after rollback, got %d", got)
	}
}

func TestWithTransaction_ErrorPassesThroughUnwrapped(t *testing.T) {
	db := openTestDB(t)

	sentinel := errors.New("sentinel")
	err := WithTransaction(context.Background(), db, func(tx *gorm.DB) error {
		return sentinel
	})
	if err != sentinel {
		t.Fatalf("expected the exact callback error, got %v", err)
	}
}

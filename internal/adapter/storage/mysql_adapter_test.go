package storage

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

func mysqlDSN() string {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(localhost:3306)/storefront?parseTime=true"
	}
	return dsn
}

func getMySQLDB(t *testing.T) *sql.DB {
	db, err := sql.Open("mysql", mysqlDSN())
	if err != nil {
		t.Skipf("MySQL not available: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("MySQL not available: %v", err)
	}

	if err := MigrateMySQL(mysqlDSN()); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	return db
}

func TestMySQLGet_Missing(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	adapter := NewMySQLAdapter(db)

	db.ExecContext(ctx, `DELETE FROM collections WHERE name = 'test-missing'`)

	data, err := adapter.Get(ctx, "test-missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data != nil {
		t.Errorf("expected nil for missing key, got %q", data)
	}
}

func TestMySQLSet_Upsert(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	adapter := NewMySQLAdapter(db)
	key := "test-upsert"

	if err := adapter.Set(ctx, key, []byte(`[{"id":"a"}]`)); err != nil {
		t.Fatalf("first Set failed: %v", err)
	}
	if err := adapter.Set(ctx, key, []byte(`[]`)); err != nil {
		t.Fatalf("second Set failed: %v", err)
	}

	data, err := adapter.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(data) != `[]` {
		t.Errorf("expected overwritten value, got %q", data)
	}

	// Only one row per key
	var count int
	db.QueryRowContext(ctx, `SELECT COUNT(*) FROM collections WHERE name = ?`, key).Scan(&count)
	if count != 1 {
		t.Errorf("expected 1 row, got %d", count)
	}

	// Cleanup
	db.ExecContext(ctx, `DELETE FROM collections WHERE name = ?`, key)
}

func TestMigrateMySQL_Idempotent(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	if err := MigrateMySQL(mysqlDSN()); err != nil {
		t.Errorf("second migration should be a no-op, got: %v", err)
	}
}

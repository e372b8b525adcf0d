package migration

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestLoadMigrations_OrdersAndFilters(t *testing.T) {
	fsys := fstest.MapFS{
		"V10__later.sql":    {Data: []byte("SELECT 10;")},
		"V2__second.sql":    {Data: []byte("  SELECT 2;\n")},
		"README.md":         {Data: []byte("not a migration")},
		"V1__first.sql":     {Data: []byte("SELECT 1;")},
		"v3__lowercase.sql": {Data: []byte("SELECT 3;")},
	}

	migs, err := loadMigrations(fsys)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(migs) != 3 {
		t.Fatalf("expected 3 migrations, got %d", len(migs))
	}
	for i, want := range []int64{1, 2, 10} {
		if migs[i].Version != want {
			t.Fatalf("index %d: expected version %d, got %d", i, want, migs[i].Version)
		}
	}
	if migs[1].SQL != "SELECT 2;" || migs[1].Name != "second" {
		t.Fatalf("unexpected migration: %+v", migs[1])
	}
	if migs[0].Checksum == migs[1].Checksum {
		t.Fatalf("distinct migrations should have distinct checksums")
	}
}

func TestLoadMigrations_Rejects(t *testing.T) {
	if _, err := loadMigrations(fstest.MapFS{"V1__a.sql": {Data: []byte("  ")}}); err == nil {
		t.Fatalf("expected error for empty migration")
	}
	dup := fstest.MapFS{
		"V1__a.sql": {Data: []byte("SELECT 1;")},
		"V1__b.sql": {Data: []byte("SELECT 2;")},
	}
	if _, err := loadMigrations(dup); err == nil {
		t.Fatalf("expected error for duplicate versions")
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	migs, err := loadMigrations(Embedded())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(migs) < 2 {
		t.Fatalf("expected the embedded migrations, got %d", len(migs))
	}

	var all strings.Builder
	for _, m := range migs {
		all.WriteString(m.SQL)
	}
	for _, want := range []string{
		"CREATE TABLE IF NOT EXISTS users",
		"CREATE TABLE IF NOT EXISTS chapter_tests",
		"CREATE TABLE IF NOT EXISTS profession_descriptions",
		"FUNCTION add_profession_test_question",
	} {
		if !strings.Contains(all.String(), want) {
			t.Fatalf("embedded migrations missing %q", want)
		}
	}
}

package repo

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"github.com/reblaw/go-law-proxy/internal/domain"
)

// newTestDB opens a fresh SQLite store in a temp dir and seeds a few rows.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := OpenSQLite(filepath.Join(t.TempDir(), "laws.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}

	rows := []domain.Article{
		{Code: "حقوق_مدنی", ID: 10, Text: "قراردادهای خصوصی نافذ است."},
		{Code: "حقوق_مدنی", ID: 11, Text: "متن ماده یازده."},
		{Code: "حقوق_جزا", ID: 27, Text: "مدت حبس از روز شروع محاسبه می‌شود."},
	}
	if err := db.Create(&rows).Error; err != nil {
		t.Fatalf("seed articles: %v", err)
	}
	return db
}

func TestGetArticleText(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	text, err := GetArticleText(ctx, db, "حقوق_مدنی", 10)
	if err != nil {
		t.Fatalf("GetArticleText: %v", err)
	}
	if text != "قراردادهای خصوصی نافذ است." {
		t.Fatalf("text = %q", text)
	}
}

func TestGetArticleText_Miss(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if _, err := GetArticleText(ctx, db, "حقوق_مدنی", 9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if _, err := GetArticleText(ctx, db, "ناشناخته", 10); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestLawCodeExists(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	ok, err := LawCodeExists(ctx, db, "حقوق_جزا")
	if err != nil {
		t.Fatalf("LawCodeExists: %v", err)
	}
	if !ok {
		t.Fatal("expected code to exist")
	}

	ok, err = LawCodeExists(ctx, db, "ناشناخته")
	if err != nil {
		t.Fatalf("LawCodeExists: %v", err)
	}
	if ok {
		t.Fatal("unknown code must not exist")
	}
}

func TestFindAlias(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if err := SeedAliases(ctx, db, map[string]string{"قانون مدنی": "حقوق_مدنی"}); err != nil {
		t.Fatalf("SeedAliases: %v", err)
	}

	code, err := FindAlias(ctx, db, "قانون مدنی")
	if err != nil {
		t.Fatalf("FindAlias: %v", err)
	}
	if code != "حقوق_مدنی" {
		t.Fatalf("code = %q", code)
	}

	if _, err := FindAlias(ctx, db, "چیز دیگری"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSeedAliases_Upsert(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if err := SeedAliases(ctx, db, map[string]string{"ق.م": "حقوق_مدنی"}); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	// Re-seeding the same alias with a new code must replace, not fail.
	if err := SeedAliases(ctx, db, map[string]string{"ق.م": "حقوق_جزا"}); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	code, err := FindAlias(ctx, db, "ق.م")
	if err != nil {
		t.Fatalf("FindAlias: %v", err)
	}
	if code != "حقوق_جزا" {
		t.Fatalf("code = %q, want the updated mapping", code)
	}
}

func TestCountArticles(t *testing.T) {
	db := newTestDB(t)

	n, err := CountArticles(context.Background(), db)
	if err != nil {
		t.Fatalf("CountArticles: %v", err)
	}
	if n != 3 {
		t.Fatalf("n = %d, want 3", n)
	}
}

func TestOpenSQLite_MissingParentDir(t *testing.T) {
	if _, err := OpenSQLite(filepath.Join(t.TempDir(), "no-such-dir", "laws.db")); err == nil {
		t.Fatal("expected an error for a missing parent directory")
	}
}

package auth

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	entity "catalog.GO/model/entity"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "auth.db")), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&entity.APIToken{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestIssueAndFindToken(t *testing.T) {
	repo := NewAuthRepository(testDB(t))
	ctx := context.Background()

	issued, err := repo.IssueToken(ctx, "warehouse-sync", 0)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	got, err := repo.FindActiveToken(ctx, issued.Token)
	if err != nil {
		t.Fatalf("FindActiveToken: %v", err)
	}
	if got.Name != "warehouse-sync" {
		t.Errorf("Name = %q, want warehouse-sync", got.Name)
	}
}

func TestFindActiveToken_RevokedAndExpired(t *testing.T) {
	db := testDB(t)
	repo := NewAuthRepository(db)
	ctx := context.Background()

	revoked, _ := repo.IssueToken(ctx, "old", 0)
	if err := repo.RevokeToken(ctx, revoked.Token); err != nil {
		t.Fatalf("RevokeToken: %v", err)
	}
	if _, err := repo.FindActiveToken(ctx, revoked.Token); err == nil {
		t.Error("revoked token: want error")
	}

	past := time.Now().Add(-time.Hour)
	expired := entity.APIToken{Name: "expired", Token: "expired-token", ExpiresAt: &past}
	db.Create(&expired)
	if _, err := repo.FindActiveToken(ctx, "expired-token"); err == nil {
		t.Error("expired token: want error")
	}

	if err := repo.RevokeToken(ctx, "missing"); err == nil {
		t.Error("RevokeToken missing: want error")
	}
}

package maintenance

import (
	"os"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupFileDB(t *testing.T) (*gorm.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "store.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.Exec("CREATE TABLE kv (k TEXT, v TEXT)").Error; err != nil {
		t.Fatalf("create table: %v", err)
	}
	return db, path
}

func TestBackupCopiesStoreFile(t *testing.T) {
	db, path := setupFileDB(t)
	backupDir := filepath.Join(t.TempDir(), "backups")
	s := New(db, path, backupDir)

	if err := s.Backup(); err != nil {
		t.Fatalf("backup: %v", err)
	}

	entries, err := os.ReadDir(backupDir)
	if err != nil {
		t.Fatalf("read backup dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 backup file, got %d", len(entries))
	}

	src, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read source: %v", err)
	}
	dst, err := os.ReadFile(filepath.Join(backupDir, entries[0].Name()))
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if len(dst) == 0 || len(dst) != len(src) {
		t.Errorf("backup size %d does not match store size %d", len(dst), len(src))
	}
}

func TestBackupWithoutStoreFileIsNoop(t *testing.T) {
	db, _ := setupFileDB(t)
	s := New(db, "", t.TempDir())
	if err := s.Backup(); err != nil {
		t.Errorf("backup without store path must not fail: %v", err)
	}
}

func TestBackupMissingSourceFails(t *testing.T) {
	db, _ := setupFileDB(t)
	s := New(db, filepath.Join(t.TempDir(), "nope.db"), t.TempDir())
	if err := s.Backup(); err == nil {
		t.Error("expected error for missing store file")
	}
}

func TestVacuum(t *testing.T) {
	db, path := setupFileDB(t)
	s := New(db, path, t.TempDir())
	if err := s.Vacuum(); err != nil {
		t.Errorf("vacuum: %v", err)
	}
}

func TestStartStop(t *testing.T) {
	db, path := setupFileDB(t)
	s := New(db, path, t.TempDir())
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	s.Stop()
}

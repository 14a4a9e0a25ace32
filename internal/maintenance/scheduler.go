package maintenance

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// Scheduler owns the periodic maintenance jobs: a daily backup copy of the
// store file and a weekly VACUUM. Job failures are logged and never
// propagated; a failed run does not affect later runs.
type Scheduler struct {
	cron      *cron.Cron
	db        *gorm.DB
	storePath string
	backupDir string
}

// New builds a scheduler for the given store. storePath is the sqlite file
// to back up; pass an empty string for backends without a local file, which
// disables the backup job.
func New(db *gorm.DB, storePath, backupDir string) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		db:        db,
		storePath: storePath,
		backupDir: backupDir,
	}
}

// Start registers the cadences and begins running jobs in the background.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("@daily", func() {
		if err := s.Backup(); err != nil {
			log.Printf("maintenance: backup failed: %v", err)
		}
	}); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("@weekly", func() {
		if err := s.Vacuum(); err != nil {
			log.Printf("maintenance: vacuum failed: %v", err)
		}
	}); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop halts the schedule. Running jobs finish; no new ones start.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// Backup copies the store file to a timestamped file under the backup
// directory. It is a plain file copy with no consistency guarantee beyond
// what the store's file format tolerates.
func (s *Scheduler) Backup() error {
	if s.storePath == "" {
		log.Printf("maintenance: no local store file, backup skipped")
		return nil
	}

	src, err := os.Open(s.storePath)
	if err != nil {
		return fmt.Errorf("open store file: %w", err)
	}
	defer src.Close()

	if err := os.MkdirAll(s.backupDir, 0o755); err != nil {
		return fmt.Errorf("create backup dir: %w", err)
	}

	name := fmt.Sprintf("backup_%s.db", time.Now().Format("20060102_150405"))
	dest := filepath.Join(s.backupDir, name)
	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create backup file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return fmt.Errorf("copy store file: %w", err)
	}
	log.Printf("maintenance: backup written to %s", dest)
	return nil
}

// Vacuum compacts the store and reclaims free space.
func (s *Scheduler) Vacuum() error {
	if err := s.db.Exec("VACUUM").Error; err != nil {
		return fmt.Errorf("vacuum store: %w", err)
	}
	log.Printf("maintenance: vacuum completed")
	return nil
}

// services/backup_service.go
package services

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"time"

	"rentacar-backend/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// BackupService writes a nightly JSON export of rentals and payments.
// Constructed and injected explicitly; it only reads.
type BackupService struct {
	db   *gorm.DB
	dir  string
	cron *cron.Cron
}

func NewBackupService(db *gorm.DB) *BackupService {
	dir := os.Getenv("BACKUP_DIR")
	if dir == "" {
		dir = "backups"
	}
	return &BackupService{
		db:   db,
		dir:  dir,
		cron: cron.New(),
	}
}

func (s *BackupService) StartScheduler() {
	// Run every night at 3 AM
	s.cron.AddFunc("0 3 * * *", func() {
		if _, err := s.RunBackup(); err != nil {
			log.Printf("Nightly backup failed: %v", err)
		}
	})

	s.cron.Start()
	log.Println("Backup scheduler started")
}

func (s *BackupService) Stop() {
	s.cron.Stop()
}

type backupExport struct {
	ExportedAt time.Time        `json:"exportedAt"`
	Rentals    []models.Rental  `json:"rentals"`
	Payments   []models.Payment `json:"payments"`
}

// RunBackup exports all rentals (including soft-deleted ones, for
// historical reporting) and their payments. Returns the written path.
func (s *BackupService) RunBackup() (string, error) {
	var export backupExport
	export.ExportedAt = time.Now()

	if err := s.db.Unscoped().Find(&export.Rentals).Error; err != nil {
		return "", err
	}
	if err := s.db.Unscoped().Find(&export.Payments).Error; err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, "rentals-"+export.ExportedAt.Format("20060102-150405")+".json")
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}

	log.Printf("Backup written: %s (%d rentals, %d payments)", path, len(export.Rentals), len(export.Payments))
	return path, nil
}

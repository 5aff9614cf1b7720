// Package history records completion requests to a local sqlite database so
// users can audit what the resolver suggested and when. Recording is off by
// default and never affects the candidates themselves.
package history

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/stevedore-sh/stevedore-complete/internal/core"
)

type Manager struct {
	db *gorm.DB
}

// RequestEntry is one recorded completion request.
type RequestEntry struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time `gorm:"index"`

	Line           string
	Subcommand     string
	CandidateCount int
	DurationMs     int64
}

const (
	historySchemaVersion = 1
)

func NewManager(dbFilePath string) (*Manager, error) {
	dbFileExists := true
	if _, err := os.Stat(dbFilePath); errors.Is(err, os.ErrNotExist) {
		dbFileExists = false
	} else if err != nil {
		return nil, err
	}

	db, err := gorm.Open(sqlite.Open(dbFilePath), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if needsMigration(dbFileExists, db) {
		if err := db.AutoMigrate(&RequestEntry{}); err != nil {
			return nil, err
		}
		if err := writeSchemaVersion(historySchemaVersion); err != nil {
			return nil, err
		}
	}

	return &Manager{
		db: db,
	}, nil
}

func needsMigration(dbFileExists bool, db *gorm.DB) bool {
	if !dbFileExists {
		return true
	}

	versionMatches, err := schemaVersionMatches()
	if err != nil || !versionMatches {
		return true
	}

	// If the version marker is present but the table is missing (corruption
	// or manual deletion), re-run migrations to restore the schema.
	return !db.Migrator().HasTable(&RequestEntry{})
}

func writeSchemaVersion(version int) error {
	return os.WriteFile(schemaVersionPath(), []byte(strconv.Itoa(version)), 0644)
}

func schemaVersionMatches() (bool, error) {
	data, err := os.ReadFile(schemaVersionPath())
	if err != nil {
		return false, err
	}
	version, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return false, err
	}
	if version != historySchemaVersion {
		return false, fmt.Errorf("history schema version mismatch: got %d, want %d", version, historySchemaVersion)
	}
	return true, nil
}

func schemaVersionPath() string {
	return filepath.Join(core.DataDir(), "complete_history_schema_version")
}

// Record stores one completion request.
func (m *Manager) Record(line, subcommand string, candidateCount int, duration time.Duration) error {
	entry := RequestEntry{
		Line:           line,
		Subcommand:     subcommand,
		CandidateCount: candidateCount,
		DurationMs:     duration.Milliseconds(),
	}

	result := m.db.Create(&entry)
	return result.Error
}

// RecentEntries returns the most recent recorded requests, newest first.
func (m *Manager) RecentEntries(limit int) ([]RequestEntry, error) {
	var entries []RequestEntry
	result := m.db.Order("created_at desc").Limit(limit).Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}
	return entries, nil
}

// Reset deletes all recorded requests.
func (m *Manager) Reset() error {
	result := m.db.Exec("DELETE FROM request_entries")
	return result.Error
}

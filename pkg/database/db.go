package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/arnavshah/rotation-api-go/pkg/config"
)

// APIKey represents the api_keys table
type APIKey struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Key        string     `gorm:"unique;not null" json:"-"`
	KeyPreview string     `json:"key_preview"`
	Name       string     `gorm:"not null" json:"name"`
	RateLimit  int        `gorm:"default:10000" json:"rate_limit"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsed   *time.Time `json:"last_used"`
}

// APIUsage represents the api_usage table
type APIUsage struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	KeyID        uint   `gorm:"uniqueIndex:idx_key_date;not null" json:"key_id"`
	Date         string `gorm:"uniqueIndex:idx_key_date;not null" json:"date"`
	RequestCount int    `gorm:"default:0" json:"request_count"`
	TotalWeeks   int    `gorm:"default:0" json:"total_weeks"`
	TotalStaff   int    `gorm:"default:0" json:"total_staff"`
}

// MasterUser represents the master_users table
type MasterUser struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// SavedPlan represents the saved_plans table. It stores authored templates
// only; rosters are always computed on request.
type SavedPlan struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	PublicID  string    `gorm:"uniqueIndex;not null" json:"id"`
	KeyID     uint      `gorm:"index;not null" json:"-"`
	Name      string    `gorm:"not null" json:"name"`
	Weeks     int       `json:"weeks"`
	Body      string    `gorm:"type:text;not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Open connects to Postgres when DatabaseURL is set and to SQLite otherwise,
// then migrates the schema
func Open(cfg config.Config) (*gorm.DB, error) {
	if cfg.DatabaseURL != "" {
		return open(postgres.New(postgres.Config{
			DSN:                  cfg.DatabaseURL,
			PreferSimpleProtocol: true,
		}), &gorm.Config{PrepareStmt: false})
	}
	return open(sqlite.Open(cfg.DataPath), &gorm.Config{})
}

// OpenSQLite opens a SQLite database at dsn, e.g. "file:test?mode=memory&cache=shared"
func OpenSQLite(dsn string) (*gorm.DB, error) {
	return open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
}

func open(dialector gorm.Dialector, gcfg *gorm.Config) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, gcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	if err := db.AutoMigrate(&APIKey{}, &APIUsage{}, &MasterUser{}, &SavedPlan{}); err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}
	return db, nil
}

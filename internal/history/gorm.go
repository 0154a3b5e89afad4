package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// scoreEntry is the database row behind Entry.
type scoreEntry struct {
	ID         string    `gorm:"primaryKey;size:26"`
	Owner      string    `gorm:"size:128;not null;uniqueIndex:idx_score_owner_date"`
	Date       string    `gorm:"size:10;not null;uniqueIndex:idx_score_owner_date"`
	Score      int       `gorm:"not null"`
	RecordedAt time.Time `gorm:"not null"`
}

func (scoreEntry) TableName() string { return "weekly_score_entries" }

// GormStore keeps entries in a SQL database.
type GormStore struct {
	db       *gorm.DB
	capacity int
}

// OpenGorm connects with the sqlite or postgres driver and migrates the table.
func OpenGorm(driver, dsn string, capacity int) (*GormStore, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("history.OpenGorm: %w", err)
	}
	return NewGormStore(db, capacity)
}

// NewGormStore wraps an open connection and migrates the table.
func NewGormStore(db *gorm.DB, capacity int) (*GormStore, error) {
	if err := db.AutoMigrate(&scoreEntry{}); err != nil {
		return nil, fmt.Errorf("history.NewGormStore: migrate: %w", err)
	}
	return &GormStore{db: db, capacity: normalizeCapacity(capacity)}, nil
}

func (g *GormStore) Append(ctx context.Context, owner string, e Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing scoreEntry
		err := tx.Where("owner = ? AND date = ?", owner, e.Date).First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Model(&existing).Updates(map[string]any{
				"score":       e.Score,
				"recorded_at": e.RecordedAt,
			}).Error; err != nil {
				return fmt.Errorf("history.GormStore: update: %w", err)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			if e.ID == "" {
				e.ID = ulid.Make().String()
			}
			row := scoreEntry{ID: e.ID, Owner: owner, Date: e.Date, Score: e.Score, RecordedAt: e.RecordedAt}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("history.GormStore: insert: %w", err)
			}
		default:
			return fmt.Errorf("history.GormStore: lookup: %w", err)
		}

		var ids []string
		if err := tx.Model(&scoreEntry{}).
			Where("owner = ?", owner).
			Order("date DESC").
			Pluck("id", &ids).Error; err != nil {
			return fmt.Errorf("history.GormStore: trim: %w", err)
		}
		if len(ids) > g.capacity {
			stale := ids[g.capacity:]
			if err := tx.Where("id IN ?", stale).Delete(&scoreEntry{}).Error; err != nil {
				return fmt.Errorf("history.GormStore: trim: %w", err)
			}
		}
		return nil
	})
}

func (g *GormStore) Recent(ctx context.Context, owner string) ([]Entry, error) {
	var rows []scoreEntry
	if err := g.db.WithContext(ctx).
		Where("owner = ?", owner).
		Order("date DESC").
		Limit(g.capacity).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("history.GormStore: recent: %w", err)
	}
	out := make([]Entry, len(rows))
	for i, row := range rows {
		out[len(rows)-1-i] = Entry{ID: row.ID, Date: row.Date, Score: row.Score, RecordedAt: row.RecordedAt}
	}
	return out, nil
}

func (g *GormStore) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

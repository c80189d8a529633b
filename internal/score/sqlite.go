package score

import (
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

const highScoreRow = 1

// HighScore is the single persisted row.
type HighScore struct {
	ID        uint `gorm:"primaryKey"`
	Score     int
	UpdatedAt time.Time
}

// SQLiteStore keeps the high score in a SQLite database.
type SQLiteStore struct {
	db *gorm.DB
}

// OpenSQLite opens (and migrates) the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if err := db.AutoMigrate(&HighScore{}); err != nil {
		return nil, fmt.Errorf("migrate high score table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Load returns the stored score, 0 if none.
func (s *SQLiteStore) Load() (int, error) {
	var hs HighScore
	err := s.db.First(&hs, highScoreRow).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load high score: %w", err)
	}
	return max(hs.Score, 0), nil
}

// Save stores score unless a higher one is already recorded.
func (s *SQLiteStore) Save(score int) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var hs HighScore
		err := tx.First(&hs, highScoreRow).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
		case err != nil:
			return fmt.Errorf("load high score: %w", err)
		case hs.Score >= score:
			return nil
		}
		row := HighScore{ID: highScoreRow, Score: score}
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
			return fmt.Errorf("save high score: %w", err)
		}
		return nil
	})
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

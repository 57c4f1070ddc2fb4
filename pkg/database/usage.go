package database

import (
	"errors"
	"time"

	apperrors "github.com/arnavshah/noc-rotation-go/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UsageTotals sums a usage history
type UsageTotals struct {
	Requests int64 `json:"requests"`
	Days     int64 `json:"days"`
	Workers  int64 `json:"workers"`
}

// RecordUsage adds one request to today's usage row for a key.
// A single upsert works on both Postgres and SQLite.
func RecordUsage(db *gorm.DB, keyID uint, days, workers int, now time.Time) error {
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"request_count": gorm.Expr("request_count + ?", 1),
			"total_days":    gorm.Expr("total_days + ?", days),
			"total_workers": gorm.Expr("total_workers + ?", workers),
		}),
	}).Create(&APIUsage{
		KeyID:        keyID,
		Date:         now.Format("2006-01-02"),
		RequestCount: 1,
		TotalDays:    days,
		TotalWorkers: workers,
	}).Error
}

// UsageHistory returns the latest 30 days of usage for a key, newest first
func UsageHistory(db *gorm.DB, keyID uint) ([]APIUsage, error) {
	var usage []APIUsage
	err := db.Where("key_id = ?", keyID).Order("date desc").Limit(30).Find(&usage).Error
	return usage, err
}

// Totals sums a usage history
func Totals(usage []APIUsage) UsageTotals {
	var t UsageTotals
	for _, u := range usage {
		t.Requests += int64(u.RequestCount)
		t.Days += int64(u.TotalDays)
		t.Workers += int64(u.TotalWorkers)
	}
	return t
}

// FindKey returns the record for an API key, including revoked ones
func FindKey(db *gorm.DB, key string) (*APIKey, error) {
	var apiKey APIKey
	err := db.Unscoped().Where(&APIKey{Key: key}).First(&apiKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrAPIKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &apiKey, nil
}

// TouchKey stamps LastUsed on the record for an API key. Keys that were never
// registered get a record owned by owner; revoked keys are rejected.
func TouchKey(db *gorm.DB, key, owner string, now time.Time) (*APIKey, error) {
	apiKey, err := FindKey(db, key)
	switch {
	case errors.Is(err, apperrors.ErrAPIKeyNotFound):
		apiKey = &APIKey{
			Key:        key,
			Name:       owner,
			KeyPreview: Preview(key),
			RateLimit:  DefaultRateLimit,
		}
		if err := db.Create(apiKey).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	case apiKey.DeletedAt.Valid:
		return nil, apperrors.ErrAPIKeyRevoked
	}

	if err := db.Model(apiKey).Update("last_used", now).Error; err != nil {
		return nil, err
	}
	return apiKey, nil
}

// RequestsOn returns the number of requests recorded for a key on now's date
func RequestsOn(db *gorm.DB, keyID uint, now time.Time) (int, error) {
	var usage APIUsage
	err := db.Where("key_id = ? AND date = ?", keyID, now.Format("2006-01-02")).First(&usage).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return usage.RequestCount, nil
}

// Preview masks a key for display, e.g. "ops...9f2c"
func Preview(key string) string {
	if len(key) > 8 {
		return key[:3] + "..." + key[len(key)-4:]
	}
	return "****"
}

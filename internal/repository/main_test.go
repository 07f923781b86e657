package repository

import (
	"path/filepath"
	"testing"

	"unicbt_backend/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "unicbt_test.db") + "?_busy_timeout=10000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = db.AutoMigrate(
		&model.Exam{},
		&model.Question{},
		&model.AnswerKey{},
		&model.AnswerSheetEntry{},
		&model.QuestionStat{},
		&model.ExamResult{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

package database

import (
	"fmt"
	"log"

	"unicbt_backend/internal/config"
	"unicbt_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
		// 唯一键冲突统一转换为 gorm.ErrDuplicatedKey，重复交卷判定依赖该转换
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	return db, nil
}

// Migrate 建表与索引。exam_results 与 question_stats 上的复合唯一索引
// 是提交流程正确性的一部分，不只是查询优化。
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Department{},
		&model.User{},
		&model.Exam{},
		&model.ExamAssignment{},
		&model.Question{},
		&model.AnswerKey{},
		&model.AnswerSheetEntry{},
		&model.QuestionStat{},
		&model.ExamResult{},
		&model.Survey{},
		&model.SurveyQuestion{},
		&model.SurveyResponse{},
		&model.SurveyAnswer{},
	)
}

package repository

import (
	"errors"
	"testing"
	"time"

	"unicbt_backend/internal/model"

	"gorm.io/gorm"
)

func TestExamResultUniqueness(t *testing.T) {
	db := newTestDB(t)
	repo := NewExamResultRepository(db)

	first := &model.ExamResult{StudentID: 7, ExamID: 3, Score: 100, CompletedAt: time.Now()}
	if err := repo.InsertTx(db, first); err != nil {
		t.Fatalf("first insert: %v", err)
	}

	exists, err := repo.Exists(7, 3)
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if !exists {
		t.Error("Exists() = false after insert")
	}

	// 同一学生同一考试第二次写入必须撞唯一索引
	dup := &model.ExamResult{StudentID: 7, ExamID: 3, Score: 50, CompletedAt: time.Now()}
	err = repo.InsertTx(db, dup)
	if err == nil {
		t.Fatal("duplicate insert succeeded, want unique constraint violation")
	}
	if !repo.IsDuplicate(err) {
		t.Fatalf("IsDuplicate(%v) = false, want true", err)
	}

	// 另一场考试不受影响
	other := &model.ExamResult{StudentID: 7, ExamID: 4, Score: 80, CompletedAt: time.Now()}
	if err := repo.InsertTx(db, other); err != nil {
		t.Fatalf("insert for another exam: %v", err)
	}

	stored, err := repo.FindByStudentAndExam(7, 3)
	if err != nil {
		t.Fatalf("FindByStudentAndExam() error = %v", err)
	}
	if stored.Score != 100 {
		t.Errorf("stored score = %d, want the original 100", stored.Score)
	}
}

func TestExamResultSummary(t *testing.T) {
	db := newTestDB(t)
	repo := NewExamResultRepository(db)

	scores := map[uint]int{7: 100, 8: 0, 9: 67}
	for studentID, score := range scores {
		r := &model.ExamResult{StudentID: studentID, ExamID: 3, Score: score, CompletedAt: time.Now()}
		if err := repo.InsertTx(db, r); err != nil {
			t.Fatalf("insert result: %v", err)
		}
	}

	summary, err := repo.SummaryByExam(3)
	if err != nil {
		t.Fatalf("SummaryByExam() error = %v", err)
	}
	if summary.Submissions != 3 {
		t.Errorf("submissions = %d, want 3", summary.Submissions)
	}
	if summary.MaxScore != 100 || summary.MinScore != 0 {
		t.Errorf("max/min = %d/%d, want 100/0", summary.MaxScore, summary.MinScore)
	}
	want := (100.0 + 0 + 67) / 3
	if diff := summary.AverageScore - want; diff > 0.01 || diff < -0.01 {
		t.Errorf("average = %.2f, want %.2f", summary.AverageScore, want)
	}

	// 没有成绩的考试汇总全为零值
	empty, err := repo.SummaryByExam(99)
	if err != nil {
		t.Fatalf("SummaryByExam(empty) error = %v", err)
	}
	if empty.Submissions != 0 || empty.AverageScore != 0 {
		t.Errorf("empty summary = %+v, want zeroes", empty)
	}
}

func TestExamResultListOrdering(t *testing.T) {
	db := newTestDB(t)
	repo := NewExamResultRepository(db)

	base := time.Now()
	rows := []model.ExamResult{
		{StudentID: 7, ExamID: 3, Score: 67, CompletedAt: base},
		{StudentID: 8, ExamID: 3, Score: 100, CompletedAt: base.Add(time.Minute)},
		{StudentID: 9, ExamID: 3, Score: 100, CompletedAt: base},
	}
	for i := range rows {
		if err := repo.InsertTx(db, &rows[i]); err != nil {
			t.Fatalf("insert result: %v", err)
		}
	}

	results, total, err := repo.ListByExam(3, 1, 10)
	if err != nil {
		t.Fatalf("ListByExam() error = %v", err)
	}
	if total != 3 || len(results) != 3 {
		t.Fatalf("total = %d, rows = %d, want 3/3", total, len(results))
	}
	// 高分在前，同分按交卷时间先后
	if results[0].StudentID != 9 || results[1].StudentID != 8 || results[2].StudentID != 7 {
		t.Errorf("order = %d, %d, %d, want 9, 8, 7", results[0].StudentID, results[1].StudentID, results[2].StudentID)
	}

	if _, err := repo.FindByStudentAndExam(7, 99); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("missing result error = %v, want ErrRecordNotFound", err)
	}
}

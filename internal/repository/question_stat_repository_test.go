package repository

import (
	"testing"
)

func TestRecordAttemptUpsert(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionStatRepository(db)

	// 首次答题建行
	if err := repo.RecordAttemptTx(db, 3, 101, true); err != nil {
		t.Fatalf("first attempt: %v", err)
	}
	stat, err := repo.FindByExamAndQuestion(3, 101)
	if err != nil {
		t.Fatalf("load stat: %v", err)
	}
	if stat.AttemptCount != 1 || stat.CorrectCount != 1 || stat.CorrectRate != 100 {
		t.Fatalf("stat = {%d, %d, %.1f}, want {1, 1, 100.0}", stat.AttemptCount, stat.CorrectCount, stat.CorrectRate)
	}

	// 第二次答错，落到已有行并重算正确率
	if err := repo.RecordAttemptTx(db, 3, 101, false); err != nil {
		t.Fatalf("second attempt: %v", err)
	}
	stat, err = repo.FindByExamAndQuestion(3, 101)
	if err != nil {
		t.Fatalf("load stat: %v", err)
	}
	if stat.AttemptCount != 2 || stat.CorrectCount != 1 || stat.CorrectRate != 50 {
		t.Fatalf("stat = {%d, %d, %.1f}, want {2, 1, 50.0}", stat.AttemptCount, stat.CorrectCount, stat.CorrectRate)
	}
}

func TestRecordAttemptRateRounding(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionStatRepository(db)

	// 三次答题一次正确：33.33 保留一位小数
	attempts := []bool{true, false, false}
	for _, correct := range attempts {
		if err := repo.RecordAttemptTx(db, 3, 102, correct); err != nil {
			t.Fatalf("record attempt: %v", err)
		}
	}

	stat, err := repo.FindByExamAndQuestion(3, 102)
	if err != nil {
		t.Fatalf("load stat: %v", err)
	}
	if stat.CorrectRate != 33.3 {
		t.Errorf("correct rate = %.1f, want 33.3", stat.CorrectRate)
	}
}

func TestListByExam(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionStatRepository(db)

	for _, qid := range []uint{102, 101} {
		if err := repo.RecordAttemptTx(db, 3, qid, true); err != nil {
			t.Fatalf("record attempt: %v", err)
		}
	}
	if err := repo.RecordAttemptTx(db, 4, 201, true); err != nil {
		t.Fatalf("record attempt: %v", err)
	}

	stats, err := repo.ListByExam(3)
	if err != nil {
		t.Fatalf("ListByExam() error = %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("stats = %d rows, want 2", len(stats))
	}
	if stats[0].QuestionID != 101 || stats[1].QuestionID != 102 {
		t.Errorf("stats not ordered by question: %d, %d", stats[0].QuestionID, stats[1].QuestionID)
	}
}

package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"unicbt_backend/internal/model"
	"unicbt_backend/internal/repository"
	"unicbt_backend/internal/util"

	"gorm.io/gorm"
)

const (
	testStudentID = 7
	testExamID    = 3
	choiceQID     = 101
	booleanQID    = 102
)

type submissionEnv struct {
	db       *gorm.DB
	svc      *SubmissionService
	examRepo *repository.ExamRepository
}

// newSubmissionEnv 准备一场进行中的考试：学生7/8（1号院系），
// 考试3已发布且在开放窗口内，分配给整个院系，
// 题101为选择题（答案 "2"），题102为判断题（答案 "O"）。
func newSubmissionEnv(t *testing.T) *submissionEnv {
	t.Helper()
	db := newTestDB(t)

	examRepo := repository.NewExamRepository(db)
	userRepo := repository.NewUserRepository(db)
	sheetRepo := repository.NewAnswerSheetRepository(db)
	statRepo := repository.NewQuestionStatRepository(db)
	resultRepo := repository.NewExamResultRepository(db)
	eligibility := NewEligibilityService(examRepo, userRepo)
	svc := NewSubmissionService(examRepo, sheetRepo, statRepo, resultRepo, eligibility, db)

	now := time.Now()
	fixtures := []interface{}{
		&model.Department{BaseModel: model.BaseModel{ID: 1}, Name: "计算机学院"},
		&model.User{BaseModel: model.BaseModel{ID: testStudentID}, Name: "学生甲", StudentNo: "2026007", DepartmentID: 1, Grade: 2},
		&model.User{BaseModel: model.BaseModel{ID: 8}, Name: "学生乙", StudentNo: "2026008", DepartmentID: 1, Grade: 2},
		&model.Exam{
			BaseModel:   model.BaseModel{ID: testExamID},
			Subject:     "数据结构",
			OpensAt:     now.Add(-time.Hour),
			ClosesAt:    now.Add(time.Hour),
			IsPublished: true,
			PublishedAt: &now,
		},
		&model.ExamAssignment{ExamID: testExamID, DepartmentID: 1, Grade: 0},
		&model.Question{BaseModel: model.BaseModel{ID: choiceQID}, ExamID: testExamID, Type: model.QuestionTypeChoice, Prompt: "栈的特点是？", Order: 1},
		&model.AnswerKey{QuestionID: choiceQID, ExamID: testExamID, ChoiceLabel: "2"},
		&model.Question{BaseModel: model.BaseModel{ID: booleanQID}, ExamID: testExamID, Type: model.QuestionTypeBoolean, Prompt: "队列先进先出。", Order: 2},
		&model.AnswerKey{QuestionID: booleanQID, ExamID: testExamID, BooleanText: "O"},
	}
	for _, f := range fixtures {
		if err := db.Create(f).Error; err != nil {
			t.Fatalf("seed fixture %T: %v", f, err)
		}
	}
	return &submissionEnv{db: db, svc: svc, examRepo: examRepo}
}

func (e *submissionEnv) mustStat(t *testing.T, questionID uint) *model.QuestionStat {
	t.Helper()
	stat, err := repository.NewQuestionStatRepository(e.db).FindByExamAndQuestion(testExamID, questionID)
	if err != nil {
		t.Fatalf("load stat for question %d: %v", questionID, err)
	}
	return stat
}

func (e *submissionEnv) sheetCount(t *testing.T) int64 {
	t.Helper()
	count, err := repository.NewAnswerSheetRepository(e.db).CountByExam(testExamID)
	if err != nil {
		t.Fatalf("count answer sheets: %v", err)
	}
	return count
}

func TestSubmitExamFullScore(t *testing.T) {
	env := newSubmissionEnv(t)

	score, err := env.svc.SubmitExam(testStudentID, testExamID, map[uint]string{
		choiceQID:  "2",
		booleanQID: "O",
	})
	if err != nil {
		t.Fatalf("SubmitExam() error = %v", err)
	}
	if score != 100 {
		t.Errorf("score = %d, want 100", score)
	}

	if got := env.sheetCount(t); got != 2 {
		t.Errorf("answer sheet rows = %d, want 2", got)
	}
	for _, qid := range []uint{choiceQID, booleanQID} {
		stat := env.mustStat(t, qid)
		if stat.AttemptCount != 1 || stat.CorrectCount != 1 || stat.CorrectRate != 100 {
			t.Errorf("question %d stat = {%d, %d, %.1f}, want {1, 1, 100.0}",
				qid, stat.AttemptCount, stat.CorrectCount, stat.CorrectRate)
		}
	}

	result, err := repository.NewExamResultRepository(env.db).FindByStudentAndExam(testStudentID, testExamID)
	if err != nil {
		t.Fatalf("load result: %v", err)
	}
	if result.Score != 100 {
		t.Errorf("stored score = %d, want 100", result.Score)
	}
}

func TestSubmitExamStatsAccumulate(t *testing.T) {
	env := newSubmissionEnv(t)

	if _, err := env.svc.SubmitExam(testStudentID, testExamID, map[uint]string{choiceQID: "2", booleanQID: "O"}); err != nil {
		t.Fatalf("first submission: %v", err)
	}

	score, err := env.svc.SubmitExam(8, testExamID, map[uint]string{choiceQID: "1", booleanQID: "X"})
	if err != nil {
		t.Fatalf("second submission: %v", err)
	}
	if score != 0 {
		t.Errorf("score = %d, want 0", score)
	}

	stat := env.mustStat(t, choiceQID)
	if stat.AttemptCount != 2 || stat.CorrectCount != 1 || stat.CorrectRate != 50 {
		t.Errorf("stat after two attempts = {%d, %d, %.1f}, want {2, 1, 50.0}",
			stat.AttemptCount, stat.CorrectCount, stat.CorrectRate)
	}
}

func TestSubmitExamDuplicateRejected(t *testing.T) {
	env := newSubmissionEnv(t)
	answers := map[uint]string{choiceQID: "2", booleanQID: "O"}

	if _, err := env.svc.SubmitExam(testStudentID, testExamID, answers); err != nil {
		t.Fatalf("first submission: %v", err)
	}

	_, err := env.svc.SubmitExam(testStudentID, testExamID, answers)
	if !errors.Is(err, util.ErrDuplicateAttempt) {
		t.Fatalf("second submission error = %v, want ErrDuplicateAttempt", err)
	}

	// 重复提交不得留下任何痕迹
	if got := env.sheetCount(t); got != 2 {
		t.Errorf("answer sheet rows = %d, want 2", got)
	}
	stat := env.mustStat(t, choiceQID)
	if stat.AttemptCount != 1 || stat.CorrectCount != 1 {
		t.Errorf("stat after duplicate = {%d, %d}, want {1, 1}", stat.AttemptCount, stat.CorrectCount)
	}
}

func TestSubmitExamEmptyRejected(t *testing.T) {
	env := newSubmissionEnv(t)

	_, err := env.svc.SubmitExam(testStudentID, testExamID, map[uint]string{})
	if !errors.Is(err, util.ErrEmptySubmission) {
		t.Fatalf("error = %v, want ErrEmptySubmission", err)
	}
	if got := env.sheetCount(t); got != 0 {
		t.Errorf("answer sheet rows = %d, want 0", got)
	}
}

func TestSubmitExamClosedWindow(t *testing.T) {
	env := newSubmissionEnv(t)

	now := time.Now()
	closed := &model.Exam{
		BaseModel:   model.BaseModel{ID: 4},
		Subject:     "操作系统",
		OpensAt:     now.Add(-2 * time.Hour),
		ClosesAt:    now.Add(-time.Hour),
		IsPublished: true,
	}
	if err := env.db.Create(closed).Error; err != nil {
		t.Fatalf("seed closed exam: %v", err)
	}
	if err := env.db.Create(&model.ExamAssignment{ExamID: 4, DepartmentID: 1, Grade: 0}).Error; err != nil {
		t.Fatalf("seed assignment: %v", err)
	}

	_, err := env.svc.SubmitExam(testStudentID, 4, map[uint]string{choiceQID: "2"})
	if !errors.Is(err, util.ErrExamNotOpen) {
		t.Fatalf("error = %v, want ErrExamNotOpen", err)
	}
}

func TestSubmitExamNotAssigned(t *testing.T) {
	env := newSubmissionEnv(t)

	other := []interface{}{
		&model.Department{BaseModel: model.BaseModel{ID: 2}, Name: "外国语学院"},
		&model.User{BaseModel: model.BaseModel{ID: 9}, Name: "学生丙", StudentNo: "2026009", DepartmentID: 2, Grade: 1},
	}
	for _, f := range other {
		if err := env.db.Create(f).Error; err != nil {
			t.Fatalf("seed fixture %T: %v", f, err)
		}
	}

	_, err := env.svc.SubmitExam(9, testExamID, map[uint]string{choiceQID: "2"})
	if !errors.Is(err, util.ErrNotEligible) {
		t.Fatalf("error = %v, want ErrNotEligible", err)
	}
}

func TestSubmitExamMissingKeyExcluded(t *testing.T) {
	env := newSubmissionEnv(t)

	// 题103没有标准答案，评分时应跳过且不参与统计，整卷照常提交
	orphan := &model.Question{BaseModel: model.BaseModel{ID: 103}, ExamID: testExamID, Type: model.QuestionTypeChoice, Prompt: "缺答案的题", Order: 3}
	if err := env.db.Create(orphan).Error; err != nil {
		t.Fatalf("seed orphan question: %v", err)
	}

	score, err := env.svc.SubmitExam(testStudentID, testExamID, map[uint]string{
		choiceQID:  "2",
		booleanQID: "O",
		103:        "1",
	})
	if err != nil {
		t.Fatalf("SubmitExam() error = %v", err)
	}
	if score != 100 {
		t.Errorf("score = %d, want 100 (ungraded question must not count)", score)
	}

	// 作答本身保留，统计里没有这道题
	if got := env.sheetCount(t); got != 3 {
		t.Errorf("answer sheet rows = %d, want 3", got)
	}
	_, err = repository.NewQuestionStatRepository(env.db).FindByExamAndQuestion(testExamID, 103)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("stat lookup for ungraded question: error = %v, want ErrRecordNotFound", err)
	}
}

func TestSubmitExamNoGradableQuestions(t *testing.T) {
	env := newSubmissionEnv(t)

	orphan := &model.Question{BaseModel: model.BaseModel{ID: 103}, ExamID: testExamID, Type: model.QuestionTypeChoice, Prompt: "缺答案的题", Order: 3}
	if err := env.db.Create(orphan).Error; err != nil {
		t.Fatalf("seed orphan question: %v", err)
	}

	// 整卷都评不了分时得 0 分，提交本身照常成功
	score, err := env.svc.SubmitExam(testStudentID, testExamID, map[uint]string{103: "1"})
	if err != nil {
		t.Fatalf("SubmitExam() error = %v", err)
	}
	if score != 0 {
		t.Errorf("score = %d, want 0", score)
	}

	result, err := repository.NewExamResultRepository(env.db).FindByStudentAndExam(testStudentID, testExamID)
	if err != nil {
		t.Fatalf("load result: %v", err)
	}
	if result.Score != 0 {
		t.Errorf("stored score = %d, want 0", result.Score)
	}
}

func TestSubmitExamUnknownQuestionExcluded(t *testing.T) {
	env := newSubmissionEnv(t)

	score, err := env.svc.SubmitExam(testStudentID, testExamID, map[uint]string{
		choiceQID: "2",
		999:       "1", // 不属于本场考试的题目ID
	})
	if err != nil {
		t.Fatalf("SubmitExam() error = %v", err)
	}
	if score != 100 {
		t.Errorf("score = %d, want 100", score)
	}
}

func TestSubmitExamScoreRounding(t *testing.T) {
	env := newSubmissionEnv(t)

	third := &model.Question{BaseModel: model.BaseModel{ID: 103}, ExamID: testExamID, Type: model.QuestionTypeBoolean, Prompt: "第三题", Order: 3}
	if err := env.db.Create(third).Error; err != nil {
		t.Fatalf("seed question: %v", err)
	}
	if err := env.db.Create(&model.AnswerKey{QuestionID: 103, ExamID: testExamID, BooleanText: "X"}).Error; err != nil {
		t.Fatalf("seed key: %v", err)
	}

	// 三题对两题：66.67 四舍五入到 67
	score, err := env.svc.SubmitExam(testStudentID, testExamID, map[uint]string{
		choiceQID:  "2",
		booleanQID: "O",
		103:        "O",
	})
	if err != nil {
		t.Fatalf("SubmitExam() error = %v", err)
	}
	if score != 67 {
		t.Errorf("score = %d, want 67", score)
	}
}

func TestSubmitExamRollbackOnFailure(t *testing.T) {
	env := newSubmissionEnv(t)

	// 删掉统计表让事务中途失败，答卷和成绩都不能留下
	if err := env.db.Migrator().DropTable(&model.QuestionStat{}); err != nil {
		t.Fatalf("drop stats table: %v", err)
	}

	_, err := env.svc.SubmitExam(testStudentID, testExamID, map[uint]string{choiceQID: "2", booleanQID: "O"})
	if err == nil {
		t.Fatal("SubmitExam() succeeded, want storage error")
	}

	if got := env.sheetCount(t); got != 0 {
		t.Errorf("answer sheet rows after rollback = %d, want 0", got)
	}
	exists, err := repository.NewExamResultRepository(env.db).Exists(testStudentID, testExamID)
	if err != nil {
		t.Fatalf("check result: %v", err)
	}
	if exists {
		t.Error("result row survived a rolled back submission")
	}

	// 回滚后整卷重试应当成功
	if err := env.db.Migrator().CreateTable(&model.QuestionStat{}); err != nil {
		t.Fatalf("recreate stats table: %v", err)
	}
	score, err := env.svc.SubmitExam(testStudentID, testExamID, map[uint]string{choiceQID: "2", booleanQID: "O"})
	if err != nil {
		t.Fatalf("retry after rollback: %v", err)
	}
	if score != 100 {
		t.Errorf("retry score = %d, want 100", score)
	}
}

func TestSubmitExamConcurrent(t *testing.T) {
	env := newSubmissionEnv(t)

	const total = 50
	const correct = 30

	for i := 0; i < total; i++ {
		u := &model.User{
			BaseModel:    model.BaseModel{ID: uint(100 + i)},
			Name:         "并发考生",
			StudentNo:    "2026" + string(rune('A'+i/26)) + string(rune('A'+i%26)),
			DepartmentID: 1,
			Grade:        2,
		}
		if err := env.db.Create(u).Error; err != nil {
			t.Fatalf("seed student %d: %v", 100+i, err)
		}
	}

	var wg sync.WaitGroup
	errs := make(chan error, total)
	for i := 0; i < total; i++ {
		answer := "2"
		if i >= correct {
			answer = "1"
		}
		studentID := uint(100 + i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := env.svc.SubmitExam(studentID, testExamID, map[uint]string{choiceQID: answer}); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent submission failed: %v", err)
	}

	stat := env.mustStat(t, choiceQID)
	if stat.AttemptCount != total || stat.CorrectCount != correct {
		t.Errorf("stat = {%d, %d}, want {%d, %d}", stat.AttemptCount, stat.CorrectCount, total, correct)
	}
	if stat.CorrectRate != 60 {
		t.Errorf("correct rate = %.1f, want 60.0", stat.CorrectRate)
	}

	summary, err := repository.NewExamResultRepository(env.db).SummaryByExam(testExamID)
	if err != nil {
		t.Fatalf("load summary: %v", err)
	}
	if summary.Submissions != total {
		t.Errorf("submissions = %d, want %d", summary.Submissions, total)
	}
}

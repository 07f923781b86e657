package service

import (
	"errors"
	"math"
	"sort"
	"time"

	"unicbt_backend/internal/model"
	"unicbt_backend/internal/repository"
	"unicbt_backend/internal/util"
	"unicbt_backend/pkg/logger"
	"unicbt_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SubmissionService 交卷协调器。整个子系统里唯一开事务的地方：
// 落答卷、评分、累计每题统计、写成绩共进退，任何一步失败整体回滚。
type SubmissionService struct {
	ExamRepo    *repository.ExamRepository
	SheetRepo   *repository.AnswerSheetRepository
	StatRepo    *repository.QuestionStatRepository
	ResultRepo  *repository.ExamResultRepository
	Eligibility EligibilityChecker
	DB          *gorm.DB
}

func NewSubmissionService(
	examRepo *repository.ExamRepository,
	sheetRepo *repository.AnswerSheetRepository,
	statRepo *repository.QuestionStatRepository,
	resultRepo *repository.ExamResultRepository,
	eligibility EligibilityChecker,
	db *gorm.DB,
) *SubmissionService {
	return &SubmissionService{
		ExamRepo:    examRepo,
		SheetRepo:   sheetRepo,
		StatRepo:    statRepo,
		ResultRepo:  resultRepo,
		Eligibility: eligibility,
		DB:          db,
	}
}

type SubmitExamRequest struct {
	StudentID uint            `json:"studentId" binding:"required"`
	Answers   map[uint]string `json:"answers" binding:"required"`
}

// SubmitExam 处理一次完整交卷，返回最终得分。
// 失败时不留任何部分状态，调用方可整卷重试。
func (s *SubmissionService) SubmitExam(studentID, examID uint, answers map[uint]string) (int, error) {
	// 1. 校验：空卷直接拒绝，再确认考试对该学生开放
	if len(answers) == 0 {
		monitoring.SubmissionCounter.WithLabelValues("rejected").Inc()
		return 0, util.ErrEmptySubmission
	}
	if err := s.Eligibility.CanAttempt(studentID, examID); err != nil {
		monitoring.SubmissionCounter.WithLabelValues("rejected").Inc()
		return 0, err
	}

	// 2. 提前查重。只是省掉白做的评分，权威拦截是成绩表的唯一索引：
	// 两次并发交卷都可能通过这里的检查，最终只有一个 INSERT 成功
	exists, err := s.ResultRepo.Exists(studentID, examID)
	if err != nil {
		monitoring.SubmissionCounter.WithLabelValues("aborted").Inc()
		return 0, err
	}
	if exists {
		monitoring.SubmissionCounter.WithLabelValues("rejected").Inc()
		return 0, util.ErrDuplicateAttempt
	}

	// 3. 题目与标准答案评分期间只读，开事务前一次加载
	questionMap, keyMap, err := s.ExamRepo.LoadCatalog(examID)
	if err != nil {
		monitoring.SubmissionCounter.WithLabelValues("aborted").Inc()
		return 0, err
	}

	// 固定按题目ID升序处理，事务内写入顺序稳定
	questionIDs := make([]uint, 0, len(answers))
	for qid := range answers {
		questionIDs = append(questionIDs, qid)
	}
	sort.Slice(questionIDs, func(i, j int) bool { return questionIDs[i] < questionIDs[j] })

	score := 0
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		// 4. 落答卷。每题一行，一次性写入
		entries := make([]model.AnswerSheetEntry, 0, len(questionIDs))
		for _, qid := range questionIDs {
			entries = append(entries, model.AnswerSheetEntry{
				StudentID:  studentID,
				ExamID:     examID,
				QuestionID: qid,
				Submitted:  answers[qid],
			})
		}
		if err := s.SheetRepo.AppendAllTx(tx, entries); err != nil {
			return err
		}

		// 5. 评分。缺题或缺标准答案属于数据完整性问题：
		// 记告警、该题不计分也不进统计，整卷照常提交
		type gradedQuestion struct {
			questionID uint
			correct    bool
		}
		graded := make([]gradedQuestion, 0, len(questionIDs))
		correctCount := 0
		for _, qid := range questionIDs {
			q, ok := questionMap[qid]
			if !ok {
				logger.Log.Warn("answer references a question outside this exam",
					zap.Uint("examId", examID), zap.Uint("questionId", qid))
				continue
			}
			key, ok := keyMap[qid]
			if !ok {
				logger.Log.Warn("question has no answer key, excluded from grading",
					zap.Uint("examId", examID), zap.Uint("questionId", qid))
				continue
			}
			correct, err := GradeAnswer(q.Type, key, answers[qid])
			if err != nil {
				logger.Log.Warn("question has an unknown type, excluded from grading",
					zap.Uint("examId", examID), zap.Uint("questionId", qid),
					zap.String("type", string(q.Type)))
				continue
			}
			if correct {
				correctCount++
			}
			graded = append(graded, gradedQuestion{questionID: qid, correct: correct})
		}

		// 6. 每道计分题累计一次统计，自增在数据库端完成
		for _, g := range graded {
			if err := s.StatRepo.RecordAttemptTx(tx, examID, g.questionID, g.correct); err != nil {
				return err
			}
		}

		// 7. 计算总分并写成绩。唯一索引冲突即重复交卷，整个事务回滚
		if len(graded) > 0 {
			score = int(math.Round(100 * float64(correctCount) / float64(len(graded))))
		}
		result := &model.ExamResult{
			StudentID:   studentID,
			ExamID:      examID,
			Score:       score,
			CompletedAt: time.Now(),
		}
		if err := s.ResultRepo.InsertTx(tx, result); err != nil {
			if s.ResultRepo.IsDuplicate(err) {
				return util.ErrDuplicateAttempt
			}
			return err
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, util.ErrDuplicateAttempt) {
			monitoring.SubmissionCounter.WithLabelValues("rejected").Inc()
		} else {
			monitoring.SubmissionCounter.WithLabelValues("aborted").Inc()
			logger.Log.Error("exam submission aborted, transaction rolled back",
				zap.Uint("studentId", studentID), zap.Uint("examId", examID), zap.Error(err))
		}
		return 0, err
	}

	monitoring.SubmissionCounter.WithLabelValues("committed").Inc()
	return score, nil
}

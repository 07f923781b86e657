package service

import (
	"errors"
	"testing"
	"time"

	"unicbt_backend/internal/model"
	"unicbt_backend/internal/repository"
	"unicbt_backend/internal/util"
)

func newExamService(t *testing.T) *ExamService {
	t.Helper()
	return NewExamService(repository.NewExamRepository(newTestDB(t)), nil)
}

func TestCreateExamInvalidWindow(t *testing.T) {
	svc := newExamService(t)
	now := time.Now()

	_, err := svc.CreateExam(ExamRequest{
		Subject:  "数据库原理",
		OpensAt:  now,
		ClosesAt: now.Add(-time.Hour),
	})
	if !errors.Is(err, util.ErrInvalidExamWindow) {
		t.Fatalf("error = %v, want ErrInvalidExamWindow", err)
	}
}

func TestAddQuestionKeyShape(t *testing.T) {
	svc := newExamService(t)
	now := time.Now()

	exam, err := svc.CreateExam(ExamRequest{Subject: "数据库原理", OpensAt: now, ClosesAt: now.Add(time.Hour)})
	if err != nil {
		t.Fatalf("CreateExam() error = %v", err)
	}

	cases := []struct {
		name string
		req  QuestionRequest
		want error
	}{
		{
			"choice missing label",
			QuestionRequest{Type: model.QuestionTypeChoice, Prompt: "p"},
			util.ErrInvalidAnswerKey,
		},
		{
			"choice label too long",
			QuestionRequest{Type: model.QuestionTypeChoice, Prompt: "p", ChoiceLabel: "12"},
			util.ErrInvalidAnswerKey,
		},
		{
			"choice with stray boolean key",
			QuestionRequest{Type: model.QuestionTypeChoice, Prompt: "p", ChoiceLabel: "1", BooleanText: "O"},
			util.ErrInvalidAnswerKey,
		},
		{
			"boolean missing text",
			QuestionRequest{Type: model.QuestionTypeBoolean, Prompt: "p"},
			util.ErrInvalidAnswerKey,
		},
		{
			"unknown type",
			QuestionRequest{Type: model.QuestionType("essay"), Prompt: "p"},
			util.ErrUnknownQuestionType,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddQuestion(exam.ID, tc.req)
			if !errors.Is(err, tc.want) {
				t.Errorf("AddQuestion() error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestAddQuestionAfterPublish(t *testing.T) {
	svc := newExamService(t)
	now := time.Now()

	exam, err := svc.CreateExam(ExamRequest{Subject: "数据库原理", OpensAt: now, ClosesAt: now.Add(time.Hour)})
	if err != nil {
		t.Fatalf("CreateExam() error = %v", err)
	}
	if _, err := svc.PublishExam(exam.ID); err != nil {
		t.Fatalf("PublishExam() error = %v", err)
	}

	_, err = svc.AddQuestion(exam.ID, QuestionRequest{
		Type: model.QuestionTypeChoice, Prompt: "p", ChoiceLabel: "1",
	})
	if !errors.Is(err, util.ErrExamPublished) {
		t.Fatalf("error = %v, want ErrExamPublished", err)
	}
}

func TestGetExamPaperExcludesKeys(t *testing.T) {
	svc := newExamService(t)
	now := time.Now()

	exam, err := svc.CreateExam(ExamRequest{Subject: "数据库原理", OpensAt: now, ClosesAt: now.Add(time.Hour), DurationMinutes: 60})
	if err != nil {
		t.Fatalf("CreateExam() error = %v", err)
	}
	if _, err := svc.AddQuestion(exam.ID, QuestionRequest{Type: model.QuestionTypeChoice, Prompt: "第一题", Order: 1, ChoiceLabel: "3"}); err != nil {
		t.Fatalf("AddQuestion() error = %v", err)
	}
	if _, err := svc.AddQuestion(exam.ID, QuestionRequest{Type: model.QuestionTypeBoolean, Prompt: "第二题", Order: 2, BooleanText: "O"}); err != nil {
		t.Fatalf("AddQuestion() error = %v", err)
	}

	// 未发布的考试不可取卷
	if _, err := svc.GetExamPaper(exam.ID); !errors.Is(err, util.ErrExamNotOpen) {
		t.Fatalf("unpublished paper error = %v, want ErrExamNotOpen", err)
	}

	if _, err := svc.PublishExam(exam.ID); err != nil {
		t.Fatalf("PublishExam() error = %v", err)
	}
	paper, err := svc.GetExamPaper(exam.ID)
	if err != nil {
		t.Fatalf("GetExamPaper() error = %v", err)
	}
	if len(paper.Questions) != 2 {
		t.Fatalf("paper questions = %d, want 2", len(paper.Questions))
	}
	if paper.Questions[0].Prompt != "第一题" || paper.Questions[1].Prompt != "第二题" {
		t.Errorf("paper question order wrong: %q, %q", paper.Questions[0].Prompt, paper.Questions[1].Prompt)
	}

	updated, err := svc.GetExam(exam.ID)
	if err != nil {
		t.Fatalf("GetExam() error = %v", err)
	}
	if updated.QuestionCount != 2 {
		t.Errorf("question count = %d, want 2", updated.QuestionCount)
	}
}

package util

import "errors"

var (
	ErrExamNotFound        = errors.New("exam not found")
	ErrExamNotOpen         = errors.New("exam is not open")
	ErrNotEligible         = errors.New("student is not assigned to this exam")
	ErrEmptySubmission     = errors.New("submission contains no answers")
	ErrDuplicateAttempt    = errors.New("exam already submitted")
	ErrInvalidExamWindow   = errors.New("exam close time is earlier than open time")
	ErrExamPublished       = errors.New("published exam can no longer be modified")
	ErrUnknownQuestionType = errors.New("unknown question type")
	ErrInvalidAnswerKey    = errors.New("answer key does not match question type")
	ErrStudentNotFound     = errors.New("student not found")
	ErrSurveyNotFound      = errors.New("survey not found")
	ErrSurveyNotOpen       = errors.New("survey is not open")
	ErrDuplicateResponse   = errors.New("survey already answered")
)

package service

import (
	"strings"

	"unicbt_backend/internal/model"
	"unicbt_backend/internal/util"
)

// GradeAnswer 将学生作答与标准答案比对。纯函数，无副作用。
// 选择题：单字符选项标号，区分大小写，完全相等才算对。
// 判断题：忽略大小写与首尾空白，比对 O/X 规范文本。
// 题型为封闭集合，新增题型必须在此处补充分支。
func GradeAnswer(qType model.QuestionType, key model.AnswerKey, submitted string) (bool, error) {
	switch qType {
	case model.QuestionTypeChoice:
		return submitted == key.ChoiceLabel, nil
	case model.QuestionTypeBoolean:
		return strings.EqualFold(strings.TrimSpace(submitted), strings.TrimSpace(key.BooleanText)), nil
	default:
		return false, util.ErrUnknownQuestionType
	}
}

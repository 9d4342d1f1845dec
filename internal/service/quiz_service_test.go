package service

import (
	"tamamali_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildQuestionsAnswerShorthand(t *testing.T) {
	questions := buildQuestions(model.Identification, []QuestionReq{
		{Text: "Capital of the Philippines?", Points: 5, Answer: "Manila"},
	})

	assert.Len(t, questions, 1)
	assert.Equal(t, model.Identification, questions[0].Type)
	assert.Len(t, questions[0].Options, 1)
	assert.Equal(t, "Manila", questions[0].Options[0].Text)
	assert.True(t, questions[0].Options[0].IsCorrect)
}

func TestBuildQuestionsExplicitOptions(t *testing.T) {
	questions := buildQuestions(model.MultipleChoice, []QuestionReq{
		{
			Text:   "2 + 2?",
			Points: 5,
			Options: []OptionReq{
				{Text: "3"},
				{Text: "4", IsCorrect: true},
			},
		},
	})

	assert.Len(t, questions[0].Options, 2)
	assert.False(t, questions[0].Options[0].IsCorrect)
	assert.True(t, questions[0].Options[1].IsCorrect)
}

func TestBuildQuestionsInheritsQuizType(t *testing.T) {
	questions := buildQuestions(model.MultipleChoice, []QuestionReq{
		{Text: "No explicit type", Points: 5},
		{Text: "Explicit type", Type: "IDENTIFICATION", Points: 5, Answer: "x"},
	})

	assert.Equal(t, model.MultipleChoice, questions[0].Type)
	assert.Equal(t, model.Identification, questions[1].Type)
}

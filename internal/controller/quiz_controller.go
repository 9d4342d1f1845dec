package controller

import (
	"errors"
	"strconv"
	"tamamali_backend/internal/service"
	"tamamali_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// Create godoc
// @Summary Create a quiz
// @Description Creates a quiz with its questions and options
// @Tags quiz
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.QuizReq true "Quiz definition"
// @Success 201 {object} util.Response{data=model.Quiz} "Created"
// @Failure 400 {object} util.Response "Missing required fields"
// @Router /api/quiz [post]
func (c *QuizController) Create(ctx *gin.Context) {
	var req service.QuizReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	// The authenticated teacher owns the quiz.
	req.TeacherID = util.GetUserFromContext(ctx).UserID

	quiz, err := c.QuizService.Create(req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrMissingFields):
			util.BadRequest(ctx, "Missing required fields")
		case errors.Is(err, util.ErrInvalidTeacher):
			util.BadRequest(ctx, "Invalid teacher")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, quiz)
}

// Update godoc
// @Summary Update a quiz
// @Description Overwrites the quiz and replaces its entire question list
// @Tags quiz
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Quiz ID"
// @Param   body body service.QuizReq true "Quiz definition"
// @Success 200 {object} util.Response{data=model.Quiz} "Success"
// @Failure 404 {object} util.Response "Quiz not found"
// @Router /api/quiz/{id} [put]
func (c *QuizController) Update(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "Invalid quiz id")
		return
	}

	var req service.QuizReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.Update(uint(id), req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuizNotFound):
			util.NotFound(ctx, "Quiz not found")
		case errors.Is(err, util.ErrMissingFields):
			util.BadRequest(ctx, "Missing required fields")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, quiz)
}

// Get godoc
// @Summary Get a quiz
// @Description Returns the quiz with its ordered questions and options
// @Tags quiz
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Quiz ID"
// @Success 200 {object} util.Response{data=model.Quiz} "Success"
// @Failure 404 {object} util.Response "Quiz not found"
// @Router /api/quiz/{id} [get]
func (c *QuizController) Get(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "Invalid quiz id")
		return
	}

	quiz, err := c.QuizService.Get(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx, "Quiz not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, quiz)
}

// List godoc
// @Summary List the teacher's quizzes
// @Description Returns the authenticated teacher's quizzes with question counts
// @Tags quiz
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]repository.QuizListRow} "Success"
// @Router /api/quiz [get]
func (c *QuizController) List(ctx *gin.Context) {
	teacherID := util.GetUserFromContext(ctx).UserID

	quizzes, err := c.QuizService.ListByTeacher(teacherID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, quizzes)
}

// Delete godoc
// @Summary Delete a quiz
// @Description Soft-deletes the quiz; graded attempts remain readable
// @Tags quiz
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Quiz ID"
// @Success 200 {object} util.Response "Success"
// @Failure 404 {object} util.Response "Quiz not found"
// @Router /api/quiz/{id} [delete]
func (c *QuizController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "Invalid quiz id")
		return
	}

	if err := c.QuizService.Delete(uint(id)); err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx, "Quiz not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.SuccessMessage(ctx, "Quiz deleted", nil)
}

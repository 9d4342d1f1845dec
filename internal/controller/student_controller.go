package controller

import (
	"errors"
	"strconv"
	"tamamali_backend/internal/service"
	"tamamali_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StudentController struct {
	StudentService *service.StudentService
	GradingService *service.GradingService
}

func NewStudentController(studentService *service.StudentService, gradingService *service.GradingService) *StudentController {
	return &StudentController{
		StudentService: studentService,
		GradingService: gradingService,
	}
}

// ListAssignments godoc
// @Summary List my assignments
// @Description Returns quizzes assigned to the authenticated student, directly or via groups
// @Tags student
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.QuizAssignment} "Success"
// @Router /api/student/assignments [get]
func (c *StudentController) ListAssignments(ctx *gin.Context) {
	studentID := util.GetUserFromContext(ctx).UserID

	assignments, err := c.StudentService.ListAssignments(studentID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, assignments)
}

// GetQuiz godoc
// @Summary Get an assigned quiz
// @Description Returns a quiz for taking; forbidden unless assigned to the student
// @Tags student
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Quiz ID"
// @Success 200 {object} util.Response{data=model.Quiz} "Success"
// @Failure 403 {object} util.Response "Quiz not assigned"
// @Failure 404 {object} util.Response "Quiz not found"
// @Router /api/student/quiz/{id} [get]
func (c *StudentController) GetQuiz(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "Invalid quiz id")
		return
	}

	studentID := util.GetUserFromContext(ctx).UserID

	quiz, err := c.StudentService.GetQuiz(studentID, uint(id))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuizNotFound):
			util.NotFound(ctx, "Quiz not found")
		case errors.Is(err, util.ErrQuizNotAssigned):
			util.Forbidden(ctx, "This quiz is not assigned to you")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, quiz)
}

// SubmitQuizRequest mirrors service.SubmitQuizRequest minus the student id,
// which always comes from the token.
type SubmitQuizRequest struct {
	QuizID    uint                       `json:"quizId" binding:"required"`
	Answers   []service.AnswerSubmission `json:"answers" binding:"required"`
	TimeSpent int                        `json:"timeSpent"`
}

// SubmitQuiz godoc
// @Summary Submit a quiz
// @Description Grades the submission and stores it as a new attempt
// @Tags student
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body SubmitQuizRequest true "Answers"
// @Success 201 {object} util.Response{data=service.SubmitQuizResult} "Created"
// @Failure 400 {object} util.Response "Missing required fields"
// @Failure 403 {object} util.Response "Quiz not assigned"
// @Failure 404 {object} util.Response "Quiz not found"
// @Router /api/student/submit-quiz [post]
func (c *StudentController) SubmitQuiz(ctx *gin.Context) {
	var req SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.GradingService.Submit(service.SubmitQuizRequest{
		StudentID: util.GetUserFromContext(ctx).UserID,
		QuizID:    req.QuizID,
		Answers:   req.Answers,
		TimeSpent: req.TimeSpent,
	})
	if err != nil {
		switch {
		case errors.Is(err, util.ErrMissingFields):
			util.BadRequest(ctx, "Missing required fields")
		case errors.Is(err, util.ErrQuizNotFound):
			util.NotFound(ctx, "Quiz not found")
		case errors.Is(err, util.ErrQuizNotAssigned):
			util.Forbidden(ctx, "This quiz is not assigned to you")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, result)
}

// ListAttempts godoc
// @Summary List my attempts for a quiz
// @Description Returns the student's attempts for one quiz, newest first
// @Tags student
// @Produce  json
// @Security ApiKeyAuth
// @Param   quizId path int true "Quiz ID"
// @Success 200 {object} util.Response{data=[]model.QuizAttempt} "Success"
// @Router /api/student/quiz-attempts/{quizId} [get]
func (c *StudentController) ListAttempts(ctx *gin.Context) {
	quizID, err := strconv.ParseUint(ctx.Param("quizId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "Invalid quiz id")
		return
	}

	studentID := util.GetUserFromContext(ctx).UserID

	attempts, err := c.StudentService.ListAttempts(studentID, uint(quizID))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}

// GetResult godoc
// @Summary Get an attempt result
// @Description Returns a graded attempt with per-question correctness; only the owning student may read it
// @Tags student
// @Produce  json
// @Security ApiKeyAuth
// @Param   attemptId path int true "Attempt ID"
// @Success 200 {object} util.Response{data=model.QuizAttempt} "Success"
// @Failure 404 {object} util.Response "Attempt not found"
// @Router /api/student/quiz-result/{attemptId} [get]
func (c *StudentController) GetResult(ctx *gin.Context) {
	attemptID, err := strconv.ParseUint(ctx.Param("attemptId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "Invalid attempt id")
		return
	}

	studentID := util.GetUserFromContext(ctx).UserID

	attempt, err := c.StudentService.GetResult(studentID, uint(attemptID))
	if err != nil {
		if errors.Is(err, util.ErrAttemptNotFound) {
			util.NotFound(ctx, "Attempt not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, attempt)
}

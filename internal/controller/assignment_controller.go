package controller

import (
	"errors"
	"tamamali_backend/internal/service"
	"tamamali_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssignmentController struct {
	AssignmentService *service.AssignmentService
}

func NewAssignmentController(assignmentService *service.AssignmentService) *AssignmentController {
	return &AssignmentController{AssignmentService: assignmentService}
}

// Assign godoc
// @Summary Assign a quiz
// @Description Assigns a quiz to a single student or to a group
// @Tags assignment
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.AssignmentReq true "Assignment target"
// @Success 201 {object} util.Response{data=model.QuizAssignment} "Created"
// @Failure 400 {object} util.Response "Invalid request"
// @Failure 404 {object} util.Response "Quiz not found"
// @Router /api/assignment [post]
func (c *AssignmentController) Assign(ctx *gin.Context) {
	var req service.AssignmentReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	assignment, err := c.AssignmentService.Assign(req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrMissingFields):
			util.BadRequest(ctx, "A quiz and a student or group are required")
		case errors.Is(err, util.ErrQuizNotFound):
			util.NotFound(ctx, "Quiz not found")
		case errors.Is(err, util.ErrInvalidStudent):
			util.BadRequest(ctx, "Invalid student")
		case errors.Is(err, util.ErrInvalidGroup):
			util.BadRequest(ctx, "Invalid group")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, assignment)
}

// List godoc
// @Summary List assignments
// @Description Returns every assignment for the authenticated teacher's quizzes
// @Tags assignment
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.QuizAssignment} "Success"
// @Router /api/assignment [get]
func (c *AssignmentController) List(ctx *gin.Context) {
	teacherID := util.GetUserFromContext(ctx).UserID

	assignments, err := c.AssignmentService.ListByTeacher(teacherID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, assignments)
}

package controller

import (
	"errors"
	"strconv"
	"tamamali_backend/internal/service"
	"tamamali_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// RosterController serves the teacher's views of the student body.
type RosterController struct {
	StudentService *service.StudentService
}

func NewRosterController(studentService *service.StudentService) *RosterController {
	return &RosterController{StudentService: studentService}
}

// ListStudents godoc
// @Summary List students
// @Description Returns every student, ordered by name
// @Tags roster
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.User} "Success"
// @Router /api/students [get]
func (c *RosterController) ListStudents(ctx *gin.Context) {
	students, err := c.StudentService.ListStudents()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	summaries := make([]interface{}, 0, len(students))
	for i := range students {
		summaries = append(summaries, students[i].Summary())
	}
	util.Success(ctx, summaries)
}

// GetStudent godoc
// @Summary Student detail
// @Description Returns one student with group memberships, assignments and attempt history
// @Tags roster
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Student ID"
// @Success 200 {object} util.Response{data=service.StudentDetail} "Success"
// @Failure 404 {object} util.Response "Student not found"
// @Router /api/students/{id} [get]
func (c *RosterController) GetStudent(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "Invalid student id")
		return
	}

	detail, err := c.StudentService.GetStudentDetail(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrStudentNotFound) {
			util.NotFound(ctx, "Student not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, detail)
}

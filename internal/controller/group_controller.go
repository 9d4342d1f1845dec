package controller

import (
	"errors"
	"tamamali_backend/internal/service"
	"tamamali_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GroupController struct {
	GroupService *service.GroupService
}

func NewGroupController(groupService *service.GroupService) *GroupController {
	return &GroupController{GroupService: groupService}
}

// Create godoc
// @Summary Create a group
// @Description Creates a student group with an optional initial member list
// @Tags group
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.GroupReq true "Group definition"
// @Success 201 {object} util.Response{data=model.Group} "Created"
// @Failure 400 {object} util.Response "Invalid request"
// @Router /api/group [post]
func (c *GroupController) Create(ctx *gin.Context) {
	var req service.GroupReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	req.TeacherID = util.GetUserFromContext(ctx).UserID

	group, err := c.GroupService.Create(req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrMissingFields):
			util.BadRequest(ctx, "Missing required fields")
		case errors.Is(err, util.ErrInvalidTeacher):
			util.BadRequest(ctx, "Invalid teacher")
		case errors.Is(err, util.ErrInvalidStudent):
			util.BadRequest(ctx, "One or more student ids are invalid")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, group)
}

// List godoc
// @Summary List the teacher's groups
// @Description Returns the authenticated teacher's groups with members
// @Tags group
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Group} "Success"
// @Router /api/group [get]
func (c *GroupController) List(ctx *gin.Context) {
	teacherID := util.GetUserFromContext(ctx).UserID

	groups, err := c.GroupService.ListByTeacher(teacherID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, groups)
}

package controller

import (
	"strconv"

	"levelup_backend/internal/repository"
	"levelup_backend/internal/service"
	"levelup_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserRepo   *repository.UserRepository
	Enrollment *service.EnrollmentService
}

func NewUserController(userRepo *repository.UserRepository, enrollment *service.EnrollmentService) *UserController {
	return &UserController{UserRepo: userRepo, Enrollment: enrollment}
}

// Leaderboard godoc
// @Summary 积分排行榜
// @Tags 用户
// @Produce  json
// @Security BearerAuth
// @Param   limit query int false "返回人数，默认 10"
// @Success 200 {object} util.Response{data=[]object}
// @Router /api/leaderboard [get]
func (c *UserController) Leaderboard(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	users, err := c.UserRepo.FindTopByPoints(limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	entries := make([]gin.H, 0, len(users))
	for rank, user := range users {
		entries = append(entries, gin.H{
			"rank":         rank + 1,
			"name":         user.Name,
			"totalPoints":  user.TotalPoints,
			"currentLevel": user.CurrentLevel,
			"avatar":       user.Avatar,
		})
	}
	util.Success(ctx, entries)
}

// MyEnrollments godoc
// @Summary 我的选课
// @Tags 用户
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Enrollment}
// @Router /api/enrollments [get]
func (c *UserController) MyEnrollments(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	enrollments, err := c.Enrollment.ListByUser(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, enrollments)
}

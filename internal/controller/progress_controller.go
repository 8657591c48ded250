package controller

import (
	"errors"

	"levelup_backend/internal/service"
	"levelup_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	Progression *service.ProgressionService
}

func NewProgressController(progression *service.ProgressionService) *ProgressController {
	return &ProgressController{Progression: progression}
}

// CompleteLesson godoc
// @Summary 完成课时
// @Description 幂等：重复完成返回当前进度，不再加分。课程最后一课完成时附带课程完成奖励。
// @Tags 进度
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程 ID"
// @Param   lessonId path int true "课时 ID"
// @Success 200 {object} util.Response{data=service.CompletionResult}
// @Failure 403 {object} util.Response "未报名或课时锁定"
// @Failure 404 {object} util.Response "课程或课时不存在"
// @Router /api/courses/{id}/lessons/{lessonId}/complete [post]
func (c *ProgressController) CompleteLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID := util.MustParseUint(ctx.Param("id"))
	lessonID := util.MustParseUint(ctx.Param("lessonId"))

	result, err := c.Progression.CompleteLesson(claims.UserID, courseID, lessonID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound), errors.Is(err, util.ErrLessonNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrNotEnrolled):
			util.Forbidden(ctx, "请先报名课程")
		case errors.Is(err, util.ErrLessonLocked):
			util.Forbidden(ctx, "请先完成前面的课时")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// GetStats godoc
// @Summary 学员总体进度统计
// @Tags 进度
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.ProgressStats}
// @Router /api/progress/stats [get]
func (c *ProgressController) GetStats(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	stats, err := c.Progression.Stats(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

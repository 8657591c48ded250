package controller

import (
	"errors"

	"levelup_backend/internal/service"
	"levelup_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	Catalog     *service.CatalogService
	Progression *service.ProgressionService
	Enrollment  *service.EnrollmentService
	Content     *service.ContentService
}

func NewCourseController(
	catalog *service.CatalogService,
	progression *service.ProgressionService,
	enrollment *service.EnrollmentService,
	content *service.ContentService,
) *CourseController {
	return &CourseController{
		Catalog:     catalog,
		Progression: progression,
		Enrollment:  enrollment,
		Content:     content,
	}
}

// ListCourses godoc
// @Summary 课程列表
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /api/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	courses, err := c.Catalog.ListCourses()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// GetCourse godoc
// @Summary 课程详情
// @Description 按学员视角返回课程结构，含每课时的完成与锁定状态
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程 ID"
// @Success 200 {object} util.Response{data=model.CourseView}
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID := util.MustParseUint(ctx.Param("id"))

	view, err := c.Progression.GetCourseView(claims.UserID, courseID)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, view)
}

// Enroll godoc
// @Summary 报名课程
// @Description 重复报名幂等返回已有记录
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程 ID"
// @Success 200 {object} util.Response{data=model.Enrollment} "已报名"
// @Success 201 {object} util.Response{data=model.Enrollment} "报名成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id}/enroll [post]
func (c *CourseController) Enroll(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID := util.MustParseUint(ctx.Param("id"))

	enrollment, created, err := c.Enrollment.Enroll(claims.UserID, courseID)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	if created {
		util.Created(ctx, enrollment)
	} else {
		util.Success(ctx, enrollment)
	}
}

// GetProgress godoc
// @Summary 课程进度
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程 ID"
// @Success 200 {object} util.Response{data=model.CourseProgress}
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id}/progress [get]
func (c *CourseController) GetProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID := util.MustParseUint(ctx.Param("id"))

	course, err := c.Catalog.GetCourseByID(courseID)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	progress, err := c.Progression.CourseProgressFor(claims.UserID, course)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// GetLessonContent godoc
// @Summary 课时 markdown 内容
// @Description 从内容仓库拉取课时正文。课时锁定时返回 403。
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程 ID"
// @Param   lessonId path int true "课时 ID"
// @Success 200 {object} util.Response{data=object}
// @Failure 403 {object} util.Response "课时未解锁"
// @Failure 404 {object} util.Response "课程或课时不存在"
// @Failure 502 {object} util.Response "内容仓库不可用"
// @Router /api/courses/{id}/lessons/{lessonId}/content [get]
func (c *CourseController) GetLessonContent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID := util.MustParseUint(ctx.Param("id"))
	lessonID := util.MustParseUint(ctx.Param("lessonId"))

	course, err := c.Catalog.GetCourseByID(courseID)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	lesson, err := c.Catalog.GetLessonByID(course, lessonID)
	if err != nil {
		util.NotFound(ctx)
		return
	}

	if err := c.Progression.EnsureUnlocked(claims.UserID, course, lessonID); err != nil {
		switch {
		case errors.Is(err, util.ErrNotEnrolled):
			util.Forbidden(ctx, "请先报名课程")
		case errors.Is(err, util.ErrLessonLocked):
			util.Forbidden(ctx, "请先完成前面的课时")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	content, err := c.Content.FetchLessonMarkdown(ctx.Request.Context(), course.Slug, lesson.FilePath)
	if err != nil {
		if errors.Is(err, util.ErrContentUnavailable) {
			util.Error(ctx, 502, "课程内容暂时不可用")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"content": content, "lessonId": lesson.ID, "title": lesson.Title})
}

// GetLesson godoc
// @Summary 课时详情
// @Description 课时元数据加当前学员的完成/锁定状态
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程 ID"
// @Param   lessonId path int true "课时 ID"
// @Success 200 {object} util.Response{data=model.LessonView}
// @Failure 404 {object} util.Response "课程或课时不存在"
// @Router /api/courses/{id}/lessons/{lessonId} [get]
func (c *CourseController) GetLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID := util.MustParseUint(ctx.Param("id"))
	lessonID := util.MustParseUint(ctx.Param("lessonId"))

	view, err := c.Progression.GetLessonView(claims.UserID, courseID, lessonID)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) || errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, view)
}

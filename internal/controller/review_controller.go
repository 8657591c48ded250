package controller

import (
	"errors"

	"levelup_backend/internal/service"
	"levelup_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	Reviews *service.ReviewService
}

func NewReviewController(reviews *service.ReviewService) *ReviewController {
	return &ReviewController{Reviews: reviews}
}

// ReviewRequestBody 求助请求
type ReviewRequestBody struct {
	Question  string `json:"question" binding:"required"`
	URL       string `json:"url"`
	GitHubURL string `json:"githubUrl"`
}

// SubmitRequest godoc
// @Summary 发起求助请求
// @Tags 求助
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程 ID"
// @Param   lessonId path int true "课时 ID"
// @Param   body body ReviewRequestBody true "求助内容"
// @Success 201 {object} util.Response{data=model.ReviewRequest}
// @Failure 404 {object} util.Response "课程或课时不存在"
// @Router /api/courses/{id}/lessons/{lessonId}/review-requests [post]
func (c *ReviewController) SubmitRequest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID := util.MustParseUint(ctx.Param("id"))
	lessonID := util.MustParseUint(ctx.Param("lessonId"))

	var req ReviewRequestBody
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	request, err := c.Reviews.SubmitRequest(claims.UserID, courseID, lessonID, req.Question, req.URL, req.GitHubURL)
	if err != nil {
		var validation *util.ValidationError
		switch {
		case errors.Is(err, util.ErrCourseNotFound), errors.Is(err, util.ErrLessonNotFound):
			util.NotFound(ctx)
		case errors.As(err, &validation):
			util.BadRequest(ctx, validation.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, request)
}

// ListByLesson godoc
// @Summary 课时下的求助请求
// @Tags 求助
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程 ID"
// @Param   lessonId path int true "课时 ID"
// @Success 200 {object} util.Response{data=[]model.ReviewRequest}
// @Router /api/courses/{id}/lessons/{lessonId}/review-requests [get]
func (c *ReviewController) ListByLesson(ctx *gin.Context) {
	lessonID := util.MustParseUint(ctx.Param("lessonId"))

	requests, err := c.Reviews.ListByLesson(lessonID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, requests)
}

// RequestFeedbackBody 求助反馈
type RequestFeedbackBody struct {
	Rating   int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Feedback string `json:"feedback" binding:"required"`
}

// SubmitFeedback godoc
// @Summary 回复求助请求
// @Description 反馈人获得积分和金币，不能回复自己的请求
// @Tags 求助
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "请求 ID"
// @Param   body body RequestFeedbackBody true "反馈内容"
// @Success 201 {object} util.Response{data=model.RequestReview}
// @Failure 404 {object} util.Response "请求不存在"
// @Failure 409 {object} util.Response "请求已关闭"
// @Router /api/review-requests/{id}/reviews [post]
func (c *ReviewController) SubmitFeedback(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	requestID := util.MustParseUint(ctx.Param("id"))

	var req RequestFeedbackBody
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	review, err := c.Reviews.SubmitFeedback(claims.UserID, requestID, req.Rating, req.Feedback)
	if err != nil {
		var validation *util.ValidationError
		switch {
		case errors.Is(err, util.ErrRequestNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrRequestResolved):
			util.Conflict(ctx, "该请求已关闭")
		case errors.Is(err, util.ErrOwnSubmission):
			util.BadRequest(ctx, "不能回复自己的求助请求")
		case errors.As(err, &validation):
			util.BadRequest(ctx, validation.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, review)
}

// Resolve godoc
// @Summary 关闭求助请求
// @Description 仅发起人可关闭
// @Tags 求助
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "请求 ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response "无权操作"
// @Failure 404 {object} util.Response "请求不存在"
// @Router /api/review-requests/{id}/resolve [post]
func (c *ReviewController) Resolve(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	requestID := util.MustParseUint(ctx.Param("id"))

	if err := c.Reviews.Resolve(claims.UserID, requestID); err != nil {
		switch {
		case errors.Is(err, util.ErrRequestNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrUnauthorized):
			util.Forbidden(ctx, "仅发起人可关闭请求")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"resolved": true})
}

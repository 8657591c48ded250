package controller

import (
	"errors"

	"levelup_backend/internal/service"
	"levelup_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SubmissionController struct {
	Submissions *service.SubmissionService
}

func NewSubmissionController(submissions *service.SubmissionService) *SubmissionController {
	return &SubmissionController{Submissions: submissions}
}

// Submit godoc
// @Summary 提交作业
// @Description multipart 表单提交。按课时定义的提交要求校验，全部违规一次性返回。
// @Description assignment/project 类型提交成功即完成该课时。
// @Tags 提交
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程 ID"
// @Param   lessonId path int true "课时 ID"
// @Param   url formData string false "作品链接"
// @Param   githubUrl formData string false "GitHub 仓库链接"
// @Param   notes formData string false "说明"
// @Param   files formData file false "提交文件"
// @Success 201 {object} util.Response{data=object}
// @Failure 400 {object} util.Response "校验失败"
// @Failure 403 {object} util.Response "未报名或课时锁定"
// @Router /api/courses/{id}/lessons/{lessonId}/submissions [post]
func (c *SubmissionController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID := util.MustParseUint(ctx.Param("id"))
	lessonID := util.MustParseUint(ctx.Param("lessonId"))

	payload := &service.SubmissionPayload{
		URL:       ctx.PostForm("url"),
		GitHubURL: ctx.PostForm("githubUrl"),
		Notes:     ctx.PostForm("notes"),
	}

	form, err := ctx.MultipartForm()
	if err == nil && form != nil {
		for _, header := range form.File["files"] {
			file, err := header.Open()
			if err != nil {
				util.BadRequest(ctx, "无法读取上传文件: "+header.Filename)
				return
			}
			defer file.Close()
			payload.Files = append(payload.Files, service.SubmissionUpload{
				Name:        header.Filename,
				Size:        header.Size,
				ContentType: header.Header.Get("Content-Type"),
				Reader:      file,
			})
		}
	}

	submission, completion, err := c.Submissions.Submit(ctx.Request.Context(), claims.UserID, courseID, lessonID, payload)
	if err != nil {
		var validation *util.ValidationError
		switch {
		case errors.As(err, &validation):
			ctx.JSON(400, util.Response{Code: 400, Message: "提交校验失败", Data: gin.H{"violations": validation.Violations}})
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

	util.Created(ctx, gin.H{"submission": submission, "completion": completion})
}

// PeerQueue godoc
// @Summary 待互评队列
// @Description 同课时其他学员的提交，不含本人
// @Tags 提交
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程 ID"
// @Param   lessonId path int true "课时 ID"
// @Success 200 {object} util.Response{data=[]model.Submission}
// @Router /api/courses/{id}/lessons/{lessonId}/submissions/peer-queue [get]
func (c *SubmissionController) PeerQueue(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID := util.MustParseUint(ctx.Param("id"))
	lessonID := util.MustParseUint(ctx.Param("lessonId"))

	queue, err := c.Submissions.PeerQueue(claims.UserID, courseID, lessonID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, queue)
}

// PeerReviewRequest 互评请求
type PeerReviewRequest struct {
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Feedback string `json:"feedback" binding:"required"`
}

// SubmitPeerReview godoc
// @Summary 互评他人提交
// @Description 评审人获得积分和金币，不能互评本人提交
// @Tags 提交
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "提交 ID"
// @Param   body body PeerReviewRequest true "互评内容"
// @Success 201 {object} util.Response{data=model.PeerReview}
// @Failure 400 {object} util.Response "不能互评自己的提交"
// @Failure 404 {object} util.Response "提交不存在"
// @Router /api/submissions/{id}/reviews [post]
func (c *SubmissionController) SubmitPeerReview(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	submissionID := util.MustParseUint(ctx.Param("id"))

	var req PeerReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	review, err := c.Submissions.SubmitPeerReview(claims.UserID, submissionID, req.Rating, req.Feedback)
	if err != nil {
		var validation *util.ValidationError
		switch {
		case errors.Is(err, util.ErrSubmissionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrOwnSubmission):
			util.BadRequest(ctx, "不能互评自己的提交")
		case errors.As(err, &validation):
			util.BadRequest(ctx, validation.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, review)
}

// ListForLesson godoc
// @Summary 课时下的提交列表
// @Tags 提交
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程 ID"
// @Param   lessonId path int true "课时 ID"
// @Success 200 {object} util.Response{data=[]model.Submission}
// @Router /api/courses/{id}/lessons/{lessonId}/submissions [get]
func (c *SubmissionController) ListForLesson(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("id"))
	lessonID := util.MustParseUint(ctx.Param("lessonId"))

	submissions, err := c.Submissions.ListForLesson(courseID, lessonID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, submissions)
}

// ListReviews godoc
// @Summary 某个提交收到的互评
// @Tags 提交
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "提交 ID"
// @Success 200 {object} util.Response{data=[]model.PeerReview}
// @Failure 404 {object} util.Response "提交不存在"
// @Router /api/submissions/{id}/reviews [get]
func (c *SubmissionController) ListReviews(ctx *gin.Context) {
	submissionID := util.MustParseUint(ctx.Param("id"))

	reviews, err := c.Submissions.ListReviews(submissionID)
	if err != nil {
		if errors.Is(err, util.ErrSubmissionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, reviews)
}

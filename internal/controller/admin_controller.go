package controller

import (
	"errors"

	"levelup_backend/internal/model"
	"levelup_backend/internal/repository"
	"levelup_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AdminController 课程目录与证书模板管理，仅管理员可用
type AdminController struct {
	CourseRepo      *repository.CourseRepository
	CertificateRepo *repository.CertificateRepository
}

func NewAdminController(courseRepo *repository.CourseRepository, certificateRepo *repository.CertificateRepository) *AdminController {
	return &AdminController{CourseRepo: courseRepo, CertificateRepo: certificateRepo}
}

// CreateCourse godoc
// @Summary 创建课程
// @Description 创建完整课程结构（章节与课时内联）
// @Tags 管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body model.Course true "课程结构"
// @Success 201 {object} util.Response{data=model.Course}
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/admin/courses [post]
func (c *AdminController) CreateCourse(ctx *gin.Context) {
	var course model.Course
	if err := ctx.ShouldBindJSON(&course); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if course.Slug == "" || course.Title == "" {
		util.BadRequest(ctx, "slug 和 title 不能为空")
		return
	}

	if err := c.CourseRepo.Create(&course); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// CreateCertificate godoc
// @Summary 创建证书模板
// @Tags 管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body model.Certificate true "证书模板"
// @Success 201 {object} util.Response{data=model.Certificate}
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/admin/certificates [post]
func (c *AdminController) CreateCertificate(ctx *gin.Context) {
	var certificate model.Certificate
	if err := ctx.ShouldBindJSON(&certificate); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if _, err := c.CourseRepo.FindByID(certificate.CourseID); err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	if err := c.CertificateRepo.Create(&certificate); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, certificate)
}

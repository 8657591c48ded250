package controller

import (
	"errors"

	"levelup_backend/internal/service"
	"levelup_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CertificateController struct {
	Certificates *service.CertificateService
}

func NewCertificateController(certificates *service.CertificateService) *CertificateController {
	return &CertificateController{Certificates: certificates}
}

// ListCertificates godoc
// @Summary 证书列表
// @Description 全部证书模板，标记当前学员是否已领取
// @Tags 证书
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.CertificateView}
// @Router /api/certificates [get]
func (c *CertificateController) ListCertificates(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	views, err := c.Certificates.ListForUser(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, views)
}

// ListClaimed godoc
// @Summary 已领取的证书
// @Tags 证书
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.UserCertificate}
// @Router /api/certificates/claimed [get]
func (c *CertificateController) ListClaimed(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	certificates, err := c.Certificates.ListClaimed(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, certificates)
}

// Claim godoc
// @Summary 领取证书
// @Description 需要已完成对应课程。重复领取返回 409 和已有记录。
// @Tags 证书
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "证书 ID"
// @Success 201 {object} util.Response{data=model.UserCertificate}
// @Failure 403 {object} util.Response "课程未完成"
// @Failure 404 {object} util.Response "证书不存在"
// @Failure 409 {object} util.Response "证书已领取"
// @Router /api/certificates/{id}/claim [post]
func (c *CertificateController) Claim(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	certificateID := util.MustParseUint(ctx.Param("id"))

	claim, err := c.Certificates.Claim(claims.UserID, certificateID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCertificateNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrCertificateNotClaimable):
			util.Forbidden(ctx, "该证书暂不可领取")
		case errors.Is(err, util.ErrCourseNotCompleted):
			util.Forbidden(ctx, "请先完成对应课程")
		case errors.Is(err, util.ErrCertificateClaimed):
			ctx.JSON(409, util.Response{Code: 409, Message: "证书已领取", Data: claim})
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, claim)
}

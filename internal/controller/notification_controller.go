package controller

import (
	"strconv"

	"levelup_backend/internal/service"
	"levelup_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	Notifications *service.NotificationService
}

func NewNotificationController(notifications *service.NotificationService) *NotificationController {
	return &NotificationController{Notifications: notifications}
}

// List godoc
// @Summary 用户通知列表
// @Tags 通知
// @Produce  json
// @Security BearerAuth
// @Param   limit query int false "返回条数，默认 50"
// @Success 200 {object} util.Response{data=[]model.Notification}
// @Router /api/notifications [get]
func (c *NotificationController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))

	notifications, err := c.Notifications.List(claims.UserID, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, notifications)
}

// MarkRead godoc
// @Summary 标记通知已读
// @Tags 通知
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "通知 ID"
// @Success 200 {object} util.Response
// @Router /api/notifications/{id}/read [post]
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	notificationID := util.MustParseUint(ctx.Param("id"))

	if err := c.Notifications.MarkRead(claims.UserID, notificationID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"read": true})
}

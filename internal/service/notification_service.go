package service

import (
	"levelup_backend/internal/model"
	"levelup_backend/internal/repository"
	"levelup_backend/pkg/logger"

	"go.uber.org/zap"
)

// NotificationService 用户通知。Notify 是 fire-and-forget：
// 写入失败只记日志，调用方的业务流程不受影响。
type NotificationService struct {
	NotificationRepo *repository.NotificationRepository
}

func NewNotificationService(notificationRepo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{NotificationRepo: notificationRepo}
}

func (s *NotificationService) Notify(userID uint, message string, severity model.NotificationSeverity) {
	notification := &model.Notification{
		UserID:   userID,
		Message:  message,
		Severity: severity,
	}
	if err := s.NotificationRepo.Create(notification); err != nil {
		logger.Log.Warn("failed to store notification",
			zap.Uint("user_id", userID),
			zap.String("message", message),
			zap.Error(err))
	}
}

func (s *NotificationService) List(userID uint, limit int) ([]model.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.NotificationRepo.FindByUser(userID, limit)
}

func (s *NotificationService) MarkRead(userID, notificationID uint) error {
	return s.NotificationRepo.MarkRead(userID, notificationID)
}

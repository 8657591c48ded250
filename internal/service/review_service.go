package service

import (
	"strings"
	"time"

	"levelup_backend/internal/model"
	"levelup_backend/internal/repository"
	"levelup_backend/internal/util"

	"gorm.io/gorm"
)

const (
	reviewFeedbackPoints = 15
	reviewFeedbackCoins  = 8
)

// ReviewService 求助请求与反馈。反馈人获得积分和金币激励。
type ReviewService struct {
	DB            *gorm.DB
	Catalog       *CatalogService
	Rewards       *RewardsService
	RequestRepo   *repository.ReviewRequestRepository
	Notifications *NotificationService
}

func NewReviewService(
	db *gorm.DB,
	catalog *CatalogService,
	rewards *RewardsService,
	requestRepo *repository.ReviewRequestRepository,
	notifications *NotificationService,
) *ReviewService {
	return &ReviewService{
		DB:            db,
		Catalog:       catalog,
		Rewards:       rewards,
		RequestRepo:   requestRepo,
		Notifications: notifications,
	}
}

// SubmitRequest 发起求助。问题描述必填。
func (s *ReviewService) SubmitRequest(userID, courseID, lessonID uint, question, url, githubURL string) (*model.ReviewRequest, error) {
	if strings.TrimSpace(question) == "" {
		return nil, util.NewValidationError("问题描述不能为空")
	}

	course, err := s.Catalog.GetCourseByID(courseID)
	if err != nil {
		return nil, err
	}
	if _, err := s.Catalog.GetLessonByID(course, lessonID); err != nil {
		return nil, err
	}

	request := &model.ReviewRequest{
		UserID:      userID,
		CourseID:    courseID,
		LessonID:    lessonID,
		Question:    question,
		URL:         url,
		GitHubURL:   githubURL,
		SubmittedAt: time.Now(),
		Status:      model.ReviewRequestOpen,
	}
	if err := s.RequestRepo.Create(request); err != nil {
		return nil, err
	}
	return request, nil
}

func (s *ReviewService) ListByLesson(lessonID uint) ([]model.ReviewRequest, error) {
	return s.RequestRepo.FindByLesson(lessonID)
}

// SubmitFeedback 回复求助请求，反馈人获得积分和金币
func (s *ReviewService) SubmitFeedback(reviewerID, requestID uint, rating int, feedback string) (*model.RequestReview, error) {
	request, err := s.RequestRepo.FindByID(requestID)
	if err != nil {
		return nil, err
	}
	if request.Status == model.ReviewRequestResolved {
		return nil, util.ErrRequestResolved
	}
	if request.UserID == reviewerID {
		return nil, util.ErrOwnSubmission
	}
	if strings.TrimSpace(feedback) == "" {
		return nil, util.NewValidationError("反馈内容不能为空")
	}

	review := &model.RequestReview{
		RequestID:   requestID,
		ReviewerID:  reviewerID,
		Rating:      rating,
		Feedback:    feedback,
		SubmittedAt: time.Now(),
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			return err
		}
		if _, err := s.Rewards.AddPointsIn(tx, reviewerID, reviewFeedbackPoints); err != nil {
			return err
		}
		return s.Rewards.AddCoinsIn(tx, reviewerID, reviewFeedbackCoins)
	})
	if err != nil {
		return nil, err
	}

	s.Notifications.Notify(request.UserID, "你的求助请求收到了新的反馈", model.SeverityInfo)
	return review, nil
}

// Resolve 求助人关闭自己的请求
func (s *ReviewService) Resolve(userID, requestID uint) error {
	request, err := s.RequestRepo.FindByID(requestID)
	if err != nil {
		return err
	}
	if request.UserID != userID {
		return util.ErrUnauthorized
	}
	return s.RequestRepo.UpdateStatus(requestID, model.ReviewRequestResolved)
}

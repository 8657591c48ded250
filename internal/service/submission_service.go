package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"levelup_backend/internal/model"
	"levelup_backend/internal/repository"
	"levelup_backend/internal/util"
	"levelup_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	peerReviewPoints = 10
	peerReviewCoins  = 5
)

// SubmissionUpload 一个待上传的提交文件
type SubmissionUpload struct {
	Name        string
	Size        int64
	ContentType string
	Reader      io.Reader
}

// SubmissionPayload 提交请求体
type SubmissionPayload struct {
	URL       string
	GitHubURL string
	Notes     string
	Files     []SubmissionUpload
}

// SubmissionService 作业提交与互评。校验按课时定义的提交要求执行，
// 全部违规一次性返回。assignment/project 提交成功即触发完成该课时。
type SubmissionService struct {
	DB             *gorm.DB
	Catalog        *CatalogService
	Progression    *ProgressionService
	Rewards        *RewardsService
	SubmissionRepo *repository.SubmissionRepository
	Storage        *StorageService
	Notifications  *NotificationService
}

func NewSubmissionService(
	db *gorm.DB,
	catalog *CatalogService,
	progression *ProgressionService,
	rewards *RewardsService,
	submissionRepo *repository.SubmissionRepository,
	storage *StorageService,
	notifications *NotificationService,
) *SubmissionService {
	return &SubmissionService{
		DB:             db,
		Catalog:        catalog,
		Progression:    progression,
		Rewards:        rewards,
		SubmissionRepo: submissionRepo,
		Storage:        storage,
		Notifications:  notifications,
	}
}

// ValidatePayload 按课时提交要求校验，返回全部违规项
func (s *SubmissionService) ValidatePayload(lesson *model.Lesson, payload *SubmissionPayload) error {
	if !lesson.HasSubmissionRequirements() {
		return nil
	}

	var violations []string

	if lesson.RequiresURL && strings.TrimSpace(payload.URL) == "" {
		violations = append(violations, "需要提供作品链接")
	}
	if lesson.RequiresGitHub && strings.TrimSpace(payload.GitHubURL) == "" {
		violations = append(violations, "需要提供 GitHub 仓库链接")
	}

	if lesson.MaxFiles > 0 && len(payload.Files) > lesson.MaxFiles {
		violations = append(violations, fmt.Sprintf("最多上传 %d 个文件，当前 %d 个", lesson.MaxFiles, len(payload.Files)))
	}

	allowed := map[string]bool{}
	if lesson.AllowedTypes != "" {
		for _, ext := range strings.Split(lesson.AllowedTypes, ",") {
			allowed[strings.ToLower(strings.TrimSpace(ext))] = true
		}
	}

	maxBytes := int64(lesson.MaxSizeMB) * 1024 * 1024
	for _, file := range payload.Files {
		ext := strings.ToLower(filepath.Ext(file.Name))
		if len(allowed) > 0 && !allowed[ext] {
			violations = append(violations, fmt.Sprintf("文件 %s 类型不允许，仅支持 %s", file.Name, lesson.AllowedTypes))
		}
		if maxBytes > 0 && file.Size > maxBytes {
			violations = append(violations, fmt.Sprintf("文件 %s 超过 %dMB 上限", file.Name, lesson.MaxSizeMB))
		}
	}

	if len(violations) > 0 {
		return util.NewValidationError(violations...)
	}
	return nil
}

// Submit 提交作业。校验通过后先落文件，再建记录，最后触发课时完成。
func (s *SubmissionService) Submit(ctx context.Context, userID, courseID, lessonID uint, payload *SubmissionPayload) (*model.Submission, *CompletionResult, error) {
	course, err := s.Catalog.GetCourseByID(courseID)
	if err != nil {
		return nil, nil, err
	}
	lesson, err := s.Catalog.GetLessonByID(course, lessonID)
	if err != nil {
		return nil, nil, err
	}

	if err := s.Progression.EnsureUnlocked(userID, course, lessonID); err != nil {
		return nil, nil, err
	}

	if err := s.ValidatePayload(lesson, payload); err != nil {
		return nil, nil, err
	}

	submission := &model.Submission{
		UserID:      userID,
		CourseID:    courseID,
		LessonID:    lessonID,
		URL:         payload.URL,
		GitHubURL:   payload.GitHubURL,
		Notes:       payload.Notes,
		SubmittedAt: time.Now(),
		Status:      model.SubmissionSubmitted,
	}

	for _, upload := range payload.Files {
		key := "submissions/" + uuid.New().String() + strings.ToLower(filepath.Ext(upload.Name))
		url, err := s.Storage.Upload(ctx, key, upload.Reader, upload.Size, upload.ContentType)
		if err != nil {
			logger.Log.Error("submission file upload failed", zap.String("file", upload.Name), zap.Error(err))
			return nil, nil, err
		}
		submission.Files = append(submission.Files, model.SubmissionFile{
			Name:       upload.Name,
			Size:       upload.Size,
			StorageKey: key,
			URL:        url,
		})
	}

	if err := s.DB.Create(submission).Error; err != nil {
		// 回收已落盘的文件，避免留下无主对象
		for _, file := range submission.Files {
			if delErr := s.Storage.Delete(ctx, file.StorageKey); delErr != nil {
				logger.Log.Warn("failed to clean up submission file", zap.String("key", file.StorageKey), zap.Error(delErr))
			}
		}
		return nil, nil, err
	}

	// assignment/project 提交即视为完成该课时
	var completion *CompletionResult
	if lesson.Type == model.LessonTypeAssignment || lesson.Type == model.LessonTypeProject {
		completion, err = s.Progression.CompleteLesson(userID, courseID, lessonID)
		if err != nil {
			return nil, nil, err
		}
	}

	return submission, completion, nil
}

func (s *SubmissionService) GetByID(id uint) (*model.Submission, error) {
	return s.SubmissionRepo.FindByID(id)
}

// PeerQueue 待互评队列，不含本人的提交
func (s *SubmissionService) PeerQueue(userID, courseID, lessonID uint) ([]model.Submission, error) {
	return s.SubmissionRepo.FindPeerQueue(courseID, lessonID, userID)
}

// SubmitPeerReview 互评他人提交，评审人获得积分和金币
func (s *SubmissionService) SubmitPeerReview(reviewerID, submissionID uint, rating int, feedback string) (*model.PeerReview, error) {
	submission, err := s.SubmissionRepo.FindByID(submissionID)
	if err != nil {
		return nil, err
	}
	if submission.UserID == reviewerID {
		return nil, util.ErrOwnSubmission
	}
	if rating < 1 || rating > 5 {
		return nil, util.NewValidationError("评分必须在 1-5 之间")
	}
	if strings.TrimSpace(feedback) == "" {
		return nil, util.NewValidationError("评语不能为空")
	}

	review := &model.PeerReview{
		SubmissionID: submissionID,
		ReviewerID:   reviewerID,
		Rating:       rating,
		Feedback:     feedback,
		SubmittedAt:  time.Now(),
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Submission{}).Where("id = ?", submissionID).
			Update("status", model.SubmissionReviewed).Error; err != nil {
			return err
		}
		if _, err := s.Rewards.AddPointsIn(tx, reviewerID, peerReviewPoints); err != nil {
			return err
		}
		return s.Rewards.AddCoinsIn(tx, reviewerID, peerReviewCoins)
	})
	if err != nil {
		return nil, err
	}

	s.Notifications.Notify(submission.UserID, "你的提交收到了一条新互评", model.SeverityInfo)
	return review, nil
}

// ListForLesson 课时下的全部提交
func (s *SubmissionService) ListForLesson(courseID, lessonID uint) ([]model.Submission, error) {
	return s.SubmissionRepo.FindByLesson(courseID, lessonID)
}

// ListReviews 某个提交收到的互评
func (s *SubmissionService) ListReviews(submissionID uint) ([]model.PeerReview, error) {
	if _, err := s.SubmissionRepo.FindByID(submissionID); err != nil {
		return nil, err
	}
	return s.SubmissionRepo.FindReviews(submissionID)
}

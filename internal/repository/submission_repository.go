package repository

import (
	"errors"

	"levelup_backend/internal/model"
	"levelup_backend/internal/util"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) FindByID(id uint) (*model.Submission, error) {
	var submission model.Submission
	err := r.DB.
		Preload("Files").
		Preload("PeerReviews").
		First(&submission, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSubmissionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *SubmissionRepository) FindByLesson(courseID, lessonID uint) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.DB.
		Preload("Files").
		Preload("PeerReviews").
		Where("course_id = ? AND lesson_id = ?", courseID, lessonID).
		Order("submitted_at DESC").
		Find(&submissions).Error
	return submissions, err
}

// FindPeerQueue 待互评队列：同一课时下其他学员的提交
func (r *SubmissionRepository) FindPeerQueue(courseID, lessonID, excludeUserID uint) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.DB.
		Preload("Files").
		Preload("PeerReviews").
		Where("course_id = ? AND lesson_id = ? AND user_id <> ?", courseID, lessonID, excludeUserID).
		Order("submitted_at DESC").
		Find(&submissions).Error
	return submissions, err
}

func (r *SubmissionRepository) FindReviews(submissionID uint) ([]model.PeerReview, error) {
	var reviews []model.PeerReview
	err := r.DB.Where("submission_id = ?", submissionID).Order("submitted_at DESC").Find(&reviews).Error
	return reviews, err
}

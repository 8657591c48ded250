package repository

import (
	"errors"

	"levelup_backend/internal/model"
	"levelup_backend/internal/util"

	"gorm.io/gorm"
)

type ReviewRequestRepository struct {
	DB *gorm.DB
}

func NewReviewRequestRepository(db *gorm.DB) *ReviewRequestRepository {
	return &ReviewRequestRepository{DB: db}
}

func (r *ReviewRequestRepository) Create(request *model.ReviewRequest) error {
	return r.DB.Create(request).Error
}

func (r *ReviewRequestRepository) FindByID(id uint) (*model.ReviewRequest, error) {
	var request model.ReviewRequest
	err := r.DB.Preload("Reviews").First(&request, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *ReviewRequestRepository) FindByLesson(lessonID uint) ([]model.ReviewRequest, error) {
	var requests []model.ReviewRequest
	err := r.DB.
		Preload("Reviews").
		Where("lesson_id = ?", lessonID).
		Order("submitted_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *ReviewRequestRepository) UpdateStatus(id uint, status model.ReviewRequestStatus) error {
	return r.DB.Model(&model.ReviewRequest{}).Where("id = ?", id).Update("status", status).Error
}

package repository

import (
	"errors"

	"levelup_backend/internal/model"

	"gorm.io/gorm"
)

type CompletionRepository struct {
	DB *gorm.DB
}

func NewCompletionRepository(db *gorm.DB) *CompletionRepository {
	return &CompletionRepository{DB: db}
}

// Find 返回 (nil, nil) 表示课程未完成
func (r *CompletionRepository) Find(userID, courseID uint) (*model.Completion, error) {
	var completion model.Completion
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&completion).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &completion, nil
}

func (r *CompletionRepository) FindByUser(userID uint) ([]model.Completion, error) {
	var completions []model.Completion
	err := r.DB.Where("user_id = ?", userID).Find(&completions).Error
	return completions, err
}

func (r *CompletionRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Completion{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

package repository

import (
	"errors"

	"levelup_backend/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// Find 返回 (nil, nil) 表示课时未完成
func (r *ProgressRepository) Find(userID, lessonID uint) (*model.Progress, error) {
	var progress model.Progress
	err := r.DB.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *ProgressRepository) FindByCourse(userID, courseID uint) ([]model.Progress, error) {
	var records []model.Progress
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).Find(&records).Error
	return records, err
}

// CompletedSet 返回学员在某课程下已完成课时的集合
func (r *ProgressRepository) CompletedSet(userID, courseID uint) (map[uint]bool, error) {
	records, err := r.FindByCourse(userID, courseID)
	if err != nil {
		return nil, err
	}
	set := make(map[uint]bool, len(records))
	for _, p := range records {
		set[p.LessonID] = true
	}
	return set, nil
}

func (r *ProgressRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Progress{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

package repository

import (
	"errors"

	"levelup_backend/internal/model"

	"gorm.io/gorm"
)

type TokenClaimRepository struct {
	DB *gorm.DB
}

func NewTokenClaimRepository(db *gorm.DB) *TokenClaimRepository {
	return &TokenClaimRepository{DB: db}
}

// Find 返回 (nil, nil) 表示该等级尚未领取
func (r *TokenClaimRepository) Find(userID uint, level int) (*model.TokenClaim, error) {
	var claim model.TokenClaim
	err := r.DB.Where("user_id = ? AND level = ?", userID, level).First(&claim).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &claim, nil
}

func (r *TokenClaimRepository) FindByUser(userID uint) ([]model.TokenClaim, error) {
	var claims []model.TokenClaim
	err := r.DB.Where("user_id = ?", userID).Order("level DESC").Find(&claims).Error
	return claims, err
}

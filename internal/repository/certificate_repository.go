package repository

import (
	"errors"

	"levelup_backend/internal/model"
	"levelup_backend/internal/util"

	"gorm.io/gorm"
)

type CertificateRepository struct {
	DB *gorm.DB
}

func NewCertificateRepository(db *gorm.DB) *CertificateRepository {
	return &CertificateRepository{DB: db}
}

func (r *CertificateRepository) FindByID(id uint) (*model.Certificate, error) {
	var cert model.Certificate
	err := r.DB.First(&cert, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCertificateNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cert, nil
}

func (r *CertificateRepository) FindAll() ([]model.Certificate, error) {
	var certs []model.Certificate
	err := r.DB.Find(&certs).Error
	return certs, err
}

// FindClaim 返回 (nil, nil) 表示尚未领取
func (r *CertificateRepository) FindClaim(userID, certificateID uint) (*model.UserCertificate, error) {
	var claim model.UserCertificate
	err := r.DB.Where("user_id = ? AND certificate_id = ?", userID, certificateID).First(&claim).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &claim, nil
}

func (r *CertificateRepository) FindClaimsByUser(userID uint) ([]model.UserCertificate, error) {
	var claims []model.UserCertificate
	err := r.DB.Where("user_id = ?", userID).Order("claimed_at DESC").Find(&claims).Error
	return claims, err
}

func (r *CertificateRepository) Create(certificate *model.Certificate) error {
	return r.DB.Create(certificate).Error
}

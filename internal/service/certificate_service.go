package service

import (
	"time"

	"levelup_backend/internal/model"
	"levelup_backend/internal/repository"
	"levelup_backend/internal/util"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	certificateClaimPoints = 100
	certificateClaimCoins  = 50
)

// CertificateService 课程证书领取。claimed 单向生效，每证书每人一次。
type CertificateService struct {
	DB              *gorm.DB
	CertificateRepo *repository.CertificateRepository
	CompletionRepo  *repository.CompletionRepository
	Rewards         *RewardsService
	Notifications   *NotificationService
}

func NewCertificateService(
	db *gorm.DB,
	certificateRepo *repository.CertificateRepository,
	completionRepo *repository.CompletionRepository,
	rewards *RewardsService,
	notifications *NotificationService,
) *CertificateService {
	return &CertificateService{
		DB:              db,
		CertificateRepo: certificateRepo,
		CompletionRepo:  completionRepo,
		Rewards:         rewards,
		Notifications:   notifications,
	}
}

// CertificateView 证书模板加该学员的领取状态
type CertificateView struct {
	model.Certificate
	Claimed   bool       `json:"claimed"`
	TokenID   string     `json:"tokenId,omitempty"`
	ClaimedAt *time.Time `json:"claimedAt,omitempty"`
}

// ListForUser 全部证书模板，标记该学员是否已领取
func (s *CertificateService) ListForUser(userID uint) ([]CertificateView, error) {
	certificates, err := s.CertificateRepo.FindAll()
	if err != nil {
		return nil, err
	}
	claims, err := s.CertificateRepo.FindClaimsByUser(userID)
	if err != nil {
		return nil, err
	}

	claimed := map[uint]*model.UserCertificate{}
	for i := range claims {
		claimed[claims[i].CertificateID] = &claims[i]
	}

	views := make([]CertificateView, 0, len(certificates))
	for _, cert := range certificates {
		view := CertificateView{Certificate: cert}
		if claim, ok := claimed[cert.ID]; ok {
			view.Claimed = true
			view.TokenID = claim.TokenID
			view.ClaimedAt = &claim.ClaimedAt
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *CertificateService) ListClaimed(userID uint) ([]model.UserCertificate, error) {
	return s.CertificateRepo.FindClaimsByUser(userID)
}

// Claim 领取证书。前置：课程已完成、模板可领取、此前未领取。
// TokenID 领取时生成，之后不可变。
func (s *CertificateService) Claim(userID, certificateID uint) (*model.UserCertificate, error) {
	certificate, err := s.CertificateRepo.FindByID(certificateID)
	if err != nil {
		return nil, err
	}
	if !certificate.IsClaimable {
		return nil, util.ErrCertificateNotClaimable
	}

	completion, err := s.CompletionRepo.Find(userID, certificate.CourseID)
	if err != nil {
		return nil, err
	}
	if completion == nil {
		return nil, util.ErrCourseNotCompleted
	}

	existing, err := s.CertificateRepo.FindClaim(userID, certificateID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, util.ErrCertificateClaimed
	}

	claim := &model.UserCertificate{
		UserID:        userID,
		CertificateID: certificateID,
		TokenID:       uuid.New().String(),
		ClaimedAt:     time.Now(),
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(claim).Error; err != nil {
			return err
		}
		if _, err := s.Rewards.AddPointsIn(tx, userID, certificateClaimPoints); err != nil {
			return err
		}
		return s.Rewards.AddCoinsIn(tx, userID, certificateClaimCoins)
	})
	if err != nil {
		// 唯一索引兜底并发领取
		prior, findErr := s.CertificateRepo.FindClaim(userID, certificateID)
		if findErr == nil && prior != nil {
			return prior, util.ErrCertificateClaimed
		}
		return nil, err
	}

	s.Notifications.Notify(userID, "已领取证书「"+certificate.Title+"」", model.SeveritySuccess)
	return claim, nil
}

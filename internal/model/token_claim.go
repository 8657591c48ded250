package model

import "time"

type TokenClaimStatus string

const (
	TokenClaimPending   TokenClaimStatus = "pending"
	TokenClaimConfirmed TokenClaimStatus = "confirmed"
)

// TokenClaim 等级代币领取记录，(UserID, Level) 唯一，每级只能领一次。
// 链上结算不在本服务范围内，记录保持 pending。
type TokenClaim struct {
	BaseModel
	UserID        uint             `gorm:"index:idx_user_level,unique;not null" json:"userId"`
	Level         int              `gorm:"index:idx_user_level,unique;not null" json:"level"`
	TokensClaimed int              `gorm:"not null" json:"tokensClaimed"`
	ClaimedAt     *time.Time       `json:"claimedAt,omitempty"`
	Status        TokenClaimStatus `gorm:"size:20;default:'pending'" json:"status"`
}

func (TokenClaim) TableName() string {
	return "token_claims"
}

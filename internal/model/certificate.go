package model

import "time"

// Certificate 课程证书模板
type Certificate struct {
	BaseModel
	CourseID    uint   `gorm:"index;not null" json:"courseId"`
	CourseName  string `gorm:"size:255;not null" json:"courseName"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	ImageURL    string `gorm:"size:512" json:"imageUrl"`
	IsClaimable bool   `gorm:"default:true" json:"isClaimable"`
}

func (Certificate) TableName() string {
	return "certificates"
}

// UserCertificate 已领取的证书，claimed 单向生效，TokenID 领取时生成后不可变
type UserCertificate struct {
	BaseModel
	UserID        uint      `gorm:"index:idx_user_certificate,unique;not null" json:"userId"`
	CertificateID uint      `gorm:"index:idx_user_certificate,unique;not null" json:"certificateId"`
	TokenID       string    `gorm:"size:64;not null" json:"tokenId"`
	ClaimedAt     time.Time `json:"claimedAt"`
}

func (UserCertificate) TableName() string {
	return "user_certificates"
}

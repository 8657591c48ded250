package model

import "time"

type ReviewRequestStatus string

const (
	ReviewRequestOpen     ReviewRequestStatus = "open"
	ReviewRequestResolved ReviewRequestStatus = "resolved"
)

// ReviewRequest 求助请求，reviews 只追加
type ReviewRequest struct {
	BaseModel
	UserID      uint                `gorm:"index;not null" json:"userId"`
	CourseID    uint                `gorm:"index;not null" json:"courseId"`
	LessonID    uint                `gorm:"index;not null" json:"lessonId"`
	Question    string              `gorm:"type:text;not null" json:"question"`
	URL         string              `gorm:"size:512" json:"url,omitempty"`
	GitHubURL   string              `gorm:"size:512" json:"githubUrl,omitempty"`
	SubmittedAt time.Time           `json:"submittedAt"`
	Status      ReviewRequestStatus `gorm:"size:20;default:'open'" json:"status"`
	Reviews     []RequestReview     `gorm:"foreignKey:RequestID" json:"reviews"`
}

func (ReviewRequest) TableName() string {
	return "review_requests"
}

// RequestReview 针对求助请求的反馈
type RequestReview struct {
	BaseModel
	RequestID   uint      `gorm:"index;not null" json:"requestId"`
	ReviewerID  uint      `gorm:"index;not null" json:"reviewerId"`
	Rating      int       `gorm:"default:0" json:"rating,omitempty"`
	Feedback    string    `gorm:"type:text;not null" json:"feedback"`
	SubmittedAt time.Time `json:"submittedAt"`
}

func (RequestReview) TableName() string {
	return "request_reviews"
}

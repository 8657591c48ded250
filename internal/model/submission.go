package model

import "time"

type SubmissionStatus string

const (
	SubmissionSubmitted SubmissionStatus = "submitted"
	SubmissionPending   SubmissionStatus = "pending"
	SubmissionReviewed  SubmissionStatus = "reviewed"
)

// Submission 作业提交。创建后除状态和追加的互评外不可变。
type Submission struct {
	BaseModel
	UserID      uint             `gorm:"index;not null" json:"userId"`
	CourseID    uint             `gorm:"index;not null" json:"courseId"`
	LessonID    uint             `gorm:"index;not null" json:"lessonId"`
	URL         string           `gorm:"size:512" json:"url,omitempty"`
	GitHubURL   string           `gorm:"size:512" json:"githubUrl,omitempty"`
	Notes       string           `gorm:"type:text" json:"notes,omitempty"`
	SubmittedAt time.Time        `json:"submittedAt"`
	Status      SubmissionStatus `gorm:"size:20;default:'submitted'" json:"status"`
	Files       []SubmissionFile `gorm:"foreignKey:SubmissionID" json:"files"`
	PeerReviews []PeerReview     `gorm:"foreignKey:SubmissionID" json:"peerReviews"`
}

func (Submission) TableName() string {
	return "submissions"
}

// SubmissionFile 已存储的提交文件
type SubmissionFile struct {
	BaseModel
	SubmissionID uint   `gorm:"index;not null" json:"submissionId"`
	Name         string `gorm:"size:255;not null" json:"name"`
	Size         int64  `gorm:"not null" json:"size"`
	StorageKey   string `gorm:"size:512;not null" json:"-"`
	URL          string `gorm:"size:512" json:"url"`
}

func (SubmissionFile) TableName() string {
	return "submission_files"
}

// PeerReview 互评，追加后不可变
type PeerReview struct {
	BaseModel
	SubmissionID uint      `gorm:"index;not null" json:"submissionId"`
	ReviewerID   uint      `gorm:"index;not null" json:"reviewerId"`
	Rating       int       `gorm:"not null" json:"rating"` // 1-5
	Feedback     string    `gorm:"type:text;not null" json:"feedback"`
	SubmittedAt  time.Time `json:"submittedAt"`
}

func (PeerReview) TableName() string {
	return "peer_reviews"
}

package model

type EnrollmentStatus string

const (
	EnrollmentInProgress EnrollmentStatus = "in-progress"
	EnrollmentCompleted  EnrollmentStatus = "completed"
)

// Enrollment 选课记录，(UserID, CourseID) 唯一
type Enrollment struct {
	BaseModel
	UserID   uint             `gorm:"index:idx_user_course,unique;not null" json:"userId"`
	CourseID uint             `gorm:"index:idx_user_course,unique;not null" json:"courseId"`
	Status   EnrollmentStatus `gorm:"size:20;default:'in-progress'" json:"status"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

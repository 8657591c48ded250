package model

import "time"

// Progress 课时完成记录，(UserID, LessonID) 唯一，完成不可撤销
type Progress struct {
	BaseModel
	UserID       uint      `gorm:"index:idx_user_lesson,unique;not null" json:"userId"`
	LessonID     uint      `gorm:"index:idx_user_lesson,unique;not null" json:"lessonId"`
	CourseID     uint      `gorm:"index;not null" json:"courseId"`
	ModuleID     uint      `gorm:"index;not null" json:"moduleId"`
	CompletedAt  time.Time `json:"completedAt"`
	PointsEarned int       `gorm:"default:0" json:"pointsEarned"`
}

func (Progress) TableName() string {
	return "progress"
}

// Completion 课程完成记录，(UserID, CourseID) 唯一
type Completion struct {
	BaseModel
	UserID              uint      `gorm:"index:idx_user_course_completion,unique;not null" json:"userId"`
	CourseID            uint      `gorm:"index:idx_user_course_completion,unique;not null" json:"courseId"`
	CompletedAt         time.Time `json:"completedAt"`
	CertificateEligible bool      `gorm:"default:true" json:"certificateEligible"`
}

func (Completion) TableName() string {
	return "completions"
}

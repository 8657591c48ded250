package model

// LessonView 按学员视角装饰后的课时状态
type LessonView struct {
	Lesson
	IsCompleted bool `json:"isCompleted"`
	IsLocked    bool `json:"isLocked"`
}

// ModuleView 章节视图
type ModuleView struct {
	ID      uint         `json:"id"`
	Title   string       `json:"title"`
	Order   int          `json:"order"`
	Lessons []LessonView `json:"lessons"`
}

// CourseView 课程视图，Progress/IsEnrolled/IsCompleted 为按学员计算字段
type CourseView struct {
	ID            uint         `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Level         string       `json:"level"`
	DurationLabel string       `json:"duration"`
	IsEnrolled    bool         `json:"isEnrolled"`
	IsCompleted   bool         `json:"isCompleted"`
	Progress      int          `json:"progress"`
	Modules       []ModuleView `json:"modules"`
}

// CourseProgress 课程进度汇总
type CourseProgress struct {
	CompletedLessons int `json:"completedLessons"`
	TotalLessons     int `json:"totalLessons"`
	Percentage       int `json:"percentage"`
}

// ProgressStats 学员总体进度统计
type ProgressStats struct {
	TotalPoints        int     `json:"totalPoints"`
	CurrentLevel       int     `json:"currentLevel"`
	Coins              int     `json:"coins"`
	LessonsCompleted   int     `json:"lessonsCompleted"`
	CoursesEnrolled    int     `json:"coursesEnrolled"`
	CoursesCompleted   int     `json:"coursesCompleted"`
	PointsProgress     int     `json:"pointsProgress"` // 当前等级内已获得的积分
	PointsNeeded       int     `json:"pointsNeeded"`   // 升到下一级还差的积分区间
	ProgressPercentage float64 `json:"progressPercentage"`
}

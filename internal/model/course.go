package model

type LessonType string

const (
	LessonTypeLesson     LessonType = "lesson"
	LessonTypeAssignment LessonType = "assignment"
	LessonTypeProject    LessonType = "project"
)

// swagger:model Course
type Course struct {
	BaseModel
	Slug          string         `gorm:"size:100;uniqueIndex;not null" json:"slug"` // 内容仓库中的课程目录名
	Title         string         `gorm:"size:255;not null" json:"title"`
	Description   string         `gorm:"type:text" json:"description"`
	Level         string         `gorm:"size:50" json:"level"`
	DurationLabel string         `gorm:"size:50" json:"duration"`
	Modules       []CourseModule `gorm:"foreignKey:CourseID" json:"modules"`
}

func (Course) TableName() string {
	return "courses"
}

// CourseModule 课程章节，Order 决定章节遍历顺序
type CourseModule struct {
	BaseModel
	CourseID uint     `gorm:"index;not null" json:"courseId"`
	Title    string   `gorm:"size:255;not null" json:"title"`
	Order    int      `gorm:"column:module_order;default:0" json:"order"`
	Lessons  []Lesson `gorm:"foreignKey:ModuleID" json:"lessons"`
}

func (CourseModule) TableName() string {
	return "course_modules"
}

// Lesson 课时。提交要求字段仅 assignment/project 类型使用。
type Lesson struct {
	BaseModel
	ModuleID        uint       `gorm:"index;not null" json:"moduleId"`
	Title           string     `gorm:"size:255;not null" json:"title"`
	Type            LessonType `gorm:"size:20;default:'lesson'" json:"type"`
	Order           int        `gorm:"column:lesson_order;default:0" json:"order"`
	DurationMinutes int        `gorm:"default:0" json:"durationMinutes"`
	FilePath        string     `gorm:"size:512" json:"filePath"` // 相对内容仓库的 markdown 路径

	SubmissionType string `gorm:"size:20" json:"submissionType,omitempty"` // file / files，空表示无需提交
	AllowedTypes   string `gorm:"size:255" json:"allowedTypes,omitempty"`  // 逗号分隔的扩展名白名单
	MaxSizeMB      int    `gorm:"default:0" json:"maxSizeMB,omitempty"`    // 单文件上限
	MaxFiles       int    `gorm:"default:0" json:"maxFiles,omitempty"`
	RequiresURL    bool   `gorm:"default:false" json:"requiresUrl,omitempty"`
	RequiresGitHub bool   `gorm:"default:false" json:"requiresGithub,omitempty"`
	Requirements   string `gorm:"type:text" json:"requirements,omitempty"`
}

func (Lesson) TableName() string {
	return "lessons"
}

// HasSubmissionRequirements 判断课时是否定义了提交要求
func (l *Lesson) HasSubmissionRequirements() bool {
	return l.SubmissionType != ""
}

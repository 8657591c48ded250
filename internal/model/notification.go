package model

type NotificationSeverity string

const (
	SeveritySuccess NotificationSeverity = "success"
	SeverityInfo    NotificationSeverity = "info"
	SeverityWarning NotificationSeverity = "warning"
	SeverityError   NotificationSeverity = "error"
)

// Notification 用户通知。写入失败只记日志，不影响业务流程。
type Notification struct {
	BaseModel
	UserID   uint                 `gorm:"index;not null" json:"userId"`
	Message  string               `gorm:"size:512;not null" json:"message"`
	Severity NotificationSeverity `gorm:"size:20;default:'info'" json:"severity"`
	Read     bool                 `gorm:"default:false" json:"read"`
}

func (Notification) TableName() string {
	return "notifications"
}

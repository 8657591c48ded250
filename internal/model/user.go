package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Mentor  UserRole = "mentor"
	Admin   UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name         string   `gorm:"size:100;not null" json:"name"`
	Email        string   `gorm:"size:100;unique;not null" json:"email"`
	Password     string   `gorm:"size:100;not null" json:"-"`
	Role         UserRole `gorm:"size:20;default:'student'" json:"role"`
	TotalPoints  int      `gorm:"default:0" json:"totalPoints"`  // 累计积分，只增不减
	CurrentLevel int      `gorm:"default:1" json:"currentLevel"` // 始终由 TotalPoints 推导
	Coins        int      `gorm:"default:0" json:"coins"`        // 次级奖励货币，可消费
	Avatar       string   `gorm:"size:255" json:"avatar"`
	Disabled     bool     `gorm:"default:false" json:"disabled"`
	LastLogin    time.Time `json:"lastLogin"`
	LastSeen     time.Time `json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}

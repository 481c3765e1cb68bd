package entities

import "time"

type ChatTurn struct {
	TurnID    uint      `gorm:"primaryKey" json:"turn_id"`
	UserID    string    `gorm:"index" json:"user_id"`
	Role      string    `json:"role"` // user|assistant
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

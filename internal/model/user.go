package model

import "time"

type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TelegramID string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"telegram_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

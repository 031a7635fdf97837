package entity

import "time"

type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Email      string    `gorm:"not null;uniqueIndex" json:"email"`
	TelegramID int64     `gorm:"not null" json:"telegram_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

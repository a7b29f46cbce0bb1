package model

import "time"

// 店舗スタッフ。Userと1:1
type Employee struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"not null;uniqueIndex" json:"user_id"`

	Name     string `gorm:"type:varchar(100);not null" json:"name"`
	CPF      string `gorm:"type:varchar(11);not null;uniqueIndex" json:"cpf"`
	Phone    string `gorm:"type:varchar(11);not null" json:"phone"`
	Email    string `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Position string `gorm:"type:varchar(100);not null" json:"position"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

package model

import "time"

// 注文の持ち主。Userと1:1
type Customer struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"not null;uniqueIndex" json:"user_id"`

	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	BirthDate time.Time `gorm:"type:date;not null" json:"birth_date"`

	//CPFは数字11桁
	CPF string `gorm:"type:varchar(11);not null;uniqueIndex" json:"cpf"`

	Address string `gorm:"type:varchar(255);not null" json:"address"`
	Email   string `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`

	//電話番号は数字10〜11桁
	Phone string `gorm:"type:varchar(11);not null" json:"phone"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

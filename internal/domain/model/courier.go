package model

import "time"

// 配達員（motoboy）。Userと1:1
type Courier struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"not null;uniqueIndex" json:"user_id"`

	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	CPF       string    `gorm:"type:varchar(11);not null;uniqueIndex" json:"cpf"`
	BirthDate time.Time `gorm:"type:date;not null" json:"birth_date"`
	Phone     string    `gorm:"type:varchar(11);not null" json:"phone"`
	Address   string    `gorm:"type:varchar(255);not null" json:"address"`
	Email     string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`

	//バイクの書類と登録ナンバー
	MotorcycleDoc string `gorm:"type:varchar(100);not null" json:"motorcycle_doc"`
	PlateNumber   string `gorm:"type:varchar(20)" json:"plate_number"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

package models

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"type:varchar(80);uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"type:varchar(120);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(200);not null" json:"-"`
	FullName     string    `gorm:"type:varchar(100)" json:"full_name"`
	Phone        string    `gorm:"type:varchar(15)" json:"phone"`
	Address      string    `gorm:"type:text" json:"address"`
	City         string    `gorm:"type:varchar(50)" json:"city"`
	State        string    `gorm:"type:varchar(50)" json:"state"`
	Pincode      string    `gorm:"type:varchar(10)" json:"pincode"`
	Role         string    `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

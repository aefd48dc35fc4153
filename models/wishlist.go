package models

import "time"

type Wishlist struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_plant" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	PlantID   uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_plant" json:"plant_id"`
	Plant     Plant     `gorm:"foreignKey:PlantID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"plant"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

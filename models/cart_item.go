package models

import "time"

// CartItem is a pending purchase intent. It never reserves stock; the
// checkout transaction is the only place stock actually moves.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_cart_user_item" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	ItemKind  ItemKind  `gorm:"type:varchar(20);not null;index:idx_cart_user_item" json:"item_kind"`
	ItemID    uint      `gorm:"not null;index:idx_cart_user_item" json:"item_id"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (ci *CartItem) Ref() CatalogRef {
	return CatalogRef{Kind: ci.ItemKind, ID: ci.ItemID}
}

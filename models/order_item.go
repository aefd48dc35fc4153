package models

import "time"

// OrderItem freezes name and unit price at purchase time. Later catalog
// edits must never change what the customer was billed.
type OrderItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;index" json:"order_id"`
	Order     Order     `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	ItemKind  ItemKind  `gorm:"type:varchar(20);not null" json:"item_kind"`
	ItemID    uint      `gorm:"not null" json:"item_id"`
	ItemName  string    `gorm:"type:varchar(100);not null" json:"item_name"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Price     float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Subtotal  float64   `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (oi *OrderItem) Ref() CatalogRef {
	return CatalogRef{Kind: oi.ItemKind, ID: oi.ItemID}
}

package models

import "time"

// Ingredient types: Fertilizer, Soil, Pot, Tools, Seeds.
type Ingredient struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Name              string    `gorm:"type:varchar(100);not null" json:"name"`
	Type              string    `gorm:"type:varchar(50);not null;index" json:"type"`
	Price             float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Description       string    `gorm:"type:text" json:"description"`
	UsageInstructions string    `gorm:"type:text" json:"usage_instructions"`
	Stock             int       `gorm:"not null;default:0" json:"stock"`
	Image             string    `gorm:"type:varchar(200);default:'default_ingredient.jpg'" json:"image"`
	CreatedAt         time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time `gorm:"not null" json:"updated_at"`
}

func (i *Ingredient) IsLowStock() bool {
	return i.Stock > 0 && i.Stock <= LowStockThreshold
}

func (i *Ingredient) IsOutOfStock() bool {
	return i.Stock == 0
}

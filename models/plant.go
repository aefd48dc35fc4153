package models

import "time"

// Plant categories: Medicinal, Flower, Vegetable, Fruit.
type Plant struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Name             string    `gorm:"type:varchar(100);not null" json:"name"`
	Category         string    `gorm:"type:varchar(50);not null;index" json:"category"`
	Price            float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Description      string    `gorm:"type:text" json:"description"`
	Sunlight         string    `gorm:"type:varchar(50)" json:"sunlight"`
	Water            string    `gorm:"type:varchar(50)" json:"water"`
	CareInstructions string    `gorm:"type:text" json:"care_instructions"`
	Stock            int       `gorm:"not null;default:0" json:"stock"`
	Image            string    `gorm:"type:varchar(200);default:'default_plant.jpg'" json:"image"`
	CreatedAt        time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time `gorm:"not null" json:"updated_at"`
}

func (p *Plant) IsLowStock() bool {
	return p.Stock > 0 && p.Stock <= LowStockThreshold
}

func (p *Plant) IsOutOfStock() bool {
	return p.Stock == 0
}

package models

// ItemKind discriminates the two purchasable catalog tables.
type ItemKind string

const (
	ItemKindPlant      ItemKind = "plant"
	ItemKindIngredient ItemKind = "ingredient"
)

func (k ItemKind) Valid() bool {
	return k == ItemKindPlant || k == ItemKindIngredient
}

// TableName returns the catalog table backing this kind.
func (k ItemKind) TableName() string {
	if k == ItemKindPlant {
		return "plants"
	}
	return "ingredients"
}

// CatalogRef points at one catalog item without caring which table it lives in.
type CatalogRef struct {
	Kind ItemKind `json:"item_kind"`
	ID   uint     `json:"item_id"`
}

// CatalogInfo is the projection every purchase path needs: price and stock.
type CatalogInfo struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

// LowStockThreshold marks items that are running out (0 < stock <= 5).
const LowStockThreshold = 5

package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/econursery/nursery-app/models"
)

// TaxRate is the fixed GST surcharge applied to the cart subtotal.
const TaxRate = 0.18

// CartService owns cart mutations. Stock checks here are advisory UX only;
// the checkout transaction is the authority (see OrderService.PlaceOrder).
type CartService struct {
	db *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// CartLine is one cart row joined with the current catalog data.
type CartLine struct {
	ID       uint            `json:"id"`
	ItemKind models.ItemKind `json:"item_kind"`
	ItemID   uint            `json:"item_id"`
	Name     string          `json:"name"`
	Price    float64         `json:"price"`
	Quantity int             `json:"quantity"`
	Subtotal float64         `json:"subtotal"`
	Stock    int             `json:"stock"`
}

// CartSummary is what both the cart page and the checkout preview render.
type CartSummary struct {
	Lines    []CartLine `json:"lines"`
	Subtotal float64    `json:"subtotal"`
	Tax      float64    `json:"tax"`
	Total    float64    `json:"total"`
}

// AddItem merges into an existing line for the same catalog item, checking
// the cumulative quantity against current stock.
func (s *CartService) AddItem(userID uint, ref models.CatalogRef, qty int) (*models.CartItem, error) {
	if qty < 1 {
		qty = 1
	}

	item, err := lookupCatalogItem(s.db, ref)
	if err != nil {
		return nil, err
	}

	var line models.CartItem
	err = s.db.Where("user_id = ? AND item_kind = ? AND item_id = ?", userID, ref.Kind, ref.ID).
		Take(&line).Error
	switch {
	case err == nil:
		if item.Stock < line.Quantity+qty {
			return nil, ErrOutOfStock
		}
		line.Quantity += qty
		if err := s.db.Save(&line).Error; err != nil {
			return nil, storageError(err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if item.Stock < qty {
			return nil, ErrOutOfStock
		}
		line = models.CartItem{
			UserID:   userID,
			ItemKind: ref.Kind,
			ItemID:   ref.ID,
			Quantity: qty,
		}
		if err := s.db.Create(&line).Error; err != nil {
			return nil, storageError(err)
		}
	default:
		return nil, storageError(err)
	}

	return &line, nil
}

// UpdateQuantity replaces the quantity on a line owned by the caller.
func (s *CartService) UpdateQuantity(userID, lineID uint, qty int) (*models.CartItem, error) {
	if qty < 1 {
		qty = 1
	}

	var line models.CartItem
	if err := s.db.First(&line, lineID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storageError(err)
	}
	if line.UserID != userID {
		return nil, ErrUnauthorized
	}

	item, err := lookupCatalogItem(s.db, line.Ref())
	if err != nil {
		return nil, err
	}
	if item.Stock < qty {
		return nil, ErrOutOfStock
	}

	line.Quantity = qty
	if err := s.db.Save(&line).Error; err != nil {
		return nil, storageError(err)
	}
	return &line, nil
}

// RemoveLine deletes a line owned by the caller.
func (s *CartService) RemoveLine(userID, lineID uint) error {
	var line models.CartItem
	if err := s.db.First(&line, lineID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return storageError(err)
	}
	if line.UserID != userID {
		return ErrUnauthorized
	}
	if err := s.db.Delete(&line).Error; err != nil {
		return storageError(err)
	}
	return nil
}

// Summary lists the caller's cart with live prices and GST totals.
// Lines whose catalog item has been deleted are skipped with zero value,
// matching how the storefront has always behaved.
func (s *CartService) Summary(userID uint) (*CartSummary, error) {
	var items []models.CartItem
	if err := s.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, storageError(err)
	}

	summary := &CartSummary{Lines: []CartLine{}}
	for _, ci := range items {
		info, err := lookupCatalogItem(s.db, ci.Ref())
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		line := CartLine{
			ID:       ci.ID,
			ItemKind: ci.ItemKind,
			ItemID:   ci.ItemID,
			Name:     info.Name,
			Price:    info.Price,
			Quantity: ci.Quantity,
			Subtotal: info.Price * float64(ci.Quantity),
			Stock:    info.Stock,
		}
		summary.Subtotal += line.Subtotal
		summary.Lines = append(summary.Lines, line)
	}

	summary.Tax = summary.Subtotal * TaxRate
	summary.Total = summary.Subtotal + summary.Tax
	return summary, nil
}

// Count returns the number of cart lines, used for the header badge.
func (s *CartService) Count(userID uint) (int64, error) {
	var n int64
	if err := s.db.Model(&models.CartItem{}).Where("user_id = ?", userID).Count(&n).Error; err != nil {
		return 0, storageError(err)
	}
	return n, nil
}

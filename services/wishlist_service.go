package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/econursery/nursery-app/models"
)

// WishlistService manages the user<->plant wishlist association.
type WishlistService struct {
	db *gorm.DB
}

func NewWishlistService(db *gorm.DB) *WishlistService {
	return &WishlistService{db: db}
}

// Add is idempotent: adding a plant already on the wishlist returns the
// existing entry.
func (s *WishlistService) Add(userID, plantID uint) (*models.Wishlist, error) {
	var plant models.Plant
	if err := s.db.First(&plant, plantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storageError(err)
	}

	var entry models.Wishlist
	err := s.db.Where("user_id = ? AND plant_id = ?", userID, plantID).Take(&entry).Error
	if err == nil {
		return &entry, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storageError(err)
	}

	entry = models.Wishlist{UserID: userID, PlantID: plantID}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, storageError(err)
	}
	return &entry, nil
}

// Remove deletes an entry owned by the caller.
func (s *WishlistService) Remove(userID, entryID uint) error {
	var entry models.Wishlist
	if err := s.db.First(&entry, entryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return storageError(err)
	}
	if entry.UserID != userID {
		return ErrUnauthorized
	}
	if err := s.db.Delete(&entry).Error; err != nil {
		return storageError(err)
	}
	return nil
}

// List returns the caller's wishlist with plants preloaded.
func (s *WishlistService) List(userID uint) ([]models.Wishlist, error) {
	var entries []models.Wishlist
	err := s.db.Preload("Plant").Where("user_id = ?", userID).
		Order("created_at DESC").Find(&entries).Error
	if err != nil {
		return nil, storageError(err)
	}
	return entries, nil
}

// MoveToCart converts a wishlist entry into a cart line (quantity 1,
// merging with an existing line) and removes the entry.
func (s *WishlistService) MoveToCart(userID, entryID uint, cart *CartService) (*models.CartItem, error) {
	var entry models.Wishlist
	if err := s.db.First(&entry, entryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storageError(err)
	}
	if entry.UserID != userID {
		return nil, ErrUnauthorized
	}

	line, err := cart.AddItem(userID, models.CatalogRef{Kind: models.ItemKindPlant, ID: entry.PlantID}, 1)
	if err != nil {
		return nil, err
	}

	if err := s.db.Delete(&entry).Error; err != nil {
		return nil, storageError(err)
	}
	return line, nil
}

package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/econursery/nursery-app/models"
)

// ReviewService gates reviews on delivered purchases.
type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// AddReview creates one review per (user, plant), allowed only after a
// Delivered order containing that plant.
func (s *ReviewService) AddReview(userID, plantID uint, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	var plant models.Plant
	if err := s.db.First(&plant, plantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storageError(err)
	}

	var purchased int64
	err := s.db.Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ? AND orders.order_status = ?", userID, models.OrderStatusDelivered).
		Where("order_items.item_kind = ? AND order_items.item_id = ?", models.ItemKindPlant, plantID).
		Count(&purchased).Error
	if err != nil {
		return nil, storageError(err)
	}
	if purchased == 0 {
		return nil, ErrNotPurchased
	}

	var existing int64
	err = s.db.Model(&models.Review{}).
		Where("user_id = ? AND plant_id = ?", userID, plantID).
		Count(&existing).Error
	if err != nil {
		return nil, storageError(err)
	}
	if existing > 0 {
		return nil, ErrAlreadyReviewed
	}

	review := models.Review{
		UserID:  userID,
		PlantID: plantID,
		Rating:  rating,
		Comment: comment,
	}
	if err := s.db.Create(&review).Error; err != nil {
		return nil, storageError(err)
	}
	return &review, nil
}

// ListForPlant returns a plant's reviews, newest first.
func (s *ReviewService) ListForPlant(plantID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.Where("plant_id = ?", plantID).
		Order("created_at DESC").Find(&reviews).Error
	if err != nil {
		return nil, storageError(err)
	}
	return reviews, nil
}

// AverageRating returns 0 for an unreviewed plant.
func (s *ReviewService) AverageRating(plantID uint) (float64, error) {
	var avg *float64
	err := s.db.Model(&models.Review{}).
		Where("plant_id = ?", plantID).
		Select("AVG(rating)").Scan(&avg).Error
	if err != nil {
		return 0, storageError(err)
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}

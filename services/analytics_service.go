package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/econursery/nursery-app/models"
)

// AnalyticsService runs the read-only aggregations behind the admin
// dashboard. No workflow, no writes.
type AnalyticsService struct {
	db *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

// BestSeller is the item with the highest total quantity across all order
// items of one kind. Ties break on the lower item id so the result is
// deterministic.
type BestSeller struct {
	ItemID    uint   `json:"item_id"`
	Name      string `json:"name"`
	TotalSold int64  `json:"total_sold"`
}

type DashboardStats struct {
	TotalUsers         int64               `json:"total_users"`
	TotalPlants        int64               `json:"total_plants"`
	TotalIngredients   int64               `json:"total_ingredients"`
	TotalOrders        int64               `json:"total_orders"`
	TotalRevenue       float64             `json:"total_revenue"`
	LowStockPlants     []models.Plant      `json:"low_stock_plants"`
	LowStockIngredient []models.Ingredient `json:"low_stock_ingredients"`
	BestSellingPlant   *BestSeller         `json:"best_selling_plant,omitempty"`
	BestSellingItem    *BestSeller         `json:"best_selling_ingredient,omitempty"`
	RecentOrders       []models.Order      `json:"recent_orders"`
}

// DashboardStats gathers every aggregate the dashboard shows. Revenue sums
// total_amount over non-cancelled orders only.
func (s *AnalyticsService) DashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	if err := s.db.Model(&models.User{}).Where("role = ?", models.RoleUser).Count(&stats.TotalUsers).Error; err != nil {
		return nil, storageError(err)
	}
	if err := s.db.Model(&models.Plant{}).Count(&stats.TotalPlants).Error; err != nil {
		return nil, storageError(err)
	}
	if err := s.db.Model(&models.Ingredient{}).Count(&stats.TotalIngredients).Error; err != nil {
		return nil, storageError(err)
	}
	if err := s.db.Model(&models.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return nil, storageError(err)
	}

	err := s.db.Model(&models.Order{}).
		Where("order_status <> ?", models.OrderStatusCancelled).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&stats.TotalRevenue).Error
	if err != nil {
		return nil, storageError(err)
	}

	if err := s.db.Where("stock > 0 AND stock <= ?", models.LowStockThreshold).
		Find(&stats.LowStockPlants).Error; err != nil {
		return nil, storageError(err)
	}
	if err := s.db.Where("stock > 0 AND stock <= ?", models.LowStockThreshold).
		Find(&stats.LowStockIngredient).Error; err != nil {
		return nil, storageError(err)
	}

	plantSeller, err := s.bestSeller(models.ItemKindPlant)
	if err != nil {
		return nil, err
	}
	stats.BestSellingPlant = plantSeller

	ingredientSeller, err := s.bestSeller(models.ItemKindIngredient)
	if err != nil {
		return nil, err
	}
	stats.BestSellingItem = ingredientSeller

	if err := s.db.Preload("OrderItems").Order("created_at DESC").Limit(10).
		Find(&stats.RecentOrders).Error; err != nil {
		return nil, storageError(err)
	}

	return stats, nil
}

func (s *AnalyticsService) bestSeller(kind models.ItemKind) (*BestSeller, error) {
	table := kind.TableName()

	var row BestSeller
	err := s.db.Model(&models.OrderItem{}).
		Select(fmt.Sprintf("order_items.item_id, %s.name, SUM(order_items.quantity) AS total_sold", table)).
		Joins(fmt.Sprintf("JOIN %s ON %s.id = order_items.item_id", table, table)).
		Where("order_items.item_kind = ?", kind).
		Group(fmt.Sprintf("order_items.item_id, %s.name", table)).
		Order("total_sold DESC, order_items.item_id ASC").
		Limit(1).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storageError(err)
	}
	return &row, nil
}

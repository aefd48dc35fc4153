package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/econursery/nursery-app/events"
	"github.com/econursery/nursery-app/models"
	"github.com/econursery/nursery-app/utils"
)

// StockMonitor periodically sweeps the catalog for items that have dropped
// into the low-stock band and alerts the back office once per episode. An
// item only re-alerts after its stock has recovered above the threshold.
type StockMonitor struct {
	DB       *gorm.DB
	Interval time.Duration
	StopChan chan struct{}

	alerted map[string]bool // "kind:id" -> already alerted this episode
}

func NewStockMonitor(db *gorm.DB) *StockMonitor {
	return &StockMonitor{
		DB:       db,
		Interval: 30 * time.Second,
		StopChan: make(chan struct{}),
		alerted:  make(map[string]bool),
	}
}

func (sm *StockMonitor) Start() {
	go func() {
		ticker := time.NewTicker(sm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				sm.Sweep()
			case <-sm.StopChan:
				return
			}
		}
	}()
}

func (sm *StockMonitor) Stop() {
	close(sm.StopChan)
}

// Sweep runs one pass over both catalog tables. Exported so tests and
// callers can trigger it without waiting for the ticker.
func (sm *StockMonitor) Sweep() {
	for _, kind := range []models.ItemKind{models.ItemKindPlant, models.ItemKindIngredient} {
		var items []models.CatalogInfo
		err := sm.DB.Table(kind.TableName()).
			Select("id, name, price, stock").
			Where("stock > 0 AND stock <= ?", models.LowStockThreshold).
			Find(&items).Error
		if err != nil {
			utils.ErrorLogger.Printf("stock monitor: sweep %s failed: %v", kind, err)
			continue
		}

		low := make(map[string]bool, len(items))
		for _, item := range items {
			key := fmt.Sprintf("%s:%d", kind, item.ID)
			low[key] = true
			if sm.alerted[key] {
				continue
			}
			sm.alerted[key] = true
			sm.alert(kind, item)
		}

		// Recovered items may alert again next time they run low.
		for key := range sm.alerted {
			if len(key) > len(kind) && key[:len(kind)] == string(kind) && !low[key] {
				delete(sm.alerted, key)
			}
		}
	}
}

func (sm *StockMonitor) alert(kind models.ItemKind, item models.CatalogInfo) {
	utils.InfoLogger.Printf("low stock: %s %q down to %d", kind, item.Name, item.Stock)

	n := models.Notification{
		Title:   "Low stock",
		Message: fmt.Sprintf("%s %q has only %d left", kind, item.Name, item.Stock),
	}
	if err := sm.DB.Create(&n).Error; err != nil {
		utils.ErrorLogger.Printf("stock monitor: notification failed: %v", err)
	}

	events.BroadcastLowStock(kind, item)
}

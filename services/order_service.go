package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/econursery/nursery-app/events"
	"github.com/econursery/nursery-app/models"
	"github.com/econursery/nursery-app/utils"
)

const (
	deliveryEstimateDays   = 7
	trackingNumberAttempts = 5
)

// ShippingInput is the structured checkout form; it is flattened into the
// single shipping_address string stored on the order.
type ShippingInput struct {
	Address string `json:"address" binding:"required"`
	City    string `json:"city" binding:"required"`
	State   string `json:"state" binding:"required"`
	Pincode string `json:"pincode" binding:"required"`
}

func (si ShippingInput) Format() string {
	return fmt.Sprintf("%s, %s, %s - %s", si.Address, si.City, si.State, si.Pincode)
}

// OrderService runs the checkout workflow and the order state machine.
type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// PlaceOrder converts the caller's cart into an order inside a single
// transaction: re-validate stock, compute GST totals, snapshot line items,
// decrement stock with a conditional UPDATE, clear the cart. Either every
// write lands or none does.
func (s *OrderService) PlaceOrder(userID uint, shipping ShippingInput, paymentMethod string) (*models.Order, error) {
	var order models.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var lines []models.CartItem
		if err := tx.Where("user_id = ?", userID).Order("created_at ASC").Find(&lines).Error; err != nil {
			return storageError(err)
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		type pricedLine struct {
			cart models.CartItem
			item models.CatalogInfo
		}

		var (
			priced   []pricedLine
			subtotal float64
		)
		for _, line := range lines {
			info, err := lookupCatalogItem(tx, line.Ref())
			if err != nil {
				return err
			}
			// Advisory check for a friendly per-item failure; the
			// conditional decrement below is what actually guards stock.
			if info.Stock < line.Quantity {
				return &InsufficientStockError{ItemName: info.Name}
			}
			subtotal += info.Price * float64(line.Quantity)
			priced = append(priced, pricedLine{cart: line, item: *info})
		}

		tracking, err := s.uniqueTrackingNumber(tx)
		if err != nil {
			return err
		}

		estimated := time.Now().Add(deliveryEstimateDays * 24 * time.Hour)
		order = models.Order{
			UserID:            userID,
			TotalAmount:       subtotal * (1 + TaxRate),
			OrderStatus:       models.OrderStatusPending,
			PaymentMethod:     paymentMethod,
			TrackingNumber:    tracking,
			ShippingAddress:   shipping.Format(),
			EstimatedDelivery: &estimated,
		}
		if paymentMethod == models.PaymentMethodCOD {
			order.PaymentStatus = models.PaymentStatusPending
		} else {
			// Simulated electronic payment: settles synchronously.
			order.PaymentStatus = models.PaymentStatusCompleted
			order.PaymentReference = uuid.New().String()
		}

		if err := tx.Create(&order).Error; err != nil {
			return storageError(err)
		}

		for _, pl := range priced {
			orderItem := models.OrderItem{
				OrderID:  order.ID,
				ItemKind: pl.cart.ItemKind,
				ItemID:   pl.cart.ItemID,
				ItemName: pl.item.Name,
				Quantity: pl.cart.Quantity,
				Price:    pl.item.Price,
				Subtotal: pl.item.Price * float64(pl.cart.Quantity),
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return storageError(err)
			}
			order.OrderItems = append(order.OrderItems, orderItem)

			if err := deductStock(tx, pl.cart.Ref(), pl.cart.Quantity, pl.item.Name); err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			return storageError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyAdmins("New order", fmt.Sprintf("Order %s placed for %s",
		order.TrackingNumber, utils.FormatCurrencyINR(order.TotalAmount)))
	events.BroadcastOrderPlaced(order)

	return &order, nil
}

// uniqueTrackingNumber generates inside the open transaction and verifies
// against existing orders, retrying on the (negligible) chance of collision.
func (s *OrderService) uniqueTrackingNumber(tx *gorm.DB) (string, error) {
	for i := 0; i < trackingNumberAttempts; i++ {
		candidate := utils.GenerateTrackingNumber()
		var n int64
		if err := tx.Model(&models.Order{}).Where("tracking_number = ?", candidate).Count(&n).Error; err != nil {
			return "", storageError(err)
		}
		if n == 0 {
			return candidate, nil
		}
	}
	return "", storageError(errors.New("could not generate a unique tracking number"))
}

// CancelOrder lets the owner cancel before shipment and restores stock.
// The status flip is a conditional UPDATE guarded on the cancellable
// statuses, so a repeated or concurrent cancel can never restore twice.
func (s *OrderService) CancelOrder(userID, orderID uint) (*models.Order, error) {
	var order models.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("OrderItems").First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return storageError(err)
		}
		if order.UserID != userID {
			return ErrUnauthorized
		}
		if !models.IsCancellable(order.OrderStatus) {
			return ErrInvalidTransition
		}

		res := tx.Model(&models.Order{}).
			Where("id = ? AND order_status IN ?", order.ID, models.CancellableStatuses()).
			Update("order_status", models.OrderStatusCancelled)
		if res.Error != nil {
			return storageError(res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrInvalidTransition
		}

		for _, item := range order.OrderItems {
			if err := restoreStock(tx, item.Ref(), item.Quantity); err != nil {
				return err
			}
		}

		order.OrderStatus = models.OrderStatusCancelled
		return nil
	})
	if err != nil {
		return nil, err
	}

	events.BroadcastOrderCancelled(order)
	return &order, nil
}

// UpdateStatus advances an order one step along the state machine. Anything
// else, including skipping steps or cancelling through this path, is
// rejected. Admin-only; the caller enforces the role.
func (s *OrderService) UpdateStatus(orderID uint, next string) (*models.Order, error) {
	var order models.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return storageError(err)
		}
		if !models.IsForwardTransition(order.OrderStatus, next) {
			return ErrInvalidTransition
		}

		res := tx.Model(&models.Order{}).
			Where("id = ? AND order_status = ?", order.ID, order.OrderStatus).
			Update("order_status", next)
		if res.Error != nil {
			return storageError(res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrInvalidTransition
		}

		order.OrderStatus = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	events.BroadcastOrderStatus(order)
	return &order, nil
}

// ListForUser returns the caller's orders, newest first.
func (s *OrderService) ListForUser(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Preload("OrderItems").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, storageError(err)
	}
	return orders, nil
}

// Get returns one order; only the owner or an admin may see it.
func (s *OrderService) Get(orderID, callerID uint, callerRole string) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("OrderItems").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storageError(err)
	}
	if order.UserID != callerID && callerRole != models.RoleAdmin {
		return nil, ErrUnauthorized
	}
	return &order, nil
}

// Track looks an order up by its public tracking number. No auth: the
// tracking number itself is the capability.
func (s *OrderService) Track(trackingNumber string) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("OrderItems").
		Where("tracking_number = ?", trackingNumber).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storageError(err)
	}
	return &order, nil
}

// ListAll returns every order for the back office, newest first.
func (s *OrderService) ListAll() ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Preload("OrderItems").Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, storageError(err)
	}
	return orders, nil
}

func (s *OrderService) notifyAdmins(title, message string) {
	n := models.Notification{Title: title, Message: message}
	if err := s.db.Create(&n).Error; err != nil {
		utils.ErrorLogger.Printf("failed to store notification: %v", err)
		return
	}
	events.BroadcastNotification(n)
}

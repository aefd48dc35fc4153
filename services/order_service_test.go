package services_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/econursery/nursery-app/models"
	"github.com/econursery/nursery-app/services"
	"github.com/econursery/nursery-app/utils"
)

func TestPlaceOrderHappyPath(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "rajesh", models.RoleUser)
	plant := createPlant(t, db, "Tulsi (Holy Basil)", 150.00, 3)

	carts := services.NewCartService(db)
	orders := services.NewOrderService(db)

	_, err := carts.AddItem(user.ID, plantRef(plant.ID), 2)
	assert.NoError(t, err)

	order, err := orders.PlaceOrder(user.ID, testShipping(), models.PaymentMethodCOD)
	assert.NoError(t, err)

	// Totals carry the GST surcharge on top of the snapshot prices.
	assert.InDelta(t, 2*150.00*1.18, order.TotalAmount, 0.001)
	assert.Equal(t, models.OrderStatusPending, order.OrderStatus)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	assert.True(t, strings.HasPrefix(order.TrackingNumber, utils.TrackingPrefix))
	assert.NotNil(t, order.EstimatedDelivery)
	assert.Equal(t, "42 Garden Road, Bangalore, Karnataka - 560001", order.ShippingAddress)

	if assert.Len(t, order.OrderItems, 1) {
		item := order.OrderItems[0]
		assert.Equal(t, "Tulsi (Holy Basil)", item.ItemName)
		assert.Equal(t, 150.00, item.Price)
		assert.Equal(t, 2, item.Quantity)
		assert.InDelta(t, 300.00, item.Subtotal, 0.001)
	}

	// Stock decremented and the cart cleared.
	assert.Equal(t, 1, plantStock(t, db, plant.ID))
	n, err := carts.Count(user.ID)
	assert.NoError(t, err)
	assert.Zero(t, n)
}

func TestPlaceOrderElectronicPaymentSettles(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "priya", models.RoleUser)
	plant := createPlant(t, db, "Aloe Vera", 120.00, 10)

	carts := services.NewCartService(db)
	orders := services.NewOrderService(db)

	_, err := carts.AddItem(user.ID, plantRef(plant.ID), 1)
	assert.NoError(t, err)

	order, err := orders.PlaceOrder(user.ID, testShipping(), "upi")
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, order.PaymentStatus)
	assert.NotEmpty(t, order.PaymentReference)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "amit", models.RoleUser)

	orders := services.NewOrderService(db)
	_, err := orders.PlaceOrder(user.ID, testShipping(), models.PaymentMethodCOD)
	assert.ErrorIs(t, err, services.ErrEmptyCart)
}

func TestPlaceOrderInsufficientStockRollsBack(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "sneha", models.RoleUser)
	plant := createPlant(t, db, "Neem Tree", 250.00, 10)
	fertilizer := createIngredient(t, db, "NPK Fertilizer 19:19:19 (1kg)", 180.00, 1)

	carts := services.NewCartService(db)
	orders := services.NewOrderService(db)

	_, err := carts.AddItem(user.ID, plantRef(plant.ID), 2)
	assert.NoError(t, err)
	_, err = carts.AddItem(user.ID, ingredientRef(fertilizer.ID), 1)
	assert.NoError(t, err)

	// The last unit vanishes between carting and checkout.
	err = db.Model(&models.Ingredient{}).Where("id = ?", fertilizer.ID).Update("stock", 0).Error
	assert.NoError(t, err)

	_, err = orders.PlaceOrder(user.ID, testShipping(), models.PaymentMethodCOD)
	var stockErr *services.InsufficientStockError
	if assert.ErrorAs(t, err, &stockErr) {
		assert.Equal(t, "NPK Fertilizer 19:19:19 (1kg)", stockErr.ItemName)
	}

	// Nothing may survive the rollback: no order, no snapshot rows, stock
	// and cart untouched.
	var orderCount, itemCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	db.Model(&models.OrderItem{}).Count(&itemCount)
	assert.Zero(t, orderCount)
	assert.Zero(t, itemCount)
	assert.Equal(t, 10, plantStock(t, db, plant.ID))

	n, err := carts.Count(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestPlaceOrderLastUnitGoesToOneBuyer(t *testing.T) {
	db := openTestDB(t)
	first := createUser(t, db, "vikram", models.RoleUser)
	second := createUser(t, db, "kavya", models.RoleUser)
	plant := createPlant(t, db, "Pomegranate (Anar)", 400.00, 1)

	carts := services.NewCartService(db)
	orders := services.NewOrderService(db)

	_, err := carts.AddItem(first.ID, plantRef(plant.ID), 1)
	assert.NoError(t, err)
	_, err = carts.AddItem(second.ID, plantRef(plant.ID), 1)
	assert.NoError(t, err)

	_, err = orders.PlaceOrder(first.ID, testShipping(), models.PaymentMethodCOD)
	assert.NoError(t, err)

	_, err = orders.PlaceOrder(second.ID, testShipping(), models.PaymentMethodCOD)
	var stockErr *services.InsufficientStockError
	assert.ErrorAs(t, err, &stockErr)

	assert.Equal(t, 0, plantStock(t, db, plant.ID))

	var orderCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	assert.Equal(t, int64(1), orderCount)
}

func TestCancelOrderRestoresStock(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "rohan", models.RoleUser)
	plant := createPlant(t, db, "Jasmine (Mogra)", 175.00, 5)

	carts := services.NewCartService(db)
	orders := services.NewOrderService(db)

	_, err := carts.AddItem(user.ID, plantRef(plant.ID), 2)
	assert.NoError(t, err)
	order, err := orders.PlaceOrder(user.ID, testShipping(), models.PaymentMethodCOD)
	assert.NoError(t, err)
	assert.Equal(t, 3, plantStock(t, db, plant.ID))

	cancelled, err := orders.CancelOrder(user.ID, order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, cancelled.OrderStatus)
	assert.Equal(t, 5, plantStock(t, db, plant.ID))

	// A second cancel must not restore the stock again.
	_, err = orders.CancelOrder(user.ID, order.ID)
	assert.ErrorIs(t, err, services.ErrInvalidTransition)
	assert.Equal(t, 5, plantStock(t, db, plant.ID))
}

func TestCancelShippedOrderRejected(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "meera", models.RoleUser)
	plant := createPlant(t, db, "Hibiscus (Gudhal)", 140.00, 8)

	carts := services.NewCartService(db)
	orders := services.NewOrderService(db)

	_, err := carts.AddItem(user.ID, plantRef(plant.ID), 3)
	assert.NoError(t, err)
	order, err := orders.PlaceOrder(user.ID, testShipping(), models.PaymentMethodCOD)
	assert.NoError(t, err)

	for _, status := range []string{
		models.OrderStatusConfirmed,
		models.OrderStatusPacked,
		models.OrderStatusShipped,
	} {
		_, err = orders.UpdateStatus(order.ID, status)
		assert.NoError(t, err)
	}

	_, err = orders.CancelOrder(user.ID, order.ID)
	assert.ErrorIs(t, err, services.ErrInvalidTransition)
	assert.Equal(t, 5, plantStock(t, db, plant.ID))
}

func TestCancelOrderOwnership(t *testing.T) {
	db := openTestDB(t)
	owner := createUser(t, db, "owner", models.RoleUser)
	stranger := createUser(t, db, "stranger", models.RoleUser)
	plant := createPlant(t, db, "Marigold (Genda)", 60.00, 10)

	carts := services.NewCartService(db)
	orders := services.NewOrderService(db)

	_, err := carts.AddItem(owner.ID, plantRef(plant.ID), 1)
	assert.NoError(t, err)
	order, err := orders.PlaceOrder(owner.ID, testShipping(), models.PaymentMethodCOD)
	assert.NoError(t, err)

	_, err = orders.CancelOrder(stranger.ID, order.ID)
	assert.ErrorIs(t, err, services.ErrUnauthorized)

	_, err = orders.CancelOrder(owner.ID, 9999)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestUpdateStatusForwardOnly(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "arjun", models.RoleUser)
	plant := createPlant(t, db, "Tomato Plant", 90.00, 10)

	carts := services.NewCartService(db)
	orders := services.NewOrderService(db)

	_, err := carts.AddItem(user.ID, plantRef(plant.ID), 1)
	assert.NoError(t, err)
	order, err := orders.PlaceOrder(user.ID, testShipping(), models.PaymentMethodCOD)
	assert.NoError(t, err)

	// Skipping a step is rejected.
	_, err = orders.UpdateStatus(order.ID, models.OrderStatusShipped)
	assert.ErrorIs(t, err, services.ErrInvalidTransition)

	// Walking backwards is rejected.
	_, err = orders.UpdateStatus(order.ID, models.OrderStatusPending)
	assert.ErrorIs(t, err, services.ErrInvalidTransition)

	// Cancelled is not reachable through the admin status path.
	_, err = orders.UpdateStatus(order.ID, models.OrderStatusCancelled)
	assert.ErrorIs(t, err, services.ErrInvalidTransition)

	// Garbage statuses are rejected.
	_, err = orders.UpdateStatus(order.ID, "Teleported")
	assert.ErrorIs(t, err, services.ErrInvalidTransition)

	updated, err := orders.UpdateStatus(order.ID, models.OrderStatusConfirmed)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusConfirmed, updated.OrderStatus)

	deliverOrderFrom(t, orders, order.ID, models.OrderStatusConfirmed)

	// Delivered is terminal.
	_, err = orders.UpdateStatus(order.ID, models.OrderStatusDelivered)
	assert.ErrorIs(t, err, services.ErrInvalidTransition)
}

// deliverOrderFrom advances the rest of the chain after the given status.
func deliverOrderFrom(t *testing.T, svc *services.OrderService, orderID uint, from string) {
	t.Helper()
	chain := []string{
		models.OrderStatusConfirmed,
		models.OrderStatusPacked,
		models.OrderStatusShipped,
		models.OrderStatusOutForDelivery,
		models.OrderStatusDelivered,
	}
	start := 0
	for i, s := range chain {
		if s == from {
			start = i + 1
		}
	}
	for _, status := range chain[start:] {
		if _, err := svc.UpdateStatus(orderID, status); err != nil {
			t.Fatalf("failed to advance order %d to %s: %v", orderID, status, err)
		}
	}
}

func TestTrackOrder(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "divya", models.RoleUser)
	plant := createPlant(t, db, "Lemon Plant (Nimbu)", 350.00, 4)

	carts := services.NewCartService(db)
	orders := services.NewOrderService(db)

	_, err := carts.AddItem(user.ID, plantRef(plant.ID), 1)
	assert.NoError(t, err)
	order, err := orders.PlaceOrder(user.ID, testShipping(), models.PaymentMethodCOD)
	assert.NoError(t, err)

	tracked, err := orders.Track(order.TrackingNumber)
	assert.NoError(t, err)
	assert.Equal(t, order.ID, tracked.ID)
	assert.Len(t, tracked.OrderItems, 1)

	_, err = orders.Track("ENO000000000000")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestGetOrderAccess(t *testing.T) {
	db := openTestDB(t)
	owner := createUser(t, db, "asha", models.RoleUser)
	stranger := createUser(t, db, "nikhil", models.RoleUser)
	admin := createUser(t, db, "backoffice", models.RoleAdmin)
	plant := createPlant(t, db, "Curry Leaf Plant", 180.00, 6)

	carts := services.NewCartService(db)
	orders := services.NewOrderService(db)

	_, err := carts.AddItem(owner.ID, plantRef(plant.ID), 1)
	assert.NoError(t, err)
	order, err := orders.PlaceOrder(owner.ID, testShipping(), models.PaymentMethodCOD)
	assert.NoError(t, err)

	_, err = orders.Get(order.ID, owner.ID, models.RoleUser)
	assert.NoError(t, err)

	_, err = orders.Get(order.ID, admin.ID, models.RoleAdmin)
	assert.NoError(t, err)

	_, err = orders.Get(order.ID, stranger.ID, models.RoleUser)
	assert.ErrorIs(t, err, services.ErrUnauthorized)
}

func TestTrackingNumbersAreUnique(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "collector", models.RoleUser)
	plant := createPlant(t, db, "Ashwagandha", 180.00, 100)

	carts := services.NewCartService(db)
	orders := services.NewOrderService(db)

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		_, err := carts.AddItem(user.ID, plantRef(plant.ID), 1)
		assert.NoError(t, err)
		order, err := orders.PlaceOrder(user.ID, testShipping(), models.PaymentMethodCOD)
		if !assert.NoError(t, err) {
			continue
		}
		assert.False(t, seen[order.TrackingNumber], "duplicate tracking number %s", order.TrackingNumber)
		assert.Len(t, order.TrackingNumber, len(utils.TrackingPrefix)+12)
		seen[order.TrackingNumber] = true
	}
}

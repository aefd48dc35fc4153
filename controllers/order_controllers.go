package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/econursery/nursery-app/services"
	"github.com/econursery/nursery-app/utils"
)

type OrderController struct {
	Orders *services.OrderService
	Cart   *services.CartService
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{
		Orders: services.NewOrderService(db),
		Cart:   services.NewCartService(db),
	}
}

// CheckoutPreview returns the cart summary the checkout page renders. The
// stock it shows is advisory; PlaceOrder re-validates inside a transaction.
func (oc *OrderController) CheckoutPreview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	summary, err := oc.Cart.Summary(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if len(summary.Lines) == 0 {
		respondServiceError(c, services.ErrEmptyCart)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Checkout summary", summary)
}

// PlaceOrder runs the checkout workflow and returns the confirmation
// payload, tracking number included.
func (oc *OrderController) PlaceOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var req struct {
		services.ShippingInput
		PaymentMethod string `json:"payment_method" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Orders.PlaceOrder(userID, req.ShippingInput, req.PaymentMethod)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("order %s placed by user %d", order.TrackingNumber, userID)
	utils.RespondJSON(c, http.StatusCreated, "Order placed successfully", order)
}

// GetMyOrders lists the caller's orders, newest first.
func (oc *OrderController) GetMyOrders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	orders, err := oc.Orders.ListForUser(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "My orders", orders)
}

// GetOrderByID returns one order to its owner or an admin.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	orderID, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	order, err := oc.Orders.Get(uint(orderID), userID, c.GetString("role"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// TrackOrder is public: the tracking number is the lookup key.
func (oc *OrderController) TrackOrder(c *gin.Context) {
	trackingNumber := c.Query("tracking_number")
	if trackingNumber == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("tracking_number is required"))
		return
	}

	order, err := oc.Orders.Track(trackingNumber)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("invalid tracking number"))
			return
		}
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order status", order)
}

// CancelOrder lets the owner cancel before shipment.
func (oc *OrderController) CancelOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	orderID, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	order, err := oc.Orders.CancelOrder(userID, uint(orderID))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("order %s cancelled by user %d", order.TrackingNumber, userID)
	utils.RespondJSON(c, http.StatusOK, "Order cancelled", order)
}

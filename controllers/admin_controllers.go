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

type AdminController struct {
	Analytics *services.AnalyticsService
	Orders    *services.OrderService
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{
		Analytics: services.NewAnalyticsService(db),
		Orders:    services.NewOrderService(db),
	}
}

// GetDashboardStats serves the admin landing page aggregates.
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	stats, err := ac.Analytics.DashboardStats()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", stats)
}

// GetAllOrders lists every order for the back office.
func (ac *AdminController) GetAllOrders(c *gin.Context) {
	orders, err := ac.Orders.ListAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// UpdateOrderStatus advances an order one step along the state machine.
func (ac *AdminController) UpdateOrderStatus(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	var req struct {
		OrderStatus string `json:"order_status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := ac.Orders.UpdateStatus(uint(orderID), req.OrderStatus)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("order %s moved to %s", order.TrackingNumber, order.OrderStatus)
	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

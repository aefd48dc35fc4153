package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/econursery/nursery-app/controllers"
	"github.com/econursery/nursery-app/middlewares"
	"github.com/econursery/nursery-app/models"
	"github.com/econursery/nursery-app/utils"
)

func setupTestDBForOrders(name string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Plant{},
		&models.Ingredient{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Notification{},
	)
	if err != nil {
		panic(err)
	}
	return db
}

func setupOrderRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.Default()

	cartCtrl := controllers.NewCartController(db)
	orderCtrl := controllers.NewOrderController(db)
	adminCtrl := controllers.NewAdminController(db)

	r.GET("/track-order", orderCtrl.TrackOrder)

	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.GET("/cart", cartCtrl.GetCart)
		auth.POST("/cart", cartCtrl.AddToCart)
		auth.GET("/checkout", orderCtrl.CheckoutPreview)
		auth.POST("/orders", orderCtrl.PlaceOrder)
		auth.GET("/orders", orderCtrl.GetMyOrders)
		auth.POST("/orders/:order_id/cancel", orderCtrl.CancelOrder)
	}

	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware(), middlewares.AdminOnly())
	{
		admin.PATCH("/orders/:order_id/status", adminCtrl.UpdateOrderStatus)
	}

	return r
}

func seedCustomer(t *testing.T, db *gorm.DB, username, role string) (models.User, string) {
	t.Helper()
	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hashed-elsewhere",
		Role:         role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return user, token
}

func getWithToken(t *testing.T, r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest("GET", path, nil)
	assert.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func patchJSON(t *testing.T, r *gin.Engine, path string, payload interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	assert.NoError(t, err)

	req, err := http.NewRequest("PATCH", path, bytes.NewBuffer(body))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func jsonID(id float64) string {
	return strconv.Itoa(int(id))
}

func shippingPayload(extra map[string]interface{}) map[string]interface{} {
	payload := map[string]interface{}{
		"address":        "42 Garden Road",
		"city":           "Bangalore",
		"state":          "Karnataka",
		"pincode":        "560001",
		"payment_method": "cod",
	}
	for k, v := range extra {
		payload[k] = v
	}
	return payload
}

func TestCartAndCheckoutFlow(t *testing.T) {
	db := setupTestDBForOrders("ctrl_flow")
	r := setupOrderRouter(db)

	_, token := seedCustomer(t, db, "flow_user", models.RoleUser)
	plant := models.Plant{Name: "Tulsi (Holy Basil)", Category: "Medicinal", Price: 150.00, Stock: 3}
	assert.NoError(t, db.Create(&plant).Error)

	// Requests without a token are turned away.
	w := getWithToken(t, r, "/cart", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Checkout preview of an empty cart.
	w = getWithToken(t, r, "/checkout", token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Add two units to the cart.
	w = postJSON(t, r, "/cart", map[string]interface{}{
		"item_kind": "plant",
		"item_id":   plant.ID,
		"quantity":  2,
	}, token)
	assert.Equal(t, http.StatusOK, w.Code)

	// Asking for more than the shelf holds fails before checkout.
	w = postJSON(t, r, "/cart", map[string]interface{}{
		"item_kind": "plant",
		"item_id":   plant.ID,
		"quantity":  2,
	}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// The preview carries the GST breakdown.
	w = getWithToken(t, r, "/checkout", token)
	assert.Equal(t, http.StatusOK, w.Code)
	var preview map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &preview))
	summary := preview["data"].(map[string]interface{})
	assert.InDelta(t, 300.00, summary["subtotal"].(float64), 0.001)
	assert.InDelta(t, 54.00, summary["tax"].(float64), 0.001)
	assert.InDelta(t, 354.00, summary["total"].(float64), 0.001)

	// Place the order.
	w = postJSON(t, r, "/orders", shippingPayload(nil), token)
	assert.Equal(t, http.StatusCreated, w.Code)

	var placed map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &placed))
	orderData := placed["data"].(map[string]interface{})
	tracking := orderData["tracking_number"].(string)
	assert.NotEmpty(t, tracking)
	assert.InDelta(t, 354.00, orderData["total_amount"].(float64), 0.001)

	// The cart is gone and the shelf is down to one unit.
	w = getWithToken(t, r, "/cart", token)
	assert.Equal(t, http.StatusOK, w.Code)
	var cart map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	assert.Empty(t, cart["data"].(map[string]interface{})["lines"])

	var reloaded models.Plant
	assert.NoError(t, db.First(&reloaded, plant.ID).Error)
	assert.Equal(t, 1, reloaded.Stock)

	// Anyone with the tracking number can check the status.
	w = getWithToken(t, r, "/track-order?tracking_number="+tracking, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = getWithToken(t, r, "/track-order?tracking_number=ENO000000000000", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderCancellationOverHTTP(t *testing.T) {
	db := setupTestDBForOrders("ctrl_cancel")
	r := setupOrderRouter(db)

	_, token := seedCustomer(t, db, "cancel_user", models.RoleUser)
	plant := models.Plant{Name: "Aloe Vera", Category: "Medicinal", Price: 120.00, Stock: 5}
	assert.NoError(t, db.Create(&plant).Error)

	w := postJSON(t, r, "/cart", map[string]interface{}{
		"item_kind": "plant",
		"item_id":   plant.ID,
		"quantity":  2,
	}, token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, r, "/orders", shippingPayload(nil), token)
	assert.Equal(t, http.StatusCreated, w.Code)

	var placed map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &placed))
	orderID := placed["data"].(map[string]interface{})["id"].(float64)

	w = postJSON(t, r, "/orders/"+jsonID(orderID)+"/cancel", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)

	var reloaded models.Plant
	assert.NoError(t, db.First(&reloaded, plant.ID).Error)
	assert.Equal(t, 5, reloaded.Stock)

	// Cancelling twice conflicts.
	w = postJSON(t, r, "/orders/"+jsonID(orderID)+"/cancel", nil, token)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAdminStatusUpdateOverHTTP(t *testing.T) {
	db := setupTestDBForOrders("ctrl_status")
	r := setupOrderRouter(db)

	_, userToken := seedCustomer(t, db, "status_user", models.RoleUser)
	_, adminToken := seedCustomer(t, db, "status_admin", models.RoleAdmin)
	plant := models.Plant{Name: "Neem Tree", Category: "Medicinal", Price: 250.00, Stock: 10}
	assert.NoError(t, db.Create(&plant).Error)

	w := postJSON(t, r, "/cart", map[string]interface{}{
		"item_kind": "plant",
		"item_id":   plant.ID,
		"quantity":  1,
	}, userToken)
	assert.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, r, "/orders", shippingPayload(nil), userToken)
	assert.Equal(t, http.StatusCreated, w.Code)

	var placed map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &placed))
	orderID := placed["data"].(map[string]interface{})["id"].(float64)
	statusPath := "/admin/orders/" + jsonID(orderID) + "/status"

	// Customers cannot touch the status endpoint.
	w = patchJSON(t, r, statusPath, map[string]string{"order_status": models.OrderStatusConfirmed}, userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Admins advance one step at a time.
	w = patchJSON(t, r, statusPath, map[string]string{"order_status": models.OrderStatusConfirmed}, adminToken)
	assert.Equal(t, http.StatusOK, w.Code)

	// Skipping a step conflicts.
	w = patchJSON(t, r, statusPath, map[string]string{"order_status": models.OrderStatusDelivered}, adminToken)
	assert.Equal(t, http.StatusConflict, w.Code)
}

package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/econursery/nursery-app/models"
	"github.com/econursery/nursery-app/services"
	"github.com/econursery/nursery-app/utils"
)

type CartController struct {
	Cart *services.CartService
}

func NewCartController(db *gorm.DB) *CartController {
	return &CartController{Cart: services.NewCartService(db)}
}

// GetCart returns the cart lines with subtotal, GST and total.
func (cc *CartController) GetCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	summary, err := cc.Cart.Summary(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cart", summary)
}

// AddToCart creates or merges a cart line.
func (cc *CartController) AddToCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var req struct {
		ItemKind models.ItemKind `json:"item_kind" binding:"required"`
		ItemID   uint            `json:"item_id" binding:"required"`
		Quantity int             `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !req.ItemKind.Valid() {
		utils.RespondError(c, http.StatusBadRequest, errors.New("item_kind must be plant or ingredient"))
		return
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	line, err := cc.Cart.AddItem(userID, models.CatalogRef{Kind: req.ItemKind, ID: req.ItemID}, req.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Item added to cart", line)
}

// UpdateCartItem replaces the quantity on one line.
func (cc *CartController) UpdateCartItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	lineID, err := strconv.Atoi(c.Param("cart_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid cart item id"))
		return
	}

	var req struct {
		Quantity int `json:"quantity" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	line, err := cc.Cart.UpdateQuantity(userID, uint(lineID), req.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cart updated", line)
}

// RemoveFromCart deletes one line.
func (cc *CartController) RemoveFromCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	lineID, err := strconv.Atoi(c.Param("cart_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid cart item id"))
		return
	}

	if err := cc.Cart.RemoveLine(userID, uint(lineID)); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Item removed from cart", nil)
}

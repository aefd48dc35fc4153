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

type WishlistController struct {
	Wishlist *services.WishlistService
	Cart     *services.CartService
}

func NewWishlistController(db *gorm.DB) *WishlistController {
	return &WishlistController{
		Wishlist: services.NewWishlistService(db),
		Cart:     services.NewCartService(db),
	}
}

// GetWishlist lists the caller's entries with plants preloaded.
func (wc *WishlistController) GetWishlist(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	entries, err := wc.Wishlist.List(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Wishlist", entries)
}

// AddToWishlist is idempotent per (user, plant).
func (wc *WishlistController) AddToWishlist(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var req struct {
		PlantID uint `json:"plant_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	entry, err := wc.Wishlist.Add(userID, req.PlantID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Added to wishlist", entry)
}

// RemoveFromWishlist deletes an entry owned by the caller.
func (wc *WishlistController) RemoveFromWishlist(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	entryID, err := strconv.Atoi(c.Param("wishlist_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid wishlist id"))
		return
	}

	if err := wc.Wishlist.Remove(userID, uint(entryID)); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Removed from wishlist", nil)
}

// MoveToCart converts an entry into a cart line.
func (wc *WishlistController) MoveToCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	entryID, err := strconv.Atoi(c.Param("wishlist_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid wishlist id"))
		return
	}

	line, err := wc.Wishlist.MoveToCart(userID, uint(entryID), wc.Cart)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Moved to cart", line)
}

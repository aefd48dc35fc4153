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

type ReviewController struct {
	Reviews *services.ReviewService
}

func NewReviewController(db *gorm.DB) *ReviewController {
	return &ReviewController{Reviews: services.NewReviewService(db)}
}

// AddReview posts a review; the service enforces the purchased-and-delivered
// gate and the one-review-per-plant rule.
func (rc *ReviewController) AddReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	plantID, err := strconv.Atoi(c.Param("plant_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid plant id"))
		return
	}

	var req struct {
		Rating  int    `json:"rating" binding:"required,min=1,max=5"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	review, err := rc.Reviews.AddReview(userID, uint(plantID), req.Rating, req.Comment)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Review submitted", review)
}

// GetPlantReviews lists a plant's reviews.
func (rc *ReviewController) GetPlantReviews(c *gin.Context) {
	plantID, err := strconv.Atoi(c.Param("plant_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid plant id"))
		return
	}

	reviews, err := rc.Reviews.ListForPlant(uint(plantID))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reviews", reviews)
}

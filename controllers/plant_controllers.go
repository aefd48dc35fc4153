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

type PlantController struct {
	DB      *gorm.DB
	Reviews *services.ReviewService
}

func NewPlantController(db *gorm.DB) *PlantController {
	return &PlantController{DB: db, Reviews: services.NewReviewService(db)}
}

// GetAllPlants supports the storefront filters: category, search over
// name/description, price range, in-stock only.
func (pc *PlantController) GetAllPlants(c *gin.Context) {
	query := pc.DB.Model(&models.Plant{})

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", pattern, pattern)
	}
	if minPrice := c.Query("min_price"); minPrice != "" {
		if v, err := strconv.ParseFloat(minPrice, 64); err == nil {
			query = query.Where("price >= ?", v)
		}
	}
	if maxPrice := c.Query("max_price"); maxPrice != "" {
		if v, err := strconv.ParseFloat(maxPrice, 64); err == nil {
			query = query.Where("price <= ?", v)
		}
	}
	if c.Query("in_stock") == "true" {
		query = query.Where("stock > 0")
	}

	var plants []models.Plant
	if err := query.Find(&plants).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var categories []string
	pc.DB.Model(&models.Plant{}).Distinct("category").Pluck("category", &categories)

	utils.RespondJSON(c, http.StatusOK, "List of plants", gin.H{
		"plants":     plants,
		"categories": categories,
	})
}

// GetPlantByID returns the plant with its reviews, average rating and up to
// four in-stock related plants from the same category.
func (pc *PlantController) GetPlantByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("plant_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid plant id"))
		return
	}

	var plant models.Plant
	if err := pc.DB.First(&plant, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("plant not found"))
		return
	}

	reviews, err := pc.Reviews.ListForPlant(plant.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	avgRating, err := pc.Reviews.AverageRating(plant.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var related []models.Plant
	pc.DB.Where("category = ? AND id <> ? AND stock > 0", plant.Category, plant.ID).
		Limit(4).Find(&related)

	utils.RespondJSON(c, http.StatusOK, "Plant detail", gin.H{
		"plant":          plant,
		"reviews":        reviews,
		"average_rating": avgRating,
		"related_plants": related,
	})
}

// CreatePlant (admin) accepts a multipart form with an optional image.
func (pc *PlantController) CreatePlant(c *gin.Context) {
	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil || price < 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid price"))
		return
	}
	stock, err := strconv.Atoi(c.PostForm("stock"))
	if err != nil || stock < 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid stock"))
		return
	}
	name := c.PostForm("name")
	category := c.PostForm("category")
	if name == "" || category == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("name and category are required"))
		return
	}

	image, err := imageFromForm(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	plant := models.Plant{
		Name:             name,
		Category:         category,
		Price:            price,
		Description:      c.PostForm("description"),
		Sunlight:         c.PostForm("sunlight"),
		Water:            c.PostForm("water"),
		CareInstructions: c.PostForm("care_instructions"),
		Stock:            stock,
	}
	if image != "" {
		plant.Image = image
	}

	if err := pc.DB.Create(&plant).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Plant added", plant)
}

// UpdatePlant (admin) edits fields in place; a new image replaces the old
// reference but old files are left on disk.
func (pc *PlantController) UpdatePlant(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("plant_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid plant id"))
		return
	}

	var plant models.Plant
	if err := pc.DB.First(&plant, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("plant not found"))
		return
	}

	if v := c.PostForm("name"); v != "" {
		plant.Name = v
	}
	if v := c.PostForm("category"); v != "" {
		plant.Category = v
	}
	if v := c.PostForm("price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil || price < 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid price"))
			return
		}
		plant.Price = price
	}
	if v := c.PostForm("stock"); v != "" {
		stock, err := strconv.Atoi(v)
		if err != nil || stock < 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid stock"))
			return
		}
		plant.Stock = stock
	}
	if v, ok := c.GetPostForm("description"); ok {
		plant.Description = v
	}
	if v, ok := c.GetPostForm("sunlight"); ok {
		plant.Sunlight = v
	}
	if v, ok := c.GetPostForm("water"); ok {
		plant.Water = v
	}
	if v, ok := c.GetPostForm("care_instructions"); ok {
		plant.CareInstructions = v
	}

	image, err := imageFromForm(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if image != "" {
		plant.Image = image
	}

	if err := pc.DB.Save(&plant).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Plant updated", plant)
}

// DeletePlant (admin).
func (pc *PlantController) DeletePlant(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("plant_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid plant id"))
		return
	}

	var plant models.Plant
	if err := pc.DB.First(&plant, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("plant not found"))
		return
	}

	if err := pc.DB.Delete(&plant).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Plant deleted", nil)
}

package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/econursery/nursery-app/models"
	"github.com/econursery/nursery-app/utils"
)

type IngredientController struct {
	DB *gorm.DB
}

func NewIngredientController(db *gorm.DB) *IngredientController {
	return &IngredientController{DB: db}
}

// GetAllIngredients mirrors the plant listing filters, with "type" taking
// the place of "category".
func (ic *IngredientController) GetAllIngredients(c *gin.Context) {
	query := ic.DB.Model(&models.Ingredient{})

	if typ := c.Query("type"); typ != "" {
		query = query.Where("type = ?", typ)
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

	var ingredients []models.Ingredient
	if err := query.Find(&ingredients).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var types []string
	ic.DB.Model(&models.Ingredient{}).Distinct("type").Pluck("type", &types)

	utils.RespondJSON(c, http.StatusOK, "List of ingredients", gin.H{
		"ingredients": ingredients,
		"types":       types,
	})
}

// GetIngredientByID returns the ingredient plus up to four in-stock related
// items of the same type.
func (ic *IngredientController) GetIngredientByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("ingredient_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid ingredient id"))
		return
	}

	var ingredient models.Ingredient
	if err := ic.DB.First(&ingredient, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("ingredient not found"))
		return
	}

	var related []models.Ingredient
	ic.DB.Where("type = ? AND id <> ? AND stock > 0", ingredient.Type, ingredient.ID).
		Limit(4).Find(&related)

	utils.RespondJSON(c, http.StatusOK, "Ingredient detail", gin.H{
		"ingredient":          ingredient,
		"related_ingredients": related,
	})
}

// CreateIngredient (admin).
func (ic *IngredientController) CreateIngredient(c *gin.Context) {
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
	typ := c.PostForm("type")
	if name == "" || typ == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("name and type are required"))
		return
	}

	image, err := imageFromForm(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	ingredient := models.Ingredient{
		Name:              name,
		Type:              typ,
		Price:             price,
		Description:       c.PostForm("description"),
		UsageInstructions: c.PostForm("usage_instructions"),
		Stock:             stock,
	}
	if image != "" {
		ingredient.Image = image
	}

	if err := ic.DB.Create(&ingredient).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Ingredient added", ingredient)
}

// UpdateIngredient (admin).
func (ic *IngredientController) UpdateIngredient(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("ingredient_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid ingredient id"))
		return
	}

	var ingredient models.Ingredient
	if err := ic.DB.First(&ingredient, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("ingredient not found"))
		return
	}

	if v := c.PostForm("name"); v != "" {
		ingredient.Name = v
	}
	if v := c.PostForm("type"); v != "" {
		ingredient.Type = v
	}
	if v := c.PostForm("price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil || price < 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid price"))
			return
		}
		ingredient.Price = price
	}
	if v := c.PostForm("stock"); v != "" {
		stock, err := strconv.Atoi(v)
		if err != nil || stock < 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid stock"))
			return
		}
		ingredient.Stock = stock
	}
	if v, ok := c.GetPostForm("description"); ok {
		ingredient.Description = v
	}
	if v, ok := c.GetPostForm("usage_instructions"); ok {
		ingredient.UsageInstructions = v
	}

	image, err := imageFromForm(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if image != "" {
		ingredient.Image = image
	}

	if err := ic.DB.Save(&ingredient).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Ingredient updated", ingredient)
}

// DeleteIngredient (admin).
func (ic *IngredientController) DeleteIngredient(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("ingredient_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid ingredient id"))
		return
	}

	var ingredient models.Ingredient
	if err := ic.DB.First(&ingredient, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("ingredient not found"))
		return
	}

	if err := ic.DB.Delete(&ingredient).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Ingredient deleted", nil)
}

package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/casafernando/comanda-backend/models"
	"github.com/casafernando/comanda-backend/utils"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// GetPublicMenu -> the menu customers see: available dishes whose category
// is active, ordered by category display order then dish name.
func (mc *MenuController) GetPublicMenu(c *gin.Context) {
	var dishes []models.Dish
	err := mc.DB.Preload("Category").
		Joins("JOIN menu_categories ON menu_categories.id = dishes.category_id").
		Where("dishes.available = ? AND menu_categories.active = ?", true, true).
		Order("menu_categories.display_order ASC, dishes.name ASC").
		Find(&dishes).Error
	if err != nil {
		utils.RespondAppError(c, utils.StoreError("loading menu", err))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu", dishes)
}

// GetAllDishes -> admin listing, includes unavailable dishes.
func (mc *MenuController) GetAllDishes(c *gin.Context) {
	var dishes []models.Dish
	if err := mc.DB.Preload("Category").Order("name ASC").Find(&dishes).Error; err != nil {
		utils.RespondAppError(c, utils.StoreError("listing dishes", err))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of dishes", dishes)
}

// CreateDish
func (mc *MenuController) CreateDish(c *gin.Context) {
	var req struct {
		CategoryID  uint    `json:"category_id" binding:"required"`
		Name        string  `json:"name" binding:"required"`
		Description string  `json:"description"`
		Price       float64 `json:"price" binding:"required,gt=0"`
		ImageURL    string  `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var category models.MenuCategory
	if err := mc.DB.First(&category, req.CategoryID).Error; err != nil {
		utils.RespondAppError(c, utils.ValidationError("category %d not found", req.CategoryID))
		return
	}

	dish := models.Dish{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Available:   true,
	}
	if err := mc.DB.Create(&dish).Error; err != nil {
		utils.RespondAppError(c, utils.StoreError("creating dish", err))
		return
	}

	utils.InfoLogger.Printf("Dish created: %s (price=%.2f)", dish.Name, dish.Price)
	utils.RespondJSON(c, http.StatusCreated, "Dish created", dish)
}

// UpdateDish -> partial update. Price changes never touch existing order
// lines, which carry their own snapshots.
func (mc *MenuController) UpdateDish(c *gin.Context) {
	var dish models.Dish
	if err := mc.DB.First(&dish, c.Param("dish_id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondAppError(c, utils.NotFoundError("dish not found"))
			return
		}
		utils.RespondAppError(c, utils.StoreError("loading dish", err))
		return
	}

	var req struct {
		CategoryID  *uint    `json:"category_id"`
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
		ImageURL    *string  `json:"image_url"`
		Available   *bool    `json:"available"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.CategoryID != nil {
		var category models.MenuCategory
		if err := mc.DB.First(&category, *req.CategoryID).Error; err != nil {
			utils.RespondAppError(c, utils.ValidationError("category %d not found", *req.CategoryID))
			return
		}
		dish.CategoryID = *req.CategoryID
	}
	if req.Name != nil {
		dish.Name = *req.Name
	}
	if req.Description != nil {
		dish.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			utils.RespondAppError(c, utils.ValidationError("price must be positive"))
			return
		}
		dish.Price = *req.Price
	}
	if req.ImageURL != nil {
		dish.ImageURL = *req.ImageURL
	}
	if req.Available != nil {
		dish.Available = *req.Available
	}

	if err := mc.DB.Save(&dish).Error; err != nil {
		utils.RespondAppError(c, utils.StoreError("saving dish", err))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dish updated", dish)
}

// DeleteDish -> removes a dish from the menu. Order lines keep their name
// and price snapshots.
func (mc *MenuController) DeleteDish(c *gin.Context) {
	var dish models.Dish
	if err := mc.DB.First(&dish, c.Param("dish_id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondAppError(c, utils.NotFoundError("dish not found"))
			return
		}
		utils.RespondAppError(c, utils.StoreError("loading dish", err))
		return
	}

	if err := mc.DB.Delete(&dish).Error; err != nil {
		utils.RespondAppError(c, utils.StoreError("deleting dish", err))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dish deleted", gin.H{"dish_id": dish.ID})
}

package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/casafernando/comanda-backend/models"
	"github.com/casafernando/comanda-backend/utils"
)

type MenuCategoryController struct {
	DB *gorm.DB
}

func NewMenuCategoryController(db *gorm.DB) *MenuCategoryController {
	return &MenuCategoryController{DB: db}
}

// GetAllCategories -> ordered by display order.
func (cc *MenuCategoryController) GetAllCategories(c *gin.Context) {
	var categories []models.MenuCategory
	if err := cc.DB.Order("display_order ASC").Find(&categories).Error; err != nil {
		utils.RespondAppError(c, utils.StoreError("listing categories", err))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of categories", categories)
}

// CreateCategory
func (cc *MenuCategoryController) CreateCategory(c *gin.Context) {
	var req struct {
		Name         string `json:"name" binding:"required"`
		Description  string `json:"description"`
		DisplayOrder int    `json:"display_order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	category := models.MenuCategory{
		Name:         req.Name,
		Description:  req.Description,
		DisplayOrder: req.DisplayOrder,
		Active:       true,
	}
	if err := cc.DB.Create(&category).Error; err != nil {
		utils.RespondAppError(c, utils.StoreError("creating category", err))
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Category created", category)
}

// UpdateCategory -> partial update.
func (cc *MenuCategoryController) UpdateCategory(c *gin.Context) {
	var category models.MenuCategory
	if err := cc.DB.First(&category, c.Param("cat_id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondAppError(c, utils.NotFoundError("category not found"))
			return
		}
		utils.RespondAppError(c, utils.StoreError("loading category", err))
		return
	}

	var req struct {
		Name         *string `json:"name"`
		Description  *string `json:"description"`
		DisplayOrder *int    `json:"display_order"`
		Active       *bool   `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.DisplayOrder != nil {
		category.DisplayOrder = *req.DisplayOrder
	}
	if req.Active != nil {
		category.Active = *req.Active
	}

	if err := cc.DB.Save(&category).Error; err != nil {
		utils.RespondAppError(c, utils.StoreError("saving category", err))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Category updated", category)
}

package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/casafernando/comanda-backend/models"
	"github.com/casafernando/comanda-backend/notify"
	"github.com/casafernando/comanda-backend/services"
	"github.com/casafernando/comanda-backend/utils"
)

type TableController struct {
	DB     *gorm.DB
	hub    *notify.Hub
	tables *services.TableService
}

func NewTableController(db *gorm.DB, hub *notify.Hub) *TableController {
	return &TableController{
		DB:     db,
		hub:    hub,
		tables: services.NewTableService(db),
	}
}

// CreateTable -> admin adds a table. Table numbers are unique.
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		TableNumber string `json:"table_number" binding:"required"`
		Capacity    int    `json:"capacity"`
		Location    string `json:"location"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var existing models.Table
	if err := tc.DB.Where("table_number = ?", req.TableNumber).First(&existing).Error; err == nil {
		utils.RespondAppError(c, utils.ConflictError("a table with number %s already exists", req.TableNumber))
		return
	}

	table := models.Table{
		TableNumber: req.TableNumber,
		Capacity:    req.Capacity,
		Location:    req.Location,
		Active:      true,
	}
	if table.Capacity == 0 {
		table.Capacity = 4
	}

	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondAppError(c, utils.StoreError("creating table", err))
		return
	}

	utils.InfoLogger.Printf("New table created: %s (capacity=%d)", table.TableNumber, table.Capacity)
	tc.hub.BroadcastTableUpdate(table)
	utils.RespondJSON(c, http.StatusCreated, "Table created", table)
}

// GetAllTables -> every table including inactive ones, for admin.
func (tc *TableController) GetAllTables(c *gin.Context) {
	var tables []models.Table
	if err := tc.DB.Order("table_number ASC").Find(&tables).Error; err != nil {
		utils.RespondAppError(c, utils.StoreError("listing tables", err))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// GetActiveTables -> selector shown to staff when opening a comanda.
func (tc *TableController) GetActiveTables(c *gin.Context) {
	tables, err := tc.tables.ListActiveTables()
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Active tables", tables)
}

// GetAvailableTables -> active tables without an open comanda.
func (tc *TableController) GetAvailableTables(c *gin.Context) {
	tables, err := tc.tables.ListAvailableTables()
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Available tables", tables)
}

// UpdateTable -> partial update; only fields present in the payload are
// applied.
func (tc *TableController) UpdateTable(c *gin.Context) {
	var table models.Table
	if err := tc.DB.First(&table, c.Param("table_id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondAppError(c, utils.NotFoundError("table not found"))
			return
		}
		utils.RespondAppError(c, utils.StoreError("loading table", err))
		return
	}

	var req struct {
		TableNumber *string `json:"table_number"`
		Capacity    *int    `json:"capacity"`
		Location    *string `json:"location"`
		Active      *bool   `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.TableNumber != nil {
		var dup models.Table
		if err := tc.DB.Where("table_number = ? AND id <> ?", *req.TableNumber, table.ID).First(&dup).Error; err == nil {
			utils.RespondAppError(c, utils.ConflictError("a table with number %s already exists", *req.TableNumber))
			return
		}
		table.TableNumber = *req.TableNumber
	}
	if req.Capacity != nil {
		table.Capacity = *req.Capacity
	}
	if req.Location != nil {
		table.Location = *req.Location
	}
	if req.Active != nil {
		table.Active = *req.Active
	}

	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondAppError(c, utils.StoreError("saving table", err))
		return
	}

	tc.hub.BroadcastTableUpdate(table)
	utils.RespondJSON(c, http.StatusOK, "Table updated", table)
}

// DeleteTable -> soft delete. Historical orders keep their table
// reference, so tables are only ever deactivated.
func (tc *TableController) DeleteTable(c *gin.Context) {
	var table models.Table
	if err := tc.DB.First(&table, c.Param("table_id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondAppError(c, utils.NotFoundError("table not found"))
			return
		}
		utils.RespondAppError(c, utils.StoreError("loading table", err))
		return
	}

	table.Active = false
	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondAppError(c, utils.StoreError("deactivating table", err))
		return
	}

	utils.InfoLogger.Printf("Table %s deactivated", table.TableNumber)
	tc.hub.BroadcastTableUpdate(table)
	utils.RespondJSON(c, http.StatusOK, "Table deactivated", table)
}

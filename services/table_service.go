package services

import (
	"gorm.io/gorm"

	"github.com/casafernando/comanda-backend/models"
	"github.com/casafernando/comanda-backend/utils"
)

// TableService resolves table availability against the open orders.
type TableService struct {
	db *gorm.DB
}

func NewTableService(db *gorm.DB) *TableService {
	return &TableService{db: db}
}

// ListAvailableTables returns the active tables not referenced by any order
// that is still open (not paid, not cancelled), ordered by table number.
// This is a point-in-time snapshot with no locking: two concurrent readers
// may both see the same table as free, and order creation does not re-check
// availability. Double-booking is a business-level race, accepted.
func (s *TableService) ListAvailableTables() ([]models.Table, error) {
	occupied := s.db.Model(&models.Order{}).
		Select("table_id").
		Where("table_id IS NOT NULL AND status IN ?", models.OpenStatuses())

	var tables []models.Table
	err := s.db.Where("active = ?", true).
		Where("id NOT IN (?)", occupied).
		Order("table_number ASC").
		Find(&tables).Error
	if err != nil {
		return nil, utils.StoreError("listing available tables", err)
	}
	return tables, nil
}

// ListActiveTables -> every active table, for the selector when a staff
// member opens a comanda.
func (s *TableService) ListActiveTables() ([]models.Table, error) {
	var tables []models.Table
	err := s.db.Where("active = ?", true).
		Order("table_number ASC").
		Find(&tables).Error
	if err != nil {
		return nil, utils.StoreError("listing tables", err)
	}
	return tables, nil
}

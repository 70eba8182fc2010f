package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/casafernando/comanda-backend/models"
	"github.com/casafernando/comanda-backend/notify"
	"github.com/casafernando/comanda-backend/utils"
)

// AttentionService persists customer attention requests and fans them out
// to the connected staff sessions through the hub.
type AttentionService struct {
	db  *gorm.DB
	hub *notify.Hub
}

func NewAttentionService(db *gorm.DB, hub *notify.Hub) *AttentionService {
	return &AttentionService{db: db, hub: hub}
}

// RequestAttention records the request, then pushes it to every live staff
// connection. The push is fire-and-forget; the persisted record is the
// durable copy staff can still find via ListPending.
func (s *AttentionService) RequestAttention(tableID *uint, message string) (*models.AttentionRequest, error) {
	if message == "" {
		message = models.DefaultAttentionMessage
	}

	req := models.AttentionRequest{
		TableID: tableID,
		Message: message,
	}
	if err := s.db.Create(&req).Error; err != nil {
		return nil, utils.StoreError("creating attention request", err)
	}

	utils.InfoLogger.Printf("Attention request %d raised (table=%v)", req.ID, tableID)
	s.hub.BroadcastAttentionRequest(req)
	return &req, nil
}

// ListPending -> unhandled requests, most recent first.
func (s *AttentionService) ListPending() ([]models.AttentionRequest, error) {
	var reqs []models.AttentionRequest
	err := s.db.Preload("Table").
		Where("handled = ?", false).
		Order("created_at DESC").
		Find(&reqs).Error
	if err != nil {
		return nil, utils.StoreError("listing attention requests", err)
	}
	return reqs, nil
}

// Acknowledge flips the handled flag. Acknowledging twice is a no-op
// success.
func (s *AttentionService) Acknowledge(id uint) error {
	var req models.AttentionRequest
	if err := s.db.First(&req, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFoundError("attention request %d not found", id)
		}
		return utils.StoreError("loading attention request", err)
	}

	if req.Handled {
		return nil
	}
	req.Handled = true
	if err := s.db.Save(&req).Error; err != nil {
		return utils.StoreError("acknowledging attention request", err)
	}
	return nil
}

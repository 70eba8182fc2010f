package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/casafernando/comanda-backend/models"
	"github.com/casafernando/comanda-backend/notify"
	"github.com/casafernando/comanda-backend/utils"
)

// AttentionMonitor periodically re-broadcasts a reminder to the staff
// sockets while attention requests sit unhandled, so a request is not lost
// when no staff device was connected at the moment it was raised.
type AttentionMonitor struct {
	DB       *gorm.DB
	Hub      *notify.Hub
	StopChan chan struct{}
	Interval time.Duration
}

func NewAttentionMonitor(db *gorm.DB, hub *notify.Hub) *AttentionMonitor {
	return &AttentionMonitor{
		DB:       db,
		Hub:      hub,
		StopChan: make(chan struct{}),
		Interval: 30 * time.Second,
	}
}

func (m *AttentionMonitor) Start() {
	go func() {
		ticker := time.NewTicker(m.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.checkPending()
			case <-m.StopChan:
				return
			}
		}
	}()
}

func (m *AttentionMonitor) Stop() {
	close(m.StopChan)
}

func (m *AttentionMonitor) checkPending() {
	var count int64
	if err := m.DB.Model(&models.AttentionRequest{}).
		Where("handled = ?", false).
		Count(&count).Error; err != nil {
		utils.ErrorLogger.Printf("attention monitor: counting pending requests: %v", err)
		return
	}

	if count > 0 && m.Hub.ClientCount() > 0 {
		utils.InfoLogger.Printf("attention monitor: %d pending requests, nudging staff", count)
		m.Hub.BroadcastAttentionReminder(count)
	}
}

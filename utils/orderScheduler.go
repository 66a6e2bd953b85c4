package utils

import (
	"log"

	"courseapi/models"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// InitializeOrderSweeper sets up the stale-order sweeper
func InitializeOrderSweeper(db *gorm.DB) {
	log.Println("[ORDER-SWEEPER] Initializing order sweeper...")

	c := cron.New()

	// Run daily at 2 AM to expire checkout attempts that never completed
	c.AddFunc("0 2 * * *", func() {
		log.Println("[ORDER-SWEEPER] Running daily stale order sweep...")
		SweepStaleOrders(db)
	})

	c.Start()
	log.Println("[ORDER-SWEEPER] Order sweeper started - runs daily at 2 AM")
}

// SweepStaleOrders marks unpaid mirror orders from before yesterday as
// EXPIRED so an old receipt cannot resurrect a stale checkout attempt.
func SweepStaleOrders(db *gorm.DB) {
	cutoff := now.BeginningOfDay().AddDate(0, 0, -1)

	result := db.Model(&models.Order{}).
		Where("status = ? AND created_at < ?", models.OrderStatusCreated, cutoff).
		Update("status", models.OrderStatusExpired)
	if result.Error != nil {
		log.Printf("[ORDER-SWEEPER] Error expiring stale orders: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("[ORDER-SWEEPER] Expired %d stale orders", result.RowsAffected)
	}
}

package utils

import (
	"log"
	"time"

	"saathi/database"
	"saathi/models"

	"github.com/robfig/cron/v3"
)

// completeEndedWebinars marks scheduled webinars as completed once their slot has passed
func completeEndedWebinars() {
	db := database.Database.Db
	now := time.Now()

	var webinars []models.Webinar
	if err := db.Where("status = ?", models.WebinarScheduled).Find(&webinars).Error; err != nil {
		log.Printf("[WEBINAR-SCHEDULER] Error fetching scheduled webinars: %v", err)
		return
	}

	for _, w := range webinars {
		endsAt := w.ScheduledAt.Add(time.Duration(w.Duration) * time.Minute)
		if endsAt.Before(now) {
			w.Status = models.WebinarCompleted
			if err := db.Save(&w).Error; err != nil {
				log.Printf("[WEBINAR-SCHEDULER] Error completing webinar %d: %v", w.ID, err)
				continue
			}
			log.Printf("[WEBINAR-SCHEDULER] Webinar %d marked completed", w.ID)
		} else if w.ScheduledAt.After(now) && w.ScheduledAt.Before(now.Add(time.Hour)) {
			log.Printf("[WEBINAR-SCHEDULER] Webinar %d (%s) starts at %s", w.ID, w.Title, w.ScheduledAt.Format(time.RFC3339))
		}
	}
}

// StartWebinarScheduler checks every 5 minutes for webinars past their end time
func StartWebinarScheduler() {
	c := cron.New()

	c.AddFunc("*/5 * * * *", func() {
		completeEndedWebinars()
	})

	c.Start()
	log.Println("Webinar scheduler started")
}

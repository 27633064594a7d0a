package utils

import (
	"log"
	"strings"
	"time"

	"civicvoice/config"
	"civicvoice/database"
	"civicvoice/models"

	"github.com/robfig/cron/v3"
)

// InitializeStaleDigestScheduler sets up the daily ignored-issues digest.
func InitializeStaleDigestScheduler() {
	if strings.EqualFold(config.AppConfig.StaleDigest, "off") {
		log.Println("[STALE-DIGEST] Scheduler disabled via STALE_DIGEST_CRON=off")
		return
	}
	if strings.TrimSpace(config.AppConfig.AdminEmails) == "" {
		log.Println("[STALE-DIGEST] No admin emails configured, scheduler not started")
		return
	}

	c := cron.New()

	// Run daily at 8 AM server time
	c.AddFunc("0 8 * * *", func() {
		log.Println("[STALE-DIGEST] Running daily stale issue check...")
		SendStaleDigest()
	})

	c.Start()
	log.Println("[STALE-DIGEST] Scheduler started - runs daily at 8 AM")
}

// SendStaleDigest mails the admin list every unresolved issue older than a
// week. One digest per run, oldest issues first.
func SendStaleDigest() {
	db := database.Database.Db
	cutoff := time.Now().Add(-7 * 24 * time.Hour)

	var stale []models.Issue
	if err := db.
		Where("status <> ? AND created_at <= ?", models.StatusResolved, cutoff).
		Order("created_at ASC").
		Find(&stale).Error; err != nil {
		log.Printf("[STALE-DIGEST] Error fetching stale issues: %v", err)
		return
	}

	if len(stale) == 0 {
		log.Println("[STALE-DIGEST] No stale issues, nothing to send")
		return
	}

	var recipients []string
	for _, email := range strings.Split(config.AppConfig.AdminEmails, ",") {
		email = strings.TrimSpace(email)
		if email != "" {
			recipients = append(recipients, email)
		}
	}

	if err := SendStaleDigestEmail(recipients, stale); err != nil {
		log.Printf("[STALE-DIGEST] Error sending digest: %v", err)
		return
	}

	log.Printf("[STALE-DIGEST] Digest sent for %d stale issues", len(stale))
}

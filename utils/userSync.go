package utils

import (
	"log"
	"time"

	"saathi/config"

	"github.com/go-resty/resty/v2"
)

// SyncRegistration pushes a new registration to the partner CRM.
// Failures are logged only, registration never blocks on the CRM.
func SyncRegistration(username, email, role string) {
	syncURL := config.AppConfig.CRMSyncURL
	if syncURL == "" {
		return
	}

	client := resty.New().SetTimeout(10 * time.Second)
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{
			"username":     username,
			"email":        email,
			"role":         role,
			"registeredAt": time.Now().Format(time.RFC3339),
		}).
		Post(syncURL)
	if err != nil {
		log.Printf("CRM sync failed for %s: %v", username, err)
		return
	}
	if resp.StatusCode() >= 400 {
		log.Printf("CRM sync rejected for %s: %d %s", username, resp.StatusCode(), resp.String())
	}
}

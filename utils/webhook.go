package utils

import (
	"log"
	"time"

	"trainport/config"

	"github.com/go-resty/resty/v2"
)

// PostEvent delivers a fire-and-forget event to the configured webhook.
// Meant to be called in a goroutine; failures are logged and dropped,
// nothing in the portal depends on delivery.
func PostEvent(event string, payload map[string]interface{}) {
	url := config.AppConfig.WebhookURL
	if url == "" {
		return
	}

	body := map[string]interface{}{
		"event":       event,
		"occurred_at": time.Now().UTC().Format(time.RFC3339),
		"data":        payload,
	}

	client := resty.New().SetTimeout(10 * time.Second)
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(url)
	if err != nil {
		log.Printf("[WEBHOOK] %s delivery failed: %v", event, err)
		return
	}
	if resp.IsError() {
		log.Printf("[WEBHOOK] %s rejected with status %d", event, resp.StatusCode())
	}
}

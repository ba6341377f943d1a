package billing

import "time"

// WebhookEvent is an append-only marker for a processed payment-provider
// event. It exists only so the same event id is never reconciled twice.
type WebhookEvent struct {
	ID          uint   `gorm:"primaryKey"`
	EventID     string `gorm:"column:event_id;uniqueIndex:idx_webhook_events_event_id"`
	ProcessedAt time.Time
}

package stripewebhooks

import (
	"errors"
	"time"

	"villma-portal/internal/domain/billing"
	"villma-portal/internal/domain/subscriptions"
	"villma-portal/internal/domain/users"

	"gorm.io/gorm"
)

// Store is what the reconciler needs from persistence. The gorm
// implementation below is the real one; tests use an in-memory fake.
type Store interface {
	EventProcessed(eventID string) (bool, error)
	MarkEventProcessed(eventID string) error

	UserByEmail(email string) (*users.User, error)
	SubscriptionsByStripeCustomer(customerID string) ([]subscriptions.UserSubscription, error)
	CreateSubscription(sub *subscriptions.UserSubscription) error
	UpdateSubscriptionByStripeID(stripeSubscriptionID string, updates map[string]interface{}) error
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) EventProcessed(eventID string) (bool, error) {
	var count int64
	err := s.db.Model(&billing.WebhookEvent{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count > 0, err
}

func (s *gormStore) MarkEventProcessed(eventID string) error {
	return s.db.Create(&billing.WebhookEvent{
		EventID:     eventID,
		ProcessedAt: time.Now(),
	}).Error
}

func (s *gormStore) UserByEmail(email string) (*users.User, error) {
	var user users.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *gormStore) SubscriptionsByStripeCustomer(customerID string) ([]subscriptions.UserSubscription, error) {
	var subs []subscriptions.UserSubscription
	err := s.db.Where("stripe_customer_id = ?", customerID).Find(&subs).Error
	return subs, err
}

func (s *gormStore) CreateSubscription(sub *subscriptions.UserSubscription) error {
	return s.db.Create(sub).Error
}

func (s *gormStore) UpdateSubscriptionByStripeID(stripeSubscriptionID string, updates map[string]interface{}) error {
	return s.db.Model(&subscriptions.UserSubscription{}).
		Where("stripe_subscription_id = ?", stripeSubscriptionID).
		Updates(updates).Error
}

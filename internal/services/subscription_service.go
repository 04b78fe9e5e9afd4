package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/causeway-app/causeway-backend/internal/cache"
	"github.com/causeway-app/causeway-backend/internal/dto"
	"github.com/causeway-app/causeway-backend/internal/identity"
	"github.com/causeway-app/causeway-backend/internal/models"
	"gorm.io/gorm"
)

// One-time purchase grants a year of access.
const accessPeriod = 365 * 24 * time.Hour

// SubscriptionService applies payment-provider webhook events to
// subscription records. Each mutation invalidates the access cache entry
// for the affected email so revocation is visible before the TTL elapses
// (on this replica; other replicas converge within the TTL).
type SubscriptionService struct {
	db    *gorm.DB
	cache *cache.AccessCache
	now   func() time.Time
}

func NewSubscriptionService(db *gorm.DB, accessCache *cache.AccessCache) *SubscriptionService {
	return &SubscriptionService{
		db:    db,
		cache: accessCache,
		now:   time.Now,
	}
}

func (s *SubscriptionService) HandleWebhookEvent(event *dto.StripeEvent) error {
	switch event.Type {
	case "checkout.session.completed":
		return s.handleCheckoutCompleted(event)
	case "customer.subscription.deleted", "charge.refunded":
		return s.handleRevocation(event)
	default:
		// Unknown event types are acknowledged and ignored.
		return nil
	}
}

func (s *SubscriptionService) handleCheckoutCompleted(event *dto.StripeEvent) error {
	email := identity.NormalizeEmail(event.Data.Object.CustomerEmail())
	if email == "" {
		return fmt.Errorf("checkout session %s has no customer email", event.Data.Object.ID)
	}

	now := s.now()
	var sub models.Subscription
	err := s.db.Where("email = ?", email).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		sub = models.Subscription{
			CustomerID:     event.Data.Object.Customer,
			Email:          email,
			PurchaseDate:   now,
			ExpirationDate: now.Add(accessPeriod),
			Active:         true,
		}
		if err := s.db.Create(&sub).Error; err != nil {
			return fmt.Errorf("failed to create subscription: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("subscription lookup failed: %w", err)
	} else {
		// Renewal: extend from now, reactivate.
		if err := s.db.Model(&sub).Updates(map[string]interface{}{
			"customer_id":     event.Data.Object.Customer,
			"purchase_date":   now,
			"expiration_date": now.Add(accessPeriod),
			"active":          true,
		}).Error; err != nil {
			return fmt.Errorf("failed to renew subscription: %w", err)
		}
	}

	s.cache.Invalidate(email)
	return nil
}

func (s *SubscriptionService) handleRevocation(event *dto.StripeEvent) error {
	email := identity.NormalizeEmail(event.Data.Object.CustomerEmail())
	if email == "" {
		return fmt.Errorf("event %s has no customer email", event.ID)
	}

	result := s.db.Model(&models.Subscription{}).
		Where("email = ?", email).
		Update("active", false)
	if result.Error != nil {
		return fmt.Errorf("failed to deactivate subscription: %w", result.Error)
	}

	s.cache.Invalidate(email)
	return nil
}

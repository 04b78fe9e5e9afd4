package services

import (
	"errors"
	"log/slog"
	"time"

	"github.com/causeway-app/causeway-backend/internal/cache"
	"github.com/causeway-app/causeway-backend/internal/identity"
	"github.com/causeway-app/causeway-backend/internal/models"
	"gorm.io/gorm"
)

// AccessService resolves roles and subscription state from the store.
// CheckAccess results are memoized in the access cache; role and raw
// subscription reads always go to the store.
type AccessService struct {
	db    *gorm.DB
	cache *cache.AccessCache
	now   func() time.Time
}

func NewAccessService(db *gorm.DB, accessCache *cache.AccessCache) *AccessService {
	return &AccessService{
		db:    db,
		cache: accessCache,
		now:   time.Now,
	}
}

// GetRole returns the role recorded for an email. No record means RoleNone;
// a record without an explicit role defaults to customer. Store errors are
// logged and reported as RoleNone so the caller never fails on a role read.
func (s *AccessService) GetRole(email string) string {
	email = identity.NormalizeEmail(email)

	var record models.RoleRecord
	err := s.db.Where("email = ?", email).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.RoleNone
	}
	if err != nil {
		slog.Error("role lookup failed", "email", email, "error", err)
		return models.RoleNone
	}

	if record.Role == "" {
		return models.RoleCustomer
	}
	return record.Role
}

// SetRole upserts the role record. Admin gating is the middleware's job,
// not this service's. Returns false on store error instead of failing.
func (s *AccessService) SetRole(email, role string) bool {
	if !models.ValidRole(role) {
		return false
	}
	email = identity.NormalizeEmail(email)

	var record models.RoleRecord
	err := s.db.Where("email = ?", email).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		record = models.RoleRecord{Email: email, Role: role}
		if err := s.db.Create(&record).Error; err != nil {
			slog.Error("role create failed", "email", email, "role", role, "error", err)
			return false
		}
	} else if err != nil {
		slog.Error("role lookup failed", "email", email, "error", err)
		return false
	} else {
		if err := s.db.Model(&record).Update("role", role).Error; err != nil {
			slog.Error("role update failed", "email", email, "role", role, "error", err)
			return false
		}
	}

	// A role change can change what the caller is allowed to see.
	s.cache.Invalidate(email)
	return true
}

func (s *AccessService) IsAdmin(email string) bool {
	return s.GetRole(email) == models.RoleAdmin
}

// CheckAccess evaluates the access predicate: a subscription record exists,
// is active, and has not expired (now == expiration counts as expired).
// Store errors fail closed. Results are served from the cache when fresh.
func (s *AccessService) CheckAccess(email string) bool {
	email = identity.NormalizeEmail(email)

	if hasAccess, ok := s.cache.Get(email); ok {
		return hasAccess
	}

	hasAccess := s.checkAccessUncached(email)
	s.cache.Set(email, hasAccess)
	return hasAccess
}

func (s *AccessService) checkAccessUncached(email string) bool {
	var sub models.Subscription
	err := s.db.Where("email = ?", email).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false
	}
	if err != nil {
		// Fail closed: a paywall prefers denial over an open gate.
		slog.Error("subscription lookup failed", "email", email, "error", err)
		return false
	}

	return sub.Active && s.now().Before(sub.ExpirationDate)
}

// RefreshAccess drops the cached entry and recomputes from the store. Used
// by the out-of-band claims-reset operation and the payment webhook.
func (s *AccessService) RefreshAccess(email string) bool {
	email = identity.NormalizeEmail(email)
	s.cache.Invalidate(email)
	return s.CheckAccess(email)
}

// GetSubscription returns the raw record, nil when absent. Store errors
// propagate: this path feeds status display, not a security gate.
func (s *AccessService) GetSubscription(email string) (*models.Subscription, error) {
	email = identity.NormalizeEmail(email)

	var sub models.Subscription
	err := s.db.Where("email = ?", email).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

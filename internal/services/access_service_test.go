package services

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/causeway-app/causeway-backend/internal/cache"
	"github.com/causeway-app/causeway-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func newAccessService(t *testing.T) (*AccessService, sqlmock.Sqlmock, *cache.AccessCache) {
	t.Helper()
	db, mock := newMockDB(t)
	accessCache := cache.NewAccessCache(100, 5*time.Minute)
	return NewAccessService(db, accessCache), mock, accessCache
}

func roleRows(id uuid.UUID, email, role string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "email", "role", "created_at", "updated_at"}).
		AddRow(id.String(), email, role, time.Now(), time.Now())
}

func subscriptionRows(email string, active bool, expiration time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "customer_id", "email", "purchase_date", "expiration_date", "active", "created_at", "updated_at"}).
		AddRow(uuid.New().String(), "cus_123", email, time.Now().Add(-time.Hour), expiration, active, time.Now(), time.Now())
}

func emptyRoleRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "email", "role", "created_at", "updated_at"})
}

func emptySubscriptionRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "customer_id", "email", "purchase_date", "expiration_date", "active", "created_at", "updated_at"})
}

func TestGetRole(t *testing.T) {
	t.Run("no record means none", func(t *testing.T) {
		svc, mock, _ := newAccessService(t)
		mock.ExpectQuery(`SELECT \* FROM "role_records"`).WillReturnRows(emptyRoleRows())

		assert.Equal(t, models.RoleNone, svc.GetRole("ghost@x.com"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("explicit admin role", func(t *testing.T) {
		svc, mock, _ := newAccessService(t)
		mock.ExpectQuery(`SELECT \* FROM "role_records"`).
			WillReturnRows(roleRows(uuid.New(), "a@x.com", models.RoleAdmin))

		assert.Equal(t, models.RoleAdmin, svc.GetRole("a@x.com"))
	})

	t.Run("record without explicit role defaults to customer", func(t *testing.T) {
		svc, mock, _ := newAccessService(t)
		mock.ExpectQuery(`SELECT \* FROM "role_records"`).
			WillReturnRows(roleRows(uuid.New(), "u@x.com", ""))

		assert.Equal(t, models.RoleCustomer, svc.GetRole("u@x.com"))
	})

	t.Run("store error returns none, never fails", func(t *testing.T) {
		svc, mock, _ := newAccessService(t)
		mock.ExpectQuery(`SELECT \* FROM "role_records"`).
			WillReturnError(errors.New("connection reset"))

		assert.Equal(t, models.RoleNone, svc.GetRole("u@x.com"))
	})

	t.Run("email is normalized before lookup", func(t *testing.T) {
		svc, mock, _ := newAccessService(t)
		mock.ExpectQuery(`SELECT \* FROM "role_records"`).
			WithArgs("a@x.com", 1).
			WillReturnRows(roleRows(uuid.New(), "a@x.com", models.RoleAdmin))

		assert.Equal(t, models.RoleAdmin, svc.GetRole("  A@X.COM "))
	})
}

func TestSetRole(t *testing.T) {
	t.Run("rejects invalid role without touching the store", func(t *testing.T) {
		svc, mock, _ := newAccessService(t)

		assert.False(t, svc.SetRole("u@x.com", "superuser"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("creates record when absent", func(t *testing.T) {
		svc, mock, _ := newAccessService(t)
		mock.ExpectQuery(`SELECT \* FROM "role_records"`).WillReturnRows(emptyRoleRows())
		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "role_records"`).WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		assert.True(t, svc.SetRole("u@x.com", models.RoleAdmin))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("updates existing record", func(t *testing.T) {
		svc, mock, _ := newAccessService(t)
		mock.ExpectQuery(`SELECT \* FROM "role_records"`).
			WillReturnRows(roleRows(uuid.New(), "a@x.com", models.RoleAdmin))
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "role_records"`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.True(t, svc.SetRole("a@x.com", models.RoleCustomer))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("store error fails silently", func(t *testing.T) {
		svc, mock, _ := newAccessService(t)
		mock.ExpectQuery(`SELECT \* FROM "role_records"`).WillReturnRows(emptyRoleRows())
		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "role_records"`).WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		assert.False(t, svc.SetRole("u@x.com", models.RoleCustomer))
	})

	t.Run("demotion is visible on the next role read", func(t *testing.T) {
		svc, mock, _ := newAccessService(t)
		id := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "role_records"`).
			WillReturnRows(roleRows(id, "a@x.com", models.RoleAdmin))
		assert.True(t, svc.IsAdmin("a@x.com"))

		mock.ExpectQuery(`SELECT \* FROM "role_records"`).
			WillReturnRows(roleRows(id, "a@x.com", models.RoleAdmin))
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "role_records"`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
		assert.True(t, svc.SetRole("a@x.com", models.RoleCustomer))

		mock.ExpectQuery(`SELECT \* FROM "role_records"`).
			WillReturnRows(roleRows(id, "a@x.com", models.RoleCustomer))
		assert.False(t, svc.IsAdmin("a@x.com"))
	})

	t.Run("invalidates cached access result", func(t *testing.T) {
		svc, mock, accessCache := newAccessService(t)
		accessCache.Set("u@x.com", true)

		mock.ExpectQuery(`SELECT \* FROM "role_records"`).WillReturnRows(emptyRoleRows())
		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "role_records"`).WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		require.True(t, svc.SetRole("u@x.com", models.RoleCustomer))
		_, ok := accessCache.Get("u@x.com")
		assert.False(t, ok)
	})
}

func TestCheckAccess(t *testing.T) {
	t.Run("absent record denies", func(t *testing.T) {
		svc, mock, _ := newAccessService(t)
		mock.ExpectQuery(`SELECT \* FROM "subscriptions"`).WillReturnRows(emptySubscriptionRows())

		assert.False(t, svc.CheckAccess("ghost@x.com"))
	})

	t.Run("active unexpired grants", func(t *testing.T) {
		svc, mock, _ := newAccessService(t)
		mock.ExpectQuery(`SELECT \* FROM "subscriptions"`).
			WillReturnRows(subscriptionRows("u@x.com", true, time.Now().Add(24*time.Hour)))

		assert.True(t, svc.CheckAccess("u@x.com"))
	})

	t.Run("inactive denies even before expiry", func(t *testing.T) {
		svc, mock, _ := newAccessService(t)
		mock.ExpectQuery(`SELECT \* FROM "subscriptions"`).
			WillReturnRows(subscriptionRows("u@x.com", false, time.Now().Add(24*time.Hour)))

		assert.False(t, svc.CheckAccess("u@x.com"))
	})

	t.Run("expiration boundary counts as expired", func(t *testing.T) {
		svc, mock, _ := newAccessService(t)
		expiration := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
		svc.now = func() time.Time { return expiration }

		mock.ExpectQuery(`SELECT \* FROM "subscriptions"`).
			WillReturnRows(subscriptionRows("u@x.com", true, expiration))

		assert.False(t, svc.CheckAccess("u@x.com"), "now == expirationDate must deny")
	})

	t.Run("just before expiration grants", func(t *testing.T) {
		svc, mock, _ := newAccessService(t)
		expiration := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
		svc.now = func() time.Time { return expiration.Add(-time.Second) }

		mock.ExpectQuery(`SELECT \* FROM "subscriptions"`).
			WillReturnRows(subscriptionRows("u@x.com", true, expiration))

		assert.True(t, svc.CheckAccess("u@x.com"))
	})

	t.Run("store error fails closed", func(t *testing.T) {
		svc, mock, _ := newAccessService(t)
		mock.ExpectQuery(`SELECT \* FROM "subscriptions"`).
			WillReturnError(errors.New("connection reset"))

		assert.False(t, svc.CheckAccess("u@x.com"))
	})

	t.Run("second check is served from cache", func(t *testing.T) {
		svc, mock, _ := newAccessService(t)
		mock.ExpectQuery(`SELECT \* FROM "subscriptions"`).
			WillReturnRows(subscriptionRows("u@x.com", true, time.Now().Add(24*time.Hour)))

		assert.True(t, svc.CheckAccess("u@x.com"))
		// No second query expectation: a store hit here would fail the mock.
		assert.True(t, svc.CheckAccess("u@x.com"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRefreshAccess(t *testing.T) {
	svc, mock, accessCache := newAccessService(t)
	accessCache.Set("u@x.com", true)

	// Refresh must bypass the stale cached value and hit the store.
	mock.ExpectQuery(`SELECT \* FROM "subscriptions"`).WillReturnRows(emptySubscriptionRows())

	assert.False(t, svc.RefreshAccess("u@x.com"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSubscription(t *testing.T) {
	t.Run("absent returns nil without error", func(t *testing.T) {
		svc, mock, _ := newAccessService(t)
		mock.ExpectQuery(`SELECT \* FROM "subscriptions"`).WillReturnRows(emptySubscriptionRows())

		sub, err := svc.GetSubscription("ghost@x.com")
		require.NoError(t, err)
		assert.Nil(t, sub)
	})

	t.Run("store error propagates", func(t *testing.T) {
		svc, mock, _ := newAccessService(t)
		mock.ExpectQuery(`SELECT \* FROM "subscriptions"`).
			WillReturnError(errors.New("connection reset"))

		_, err := svc.GetSubscription("u@x.com")
		assert.Error(t, err)
	})

	t.Run("returns the raw record", func(t *testing.T) {
		svc, mock, _ := newAccessService(t)
		expiration := time.Now().Add(30 * 24 * time.Hour)
		mock.ExpectQuery(`SELECT \* FROM "subscriptions"`).
			WillReturnRows(subscriptionRows("u@x.com", true, expiration))

		sub, err := svc.GetSubscription("u@x.com")
		require.NoError(t, err)
		require.NotNil(t, sub)
		assert.Equal(t, "u@x.com", sub.Email)
		assert.True(t, sub.Active)
	})
}

package identity

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var ErrNoIdentity = errors.New("no verified identity in context")

// Identity is the verified representation of a caller, populated from the
// claims of a bearer token the middleware has already validated. Immutable
// within a request; claims change only through out-of-band updates.
type Identity struct {
	Subject            string
	Email              string
	HasAccess          bool
	Role               string
	SubscriptionStatus string
	ExpiresAt          *time.Time
}

// FromContext extracts the Identity from the verified JWT the auth
// middleware stored in Fiber locals. No additional network round-trip:
// every field comes from claims already present in the token.
func FromContext(c *fiber.Ctx) (*Identity, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return nil, ErrNoIdentity
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	return FromClaims(claims)
}

// FromClaims builds an Identity from verified MapClaims.
func FromClaims(claims jwt.MapClaims) (*Identity, error) {
	email, _ := claims["email"].(string)
	if email == "" {
		return nil, errors.New("missing email claim")
	}

	id := &Identity{
		Email: NormalizeEmail(email),
	}
	id.Subject, _ = claims["sub"].(string)
	id.HasAccess, _ = claims["hasAccess"].(bool)
	id.Role, _ = claims["role"].(string)
	id.SubscriptionStatus, _ = claims["subscriptionStatus"].(string)

	// JSON numbers decode as float64.
	if ts, ok := claims["expiresAt"].(float64); ok && ts > 0 {
		t := time.Unix(int64(ts), 0).UTC()
		id.ExpiresAt = &t
	}

	return id, nil
}

// NormalizeEmail lowercases and trims an email so every store lookup and
// cache key uses the same form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

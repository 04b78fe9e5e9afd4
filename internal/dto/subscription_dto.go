package dto

import "github.com/causeway-app/causeway-backend/internal/models"

type CheckAccessResponse struct {
	HasAccess bool `json:"hasAccess"`
}

type SubscriptionResponse struct {
	Subscription *models.Subscription `json:"subscription"`
}

type CheckoutRequest struct {
	PriceID    string `json:"priceId"`
	SuccessURL string `json:"successUrl,omitempty"`
	CancelURL  string `json:"cancelUrl,omitempty"`
}

type CheckoutResponse struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

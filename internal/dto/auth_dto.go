package dto

type AuthStatusResponse struct {
	HasAccess          bool   `json:"hasAccess"`
	SubscriptionStatus string `json:"subscriptionStatus"`
	ExpiresAt          string `json:"expiresAt,omitempty"`
	Email              string `json:"email"`
	LastUpdated        string `json:"lastUpdated"`
}

type VerifyAdminResponse struct {
	IsAdmin bool `json:"isAdmin"`
}

type SetRoleRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type SetRoleResponse struct {
	Success bool `json:"success"`
}

type ResetClaimsRequest struct {
	Email string `json:"email"`
}

type ResetClaimsResponse struct {
	Success   bool `json:"success"`
	HasAccess bool `json:"hasAccess"`
}

type BootstrapRequest struct {
	Email string `json:"email"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}

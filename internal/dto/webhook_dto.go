package dto

// StripeEvent is the slice of the Stripe event envelope this backend reads.
type StripeEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object StripeObject `json:"object"`
	} `json:"data"`
}

type StripeObject struct {
	ID              string `json:"id"`
	Customer        string `json:"customer"`
	Email           string `json:"customer_email"`
	CustomerDetails struct {
		Email string `json:"email"`
	} `json:"customer_details"`
	// Billing details appear on charge objects instead.
	BillingDetails struct {
		Email string `json:"email"`
	} `json:"billing_details"`
}

// CustomerEmail returns the first email present on the object; Stripe puts
// it in different places depending on the object type.
func (o StripeObject) CustomerEmail() string {
	if o.Email != "" {
		return o.Email
	}
	if o.CustomerDetails.Email != "" {
		return o.CustomerDetails.Email
	}
	return o.BillingDetails.Email
}

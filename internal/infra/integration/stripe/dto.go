package stripe

type CreateCustomerInput struct {
	Email string
	Name  string

	// ExternalReference is our user id; it travels in the customer
	// metadata so webhooks can be traced back without a DB lookup.
	ExternalReference string
}

type CheckoutSessionInput struct {
	CustomerID string
	PriceID    string
	TrialDays  int
	SuccessURL string
	CancelURL  string
}

// --- RESPONSES: what Stripe sends back ---

type customerResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type checkoutSessionResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type errorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client talks to the Stripe REST API. Stripe takes form-encoded bodies,
// not JSON, so every call goes through postForm.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://api.stripe.com/v1"
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// CreateCustomer registers the customer on Stripe and returns the id (cus_xxx).
func (c *Client) CreateCustomer(ctx context.Context, input CreateCustomerInput) (string, error) {
	form := url.Values{}
	form.Set("email", input.Email)
	if input.Name != "" {
		form.Set("name", input.Name)
	}
	form.Set("metadata[user_id]", input.ExternalReference)

	var response customerResponse
	if err := c.postForm(ctx, "/customers", form, &response); err != nil {
		return "", err
	}
	return response.ID, nil
}

// CreateCheckoutSession opens a hosted subscription checkout with a trial
// and returns the redirect URL.
func (c *Client) CreateCheckoutSession(ctx context.Context, input CheckoutSessionInput) (string, error) {
	form := url.Values{}
	form.Set("mode", "subscription")
	form.Set("customer", input.CustomerID)
	form.Set("line_items[0][price]", input.PriceID)
	form.Set("line_items[0][quantity]", "1")
	form.Set("success_url", input.SuccessURL)
	form.Set("cancel_url", input.CancelURL)
	if input.TrialDays > 0 {
		form.Set("subscription_data[trial_period_days]", strconv.Itoa(input.TrialDays))
	}

	var response checkoutSessionResponse
	if err := c.postForm(ctx, "/checkout/sessions", form, &response); err != nil {
		return "", err
	}
	return response.URL, nil
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values, out any) error {
	endpoint := fmt.Sprintf("%s%s", c.baseURL, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("stripe request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)

		var apiErr errorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("stripe rejected %s (status %d): %s", path, resp.StatusCode, apiErr.Error.Message)
		}
		return fmt.Errorf("stripe rejected %s (status %d)", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("stripe response decode failed: %w", err)
	}
	return nil
}

// setHeaders centralizes the mandatory headers.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", "Hireloop/1.0")
}

package handlers

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/hireloop/hireloop-api/internal/entity"
)

// WebhookSubscriptionRepo is the write surface the billing webhook needs.
type WebhookSubscriptionRepo interface {
	FindByStripeCustomerID(ctx context.Context, customerID string) (*entity.UserSubscription, error)
	UpdatePlan(ctx context.Context, userID, plan, status string) error
}

// WebhookHandler receives billing provider events and keeps the local plan
// in sync. Unknown event types and unknown customers are acked with 200 so
// the provider stops retrying them.
type WebhookHandler struct {
	SubRepo WebhookSubscriptionRepo
	Secret  string
}

func NewWebhookHandler(subRepo WebhookSubscriptionRepo, secret string) *WebhookHandler {
	return &WebhookHandler{SubRepo: subRepo, Secret: secret}
}

type stripeEvent struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			Customer string `json:"customer"`
			Status   string `json:"status"`
		} `json:"object"`
	} `json:"data"`
}

func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "unreadable body")
		return
	}

	if !h.verifySignature(body, r.Header.Get("Stripe-Signature")) {
		respondError(w, http.StatusUnauthorized, "invalid_signature")
		return
	}

	var event stripeEvent
	if err := json.Unmarshal(body, &event); err != nil {
		respondError(w, http.StatusBadRequest, "Bad JSON")
		return
	}

	plan, status, handled := planForEvent(event)
	if !handled {
		w.WriteHeader(http.StatusOK)
		return
	}

	sub, err := h.SubRepo.FindByStripeCustomerID(r.Context(), event.Data.Object.Customer)
	if err != nil {
		if errors.Is(err, entity.ErrSubscriptionNotFound) {
			log.Printf("webhook for unknown customer %s ignored", event.Data.Object.Customer)
			w.WriteHeader(http.StatusOK)
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if err := h.SubRepo.UpdatePlan(r.Context(), sub.UserID, plan, status); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Printf("plan set to %s/%s for user %s", plan, status, sub.UserID)
	w.WriteHeader(http.StatusOK)
}

func planForEvent(event stripeEvent) (plan, status string, handled bool) {
	switch event.Type {
	case "checkout.session.completed":
		return entity.PlanPro, entity.SubscriptionTrialing, true
	case "customer.subscription.updated":
		if event.Data.Object.Status == "active" {
			return entity.PlanPro, entity.SubscriptionActive, true
		}
		return "", "", false
	case "customer.subscription.deleted":
		return entity.PlanFree, entity.SubscriptionCanceled, true
	default:
		return "", "", false
	}
}

// verifySignature checks the v1 HMAC scheme: the signed payload is
// "<timestamp>.<body>" keyed with the endpoint secret.
func (h *WebhookHandler) verifySignature(body []byte, header string) bool {
	if h.Secret == "" || header == "" {
		return false
	}

	var timestamp, provided string
	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "t":
			timestamp = value
		case "v1":
			provided = value
		}
	}
	if timestamp == "" || provided == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(h.Secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(provided))
}

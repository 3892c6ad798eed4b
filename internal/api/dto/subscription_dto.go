package dto

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/spec-kit/portfolio-service/internal/domain"
)

// SubscriptionCreateRequest payload for subscribing. serviceId may be sent as
// a number or a numeric string.
type SubscriptionCreateRequest struct {
	ServiceID json.RawMessage `json:"serviceId"`
}

// ServiceIDValue parses ServiceID. It reports false when it is not a positive
// integer.
func (r SubscriptionCreateRequest) ServiceIDValue() (int64, bool) {
	raw := strings.TrimSpace(string(r.ServiceID))
	if raw == "" || raw == "null" {
		return 0, false
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(r.ServiceID, &s); err != nil {
			return 0, false
		}
		raw = strings.TrimSpace(s)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// SubscriptionResponse is a subscription with whatever relations were loaded.
type SubscriptionResponse struct {
	ID          int64                     `json:"id"`
	UserID      int64                     `json:"userId"`
	ServiceID   int64                     `json:"serviceId"`
	Status      domain.SubscriptionStatus `json:"status"`
	StartDate   time.Time                 `json:"startDate"`
	EndDate     *time.Time                `json:"endDate"`
	Price       float64                   `json:"price"`
	Period      domain.BillingPeriod      `json:"period"`
	CancelledAt *time.Time                `json:"cancelledAt"`
	CreatedAt   time.Time                 `json:"createdAt"`
	UpdatedAt   time.Time                 `json:"updatedAt"`
	User        *UserSummaryResponse      `json:"user,omitempty"`
	Service     any                       `json:"service,omitempty"`
}

// NewSubscriptionResponse maps a subscription with the full service.
func NewSubscriptionResponse(s *domain.Subscription) SubscriptionResponse {
	resp := baseSubscription(s)
	if s.Service != nil {
		resp.Service = NewOfferingResponse(s.Service)
	}
	return resp
}

// NewSubscriptionResponses maps subscriptions with the full service.
func NewSubscriptionResponses(subs []domain.Subscription) []SubscriptionResponse {
	out := make([]SubscriptionResponse, 0, len(subs))
	for i := range subs {
		out = append(out, NewSubscriptionResponse(&subs[i]))
	}
	return out
}

// NewAdminSubscriptionResponses maps subscriptions with user and service
// summaries.
func NewAdminSubscriptionResponses(subs []domain.Subscription) []SubscriptionResponse {
	out := make([]SubscriptionResponse, 0, len(subs))
	for i := range subs {
		resp := baseSubscription(&subs[i])
		if svc := subs[i].Service; svc != nil {
			resp.Service = OfferingSummaryResponse{ID: svc.ID, Title: svc.Title, Category: svc.Category}
		}
		out = append(out, resp)
	}
	return out
}

func baseSubscription(s *domain.Subscription) SubscriptionResponse {
	resp := SubscriptionResponse{
		ID:          s.ID,
		UserID:      s.UserID,
		ServiceID:   s.ServiceID,
		Status:      s.Status,
		StartDate:   s.StartDate,
		EndDate:     s.EndDate,
		Price:       s.Price,
		Period:      s.Period,
		CancelledAt: s.CancelledAt,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
	if s.User != nil {
		resp.User = &UserSummaryResponse{ID: s.User.ID, Name: s.User.Name, Email: s.User.Email}
	}
	return resp
}

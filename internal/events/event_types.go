package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/portfolio-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSubscriptionCreated   EventType = "subscription_created"
	EventSubscriptionCancelled EventType = "subscription_cancelled"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID             string      `json:"id"`
	Type           EventType   `json:"type"`
	SubscriptionID int64       `json:"subscription_id"`
	UserID         int64       `json:"user_id"`
	Timestamp      time.Time   `json:"timestamp"`
	Payload        interface{} `json:"payload"`
}

// SubscriptionCreatedPayload payload.
type SubscriptionCreatedPayload struct {
	ServiceID int64                `json:"service_id"`
	Title     string               `json:"title"`
	Price     float64              `json:"price"`
	Period    domain.BillingPeriod `json:"period"`
	EndDate   *time.Time           `json:"end_date,omitempty"`
}

// SubscriptionCancelledPayload payload.
type SubscriptionCancelledPayload struct {
	ServiceID   int64     `json:"service_id"`
	CancelledAt time.Time `json:"cancelled_at"`
}

// NewSubscriptionCreated builds the event for a freshly stored subscription.
func NewSubscriptionCreated(sub *domain.Subscription, title string, at time.Time) Event {
	return Event{
		ID:             uuid.NewString(),
		Type:           EventSubscriptionCreated,
		SubscriptionID: sub.ID,
		UserID:         sub.UserID,
		Timestamp:      at,
		Payload: SubscriptionCreatedPayload{
			ServiceID: sub.ServiceID,
			Title:     title,
			Price:     sub.Price,
			Period:    sub.Period,
			EndDate:   sub.EndDate,
		},
	}
}

// NewSubscriptionCancelled builds the event for a cancellation.
func NewSubscriptionCancelled(sub *domain.Subscription, at time.Time) Event {
	return Event{
		ID:             uuid.NewString(),
		Type:           EventSubscriptionCancelled,
		SubscriptionID: sub.ID,
		UserID:         sub.UserID,
		Timestamp:      at,
		Payload: SubscriptionCancelledPayload{
			ServiceID:   sub.ServiceID,
			CancelledAt: at,
		},
	}
}

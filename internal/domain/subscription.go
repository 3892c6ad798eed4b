package domain

import "time"

// SubscriptionStatus enumerates subscription lifecycle states.
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

// Subscription links a user to an offering. Price and Period are copied from
// the offering when the subscription starts.
type Subscription struct {
	ID          int64
	UserID      int64
	ServiceID   int64
	Status      SubscriptionStatus
	StartDate   time.Time
	EndDate     *time.Time
	Price       float64
	Period      BillingPeriod
	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	User    *UserSummary
	Service *Offering
}

// NewSubscription starts an active subscription of userID to offering at now.
// Monthly offerings end one calendar month later; every other period is open
// ended.
func NewSubscription(userID int64, offering *Offering, now time.Time) *Subscription {
	sub := &Subscription{
		UserID:    userID,
		ServiceID: offering.ID,
		Status:    SubscriptionActive,
		StartDate: now,
		Price:     offering.Price,
		Period:    offering.Period,
	}
	if offering.Period == PeriodMonth {
		end := now.AddDate(0, 1, 0)
		sub.EndDate = &end
	}
	return sub
}

// OwnedBy reports whether userID owns the subscription.
func (s *Subscription) OwnedBy(userID int64) bool {
	return s.UserID == userID
}

// Cancel moves an active subscription to cancelled. It returns false and
// leaves the subscription untouched when it is already cancelled.
func (s *Subscription) Cancel(now time.Time) bool {
	if s.Status == SubscriptionCancelled {
		return false
	}
	s.Status = SubscriptionCancelled
	s.CancelledAt = &now
	return true
}

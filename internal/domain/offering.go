package domain

import (
	"fmt"
	"time"
)

// BillingPeriod is how an offering is charged.
type BillingPeriod string

const (
	PeriodMonth   BillingPeriod = "mes"
	PeriodHour    BillingPeriod = "hora"
	PeriodSession BillingPeriod = "sesión"
)

// ParseBillingPeriod validates a raw period value.
func ParseBillingPeriod(raw string) (BillingPeriod, error) {
	switch BillingPeriod(raw) {
	case PeriodMonth, PeriodHour, PeriodSession:
		return BillingPeriod(raw), nil
	default:
		return "", fmt.Errorf("unknown billing period %q", raw)
	}
}

// Offering is a billable service listed in the catalog.
type Offering struct {
	ID          int64
	Category    string
	Title       string
	Description string
	Features    []string
	Price       float64
	Period      BillingPeriod
	Popular     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

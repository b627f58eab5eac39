package model

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionExpired   SubscriptionStatus = "expired"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

type BillingCycle string

const (
	BillingWeekly    BillingCycle = "weekly"
	BillingMonthly   BillingCycle = "monthly"
	BillingQuarterly BillingCycle = "quarterly"
	BillingYearly    BillingCycle = "yearly"
)

// AddTo returns t advanced by one billing period. Unknown cycles fall back to
// monthly, matching how renewal treats them.
func (c BillingCycle) AddTo(t time.Time) time.Time {
	switch c {
	case BillingWeekly:
		return t.AddDate(0, 0, 7)
	case BillingMonthly:
		return t.AddDate(0, 1, 0)
	case BillingQuarterly:
		return t.AddDate(0, 3, 0)
	case BillingYearly:
		return t.AddDate(1, 0, 0)
	default:
		return t.AddDate(0, 1, 0)
	}
}

// QuranSubscription backs an individual circle. It carries no stored expiry;
// the end date is derived from StartsAt plus one billing cycle.
type QuranSubscription struct {
	ID            uuid.UUID          `db:"id" json:"id"`
	StudentID     uuid.UUID          `db:"student_id" json:"student_id"`
	TotalSessions int                `db:"total_sessions" json:"total_sessions"`
	StartsAt      time.Time          `db:"starts_at" json:"starts_at"`
	BillingCycle  BillingCycle       `db:"billing_cycle" json:"billing_cycle"`
	Status        SubscriptionStatus `db:"status" json:"status"`
	CreatedAt     time.Time          `db:"created_at" json:"created_at"`
}

// EndsAt derives the subscription expiry from the billing cycle.
func (s QuranSubscription) EndsAt() time.Time {
	return s.BillingCycle.AddTo(s.StartsAt)
}

// AcademicSubscription stores its expiry explicitly.
type AcademicSubscription struct {
	ID               uuid.UUID          `db:"id" json:"id"`
	StudentID        uuid.UUID          `db:"student_id" json:"student_id"`
	TeacherProfileID uuid.UUID          `db:"teacher_profile_id" json:"teacher_profile_id"`
	TotalSessions    int                `db:"total_sessions" json:"total_sessions"`
	StartsAt         time.Time          `db:"starts_at" json:"starts_at"`
	EndsAt           time.Time          `db:"ends_at" json:"ends_at"`
	Status           SubscriptionStatus `db:"status" json:"status"`
	CreatedAt        time.Time          `db:"created_at" json:"created_at"`
}

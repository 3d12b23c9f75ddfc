package models

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionPlan is a subscription tier with a totally ordered
// upgrade path: basic < pro < enterprise.
type SubscriptionPlan string

const (
	PlanBasic      SubscriptionPlan = "basic"
	PlanPro        SubscriptionPlan = "pro"
	PlanEnterprise SubscriptionPlan = "enterprise"
)

// IsValid checks if the SubscriptionPlan is valid
func (p SubscriptionPlan) IsValid() bool {
	switch p {
	case PlanBasic, PlanPro, PlanEnterprise:
		return true
	}
	return false
}

// Level returns the position of the plan in the tier hierarchy.
// Unknown plans get level 0 so they always compare below valid ones.
func (p SubscriptionPlan) Level() int {
	switch p {
	case PlanBasic:
		return 1
	case PlanPro:
		return 2
	case PlanEnterprise:
		return 3
	}
	return 0
}

// SubscriptionStatus defines the lifecycle states of a subscription
type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
)

// IsValid checks if the SubscriptionStatus is valid
func (s SubscriptionStatus) IsValid() bool {
	switch s {
	case SubscriptionStatusActive, SubscriptionStatusCancelled, SubscriptionStatusExpired:
		return true
	}
	return false
}

// Subscription ties a tenant to a plan. A tenant has at most one
// active subscription at a time; the repository enforces this at
// write time.
type Subscription struct {
	BaseModel
	TenantID  uuid.UUID          `json:"tenant_id" gorm:"type:uuid;not null;index"`
	Plan      SubscriptionPlan   `json:"plan" gorm:"type:varchar(20);not null"`
	Status    SubscriptionStatus `json:"status" gorm:"type:varchar(20);not null;default:'active'"`
	StartedAt time.Time          `json:"started_at"`
	ExpiresAt *time.Time         `json:"expires_at"`
}

// TableName returns the table name for Subscription
func (Subscription) TableName() string {
	return "subscriptions"
}

// IsActive reports whether the subscription currently grants access:
// status is active and the expiry, if set, is in the future.
func (s *Subscription) IsActive() bool {
	return s.Status == SubscriptionStatusActive &&
		(s.ExpiresAt == nil || s.ExpiresAt.After(time.Now()))
}

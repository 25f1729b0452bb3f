package domain

import "time"

// PermissionState is the platform notification permission for a user.
// Once denied it stays denied; application code never resets it.
type PermissionState string

const (
	PermissionUndetermined PermissionState = "undetermined"
	PermissionGranted      PermissionState = "granted"
	PermissionDenied       PermissionState = "denied"
)

// Human Design profile types recognized by the message catalog.
const (
	ProfileGenerator            = "generator"
	ProfileManifestor           = "manifestor"
	ProfileManifestingGenerator = "manifesting-generator"
	ProfileProjector            = "projector"
	ProfileReflector            = "reflector"
)

// User represents an account with its declared profile type and grants.
type User struct {
	ID             string
	Email          string
	PasswordHash   string
	ProfileType    string
	FreeAccess     bool // beta-tester grant, independent of subscription
	TelegramChatID *int64
	Permission     PermissionState
	CreatedAt      time.Time // UTC
}

// SubscriptionStatus mirrors what the billing provider reports.
type SubscriptionStatus string

const (
	StatusActive   SubscriptionStatus = "active"
	StatusTrialing SubscriptionStatus = "trialing"
	StatusCanceled SubscriptionStatus = "canceled"
	StatusNone     SubscriptionStatus = "none"
)

// Plan is a resolved subscription plan with its feature names.
type Plan struct {
	ID       string
	Name     string
	Features []string
}

// Subscription is the per-user billing state kept in sync by the webhook.
type Subscription struct {
	UserID    string
	Status    SubscriptionStatus
	PlanID    string
	Features  []string
	UpdatedAt time.Time
}

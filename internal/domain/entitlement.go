package domain

// CategoryGeneral is free for everyone, authenticated or not.
const CategoryGeneral = "general"

// Unlimited is the sentinel returned by RemainingScans when usage is not
// metered for the given context.
const Unlimited = -1

// EntitlementContext is built fresh per check from the session user and the
// latest subscription fetch; it is never persisted.
type EntitlementContext struct {
	UserID     string
	Email      string
	Status     SubscriptionStatus
	FreeAccess bool
	Plan       *Plan
}

// Gate evaluates entitlement predicates. The founder email is injected from
// configuration rather than hardcoded in each predicate; a matching lifetime
// grant row also exists in storage and resolves through the same FreeAccess
// path as any beta-tester grant.
type Gate struct {
	founderEmail string
}

// NewGate returns a gate with the given founder override email.
func NewGate(founderEmail string) *Gate {
	return &Gate{founderEmail: founderEmail}
}

func (g *Gate) isFounder(ctx EntitlementContext) bool {
	return g.founderEmail != "" && ctx.Email == g.founderEmail
}

// IsPremium reports whether the context is entitled to premium content.
// Missing or errored subscription data arrives here as StatusNone, so the
// check fails closed.
func (g *Gate) IsPremium(ctx EntitlementContext) bool {
	if g.isFounder(ctx) {
		return true
	}
	if ctx.FreeAccess {
		return true
	}
	return ctx.Status == StatusActive || ctx.Status == StatusTrialing
}

// CanAccessCategory reports whether the context may read the given category.
// The general category is free for every context, including anonymous ones.
func (g *Gate) CanAccessCategory(ctx EntitlementContext, category string) bool {
	if category == CategoryGeneral {
		return true
	}
	return g.IsPremium(ctx)
}

// HasFeature reports whether the resolved plan carries the named feature.
// Without a resolved plan the answer is false, founder excepted.
func (g *Gate) HasFeature(ctx EntitlementContext, feature string) bool {
	if g.isFounder(ctx) {
		return true
	}
	if ctx.Plan == nil {
		return false
	}
	for _, f := range ctx.Plan.Features {
		if f == feature {
			return true
		}
	}
	return false
}

// RemainingScans returns Unlimited for founder and premium users, and for
// general-category use by anyone: free-tier usage is currently not metered.
func (g *Gate) RemainingScans(ctx EntitlementContext, category string) int {
	if g.isFounder(ctx) || g.IsPremium(ctx) {
		return Unlimited
	}
	if category == CategoryGeneral {
		return Unlimited
	}
	return 0
}

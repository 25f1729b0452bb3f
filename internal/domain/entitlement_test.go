package domain

import "testing"

const testFounder = "fondatrice@barometre-energetique.fr"

func TestFounderOverride(t *testing.T) {
	g := NewGate(testFounder)
	ctx := EntitlementContext{Email: testFounder, Status: StatusNone}

	if !g.IsPremium(ctx) {
		t.Fatal("founder must be premium regardless of subscription")
	}
	for _, cat := range []string{CategoryGeneral, "emotional", "physical", "hd_specific"} {
		if !g.CanAccessCategory(ctx, cat) {
			t.Fatalf("founder denied category %q", cat)
		}
	}
	if !g.HasFeature(ctx, "pdf_export") {
		t.Fatal("founder must have every feature")
	}
	if g.RemainingScans(ctx, "emotional") != Unlimited {
		t.Fatal("founder scans must be unlimited")
	}
}

func TestGeneralCategoryAlwaysFree(t *testing.T) {
	g := NewGate(testFounder)
	anon := EntitlementContext{} // no user, no subscription, no grant
	if !g.CanAccessCategory(anon, CategoryGeneral) {
		t.Fatal("general category must be free for anonymous contexts")
	}
	if g.RemainingScans(anon, CategoryGeneral) != Unlimited {
		t.Fatal("general-category scans are not metered")
	}
}

func TestPremiumMonotonicity(t *testing.T) {
	g := NewGate(testFounder)
	cases := []EntitlementContext{
		{Email: "a@b.fr", Status: StatusActive},
		{Email: "a@b.fr", Status: StatusTrialing},
		{Email: "a@b.fr", FreeAccess: true},
	}
	for _, ctx := range cases {
		if !g.IsPremium(ctx) {
			t.Fatalf("ctx %+v should be premium", ctx)
		}
		for _, cat := range []string{CategoryGeneral, "emotional", "mental"} {
			if !g.CanAccessCategory(ctx, cat) {
				t.Fatalf("premium ctx denied category %q", cat)
			}
		}
	}
}

func TestFailClosed(t *testing.T) {
	g := NewGate(testFounder)
	for _, status := range []SubscriptionStatus{StatusCanceled, StatusNone, ""} {
		ctx := EntitlementContext{Email: "a@b.fr", Status: status}
		if g.IsPremium(ctx) {
			t.Fatalf("status %q must not be premium", status)
		}
		if g.CanAccessCategory(ctx, "emotional") {
			t.Fatalf("status %q must not access premium category", status)
		}
		if g.HasFeature(ctx, "pdf_export") {
			t.Fatalf("no plan resolved, feature must be denied")
		}
	}
}

func TestHasFeature_PlanList(t *testing.T) {
	g := NewGate(testFounder)
	ctx := EntitlementContext{
		Email:  "a@b.fr",
		Status: StatusActive,
		Plan:   &Plan{ID: "premium-mensuel", Features: []string{"pdf_export", "history"}},
	}
	if !g.HasFeature(ctx, "history") {
		t.Fatal("feature in plan list must be granted")
	}
	if g.HasFeature(ctx, "coaching") {
		t.Fatal("feature absent from plan list must be denied")
	}
}

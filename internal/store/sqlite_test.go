package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/ChristelOko/BarometreHED-sub002/internal/domain"
)

func openTestRepo(t *testing.T) *SQLiteRepo {
	t.Helper()
	repo, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func seedUser(t *testing.T, repo *SQLiteRepo, id, email string) {
	t.Helper()
	err := repo.CreateUser(context.Background(), &domain.User{
		ID:           id,
		Email:        email,
		PasswordHash: "x",
		ProfileType:  domain.ProfileGenerator,
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
}

func TestUserRoundTrip(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()
	seedUser(t, repo, "u1", "a@b.fr")

	u, err := repo.GetUserByEmail(ctx, "a@b.fr")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if u.ID != "u1" || u.Permission != domain.PermissionUndetermined {
		t.Fatalf("unexpected user: %+v", u)
	}

	if err := repo.SetPermissionState(ctx, "u1", domain.PermissionDenied); err != nil {
		t.Fatalf("set permission: %v", err)
	}
	u, _ = repo.GetUser(ctx, "u1")
	if u.Permission != domain.PermissionDenied {
		t.Fatalf("permission not persisted: %+v", u)
	}

	if _, err := repo.GetUser(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestPreferenceUpsertOverwrites(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()
	seedUser(t, repo, "u1", "a@b.fr")

	p := &domain.NotificationPreference{
		UserID:      "u1",
		Enabled:     true,
		MorningTime: "08:00",
		EveningTime: "20:00",
		Frequency:   domain.RecurCustom,
		CustomDays:  []int{1, 3, 5},
	}
	if err := repo.UpsertPreference(ctx, p); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	p.Enabled = false
	p.Frequency = domain.RecurDaily
	p.CustomDays = nil
	if err := repo.UpsertPreference(ctx, p); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	got, err := repo.GetPreference(ctx, "u1")
	if err != nil {
		t.Fatalf("get preference: %v", err)
	}
	if got.Enabled || got.Frequency != domain.RecurDaily || len(got.CustomDays) != 0 {
		t.Fatalf("upsert did not overwrite wholesale: %+v", got)
	}
}

func TestScheduledReplaceAndDue(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()
	seedUser(t, repo, "u1", "a@b.fr")

	now := time.Now().UTC()
	batch := []domain.ScheduledNotification{
		{ID: "n1", UserID: "u1", Title: "t", Body: "b", FireAt: now.Add(-time.Minute)},
		{ID: "n2", UserID: "u1", Title: "t", Body: "b", FireAt: now.Add(time.Hour)},
	}
	if err := repo.InsertScheduled(ctx, batch); err != nil {
		t.Fatalf("insert: %v", err)
	}

	due, err := repo.ListDue(ctx, now, 10)
	if err != nil {
		t.Fatalf("list due: %v", err)
	}
	if len(due) != 1 || due[0].ID != "n1" {
		t.Fatalf("want only n1 due, got %+v", due)
	}

	if err := repo.MarkSent(ctx, "n1"); err != nil {
		t.Fatalf("mark sent: %v", err)
	}
	// DeleteUnsent must remove n2 but keep the sent n1.
	if err := repo.DeleteUnsent(ctx, "u1"); err != nil {
		t.Fatalf("delete unsent: %v", err)
	}
	unsent, _ := repo.ListUnsent(ctx, "u1")
	if len(unsent) != 0 {
		t.Fatalf("unsent rows remain: %+v", unsent)
	}
	due, _ = repo.ListDue(ctx, now, 10)
	if len(due) != 0 {
		t.Fatalf("sent row still listed as due: %+v", due)
	}
}

func TestLikeCountsAreAuthoritative(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()
	seedUser(t, repo, "u1", "a@b.fr")
	seedUser(t, repo, "u2", "c@d.fr")

	post := &domain.Post{ID: "p1", UserID: "u1", Content: "bonjour à toutes", HTML: "bonjour à toutes"}
	if err := repo.InsertPost(ctx, post); err != nil {
		t.Fatalf("insert post: %v", err)
	}

	if n, _ := repo.LikePost(ctx, "p1", "u1"); n != 1 {
		t.Fatalf("want 1 like, got %d", n)
	}
	// Double-like is idempotent.
	if n, _ := repo.LikePost(ctx, "p1", "u1"); n != 1 {
		t.Fatalf("double like must stay at 1, got %d", n)
	}
	if n, _ := repo.LikePost(ctx, "p1", "u2"); n != 2 {
		t.Fatalf("want 2 likes, got %d", n)
	}
	if n, _ := repo.UnlikePost(ctx, "p1", "u1"); n != 1 {
		t.Fatalf("want 1 like after unlike, got %d", n)
	}

	posts, err := repo.ListPosts(ctx, 10)
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if len(posts) != 1 || posts[0].Likes != 1 || posts[0].Author != "a@b.fr" {
		t.Fatalf("unexpected feed: %+v", posts)
	}
}

func TestFounderGrantSeeded(t *testing.T) {
	repo := openTestRepo(t)
	granted, err := repo.HasAccessGrant(context.Background(), "fondatrice@barometre-energetique.fr")
	if err != nil {
		t.Fatalf("grant lookup: %v", err)
	}
	if !granted {
		t.Fatal("lifetime grant for the founder must be seeded by migrations")
	}
	granted, _ = repo.HasAccessGrant(context.Background(), "inconnue@exemple.fr")
	if granted {
		t.Fatal("unknown email must have no grant")
	}
}

func TestSubscriptionRoundTrip(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()
	seedUser(t, repo, "u1", "a@b.fr")

	if _, err := repo.GetSubscription(ctx, "u1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound before webhook, got %v", err)
	}
	err := repo.UpsertSubscription(ctx, &domain.Subscription{
		UserID:   "u1",
		Status:   domain.StatusTrialing,
		PlanID:   "premium-mensuel",
		Features: []string{"pdf_export", "history"},
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	sub, err := repo.GetSubscription(ctx, "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if sub.Status != domain.StatusTrialing || len(sub.Features) != 2 {
		t.Fatalf("unexpected subscription: %+v", sub)
	}
}

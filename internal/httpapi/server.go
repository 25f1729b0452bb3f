package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ChristelOko/BarometreHED-sub002/internal/domain"
	"github.com/ChristelOko/BarometreHED-sub002/internal/energy"
	"github.com/ChristelOko/BarometreHED-sub002/internal/notify"
	"github.com/ChristelOko/BarometreHED-sub002/internal/store"
)

// Server holds the HTTP handlers and their collaborators.
type Server struct {
	log        *zap.Logger
	repo       store.Repo
	gate       *domain.Gate
	moderator  *domain.Moderator
	dispatcher *notify.Dispatcher
	energy     *energy.Service
	jwtSecret  []byte
}

// NewServer wires the handler set.
func NewServer(log *zap.Logger, repo store.Repo, gate *domain.Gate, moderator *domain.Moderator,
	dispatcher *notify.Dispatcher, energySvc *energy.Service, jwtSecret string) *Server {
	return &Server{
		log:        log,
		repo:       repo,
		gate:       gate,
		moderator:  moderator,
		dispatcher: dispatcher,
		energy:     energySvc,
		jwtSecret:  []byte(jwtSecret),
	}
}

// Router builds the gin engine with all routes attached.
func (s *Server) Router() *gin.Engine {
	mw := NewMiddleware(string(s.jwtSecret))

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(mw.CORSMiddleware())

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

	api := r.Group("/api")
	{
		api.POST("/auth/register", s.handleRegister)
		api.POST("/auth/login", s.handleLogin)

		api.GET("/posts", s.handleListPosts)
		api.GET("/entitlements/:category", mw.AuthOptional(), s.handleEntitlement)
		api.GET("/scans/remaining", mw.AuthOptional(), s.handleRemainingScans)

		api.POST("/billing/webhook", s.handleBillingWebhook)

		auth := api.Group("", mw.AuthRequired())
		{
			auth.GET("/notifications/settings", s.handleGetSettings)
			auth.PUT("/notifications/settings", s.handleSaveSettings)
			auth.POST("/notifications/test", s.handleTestNotification)
			auth.POST("/notifications/permission", s.handleRequestPermission)
			auth.GET("/notifications/history", s.handleHistory)
			auth.POST("/notifications/history/:id/read", s.handleMarkRead)
			auth.POST("/telegram/link", s.handleLinkTelegram)

			auth.GET("/energy/today", s.handleEnergyToday)

			auth.POST("/posts", mw.RateLimitPerUser(rate.Every(10*time.Second), 3), s.handleCreatePost)
			auth.POST("/posts/:id/like", s.handleLikePost)
			auth.DELETE("/posts/:id/like", s.handleUnlikePost)
		}
	}
	return r
}

func (s *Server) issueToken(u *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": u.ID,
		"email":   u.Email,
		"exp":     time.Now().Add(7 * 24 * time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

// currentUserID returns the authenticated user id, or "" for anonymous.
func currentUserID(c *gin.Context) string {
	if v, ok := c.Get("user_id"); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// entitlementContext builds a fresh context from the session user and the
// latest subscription fetch. Any lookup failure degrades to "not premium":
// entitlement checks never surface errors to the end user.
func (s *Server) entitlementContext(ctx context.Context, userID string) domain.EntitlementContext {
	if userID == "" {
		return domain.EntitlementContext{Status: domain.StatusNone}
	}

	ectx := domain.EntitlementContext{UserID: userID, Status: domain.StatusNone}

	u, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.Warn("entitlement user lookup failed", zap.Error(err), zap.String("user", userID))
		}
		return ectx
	}
	ectx.Email = u.Email
	ectx.FreeAccess = u.FreeAccess

	if !ectx.FreeAccess {
		if granted, err := s.repo.HasAccessGrant(ctx, u.Email); err == nil && granted {
			ectx.FreeAccess = true
		}
	}

	sub, err := s.repo.GetSubscription(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.Warn("entitlement subscription fetch failed", zap.Error(err), zap.String("user", userID))
		}
		return ectx
	}
	ectx.Status = sub.Status
	if sub.PlanID != "" {
		ectx.Plan = &domain.Plan{ID: sub.PlanID, Features: sub.Features}
	}
	return ectx
}

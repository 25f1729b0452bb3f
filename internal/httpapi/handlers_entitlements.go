package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ChristelOko/BarometreHED-sub002/internal/domain"
)

// handleEntitlement answers "can this user access this category". Anonymous
// requests get a real answer too: the general category is free for everyone.
func (s *Server) handleEntitlement(c *gin.Context) {
	category := c.Param("category")
	ectx := s.entitlementContext(c.Request.Context(), currentUserID(c))

	c.JSON(http.StatusOK, gin.H{
		"category": category,
		"granted":  s.gate.CanAccessCategory(ectx, category),
		"premium":  s.gate.IsPremium(ectx),
	})
}

func (s *Server) handleRemainingScans(c *gin.Context) {
	category := c.DefaultQuery("category", domain.CategoryGeneral)
	ectx := s.entitlementContext(c.Request.Context(), currentUserID(c))

	remaining := s.gate.RemainingScans(ectx, category)
	c.JSON(http.StatusOK, gin.H{
		"category":  category,
		"remaining": remaining,
		"unlimited": remaining == domain.Unlimited,
	})
}

func (s *Server) handleEnergyToday(c *gin.Context) {
	userID := currentUserID(c)
	profile := ""
	if u, err := s.repo.GetUser(c.Request.Context(), userID); err == nil {
		profile = u.ProfileType
	}
	c.JSON(http.StatusOK, s.energy.Today(time.Now(), userID, profile))
}

type billingWebhookPayload struct {
	UserID   string   `json:"user_id" binding:"required"`
	Status   string   `json:"status" binding:"required"`
	PlanID   string   `json:"plan_id"`
	Features []string `json:"features"`
}

// handleBillingWebhook ingests subscription updates pushed by the payment
// provider. Checkout itself never touches this service.
func (s *Server) handleBillingWebhook(c *gin.Context) {
	var req billingWebhookPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch domain.SubscriptionStatus(req.Status) {
	case domain.StatusActive, domain.StatusTrialing, domain.StatusCanceled, domain.StatusNone:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown subscription status"})
		return
	}

	if _, err := s.repo.GetUser(c.Request.Context(), req.UserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown user"})
			return
		}
		s.log.Error("webhook user lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "webhook failed"})
		return
	}

	err := s.repo.UpsertSubscription(c.Request.Context(), &domain.Subscription{
		UserID:    req.UserID,
		Status:    domain.SubscriptionStatus(req.Status),
		PlanID:    req.PlanID,
		Features:  req.Features,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		s.log.Error("subscription upsert failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "webhook failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

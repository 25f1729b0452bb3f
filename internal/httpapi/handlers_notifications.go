package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ChristelOko/BarometreHED-sub002/internal/domain"
)

type settingsPayload struct {
	Enabled         bool   `json:"enabled"`
	MorningTime     string `json:"morning_time"`
	EveningReminder bool   `json:"evening_reminder"`
	EveningTime     string `json:"evening_time"`
	Frequency       string `json:"frequency"`
	CustomDays      []int  `json:"custom_days"`
}

func (s *Server) handleGetSettings(c *gin.Context) {
	p, err := s.repo.GetPreference(c.Request.Context(), currentUserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Defaults for a user who never saved settings.
			c.JSON(http.StatusOK, settingsPayload{
				MorningTime: domain.FormatClock(8, 0),
				EveningTime: domain.FormatClock(20, 0),
				Frequency:   string(domain.RecurDaily),
			})
			return
		}
		s.log.Error("get settings failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "settings unavailable"})
		return
	}
	c.JSON(http.StatusOK, settingsPayload{
		Enabled:         p.Enabled,
		MorningTime:     p.MorningTime,
		EveningReminder: p.EveningReminder,
		EveningTime:     p.EveningTime,
		Frequency:       string(p.Frequency),
		CustomDays:      p.CustomDays,
	})
}

// handleSaveSettings upserts the preference record wholesale, then replaces
// the user's pending schedule. A scheduling failure after a successful save
// is reported as retryable so the client can show an error banner.
func (s *Server) handleSaveSettings(c *gin.Context) {
	var req settingsPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID := currentUserID(c)

	prefs := &domain.NotificationPreference{
		UserID:          userID,
		Enabled:         req.Enabled,
		MorningTime:     req.MorningTime,
		EveningReminder: req.EveningReminder,
		EveningTime:     req.EveningTime,
		Frequency:       domain.RecurrenceMode(req.Frequency),
		CustomDays:      req.CustomDays,
		UpdatedAt:       time.Now().UTC(),
	}
	if err := prefs.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.repo.UpsertPreference(c.Request.Context(), prefs); err != nil {
		s.log.Error("save settings failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed", "retryable": true})
		return
	}
	if err := s.dispatcher.Reschedule(c.Request.Context(), userID, prefs); err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s.log.Error("reschedule failed", zap.Error(err), zap.String("user", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "scheduling failed", "retryable": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": true})
}

type testNotificationRequest struct {
	Title     string `json:"title"`
	Body      string `json:"body"`
	ActionURL string `json:"action_url"`
}

func (s *Server) handleTestNotification(c *gin.Context) {
	var req testNotificationRequest
	_ = c.ShouldBindJSON(&req)
	if req.Title == "" {
		req.Title = "🔔 Notification de test"
	}
	if req.Body == "" {
		req.Body = "Votre baromètre est bien configuré."
	}

	if err := s.dispatcher.SendImmediate(c.Request.Context(), currentUserID(c), req.Title, req.Body, req.ActionURL); err != nil {
		s.log.Error("immediate send failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "send failed", "retryable": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sent": true})
}

func (s *Server) handleRequestPermission(c *gin.Context) {
	granted, err := s.dispatcher.RequestPermission(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.log.Error("permission request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "permission check failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"granted": granted})
}

func (s *Server) handleHistory(c *gin.Context) {
	recs, err := s.repo.ListHistory(c.Request.Context(), currentUserID(c), 50)
	if err != nil {
		s.log.Error("history fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "history unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": recs})
}

func (s *Server) handleMarkRead(c *gin.Context) {
	if err := s.repo.MarkHistoryRead(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		s.log.Error("mark read failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"read": true})
}

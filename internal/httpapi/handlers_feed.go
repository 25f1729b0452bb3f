package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ChristelOko/BarometreHED-sub002/internal/domain"
)

func (s *Server) handleListPosts(c *gin.Context) {
	posts, err := s.repo.ListPosts(c.Request.Context(), 50)
	if err != nil {
		s.log.Error("list posts failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "feed unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

type createPostRequest struct {
	Content string `json:"content" binding:"required"`
}

// handleCreatePost moderates the submission before anything is persisted.
// A rejection returns the full flag list so the client can show every reason.
func (s *Server) handleCreatePost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	verdict := s.moderator.Moderate(req.Content)
	if err := verdict.Err(); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": err.Error(),
			"flags": verdict.Flags,
		})
		return
	}

	post := &domain.Post{
		ID:        uuid.NewString(),
		UserID:    currentUserID(c),
		Content:   req.Content,
		HTML:      domain.RenderPost(req.Content),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.InsertPost(c.Request.Context(), post); err != nil {
		s.log.Error("insert post failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "publication failed", "retryable": true})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"post": post})
}

// handleLikePost records the like and replies with the count read back from
// storage, so the client reconciles instead of incrementing locally.
func (s *Server) handleLikePost(c *gin.Context) {
	count, err := s.repo.LikePost(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		s.log.Error("like failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "like failed", "retryable": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"likes": count})
}

func (s *Server) handleUnlikePost(c *gin.Context) {
	count, err := s.repo.UnlikePost(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		s.log.Error("unlike failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unlike failed", "retryable": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"likes": count})
}

package server

import (
	"net/http"
	"strings"

	subscriptiondomain "github.com/carrierdesk/carrierdesk/internal/subscription/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) GetSubscription(c *gin.Context) {
	detail, err := s.subscriptionSvc.GetDetail(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": detail})
}

func (s *Server) Subscribe(c *gin.Context) {
	var req struct {
		CustomerEmail string `json:"customer_email"`
		PlanID        string `json:"plan_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	mapping, err := s.subscriptionSvc.Subscribe(c.Request.Context(), subscriptiondomain.SubscribeRequest{
		CustomerEmail: strings.TrimSpace(req.CustomerEmail),
		PlanID:        strings.TrimSpace(req.PlanID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": mapping})
}

func (s *Server) CancelSubscription(c *gin.Context) {
	if err := s.subscriptionSvc.Cancel(c.Request.Context()); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"cancelled": true}})
}

func (s *Server) GetUsage(c *gin.Context) {
	usage, err := s.subscriptionSvc.GetUsage(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": usage})
}

// BillingWebhook handles processor events. Only subscription cancellation
// mutates local state; everything else is acknowledged and ignored.
func (s *Server) BillingWebhook(c *gin.Context) {
	var event struct {
		Type           string `json:"type"`
		SubscriptionID string `json:"subscription_id"`
	}
	if err := c.ShouldBindJSON(&event); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	switch event.Type {
	case "subscription.cancelled", "subscription.expired":
		removed, err := s.subscriptionSvc.DeleteByExternalID(c.Request.Context(), event.SubscriptionID)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"removed": removed}})
	default:
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"ignored": true}})
	}
}

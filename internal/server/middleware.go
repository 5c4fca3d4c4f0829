package server

import (
	"strings"

	"github.com/carrierdesk/carrierdesk/internal/identity"
	"github.com/gin-gonic/gin"
)

// IdentityMiddleware binds the authenticated actor to the request context.
// Authentication happens upstream; the gateway forwards the resolved identity
// in headers, and requests without both headers are rejected.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader("X-User-ID"))
		orgID := strings.TrimSpace(c.GetHeader("X-Org-ID"))
		if userID == "" || orgID == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		ctx := identity.WithUserID(c.Request.Context(), userID)
		ctx = identity.WithOrgID(ctx, orgID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// ManagerRequired gates billing mutations on the manager role.
func (s *Server) ManagerRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		isManager, err := s.membershipSvc.IsManager(c.Request.Context())
		if err != nil {
			AbortWithError(c, err)
			return
		}
		if !isManager {
			AbortWithError(c, ErrForbidden)
			return
		}
		c.Next()
	}
}

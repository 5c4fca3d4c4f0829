package server

import (
	"net/http"

	historydomain "github.com/carrierdesk/carrierdesk/internal/synchistory/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) ListSyncHistory(c *gin.Context) {
	var query struct {
		UserID string `form:"user_id"`
		Limit  int    `form:"limit"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	records, err := s.historySvc.QueryByOrg(c.Request.Context(), historydomain.QueryByOrgRequest{
		UserID: query.UserID,
		Limit:  query.Limit,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"history": records}})
}

func (s *Server) GetCarrierSyncHistory(c *gin.Context) {
	var query struct {
		AllOrgs bool `form:"all_orgs"`
		Limit   int  `form:"limit"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	records, err := s.historySvc.QueryByUSDOT(c.Request.Context(), historydomain.QueryByUSDOTRequest{
		USDOT:   c.Param("usdot"),
		AllOrgs: query.AllOrgs,
		Limit:   query.Limit,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"history": records}})
}

// GetSyncSummary is the dashboard widget: CRM connection settings plus the
// org's aggregate push stats.
func (s *Server) GetSyncSummary(c *gin.Context) {
	stats, err := s.historySvc.Stats(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"platform":    s.cfg.CRMPlatform,
		"object_type": s.cfg.CRMObjectType,
		"stats":       stats,
	}})
}

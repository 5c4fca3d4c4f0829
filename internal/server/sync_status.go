package server

import (
	"net/http"

	syncdomain "github.com/carrierdesk/carrierdesk/internal/syncstatus/domain"
	"github.com/carrierdesk/carrierdesk/pkg/db/pagination"
	"github.com/gin-gonic/gin"
)

func (s *Server) ListSyncStatuses(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Status string `form:"status"`
		USDOT  string `form:"usdot"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.statusSvc.ListByOrg(c.Request.Context(), syncdomain.ListRequest{
		Pagination:  query.Pagination,
		Status:      query.Status,
		USDOTFilter: query.USDOT,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetSyncStatus(c *gin.Context) {
	record, err := s.statusSvc.GetByUSDOT(c.Request.Context(), c.Param("usdot"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": record})
}

func (s *Server) DeleteSyncStatus(c *gin.Context) {
	deleted, err := s.statusSvc.Delete(c.Request.Context(), c.Param("usdot"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if !deleted {
		AbortWithError(c, ErrNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func (s *Server) PushToCRM(c *gin.Context) {
	var req struct {
		USDOTs []string `json:"usdots"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.pushSvc.Push(c.Request.Context(), req.USDOTs)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

package server

import (
	"io"
	"net/http"

	carrierdomain "github.com/carrierdesk/carrierdesk/internal/carrier/domain"
	"github.com/carrierdesk/carrierdesk/pkg/db/pagination"
	"github.com/gin-gonic/gin"
)

func (s *Server) IngestCarriers(c *gin.Context) {
	var req struct {
		USDOTs []string `json:"usdots"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.ingestSvc.Ingest(c.Request.Context(), req.USDOTs)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) IngestDocument(c *gin.Context) {
	file, header, err := c.Request.FormFile("document")
	if err != nil {
		AbortWithError(c, newValidationError("document", "missing_document", "missing document upload"))
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.ingestSvc.IngestDocument(c.Request.Context(), header.Filename, content)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListCarriers(c *gin.Context) {
	var query struct {
		pagination.Pagination
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.carrierSvc.ListByOrg(c.Request.Context(), carrierdomain.ListRequest{
		Pagination: query.Pagination,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetCarrier(c *gin.Context) {
	record, err := s.carrierSvc.GetByUSDOT(c.Request.Context(), c.Param("usdot"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": record})
}

package server

import (
	"net/http"

	fieldmappingdomain "github.com/carrierdesk/carrierdesk/internal/fieldmapping/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) ListFieldMappings(c *gin.Context) {
	mappings, err := s.mappingSvc.GetActiveMappings(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"mappings":        mappings,
		"carrier_fields":  fieldmappingdomain.Catalogue(),
		"external_fields": fieldmappingdomain.StandardExternalFields(),
	}})
}

func (s *Server) SaveFieldMapping(c *gin.Context) {
	var req struct {
		CarrierField  string `json:"carrier_field"`
		ExternalField string `json:"external_field"`
		FieldType     string `json:"field_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	mapping, err := s.mappingSvc.SaveMapping(c.Request.Context(), fieldmappingdomain.SaveRequest{
		CarrierField:  req.CarrierField,
		ExternalField: req.ExternalField,
		FieldType:     req.FieldType,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": mapping})
}

func (s *Server) DeleteFieldMapping(c *gin.Context) {
	deactivated, err := s.mappingSvc.DeactivateMapping(c.Request.Context(), c.Param("field"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if !deactivated {
		AbortWithError(c, ErrNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deactivated": true}})
}

func (s *Server) ResetFieldMappings(c *gin.Context) {
	mappings, err := s.mappingSvc.Reset(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"mappings": mappings}})
}

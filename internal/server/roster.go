package server

import (
	"net/http"

	employeedomain "github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/employee/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) ReplaceRoster(c *gin.Context) {
	var req employeedomain.ReplaceRosterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.employeeSvc.ReplaceRoster(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) SetOverrides(c *gin.Context) {
	var req struct {
		Overrides []employeedomain.OverrideInput `json:"overrides"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.employeeSvc.SetOverrides(c.Request.Context(), req.Overrides); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"count": len(req.Overrides)}})
}

package server

import (
	"net/http"
	"strconv"
	"strings"

	analyticsdomain "github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/analytics/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) AggregatedUsers(c *gin.Context) {
	top := 0
	if raw := strings.TrimSpace(c.Query("top")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			AbortWithError(c, invalidRequestError())
			return
		}
		top = parsed
	}

	users, err := s.analyticsSvc.Users(c.Request.Context(), analyticsdomain.UsersRequest{Top: top})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": users})
}

func (s *Server) ROI(c *gin.Context) {
	summary, err := s.analyticsSvc.ROI(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": summary})
}

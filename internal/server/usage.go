package server

import (
	"net/http"
	"strings"

	usagedomain "github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/usage/domain"
	"github.com/gin-gonic/gin"
)

type ingestFileRequest struct {
	OriginFile string     `json:"origin_file"`
	VendorHint string     `json:"vendor_hint"`
	Header     []string   `json:"header"`
	Rows       [][]string `json:"rows"`
}

func (s *Server) IngestFile(c *gin.Context) {
	var req ingestFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.usageSvc.IngestFile(c.Request.Context(), usagedomain.IngestFileRequest{
		OriginFile: strings.TrimSpace(req.OriginFile),
		VendorHint: strings.TrimSpace(req.VendorHint),
		Header:     req.Header,
		Rows:       req.Rows,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

package server

import (
	"errors"
	"net/http"

	employeedomain "github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/employee/domain"
	usagedomain "github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/usage/domain"
	"github.com/gin-gonic/gin"
)

// AbortWithError maps domain sentinels to HTTP statuses. Rejected files are
// informational to the caller: the body says what was skipped and why.
func AbortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, usagedomain.ErrDuplicateFile):
		status = http.StatusConflict
	case errors.Is(err, usagedomain.ErrNoUsableRows),
		errors.Is(err, usagedomain.ErrUnknownFormat):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, usagedomain.ErrInvalidFile),
		errors.Is(err, employeedomain.ErrEmptyRoster),
		errors.Is(err, employeedomain.ErrInvalidEmployee),
		errors.Is(err, employeedomain.ErrDuplicateEmail),
		errors.Is(err, employeedomain.ErrInvalidOverride):
		status = http.StatusBadRequest
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func invalidRequestError() error {
	return usagedomain.ErrInvalidFile
}

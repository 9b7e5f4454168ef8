package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/staybooking/internal/domain"
	"github.com/gin-gonic/gin"
)

var statusBySentinel = []struct {
	err    error
	status int
}{
	{domain.ErrNotFound, http.StatusNotFound},
	{domain.ErrInvalidArgument, http.StatusBadRequest},
	{domain.ErrDuplicateEmail, http.StatusConflict},
	{domain.ErrPaymentFinalized, http.StatusConflict},
	{domain.ErrPaymentNotCompleted, http.StatusPaymentRequired},
	{domain.ErrForbidden, http.StatusForbidden},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized},
	{domain.ErrPaymentProvider, http.StatusBadGateway},
	{domain.ErrConfiguration, http.StatusInternalServerError},
}

func statusFor(err error) int {
	for _, s := range statusBySentinel {
		if errors.Is(err, s.err) {
			return s.status
		}
	}
	return http.StatusInternalServerError
}

// writeError aborts the request with the status matching err. Unexpected
// errors are logged and hidden from the client.
func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		loggerFrom(c).WithError(err).Error("request failed")
		if !errors.Is(err, domain.ErrConfiguration) {
			msg = "internal server error"
		}
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

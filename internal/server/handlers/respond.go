// Package handlers adapts the domain services to HTTP.
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/livestockcare/internal/domain/models"
	"github.com/mamadbah2/livestockcare/internal/server/middleware"
)

const dateLayout = "2006-01-02"

// statusFor maps a domain error kind to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, models.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrLocked):
		return http.StatusLocked
	}
	return http.StatusInternalServerError
}

// respondError writes err as {"error": message}. Unclassified errors are
// logged and hidden behind a generic message.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}

	msg := err.Error()
	var domainErr *models.Error
	if errors.As(err, &domainErr) {
		msg = domainErr.Message
	}
	c.JSON(status, gin.H{"error": msg})
}

// bind decodes the JSON body into dst, answering 422 on failure.
func bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// principal returns the authenticated caller. Routes using it always sit
// behind middleware.Authenticate.
func principal(c *gin.Context) models.Principal {
	p, _ := middleware.CurrentPrincipal(c)
	return p
}

// boolQuery reads a required boolean query parameter.
func boolQuery(c *gin.Context, name string) (bool, bool) {
	v, err := strconv.ParseBool(c.Query(name))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": name + " must be true or false"})
		return false, false
	}
	return v, true
}

// dateQuery reads an optional YYYY-MM-DD query parameter.
func dateQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": name + " must be a YYYY-MM-DD date"})
		return nil, false
	}
	return &t, true
}

// dateRangeQuery reads date_from and date_to. date_to covers the whole day.
func dateRangeQuery(c *gin.Context) (from, to *time.Time, ok bool) {
	if from, ok = dateQuery(c, "date_from"); !ok {
		return nil, nil, false
	}
	if to, ok = dateQuery(c, "date_to"); !ok {
		return nil, nil, false
	}
	if to != nil {
		end := to.Add(24*time.Hour - time.Nanosecond)
		to = &end
	}
	return from, to, true
}

func message(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

func pdfAttachment(c *gin.Context, filename string, body []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", body)
}

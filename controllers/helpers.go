package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Kumaravel655/loan-backend/repository"
	"github.com/Kumaravel655/loan-backend/service"
	"github.com/Kumaravel655/loan-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func currentUserID(c *gin.Context) (uint, error) {
	v, ok := c.Get("user_id")
	if !ok {
		return 0, errors.New("user_id missing from context")
	}
	id, ok := v.(uint)
	if !ok || id == 0 {
		return 0, errors.New("user_id invalid")
	}
	return id, nil
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.Error(c, http.StatusBadRequest, "invalid "+name, nil)
		return 0, false
	}
	return uint(id), true
}

// parseDate accepts YYYY-MM-DD or RFC3339.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// respondError maps service and storage errors onto HTTP statuses.
func respondError(c *gin.Context, message string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrInvalidLoanTerms), errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		status = http.StatusNotFound
	case repository.IsUniqueViolation(err):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError && deps.Log != nil {
		deps.Log.WithError(err).WithField("path", c.FullPath()).Error(message)
	}
	utils.Error(c, status, message, err)
}

package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Kumaravel655/loan-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRespondError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := logrus.New()
	log.SetOutput(io.Discard)
	Init(Deps{Log: log})

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid terms", fmt.Errorf("wrap: %w", service.ErrInvalidLoanTerms), http.StatusBadRequest},
		{"validation", fmt.Errorf("wrap: %w", service.ErrValidation), http.StatusBadRequest},
		{"service not found", fmt.Errorf("loan 3: %w", service.ErrNotFound), http.StatusNotFound},
		{"gorm not found", gorm.ErrRecordNotFound, http.StatusNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505"}, http.StatusConflict},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			respondError(c, "failed", tc.err)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestParamID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "17"}}
	id, ok := paramID(c, "id")
	require.True(t, ok)
	assert.Equal(t, uint(17), id)

	for _, v := range []string{"0", "-1", "abc"} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: v}}
		_, ok := paramID(c, "id")
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), d)

	d, err = parseDate("2024-02-29T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, 10, d.Hour())

	_, err = parseDate("29/02/2024")
	assert.Error(t, err)
}

func TestCurrentUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, err := currentUserID(c)
	assert.Error(t, err)

	c.Set("user_id", uint(9))
	id, err := currentUserID(c)
	require.NoError(t, err)
	assert.Equal(t, uint(9), id)
}

func TestPreviewSchedule_InstallmentCap(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := logrus.New()
	log.SetOutput(io.Discard)
	Init(Deps{Loans: service.NewLoanService(nil, nil, log), Log: log})

	preview := func(count int) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet,
			fmt.Sprintf("/loans/preview?principal=100000&interest=10&count=%d&mode=daily&start=2024-01-01", count), nil)
		PreviewSchedule(c)
		return w
	}

	assert.Equal(t, http.StatusOK, preview(service.MaxInstallments).Code)
	assert.Equal(t, http.StatusBadRequest, preview(service.MaxInstallments+1).Code)
	assert.Equal(t, http.StatusBadRequest, preview(1<<30).Code)
}

package utils

import (
	"errors"
	"image/color"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenCustomerCode(t *testing.T) {
	got := GenCustomerCode(42, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "CUS-2025-000042", got)
}

func TestThumbPath(t *testing.T) {
	assert.Equal(t, "uploads/customers/1/id_thumb.png", ThumbPath("uploads/customers/1/id.png"))
	assert.True(t, IsImage("scan.JPG"))
	assert.False(t, IsImage("agreement.pdf"))
}

func TestMakeThumbnail(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "aadhar.png")
	require.NoError(t, imaging.Save(imaging.New(800, 400, color.NRGBA{R: 200, A: 255}), src))

	dst, err := MakeThumbnail(src)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "aadhar_thumb.png"), dst)

	img, err := imaging.Open(dst)
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
	assert.Equal(t, 256, img.Bounds().Dy())

	_, err = MakeThumbnail(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "broken.jpg")
	require.NoError(t, os.WriteFile(bad, []byte("not an image"), 0o644))
	_, err = MakeThumbnail(bad)
	assert.Error(t, err)
}

func TestDueReminderBody(t *testing.T) {
	body := DueReminderBody("Ravi", 7, 3, time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), decimal.RequireFromString("1120.5"))
	assert.Contains(t, body, "Dear Ravi")
	assert.Contains(t, body, "installment 3 of your loan #7")
	assert.Contains(t, body, "1120.50")
	assert.Contains(t, body, "2024-05-02")
}

func TestResponseEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("request_id", "rid-1")
	Created(c, "loan created", gin.H{"loan_id": 3})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"message":"loan created","data":{"loan_id":3},"request_id":"rid-1"}`, w.Body.String())

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	Error(c, http.StatusNotFound, "loan not found", errors.New("loan 3: not found"))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"loan not found","error":"loan 3: not found"}`, w.Body.String())
}

package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Kumaravel655/loan-backend/config"
	"github.com/Kumaravel655/loan-backend/models"
	"github.com/Kumaravel655/loan-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AttendanceInput struct {
	UserID     uint    `json:"user_id" binding:"required"`
	LoginTime  string  `json:"login_time" binding:"required"`
	LogoutTime *string `json:"logout_time"`
}

func (in AttendanceInput) toModel() (models.Attendance, error) {
	login, err := time.Parse(time.RFC3339, in.LoginTime)
	if err != nil {
		return models.Attendance{}, err
	}
	a := models.Attendance{UserID: in.UserID, LoginTime: login}
	if in.LogoutTime != nil {
		out, err := time.Parse(time.RFC3339, *in.LogoutTime)
		if err != nil {
			return models.Attendance{}, err
		}
		if out.Before(login) {
			return models.Attendance{}, errors.New("logout_time is before login_time")
		}
		a.LogoutTime = &out
	}
	return a, nil
}

func CreateAttendance(c *gin.Context) {
	var in AttendanceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	a, err := in.toModel()
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid times, use RFC3339", err)
		return
	}
	if err := config.DB.Create(&a).Error; err != nil {
		respondError(c, "failed to create attendance", err)
		return
	}
	utils.Created(c, "attendance created", a)
}

func GetAllAttendance(c *gin.Context) {
	q := config.DB.Order("login_time DESC")
	if v := c.Query("user_id"); v != "" {
		q = q.Where("user_id = ?", v)
	}
	var rows []models.Attendance
	if err := q.Find(&rows).Error; err != nil {
		respondError(c, "failed to load attendance", err)
		return
	}
	utils.Success(c, "attendance loaded", rows)
}

func GetAttendanceByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var a models.Attendance
	if err := config.DB.First(&a, id).Error; err != nil {
		respondError(c, "attendance not found", err)
		return
	}
	utils.Success(c, "attendance loaded", a)
}

func UpdateAttendance(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var existing models.Attendance
	if err := config.DB.First(&existing, id).Error; err != nil {
		respondError(c, "attendance not found", err)
		return
	}
	var in AttendanceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	a, err := in.toModel()
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid times, use RFC3339", err)
		return
	}
	a.ID = existing.ID
	if err := config.DB.Save(&a).Error; err != nil {
		respondError(c, "failed to update attendance", err)
		return
	}
	utils.Success(c, "attendance updated", a)
}

func DeleteAttendance(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	res := config.DB.Delete(&models.Attendance{}, id)
	if res.Error != nil {
		respondError(c, "failed to delete attendance", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(c, http.StatusNotFound, "attendance not found", nil)
		return
	}
	utils.Success(c, "attendance deleted", nil)
}

// POST /attendance/check-in opens a session for the caller.
func CheckIn(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}

	var open models.Attendance
	err = config.DB.Where("user_id = ? AND logout_time IS NULL", userID).First(&open).Error
	if err == nil {
		utils.Error(c, http.StatusConflict, "already checked in", nil)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, "failed to check attendance", err)
		return
	}

	a := models.Attendance{UserID: userID, LoginTime: time.Now().UTC()}
	if err := config.DB.Create(&a).Error; err != nil {
		respondError(c, "failed to check in", err)
		return
	}
	utils.Created(c, "checked in", a)
}

// POST /attendance/check-out closes the caller's open session.
func CheckOut(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}

	var open models.Attendance
	if err := config.DB.Where("user_id = ? AND logout_time IS NULL", userID).
		Order("login_time DESC").First(&open).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, http.StatusConflict, "not checked in", nil)
			return
		}
		respondError(c, "failed to check attendance", err)
		return
	}

	now := time.Now().UTC()
	if err := config.DB.Model(&open).Update("logout_time", now).Error; err != nil {
		respondError(c, "failed to check out", err)
		return
	}
	open.LogoutTime = &now
	utils.Success(c, "checked out", open)
}

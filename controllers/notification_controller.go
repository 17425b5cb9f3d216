package controllers

import (
	"net/http"

	"github.com/Kumaravel655/loan-backend/config"
	"github.com/Kumaravel655/loan-backend/models"
	"github.com/Kumaravel655/loan-backend/utils"

	"github.com/gin-gonic/gin"
)

type NotificationInput struct {
	UserID  uint   `json:"user_id" binding:"required"`
	Title   string `json:"title" binding:"required"`
	Message string `json:"message" binding:"required"`
	IsRead  bool   `json:"is_read"`
}

func CreateNotification(c *gin.Context) {
	var in NotificationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	n := models.Notification{UserID: in.UserID, Title: in.Title, Message: in.Message, IsRead: in.IsRead}
	if err := config.DB.Create(&n).Error; err != nil {
		respondError(c, "failed to create notification", err)
		return
	}
	utils.Created(c, "notification created", n)
}

// Lists the caller's notifications; ?unread=true filters to unread ones.
func GetAllNotifications(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}
	q := config.DB.Where("user_id = ?", userID).Order("created_at DESC")
	if c.Query("unread") == "true" {
		q = q.Where("is_read = ?", false)
	}
	var rows []models.Notification
	if err := q.Find(&rows).Error; err != nil {
		respondError(c, "failed to load notifications", err)
		return
	}
	utils.Success(c, "notifications loaded", rows)
}

func GetNotificationByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var n models.Notification
	if err := config.DB.First(&n, id).Error; err != nil {
		respondError(c, "notification not found", err)
		return
	}
	utils.Success(c, "notification loaded", n)
}

func UpdateNotification(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var n models.Notification
	if err := config.DB.First(&n, id).Error; err != nil {
		respondError(c, "notification not found", err)
		return
	}
	var in NotificationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	if err := config.DB.Model(&n).Updates(map[string]any{
		"user_id": in.UserID,
		"title":   in.Title,
		"message": in.Message,
		"is_read": in.IsRead,
	}).Error; err != nil {
		respondError(c, "failed to update notification", err)
		return
	}
	utils.Success(c, "notification updated", n)
}

func DeleteNotification(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	res := config.DB.Delete(&models.Notification{}, id)
	if res.Error != nil {
		respondError(c, "failed to delete notification", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(c, http.StatusNotFound, "notification not found", nil)
		return
	}
	utils.Success(c, "notification deleted", nil)
}

func MarkNotificationRead(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	res := config.DB.Model(&models.Notification{}).Where("id = ?", id).Update("is_read", true)
	if res.Error != nil {
		respondError(c, "failed to mark notification", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(c, http.StatusNotFound, "notification not found", nil)
		return
	}
	utils.Success(c, "notification marked as read", nil)
}

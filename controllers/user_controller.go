package controllers

import (
	"net/http"
	"time"

	"github.com/Kumaravel655/loan-backend/config"
	"github.com/Kumaravel655/loan-backend/models"
	"github.com/Kumaravel655/loan-backend/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type CreateUserInput struct {
	Email    string      `json:"email" binding:"required,email"`
	Username string      `json:"username" binding:"required"`
	FullName string      `json:"full_name"`
	Phone    string      `json:"phone"`
	Password string      `json:"password" binding:"required,min=6"`
	Role     models.Role `json:"role"`
}

// Admin: create staff or collection agent account
func CreateUser(c *gin.Context) {
	var in CreateUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	if in.Role == "" {
		in.Role = models.DefaultSignupRole
	}
	if !in.Role.Valid() {
		utils.Error(c, http.StatusBadRequest, "role must be master_admin, collection_agent or staff", nil)
		return
	}

	var exists models.User
	if err := config.DB.Where("email = ? OR username = ?", in.Email, in.Username).First(&exists).Error; err == nil {
		utils.Error(c, http.StatusConflict, "email or username already in use", nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to hash password", err)
		return
	}
	user := models.User{
		Email:        in.Email,
		Username:     in.Username,
		FullName:     in.FullName,
		Phone:        in.Phone,
		Role:         in.Role,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		respondError(c, "failed to create user", err)
		return
	}
	utils.Created(c, "user created", user)
}

func GetAllUsers(c *gin.Context) {
	var users []models.User
	q := config.DB.Order("id ASC")
	if role := c.Query("role"); role != "" {
		q = q.Where("role = ?", role)
	}
	if err := q.Find(&users).Error; err != nil {
		respondError(c, "failed to load users", err)
		return
	}
	utils.Success(c, "users loaded", users)
}

func GetUserByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		respondError(c, "user not found", err)
		return
	}
	utils.Success(c, "user loaded", user)
}

type UpdateUserInput struct {
	FullName *string      `json:"full_name,omitempty"`
	Phone    *string      `json:"phone,omitempty"`
	Role     *models.Role `json:"role,omitempty"`
	IsActive *bool        `json:"is_active,omitempty"`
}

func UpdateUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		respondError(c, "user not found", err)
		return
	}

	var in UpdateUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}

	updates := map[string]any{}
	if in.FullName != nil {
		updates["full_name"] = *in.FullName
	}
	if in.Phone != nil {
		updates["phone"] = *in.Phone
	}
	if in.Role != nil {
		if !in.Role.Valid() {
			utils.Error(c, http.StatusBadRequest, "invalid role", nil)
			return
		}
		updates["role"] = *in.Role
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}
	if len(updates) == 0 {
		utils.Error(c, http.StatusBadRequest, "nothing to update", nil)
		return
	}
	updates["updated_at"] = time.Now()

	if err := config.DB.Model(&user).Updates(updates).Error; err != nil {
		respondError(c, "failed to update user", err)
		return
	}
	config.DB.First(&user, id)
	utils.Success(c, "user updated", user)
}

func DeleteUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	res := config.DB.Delete(&models.User{}, id)
	if res.Error != nil {
		respondError(c, "failed to delete user", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(c, http.StatusNotFound, "user not found", nil)
		return
	}
	utils.Success(c, "user deleted", nil)
}

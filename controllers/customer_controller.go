package controllers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/Kumaravel655/loan-backend/config"
	"github.com/Kumaravel655/loan-backend/models"
	"github.com/Kumaravel655/loan-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CustomerInput struct {
	CustomerCode string `json:"customer_code"`
	FullName     string `json:"full_name" binding:"required"`
	Nickname     string `json:"nickname"`
	Phone        string `json:"phone" binding:"required"`
	Email        string `json:"email" binding:"omitempty,email"`
	Address      string `json:"address"`
	AadharNumber string `json:"aadhar_number"`
}

func CreateCustomer(c *gin.Context) {
	var in CustomerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}

	customer := models.Customer{
		CustomerCode: in.CustomerCode,
		FullName:     in.FullName,
		Nickname:     in.Nickname,
		Phone:        in.Phone,
		Email:        in.Email,
		Address:      in.Address,
		AadharNumber: in.AadharNumber,
		DocumentsURL: []string{},
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if customer.CustomerCode == "" {
			var n int64
			if err := tx.Model(&models.Customer{}).Count(&n).Error; err != nil {
				return err
			}
			customer.CustomerCode = utils.GenCustomerCode(n+1, time.Now())
		}
		return tx.Create(&customer).Error
	})
	if err != nil {
		respondError(c, "failed to create customer", err)
		return
	}
	utils.Created(c, "customer created", customer)
}

func GetAllCustomer(c *gin.Context) {
	var rows []models.Customer
	if err := config.DB.Order("created_at DESC").Find(&rows).Error; err != nil {
		respondError(c, "failed to load customers", err)
		return
	}
	utils.Success(c, "customers loaded", rows)
}

func GetCustomerByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var customer models.Customer
	if err := config.DB.First(&customer, id).Error; err != nil {
		respondError(c, "customer not found", err)
		return
	}
	utils.Success(c, "customer loaded", customer)
}

func UpdateCustomer(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var customer models.Customer
	if err := config.DB.First(&customer, id).Error; err != nil {
		respondError(c, "customer not found", err)
		return
	}

	var in CustomerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}

	updates := map[string]any{
		"full_name":     in.FullName,
		"nickname":      in.Nickname,
		"phone":         in.Phone,
		"email":         in.Email,
		"address":       in.Address,
		"aadhar_number": in.AadharNumber,
		"updated_at":    time.Now(),
	}
	if in.CustomerCode != "" {
		updates["customer_code"] = in.CustomerCode
	}
	if err := config.DB.Model(&customer).Updates(updates).Error; err != nil {
		respondError(c, "failed to update customer", err)
		return
	}
	config.DB.First(&customer, id)
	utils.Success(c, "customer updated", customer)
}

// Deleting a customer cascades to its loans, schedules and dues.
func DeleteCustomer(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	res := config.DB.Delete(&models.Customer{}, id)
	if res.Error != nil {
		respondError(c, "failed to delete customer", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(c, http.StatusNotFound, "customer not found", nil)
		return
	}
	utils.Success(c, "customer deleted", nil)
}

// POST /customers/:id/documents (multipart field "file")
func UploadCustomerDocument(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var customer models.Customer
	if err := config.DB.First(&customer, id).Error; err != nil {
		respondError(c, "customer not found", err)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "file is required", err)
		return
	}

	dir := filepath.Join(deps.UploadDir, "customers", fmt.Sprint(customer.ID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		respondError(c, "failed to prepare upload dir", err)
		return
	}
	dst := filepath.Join(dir, fmt.Sprintf("%d_%s", time.Now().UnixNano(), filepath.Base(file.Filename)))
	if err := c.SaveUploadedFile(file, dst); err != nil {
		respondError(c, "failed to store file", err)
		return
	}

	resp := gin.H{"path": filepath.ToSlash(dst)}
	if utils.IsImage(dst) {
		thumb, err := utils.MakeThumbnail(dst)
		if err != nil {
			deps.Log.WithError(err).WithField("path", dst).Warn("thumbnail generation failed")
		} else {
			resp["thumbnail"] = filepath.ToSlash(thumb)
		}
	}

	customer.DocumentsURL = append(customer.DocumentsURL, filepath.ToSlash(dst))
	if err := config.DB.Model(&customer).Update("documents_url", customer.DocumentsURL).Error; err != nil {
		respondError(c, "failed to save document reference", err)
		return
	}
	resp["documents_url"] = customer.DocumentsURL
	utils.Created(c, "document uploaded", resp)
}

package controllers

import (
	"net/http"

	"github.com/Kumaravel655/loan-backend/config"
	"github.com/Kumaravel655/loan-backend/models"
	"github.com/Kumaravel655/loan-backend/utils"

	"github.com/gin-gonic/gin"
)

type LoanTypeInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func CreateLoanType(c *gin.Context) {
	var in LoanTypeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	lt := models.LoanType{Name: in.Name, Description: in.Description}
	if err := config.DB.Create(&lt).Error; err != nil {
		respondError(c, "failed to create loan type", err)
		return
	}
	utils.Created(c, "loan type created", lt)
}

func GetAllLoanTypes(c *gin.Context) {
	var rows []models.LoanType
	if err := config.DB.Order("id ASC").Find(&rows).Error; err != nil {
		respondError(c, "failed to load loan types", err)
		return
	}
	utils.Success(c, "loan types loaded", rows)
}

func GetLoanTypeByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var lt models.LoanType
	if err := config.DB.First(&lt, id).Error; err != nil {
		respondError(c, "loan type not found", err)
		return
	}
	utils.Success(c, "loan type loaded", lt)
}

func UpdateLoanType(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var lt models.LoanType
	if err := config.DB.First(&lt, id).Error; err != nil {
		respondError(c, "loan type not found", err)
		return
	}
	var in LoanTypeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	if err := config.DB.Model(&lt).Updates(map[string]any{"name": in.Name, "description": in.Description}).Error; err != nil {
		respondError(c, "failed to update loan type", err)
		return
	}
	utils.Success(c, "loan type updated", lt)
}

// Loans of a deleted type keep their terms; loan_type_id becomes NULL.
func DeleteLoanType(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	res := config.DB.Delete(&models.LoanType{}, id)
	if res.Error != nil {
		respondError(c, "failed to delete loan type", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(c, http.StatusNotFound, "loan type not found", nil)
		return
	}
	utils.Success(c, "loan type deleted", nil)
}

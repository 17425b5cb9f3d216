package controllers

import (
	"net/http"

	"github.com/Kumaravel655/loan-backend/config"
	"github.com/Kumaravel655/loan-backend/models"
	"github.com/Kumaravel655/loan-backend/service"
	"github.com/Kumaravel655/loan-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func GetAllSchedules(c *gin.Context) {
	q := config.DB.Order("loan_id ASC, installment_no ASC")
	if v := c.Query("assigned_to"); v != "" {
		q = q.Where("assigned_to_id = ?", v)
	}
	var rows []models.LoanSchedule
	if err := q.Find(&rows).Error; err != nil {
		respondError(c, "failed to load schedules", err)
		return
	}
	utils.Success(c, "schedules loaded", rows)
}

func GetSchedulesByLoan(c *gin.Context) {
	loanID, ok := paramID(c, "loan_id")
	if !ok {
		return
	}
	var rows []models.LoanSchedule
	if err := config.DB.Where("loan_id = ?", loanID).Order("installment_no ASC").Find(&rows).Error; err != nil {
		respondError(c, "failed to load schedule", err)
		return
	}
	if len(rows) == 0 {
		utils.Error(c, http.StatusNotFound, "no schedule for this loan", nil)
		return
	}
	utils.Success(c, "schedule loaded", rows)
}

type UpdateScheduleInput struct {
	DueDate            *string          `json:"due_date,omitempty"`
	PrincipalAmount    *decimal.Decimal `json:"principal_amount,omitempty"`
	InterestAmount     *decimal.Decimal `json:"interest_amount,omitempty"`
	TotalDue           *decimal.Decimal `json:"total_due,omitempty"`
	RemainingPrincipal *decimal.Decimal `json:"remaining_principal,omitempty"`
}

// PUT /loan-schedules/item/:id: manual correction, mirrored onto the due.
func UpdateScheduleItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in UpdateScheduleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}

	u := service.InstallmentUpdate{
		PrincipalAmount:    in.PrincipalAmount,
		InterestAmount:     in.InterestAmount,
		TotalDue:           in.TotalDue,
		RemainingPrincipal: in.RemainingPrincipal,
	}
	if in.DueDate != nil {
		t, err := parseDate(*in.DueDate)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "due_date must be YYYY-MM-DD or RFC3339", err)
			return
		}
		u.DueDate = &t
	}

	inst, err := deps.Loans.UpdateInstallment(c.Request.Context(), id, u)
	if err != nil {
		respondError(c, "failed to update installment", err)
		return
	}
	utils.Success(c, "installment updated", inst)
}

func DeleteScheduleItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := deps.Loans.DeleteInstallment(c.Request.Context(), id); err != nil {
		respondError(c, "failed to delete installment", err)
		return
	}
	utils.Success(c, "installment deleted", nil)
}

type AssignInput struct {
	UserID uint `json:"user_id" binding:"required"`
}

// POST /loan-schedules/item/:id/assign
func AssignScheduleItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in AssignInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "user_id is required", err)
		return
	}
	inst, err := deps.Assigner.AssignCollector(c.Request.Context(), id, in.UserID)
	if err != nil {
		respondError(c, "failed to assign collector", err)
		return
	}
	utils.Success(c, "collector assigned", inst)
}

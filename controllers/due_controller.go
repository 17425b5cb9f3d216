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

// GET /loan-dues?loan_id=&status=&date=
func GetAllDues(c *gin.Context) {
	q := config.DB.Order("loan_id ASC, due_number ASC")
	if v := c.Query("loan_id"); v != "" {
		q = q.Where("loan_id = ?", v)
	}
	if v := c.Query("status"); v != "" {
		q = q.Where("payment_status = ?", v)
	}
	if v := c.Query("date"); v != "" {
		day, err := parseDate(v)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "date must be YYYY-MM-DD", err)
			return
		}
		q = q.Where("due_date = ?", day.Format("2006-01-02"))
	}
	var rows []models.LoanDue
	if err := q.Find(&rows).Error; err != nil {
		respondError(c, "failed to load dues", err)
		return
	}
	utils.Success(c, "dues loaded", rows)
}

func GetDueByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var due models.LoanDue
	if err := config.DB.First(&due, id).Error; err != nil {
		respondError(c, "due not found", err)
		return
	}
	utils.Success(c, "due loaded", due)
}

type PayDueInput struct {
	Amount        decimal.Decimal      `json:"amount" binding:"required"`
	PaymentMethod models.PaymentMethod `json:"payment_method" binding:"required"`
}

func PayDue(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in PayDueInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	agentID, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}

	due, err := deps.Loans.RecordPayment(c.Request.Context(), service.PaymentInput{
		DueID:   id,
		Amount:  in.Amount,
		Method:  in.PaymentMethod,
		AgentID: agentID,
	})
	if err != nil {
		respondError(c, "failed to record payment", err)
		return
	}
	utils.Success(c, "payment recorded", due)
}

type SkipDueInput struct {
	SkipReason string `json:"skip_reason"`
}

func SkipDue(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in SkipDueInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	agentID, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}

	due, err := deps.Loans.SkipDue(c.Request.Context(), id, in.SkipReason, agentID)
	if err != nil {
		respondError(c, "failed to skip due", err)
		return
	}
	utils.Success(c, "due skipped", due)
}

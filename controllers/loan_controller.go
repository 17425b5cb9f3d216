package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Kumaravel655/loan-backend/config"
	"github.com/Kumaravel655/loan-backend/models"
	"github.com/Kumaravel655/loan-backend/service"
	"github.com/Kumaravel655/loan-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateLoanInput struct {
	CustomerID         uint                  `json:"customer_id" binding:"required"`
	LoanTypeID         *uint                 `json:"loan_type_id"`
	PrincipalAmount    decimal.Decimal       `json:"principal_amount" binding:"required"`
	TotalDueCount      int                   `json:"total_due_count" binding:"required"`
	InterestPercentage decimal.Decimal       `json:"interest_percentage"`
	RepaymentMode      models.RepaymentMode  `json:"repayment_mode" binding:"required"`
	ScheduleMethod     models.ScheduleMethod `json:"schedule_method"`
	CreatedAt          string                `json:"created_at"` // optional, YYYY-MM-DD or RFC3339
}

// POST /loans: persists the loan and its full schedule in one transaction.
func CreateLoan(c *gin.Context) {
	var in CreateLoanInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	userID, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}

	var customer models.Customer
	if err := config.DB.Select("id").First(&customer, in.CustomerID).Error; err != nil {
		respondError(c, "customer not found", err)
		return
	}
	if in.LoanTypeID != nil {
		var lt models.LoanType
		if err := config.DB.Select("id").First(&lt, *in.LoanTypeID).Error; err != nil {
			respondError(c, "loan type not found", err)
			return
		}
	}

	loan := models.Loan{
		CustomerID:         in.CustomerID,
		LoanTypeID:         in.LoanTypeID,
		PrincipalAmount:    in.PrincipalAmount,
		TotalDueCount:      in.TotalDueCount,
		InterestPercentage: in.InterestPercentage,
		RepaymentMode:      in.RepaymentMode,
		ScheduleMethod:     in.ScheduleMethod,
		CreatedBy:          userID,
	}
	if in.CreatedAt != "" {
		t, err := parseDate(in.CreatedAt)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "created_at must be YYYY-MM-DD or RFC3339", err)
			return
		}
		loan.CreatedAt = t
	}

	rows, err := deps.Loans.CreateLoan(c.Request.Context(), &loan)
	if err != nil {
		respondError(c, "failed to create loan", err)
		return
	}
	utils.Created(c, "loan created", gin.H{"loan": loan, "schedule": rows})
}

func GetAllLoans(c *gin.Context) {
	q := config.DB.Preload("Customer").Preload("LoanType").Order("id DESC")
	if v := c.Query("customer_id"); v != "" {
		q = q.Where("customer_id = ?", v)
	}
	if v := c.Query("status"); v != "" {
		q = q.Where("loan_status = ?", v)
	}
	var loans []models.Loan
	if err := q.Find(&loans).Error; err != nil {
		respondError(c, "failed to load loans", err)
		return
	}
	utils.Success(c, "loans loaded", loans)
}

func GetLoanByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var loan models.Loan
	err := config.DB.
		Preload("Customer").
		Preload("LoanType").
		Preload("Schedules", func(db *gorm.DB) *gorm.DB { return db.Order("installment_no ASC") }).
		Preload("Dues", func(db *gorm.DB) *gorm.DB { return db.Order("due_number ASC") }).
		First(&loan, id).Error
	if err != nil {
		respondError(c, "loan not found", err)
		return
	}
	utils.Success(c, "loan loaded", loan)
}

// Schedules and dues go with the loan through ON DELETE CASCADE.
func DeleteLoan(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	res := config.DB.Delete(&models.Loan{}, id)
	if res.Error != nil {
		respondError(c, "failed to delete loan", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(c, http.StatusNotFound, "loan not found", nil)
		return
	}
	utils.Success(c, "loan deleted", nil)
}

func RegenerateSchedule(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	rows, err := deps.Loans.RegenerateSchedule(c.Request.Context(), id)
	if err != nil {
		respondError(c, "failed to regenerate schedule", err)
		return
	}
	utils.Success(c, "schedule regenerated", rows)
}

// GET /loans/preview?principal=&interest=&count=&mode=&method=&start=
func PreviewSchedule(c *gin.Context) {
	principal, err := decimal.NewFromString(c.Query("principal"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "principal must be a number", err)
		return
	}
	interest := decimal.Zero
	if v := c.Query("interest"); v != "" {
		if interest, err = decimal.NewFromString(v); err != nil {
			utils.Error(c, http.StatusBadRequest, "interest must be a number", err)
			return
		}
	}
	count, err := strconv.Atoi(c.Query("count"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "count must be an integer", err)
		return
	}
	terms := service.LoanTerms{
		Principal:          principal,
		InterestPercentage: interest,
		Installments:       count,
		Mode:               models.RepaymentMode(c.DefaultQuery("mode", string(models.RepaymentMonthly))),
	}
	if v := c.Query("start"); v != "" {
		if terms.StartDate, err = parseDate(v); err != nil {
			utils.Error(c, http.StatusBadRequest, "start must be YYYY-MM-DD or RFC3339", err)
			return
		}
	} else {
		terms.StartDate = time.Now().UTC()
	}

	method := models.ScheduleMethod(c.DefaultQuery("method", string(models.ScheduleFlat)))
	rows, err := deps.Loans.PreviewSchedule(terms, method)
	if err != nil {
		respondError(c, "invalid loan terms", err)
		return
	}
	utils.Success(c, "schedule preview", rows)
}

// GET /reports/loan-summary?customer_id=
func LoanSummary(c *gin.Context) {
	var customerID uint64
	if v := c.Query("customer_id"); v != "" {
		var err error
		if customerID, err = strconv.ParseUint(v, 10, 64); err != nil {
			utils.Error(c, http.StatusBadRequest, "invalid customer_id", err)
			return
		}
	}
	rows, err := deps.Reports.LoanSummary(c.Request.Context(), uint(customerID))
	if err != nil {
		respondError(c, "failed to build loan summary", err)
		return
	}
	utils.Success(c, "loan summary", rows)
}

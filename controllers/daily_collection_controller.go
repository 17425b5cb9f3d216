package controllers

import (
	"net/http"
	"time"

	"github.com/Kumaravel655/loan-backend/config"
	"github.com/Kumaravel655/loan-backend/models"
	"github.com/Kumaravel655/loan-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type DailyCollectionInput struct {
	CollectionDate string          `json:"collection_date" binding:"required"`
	AgentID        uint            `json:"agent_id" binding:"required"`
	CashTotal      decimal.Decimal `json:"cash_total"`
	UPITotal       decimal.Decimal `json:"upi_total"`
	CardTotal      decimal.Decimal `json:"card_total"`
}

func (in DailyCollectionInput) toModel() (models.DailyCollection, error) {
	day, err := parseDate(in.CollectionDate)
	if err != nil {
		return models.DailyCollection{}, err
	}
	return models.DailyCollection{
		CollectionDate: time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
		AgentID:        in.AgentID,
		CashTotal:      in.CashTotal.Round(2),
		UPITotal:       in.UPITotal.Round(2),
		CardTotal:      in.CardTotal.Round(2),
	}, nil
}

func CreateDailyCollection(c *gin.Context) {
	var in DailyCollectionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	row, err := in.toModel()
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "collection_date must be YYYY-MM-DD", err)
		return
	}
	if err := config.DB.Create(&row).Error; err != nil {
		respondError(c, "failed to create daily collection", err)
		return
	}
	utils.Created(c, "daily collection created", row.WithTotal())
}

func GetAllDailyCollections(c *gin.Context) {
	q := config.DB.Order("collection_date DESC, agent_id ASC")
	if v := c.Query("agent_id"); v != "" {
		q = q.Where("agent_id = ?", v)
	}
	var rows []models.DailyCollection
	if err := q.Find(&rows).Error; err != nil {
		respondError(c, "failed to load daily collections", err)
		return
	}
	for i := range rows {
		rows[i].WithTotal()
	}
	utils.Success(c, "daily collections loaded", rows)
}

func GetDailyCollectionByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var row models.DailyCollection
	if err := config.DB.First(&row, id).Error; err != nil {
		respondError(c, "daily collection not found", err)
		return
	}
	utils.Success(c, "daily collection loaded", row.WithTotal())
}

func UpdateDailyCollection(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var row models.DailyCollection
	if err := config.DB.First(&row, id).Error; err != nil {
		respondError(c, "daily collection not found", err)
		return
	}
	var in DailyCollectionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	upd, err := in.toModel()
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "collection_date must be YYYY-MM-DD", err)
		return
	}
	upd.ID = row.ID
	if err := config.DB.Save(&upd).Error; err != nil {
		respondError(c, "failed to update daily collection", err)
		return
	}
	utils.Success(c, "daily collection updated", upd.WithTotal())
}

func DeleteDailyCollection(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	res := config.DB.Delete(&models.DailyCollection{}, id)
	if res.Error != nil {
		respondError(c, "failed to delete daily collection", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(c, http.StatusNotFound, "daily collection not found", nil)
		return
	}
	utils.Success(c, "daily collection deleted", nil)
}

type ComputeCollectionInput struct {
	CollectionDate string `json:"collection_date" binding:"required"`
	AgentID        uint   `json:"agent_id"` // defaults to the caller
}

// POST /daily-collections/compute: rebuilds the totals from paid dues.
func ComputeDailyCollection(c *gin.Context) {
	var in ComputeCollectionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	day, err := parseDate(in.CollectionDate)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "collection_date must be YYYY-MM-DD", err)
		return
	}
	if in.AgentID == 0 {
		if in.AgentID, err = currentUserID(c); err != nil {
			utils.Error(c, http.StatusUnauthorized, "unauthorized", err)
			return
		}
	}
	row, err := deps.Reports.ComputeDailyCollection(c.Request.Context(), day, in.AgentID)
	if err != nil {
		respondError(c, "failed to compute daily collection", err)
		return
	}
	utils.Success(c, "daily collection computed", row)
}

package main

import (
	"net/http"
	"strings"

	"delapp/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type cashFlowRequest struct {
	Type        string `json:"type"`
	Source      string `json:"source"`
	Label       string `json:"label"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
}

func (r *cashFlowRequest) valid() bool {
	if r.Type != models.CashFlowTypeIn && r.Type != models.CashFlowTypeOut {
		return false
	}
	return strings.TrimSpace(r.Source) != "" &&
		strings.TrimSpace(r.Label) != "" &&
		strings.TrimSpace(r.Description) != "" &&
		r.Amount > 0
}

func findUserCashFlow(userID, id uuid.UUID) *models.CashFlow {
	var cf models.CashFlow
	if err := db.Where("user_id = ? AND id = ?", userID, id).First(&cf).Error; err != nil {
		return nil
	}
	return &cf
}

func createCashFlowHandler(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, fail("not authenticated"))
		return
	}

	var req cashFlowRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.valid() {
		c.JSON(http.StatusBadRequest, fail("invalid cash flow data"))
		return
	}

	cf := models.CashFlow{
		UserID:      user.ID,
		Type:        req.Type,
		Source:      req.Source,
		Label:       req.Label,
		Amount:      req.Amount,
		Description: req.Description,
	}
	if err := db.Create(&cf).Error; err != nil {
		c.JSON(http.StatusInternalServerError, serverError("failed to create cash flow"))
		return
	}

	c.JSON(http.StatusOK, success("cash flow added successfully", gin.H{"id": cf.ID}))
}

func listCashFlowsHandler(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, fail("not authenticated"))
		return
	}

	q := db.Where("user_id = ?", user.ID)
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		pat := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(label) LIKE ? OR LOWER(description) LIKE ?", pat, pat)
	}

	cashFlows := []models.CashFlow{}
	if err := q.Order("created_at desc").Find(&cashFlows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, serverError("failed to list cash flows"))
		return
	}

	c.JSON(http.StatusOK, success("cash flows retrieved successfully", gin.H{"cashFlows": cashFlows}))
}

func cashFlowLabelsHandler(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, fail("not authenticated"))
		return
	}

	labels := []string{}
	if err := db.Model(&models.CashFlow{}).
		Where("user_id = ?", user.ID).
		Distinct().
		Pluck("label", &labels).Error; err != nil {
		c.JSON(http.StatusInternalServerError, serverError("failed to list labels"))
		return
	}

	c.JSON(http.StatusOK, success("labels retrieved successfully", gin.H{"labels": labels}))
}

// cashFlowStatsHandler sums amounts per type for the owner.
func cashFlowStatsHandler(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, fail("not authenticated"))
		return
	}

	var rows []struct {
		Type  string
		Total int64
	}
	if err := db.Model(&models.CashFlow{}).
		Select("type, COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ?", user.ID).
		Group("type").
		Scan(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, serverError("failed to compute stats"))
		return
	}

	var totalIn, totalOut int64
	for _, r := range rows {
		switch r.Type {
		case models.CashFlowTypeIn:
			totalIn = r.Total
		case models.CashFlowTypeOut:
			totalOut = r.Total
		}
	}

	c.JSON(http.StatusOK, success("stats retrieved successfully", gin.H{"stats": gin.H{
		"totalCashIn":  totalIn,
		"totalCashOut": totalOut,
		"balance":      totalIn - totalOut,
	}}))
}

func getCashFlowHandler(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, fail("not authenticated"))
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, fail("invalid cash flow id"))
		return
	}

	cf := findUserCashFlow(user.ID, id)
	if cf == nil {
		c.JSON(http.StatusNotFound, fail("cash flow data not found"))
		return
	}

	c.JSON(http.StatusOK, success("cash flow retrieved successfully", gin.H{"cashFlow": cf}))
}

func updateCashFlowHandler(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, fail("not authenticated"))
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, fail("invalid cash flow id"))
		return
	}

	var req cashFlowRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.valid() {
		c.JSON(http.StatusBadRequest, fail("invalid cash flow data"))
		return
	}

	cf := findUserCashFlow(user.ID, id)
	if cf == nil {
		c.JSON(http.StatusNotFound, fail("cash flow data not found"))
		return
	}

	cf.Type = req.Type
	cf.Source = req.Source
	cf.Label = req.Label
	cf.Amount = req.Amount
	cf.Description = req.Description
	if err := db.Save(cf).Error; err != nil {
		c.JSON(http.StatusInternalServerError, serverError("failed to update cash flow"))
		return
	}

	c.JSON(http.StatusOK, success("cash flow updated successfully", gin.H{"cashFlow": cf}))
}

func deleteCashFlowHandler(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, fail("not authenticated"))
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, fail("invalid cash flow id"))
		return
	}

	cf := findUserCashFlow(user.ID, id)
	if cf == nil {
		c.JSON(http.StatusNotFound, fail("cash flow data not found"))
		return
	}

	if err := db.Delete(cf).Error; err != nil {
		c.JSON(http.StatusInternalServerError, serverError("failed to delete cash flow"))
		return
	}

	c.JSON(http.StatusOK, success("cash flow deleted successfully", nil))
}

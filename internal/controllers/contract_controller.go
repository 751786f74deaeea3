package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"atuna_estate/internal/models"
	"atuna_estate/internal/store"
)

type createContractInput struct {
	PropertyID  string     `json:"property_id" binding:"required"`
	TenantID    *string    `json:"tenant_id"`
	Content     string     `json:"content" binding:"required"`
	MonthlyRent float64    `json:"monthly_rent"`
	Status      string     `json:"status"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

type updateContractInput struct {
	TenantID    *string    `json:"tenant_id"`
	Content     *string    `json:"content"`
	Status      *string    `json:"status"`
	MonthlyRent *float64   `json:"monthly_rent"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

// CreateContract creates a lease against a property. The contract number
// is assigned server-side.
func CreateContract(c *gin.Context) {
	var input createContractInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	contract := models.Contract{
		PropertyID:  input.PropertyID,
		TenantID:    input.TenantID,
		Content:     input.Content,
		MonthlyRent: input.MonthlyRent,
		Status:      input.Status,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
	}
	if err := accessSvc.CreateContract(actorFrom(c), &contract); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"contract": contract})
}

// GetContract returns one lease. Clients only see leases where they are
// the tenant; others learn nothing beyond the denial.
func GetContract(c *gin.Context) {
	contract, err := accessSvc.GetContract(actorFrom(c), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contract": contract})
}

// ListContracts returns a page of leases. Client callers are silently
// scoped to their own tenancy.
func ListContracts(c *gin.Context) {
	offset, limit := pageParams(c)
	filter := store.ContractFilter{
		TenantID:   c.Query("tenant_id"),
		PropertyID: c.Query("property_id"),
		Status:     c.Query("status"),
	}
	contracts, err := accessSvc.ListContracts(actorFrom(c), filter, offset, limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contracts": contracts})
}

// UpdateContract applies a partial update to a lease.
func UpdateContract(c *gin.Context) {
	var input updateContractInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	contract, err := accessSvc.UpdateContract(actorFrom(c), c.Param("id"), store.ContractPatch{
		TenantID:    input.TenantID,
		Content:     input.Content,
		Status:      input.Status,
		MonthlyRent: input.MonthlyRent,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contract": contract})
}

// DeleteContract removes a lease.
func DeleteContract(c *gin.Context) {
	if err := accessSvc.DeleteContract(actorFrom(c), c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Contract deleted."})
}

// AnalyzeContract runs the AI summary over a lease the caller can read.
func AnalyzeContract(c *gin.Context) {
	contract, err := accessSvc.GetContract(actorFrom(c), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}

	analysis, err := ai.AnalyzeContract(c.Request.Context(), contract)
	if err != nil {
		logrus.WithError(err).Error("AI contract analysis failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Contract analysis failed."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"contract_id": contract.ID, "analysis": analysis})
}

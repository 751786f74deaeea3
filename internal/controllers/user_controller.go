package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"atuna_estate/internal/models"
	"atuna_estate/internal/store"
)

// updateUserInput carries the profile fields a caller may change. Role is
// fixed at creation and deliberately absent here.
type updateUserInput struct {
	Email         *string `json:"email"`
	Password      *string `json:"password"`
	FirstName     *string `json:"first_name"`
	LastName      *string `json:"last_name"`
	Phone         *string `json:"phone"`
	LicenseNumber *string `json:"license_number"`
	CompanyName   *string `json:"company_name"`
}

// createUserInput is the back-office payload for provisioning any account,
// staff roles included.
type createUserInput struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Role      string `json:"role" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// Me returns the authenticated user's own record.
func Me(c *gin.Context) {
	actor := actorFrom(c)
	user, err := accessSvc.GetUser(actor, actor.ID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// CreateUser lets back-office staff provision an account with any role.
func CreateUser(c *gin.Context) {
	var input createUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Error("Failed to hash password during user creation")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password."})
		return
	}

	user := models.User{
		Email:        input.Email,
		PasswordHash: string(hashed),
		Role:         input.Role,
		Status:       models.StatusActive,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        input.Phone,
	}
	if err := accessSvc.CreateUser(actorFrom(c), &user); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// GetUser returns one user by id.
func GetUser(c *gin.Context) {
	user, err := accessSvc.GetUser(actorFrom(c), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// ListUsers returns a page of users. Staff only.
func ListUsers(c *gin.Context) {
	offset, limit := pageParams(c)
	users, err := accessSvc.ListUsers(actorFrom(c), offset, limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// UpdateUser applies a partial update to a user's profile.
func UpdateUser(c *gin.Context) {
	var input updateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	patch := store.UserPatch{
		Email:         input.Email,
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		Phone:         input.Phone,
		LicenseNumber: input.LicenseNumber,
		CompanyName:   input.CompanyName,
	}
	if input.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			logrus.WithError(err).Error("Failed to hash password during user update")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password."})
			return
		}
		h := string(hashed)
		patch.PasswordHash = &h
	}

	user, err := accessSvc.UpdateUser(actorFrom(c), c.Param("id"), patch)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// DeleteUser deactivates an account. The row stays so contracts, payments
// and messages keep their references.
func DeleteUser(c *gin.Context) {
	if err := accessSvc.DeleteUser(actorFrom(c), c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deactivated."})
}

// PurgeUser permanently removes an account. References from contracts,
// messages and properties are kept with the user column nulled. Back
// office only.
func PurgeUser(c *gin.Context) {
	if err := accessSvc.PurgeUser(actorFrom(c), c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User purged."})
}

// GetBalance returns a user's wallet balance.
func GetBalance(c *gin.Context) {
	userID := c.Param("id")
	if userID == "" {
		userID = c.GetString("user_id")
	}
	balance, err := accessSvc.GetBalance(actorFrom(c), userID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": balance})
}

// GetUserAnalytics recomputes and returns one user's usage counters.
func GetUserAnalytics(c *gin.Context) {
	analytics, err := accessSvc.GetAnalytics(actorFrom(c), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"analytics": analytics})
}

// ListUserAnalytics returns stored analytics rows for the back office.
func ListUserAnalytics(c *gin.Context) {
	offset, limit := pageParams(c)
	rows, err := accessSvc.ListAnalytics(actorFrom(c), offset, limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"analytics": rows})
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"atuna_estate/internal/middleware"
	"atuna_estate/internal/models"
)

// signupInput is the public registration payload. Only client and agent
// accounts can self-register; staff accounts are created by an admin.
type signupInput struct {
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=8"`
	Role          string `json:"role"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Phone         string `json:"phone"`
	LicenseNumber string `json:"license_number"`
	CompanyName   string `json:"company_name"`
}

type loginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Signup registers a new client or agent account and returns a token.
func Signup(c *gin.Context) {
	var input signupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	role := input.Role
	if role == "" {
		role = models.RoleClient
	}
	if role != models.RoleClient && role != models.RoleAgent {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only client and agent accounts can self-register."})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Error("Failed to hash password during signup")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password."})
		return
	}

	user := models.User{
		Email:         input.Email,
		PasswordHash:  string(hashed),
		Role:          role,
		Status:        models.StatusActive,
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		Phone:         input.Phone,
		LicenseNumber: input.LicenseNumber,
		CompanyName:   input.CompanyName,
	}

	if err := entities.CreateUser(&user); err != nil {
		respondErr(c, err)
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Role)
	if err != nil {
		logrus.WithError(err).Error("Failed to sign token after signup")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

// Login authenticates an active account against its stored hash. The same
// error message covers a missing account and a wrong password.
func Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	user, err := entities.GetActiveUserByEmail(input.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password."})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password."})
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Role)
	if err != nil {
		logrus.WithError(err).Error("Failed to sign token during login")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

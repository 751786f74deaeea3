package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"atuna_estate/internal/access"
	"atuna_estate/internal/policy"
	"atuna_estate/internal/services"
	"atuna_estate/internal/store"
)

// Package-level collaborators, wired once at startup.
var (
	entities  *store.Store
	accessSvc *access.Service
	ai        *services.AIService
	gateway   *services.PaymentGateway
	mailer    *services.EmailService
)

// Init wires the controllers to the database and external services.
// Must be called before any route is registered.
func Init(db *gorm.DB) {
	entities = store.New(db)
	accessSvc = access.New(entities)
	ai = services.NewAIService()
	gateway = services.NewPaymentGateway()
	mailer = services.NewEmailService()
}

// actorFrom builds the access actor from the claims the JWT middleware put
// in the context. Routes without RequireAuth yield a zero actor, which the
// policy denies everywhere.
func actorFrom(c *gin.Context) access.Actor {
	return access.Actor{
		ID:   c.GetString("user_id"),
		Role: policy.Role(c.GetString("role")),
	}
}

// respondErr maps service errors onto HTTP statuses. Unknown errors are
// reported as 500 without leaking internals to the client.
func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, access.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "Permission denied."})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found."})
	case errors.Is(err, store.ErrConstraintViolation):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error."})
	}
}

// pageParams reads ?offset= and ?limit= with sane defaults.
func pageParams(c *gin.Context) (int, int) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	return offset, limit
}

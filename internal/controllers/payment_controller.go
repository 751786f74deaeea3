package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"atuna_estate/internal/models"
)

type createPaymentInput struct {
	Amount      float64 `json:"amount" binding:"required"`
	Description string  `json:"description"`
}

type settlePaymentInput struct {
	Success bool `json:"success"`
}

// CreatePayment registers a charge intent with the gateway and records the
// pending payment for the authenticated user.
func CreatePayment(c *gin.Context) {
	var input createPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	actor := actorFrom(c)
	user, err := accessSvc.GetUser(actor, actor.ID)
	if err != nil {
		respondErr(c, err)
		return
	}

	intent, err := gateway.CreateIntent(c.Request.Context(), input.Amount, input.Description, user.Email)
	if err != nil {
		logrus.WithError(err).Error("Payment gateway intent creation failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Payment gateway unavailable."})
		return
	}

	payment := models.Payment{
		Amount:        input.Amount,
		Description:   input.Description,
		TransactionID: &intent.ID,
		QRCodeURL:     intent.QRCodeURL,
	}
	if err := accessSvc.CreatePayment(actor, &payment); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"payment": payment})
}

// GetPayment returns one payment the caller may read.
func GetPayment(c *gin.Context) {
	payment, err := accessSvc.GetPayment(actorFrom(c), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": payment})
}

// ListPayments returns a page of payments. Non-staff callers always get
// their own history regardless of the user_id query param.
func ListPayments(c *gin.Context) {
	offset, limit := pageParams(c)
	payments, err := accessSvc.ListPayments(actorFrom(c), c.Query("user_id"), offset, limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

// SettlePayment finalizes a pending payment from a gateway callback or the
// back office. Success credits the payer's balance and queues an email.
func SettlePayment(c *gin.Context) {
	var input settlePaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	payment, err := accessSvc.SettlePayment(actorFrom(c), c.Param("id"), input.Success)
	if err != nil {
		respondErr(c, err)
		return
	}

	if payment.Status == models.PaymentCompleted {
		if user, err := entities.GetUser(payment.UserID); err == nil {
			mailer.SendPaymentConfirmation(user, payment)
		} else {
			logrus.WithError(err).Warn("Settled payment for a missing user, skipping email")
		}
	}

	c.JSON(http.StatusOK, gin.H{"payment": payment})
}

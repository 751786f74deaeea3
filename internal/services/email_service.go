package services

import (
	"github.com/sirupsen/logrus"

	"atuna_estate/internal/models"
)

// EmailService delivers transactional mail. SMTP wiring is not part of the
// deployment yet, so deliveries are logged for the operator to audit.
// TODO: swap the log sink for the SES sender once the account is provisioned.
type EmailService struct{}

func NewEmailService() *EmailService {
	return &EmailService{}
}

// SendPaymentConfirmation notifies a user that a payment settled.
func (s *EmailService) SendPaymentConfirmation(user *models.User, payment *models.Payment) {
	logrus.WithFields(logrus.Fields{
		"email":      user.Email,
		"payment_id": payment.ID,
		"amount":     payment.Amount,
	}).Info("Payment confirmation email queued")
}

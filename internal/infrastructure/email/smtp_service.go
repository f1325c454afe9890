package email

import (
	"context"
	"fmt"
	"net/smtp"

	"bookhaven-backend/internal/shared"
	"bookhaven-backend/pkg/logger"
)

// EmailService sends transactional mail. Delivery is fire-and-forget
// from the API's point of view; the worker retries through asynq.
type EmailService interface {
	SendOrderClaimEmail(ctx context.Context, data shared.OrderClaimEmailPayload) error
}

type smtpEmailService struct {
	smtpAddr string
	smtpFrom string
}

// NewSMTPEmailService talks to a plain SMTP relay (mailhog/mailpit in
// development).
func NewSMTPEmailService(host, port, from string) EmailService {
	return &smtpEmailService{
		smtpAddr: host + ":" + port,
		smtpFrom: from,
	}
}

func (s *smtpEmailService) SendOrderClaimEmail(ctx context.Context, data shared.OrderClaimEmailPayload) error {
	subject := fmt.Sprintf("Your BookHaven order #%d is confirmed", data.OrderID)
	body := fmt.Sprintf(`Hi %s,

Thanks for your order! Your books will be ready for in-store pickup.

Order number: %d
Order total:  %s

Present this claim code at the counter to pick up your order:

    %s

See you soon,
The BookHaven team`, data.FullName, data.OrderID, data.Total, data.ClaimCode)

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.smtpFrom, data.Email, subject, body))

	if err := smtp.SendMail(s.smtpAddr, nil, s.smtpFrom, []string{data.Email}, msg); err != nil {
		logger.Info("Failed to send email", map[string]interface{}{
			"error":     err.Error(),
			"to":        data.Email,
			"smtp_addr": s.smtpAddr,
		})
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
